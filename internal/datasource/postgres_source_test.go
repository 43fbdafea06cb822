package datasource

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/testutil"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const selectColumns = `SELECT "id", "product_id", "product_name", "category", "current_stock", "min_threshold", "last_restock", "priority", "status", "alert_date", "supplier" FROM "product_alerts"`

const orderBy = ` ORDER BY "alert_date" DESC, CASE lower("priority") WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END`

func TestBuildRowQuery_NoFilters(t *testing.T) {
	sql, args := BuildRowQuery("product_alerts", nil, 1000)
	assert.Equal(t, selectColumns+orderBy+" LIMIT $1", sql)
	assert.Equal(t, []any{1000}, args)
}

func TestBuildRowQuery_AllOperators(t *testing.T) {
	filters := []models.QueryFilter{
		{Column: "priority", Operator: models.OperatorEquals, Values: []any{"high"}},
		{Column: "category", Operator: models.OperatorIn, Values: []any{"Electronics", "Clothing"}},
		{Column: "product_name", Operator: models.OperatorContains, Values: []any{"%Lamp%"}},
		{Column: "current_stock", Operator: models.OperatorBetween, Min: 0.0, Max: 5.0},
		{Column: "alert_date", Operator: models.OperatorBetween, Max: "2024-01-22"},
	}

	sql, args := BuildRowQuery("product_alerts", filters, 10)

	expectedWhere := ` WHERE "priority"::text = $1` +
		` AND "category"::text = ANY($2)` +
		` AND "product_name"::text ILIKE $3` +
		` AND "current_stock" >= $4 AND "current_stock" <= $5` +
		` AND "alert_date" <= $6`
	assert.Equal(t, selectColumns+expectedWhere+orderBy+" LIMIT $7", sql)
	assert.Equal(t, []any{"high", []string{"Electronics", "Clothing"}, "%Lamp%", 0.0, 5.0, "2024-01-22", 10}, args)
}

func TestBuildRowQuery_StrictBounds(t *testing.T) {
	filters, skipped := TranslateConditions([]models.Condition{
		{Column: "currentStock", Operator: "GREATER_THAN", Values: []any{0}},
		{Column: "minThreshold", Operator: "LESS_THAN", Values: []any{20}},
	})
	require.Empty(t, skipped)

	sql, args := BuildRowQuery("product_alerts", filters, 10)

	expectedWhere := ` WHERE "current_stock" > $1 AND "min_threshold" < $2`
	assert.Equal(t, selectColumns+expectedWhere+orderBy+" LIMIT $3", sql)
	assert.Equal(t, []any{0, 20, 10}, args)
}

func TestBuildRowQuery_QuotesTable(t *testing.T) {
	sql, _ := BuildRowQuery(`alerts"; DROP TABLE x`, nil, 1)
	assert.Contains(t, sql, `FROM "alerts""; DROP TABLE x"`)
}

type PostgresSourceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	src     *PostgresSource
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

func (s *PostgresSourceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = mock
	s.logger = &testutil.MockLogger{}
	s.metrics = &testutil.MockMetrics{}
	s.src = NewPostgresSource(mock, "", 0, NewLocalSource(s.logger), s.logger, s.metrics)
}

func (s *PostgresSourceTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestPostgresSourceTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresSourceTestSuite))
}

func (s *PostgresSourceTestSuite) TestLoadRowsScansGenericRows() {
	columns := models.QueryColumns()
	s.mock.ExpectQuery(regexp.QuoteMeta(selectColumns)).
		WithArgs(DefaultLimit).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(int64(7), "P-7", "Drill", "Tools", int32(0), int32(4), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "high", "out-of-stock", time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC), "ToolCo").
			AddRow(int64(8), "P-8", "Saw", "Tools", int32(2), int32(4), nil, "low", "low-stock", time.Date(2024, 2, 8, 0, 0, 0, 0, time.UTC), "ToolCo"))

	rows, err := s.src.LoadRows(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	s.Equal("7", rows[0].ID)
	s.Equal("P-7", rows[0].ProductID)
	s.Equal("2024-02-01", rows[0].LastRestock)
	s.Equal("2024-02-09", rows[0].AlertDate)
	s.Equal(models.StatusOutOfStock, rows[0].DerivedStatus())
	s.Equal("", rows[1].LastRestock)
	s.Equal("2 (Low)", rows[1].StockLabel())
}

func (s *PostgresSourceTestSuite) TestRefreshRowsBindsFilters() {
	s.mock.ExpectQuery(regexp.QuoteMeta(selectColumns+` WHERE "supplier"::text = $1`)).
		WithArgs("ToolCo", DefaultLimit).
		WillReturnRows(pgxmock.NewRows(models.QueryColumns()))

	rows, err := s.src.RefreshRows(context.Background(), []models.Condition{
		{Column: "supplier", Operator: "EQUALS", Values: []any{"ToolCo"}},
	})
	s.NoError(err)
	s.Empty(rows)
}

func (s *PostgresSourceTestSuite) TestQueryFailureFallsBack() {
	s.mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("relation does not exist"))

	rows, err := s.src.LoadRows(context.Background())
	s.NoError(err)
	s.Equal(models.FallbackRows(), rows)
	s.Equal(1, s.metrics.FallbackCount("postgres"))
}

func TestNewPostgresSource_Settings(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src := NewPostgresSource(mock, "alerts", 5, nil, &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Equal(t, "alerts", src.table)
	assert.Equal(t, 5, src.limit)
}

func TestNewPostgresSource_Defaults(t *testing.T) {
	src := NewPostgresSource(nil, "", 0, nil, &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Equal(t, DefaultTable, src.table)
	assert.Equal(t, DefaultLimit, src.limit)
}
