package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const remoteRows = `[
	{"id": 11, "product_id": "P-A", "product_name": "Alpha", "category": "Tools", "current_stock": 0, "min_threshold": 5, "priority": "low", "status": "out-of-stock", "alert_date": "2024-02-01", "supplier": "S1"},
	{"id": 12, "product_id": "P-B", "product_name": "Beta", "category": "Tools", "current_stock": 3, "min_threshold": 5, "priority": "high", "status": "low-stock", "alert_date": "2024-02-01", "supplier": "S2"},
	{"id": 13, "productId": "P-C", "productName": "Gamma", "category": "Tools", "currentStock": "n/a", "minThreshold": 5, "priority": "medium", "status": "low-stock", "alertDate": "2024-02-03", "supplier": "S3"},
	{"id": 14, "product_id": "P-A", "product_name": "Alpha again", "alert_date": "2024-02-05"}
]`

func newTestRemoteSource(t *testing.T, handler http.Handler) (*RemoteSource, *testutil.MockLogger, *testutil.MockMetrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := resty.New().SetBaseURL(srv.URL).SetTimeout(2 * time.Second)
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal

	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	src := NewRemoteSource(client, "", "product-alerts", 0, NewLocalSource(logger), logger, metrics)
	return src, logger, metrics
}

func TestRemoteSource_LoadRowsMapsAndSorts(t *testing.T) {
	var query models.RowQuery
	var path string
	src, logger, metrics := newTestRemoteSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&query)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(remoteRows))
	}))

	rows, err := src.LoadRows(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/data/v1/product-alerts/query", path)
	assert.Equal(t, models.QueryColumns(), query.Fields)
	assert.Equal(t, DefaultLimit, query.Limit)
	assert.Empty(t, query.Filters)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"P-C", "P-B", "P-A"}, []string{rows[0].ProductID, rows[1].ProductID, rows[2].ProductID})
	assert.Equal(t, "11", rows[2].ID)
	assert.Equal(t, "n/a", rows[0].StockLabel())
	assert.Equal(t, 1, logger.Count("warn"), "duplicate productId is reported")
	assert.Equal(t, 0, metrics.FallbackCount("remote"))
}

func TestRemoteSource_RefreshSendsFilters(t *testing.T) {
	var query models.RowQuery
	src, _, _ := newTestRemoteSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&query)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	rows, err := src.RefreshRows(context.Background(), []models.Condition{
		{Column: "category", Operator: "IN", Values: []any{"Tools"}},
		{Column: "currentStock", Operator: "LESS_THAN", Values: []any{3.0}},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.Len(t, query.Filters, 2)
	assert.Equal(t, models.QueryFilter{Column: "category", Operator: "IN", Values: []any{"Tools"}}, query.Filters[0])
	assert.Equal(t, "current_stock", query.Filters[1].Column)
	assert.Equal(t, models.OperatorBetween, query.Filters[1].Operator)
	assert.Equal(t, 3.0, query.Filters[1].Max)
	assert.Nil(t, query.Filters[1].Min)
}

func TestRemoteSource_FailureFallsBackToLocal(t *testing.T) {
	src, logger, metrics := newTestRemoteSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))

	rows, err := src.LoadRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.FallbackRows(), rows)
	assert.Equal(t, 1, metrics.FallbackCount("remote"))
	assert.Equal(t, 1, logger.Count("error"))
}

func TestRemoteSource_RefreshFailureFiltersFallback(t *testing.T) {
	src, _, metrics := newTestRemoteSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	rows, err := src.RefreshRows(context.Background(), []models.Condition{
		{Column: "category", Operator: "EQUALS", Values: []any{"Electronics"}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PROD-001", rows[0].ProductID)
	assert.Equal(t, "PROD-007", rows[1].ProductID)
	assert.Equal(t, 1, metrics.FallbackCount("remote"))
}

func TestRemoteSource_CancelledContext(t *testing.T) {
	src, _, metrics := newTestRemoteSource(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.LoadRows(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, metrics.FallbackCount("remote"))
}

func TestNewRemoteSource_CustomPath(t *testing.T) {
	src := NewRemoteSource(resty.New(), "/query/alerts", "ignored", 50, nil, &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Equal(t, "/query/alerts", src.path)
	assert.Equal(t, 50, src.limit)
}
