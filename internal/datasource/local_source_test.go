package datasource

import (
	"context"
	"testing"

	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSource_LoadRowsReturnsFixture(t *testing.T) {
	src := NewLocalSource(&testutil.MockLogger{})

	rows, err := src.LoadRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 8)
	assert.Equal(t, "PROD-001", rows[0].ProductID)
}

func TestLocalSource_RefreshAppliesConditions(t *testing.T) {
	logger := &testutil.MockLogger{}
	src := NewLocalSource(logger)

	rows, err := src.RefreshRows(context.Background(), []models.Condition{
		{Column: "priority", Operator: "EQUALS", Values: []any{"high"}},
		{Column: "warehouse", Operator: "EQUALS", Values: []any{"north"}},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	assert.Equal(t, []string{"PROD-001", "PROD-002", "PROD-005", "PROD-008"}, ids)
	assert.Equal(t, 1, logger.Count("warn"))
}

func TestLocalSource_RefreshGreaterThanExcludesBound(t *testing.T) {
	src := NewLocalSource(&testutil.MockLogger{})

	rows, err := src.RefreshRows(context.Background(), []models.Condition{
		{Column: "currentStock", Operator: "GREATER_THAN", Values: []any{0}},
	})
	require.NoError(t, err)

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	assert.ElementsMatch(t, []string{"PROD-002", "PROD-004", "PROD-006", "PROD-008"}, ids)
}

func TestLocalSource_RefreshWithoutConditions(t *testing.T) {
	src := NewLocalSource(&testutil.MockLogger{})

	rows, err := src.RefreshRows(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, rows, 8)
}
