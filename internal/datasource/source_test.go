package datasource

import (
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/testutil"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceConfig(backend string) *structures.Config {
	return &structures.Config{Source: structures.SourceConfig{Backend: backend}}
}

func TestNewSource(t *testing.T) {
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	src, err := NewSource(sourceConfig(structures.BackendLocal), nil, nil, logger, metrics)
	require.NoError(t, err)
	assert.IsType(t, &LocalSource{}, src)

	src, err = NewSource(sourceConfig(structures.BackendRemote), resty.New(), nil, logger, metrics)
	require.NoError(t, err)
	assert.IsType(t, &RemoteSource{}, src)

	src, err = NewSource(sourceConfig(structures.BackendPostgres), nil, mock, logger, metrics)
	require.NoError(t, err)
	assert.IsType(t, &PostgresSource{}, src)
}

func TestNewSource_Errors(t *testing.T) {
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}

	_, err := NewSource(sourceConfig(structures.BackendPostgres), nil, nil, logger, metrics)
	assert.Error(t, err)

	_, err = NewSource(sourceConfig("csv"), nil, nil, logger, metrics)
	assert.Error(t, err)
}
