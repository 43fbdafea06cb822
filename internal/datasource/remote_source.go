package datasource

import (
	"context"
	"fmt"
	"github.com/go-resty/resty/v2"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"strings"
)

const (
	DefaultQueryPath = "/data/v1/%s/query"
	DefaultDatasetID = "product-alerts"
)

// RemoteSource queries a dataset over the HTTP query API.
type RemoteSource struct {
	client   *resty.Client
	path     string
	limit    int
	fallback *LocalSource
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewRemoteSource(
	client *resty.Client,
	queryPath, datasetID string,
	limit int,
	fallback *LocalSource,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *RemoteSource {
	if queryPath == "" {
		queryPath = DefaultQueryPath
	}
	if datasetID == "" {
		datasetID = DefaultDatasetID
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	path := queryPath
	if strings.Contains(queryPath, "%s") {
		path = fmt.Sprintf(queryPath, datasetID)
	}
	return &RemoteSource{
		client:   client,
		path:     path,
		limit:    limit,
		fallback: fallback,
		logger:   logger,
		metrics:  metrics,
	}
}

func (r *RemoteSource) query(ctx context.Context, filters []models.QueryFilter) ([]models.AlertRow, error) {
	var raws []map[string]any
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RowQuery{
			Fields:  models.QueryColumns(),
			Filters: filters,
			Limit:   r.limit,
		}).
		SetResult(&raws).
		Post(r.path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("row query %s: %s", r.path, resp.Status())
	}

	rows, duplicates := models.RowsFromRaw(raws)
	for _, id := range duplicates {
		r.logger.Warnf(providers.TypeApp, "Duplicate productId %s dropped from dataset", id)
	}
	models.SortRows(rows)
	return rows, nil
}

func (r *RemoteSource) LoadRows(ctx context.Context) ([]models.AlertRow, error) {
	rows, err := r.query(ctx, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Errorf(providers.TypeApp, "Error loading remote rows, falling back to local data: %s", err)
		r.metrics.IncSourceFallbacks("remote")
		return r.fallback.LoadRows(ctx)
	}
	return rows, nil
}

func (r *RemoteSource) RefreshRows(ctx context.Context, conditions []models.Condition) ([]models.AlertRow, error) {
	filters, skipped := TranslateConditions(conditions)
	for _, s := range skipped {
		r.logger.Warnf(providers.TypeApp, "Ignoring filter condition: %s", s)
	}

	rows, err := r.query(ctx, filters)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Errorf(providers.TypeApp, "Error refreshing remote rows, falling back to local data: %s", err)
		r.metrics.IncSourceFallbacks("remote")
		return r.fallback.RefreshRows(ctx, conditions)
	}
	return rows, nil
}
