package datasource

import (
	"context"
	"fmt"
	"github.com/go-resty/resty/v2"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
)

// Source delivers alert rows. Remote backends absorb their own failures and
// answer with the local fallback set, so callers only see errors from
// cancelled contexts or broken configuration.
type Source interface {
	LoadRows(ctx context.Context) ([]models.AlertRow, error)
	RefreshRows(ctx context.Context, conditions []models.Condition) ([]models.AlertRow, error)
}

const DefaultLimit = 1000

// NewSource picks the backend once from configuration.
func NewSource(
	conf *structures.Config,
	client *resty.Client,
	db providers.Database,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) (Source, error) {
	local := NewLocalSource(logger)
	src := conf.Source

	switch src.Backend {
	case structures.BackendRemote:
		logger.Infof(providers.TypeApp, "Rows served by remote dataset %q", src.DatasetID)
		return NewRemoteSource(client, src.QueryPath, src.DatasetID, src.Limit, local, logger, metrics), nil
	case structures.BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("source backend %q needs a database", src.Backend)
		}
		logger.Infof(providers.TypeApp, "Rows served by postgres table %q", src.Table)
		return NewPostgresSource(db, src.Table, src.Limit, local, logger, metrics), nil
	case structures.BackendLocal, "":
		logger.Infof(providers.TypeApp, "Rows served from the built-in alert set")
		return local, nil
	default:
		return nil, fmt.Errorf("unknown source backend %q", src.Backend)
	}
}
