package acknowledgment

import (
	"context"
	"fmt"
	"github.com/go-resty/resty/v2"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/storage/interfaces"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"time"
)

// Store persists acknowledgment records.
//
// LoadAcknowledged never fails towards the caller: a read error yields an
// empty set and is logged. Save and Remove return write errors unchanged so
// the controller can roll back. Remove with no matching record is a no-op.
type Store interface {
	LoadAcknowledged(ctx context.Context) (models.AcknowledgedSet, error)
	Save(ctx context.Context, record models.AcknowledgmentRecord) error
	Remove(ctx context.Context, productID string) error
}

const (
	opLoad   = "load"
	opSave   = "save"
	opRemove = "remove"
)

func observe(metrics providers.MetricsProviderInterface, backend, op string, start time.Time, err error) {
	metrics.ObserveStoreDuration(backend, op, time.Since(start))
	if err != nil {
		metrics.IncStoreErrors(backend, op)
	}
}

// NewStore picks the backend once from configuration.
func NewStore(
	conf *structures.Config,
	client *resty.Client,
	db providers.Database,
	kv interfaces.KeyValueInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) (Store, error) {
	ack := conf.Acknowledgments
	switch ack.Backend {
	case structures.BackendRemote:
		logger.Infof(providers.TypeStore, "Acknowledgments stored in remote collection %q", ack.Collection)
		return NewDocumentStore(client, ack.Collection, logger, metrics), nil
	case structures.BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("acknowledgment backend %q needs a database", ack.Backend)
		}
		logger.Infof(providers.TypeStore, "Acknowledgments stored in postgres table %q", ack.Table)
		return NewPostgresStore(db, ack.Table, logger, metrics), nil
	case structures.BackendLocal, "":
		if kv == nil {
			return nil, fmt.Errorf("acknowledgment backend %q needs a key-value store", structures.BackendLocal)
		}
		return NewLocalStore(kv, ack.Local.Key, logger, metrics), nil
	default:
		return nil, fmt.Errorf("unknown acknowledgment backend %q", ack.Backend)
	}
}
