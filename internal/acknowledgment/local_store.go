package acknowledgment

import (
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/storage/interfaces"
	"sync"
	"time"
)

const DefaultLocalKey = "acknowledgedAlerts"

// LocalStore keeps every record in one JSON array under a single key.
// Each mutation reads the whole list and writes it back.
type LocalStore struct {
	kv      interfaces.KeyValueInterface
	key     string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	mu      sync.Mutex
}

func NewLocalStore(kv interfaces.KeyValueInterface, key string, logger providers.Logger, metrics providers.MetricsProviderInterface) *LocalStore {
	if key == "" {
		key = DefaultLocalKey
	}
	return &LocalStore{
		kv:      kv,
		key:     key,
		logger:  logger,
		metrics: metrics,
	}
}

func (l *LocalStore) read(ctx context.Context) ([]models.AcknowledgmentRecord, error) {
	data, ok, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}
	var records []models.AcknowledgmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.key, err)
	}
	return records, nil
}

func (l *LocalStore) write(ctx context.Context, records []models.AcknowledgmentRecord) error {
	if records == nil {
		records = []models.AcknowledgmentRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, l.key, data)
}

func (l *LocalStore) LoadAcknowledged(ctx context.Context) (models.AcknowledgedSet, error) {
	start := time.Now()
	records, err := l.read(ctx)
	observe(l.metrics, "local", opLoad, start, err)
	if err != nil {
		l.logger.Errorf(providers.TypeStore, "Error loading acknowledged alerts: %s", err)
		return models.NewAcknowledgedSet(), nil
	}

	set := models.NewAcknowledgedSet()
	for _, r := range records {
		set.Add(r.ProductID)
	}
	return set, nil
}

func (l *LocalStore) Save(ctx context.Context, record models.AcknowledgmentRecord) (err error) {
	start := time.Now()
	defer func() { observe(l.metrics, "local", opSave, start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.read(ctx)
	if err != nil {
		return fmt.Errorf("save acknowledgment for %s: %w", record.ProductID, err)
	}
	if err = l.write(ctx, append(records, record)); err != nil {
		return fmt.Errorf("save acknowledgment for %s: %w", record.ProductID, err)
	}
	return nil
}

func (l *LocalStore) Remove(ctx context.Context, productID string) (err error) {
	start := time.Now()
	defer func() { observe(l.metrics, "local", opRemove, start, err) }()

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.read(ctx)
	if err != nil {
		return fmt.Errorf("remove acknowledgment for %s: %w", productID, err)
	}

	kept := make([]models.AcknowledgmentRecord, 0, len(records))
	for _, r := range records {
		if r.ProductID != productID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	if err = l.write(ctx, kept); err != nil {
		return fmt.Errorf("remove acknowledgment for %s: %w", productID, err)
	}
	return nil
}
