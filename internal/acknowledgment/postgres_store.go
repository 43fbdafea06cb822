package acknowledgment

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"time"
)

const DefaultTable = "acknowledged_alerts"

// PostgresStore keeps acknowledgment records as rows keyed by a generated uuid.
type PostgresStore struct {
	db      providers.Database
	table   string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewPostgresStore(db providers.Database, table string, logger providers.Logger, metrics providers.MetricsProviderInterface) *PostgresStore {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresStore{
		db:      db,
		table:   pgx.Identifier{table}.Sanitize(),
		logger:  logger,
		metrics: metrics,
	}
}

func (p *PostgresStore) LoadAcknowledged(ctx context.Context) (models.AcknowledgedSet, error) {
	start := time.Now()
	set, err := p.load(ctx)
	observe(p.metrics, "postgres", opLoad, start, err)
	if err != nil {
		p.logger.Errorf(providers.TypeStore, "Error loading acknowledged alerts: %s", err)
		return models.NewAcknowledgedSet(), nil
	}
	return set, nil
}

func (p *PostgresStore) load(ctx context.Context) (models.AcknowledgedSet, error) {
	rows, err := p.db.Query(ctx, fmt.Sprintf(`SELECT product_id FROM %s`, p.table))
	if err != nil {
		return nil, err
	}
	productIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return models.NewAcknowledgedSet(productIDs...), nil
}

func (p *PostgresStore) Save(ctx context.Context, record models.AcknowledgmentRecord) (err error) {
	start := time.Now()
	defer func() { observe(p.metrics, "postgres", opSave, start, err) }()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, product_id, product_name, category, alert_id, original_alert_date, acknowledged_at, acknowledged_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.table)
	_, err = p.db.Exec(ctx, query,
		uuid.New().String(),
		record.ProductID,
		record.ProductName,
		record.Category,
		record.AlertID,
		record.OriginalAlertDate,
		record.AcknowledgedAt,
		record.AcknowledgedBy,
	)
	if err != nil {
		return fmt.Errorf("save acknowledgment for %s: %w", record.ProductID, err)
	}
	return nil
}

// Remove looks up the record ids for productID first and deletes them one by one.
func (p *PostgresStore) Remove(ctx context.Context, productID string) (err error) {
	start := time.Now()
	defer func() { observe(p.metrics, "postgres", opRemove, start, err) }()

	rows, err := p.db.Query(ctx, fmt.Sprintf(`SELECT id::text FROM %s WHERE product_id = $1`, p.table), productID)
	if err != nil {
		return fmt.Errorf("remove acknowledgment for %s: %w", productID, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("remove acknowledgment for %s: %w", productID, err)
	}

	for _, id := range ids {
		if _, err = p.db.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, p.table), id); err != nil {
			return fmt.Errorf("delete acknowledgment %s: %w", id, err)
		}
	}
	return nil
}
