package providers

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"time"
)

// Database is the part of a pgx pool the stores use. pgxmock pools satisfy it too.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

func usesBackend(conf *structures.Config, backend string) bool {
	return conf.Source.Backend == backend || conf.Acknowledgments.Backend == backend
}

// NewPostgresProvider opens the pool only when a backend is configured for postgres.
// Otherwise it returns a nil Database and a no-op cleanup.
func NewPostgresProvider(conf *structures.Config, logger Logger) (Database, func(), error) {
	if !usesBackend(conf, structures.BackendPostgres) {
		return nil, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, conf.Postgres.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("unable to reach postgres: %w", err)
	}

	logger.Infof(TypeApp, "Postgres pool connected")
	return pool, func() {
		pool.Close()
		logger.Infof(TypeApp, "Postgres pool closed")
	}, nil
}
