package providers

import (
	"context"
	"fmt"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/redis/go-redis/v9"
	"time"
)

// NewRedisProvider connects only when the local acknowledgment store runs on the redis driver.
func NewRedisProvider(conf *structures.Config, logger Logger) (*redis.Client, func(), error) {
	if conf.Acknowledgments.Backend != structures.BackendLocal || conf.Acknowledgments.Local.Driver != structures.DriverRedis {
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Infof(TypeApp, "Redis connected: %s", conf.Redis.Addr)
	return client, func() {
		_ = client.Close()
	}, nil
}
