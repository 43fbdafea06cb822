package storage

import (
	"errors"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/storage/interfaces"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "alerts"

// NewKeyValueProvider builds the browser-storage replacement behind the local acknowledgment store.
// It returns nil when acknowledgments live on a remote or postgres backend.
func NewKeyValueProvider(conf *structures.Config, client *redis.Client, logger providers.Logger) (interfaces.KeyValueInterface, error) {
	if conf.Acknowledgments.Backend != structures.BackendLocal {
		return nil, nil
	}

	if conf.Acknowledgments.Local.Driver == structures.DriverRedis {
		if client == nil {
			return nil, errors.New("redis driver selected but no redis client configured")
		}
		logger.Infof(providers.TypeStore, "Local acknowledgments stored in redis")
		return NewRedisKeyValue(client, redisKeyPrefix), nil
	}

	var compressor interfaces.CompressorInterface = PlainCompression{}
	if conf.Acknowledgments.Local.Compress {
		zstdCompressor, err := NewZstdCompressor()
		if err != nil {
			return nil, err
		}
		compressor = zstdCompressor
	}

	logger.Infof(providers.TypeStore, "Local acknowledgments stored in %s", conf.Acknowledgments.Local.FilePath)
	return NewFileManager(conf.Acknowledgments.Local.FilePath, compressor, logger), nil
}
