package providers

import (
	"fmt"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const AppName = "OutOfStockAlerts"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("source.backend", "local")
	v.SetDefault("source.datasetId", "product-alerts")
	v.SetDefault("source.queryPath", "/data/v1/%s/query")
	v.SetDefault("source.table", "product_alerts")
	v.SetDefault("source.limit", 1000)
	v.SetDefault("acknowledgments.backend", "local")
	v.SetDefault("acknowledgments.collection", "acknowledged-alerts")
	v.SetDefault("acknowledgments.table", "acknowledged_alerts")
	v.SetDefault("acknowledgments.user", "user")
	v.SetDefault("acknowledgments.local.driver", "file")
	v.SetDefault("acknowledgments.local.key", "acknowledgedAlerts")
	v.SetDefault("view.removalDelay", time.Second)
	v.SetDefault("view.noticeTTL", 3*time.Second)
	v.SetDefault("export.prefix", "acknowledged-alerts")
	v.SetDefault("export.interval", time.Hour)
	v.SetDefault("cache.ttl", 1)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// a missing .env is fine, values then come from the real environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("unable to load .env: %w", err)
	}

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	v.BindEnv("logger.level", "ALERTS_LOG_LEVEL")
	v.BindEnv("webServer.port", "ALERTS_PORT")
	v.BindEnv("remote.baseUrl", "ALERTS_REMOTE_BASE_URL")
	v.BindEnv("remote.token", "ALERTS_REMOTE_TOKEN")
	v.BindEnv("postgres.dsn", "ALERTS_DATABASE_URL")
	v.BindEnv("redis.addr", "ALERTS_REDIS_ADDR")
	v.BindEnv("redis.password", "ALERTS_REDIS_PASSWORD")
	v.BindEnv("source.backend", "ALERTS_SOURCE_BACKEND")
	v.BindEnv("acknowledgments.backend", "ALERTS_ACK_BACKEND")
	v.BindEnv("export.accessKey", "ALERTS_EXPORT_ACCESS_KEY")
	v.BindEnv("export.secretKey", "ALERTS_EXPORT_SECRET_KEY")
	v.BindEnv("cache.enabled", "ALERTS_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
