package providers

import (
	"testing"
	"time"

	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Source: structures.SourceConfig{
			Backend: structures.BackendLocal,
			Limit:   1000,
		},
		Acknowledgments: structures.AcknowledgmentConfig{
			Backend: structures.BackendLocal,
			Local: structures.LocalStoreConfig{
				Driver:   structures.DriverFile,
				FilePath: "/tmp/acknowledged.json",
			},
		},
		View: structures.ViewConfig{
			RemovalDelay: time.Second,
			NoticeTTL:    3 * time.Second,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownSourceBackend(t *testing.T) {
	c := validConfig()
	c.Source.Backend = "mongo"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_RemoteNeedsBaseURL(t *testing.T) {
	c := validConfig()
	c.Source.Backend = structures.BackendRemote
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Remote.BaseURL = "https://api.example.com"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_PostgresNeedsDSN(t *testing.T) {
	c := validConfig()
	c.Acknowledgments.Backend = structures.BackendPostgres
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Postgres.DSN = "postgres://alerts@localhost/alerts"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_LocalStoreDrivers(t *testing.T) {
	c := validConfig()
	c.Acknowledgments.Local.FilePath = ""
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Acknowledgments.Local.Driver = structures.DriverRedis
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Redis.Addr = "localhost:6379"
	assert.NoError(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ExportNeedsBucket(t *testing.T) {
	c := validConfig()
	c.Export.Enabled = true
	c.Export.Endpoint = "localhost:9000"
	assert.Error(t, NewCnfValidator(c).Validate())

	c.Export.Bucket = "alerts"
	assert.NoError(t, NewCnfValidator(c).Validate())
}
