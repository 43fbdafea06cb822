package providers

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks struct tags first, then the cross-field rules tags cannot express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}

	c := cv.conf
	if (c.Source.Backend == structures.BackendRemote || c.Acknowledgments.Backend == structures.BackendRemote) && c.Remote.BaseURL == "" {
		return errors.New("invalid config: remote.baseUrl is required for the remote backend")
	}
	if (c.Source.Backend == structures.BackendPostgres || c.Acknowledgments.Backend == structures.BackendPostgres) && c.Postgres.DSN == "" {
		return errors.New("invalid config: postgres.dsn is required for the postgres backend")
	}
	if c.Acknowledgments.Backend == structures.BackendLocal {
		switch c.Acknowledgments.Local.Driver {
		case structures.DriverRedis:
			if c.Redis.Addr == "" {
				return errors.New("invalid config: redis.addr is required for the redis driver")
			}
		default:
			if c.Acknowledgments.Local.FilePath == "" {
				return errors.New("invalid config: acknowledgments.local.filePath is required for the file driver")
			}
		}
	}
	if c.Export.Enabled && (c.Export.Endpoint == "" || c.Export.Bucket == "") {
		return errors.New("invalid config: export.endpoint and export.bucket are required when export is enabled")
	}
	return nil
}
