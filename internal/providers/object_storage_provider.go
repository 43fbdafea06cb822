package providers

import (
	"fmt"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewObjectStorageProvider returns nil when the acknowledgment export is disabled.
func NewObjectStorageProvider(conf *structures.Config, logger Logger) (*minio.Client, error) {
	if !conf.Export.Enabled {
		return nil, nil
	}

	client, err := minio.New(conf.Export.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.Export.AccessKey, conf.Export.SecretKey, ""),
		Secure: conf.Export.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create object storage client: %w", err)
	}

	logger.Infof(TypeApp, "Export target: %s/%s", conf.Export.Endpoint, conf.Export.Bucket)
	return client, nil
}
