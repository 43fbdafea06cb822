package jobs

import (
	"bytes"
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/minio/minio-go/v7"
	"io"
	"path"
	"time"
)

const exportTimeLayout = "20060102T150405Z"

// Exporter publishes the acknowledged data so it can be merged back into the dataset.
type Exporter interface {
	Export(ctx context.Context, entries []models.AcknowledgedExport) (string, error)
}

type objectPutter interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type ObjectExporter struct {
	client  objectPutter
	bucket  string
	prefix  string
	logger  providers.Logger
	now     func() time.Time
	checked bool
}

type noopExporter struct{}

func (noopExporter) Export(context.Context, []models.AcknowledgedExport) (string, error) {
	return "", nil
}

func NewExporter(conf *structures.Config, client *minio.Client, logger providers.Logger) Exporter {
	if !conf.Export.Enabled || client == nil {
		return noopExporter{}
	}
	return newObjectExporter(client, conf.Export.Bucket, conf.Export.Prefix, logger)
}

func newObjectExporter(client objectPutter, bucket, prefix string, logger providers.Logger) *ObjectExporter {
	return &ObjectExporter{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
	}
}

func (e *ObjectExporter) ensureBucket(ctx context.Context) error {
	if e.checked {
		return nil
	}
	found, err := e.client.BucketExists(ctx, e.bucket)
	if err != nil {
		return err
	}
	if !found {
		if err := e.client.MakeBucket(ctx, e.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
		e.logger.Infof(providers.TypeStore, "Created export bucket %s", e.bucket)
	}
	e.checked = true
	return nil
}

// Export writes one timestamped JSON object and returns its name.
func (e *ObjectExporter) Export(ctx context.Context, entries []models.AcknowledgedExport) (string, error) {
	if err := e.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket %s: %w", e.bucket, err)
	}

	if entries == nil {
		entries = []models.AcknowledgedExport{}
	}
	body, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}

	name := path.Join(e.prefix, "acknowledged-"+e.now().UTC().Format(exportTimeLayout)+".json")
	_, err = e.client.PutObject(ctx, e.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}
	return name, nil
}
