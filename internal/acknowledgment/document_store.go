package acknowledgment

import (
	"context"
	"fmt"
	"github.com/go-resty/resty/v2"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/models"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"net/url"
	"time"
)

const (
	collectionPathTemplate = "/datastores/v1/collections/%s/documents"
	DefaultCollection      = "acknowledged-alerts"
)

type document struct {
	ID      string                      `json:"id,omitempty"`
	Content models.AcknowledgmentRecord `json:"content"`
}

// DocumentStore keeps one document per acknowledgment in a remote collection.
type DocumentStore struct {
	client  *resty.Client
	path    string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewDocumentStore(client *resty.Client, collection string, logger providers.Logger, metrics providers.MetricsProviderInterface) *DocumentStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &DocumentStore{
		client:  client,
		path:    fmt.Sprintf(collectionPathTemplate, url.PathEscape(collection)),
		logger:  logger,
		metrics: metrics,
	}
}

func (d *DocumentStore) list(ctx context.Context) ([]document, error) {
	var docs []document
	resp, err := d.client.R().
		SetContext(ctx).
		SetResult(&docs).
		Get(d.path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list documents: %s", resp.Status())
	}
	return docs, nil
}

func (d *DocumentStore) LoadAcknowledged(ctx context.Context) (models.AcknowledgedSet, error) {
	start := time.Now()
	docs, err := d.list(ctx)
	observe(d.metrics, "remote", opLoad, start, err)
	if err != nil {
		d.logger.Errorf(providers.TypeStore, "Error loading acknowledged alerts: %s", err)
		return models.NewAcknowledgedSet(), nil
	}

	set := models.NewAcknowledgedSet()
	for _, doc := range docs {
		set.Add(doc.Content.ProductID)
	}
	return set, nil
}

func (d *DocumentStore) Save(ctx context.Context, record models.AcknowledgmentRecord) (err error) {
	start := time.Now()
	defer func() { observe(d.metrics, "remote", opSave, start, err) }()

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(document{Content: record}).
		Post(d.path)
	if err != nil {
		return fmt.Errorf("save acknowledgment for %s: %w", record.ProductID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("save acknowledgment for %s: %s", record.ProductID, resp.Status())
	}
	return nil
}

// Remove resolves the document ids for productID, then deletes each one.
func (d *DocumentStore) Remove(ctx context.Context, productID string) (err error) {
	start := time.Now()
	defer func() { observe(d.metrics, "remote", opRemove, start, err) }()

	docs, err := d.list(ctx)
	if err != nil {
		return fmt.Errorf("remove acknowledgment for %s: %w", productID, err)
	}

	for _, doc := range docs {
		if doc.Content.ProductID != productID {
			continue
		}
		resp, err := d.client.R().
			SetContext(ctx).
			SetPathParam("id", doc.ID).
			Delete(d.path + "/{id}")
		if err != nil {
			return fmt.Errorf("delete document %s: %w", doc.ID, err)
		}
		if resp.IsError() {
			return fmt.Errorf("delete document %s: %s", doc.ID, resp.Status())
		}
	}
	return nil
}
