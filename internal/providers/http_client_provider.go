package providers

import (
	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"time"
)

const defaultRemoteTimeout = 10 * time.Second

// NewHTTPClientProvider builds the client shared by the remote data source and the document store.
func NewHTTPClientProvider(conf *structures.Config, logger Logger) *resty.Client {
	timeout := conf.Remote.Timeout
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}

	client := resty.New().
		SetBaseURL(conf.Remote.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Accept", "application/json")
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal

	if conf.Remote.Token != "" {
		client.SetAuthToken(conf.Remote.Token)
	}

	if usesBackend(conf, structures.BackendRemote) {
		logger.Infof(TypeApp, "Remote client configured: %s (timeout %s)", conf.Remote.BaseURL, timeout)
	}
	return client
}
