package providers

import "github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"

// CountingViewCache reports how often the alerts table was served without re-rendering.
type CountingViewCache struct {
	views   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *CountingViewCache) Get(key string) ([]byte, bool) {
	body, ok := c.views.Get(key)
	if !ok {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return body, true
}

func (c *CountingViewCache) Set(key string, value []byte) {
	c.views.Set(key, value)
}

// NewInstrumentedCacheProvider counts view cache hits only when the cache is on.
// A disabled cache would otherwise report a miss for every table request.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	views := NewCacheProvider(conf, logger)
	if _, off := views.(*noopCache); off {
		return views
	}
	return &CountingViewCache{views: views, metrics: metrics}
}
