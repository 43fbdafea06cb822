package providers

import (
	"github.com/coocood/freecache"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"strconv"
)

const viewKeyPrefix = "view:"

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// ViewCacheKey names the rendered alerts table for one view version.
// Every acknowledgment, filter or refresh bumps the version, so a key is never rewritten with different rows.
func ViewCacheKey(version uint64) string {
	return viewKeyPrefix + strconv.FormatUint(version, 10)
}

// ViewCache keeps rendered alerts tables in freecache.
// Old versions are never read again; the TTL only limits how long they hold memory.
type ViewCache struct {
	store      *freecache.Cache
	ttlSeconds int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "View cache disabled, every table request renders the view")
		return &noopCache{}
	}

	ttl := max(conf.Cache.TTL, 1)
	logger.Infof(TypeApp, "View cache ready: %dMB, stale versions evicted after %ds", conf.Cache.Size, ttl)

	return &ViewCache{
		store:      freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttlSeconds: ttl,
	}
}

func (c *ViewCache) Get(key string) ([]byte, bool) {
	body, err := c.store.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set drops the table silently when it exceeds freecache's entry limit.
func (c *ViewCache) Set(key string, value []byte) {
	_ = c.store.Set([]byte(key), value, c.ttlSeconds)
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
