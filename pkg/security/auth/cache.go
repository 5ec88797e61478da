package auth

import (
	"context"

	"github.com/allegro/bigcache"
	"github.com/pkg/errors"
)

// Cache is a blacklist-ish storage contract, used to keep track of
// revoked access token IDs until they expire on their own
type Cache interface {
	Put(ctx context.Context, key string, entry []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss is returned when a key is not found in the cache
var ErrCacheMiss = errors.New("cache miss")

type defaultCache struct {
	backend *bigcache.BigCache
}

// NewDefaultCache initializes a bigcache-backed cache
func NewDefaultCache(config bigcache.Config) (Cache, error) {
	backend, err := bigcache.NewBigCache(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize default cache")
	}

	c := &defaultCache{
		backend: backend,
	}

	return c, nil
}

func (c *defaultCache) Put(ctx context.Context, key string, entry []byte) error {
	return errors.Wrapf(c.backend.Set(key, entry), "failed to cache entry: %s", key)
}

func (c *defaultCache) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := c.backend.Get(key)
	if err != nil {
		if err == bigcache.ErrEntryNotFound {
			return nil, ErrCacheMiss
		}

		return nil, errors.Wrapf(err, "failed to fetch cached entry: %s", key)
	}

	return entry, nil
}

func (c *defaultCache) Delete(ctx context.Context, key string) error {
	if err := c.backend.Delete(key); err != nil && err != bigcache.ErrEntryNotFound {
		return errors.Wrapf(err, "failed to delete cached entry: %s", key)
	}

	return nil
}
