package config

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/seatchart/pkg/cache"
	"github.com/matzehuels/seatchart/pkg/store"
)

// Open creates the configured cache.
func (c CacheConfig) Open(ctx context.Context, logger *log.Logger) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendMemory:
		return cache.NewMemoryCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := c.Dir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// Keyer returns the cache keyer, scoped by Namespace when one is set.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Namespace+":")
}

// Open creates the configured chart store.
func (c StoreConfig) Open(ctx context.Context, logger *log.Logger) (store.Store, error) {
	switch c.Backend {
	case BackendFile:
		fs, err := store.NewFileStore(c.Dir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendMongo:
		ms, err := store.NewMongoStore(ctx, store.MongoOptions{
			URI:      c.MongoURI,
			Database: c.Database,
			Timeout:  c.Timeout.Duration,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	}
	return store.NewMemoryStore(), nil
}
