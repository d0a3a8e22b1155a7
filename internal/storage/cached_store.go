package storage

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte           = 1024 * 1024
	DefaultCacheSizeMB = 8
	cacheExpireSeconds = 60 * 60
)

var _ Store = (*CachedStore)(nil)

// CachedStore is a read-through freecache in front of a slower store.
// Writes go to the backing store first and then refresh the cache.
type CachedStore struct {
	backing Store
	cache   *freecache.Cache
}

func NewCachedStore(backing Store, cacheSizeMB int) *CachedStore {
	if cacheSizeMB <= 0 {
		cacheSizeMB = DefaultCacheSizeMB
	}
	return &CachedStore{
		backing: backing,
		cache:   freecache.NewCache(cacheSizeMB * megabyte),
	}
}

func (cs *CachedStore) Get(ctx context.Context, key string) (string, error) {
	if val, err := cs.cache.Get([]byte(key)); err == nil {
		log.Tracef("store cache hit: %s", key)
		return string(val), nil
	}

	val, err := cs.backing.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if err := cs.cache.Set([]byte(key), []byte(val), cacheExpireSeconds); err != nil {
		log.Errorf("set store cache for %s: %s", key, err)
	}
	return val, nil
}

func (cs *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := cs.backing.Set(ctx, key, value); err != nil {
		cs.cache.Del([]byte(key))
		return err
	}
	if err := cs.cache.Set([]byte(key), []byte(value), cacheExpireSeconds); err != nil {
		log.Errorf("set store cache for %s: %s", key, err)
	}
	return nil
}

func (cs *CachedStore) Delete(ctx context.Context, key string) error {
	cs.cache.Del([]byte(key))
	return cs.backing.Delete(ctx, key)
}

func (cs *CachedStore) Close() error {
	cs.cache.Clear()
	return cs.backing.Close()
}

// HitRate exposes the freecache hit rate, used by tests and debug logs.
func (cs *CachedStore) HitRate() float64 {
	return cs.cache.HitRate()
}

// IsNotFound reports whether err means the key is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
