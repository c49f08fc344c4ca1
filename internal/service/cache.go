package service

import (
	"context"

	"sales-service/internal/cache"
)

// ResultCache memoizes query results by signature. Implementations must
// hand out values the caller may mutate freely.
type ResultCache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Put(ctx context.Context, key string, value V)
	Purge(ctx context.Context) error
}

// LocalCache adapts an in-process TTL cache to ResultCache
type LocalCache[V any] struct {
	ttl *cache.TTLCache[V]
}

// NewLocalCache wraps c
func NewLocalCache[V any](c *cache.TTLCache[V]) *LocalCache[V] {
	return &LocalCache[V]{ttl: c}
}

func (l *LocalCache[V]) Get(_ context.Context, key string) (V, bool) {
	return l.ttl.Get(key)
}

func (l *LocalCache[V]) Put(_ context.Context, key string, value V) {
	l.ttl.Put(key, value)
}

func (l *LocalCache[V]) Purge(_ context.Context) error {
	l.ttl.Purge()
	return nil
}
