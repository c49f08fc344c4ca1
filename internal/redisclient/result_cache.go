package redisclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sales-service/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "sales:query:"

// ResultCache stores query results in Redis so that replicas share them.
// Values are JSON encoded and expire through the Redis TTL. Redis failures
// are logged and reported as a miss; they never fail the caller.
type ResultCache[V any] struct {
	client    *Client
	namespace string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewResultCache creates a cache whose keys live under namespace
func NewResultCache[V any](client *Client, namespace string, ttl time.Duration) *ResultCache[V] {
	return &ResultCache[V]{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
		logger:    util.GetLogger(),
	}
}

func (c *ResultCache[V]) key(signature string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, c.namespace, signature)
}

// Get loads the value stored under signature
func (c *ResultCache[V]) Get(ctx context.Context, signature string) (V, bool) {
	var value V

	raw, err := c.client.rdb.Get(ctx, c.key(signature)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Redis cache read failed", zap.String("namespace", c.namespace), zap.Error(err))
		}
		return value, false
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		c.logger.Warn("Redis cache entry undecodable", zap.String("namespace", c.namespace), zap.Error(err))
		return value, false
	}
	return value, true
}

// Put stores value under signature with the cache TTL
func (c *ResultCache[V]) Put(ctx context.Context, signature string, value V) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Redis cache entry unencodable", zap.String("namespace", c.namespace), zap.Error(err))
		return
	}

	if err := c.client.rdb.Set(ctx, c.key(signature), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis cache write failed", zap.String("namespace", c.namespace), zap.Error(err))
	}
}

// Purge deletes every key of this namespace
func (c *ResultCache[V]) Purge(ctx context.Context) error {
	pattern := fmt.Sprintf("%s%s:*", keyPrefix, c.namespace)
	iter := c.client.rdb.Scan(ctx, 0, pattern, 500).Iterator()

	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 500 {
			if err := c.client.rdb.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	if len(batch) > 0 {
		if err := c.client.rdb.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}
	return nil
}
