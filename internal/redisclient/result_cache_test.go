package redisclient

import (
	"context"
	"os"
	"testing"
	"time"

	"sales-service/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Integration test - requires redis (set REDIS_TEST_ADDR)")
	}
	client, err := NewClient(addr, "", 15)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestResultCacheRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	c := NewResultCache[*models.PageResult](client, "test-page", time.Minute)
	require.NoError(t, c.Purge(ctx))

	_, ok := c.Get(ctx, "sig")
	assert.False(t, ok)

	c.Put(ctx, "sig", &models.PageResult{Items: []models.Transaction{{ID: "1"}}, Total: 1, Page: 1, PageSize: 10, TotalPages: 1})

	got, ok := c.Get(ctx, "sig")
	require.True(t, ok)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, "1", got.Items[0].ID)

	require.NoError(t, c.Purge(ctx))
	_, ok = c.Get(ctx, "sig")
	assert.False(t, ok)
}

func TestResultCacheExpires(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	c := NewResultCache[*models.ExportResult](client, "test-export", 100*time.Millisecond)
	c.Put(ctx, "sig", &models.ExportResult{Total: 3})

	time.Sleep(300 * time.Millisecond)
	_, ok := c.Get(ctx, "sig")
	assert.False(t, ok)
}

func TestResultCacheSetsRedisTTL(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Integration test - requires redis (set REDIS_TEST_ADDR)")
	}
	client := NewClientFromRedis(redis.NewClient(&redis.Options{Addr: addr, DB: 15}))
	defer client.Close()
	ctx := context.Background()

	c := NewResultCache[*models.PageResult](client, "test-ttl", 8*time.Second)
	c.Put(ctx, "sig", &models.PageResult{Total: 1})

	ttl, err := client.GetClient().TTL(ctx, c.key("sig")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 8*time.Second)

	require.NoError(t, c.Purge(ctx))
}

func TestKeyLayout(t *testing.T) {
	c := &ResultCache[int]{namespace: "page"}
	assert.Equal(t, "sales:query:page:abc", c.key("abc"))
}
