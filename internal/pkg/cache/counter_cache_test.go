package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countSource(value int64) (CountSource, *int) {
	calls := 0
	return func(ctx context.Context) (int64, error) {
		calls++
		return value, nil
	}, &calls
}

func TestCounterCacheIncrMissBackfills(t *testing.T) {
	mr := setupRedis(t)
	c := NewCounterCache(time.Minute)
	ctx := context.Background()

	// miss 时不从 0 起算，整值回填权威计数（增量已含在权威值里）
	source, calls := countSource(8)
	count, err := c.Incr(ctx, "tweet:likes_count:1", source)
	require.NoError(t, err)
	assert.Equal(t, int64(8), count)
	assert.Equal(t, 1, *calls)
	cached, err := mr.Get("tweet:likes_count:1")
	require.NoError(t, err)
	assert.Equal(t, "8", cached)
	assert.Greater(t, mr.TTL("tweet:likes_count:1"), time.Duration(0))
}

func TestCounterCacheIncrExistingKey(t *testing.T) {
	mr := setupRedis(t)
	c := NewCounterCache(time.Minute)
	ctx := context.Background()
	require.NoError(t, mr.Set("tweet:likes_count:1", "8"))

	source, calls := countSource(999)
	count, err := c.Incr(ctx, "tweet:likes_count:1", source)
	require.NoError(t, err)
	assert.Equal(t, int64(9), count)
	assert.Equal(t, 0, *calls, "existing key should not hit the source")
}

func TestCounterCacheDecrExistingKey(t *testing.T) {
	mr := setupRedis(t)
	c := NewCounterCache(time.Minute)
	ctx := context.Background()
	require.NoError(t, mr.Set("tweet:likes_count:1", "8"))

	source, calls := countSource(999)
	count, err := c.Decr(ctx, "tweet:likes_count:1", source)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.Equal(t, 0, *calls)
}

func TestCounterCacheGetMissBackfills(t *testing.T) {
	mr := setupRedis(t)
	c := NewCounterCache(time.Minute)
	ctx := context.Background()

	source, calls := countSource(5)
	count, err := c.Get(ctx, "tweet:likes_count:1", source)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.Equal(t, 1, *calls)
	cached, err := mr.Get("tweet:likes_count:1")
	require.NoError(t, err)
	assert.Equal(t, "5", cached)

	// 回填后命中缓存
	count, err = c.Get(ctx, "tweet:likes_count:1", source)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.Equal(t, 1, *calls)
}

func TestCounterCacheInvalidate(t *testing.T) {
	mr := setupRedis(t)
	c := NewCounterCache(time.Minute)
	ctx := context.Background()
	require.NoError(t, mr.Set("tweet:likes_count:1", "8"))

	c.Invalidate(ctx, "tweet:likes_count:1")
	assert.False(t, mr.Exists("tweet:likes_count:1"))
}

func TestCounterCacheSourceError(t *testing.T) {
	setupRedis(t)
	c := NewCounterCache(time.Minute)
	ctx := context.Background()

	source := CountSource(func(ctx context.Context) (int64, error) {
		return 0, fmt.Errorf("db gone")
	})
	_, err := c.Get(ctx, "tweet:likes_count:1", source)
	assert.Error(t, err)
}
