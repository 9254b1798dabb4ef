package cache

import (
	"Chirp/internal/pkg/redis"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	return mr
}

func staticSource(items ...string) (SourceFunc, *int) {
	calls := 0
	return func(ctx context.Context) ([][]byte, error) {
		calls++
		result := make([][]byte, 0, len(items))
		for _, item := range items {
			result = append(result, []byte(item))
		}
		return result, nil
	}, &calls
}

func listValues(t *testing.T, mr *miniredis.Miniredis, key string) []string {
	t.Helper()
	values, err := mr.List(key)
	require.NoError(t, err)
	return values
}

func TestListCacheLoadMissBackfills(t *testing.T) {
	mr := setupRedis(t)
	c := NewListCache(5, time.Minute)
	ctx := context.Background()
	source, calls := staticSource("t3", "t2", "t1")

	items, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("t3"), []byte("t2"), []byte("t1")}, items)
	assert.Equal(t, 1, *calls)

	// 回填后的列表保持新在前，并带上 TTL
	assert.Equal(t, []string{"t3", "t2", "t1"}, listValues(t, mr, "user:tweets:1"))
	assert.Greater(t, mr.TTL("user:tweets:1"), time.Duration(0))
}

func TestListCacheLoadHitSkipsSource(t *testing.T) {
	setupRedis(t)
	c := NewListCache(5, time.Minute)
	ctx := context.Background()
	source, calls := staticSource("t3", "t2", "t1")

	_, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)

	items, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("t3"), []byte("t2"), []byte("t1")}, items)
	assert.Equal(t, 1, *calls, "second load should be served from cache")
}

func TestListCacheLoadTruncatesToLimit(t *testing.T) {
	mr := setupRedis(t)
	c := NewListCache(2, time.Minute)
	ctx := context.Background()
	source, _ := staticSource("t4", "t3", "t2", "t1")

	items, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("t4"), []byte("t3")}, items)
	assert.Equal(t, []string{"t4", "t3"}, listValues(t, mr, "user:tweets:1"))
}

func TestListCacheLoadEmptySourceLeavesNoKey(t *testing.T) {
	mr := setupRedis(t)
	c := NewListCache(5, time.Minute)
	ctx := context.Background()
	source, _ := staticSource()

	items, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, mr.Exists("user:tweets:1"))
}

func TestListCachePushPrepends(t *testing.T) {
	mr := setupRedis(t)
	c := NewListCache(5, time.Minute)
	ctx := context.Background()
	source, _ := staticSource("t2", "t1")

	_, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)

	require.NoError(t, c.Push(ctx, "user:tweets:1", []byte("t3"), source))
	assert.Equal(t, []string{"t3", "t2", "t1"}, listValues(t, mr, "user:tweets:1"))
}

func TestListCachePushTrimsToLimit(t *testing.T) {
	mr := setupRedis(t)
	c := NewListCache(3, time.Minute)
	ctx := context.Background()
	source, _ := staticSource("t3", "t2", "t1")

	_, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)

	require.NoError(t, c.Push(ctx, "user:tweets:1", []byte("t4"), source))
	assert.Equal(t, []string{"t4", "t3", "t2"}, listValues(t, mr, "user:tweets:1"))
}

func TestListCachePushBatchKeepsOrder(t *testing.T) {
	mr := setupRedis(t)
	c := NewListCache(10, time.Minute)
	ctx := context.Background()
	source, _ := staticSource("t1")

	_, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)

	// items 新在前，落到缓存后也必须新在前
	batch := [][]byte{[]byte("t4"), []byte("t3"), []byte("t2")}
	require.NoError(t, c.PushBatch(ctx, "user:tweets:1", batch, source))
	assert.Equal(t, []string{"t4", "t3", "t2", "t1"}, listValues(t, mr, "user:tweets:1"))
}

func TestListCachePushMissingKeyBackfills(t *testing.T) {
	mr := setupRedis(t)
	c := NewListCache(5, time.Minute)
	ctx := context.Background()

	// 数据源里新纪录已经落库，key 不存在时整体回填而不是局部插入
	source, calls := staticSource("t3", "t2", "t1")
	require.NoError(t, c.Push(ctx, "user:tweets:1", []byte("t3"), source))
	assert.Equal(t, 1, *calls)
	assert.Equal(t, []string{"t3", "t2", "t1"}, listValues(t, mr, "user:tweets:1"))
}

func TestListCacheInvalidate(t *testing.T) {
	mr := setupRedis(t)
	c := NewListCache(5, time.Minute)
	ctx := context.Background()
	source, _ := staticSource("t1")

	_, err := c.Load(ctx, "user:tweets:1", source)
	require.NoError(t, err)
	require.True(t, mr.Exists("user:tweets:1"))

	c.Invalidate(ctx, "user:tweets:1")
	assert.False(t, mr.Exists("user:tweets:1"))
}

func TestListCacheSourceError(t *testing.T) {
	setupRedis(t)
	c := NewListCache(5, time.Minute)
	ctx := context.Background()

	source := SourceFunc(func(ctx context.Context) ([][]byte, error) {
		return nil, fmt.Errorf("db gone")
	})
	_, err := c.Load(ctx, "user:tweets:1", source)
	assert.Error(t, err)
}
