package cache

import (
	"Chirp/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// CountSource 权威计数查询，调用时增量已在数据库侧提交
type CountSource func(ctx context.Context) (int64, error)

// CounterCache 读穿计数缓存
// 只对已存在的 key 做 INCR/DECR，miss 时从权威源整值回填，避免从 0 起算出错值
type CounterCache struct {
	ttl time.Duration
}

func NewCounterCache(ttl time.Duration) *CounterCache {
	return &CounterCache{ttl: ttl}
}

// Incr 计数 +1，key 不存在或缓存故障时回填权威值
func (c *CounterCache) Incr(ctx context.Context, key string, source CountSource) (int64, error) {
	return c.adjust(ctx, key, source, redis.Incr)
}

// Decr 计数 -1，回填逻辑同 Incr
func (c *CounterCache) Decr(ctx context.Context, key string, source CountSource) (int64, error) {
	return c.adjust(ctx, key, source, redis.Decr)
}

// Get 读取计数，miss 时回填
func (c *CounterCache) Get(ctx context.Context, key string, source CountSource) (int64, error) {
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	if err != goredis.Nil {
		log.WarnContext(ctx, "counter cache read failed, falling back to source", "key", key, "err", err)
		return source(ctx)
	}
	return c.backfill(ctx, key, source)
}

// Invalidate 删除计数项，失败只记日志
func (c *CounterCache) Invalidate(ctx context.Context, key string) {
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "counter cache invalidate failed", "key", key, "err", err)
	}
}

func (c *CounterCache) adjust(ctx context.Context, key string, source CountSource,
	op func(context.Context, string) (int64, error)) (int64, error) {
	exists, err := redis.Exists(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "counter cache exists check failed, falling back to source", "key", key, "err", err)
		return source(ctx)
	}
	if !exists {
		return c.backfill(ctx, key, source)
	}

	count, err := op(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "counter cache adjust failed, falling back to source", "key", key, "err", err)
		return source(ctx)
	}
	return count, nil
}

func (c *CounterCache) backfill(ctx context.Context, key string, source CountSource) (int64, error) {
	count, err := source(ctx)
	if err != nil {
		return 0, err
	}
	if err := redis.SetWithExpiration(ctx, key, count, c.ttl); err != nil {
		log.WarnContext(ctx, "counter cache backfill failed", "key", key, "err", err)
	}
	return count, nil
}
