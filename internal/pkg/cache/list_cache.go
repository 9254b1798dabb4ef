package cache

import (
	"Chirp/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"
)

// SourceFunc 权威数据源查询：返回按时间倒序、已限长的序列化记录
type SourceFunc func(ctx context.Context) ([][]byte, error)

// ListCache 按 subject key 缓存一段定长、新在前的有序列表
// 缓存里要么没有这个 key，要么是真实序列截断到 limit 的完整前缀，不存在稀疏态
type ListCache struct {
	limit int
	ttl   time.Duration
}

func NewListCache(limit int, ttl time.Duration) *ListCache {
	return &ListCache{limit: limit, ttl: ttl}
}

func (c *ListCache) Limit() int {
	return c.limit
}

// Load 读穿：命中直接返回整个列表，未命中先从数据源回填再返回
// 缓存后端不可用一律按 miss 处理，读路径永远能落到数据源
func (c *ListCache) Load(ctx context.Context, key string, source SourceFunc) ([][]byte, error) {
	exists, err := redis.Exists(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "list cache exists check failed, falling back to source", "key", key, "err", err)
		return c.loadFromSource(ctx, key, source, false)
	}

	if exists {
		values, err := redis.GetRdbClient().LRange(ctx, key, 0, -1).Result()
		if err == nil {
			items := make([][]byte, len(values))
			for i, v := range values {
				items[i] = []byte(v)
			}
			return items, nil
		}
		log.WarnContext(ctx, "list cache read failed, falling back to source", "key", key, "err", err)
	}

	return c.loadFromSource(ctx, key, source, true)
}

// Push 向已有缓存头部插入一条新记录并裁剪到 limit
// key 不存在时不做局部插入，整体回填，避免造出缺老数据的缓存
func (c *ListCache) Push(ctx context.Context, key string, item []byte, source SourceFunc) error {
	return c.PushBatch(ctx, key, [][]byte{item}, source)
}

// PushBatch 批量头插，items 按新在前排列，单次往返完成 LPUSH + LTRIM
func (c *ListCache) PushBatch(ctx context.Context, key string, items [][]byte, source SourceFunc) error {
	if len(items) == 0 {
		return nil
	}

	exists, err := redis.Exists(ctx, key)
	if err != nil {
		// 写失败不拖垮业务操作，下次 Load 自愈
		log.WarnContext(ctx, "list cache push skipped", "key", key, "err", err)
		return nil
	}
	if !exists {
		_, err = c.loadFromSource(ctx, key, source, true)
		return err
	}

	// LPUSH 逐个左插，倒序喂入才能让 items[0] 落在表头
	values := make([]interface{}, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		values = append(values, items[i])
	}

	pipe := redis.GetRdbClient().Pipeline()
	pipe.LPush(ctx, key, values...)
	pipe.LTrim(ctx, key, 0, int64(c.limit-1))
	if _, err = pipe.Exec(ctx); err != nil {
		log.WarnContext(ctx, "list cache push failed", "key", key, "err", err)
	}
	return nil
}

// Invalidate 删除缓存项，失败只记日志
func (c *ListCache) Invalidate(ctx context.Context, key string) {
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "list cache invalidate failed", "key", key, "err", err)
	}
}

func (c *ListCache) loadFromSource(ctx context.Context, key string, source SourceFunc, fill bool) ([][]byte, error) {
	items, err := source(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) > c.limit {
		items = items[:c.limit]
	}

	if fill && len(items) > 0 {
		values := make([]interface{}, len(items))
		for i, item := range items {
			values[i] = item
		}
		pipe := redis.GetRdbClient().Pipeline()
		pipe.RPush(ctx, key, values...)
		pipe.Expire(ctx, key, c.ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			log.WarnContext(ctx, "list cache backfill failed", "key", key, "err", err)
		}
	}
	return items, nil
}
