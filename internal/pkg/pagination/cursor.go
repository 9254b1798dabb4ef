package pagination

import (
	"time"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Query 游标分页参数
// After/Before 是排序键（created_at 微秒时间戳）上的游标，二者互斥，After 优先
type Query struct {
	PageSize int
	After    *int64
	Before   *int64
}

// Normalize 收敛 page size 到 [1, MaxPageSize]，未传时取默认值
func (q Query) Normalize() Query {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Page 一页结果，Results 按排序键倒序
type Page[T any] struct {
	HasNextPage bool
	Results     []T
}

// PaginateSlice 对内存中按排序键倒序排列的列表做游标分页
// after 语义是"拉取所有更新的"，结果不限长且 HasNextPage 恒为 false；
// before / 首页用 page_size+1 探测是否还有下一页
func PaginateSlice[T any](items []T, key func(T) int64, q Query) Page[T] {
	q = q.Normalize()

	if q.After != nil {
		idx := len(items)
		for i, item := range items {
			if key(item) <= *q.After {
				idx = i
				break
			}
		}
		return Page[T]{HasNextPage: false, Results: items[:idx]}
	}

	start := 0
	if q.Before != nil {
		for start < len(items) && key(items[start]) >= *q.Before {
			start++
		}
	}
	end := start + q.PageSize
	if end >= len(items) {
		return Page[T]{HasNextPage: false, Results: items[start:]}
	}
	return Page[T]{HasNextPage: true, Results: items[start:end]}
}

// PaginateQuery 对 gorm 查询做游标分页，column 是 datetime(6) 排序键列名
// db 需已带好业务过滤条件，这里只追加游标条件、排序和 limit
func PaginateQuery[T any](db *gorm.DB, column string, q Query) (Page[T], error) {
	q = q.Normalize()
	db = db.Order(column + " DESC")

	var results []T
	if q.After != nil {
		if err := db.Where(column+" > ?", time.UnixMicro(*q.After)).Find(&results).Error; err != nil {
			return Page[T]{}, err
		}
		return Page[T]{HasNextPage: false, Results: results}, nil
	}

	if q.Before != nil {
		db = db.Where(column+" < ?", time.UnixMicro(*q.Before))
	}
	if err := db.Limit(q.PageSize + 1).Find(&results).Error; err != nil {
		return Page[T]{}, err
	}
	if len(results) > q.PageSize {
		return Page[T]{HasNextPage: true, Results: results[:q.PageSize]}, nil
	}
	return Page[T]{HasNextPage: false, Results: results}, nil
}
