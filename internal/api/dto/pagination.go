package dto

// CursorQueryDTO 游标分页请求参数
// created_at__gt / created_at__lt 是排序键（微秒时间戳）上的游标
type CursorQueryDTO struct {
	PageSize int    `form:"page_size"`
	After    *int64 `form:"created_at__gt"`
	Before   *int64 `form:"created_at__lt"`
}
