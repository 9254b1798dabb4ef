package widecolumn

import "fmt"

// BadRowKeyError 行键字段缺失（非前缀模式）或行键不完整
type BadRowKeyError struct {
	Field string
}

func (e *BadRowKeyError) Error() string {
	return fmt.Sprintf("widecolumn: %s is missing in row key", e.Field)
}

// EmptyColumnError 一行没有任何列数据可写
// 后端对空行直接不存储，写空行等于静默丢数据，必须拦下来
type EmptyColumnError struct{}

func (e *EmptyColumnError) Error() string {
	return "widecolumn: row has no column values to store"
}

// EncodingError 字段值无法无歧义地编码（包含分隔符或超出定宽）
type EncodingError struct {
	Field string
	Value string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("widecolumn: field %s cannot be encoded: %q", e.Field, e.Value)
}
