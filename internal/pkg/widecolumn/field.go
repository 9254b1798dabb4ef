package widecolumn

type FieldType int

const (
	// TypeInt 十进制定宽补零编码，保证字典序等于数值序
	TypeInt FieldType = iota
	// TypeTimestamp 微秒时间戳，编码规则同 TypeInt
	TypeTimestamp
	// TypeString 原样编码
	TypeString
)

// Field 记录的一个字段
// Family 为空表示行键字段，参与行键编码；非空表示列字段，写入 family:name
type Field struct {
	Name    string
	Type    FieldType
	Reverse bool
	Family  string
}

// Record 一行记录，int/timestamp 字段取 int64，string 字段取 string
type Record map[string]any
