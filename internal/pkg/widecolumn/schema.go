package widecolumn

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	rowKeyDelimiter = ":"
	intWidth        = 16
)

// Schema 描述一张宽列表：行键字段顺序 + 全部字段定义
type Schema struct {
	Table  string
	RowKey []string
	fields map[string]Field
	order  []string
}

func NewSchema(table string, rowKey []string, fields []Field) (*Schema, error) {
	s := &Schema{
		Table:  table,
		RowKey: rowKey,
		fields: make(map[string]Field, len(fields)),
		order:  make([]string, 0, len(fields)),
	}
	for _, f := range fields {
		if _, ok := s.fields[f.Name]; ok {
			return nil, fmt.Errorf("widecolumn: duplicate field %s in table %s", f.Name, table)
		}
		s.fields[f.Name] = f
		s.order = append(s.order, f.Name)
	}
	for _, name := range rowKey {
		f, ok := s.fields[name]
		if !ok {
			return nil, fmt.Errorf("widecolumn: row key field %s not defined in table %s", name, table)
		}
		if f.Family != "" {
			return nil, fmt.Errorf("widecolumn: row key field %s must not carry a column family", name)
		}
	}
	return s, nil
}

// serializeField 字段值 -> 规范字符串
// int 类字段补零到定宽；Reverse 字段整体翻转，使其在升序拼接中贡献降序
func (s *Schema) serializeField(f Field, value any) (string, error) {
	var str string
	switch f.Type {
	case TypeInt, TypeTimestamp:
		n, err := toInt64(value)
		if err != nil {
			return "", &EncodingError{Field: f.Name, Value: fmt.Sprint(value)}
		}
		str = strconv.FormatInt(n, 10)
		if n < 0 || len(str) > intWidth {
			return "", &EncodingError{Field: f.Name, Value: str}
		}
		str = strings.Repeat("0", intWidth-len(str)) + str
	case TypeString:
		v, ok := value.(string)
		if !ok {
			return "", &EncodingError{Field: f.Name, Value: fmt.Sprint(value)}
		}
		str = v
	default:
		return "", &EncodingError{Field: f.Name, Value: fmt.Sprint(value)}
	}

	if f.Reverse {
		str = reverseString(str)
	}
	return str, nil
}

func (s *Schema) deserializeField(f Field, str string) (any, error) {
	if f.Reverse {
		str = reverseString(str)
	}
	if f.Type == TypeInt || f.Type == TypeTimestamp {
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return nil, &EncodingError{Field: f.Name, Value: str}
		}
		return n, nil
	}
	return str, nil
}

// EncodeRowKey 将记录中的行键字段编码为有序字节串
// prefix 模式下遇到第一个缺失字段即停止，产出合法的扫描前缀
func (s *Schema) EncodeRowKey(rec Record, prefix bool) ([]byte, error) {
	values := make([]string, 0, len(s.RowKey))
	for _, name := range s.RowKey {
		value, ok := rec[name]
		if !ok || value == nil {
			if prefix {
				break
			}
			return nil, &BadRowKeyError{Field: name}
		}
		str, err := s.serializeField(s.fields[name], value)
		if err != nil {
			return nil, err
		}
		if strings.Contains(str, rowKeyDelimiter) {
			return nil, &EncodingError{Field: name, Value: str}
		}
		values = append(values, str)
	}
	return []byte(strings.Join(values, rowKeyDelimiter)), nil
}

// EncodeRowKeyTuple 按行键字段顺序编码一个（可能不完整的）值元组，始终为前缀模式
func (s *Schema) EncodeRowKeyTuple(tuple []any) ([]byte, error) {
	if tuple == nil {
		return nil, nil
	}
	rec := make(Record, len(tuple))
	for i, value := range tuple {
		if i >= len(s.RowKey) {
			break
		}
		if value == nil {
			break
		}
		rec[s.RowKey[i]] = value
	}
	return s.EncodeRowKey(rec, true)
}

// DecodeRowKey 行键字节串 -> 字段值
// 只定义为 EncodeRowKey 的逆操作，喂入异构字节串属于调用方契约违例
func (s *Schema) DecodeRowKey(rowKey []byte) (Record, error) {
	rec := make(Record, len(s.RowKey))
	rest := string(rowKey)
	for _, name := range s.RowKey {
		if rest == "" {
			break
		}
		part := rest
		if idx := strings.Index(rest, rowKeyDelimiter); idx >= 0 {
			part = rest[:idx]
			rest = rest[idx+1:]
		} else {
			rest = ""
		}
		value, err := s.deserializeField(s.fields[name], part)
		if err != nil {
			return nil, err
		}
		rec[name] = value
	}
	return rec, nil
}

// EncodeColumns 列字段 -> family:qualifier 映射
func (s *Schema) EncodeColumns(rec Record) (map[string]string, error) {
	cols := make(map[string]string)
	for _, name := range s.order {
		f := s.fields[name]
		if f.Family == "" {
			continue
		}
		value, ok := rec[name]
		if !ok || value == nil {
			continue
		}
		str, err := s.serializeField(f, value)
		if err != nil {
			return nil, err
		}
		cols[f.Family+":"+name] = str
	}
	return cols, nil
}

// DecodeColumns family:qualifier 映射 -> 列字段值
func (s *Schema) DecodeColumns(cols map[string]string) (Record, error) {
	rec := make(Record, len(cols))
	for key, str := range cols {
		name := key
		if idx := strings.Index(key, ":"); idx >= 0 {
			name = key[idx+1:]
		}
		f, ok := s.fields[name]
		if !ok {
			continue
		}
		value, err := s.deserializeField(f, str)
		if err != nil {
			return nil, err
		}
		rec[name] = value
	}
	return rec, nil
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case int32:
		return int64(v), nil
	}
	return 0, fmt.Errorf("not an integer")
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
