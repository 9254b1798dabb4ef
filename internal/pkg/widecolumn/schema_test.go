package widecolumn

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowingsSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema("user_followings",
		[]string{"from_user_id", "created_at"},
		[]Field{
			{Name: "from_user_id", Type: TypeInt},
			{Name: "created_at", Type: TypeTimestamp},
			{Name: "to_user_id", Type: TypeInt, Family: "cf"},
		})
	require.NoError(t, err)
	return s
}

func TestNewSchemaValidation(t *testing.T) {
	_, err := NewSchema("t", []string{"a"}, []Field{
		{Name: "a", Type: TypeInt},
		{Name: "a", Type: TypeInt},
	})
	assert.Error(t, err, "duplicate field should be rejected")

	_, err = NewSchema("t", []string{"missing"}, []Field{
		{Name: "a", Type: TypeInt},
	})
	assert.Error(t, err, "row key field must be defined")

	_, err = NewSchema("t", []string{"a"}, []Field{
		{Name: "a", Type: TypeInt, Family: "cf"},
	})
	assert.Error(t, err, "row key field must not carry a column family")
}

func TestEncodeRowKeyPadding(t *testing.T) {
	s := newFollowingsSchema(t)

	key, err := s.EncodeRowKey(Record{
		"from_user_id": uint64(42),
		"created_at":   int64(1700000000000000),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "0000000000000042:0001700000000000", string(key))
}

func TestEncodeRowKeyOrdering(t *testing.T) {
	s := newFollowingsSchema(t)

	// 同一用户下行键字节序必须等于 created_at 数值序
	timestamps := []int64{1, 999, 1000, 1700000000000000, 1700000000000001}
	keys := make([]string, 0, len(timestamps))
	for _, ts := range timestamps {
		key, err := s.EncodeRowKey(Record{"from_user_id": uint64(7), "created_at": ts}, false)
		require.NoError(t, err)
		keys = append(keys, string(key))
	}
	assert.True(t, sort.StringsAreSorted(keys))

	// 用户维度同理，9 和 10 这类位数变化不能乱序
	low, err := s.EncodeRowKey(Record{"from_user_id": uint64(9), "created_at": int64(1)}, false)
	require.NoError(t, err)
	high, err := s.EncodeRowKey(Record{"from_user_id": uint64(10), "created_at": int64(1)}, false)
	require.NoError(t, err)
	assert.Less(t, string(low), string(high))
}

func TestEncodeRowKeyReverseField(t *testing.T) {
	s, err := NewSchema("t", []string{"user_id", "created_at"}, []Field{
		{Name: "user_id", Type: TypeInt},
		{Name: "created_at", Type: TypeTimestamp, Reverse: true},
		{Name: "v", Type: TypeString, Family: "cf"},
	})
	require.NoError(t, err)

	// Reverse 字段翻转后，时间越新的行键字节序越小
	older, err := s.EncodeRowKey(Record{"user_id": uint64(1), "created_at": int64(1000)}, false)
	require.NoError(t, err)
	newer, err := s.EncodeRowKey(Record{"user_id": uint64(1), "created_at": int64(2000)}, false)
	require.NoError(t, err)
	assert.Less(t, string(newer), string(older))

	rec, err := s.DecodeRowKey(newer)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), rec["created_at"])
}

func TestEncodeRowKeyPrefixMode(t *testing.T) {
	s := newFollowingsSchema(t)

	key, err := s.EncodeRowKey(Record{"from_user_id": uint64(42)}, true)
	require.NoError(t, err)
	assert.Equal(t, "0000000000000042", string(key))

	// 非前缀模式缺字段必须报错
	_, err = s.EncodeRowKey(Record{"from_user_id": uint64(42)}, false)
	var badKey *BadRowKeyError
	require.ErrorAs(t, err, &badKey)
	assert.Equal(t, "created_at", badKey.Field)
}

func TestEncodeRowKeyTuple(t *testing.T) {
	s := newFollowingsSchema(t)

	key, err := s.EncodeRowKeyTuple([]any{uint64(42), int64(1700000000000000)})
	require.NoError(t, err)
	assert.Equal(t, "0000000000000042:0001700000000000", string(key))

	key, err = s.EncodeRowKeyTuple([]any{uint64(42)})
	require.NoError(t, err)
	assert.Equal(t, "0000000000000042", string(key))

	key, err = s.EncodeRowKeyTuple(nil)
	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestEncodeRowKeyErrors(t *testing.T) {
	s, err := NewSchema("t", []string{"id", "name"}, []Field{
		{Name: "id", Type: TypeInt},
		{Name: "name", Type: TypeString},
		{Name: "v", Type: TypeString, Family: "cf"},
	})
	require.NoError(t, err)

	var encErr *EncodingError

	// 负数没有定义良好的补零序
	_, err = s.EncodeRowKey(Record{"id": int64(-1), "name": "a"}, false)
	require.ErrorAs(t, err, &encErr)

	// 超出 16 位定宽
	_, err = s.EncodeRowKey(Record{"id": int64(10000000000000000), "name": "a"}, false)
	require.ErrorAs(t, err, &encErr)

	// 字符串字段不能包含行键分隔符
	_, err = s.EncodeRowKey(Record{"id": int64(1), "name": "a:b"}, false)
	require.ErrorAs(t, err, &encErr)

	// 类型不匹配
	_, err = s.EncodeRowKey(Record{"id": "not-a-number", "name": "a"}, false)
	require.ErrorAs(t, err, &encErr)
}

func TestRowKeyRoundTrip(t *testing.T) {
	s := newFollowingsSchema(t)

	key, err := s.EncodeRowKey(Record{
		"from_user_id": uint64(42),
		"created_at":   int64(1700000000000000),
	}, false)
	require.NoError(t, err)

	rec, err := s.DecodeRowKey(key)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec["from_user_id"])
	assert.Equal(t, int64(1700000000000000), rec["created_at"])
}

func TestColumnsRoundTrip(t *testing.T) {
	s := newFollowingsSchema(t)

	cols, err := s.EncodeColumns(Record{
		"from_user_id": uint64(42),
		"created_at":   int64(1700000000000000),
		"to_user_id":   uint64(99),
	})
	require.NoError(t, err)
	// 行键字段不进列，列键带 family 前缀
	require.Len(t, cols, 1)
	assert.Contains(t, cols, "cf:to_user_id")

	rec, err := s.DecodeColumns(cols)
	require.NoError(t, err)
	assert.Equal(t, int64(99), rec["to_user_id"])
}

func TestDecodeColumnsSkipsUnknownField(t *testing.T) {
	s := newFollowingsSchema(t)

	rec, err := s.DecodeColumns(map[string]string{
		"cf:to_user_id": "0000000000000099",
		"cf:deprecated": "whatever",
	})
	require.NoError(t, err)
	assert.Len(t, rec, 1)
	assert.Equal(t, int64(99), rec["to_user_id"])
}
