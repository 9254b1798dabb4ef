package repository

import (
	"Chirp/internal/pkg/widecolumn"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowingRowKeyReversesLeadingID(t *testing.T) {
	schema, err := newFollowingSchema()
	require.NoError(t, err)

	// 首字段定宽补零后整体翻转，顺序 ID 不会在行键空间里扎堆
	key, err := schema.EncodeRowKey(widecolumn.Record{
		"from_user_id": uint64(42),
		"created_at":   int64(1700000000000000),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "2400000000000000:0001700000000000", string(key))

	rec, err := schema.DecodeRowKey(key)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec["from_user_id"])
	assert.Equal(t, int64(1700000000000000), rec["created_at"])
}

func TestFollowerRowKeyReversesLeadingID(t *testing.T) {
	schema, err := newFollowerSchema()
	require.NoError(t, err)

	key, err := schema.EncodeRowKey(widecolumn.Record{
		"to_user_id": uint64(42),
		"created_at": int64(1700000000000000),
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "2400000000000000:0001700000000000", string(key))
}

func TestFollowingPrefixScanSurvivesReversal(t *testing.T) {
	schema, err := newFollowingSchema()
	require.NoError(t, err)

	// 翻转是定宽字段内的翻转，同一用户的前缀仍然唯一且定长，
	// 前缀扫描不受影响
	prefix, err := schema.EncodeRowKeyTuple([]any{uint64(42)})
	require.NoError(t, err)
	assert.Equal(t, "2400000000000000", string(prefix))

	older, err := schema.EncodeRowKey(widecolumn.Record{
		"from_user_id": uint64(42),
		"created_at":   int64(1000),
	}, false)
	require.NoError(t, err)
	newer, err := schema.EncodeRowKey(widecolumn.Record{
		"from_user_id": uint64(42),
		"created_at":   int64(2000),
	}, false)
	require.NoError(t, err)

	// 同一前缀下仍按 created_at 升序排列，倒序扫描得到时间倒序
	assert.Equal(t, string(prefix), string(older[:16]))
	assert.Equal(t, string(prefix), string(newer[:16]))
	assert.Less(t, string(older), string(newer))
}
