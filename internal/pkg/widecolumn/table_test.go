package widecolumn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func idCond(t *testing.T, filter bson.M) bson.M {
	t.Helper()
	cond, ok := filter["_id"].(bson.M)
	require.True(t, ok, "filter should constrain _id")
	return cond
}

func TestBuildScanFilterEmpty(t *testing.T) {
	filter := buildScanFilter(nil, nil, nil, false)
	assert.Empty(t, filter)
}

func TestBuildScanFilterForward(t *testing.T) {
	cond := idCond(t, buildScanFilter([]byte("0005"), []byte("0009"), nil, false))
	assert.Equal(t, "0005", cond["$gte"])
	assert.Equal(t, "0009", cond["$lt"])
}

func TestBuildScanFilterReverse(t *testing.T) {
	// 反向扫描时 start 是高端闭区间，stop 是低端开区间
	cond := idCond(t, buildScanFilter([]byte("0009"), []byte("0005"), nil, true))
	assert.Equal(t, "0009", cond["$lte"])
	assert.Equal(t, "0005", cond["$gt"])
}

func TestBuildScanFilterPrefix(t *testing.T) {
	cond := idCond(t, buildScanFilter(nil, nil, []byte("0000000000000042"), false))
	assert.Equal(t, "0000000000000042", cond["$gte"])
	assert.Equal(t, "0000000000000043", cond["$lt"])
}

func TestBuildScanFilterPrefixWithStart(t *testing.T) {
	prefix := []byte("0042")

	// start 在前缀区间内时收紧下界
	cond := idCond(t, buildScanFilter([]byte("0042:7"), nil, prefix, false))
	assert.Equal(t, "0042:7", cond["$gte"])
	assert.Equal(t, "0043", cond["$lt"])

	// start 比前缀下界还松时保留前缀下界
	cond = idCond(t, buildScanFilter([]byte("0041"), nil, prefix, false))
	assert.Equal(t, "0042", cond["$gte"])
}

func TestBuildScanFilterPrefixReverse(t *testing.T) {
	prefix := []byte("0042")

	// 反向扫描 start 收紧的是上界
	cond := idCond(t, buildScanFilter([]byte("0042:5"), nil, prefix, true))
	assert.Equal(t, "0042", cond["$gte"])
	assert.Equal(t, "0042:5", cond["$lte"])
	assert.NotContains(t, cond, "$lt")
}

func TestTightenBoundsEqualValue(t *testing.T) {
	// 相同边界值上保留更严格的操作符
	cond := bson.M{"$gte": "0042"}
	tightenLower(cond, "$gt", "0042")
	assert.Equal(t, "0042", cond["$gt"])
	assert.NotContains(t, cond, "$gte")

	cond = bson.M{"$lte": "0042"}
	tightenUpper(cond, "$lt", "0042")
	assert.Equal(t, "0042", cond["$lt"])
	assert.NotContains(t, cond, "$lte")

	// 反向不成立：已有严格操作符时同值的宽松边界不覆盖
	cond = bson.M{"$gt": "0042"}
	tightenLower(cond, "$gte", "0042")
	assert.Equal(t, "0042", cond["$gt"])
	assert.NotContains(t, cond, "$gte")
}

func TestPrefixSuccessor(t *testing.T) {
	assert.Equal(t, []byte("0043"), prefixSuccessor([]byte("0042")))
	assert.Equal(t, []byte("0000000000000042;"), prefixSuccessor([]byte("0000000000000042:")))

	// 末字节进位
	assert.Equal(t, []byte{0x01}, prefixSuccessor([]byte{0x00, 0xff}))

	// 全 0xff 没有上界
	assert.Nil(t, prefixSuccessor([]byte{0xff, 0xff}))
}
