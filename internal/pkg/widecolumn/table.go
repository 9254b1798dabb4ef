package widecolumn

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Table 把一个 Schema 映射到排序 KV 后端（MongoDB，_id 存编码后的行键）
// _id 的字符集只有数字和冒号，Mongo 的字符串排序即字节序，范围扫描语义成立
type Table struct {
	db     *mongo.Database
	schema *Schema
}

type rowDoc struct {
	Key  string            `bson:"_id"`
	Cols map[string]string `bson:"cols"`
}

func NewTable(db *mongo.Database, schema *Schema) *Table {
	return &Table{db: db, schema: schema}
}

func (t *Table) Schema() *Schema {
	return t.schema
}

func (t *Table) collection() *mongo.Collection {
	return t.db.Collection(t.schema.Table)
}

// Create 写入一行
// 重复行键为 last-write-wins 覆盖写，与 MySQL 路径的唯一约束语义不同（见 DESIGN.md）
func (t *Table) Create(ctx context.Context, rec Record) error {
	rowKey, err := t.schema.EncodeRowKey(rec, false)
	if err != nil {
		return err
	}
	cols, err := t.schema.EncodeColumns(rec)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return &EmptyColumnError{}
	}

	doc := rowDoc{Key: string(rowKey), Cols: cols}
	_, err = t.collection().ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return pkgerrors.Wrapf(err, "widecolumn: put row into %s", t.schema.Table)
	}
	return nil
}

// Get 点查，要求完整行键；未命中返回 (nil, nil) 而不是错误
func (t *Table) Get(ctx context.Context, rec Record) (Record, error) {
	rowKey, err := t.schema.EncodeRowKey(rec, false)
	if err != nil {
		return nil, err
	}

	var doc rowDoc
	err = t.collection().FindOne(ctx, bson.M{"_id": string(rowKey)}).Decode(&doc)
	if err != nil {
		if pkgerrors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, pkgerrors.Wrapf(err, "widecolumn: get row from %s", t.schema.Table)
	}
	return t.decodeRow(doc)
}

// Filter 范围扫描
// start/stop/prefix 是（可不完整的）行键元组；排序纯粹按编码后行键的字节序
// reverse 时 start 是扫描起点的高端，stop 是低端开区间，对齐 HBase scan 语义
func (t *Table) Filter(ctx context.Context, start, stop, prefix []any, limit int64, reverse bool) ([]Record, error) {
	rowStart, err := t.schema.EncodeRowKeyTuple(start)
	if err != nil {
		return nil, err
	}
	rowStop, err := t.schema.EncodeRowKeyTuple(stop)
	if err != nil {
		return nil, err
	}
	rowPrefix, err := t.schema.EncodeRowKeyTuple(prefix)
	if err != nil {
		return nil, err
	}

	filter := buildScanFilter(rowStart, rowStop, rowPrefix, reverse)
	sortDir := 1
	if reverse {
		sortDir = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: sortDir}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := t.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "widecolumn: scan %s", t.schema.Table)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var results []Record
	for cursor.Next(ctx) {
		var doc rowDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, pkgerrors.Wrapf(err, "widecolumn: decode row from %s", t.schema.Table)
		}
		rec, err := t.decodeRow(doc)
		if err != nil {
			return nil, err
		}
		results = append(results, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, pkgerrors.Wrapf(err, "widecolumn: scan %s", t.schema.Table)
	}
	return results, nil
}

// Delete 按完整行键删除，行不存在时静默成功
func (t *Table) Delete(ctx context.Context, rec Record) error {
	rowKey, err := t.schema.EncodeRowKey(rec, false)
	if err != nil {
		return err
	}
	_, err = t.collection().DeleteOne(ctx, bson.M{"_id": string(rowKey)})
	if err != nil {
		return pkgerrors.Wrapf(err, "widecolumn: delete row from %s", t.schema.Table)
	}
	return nil
}

func (t *Table) decodeRow(doc rowDoc) (Record, error) {
	rec, err := t.schema.DecodeRowKey([]byte(doc.Key))
	if err != nil {
		return nil, err
	}
	cols, err := t.schema.DecodeColumns(doc.Cols)
	if err != nil {
		return nil, err
	}
	for name, value := range cols {
		rec[name] = value
	}
	return rec, nil
}

// buildScanFilter 把 start/stop/prefix 边界翻译为 _id 上的区间条件
func buildScanFilter(start, stop, prefix []byte, reverse bool) bson.M {
	cond := bson.M{}
	if len(prefix) > 0 {
		cond["$gte"] = string(prefix)
		if succ := prefixSuccessor(prefix); succ != nil {
			cond["$lt"] = string(succ)
		}
	}
	if start != nil {
		if reverse {
			tightenUpper(cond, "$lte", string(start))
		} else {
			tightenLower(cond, "$gte", string(start))
		}
	}
	if stop != nil {
		if reverse {
			tightenLower(cond, "$gt", string(stop))
		} else {
			tightenUpper(cond, "$lt", string(stop))
		}
	}
	if len(cond) == 0 {
		return bson.M{}
	}
	return bson.M{"_id": cond}
}

// prefixSuccessor 返回大于所有带该前缀的键的最小键；全 0xff 时无上界
func prefixSuccessor(prefix []byte) []byte {
	succ := make([]byte, len(prefix))
	copy(succ, prefix)
	for i := len(succ) - 1; i >= 0; i-- {
		if succ[i] < 0xff {
			succ[i]++
			return succ[:i+1]
		}
	}
	return nil
}

func tightenLower(cond bson.M, op, value string) {
	for _, existing := range []string{"$gte", "$gt"} {
		cur, ok := cond[existing].(string)
		if !ok {
			continue
		}
		if cur > value || (cur == value && existing == "$gt") {
			return
		}
		delete(cond, existing)
	}
	cond[op] = value
}

func tightenUpper(cond bson.M, op, value string) {
	for _, existing := range []string{"$lte", "$lt"} {
		cur, ok := cond[existing].(string)
		if !ok {
			continue
		}
		if cur < value || (cur == value && existing == "$lt") {
			return
		}
		delete(cond, existing)
	}
	cond[op] = value
}
