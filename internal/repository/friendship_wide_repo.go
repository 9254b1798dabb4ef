package repository

import (
	"Chirp/internal/pkg/widecolumn"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// 双写镜像表：followings 按关注方聚簇，followers 按被关注方聚簇
// 首字段翻转编码打散顺序 ID 的热点，行键尾部是微秒时间戳，
// 倒序扫描即按关注时间倒序
func newFollowingSchema() (*widecolumn.Schema, error) {
	return widecolumn.NewSchema("user_followings",
		[]string{"from_user_id", "created_at"},
		[]widecolumn.Field{
			{Name: "from_user_id", Type: widecolumn.TypeInt, Reverse: true},
			{Name: "created_at", Type: widecolumn.TypeTimestamp},
			{Name: "to_user_id", Type: widecolumn.TypeInt, Family: "cf"},
		})
}

func newFollowerSchema() (*widecolumn.Schema, error) {
	return widecolumn.NewSchema("user_followers",
		[]string{"to_user_id", "created_at"},
		[]widecolumn.Field{
			{Name: "to_user_id", Type: widecolumn.TypeInt, Reverse: true},
			{Name: "created_at", Type: widecolumn.TypeTimestamp},
			{Name: "from_user_id", Type: widecolumn.TypeInt, Family: "cf"},
		})
}

// FriendshipWideRepoImpl 关注关系的宽列存储实现
type FriendshipWideRepoImpl struct {
	followings *widecolumn.Table
	followers  *widecolumn.Table
}

func NewFriendshipWideRepo(db *mongo.Database) (FriendshipRepo, error) {
	followingSchema, err := newFollowingSchema()
	if err != nil {
		return nil, err
	}
	followerSchema, err := newFollowerSchema()
	if err != nil {
		return nil, err
	}
	return &FriendshipWideRepoImpl{
		followings: widecolumn.NewTable(db, followingSchema),
		followers:  widecolumn.NewTable(db, followerSchema),
	}, nil
}

// Follow 建立关注关系，两张镜像表各写一行
func (s *FriendshipWideRepoImpl) Follow(ctx context.Context, fromUserID, toUserID uint64, createdAt time.Time) error {
	ts := createdAt.UnixMicro()
	err := s.followings.Create(ctx, widecolumn.Record{
		"from_user_id": fromUserID,
		"created_at":   ts,
		"to_user_id":   toUserID,
	})
	if err != nil {
		return err
	}
	return s.followers.Create(ctx, widecolumn.Record{
		"to_user_id":   toUserID,
		"created_at":   ts,
		"from_user_id": fromUserID,
	})
}

// Unfollow 解除关注关系
// 行键里带时间戳，先在 followings 里定位这条边再删两张表
func (s *FriendshipWideRepoImpl) Unfollow(ctx context.Context, fromUserID, toUserID uint64) error {
	edge, err := s.findEdge(ctx, fromUserID, toUserID)
	if err != nil || edge == nil {
		return err
	}

	ts := edge.CreatedAt.UnixMicro()
	err = s.followings.Delete(ctx, widecolumn.Record{
		"from_user_id": fromUserID,
		"created_at":   ts,
	})
	if err != nil {
		return err
	}
	return s.followers.Delete(ctx, widecolumn.Record{
		"to_user_id":   toUserID,
		"created_at":   ts,
	})
}

// HasFollowed 是否已关注
func (s *FriendshipWideRepoImpl) HasFollowed(ctx context.Context, fromUserID, toUserID uint64) (bool, error) {
	edge, err := s.findEdge(ctx, fromUserID, toUserID)
	if err != nil {
		return false, err
	}
	return edge != nil, nil
}

// GetFollowings 获取关注列表，倒序扫描即按关注时间倒序
func (s *FriendshipWideRepoImpl) GetFollowings(ctx context.Context, fromUserID uint64) ([]*FollowEdge, error) {
	records, err := s.followings.Filter(ctx, nil, nil, []any{fromUserID}, 0, true)
	if err != nil {
		return nil, err
	}
	edges := make([]*FollowEdge, 0, len(records))
	for _, rec := range records {
		edges = append(edges, followingRecordToEdge(rec))
	}
	return edges, nil
}

// GetFollowers 获取粉丝列表，按关注时间倒序
func (s *FriendshipWideRepoImpl) GetFollowers(ctx context.Context, toUserID uint64) ([]*FollowEdge, error) {
	records, err := s.followers.Filter(ctx, nil, nil, []any{toUserID}, 0, true)
	if err != nil {
		return nil, err
	}
	edges := make([]*FollowEdge, 0, len(records))
	for _, rec := range records {
		edges = append(edges, followerRecordToEdge(rec))
	}
	return edges, nil
}

// GetFollowerIDs 获取全部粉丝 ID
func (s *FriendshipWideRepoImpl) GetFollowerIDs(ctx context.Context, toUserID uint64) ([]uint64, error) {
	edges, err := s.GetFollowers(ctx, toUserID)
	if err != nil {
		return nil, err
	}
	followerIDs := make([]uint64, 0, len(edges))
	for _, edge := range edges {
		followerIDs = append(followerIDs, edge.FromUserID)
	}
	return followerIDs, nil
}

// GetFollowingCount 关注数
func (s *FriendshipWideRepoImpl) GetFollowingCount(ctx context.Context, fromUserID uint64) (int64, error) {
	edges, err := s.GetFollowings(ctx, fromUserID)
	if err != nil {
		return 0, err
	}
	return int64(len(edges)), nil
}

// GetFollowerCount 粉丝数
func (s *FriendshipWideRepoImpl) GetFollowerCount(ctx context.Context, toUserID uint64) (int64, error) {
	edges, err := s.GetFollowers(ctx, toUserID)
	if err != nil {
		return 0, err
	}
	return int64(len(edges)), nil
}

func (s *FriendshipWideRepoImpl) findEdge(ctx context.Context, fromUserID, toUserID uint64) (*FollowEdge, error) {
	edges, err := s.GetFollowings(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		if edge.ToUserID == toUserID {
			return edge, nil
		}
	}
	return nil, nil
}

func followingRecordToEdge(rec widecolumn.Record) *FollowEdge {
	return &FollowEdge{
		FromUserID: uint64(rec["from_user_id"].(int64)),
		ToUserID:   uint64(rec["to_user_id"].(int64)),
		CreatedAt:  time.UnixMicro(rec["created_at"].(int64)),
	}
}

func followerRecordToEdge(rec widecolumn.Record) *FollowEdge {
	return &FollowEdge{
		FromUserID: uint64(rec["from_user_id"].(int64)),
		ToUserID:   uint64(rec["to_user_id"].(int64)),
		CreatedAt:  time.UnixMicro(rec["created_at"].(int64)),
	}
}
