package repository

import (
	"Chirp/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowEdge 一条关注边，两套存储后端共用的查询结果形态
type FollowEdge struct {
	FromUserID uint64
	ToUserID   uint64
	CreatedAt  time.Time
}

// FriendshipRepo 关注关系存储
// MySQL 与宽列两套实现共用同一接口，由上层按灰度开关路由
type FriendshipRepo interface {
	Follow(ctx context.Context, fromUserID, toUserID uint64, createdAt time.Time) error
	Unfollow(ctx context.Context, fromUserID, toUserID uint64) error
	HasFollowed(ctx context.Context, fromUserID, toUserID uint64) (bool, error)
	GetFollowings(ctx context.Context, fromUserID uint64) ([]*FollowEdge, error)
	GetFollowers(ctx context.Context, toUserID uint64) ([]*FollowEdge, error)
	GetFollowerIDs(ctx context.Context, toUserID uint64) ([]uint64, error)
	GetFollowingCount(ctx context.Context, fromUserID uint64) (int64, error)
	GetFollowerCount(ctx context.Context, toUserID uint64) (int64, error)
}

type FriendshipRepoImpl struct {
	db *gorm.DB
}

func NewFriendshipRepo(db *gorm.DB) FriendshipRepo {
	return &FriendshipRepoImpl{db: db}
}

// Follow 建立关注关系，重复关注幂等
func (s *FriendshipRepoImpl) Follow(ctx context.Context, fromUserID, toUserID uint64, createdAt time.Time) error {
	friendship := &model.Friendship{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		CreatedAt:  createdAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(friendship).Error
}

// Unfollow 解除关注关系，不存在时静默成功
func (s *FriendshipRepoImpl) Unfollow(ctx context.Context, fromUserID, toUserID uint64) error {
	return s.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Delete(&model.Friendship{}).Error
}

// HasFollowed 是否已关注
func (s *FriendshipRepoImpl) HasFollowed(ctx context.Context, fromUserID, toUserID uint64) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Friendship{}).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// GetFollowings 获取关注列表，按关注时间倒序
func (s *FriendshipRepoImpl) GetFollowings(ctx context.Context, fromUserID uint64) ([]*FollowEdge, error) {
	var friendships []*model.Friendship
	result := s.db.WithContext(ctx).
		Where("from_user_id = ?", fromUserID).
		Order("created_at desc").
		Find(&friendships)
	if result.Error != nil {
		return nil, result.Error
	}
	return toFollowEdges(friendships), nil
}

// GetFollowers 获取粉丝列表，按关注时间倒序
func (s *FriendshipRepoImpl) GetFollowers(ctx context.Context, toUserID uint64) ([]*FollowEdge, error) {
	var friendships []*model.Friendship
	result := s.db.WithContext(ctx).
		Where("to_user_id = ?", toUserID).
		Order("created_at desc").
		Find(&friendships)
	if result.Error != nil {
		return nil, result.Error
	}
	return toFollowEdges(friendships), nil
}

// GetFollowerIDs 获取全部粉丝 ID，扇出任务用
func (s *FriendshipRepoImpl) GetFollowerIDs(ctx context.Context, toUserID uint64) ([]uint64, error) {
	var followerIDs []uint64
	result := s.db.WithContext(ctx).
		Model(&model.Friendship{}).
		Where("to_user_id = ?", toUserID).
		Pluck("from_user_id", &followerIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return followerIDs, nil
}

// GetFollowingCount 关注数
func (s *FriendshipRepoImpl) GetFollowingCount(ctx context.Context, fromUserID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Friendship{}).
		Where("from_user_id = ?", fromUserID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetFollowerCount 粉丝数
func (s *FriendshipRepoImpl) GetFollowerCount(ctx context.Context, toUserID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Friendship{}).
		Where("to_user_id = ?", toUserID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func toFollowEdges(friendships []*model.Friendship) []*FollowEdge {
	edges := make([]*FollowEdge, 0, len(friendships))
	for _, f := range friendships {
		edges = append(edges, &FollowEdge{
			FromUserID: f.FromUserID,
			ToUserID:   f.ToUserID,
			CreatedAt:  f.CreatedAt,
		})
	}
	return edges
}
