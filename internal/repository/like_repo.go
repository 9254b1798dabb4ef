package repository

import (
	"Chirp/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepo interface {
	CreateLike(ctx context.Context, like *model.Like) (bool, error)
	DeleteLike(ctx context.Context, userID uint64, targetType model.LikeTargetType, targetID uint64) (bool, error)
	HasLiked(ctx context.Context, userID uint64, targetType model.LikeTargetType, targetID uint64) (bool, error)
	CountByTarget(ctx context.Context, targetType model.LikeTargetType, targetID uint64) (int64, error)
}

type LikeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &LikeRepoImpl{db: db}
}

// CreateLike 点赞，返回是否真的新增了记录
// 重复点赞靠唯一键吞掉，调用方据返回值决定是否调整计数
func (s *LikeRepoImpl) CreateLike(ctx context.Context, like *model.Like) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteLike 取消点赞，返回是否真的删除了记录
func (s *LikeRepoImpl) DeleteLike(ctx context.Context, userID uint64, targetType model.LikeTargetType, targetID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasLiked 是否已点赞
func (s *LikeRepoImpl) HasLiked(ctx context.Context, userID uint64, targetType model.LikeTargetType, targetID uint64) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountByTarget 目标的点赞数，计数缓存回填时的权威值
func (s *LikeRepoImpl) CountByTarget(ctx context.Context, targetType model.LikeTargetType, targetID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
