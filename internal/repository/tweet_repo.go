package repository

import (
	"Chirp/internal/model"
	"Chirp/internal/pkg/pagination"
	"context"
	"errors"

	"gorm.io/gorm"
)

type TweetRepo interface {
	CreateTweet(ctx context.Context, tweet *model.Tweet) error
	GetTweetByID(ctx context.Context, tweetID uint64) (*model.Tweet, error)
	GetTweetsByIDs(ctx context.Context, tweetIDs []uint64) ([]*model.Tweet, error)
	GetUserTweets(ctx context.Context, userID uint64, limit int) ([]*model.Tweet, error)
	PaginateUserTweets(ctx context.Context, userID uint64, q pagination.Query) (pagination.Page[*model.Tweet], error)
	AdjustLikesCount(ctx context.Context, tweetID uint64, delta int) error
	AdjustCommentsCount(ctx context.Context, tweetID uint64, delta int) error
	SyncCounters(ctx context.Context, tweetID uint64, likesCount, commentsCount int64) error
}

type TweetRepoImpl struct {
	db *gorm.DB
}

func NewTweetRepo(db *gorm.DB) TweetRepo {
	return &TweetRepoImpl{db: db}
}

// CreateTweet 创建推文
func (s *TweetRepoImpl) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	return s.db.WithContext(ctx).Create(tweet).Error
}

// GetTweetByID 按 ID 查询推文，不存在时返回 (nil, nil)
func (s *TweetRepoImpl) GetTweetByID(ctx context.Context, tweetID uint64) (*model.Tweet, error) {
	var tweet model.Tweet
	result := s.db.WithContext(ctx).First(&tweet, tweetID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &tweet, nil
}

// GetTweetsByIDs 批量查询推文
func (s *TweetRepoImpl) GetTweetsByIDs(ctx context.Context, tweetIDs []uint64) ([]*model.Tweet, error) {
	if len(tweetIDs) == 0 {
		return nil, nil
	}
	var tweets []*model.Tweet
	result := s.db.WithContext(ctx).Where("id IN ?", tweetIDs).Find(&tweets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tweets, nil
}

// GetUserTweets 按发布时间倒序取某个用户最近的推文
func (s *TweetRepoImpl) GetUserTweets(ctx context.Context, userID uint64, limit int) ([]*model.Tweet, error) {
	var tweets []*model.Tweet
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&tweets)
	if result.Error != nil {
		return nil, result.Error
	}
	return tweets, nil
}

// PaginateUserTweets 游标分页查询用户推文，缓存失效时的兜底读路径
func (s *TweetRepoImpl) PaginateUserTweets(ctx context.Context, userID uint64, q pagination.Query) (pagination.Page[*model.Tweet], error) {
	db := s.db.WithContext(ctx).Model(&model.Tweet{}).Where("user_id = ?", userID)
	return pagination.PaginateQuery[*model.Tweet](db, "created_at", q)
}

// AdjustLikesCount 原子调整点赞数，避免读改写竞态
func (s *TweetRepoImpl) AdjustLikesCount(ctx context.Context, tweetID uint64, delta int) error {
	return s.db.WithContext(ctx).
		Model(&model.Tweet{}).
		Where("id = ?", tweetID).
		UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error
}

// AdjustCommentsCount 原子调整评论数
func (s *TweetRepoImpl) AdjustCommentsCount(ctx context.Context, tweetID uint64, delta int) error {
	return s.db.WithContext(ctx).
		Model(&model.Tweet{}).
		Where("id = ?", tweetID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + ?", delta)).Error
}

// SyncCounters 用权威计数覆写冗余计数列，对账任务用
func (s *TweetRepoImpl) SyncCounters(ctx context.Context, tweetID uint64, likesCount, commentsCount int64) error {
	return s.db.WithContext(ctx).
		Model(&model.Tweet{}).
		Where("id = ?", tweetID).
		UpdateColumns(map[string]interface{}{
			"likes_count":    likesCount,
			"comments_count": commentsCount,
		}).Error
}
