package repository

import (
	"Chirp/internal/model"
	"Chirp/internal/pkg/pagination"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsFeedRepo interface {
	CreateNewsFeed(ctx context.Context, feed *model.NewsFeed) error
	BulkCreateNewsFeeds(ctx context.Context, feeds []*model.NewsFeed) error
	GetUserNewsFeeds(ctx context.Context, userID uint64, limit int) ([]*model.NewsFeed, error)
	PaginateUserNewsFeeds(ctx context.Context, userID uint64, q pagination.Query) (pagination.Page[*model.NewsFeed], error)
}

type NewsFeedRepoImpl struct {
	db *gorm.DB
}

func NewNewsFeedRepo(db *gorm.DB) NewsFeedRepo {
	return &NewsFeedRepoImpl{db: db}
}

// CreateNewsFeed 插入一条信息流记录，重复投递幂等
func (s *NewsFeedRepoImpl) CreateNewsFeed(ctx context.Context, feed *model.NewsFeed) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(feed).Error
}

// BulkCreateNewsFeeds 批量插入信息流记录，扇出批次任务用
// 唯一键冲突跳过，任务重试不会产生重复记录
func (s *NewsFeedRepoImpl) BulkCreateNewsFeeds(ctx context.Context, feeds []*model.NewsFeed) error {
	if len(feeds) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			DoNothing: true,
		}).
		Create(feeds).Error
}

// GetUserNewsFeeds 按时间倒序取用户最近的信息流记录，缓存回填数据源
func (s *NewsFeedRepoImpl) GetUserNewsFeeds(ctx context.Context, userID uint64, limit int) ([]*model.NewsFeed, error) {
	var feeds []*model.NewsFeed
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&feeds)
	if result.Error != nil {
		return nil, result.Error
	}
	return feeds, nil
}

// PaginateUserNewsFeeds 游标分页查询信息流，缓存页耗尽后的数据库读路径
func (s *NewsFeedRepoImpl) PaginateUserNewsFeeds(ctx context.Context, userID uint64, q pagination.Query) (pagination.Page[*model.NewsFeed], error) {
	db := s.db.WithContext(ctx).Model(&model.NewsFeed{}).Where("user_id = ?", userID)
	return pagination.PaginateQuery[*model.NewsFeed](db, "created_at", q)
}
