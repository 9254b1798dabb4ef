package repository

import (
	"Chirp/internal/model"
	"Chirp/internal/pkg/pagination"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	UpdateCommentContent(ctx context.Context, commentID uint64, content string) error
	DeleteComment(ctx context.Context, commentID uint64) error
	PaginateTweetComments(ctx context.Context, tweetID uint64, q pagination.Query) (pagination.Page[*model.Comment], error)
	CountByTweet(ctx context.Context, tweetID uint64) (int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

// CreateComment 创建评论
func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID 按 ID 查询评论，不存在时返回 (nil, nil)
func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	result := s.db.WithContext(ctx).First(&comment, commentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &comment, nil
}

// UpdateCommentContent 更新评论内容
func (s *CommentRepoImpl) UpdateCommentContent(ctx context.Context, commentID uint64, content string) error {
	return s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("content", content).Error
}

// DeleteComment 删除评论
func (s *CommentRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}

// PaginateTweetComments 游标分页查询推文下的评论
func (s *CommentRepoImpl) PaginateTweetComments(ctx context.Context, tweetID uint64, q pagination.Query) (pagination.Page[*model.Comment], error) {
	db := s.db.WithContext(ctx).Model(&model.Comment{}).Where("tweet_id = ?", tweetID)
	return pagination.PaginateQuery[*model.Comment](db, "created_at", q)
}

// CountByTweet 推文下的评论数，计数缓存回填时的权威值
func (s *CommentRepoImpl) CountByTweet(ctx context.Context, tweetID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("tweet_id = ?", tweetID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
