package repository

import (
	"Chirp/internal/model"
	"Chirp/internal/pkg/pagination"
	"context"

	"gorm.io/gorm"
)

type NotificationRepo interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	PaginateUserNotifications(ctx context.Context, recipientID uint64, q pagination.Query) (pagination.Page[*model.Notification], error)
	GetUnreadCount(ctx context.Context, recipientID uint64) (int64, error)
	MarkRead(ctx context.Context, recipientID, notificationID uint64) (bool, error)
	MarkAllRead(ctx context.Context, recipientID uint64) (int64, error)
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db: db}
}

// CreateNotification 创建通知
func (s *NotificationRepoImpl) CreateNotification(ctx context.Context, notification *model.Notification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

// PaginateUserNotifications 游标分页查询用户收到的通知
func (s *NotificationRepoImpl) PaginateUserNotifications(ctx context.Context, recipientID uint64, q pagination.Query) (pagination.Page[*model.Notification], error) {
	db := s.db.WithContext(ctx).Model(&model.Notification{}).Where("recipient_id = ?", recipientID)
	return pagination.PaginateQuery[*model.Notification](db, "created_at", q)
}

// GetUnreadCount 未读通知数，计数缓存回填时的权威值
func (s *NotificationRepoImpl) GetUnreadCount(ctx context.Context, recipientID uint64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND unread = ?", recipientID, true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// MarkRead 标记单条通知已读，只允许收件人操作自己的通知
func (s *NotificationRepoImpl) MarkRead(ctx context.Context, recipientID, notificationID uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND recipient_id = ? AND unread = ?", notificationID, recipientID, true).
		Update("unread", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkAllRead 全部标记已读，返回实际更新的条数
func (s *NotificationRepoImpl) MarkAllRead(ctx context.Context, recipientID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND unread = ?", recipientID, true).
		Update("unread", false)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
