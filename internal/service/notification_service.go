package service

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/model"
	"Chirp/internal/pkg/cache"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/pkg/pagination"
	"Chirp/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

type NotificationService interface {
	Notify(ctx context.Context, recipientID, actorID uint64, verb, targetType string, targetID uint64) error
	GetUserNotifications(ctx context.Context, recipientID uint64, q pagination.Query) (*dto.NotificationListDTO, error)
	GetUnreadCount(ctx context.Context, recipientID uint64) (int64, error)
	MarkRead(ctx context.Context, recipientID, notificationID uint64) error
	MarkAllRead(ctx context.Context, recipientID uint64) error
}

type NotificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
	counterCache     *cache.CounterCache
}

func NewNotificationService(notificationRepo repository.NotificationRepo,
	counterCache *cache.CounterCache) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		counterCache:     counterCache,
	}
}

// Notify 投递一条通知，自己触发的动作不通知自己
func (s *NotificationServiceImpl) Notify(ctx context.Context, recipientID, actorID uint64, verb, targetType string, targetID uint64) error {
	if recipientID == actorID {
		return nil
	}
	notification := &model.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
		TargetType:  targetType,
		TargetID:    targetID,
		Unread:      true,
		CreatedAt:   time.Now(),
	}
	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		return err
	}
	if _, err := s.counterCache.Incr(ctx, s.unreadKey(recipientID), s.unreadSource(recipientID)); err != nil {
		log.WarnContext(ctx, "bump unread counter failed", "recipient_id", recipientID, "err", err)
	}
	return nil
}

// GetUserNotifications 游标分页获取通知列表
func (s *NotificationServiceImpl) GetUserNotifications(ctx context.Context, recipientID uint64, q pagination.Query) (*dto.NotificationListDTO, error) {
	page, err := s.notificationRepo.PaginateUserNotifications(ctx, recipientID, q)
	if err != nil {
		return nil, err
	}
	results := make([]*dto.NotificationDTO, 0, len(page.Results))
	for _, notification := range page.Results {
		results = append(results, &dto.NotificationDTO{
			ID:          notification.ID,
			ActorID:     notification.ActorID,
			Verb:        notification.Verb,
			TargetType:  notification.TargetType,
			TargetID:    notification.TargetID,
			Unread:      notification.Unread,
			CreatedAt:   notification.CreatedAt.Format(time.RFC3339Nano),
			CreatedAtTS: notification.CreatedAt.UnixMicro(),
		})
	}
	return &dto.NotificationListDTO{HasNextPage: page.HasNextPage, Results: results}, nil
}

// GetUnreadCount 未读通知数，读穿计数缓存
func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, recipientID uint64) (int64, error) {
	return s.counterCache.Get(ctx, s.unreadKey(recipientID), s.unreadSource(recipientID))
}

// MarkRead 标记单条已读，只有真的翻转了状态才调整计数
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, recipientID, notificationID uint64) error {
	updated, err := s.notificationRepo.MarkRead(ctx, recipientID, notificationID)
	if err != nil {
		return err
	}
	if updated {
		if _, err := s.counterCache.Decr(ctx, s.unreadKey(recipientID), s.unreadSource(recipientID)); err != nil {
			log.WarnContext(ctx, "drop unread counter failed", "recipient_id", recipientID, "err", err)
		}
	}
	return nil
}

// MarkAllRead 全部标记已读，直接作废计数缓存，下次读时回填 0
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, recipientID uint64) error {
	if _, err := s.notificationRepo.MarkAllRead(ctx, recipientID); err != nil {
		return err
	}
	s.counterCache.Invalidate(ctx, s.unreadKey(recipientID))
	return nil
}

func (s *NotificationServiceImpl) unreadKey(recipientID uint64) string {
	return consts.NotificationUnreadKey + strconv.FormatUint(recipientID, 10)
}

func (s *NotificationServiceImpl) unreadSource(recipientID uint64) cache.CountSource {
	return func(ctx context.Context) (int64, error) {
		return s.notificationRepo.GetUnreadCount(ctx, recipientID)
	}
}
