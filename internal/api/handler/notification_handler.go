package handler

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/pkg/response"
	"Chirp/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationSvc: notificationSvc,
	}
}

func (s *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetUint64("user_id")

	q, err := bindCursorQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	notifications, err := s.notificationSvc.GetUserNotifications(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, notifications)
}

func (s *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	count, err := s.notificationSvc.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.UnreadCountDTO{UnreadCount: count})
}

func (s *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetUint64("user_id")
	notificationID, err := parseIDParam(c, "notification_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.notificationSvc.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
