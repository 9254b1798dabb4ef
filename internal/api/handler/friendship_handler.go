package handler

import (
	"Chirp/internal/pkg/response"
	"Chirp/internal/service"

	"github.com/gin-gonic/gin"
)

type FriendshipHandler struct {
	friendshipSvc service.FriendshipService
}

func NewFriendshipHandler(friendshipSvc service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipSvc: friendshipSvc,
	}
}

func (s *FriendshipHandler) Follow(c *gin.Context) {
	fromUserID := c.GetUint64("user_id")
	toUserID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.friendshipSvc.Follow(c.Request.Context(), fromUserID, toUserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FriendshipHandler) Unfollow(c *gin.Context) {
	fromUserID := c.GetUint64("user_id")
	toUserID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.friendshipSvc.Unfollow(c.Request.Context(), fromUserID, toUserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FriendshipHandler) GetFollowings(c *gin.Context) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	q, err := bindCursorQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	followings, err := s.friendshipSvc.GetFollowings(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followings)
}

func (s *FriendshipHandler) GetFollowers(c *gin.Context) {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	q, err := bindCursorQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	followers, err := s.friendshipSvc.GetFollowers(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followers)
}

func (s *FriendshipHandler) GetStat(c *gin.Context) {
	fromUserID := c.GetUint64("user_id")
	toUserID, err := parseIDParam(c, "user_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	stat, err := s.friendshipSvc.GetStat(c.Request.Context(), fromUserID, toUserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stat)
}
