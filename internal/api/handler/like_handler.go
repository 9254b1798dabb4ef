package handler

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/pkg/response"
	"Chirp/internal/pkg/util"
	"Chirp/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeSvc service.LikeService
}

func NewLikeHandler(likeSvc service.LikeService) *LikeHandler {
	return &LikeHandler{
		likeSvc: likeSvc,
	}
}

func (s *LikeHandler) Like(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.LikeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.likeSvc.Like(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *LikeHandler) Unlike(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.LikeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.likeSvc.Unlike(c.Request.Context(), userID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *LikeHandler) GetStat(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.LikeDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	stat, err := s.likeSvc.GetStat(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stat)
}
