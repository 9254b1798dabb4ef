package handler

import (
	"Chirp/internal/pkg/response"
	"Chirp/internal/service"

	"github.com/gin-gonic/gin"
)

type NewsFeedHandler struct {
	newsFeedSvc service.NewsFeedService
}

func NewNewsFeedHandler(newsFeedSvc service.NewsFeedService) *NewsFeedHandler {
	return &NewsFeedHandler{
		newsFeedSvc: newsFeedSvc,
	}
}

func (s *NewsFeedHandler) GetNewsFeeds(c *gin.Context) {
	userID := c.GetUint64("user_id")

	q, err := bindCursorQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	feeds, err := s.newsFeedSvc.GetUserNewsFeeds(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, feeds)
}
