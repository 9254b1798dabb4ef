package handler

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/pkg/response"
	"Chirp/internal/pkg/util"
	"Chirp/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.CreateComment(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateCommentDTO
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), userID, commentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.commentSvc.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentHandler) GetTweetComments(c *gin.Context) {
	tweetID, err := parseIDParam(c, "tweet_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	q, err := bindCursorQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := s.commentSvc.GetTweetComments(c.Request.Context(), tweetID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}
