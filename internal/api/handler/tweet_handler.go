package handler

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/pkg/response"
	"Chirp/internal/pkg/util"
	"Chirp/internal/service"

	"github.com/gin-gonic/gin"
)

type TweetHandler struct {
	tweetSvc service.TweetService
}

func NewTweetHandler(tweetSvc service.TweetService) *TweetHandler {
	return &TweetHandler{
		tweetSvc: tweetSvc,
	}
}

func (s *TweetHandler) CreateTweet(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CreateTweetDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	tweet, err := s.tweetSvc.CreateTweet(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet)
}

func (s *TweetHandler) GetTweet(c *gin.Context) {
	tweetID, err := parseIDParam(c, "tweet_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	tweet, err := s.tweetSvc.GetTweet(c.Request.Context(), tweetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweet)
}

func (s *TweetHandler) GetUserTweets(c *gin.Context) {
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

	tweets, err := s.tweetSvc.GetUserTweets(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tweets)
}
