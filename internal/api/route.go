package api

import (
	"Chirp/internal/api/middleware"
	"Chirp/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			userGroup.POST("", group.UserHandler.CreateUser)
			userGroup.GET("/:user_id", group.UserHandler.GetUserInfo)
			userGroup.GET("/:user_id/tweets", group.TweetHandler.GetUserTweets)
		}

		tweetGroup := apiGroup.Group("/tweet")
		{
			tweetGroup.GET("/:tweet_id", group.TweetHandler.GetTweet)
			tweetGroup.GET("/:tweet_id/comments", group.CommentHandler.GetTweetComments)

			authGroup := tweetGroup.Group("")
			authGroup.Use(middleware.IdentityMiddleware())
			{
				authGroup.POST("", group.TweetHandler.CreateTweet)
			}
		}

		newsfeedGroup := apiGroup.Group("/newsfeed")
		newsfeedGroup.Use(middleware.IdentityMiddleware())
		{
			newsfeedGroup.GET("", group.NewsFeedHandler.GetNewsFeeds)
		}

		friendshipGroup := apiGroup.Group("/friendship")
		{
			friendshipGroup.GET("/:user_id/followings", group.FriendshipHandler.GetFollowings)
			friendshipGroup.GET("/:user_id/followers", group.FriendshipHandler.GetFollowers)

			optGroup := friendshipGroup.Group("")
			optGroup.Use(middleware.IdentityOptionalMiddleware())
			{
				optGroup.GET("/:user_id/stat", group.FriendshipHandler.GetStat)
			}

			authGroup := friendshipGroup.Group("")
			authGroup.Use(middleware.IdentityMiddleware())
			{
				authGroup.POST("/:user_id/follow", group.FriendshipHandler.Follow)
				authGroup.POST("/:user_id/unfollow", group.FriendshipHandler.Unfollow)
			}
		}

		commentGroup := apiGroup.Group("/comment")
		commentGroup.Use(middleware.IdentityMiddleware())
		{
			commentGroup.POST("", group.CommentHandler.CreateComment)
			commentGroup.PUT("/:comment_id", group.CommentHandler.UpdateComment)
			commentGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
		}

		likeGroup := apiGroup.Group("/like")
		{
			optGroup := likeGroup.Group("")
			optGroup.Use(middleware.IdentityOptionalMiddleware())
			{
				optGroup.GET("/stat", group.LikeHandler.GetStat)
			}

			authGroup := likeGroup.Group("")
			authGroup.Use(middleware.IdentityMiddleware())
			{
				authGroup.POST("", group.LikeHandler.Like)
				authGroup.POST("/cancel", group.LikeHandler.Unlike)
			}
		}

		notificationGroup := apiGroup.Group("/notification")
		notificationGroup.Use(middleware.IdentityMiddleware())
		{
			notificationGroup.GET("", group.NotificationHandler.GetNotifications)
			notificationGroup.GET("/unread-count", group.NotificationHandler.GetUnreadCount)
			notificationGroup.PUT("/:notification_id/read", group.NotificationHandler.MarkRead)
			notificationGroup.PUT("/read-all", group.NotificationHandler.MarkAllRead)
		}

		gatekeeperGroup := apiGroup.Group("/gatekeeper")
		{
			gatekeeperGroup.GET("/:name", group.GatekeeperHandler.GetGate)
			gatekeeperGroup.PUT("/:name", group.GatekeeperHandler.SetGate)
		}
	}

	return r
}
