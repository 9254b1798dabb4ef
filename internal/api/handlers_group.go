package api

import "Chirp/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	TweetHandler        *handler.TweetHandler
	NewsFeedHandler     *handler.NewsFeedHandler
	FriendshipHandler   *handler.FriendshipHandler
	CommentHandler      *handler.CommentHandler
	LikeHandler         *handler.LikeHandler
	NotificationHandler *handler.NotificationHandler
	GatekeeperHandler   *handler.GatekeeperHandler
}
