package consts

const (
	UserInfoKey           = "user:info:"
	UserTweetsKey         = "user:tweets:"
	UserNewsFeedsKey      = "user:newsfeeds:"
	UserFollowingsKey     = "user:followings:"
	TweetLikesCountKey    = "tweet:likes_count:"
	CommentLikesCountKey  = "comment:likes_count:"
	TweetCommentsCountKey = "tweet:comments_count:"
	NotificationUnreadKey = "notification:unread:"
	CounterDirtyKey       = "counter:dirty"
	GateKeeperKey         = "gatekeeper:"
)
