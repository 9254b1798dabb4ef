package consts

// 切换 friendship 存储到宽列存储的灰度开关名
const GateFriendshipWideColumn = "switch_friendship_to_widecolumn"

const (
	TweetContentMaxLen = 255
)

// 通知动词
const (
	NotifVerbLikeTweet   = "liked your tweet"
	NotifVerbLikeComment = "liked your comment"
	NotifVerbComment     = "commented on your tweet"
)

// 点赞/通知目标类型
const (
	TargetTypeTweet   = "tweet"
	TargetTypeComment = "comment"
)
