package kafka

// FanoutMainEvent 扇出主任务：一条新推文需要扇出到全部粉丝
type FanoutMainEvent struct {
	TweetID     uint64 `json:"tweet_id"`
	AuthorID    uint64 `json:"author_id"`
	CreatedAtTS int64  `json:"created_at_ts"`
}

// FanoutBatchEvent 扇出批次任务：向一个粉丝分片投递推文
type FanoutBatchEvent struct {
	TweetID     uint64   `json:"tweet_id"`
	CreatedAtTS int64    `json:"created_at_ts"`
	FollowerIDs []uint64 `json:"follower_ids"`
}
