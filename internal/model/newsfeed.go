package model

import "time"

// NewsFeed 扇出后落在某个用户信息流里的一条推文引用
// (user_id, tweet_id) 唯一，扇出任务重试时天然幂等
type NewsFeed struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:uk_user_tweet,priority:1;index:idx_user_created,priority:1" json:"user_id"`
	TweetID   uint64    `gorm:"not null;uniqueIndex:uk_user_tweet,priority:2" json:"tweet_id"`
	CreatedAt time.Time `gorm:"type:datetime(6);index:idx_user_created,priority:2" json:"created_at"`
}

func (NewsFeed) TableName() string {
	return "newsfeeds"
}
