package model

import "time"

type Comment struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	TweetID   uint64    `gorm:"not null;index:idx_tweet_created,priority:1" json:"tweet_id"`
	Content   string    `gorm:"type:varchar(140);not null" json:"content"`
	CreatedAt time.Time `gorm:"type:datetime(6);index:idx_tweet_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
