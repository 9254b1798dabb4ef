package model

import "time"

type LikeTargetType int8

const (
	LikeTargetTweet   LikeTargetType = 1
	LikeTargetComment LikeTargetType = 2
)

// Like 点赞，目标可以是推文或评论
type Like struct {
	ID         uint64         `gorm:"primaryKey" json:"id"`
	UserID     uint64         `gorm:"not null;uniqueIndex:uk_user_target,priority:1" json:"user_id"`
	TargetType LikeTargetType `gorm:"not null;uniqueIndex:uk_user_target,priority:2" json:"target_type"`
	TargetID   uint64         `gorm:"not null;uniqueIndex:uk_user_target,priority:3;index:idx_target" json:"target_id"`
	CreatedAt  time.Time      `gorm:"type:datetime(6)" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
