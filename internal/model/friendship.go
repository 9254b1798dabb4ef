package model

import "time"

// Friendship 单向关注：FromUser 关注 ToUser
type Friendship struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	FromUserID uint64    `gorm:"not null;uniqueIndex:uk_from_to,priority:1" json:"from_user_id"`
	ToUserID   uint64    `gorm:"not null;uniqueIndex:uk_from_to,priority:2;index:idx_to_user" json:"to_user_id"`
	CreatedAt  time.Time `gorm:"type:datetime(6)" json:"created_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}
