package model

import "time"

type Tweet struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	UserID        uint64    `gorm:"not null;index:idx_user_created,priority:1" json:"user_id"`
	Content       string    `gorm:"type:varchar(255);not null" json:"content"`
	LikesCount    int64     `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int64     `gorm:"not null;default:0" json:"comments_count"`
	CreatedAt     time.Time `gorm:"type:datetime(6);index:idx_user_created,priority:2" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Tweet) TableName() string {
	return "tweets"
}
