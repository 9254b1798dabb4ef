package model

import "time"

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(32);not null;uniqueIndex:uk_username" json:"username"`
	Nickname  string    `gorm:"type:varchar(64)" json:"nickname"`
	AvatarURL string    `gorm:"type:varchar(255)" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
