package model

import "time"

type Notification struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	RecipientID uint64    `gorm:"not null;index:idx_recipient_created,priority:1" json:"recipient_id"`
	ActorID     uint64    `gorm:"not null" json:"actor_id"`
	Verb        string    `gorm:"type:varchar(64);not null" json:"verb"`
	TargetType  string    `gorm:"type:varchar(16);not null" json:"target_type"`
	TargetID    uint64    `gorm:"not null" json:"target_id"`
	Unread      bool      `gorm:"type:tinyint(1);not null;default:1" json:"unread"`
	CreatedAt   time.Time `gorm:"type:datetime(6);index:idx_recipient_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
