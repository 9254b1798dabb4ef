package dto

// NotificationDTO 通知
type NotificationDTO struct {
	ID          uint64 `json:"id"`
	ActorID     uint64 `json:"actor_id"`
	Verb        string `json:"verb"`
	TargetType  string `json:"target_type"`
	TargetID    uint64 `json:"target_id"`
	Unread      bool   `json:"unread"`
	CreatedAt   string `json:"created_at"`
	CreatedAtTS int64  `json:"created_at_ts"`
}

// NotificationListDTO 通知列表 - 游标分页
type NotificationListDTO struct {
	HasNextPage bool               `json:"has_next_page"`
	Results     []*NotificationDTO `json:"results"`
}

// UnreadCountDTO 未读通知数
type UnreadCountDTO struct {
	UnreadCount int64 `json:"unread_count"`
}
