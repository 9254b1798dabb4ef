package dto

// FollowDTO 关注/粉丝列表里的一条记录
type FollowDTO struct {
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	Nickname    string `json:"nickname"`
	AvatarURL   string `json:"avatar_url"`
	CreatedAt   string `json:"created_at"`
	CreatedAtTS int64  `json:"created_at_ts"`
}

// FollowListDTO 关注/粉丝列表 - 游标分页
type FollowListDTO struct {
	HasNextPage bool         `json:"has_next_page"`
	Results     []*FollowDTO `json:"results"`
}

// FriendshipStatDTO 关注统计
type FriendshipStatDTO struct {
	FollowingCount int64 `json:"following_count"`
	FollowerCount  int64 `json:"follower_count"`
	HasFollowed    bool  `json:"has_followed"`
}
