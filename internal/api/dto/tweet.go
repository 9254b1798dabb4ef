package dto

// TweetDTO 推文
type TweetDTO struct {
	ID            uint64 `json:"id"`
	Content       string `json:"content"`
	LikesCount    int64  `json:"likes_count"`
	CommentsCount int64  `json:"comments_count"`
	CreatedAt     string `json:"created_at"`
	CreatedAtTS   int64  `json:"created_at_ts"`

	// User
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// CreateTweetDTO 推文 - 新增
type CreateTweetDTO struct {
	Content string `json:"content" binding:"required" validate:"min=1,max=255"`
}

// TweetListDTO 推文列表 - 游标分页
type TweetListDTO struct {
	HasNextPage bool        `json:"has_next_page"`
	Results     []*TweetDTO `json:"results"`
}
