package dto

// CommentDTO 评论
type CommentDTO struct {
	ID          uint64 `json:"id"`
	TweetID     uint64 `json:"tweet_id"`
	Content     string `json:"content"`
	LikesCount  int64  `json:"likes_count"`
	CreatedAt   string `json:"created_at"`
	CreatedAtTS int64  `json:"created_at_ts"`

	// User
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// CreateCommentDTO 评论 - 新增
type CreateCommentDTO struct {
	TweetID uint64 `json:"tweet_id" binding:"required"`
	Content string `json:"content" binding:"required" validate:"min=1,max=140"`
}

// UpdateCommentDTO 评论 - 修改
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required" validate:"min=1,max=140"`
}

// CommentListDTO 评论列表 - 游标分页
type CommentListDTO struct {
	HasNextPage bool          `json:"has_next_page"`
	TotalCount  int64         `json:"total_count"`
	Results     []*CommentDTO `json:"results"`
}
