package dto

// LikeDTO 点赞 - 新增或取消
type LikeDTO struct {
	TargetType string `json:"target_type" form:"target_type" binding:"required" validate:"oneof=tweet comment"`
	TargetID   uint64 `json:"target_id" form:"target_id" binding:"required"`
}

// LikeStatDTO 点赞状态
type LikeStatDTO struct {
	LikesCount int64 `json:"likes_count"`
	HasLiked   bool  `json:"has_liked"`
}
