package dto

// UserDTO 用户
type UserDTO struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	CreatedAt string `json:"created_at"`
}

// CreateUserDTO 用户 - 新增
type CreateUserDTO struct {
	Username  string `json:"username" binding:"required" validate:"min=1,max=32"`
	Nickname  string `json:"nickname" validate:"max=64"`
	AvatarURL string `json:"avatar_url" validate:"max=255"`
}
