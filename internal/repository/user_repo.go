package repository

import (
	"Chirp/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, userID uint64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []uint64) ([]*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

// CreateUser 创建用户
func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// GetUserByID 按 ID 查询用户，不存在时返回 (nil, nil)
func (s *UserRepoImpl) GetUserByID(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetUsersByIDs 批量查询用户
func (s *UserRepoImpl) GetUsersByIDs(ctx context.Context, userIDs []uint64) ([]*model.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var users []*model.User
	result := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// GetUserByUsername 按用户名查询用户，不存在时返回 (nil, nil)
func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}
