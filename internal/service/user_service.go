package service

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/model"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/pkg/redis"
	"Chirp/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

type UserService interface {
	CreateUser(ctx context.Context, createDTO *dto.CreateUserDTO) (*dto.UserDTO, error)
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	GetUsersByIDs(ctx context.Context, ids []uint64) (map[uint64]*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, createDTO *dto.CreateUserDTO) (*dto.UserDTO, error) {
	user := &model.User{}
	if err := copier.Copy(user, createDTO); err != nil {
		return nil, err
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if isDuplicateError(err) {
			return nil, ErrUserExist
		}
		return nil, err
	}
	return toUserDTO(user), nil
}

// GetUserInfo 读穿缓存获取用户信息
func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	key := consts.UserInfoKey + strconv.FormatUint(id, 10)
	value, err := redis.GetValue(ctx, key)
	if err != nil {
		return nil, err
	}
	if value != "" {
		var userDTO *dto.UserDTO
		if err = json.Unmarshal([]byte(value), &userDTO); err != nil {
			return nil, err
		}
		return userDTO, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	userDTO := toUserDTO(user)
	jsonStr, err := json.Marshal(userDTO)
	if err != nil {
		return nil, err
	}
	if err = redis.SetWithExpiration(ctx, key, string(jsonStr), time.Hour*1); err != nil {
		return nil, err
	}
	return userDTO, nil
}

// GetUsersByIDs 批量获取用户信息，列表组装时一次性解出所有作者
func (s *UserServiceImpl) GetUsersByIDs(ctx context.Context, ids []uint64) (map[uint64]*dto.UserDTO, error) {
	users, err := s.userRepo.GetUsersByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint64]*dto.UserDTO, len(users))
	for _, user := range users {
		userMap[user.ID] = toUserDTO(user)
	}
	return userMap, nil
}

func toUserDTO(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Nickname:  user.Nickname,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	result := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
