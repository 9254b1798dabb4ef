package service

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/pkg/gate"
	"Chirp/internal/pkg/pagination"
	"Chirp/internal/pkg/redis"
	"Chirp/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

type FriendshipService interface {
	Follow(ctx context.Context, fromUserID, toUserID uint64) error
	Unfollow(ctx context.Context, fromUserID, toUserID uint64) error
	HasFollowed(ctx context.Context, fromUserID, toUserID uint64) (bool, error)
	GetFollowings(ctx context.Context, userID uint64, q pagination.Query) (*dto.FollowListDTO, error)
	GetFollowers(ctx context.Context, userID uint64, q pagination.Query) (*dto.FollowListDTO, error)
	GetFollowerIDs(ctx context.Context, userID uint64) ([]uint64, error)
	GetStat(ctx context.Context, fromUserID, toUserID uint64) (*dto.FriendshipStatDTO, error)
}

// FriendshipServiceImpl 按灰度开关在 MySQL 与宽列两套存储间路由
// 开关只认全量打开：一条关注边涉及两个用户的镜像行，按单边用户
// 分桶会把同一条边拆到两套后端，读写必须整体切换
type FriendshipServiceImpl struct {
	mysqlRepo   repository.FriendshipRepo
	wideRepo    repository.FriendshipRepo
	gateKeeper  *gate.GateKeeper
	userService UserService
}

func NewFriendshipService(mysqlRepo, wideRepo repository.FriendshipRepo,
	gateKeeper *gate.GateKeeper, userService UserService) FriendshipService {
	return &FriendshipServiceImpl{
		mysqlRepo:   mysqlRepo,
		wideRepo:    wideRepo,
		gateKeeper:  gateKeeper,
		userService: userService,
	}
}

func (s *FriendshipServiceImpl) repo(ctx context.Context) repository.FriendshipRepo {
	switchOn, err := s.gateKeeper.IsSwitchOn(ctx, consts.GateFriendshipWideColumn)
	if err != nil {
		// 开关查询失败按未放量处理，守住存量 MySQL 路径
		log.WarnContext(ctx, "gatekeeper lookup failed, routing to mysql", "err", err)
		return s.mysqlRepo
	}
	if switchOn {
		return s.wideRepo
	}
	return s.mysqlRepo
}

// Follow 关注
func (s *FriendshipServiceImpl) Follow(ctx context.Context, fromUserID, toUserID uint64) error {
	if fromUserID == toUserID {
		return ErrFollowSelf
	}
	if _, err := s.userService.GetUserInfo(ctx, toUserID); err != nil {
		return err
	}

	repo := s.repo(ctx)
	followed, err := repo.HasFollowed(ctx, fromUserID, toUserID)
	if err != nil {
		return err
	}
	if followed {
		return ErrFollowExist
	}
	if err = repo.Follow(ctx, fromUserID, toUserID, time.Now()); err != nil {
		return err
	}
	s.invalidateFollowingSet(ctx, fromUserID)
	return nil
}

// Unfollow 取消关注，未关注时静默成功
func (s *FriendshipServiceImpl) Unfollow(ctx context.Context, fromUserID, toUserID uint64) error {
	if fromUserID == toUserID {
		return ErrFollowSelf
	}
	if err := s.repo(ctx).Unfollow(ctx, fromUserID, toUserID); err != nil {
		return err
	}
	s.invalidateFollowingSet(ctx, fromUserID)
	return nil
}

// HasFollowed 是否已关注，走关注集合缓存
func (s *FriendshipServiceImpl) HasFollowed(ctx context.Context, fromUserID, toUserID uint64) (bool, error) {
	key := consts.UserFollowingsKey + strconv.FormatUint(fromUserID, 10)
	exists, err := redis.Exists(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "following set cache unavailable, falling back to repo", "err", err)
		return s.repo(ctx).HasFollowed(ctx, fromUserID, toUserID)
	}

	if !exists {
		edges, err := s.repo(ctx).GetFollowings(ctx, fromUserID)
		if err != nil {
			return false, err
		}
		// 空集合写一个哨兵成员占位，避免无关注用户每次都穿透
		members := []interface{}{"_"}
		for _, edge := range edges {
			members = append(members, strconv.FormatUint(edge.ToUserID, 10))
		}
		if err = redis.SAdd(ctx, key, members...); err == nil {
			_ = redis.Expire(ctx, key, time.Hour*1)
		}
		for _, edge := range edges {
			if edge.ToUserID == toUserID {
				return true, nil
			}
		}
		return false, nil
	}

	return redis.GetRdbClient().SIsMember(ctx, key, strconv.FormatUint(toUserID, 10)).Result()
}

func (s *FriendshipServiceImpl) invalidateFollowingSet(ctx context.Context, fromUserID uint64) {
	key := consts.UserFollowingsKey + strconv.FormatUint(fromUserID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.WarnContext(ctx, "invalidate following set failed", "key", key, "err", err)
	}
}

// GetFollowings 游标分页获取关注列表
func (s *FriendshipServiceImpl) GetFollowings(ctx context.Context, userID uint64, q pagination.Query) (*dto.FollowListDTO, error) {
	edges, err := s.repo(ctx).GetFollowings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.assemblePage(ctx, edges, q, func(edge *repository.FollowEdge) uint64 {
		return edge.ToUserID
	})
}

// GetFollowers 游标分页获取粉丝列表
func (s *FriendshipServiceImpl) GetFollowers(ctx context.Context, userID uint64, q pagination.Query) (*dto.FollowListDTO, error) {
	edges, err := s.repo(ctx).GetFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.assemblePage(ctx, edges, q, func(edge *repository.FollowEdge) uint64 {
		return edge.FromUserID
	})
}

// GetFollowerIDs 获取全部粉丝 ID，扇出任务用
func (s *FriendshipServiceImpl) GetFollowerIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return s.repo(ctx).GetFollowerIDs(ctx, userID)
}

// GetStat 关注统计
func (s *FriendshipServiceImpl) GetStat(ctx context.Context, fromUserID, toUserID uint64) (*dto.FriendshipStatDTO, error) {
	repo := s.repo(ctx)
	followingCount, err := repo.GetFollowingCount(ctx, toUserID)
	if err != nil {
		return nil, err
	}
	followerCount, err := repo.GetFollowerCount(ctx, toUserID)
	if err != nil {
		return nil, err
	}
	followed := false
	if fromUserID != 0 && fromUserID != toUserID {
		followed, err = s.HasFollowed(ctx, fromUserID, toUserID)
		if err != nil {
			return nil, err
		}
	}
	return &dto.FriendshipStatDTO{
		FollowingCount: followingCount,
		FollowerCount:  followerCount,
		HasFollowed:    followed,
	}, nil
}

func (s *FriendshipServiceImpl) assemblePage(ctx context.Context, edges []*repository.FollowEdge,
	q pagination.Query, pickUserID func(*repository.FollowEdge) uint64) (*dto.FollowListDTO, error) {
	page := pagination.PaginateSlice(edges, func(edge *repository.FollowEdge) int64 {
		return edge.CreatedAt.UnixMicro()
	}, q)

	userIDs := make([]uint64, 0, len(page.Results))
	for _, edge := range page.Results {
		userIDs = append(userIDs, pickUserID(edge))
	}
	userMap, err := s.userService.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.FollowDTO, 0, len(page.Results))
	for _, edge := range page.Results {
		followDTO := &dto.FollowDTO{
			UserID:      pickUserID(edge),
			CreatedAt:   edge.CreatedAt.Format(time.RFC3339Nano),
			CreatedAtTS: edge.CreatedAt.UnixMicro(),
		}
		if user := userMap[followDTO.UserID]; user != nil {
			followDTO.Username = user.Username
			followDTO.Nickname = user.Nickname
			followDTO.AvatarURL = user.AvatarURL
		}
		results = append(results, followDTO)
	}
	return &dto.FollowListDTO{HasNextPage: page.HasNextPage, Results: results}, nil
}
