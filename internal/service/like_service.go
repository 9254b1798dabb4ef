package service

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/model"
	"Chirp/internal/pkg/cache"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

type LikeService interface {
	Like(ctx context.Context, userID uint64, likeDTO *dto.LikeDTO) error
	Unlike(ctx context.Context, userID uint64, likeDTO *dto.LikeDTO) error
	GetStat(ctx context.Context, userID uint64, likeDTO *dto.LikeDTO) (*dto.LikeStatDTO, error)
}

type LikeServiceImpl struct {
	likeRepo            repository.LikeRepo
	tweetRepo           repository.TweetRepo
	commentRepo         repository.CommentRepo
	notificationService NotificationService
	counterCache        *cache.CounterCache
}

func NewLikeService(likeRepo repository.LikeRepo, tweetRepo repository.TweetRepo,
	commentRepo repository.CommentRepo, notificationService NotificationService,
	counterCache *cache.CounterCache) LikeService {
	return &LikeServiceImpl{
		likeRepo:            likeRepo,
		tweetRepo:           tweetRepo,
		commentRepo:         commentRepo,
		notificationService: notificationService,
		counterCache:        counterCache,
	}
}

// Like 点赞，重复点赞幂等
func (s *LikeServiceImpl) Like(ctx context.Context, userID uint64, likeDTO *dto.LikeDTO) error {
	target, err := s.resolveTarget(ctx, likeDTO)
	if err != nil {
		return err
	}

	like := &model.Like{
		UserID:     userID,
		TargetType: target.likeType,
		TargetID:   likeDTO.TargetID,
		CreatedAt:  time.Now(),
	}
	created, err := s.likeRepo.CreateLike(ctx, like)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	if target.likeType == model.LikeTargetTweet {
		if err = s.tweetRepo.AdjustLikesCount(ctx, likeDTO.TargetID, 1); err != nil {
			return err
		}
		markCounterDirty(ctx, likeDTO.TargetID)
	}
	s.bumpLikesCounter(ctx, likeDTO, true)

	if err = s.notificationService.Notify(ctx, target.authorID, userID,
		target.verb, likeDTO.TargetType, likeDTO.TargetID); err != nil {
		log.WarnContext(ctx, "notify like failed", "target_id", likeDTO.TargetID, "err", err)
	}
	return nil
}

// Unlike 取消点赞，未点赞时静默成功
func (s *LikeServiceImpl) Unlike(ctx context.Context, userID uint64, likeDTO *dto.LikeDTO) error {
	target, err := s.resolveTarget(ctx, likeDTO)
	if err != nil {
		return err
	}

	deleted, err := s.likeRepo.DeleteLike(ctx, userID, target.likeType, likeDTO.TargetID)
	if err != nil {
		return err
	}
	if !deleted {
		return nil
	}

	if target.likeType == model.LikeTargetTweet {
		if err = s.tweetRepo.AdjustLikesCount(ctx, likeDTO.TargetID, -1); err != nil {
			return err
		}
		markCounterDirty(ctx, likeDTO.TargetID)
	}
	s.bumpLikesCounter(ctx, likeDTO, false)
	return nil
}

// GetStat 点赞数与当前用户是否已点赞
func (s *LikeServiceImpl) GetStat(ctx context.Context, userID uint64, likeDTO *dto.LikeDTO) (*dto.LikeStatDTO, error) {
	target, err := s.resolveTarget(ctx, likeDTO)
	if err != nil {
		return nil, err
	}

	count, err := s.counterCache.Get(ctx, s.likesKey(likeDTO), s.likesSource(target.likeType, likeDTO.TargetID))
	if err != nil {
		return nil, err
	}
	liked := false
	if userID != 0 {
		liked, err = s.likeRepo.HasLiked(ctx, userID, target.likeType, likeDTO.TargetID)
		if err != nil {
			return nil, err
		}
	}
	return &dto.LikeStatDTO{LikesCount: count, HasLiked: liked}, nil
}

type likeTarget struct {
	likeType model.LikeTargetType
	authorID uint64
	verb     string
}

func (s *LikeServiceImpl) resolveTarget(ctx context.Context, likeDTO *dto.LikeDTO) (*likeTarget, error) {
	switch likeDTO.TargetType {
	case consts.TargetTypeTweet:
		tweet, err := s.tweetRepo.GetTweetByID(ctx, likeDTO.TargetID)
		if err != nil {
			return nil, err
		}
		if tweet == nil {
			return nil, ErrTweetNotFound
		}
		return &likeTarget{
			likeType: model.LikeTargetTweet,
			authorID: tweet.UserID,
			verb:     consts.NotifVerbLikeTweet,
		}, nil
	case consts.TargetTypeComment:
		comment, err := s.commentRepo.GetCommentByID(ctx, likeDTO.TargetID)
		if err != nil {
			return nil, err
		}
		if comment == nil {
			return nil, ErrCommentNotFound
		}
		return &likeTarget{
			likeType: model.LikeTargetComment,
			authorID: comment.UserID,
			verb:     consts.NotifVerbLikeComment,
		}, nil
	}
	return nil, ErrLikeTargetInvalid
}

func (s *LikeServiceImpl) bumpLikesCounter(ctx context.Context, likeDTO *dto.LikeDTO, up bool) {
	var likeType model.LikeTargetType
	if likeDTO.TargetType == consts.TargetTypeTweet {
		likeType = model.LikeTargetTweet
	} else {
		likeType = model.LikeTargetComment
	}

	key := s.likesKey(likeDTO)
	var err error
	if up {
		_, err = s.counterCache.Incr(ctx, key, s.likesSource(likeType, likeDTO.TargetID))
	} else {
		_, err = s.counterCache.Decr(ctx, key, s.likesSource(likeType, likeDTO.TargetID))
	}
	if err != nil {
		log.WarnContext(ctx, "adjust likes counter failed", "key", key, "err", err)
	}
}

func (s *LikeServiceImpl) likesKey(likeDTO *dto.LikeDTO) string {
	if likeDTO.TargetType == consts.TargetTypeTweet {
		return consts.TweetLikesCountKey + strconv.FormatUint(likeDTO.TargetID, 10)
	}
	return consts.CommentLikesCountKey + strconv.FormatUint(likeDTO.TargetID, 10)
}

func (s *LikeServiceImpl) likesSource(likeType model.LikeTargetType, targetID uint64) cache.CountSource {
	return func(ctx context.Context) (int64, error) {
		return s.likeRepo.CountByTarget(ctx, likeType, targetID)
	}
}
