package service

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/model"
	"Chirp/internal/pkg/cache"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/pkg/pagination"
	"Chirp/internal/pkg/redis"
	"Chirp/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID uint64, createDTO *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, userID, commentID uint64, updateDTO *dto.UpdateCommentDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	GetTweetComments(ctx context.Context, tweetID uint64, q pagination.Query) (*dto.CommentListDTO, error)
	GetCommentsCount(ctx context.Context, tweetID uint64) (int64, error)
}

type CommentServiceImpl struct {
	commentRepo         repository.CommentRepo
	tweetRepo           repository.TweetRepo
	likeRepo            repository.LikeRepo
	userService         UserService
	notificationService NotificationService
	counterCache        *cache.CounterCache
}

func NewCommentService(commentRepo repository.CommentRepo, tweetRepo repository.TweetRepo,
	likeRepo repository.LikeRepo, userService UserService,
	notificationService NotificationService, counterCache *cache.CounterCache) CommentService {
	return &CommentServiceImpl{
		commentRepo:         commentRepo,
		tweetRepo:           tweetRepo,
		likeRepo:            likeRepo,
		userService:         userService,
		notificationService: notificationService,
		counterCache:        counterCache,
	}
}

// CreateComment 发表评论
// 评论数先原子更新落库，再调整计数缓存并标脏，顺序不能反
func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID uint64, createDTO *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	tweet, err := s.tweetRepo.GetTweetByID(ctx, createDTO.TweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, ErrTweetNotFound
	}

	comment := &model.Comment{
		UserID:    userID,
		TweetID:   createDTO.TweetID,
		Content:   createDTO.Content,
		CreatedAt: time.Now(),
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if err = s.tweetRepo.AdjustCommentsCount(ctx, tweet.ID, 1); err != nil {
		return nil, err
	}
	s.bumpCommentsCounter(ctx, tweet.ID, true)

	if err = s.notificationService.Notify(ctx, tweet.UserID, userID,
		consts.NotifVerbComment, consts.TargetTypeTweet, tweet.ID); err != nil {
		log.WarnContext(ctx, "notify tweet author failed", "tweet_id", tweet.ID, "err", err)
	}

	return s.assembleOne(ctx, comment)
}

// UpdateComment 修改评论，只允许作者本人
func (s *CommentServiceImpl) UpdateComment(ctx context.Context, userID, commentID uint64, updateDTO *dto.UpdateCommentDTO) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrNotOwner
	}

	if err = s.commentRepo.UpdateCommentContent(ctx, commentID, updateDTO.Content); err != nil {
		return nil, err
	}
	comment.Content = updateDTO.Content
	return s.assembleOne(ctx, comment)
}

// DeleteComment 删除评论，只允许作者本人
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != userID {
		return ErrNotOwner
	}

	if err = s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	if err = s.tweetRepo.AdjustCommentsCount(ctx, comment.TweetID, -1); err != nil {
		return err
	}
	s.bumpCommentsCounter(ctx, comment.TweetID, false)
	return nil
}

// GetTweetComments 游标分页获取推文下的评论
func (s *CommentServiceImpl) GetTweetComments(ctx context.Context, tweetID uint64, q pagination.Query) (*dto.CommentListDTO, error) {
	page, err := s.commentRepo.PaginateTweetComments(ctx, tweetID, q)
	if err != nil {
		return nil, err
	}
	results, err := s.assemble(ctx, page.Results)
	if err != nil {
		return nil, err
	}
	totalCount, err := s.GetCommentsCount(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	return &dto.CommentListDTO{HasNextPage: page.HasNextPage, TotalCount: totalCount, Results: results}, nil
}

// GetCommentsCount 推文的评论数，读穿计数缓存
func (s *CommentServiceImpl) GetCommentsCount(ctx context.Context, tweetID uint64) (int64, error) {
	key := consts.TweetCommentsCountKey + strconv.FormatUint(tweetID, 10)
	return s.counterCache.Get(ctx, key, s.commentsCountSource(tweetID))
}

func (s *CommentServiceImpl) bumpCommentsCounter(ctx context.Context, tweetID uint64, up bool) {
	key := consts.TweetCommentsCountKey + strconv.FormatUint(tweetID, 10)
	var err error
	if up {
		_, err = s.counterCache.Incr(ctx, key, s.commentsCountSource(tweetID))
	} else {
		_, err = s.counterCache.Decr(ctx, key, s.commentsCountSource(tweetID))
	}
	if err != nil {
		log.WarnContext(ctx, "adjust comments counter failed", "tweet_id", tweetID, "err", err)
	}
	markCounterDirty(ctx, tweetID)
}

func (s *CommentServiceImpl) commentsCountSource(tweetID uint64) cache.CountSource {
	return func(ctx context.Context) (int64, error) {
		return s.commentRepo.CountByTweet(ctx, tweetID)
	}
}

func (s *CommentServiceImpl) assembleOne(ctx context.Context, comment *model.Comment) (*dto.CommentDTO, error) {
	results, err := s.assemble(ctx, []*model.Comment{comment})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

func (s *CommentServiceImpl) assemble(ctx context.Context, comments []*model.Comment) ([]*dto.CommentDTO, error) {
	userIDs := make([]uint64, 0, len(comments))
	for _, comment := range comments {
		userIDs = append(userIDs, comment.UserID)
	}
	userMap, err := s.userService.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		likesKey := consts.CommentLikesCountKey + strconv.FormatUint(comment.ID, 10)
		likesCount, err := s.counterCache.Get(ctx, likesKey, s.commentLikesSource(comment.ID))
		if err != nil {
			return nil, err
		}
		commentDTO := &dto.CommentDTO{
			ID:          comment.ID,
			TweetID:     comment.TweetID,
			Content:     comment.Content,
			LikesCount:  likesCount,
			CreatedAt:   comment.CreatedAt.Format(time.RFC3339Nano),
			CreatedAtTS: comment.CreatedAt.UnixMicro(),
			UserID:      comment.UserID,
		}
		if user := userMap[comment.UserID]; user != nil {
			commentDTO.Nickname = user.Nickname
			commentDTO.AvatarURL = user.AvatarURL
		}
		results = append(results, commentDTO)
	}
	return results, nil
}

func (s *CommentServiceImpl) commentLikesSource(commentID uint64) cache.CountSource {
	return func(ctx context.Context) (int64, error) {
		return s.likeRepo.CountByTarget(ctx, model.LikeTargetComment, commentID)
	}
}

// markCounterDirty 把推文记入脏集合，由定时任务对账冗余计数列
func markCounterDirty(ctx context.Context, tweetID uint64) {
	if err := redis.SAdd(ctx, consts.CounterDirtyKey, strconv.FormatUint(tweetID, 10)); err != nil {
		log.WarnContext(ctx, "mark counter dirty failed", "tweet_id", tweetID, "err", err)
	}
}
