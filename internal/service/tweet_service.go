package service

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/model"
	"Chirp/internal/pkg/cache"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/pkg/pagination"
	"Chirp/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

type TweetService interface {
	CreateTweet(ctx context.Context, userID uint64, createDTO *dto.CreateTweetDTO) (*dto.TweetDTO, error)
	GetTweet(ctx context.Context, tweetID uint64) (*dto.TweetDTO, error)
	GetUserTweets(ctx context.Context, userID uint64, q pagination.Query) (*dto.TweetListDTO, error)
}

type TweetServiceImpl struct {
	tweetRepo   repository.TweetRepo
	userService UserService
	listCache   *cache.ListCache
	publisher   FanoutPublisher
}

func NewTweetService(tweetRepo repository.TweetRepo, userService UserService,
	listCache *cache.ListCache, publisher FanoutPublisher) TweetService {
	return &TweetServiceImpl{
		tweetRepo:   tweetRepo,
		userService: userService,
		listCache:   listCache,
		publisher:   publisher,
	}
}

// CreateTweet 发布推文
// 落库后推进作者的推文缓存，再投递扇出任务，扇出全程异步
func (s *TweetServiceImpl) CreateTweet(ctx context.Context, userID uint64, createDTO *dto.CreateTweetDTO) (*dto.TweetDTO, error) {
	if len([]rune(createDTO.Content)) > consts.TweetContentMaxLen {
		return nil, ErrContentTooLong
	}

	tweet := &model.Tweet{
		UserID:    userID,
		Content:   createDTO.Content,
		CreatedAt: time.Now(),
	}
	if err := s.tweetRepo.CreateTweet(ctx, tweet); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(tweet)
	if err != nil {
		return nil, err
	}
	key := consts.UserTweetsKey + strconv.FormatUint(userID, 10)
	_ = s.listCache.Push(ctx, key, payload, s.tweetsSource(userID))

	if err = s.publisher.PublishFanoutMain(ctx, tweet.ID, userID, tweet.CreatedAt); err != nil {
		// 扇出投递失败不回滚发布，记录后由补偿手段处理
		log.ErrorContext(ctx, "publish fanout main failed", "tweet_id", tweet.ID, "err", err)
	}

	return s.assembleOne(ctx, tweet)
}

// GetTweet 获取单条推文
func (s *TweetServiceImpl) GetTweet(ctx context.Context, tweetID uint64) (*dto.TweetDTO, error) {
	tweet, err := s.tweetRepo.GetTweetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, ErrTweetNotFound
	}
	return s.assembleOne(ctx, tweet)
}

// GetUserTweets 游标分页获取用户的推文
// 优先走缓存列表分页，缓存页耗尽才落到数据库
func (s *TweetServiceImpl) GetUserTweets(ctx context.Context, userID uint64, q pagination.Query) (*dto.TweetListDTO, error) {
	key := consts.UserTweetsKey + strconv.FormatUint(userID, 10)
	items, err := s.listCache.Load(ctx, key, s.tweetsSource(userID))
	if err != nil {
		return nil, err
	}

	tweets, err := unmarshalTweets(items)
	if err != nil {
		return nil, err
	}

	page, served := paginateCached(tweets, q, s.listCache.Limit(), func(t *model.Tweet) int64 {
		return t.CreatedAt.UnixMicro()
	})
	if !served {
		page, err = s.tweetRepo.PaginateUserTweets(ctx, userID, q)
		if err != nil {
			return nil, err
		}
	}

	results, err := s.assemble(ctx, page.Results)
	if err != nil {
		return nil, err
	}
	return &dto.TweetListDTO{HasNextPage: page.HasNextPage, Results: results}, nil
}

func (s *TweetServiceImpl) tweetsSource(userID uint64) cache.SourceFunc {
	return func(ctx context.Context) ([][]byte, error) {
		tweets, err := s.tweetRepo.GetUserTweets(ctx, userID, s.listCache.Limit())
		if err != nil {
			return nil, err
		}
		return marshalTweets(tweets)
	}
}

func (s *TweetServiceImpl) assembleOne(ctx context.Context, tweet *model.Tweet) (*dto.TweetDTO, error) {
	results, err := s.assemble(ctx, []*model.Tweet{tweet})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

func (s *TweetServiceImpl) assemble(ctx context.Context, tweets []*model.Tweet) ([]*dto.TweetDTO, error) {
	userIDs := make([]uint64, 0, len(tweets))
	for _, tweet := range tweets {
		userIDs = append(userIDs, tweet.UserID)
	}
	userMap, err := s.userService.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.TweetDTO, 0, len(tweets))
	for _, tweet := range tweets {
		results = append(results, toTweetDTO(tweet, userMap[tweet.UserID]))
	}
	return results, nil
}

func toTweetDTO(tweet *model.Tweet, user *dto.UserDTO) *dto.TweetDTO {
	tweetDTO := &dto.TweetDTO{
		ID:            tweet.ID,
		Content:       tweet.Content,
		LikesCount:    tweet.LikesCount,
		CommentsCount: tweet.CommentsCount,
		CreatedAt:     tweet.CreatedAt.Format(time.RFC3339Nano),
		CreatedAtTS:   tweet.CreatedAt.UnixMicro(),
		UserID:        tweet.UserID,
	}
	if user != nil {
		tweetDTO.Nickname = user.Nickname
		tweetDTO.AvatarURL = user.AvatarURL
	}
	return tweetDTO
}

func marshalTweets(tweets []*model.Tweet) ([][]byte, error) {
	items := make([][]byte, 0, len(tweets))
	for _, tweet := range tweets {
		payload, err := json.Marshal(tweet)
		if err != nil {
			return nil, err
		}
		items = append(items, payload)
	}
	return items, nil
}

func unmarshalTweets(items [][]byte) ([]*model.Tweet, error) {
	tweets := make([]*model.Tweet, 0, len(items))
	for _, item := range items {
		var tweet model.Tweet
		if err := json.Unmarshal(item, &tweet); err != nil {
			return nil, err
		}
		tweets = append(tweets, &tweet)
	}
	return tweets, nil
}

// paginateCached 在缓存列表上分页
// 列表短于缓存上限说明缓存是完整集合，放心分页；列表打满上限时只有
// 取新数据或页码仍落在缓存内才可用缓存，否则由调用方回落数据库
func paginateCached[T any](items []T, q pagination.Query, limit int, key func(T) int64) (pagination.Page[T], bool) {
	if len(items) < limit {
		return pagination.PaginateSlice(items, key, q), true
	}
	if q.After != nil {
		return pagination.PaginateSlice(items, key, q), true
	}
	page := pagination.PaginateSlice(items, key, q)
	if page.HasNextPage {
		return page, true
	}
	return pagination.Page[T]{}, false
}
