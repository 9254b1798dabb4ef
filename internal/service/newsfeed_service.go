package service

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/model"
	"Chirp/internal/pkg/cache"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/pkg/pagination"
	"Chirp/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// FanoutPublisher 扇出任务投递，由 kafka 生产者实现
type FanoutPublisher interface {
	PublishFanoutMain(ctx context.Context, tweetID, authorID uint64, createdAt time.Time) error
	PublishFanoutBatch(ctx context.Context, tweetID uint64, createdAt time.Time, followerIDs []uint64) error
}

type NewsFeedService interface {
	GetUserNewsFeeds(ctx context.Context, userID uint64, q pagination.Query) (*dto.NewsFeedListDTO, error)
	FanoutNewsFeedsMain(ctx context.Context, tweetID, authorID uint64, createdAt time.Time) error
	DeliverNewsFeedsBatch(ctx context.Context, tweetID uint64, createdAt time.Time, followerIDs []uint64) error
}

type NewsFeedServiceImpl struct {
	newsFeedRepo      repository.NewsFeedRepo
	tweetRepo         repository.TweetRepo
	friendshipService FriendshipService
	userService       UserService
	listCache         *cache.ListCache
	publisher         FanoutPublisher
	batchSize         int
}

func NewNewsFeedService(newsFeedRepo repository.NewsFeedRepo, tweetRepo repository.TweetRepo,
	friendshipService FriendshipService, userService UserService,
	listCache *cache.ListCache, publisher FanoutPublisher, batchSize int) NewsFeedService {
	return &NewsFeedServiceImpl{
		newsFeedRepo:      newsFeedRepo,
		tweetRepo:         tweetRepo,
		friendshipService: friendshipService,
		userService:       userService,
		listCache:         listCache,
		publisher:         publisher,
		batchSize:         batchSize,
	}
}

// GetUserNewsFeeds 游标分页获取信息流，优先走缓存列表分页
func (s *NewsFeedServiceImpl) GetUserNewsFeeds(ctx context.Context, userID uint64, q pagination.Query) (*dto.NewsFeedListDTO, error) {
	key := consts.UserNewsFeedsKey + strconv.FormatUint(userID, 10)
	items, err := s.listCache.Load(ctx, key, s.feedsSource(userID))
	if err != nil {
		return nil, err
	}

	feeds, err := unmarshalNewsFeeds(items)
	if err != nil {
		return nil, err
	}

	page, served := paginateCached(feeds, q, s.listCache.Limit(), func(f *model.NewsFeed) int64 {
		return f.CreatedAt.UnixMicro()
	})
	if !served {
		page, err = s.newsFeedRepo.PaginateUserNewsFeeds(ctx, userID, q)
		if err != nil {
			return nil, err
		}
	}

	results, err := s.assemble(ctx, page.Results)
	if err != nil {
		return nil, err
	}
	return &dto.NewsFeedListDTO{HasNextPage: page.HasNextPage, Results: results}, nil
}

// FanoutNewsFeedsMain 扇出主任务
// 作者自己的信息流同步落好，粉丝按批次切分成独立任务投递，
// 头部大 V 的扇出被摊平成多个小任务，不会压垮单个消费者
func (s *NewsFeedServiceImpl) FanoutNewsFeedsMain(ctx context.Context, tweetID, authorID uint64, createdAt time.Time) error {
	if err := s.deliverOne(ctx, authorID, tweetID, createdAt); err != nil {
		return err
	}

	followerIDs, err := s.friendshipService.GetFollowerIDs(ctx, authorID)
	if err != nil {
		return err
	}

	for start := 0; start < len(followerIDs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(followerIDs) {
			end = len(followerIDs)
		}
		if err = s.publisher.PublishFanoutBatch(ctx, tweetID, createdAt, followerIDs[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// DeliverNewsFeedsBatch 扇出批次任务：批量落库后逐个推进粉丝的信息流缓存
func (s *NewsFeedServiceImpl) DeliverNewsFeedsBatch(ctx context.Context, tweetID uint64, createdAt time.Time, followerIDs []uint64) error {
	feeds := make([]*model.NewsFeed, 0, len(followerIDs))
	for _, followerID := range followerIDs {
		feeds = append(feeds, &model.NewsFeed{
			UserID:    followerID,
			TweetID:   tweetID,
			CreatedAt: createdAt,
		})
	}
	if err := s.newsFeedRepo.BulkCreateNewsFeeds(ctx, feeds); err != nil {
		return err
	}

	for _, feed := range feeds {
		payload, err := json.Marshal(feed)
		if err != nil {
			return err
		}
		key := consts.UserNewsFeedsKey + strconv.FormatUint(feed.UserID, 10)
		if err = s.listCache.Push(ctx, key, payload, s.feedsSource(feed.UserID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *NewsFeedServiceImpl) deliverOne(ctx context.Context, userID, tweetID uint64, createdAt time.Time) error {
	feed := &model.NewsFeed{
		UserID:    userID,
		TweetID:   tweetID,
		CreatedAt: createdAt,
	}
	if err := s.newsFeedRepo.CreateNewsFeed(ctx, feed); err != nil {
		return err
	}
	payload, err := json.Marshal(feed)
	if err != nil {
		return err
	}
	key := consts.UserNewsFeedsKey + strconv.FormatUint(userID, 10)
	return s.listCache.Push(ctx, key, payload, s.feedsSource(userID))
}

func (s *NewsFeedServiceImpl) feedsSource(userID uint64) cache.SourceFunc {
	return func(ctx context.Context) ([][]byte, error) {
		feeds, err := s.newsFeedRepo.GetUserNewsFeeds(ctx, userID, s.listCache.Limit())
		if err != nil {
			return nil, err
		}
		items := make([][]byte, 0, len(feeds))
		for _, feed := range feeds {
			payload, err := json.Marshal(feed)
			if err != nil {
				return nil, err
			}
			items = append(items, payload)
		}
		return items, nil
	}
}

func (s *NewsFeedServiceImpl) assemble(ctx context.Context, feeds []*model.NewsFeed) ([]*dto.NewsFeedDTO, error) {
	tweetIDs := make([]uint64, 0, len(feeds))
	for _, feed := range feeds {
		tweetIDs = append(tweetIDs, feed.TweetID)
	}
	tweets, err := s.tweetRepo.GetTweetsByIDs(ctx, tweetIDs)
	if err != nil {
		return nil, err
	}
	tweetMap := make(map[uint64]*model.Tweet, len(tweets))
	userIDs := make([]uint64, 0, len(tweets))
	for _, tweet := range tweets {
		tweetMap[tweet.ID] = tweet
		userIDs = append(userIDs, tweet.UserID)
	}
	userMap, err := s.userService.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.NewsFeedDTO, 0, len(feeds))
	for _, feed := range feeds {
		feedDTO := &dto.NewsFeedDTO{
			ID:          feed.ID,
			CreatedAt:   feed.CreatedAt.Format(time.RFC3339Nano),
			CreatedAtTS: feed.CreatedAt.UnixMicro(),
		}
		if tweet := tweetMap[feed.TweetID]; tweet != nil {
			feedDTO.Tweet = toTweetDTO(tweet, userMap[tweet.UserID])
		}
		results = append(results, feedDTO)
	}
	return results, nil
}

func unmarshalNewsFeeds(items [][]byte) ([]*model.NewsFeed, error) {
	feeds := make([]*model.NewsFeed, 0, len(items))
	for _, item := range items {
		var feed model.NewsFeed
		if err := json.Unmarshal(item, &feed); err != nil {
			return nil, err
		}
		feeds = append(feeds, &feed)
	}
	return feeds, nil
}
