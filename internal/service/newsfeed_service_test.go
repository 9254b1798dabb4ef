package service

import (
	"Chirp/internal/model"
	"Chirp/internal/pkg/cache"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/pkg/pagination"
	"Chirp/internal/pkg/redis"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNewsFeedRepo struct {
	created []*model.NewsFeed
	bulks   [][]*model.NewsFeed
}

func (f *fakeNewsFeedRepo) CreateNewsFeed(ctx context.Context, feed *model.NewsFeed) error {
	f.created = append(f.created, feed)
	return nil
}

func (f *fakeNewsFeedRepo) BulkCreateNewsFeeds(ctx context.Context, feeds []*model.NewsFeed) error {
	f.bulks = append(f.bulks, feeds)
	return nil
}

func (f *fakeNewsFeedRepo) GetUserNewsFeeds(ctx context.Context, userID uint64, limit int) ([]*model.NewsFeed, error) {
	var feeds []*model.NewsFeed
	for _, feed := range f.created {
		if feed.UserID == userID {
			feeds = append(feeds, feed)
		}
	}
	for _, bulk := range f.bulks {
		for _, feed := range bulk {
			if feed.UserID == userID {
				feeds = append(feeds, feed)
			}
		}
	}
	return feeds, nil
}

func (f *fakeNewsFeedRepo) PaginateUserNewsFeeds(ctx context.Context, userID uint64, q pagination.Query) (pagination.Page[*model.NewsFeed], error) {
	return pagination.Page[*model.NewsFeed]{}, nil
}

type fakeFriendshipService struct {
	FriendshipService
	followerIDs []uint64
}

func (f *fakeFriendshipService) GetFollowerIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	return f.followerIDs, nil
}

type fakePublisher struct {
	batches [][]uint64
}

func (f *fakePublisher) PublishFanoutMain(ctx context.Context, tweetID, authorID uint64, createdAt time.Time) error {
	return nil
}

func (f *fakePublisher) PublishFanoutBatch(ctx context.Context, tweetID uint64, createdAt time.Time, followerIDs []uint64) error {
	f.batches = append(f.batches, followerIDs)
	return nil
}

func setupFeedRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	return mr
}

func newFanoutService(repo *fakeNewsFeedRepo, friendship *fakeFriendshipService,
	publisher *fakePublisher, batchSize int) NewsFeedService {
	listCache := cache.NewListCache(100, time.Minute)
	return NewNewsFeedService(repo, nil, friendship, nil, listCache, publisher, batchSize)
}

func TestFanoutMainPartitionsFollowers(t *testing.T) {
	setupFeedRedis(t)

	followerIDs := make([]uint64, 0, 2500)
	for i := uint64(1); i <= 2500; i++ {
		followerIDs = append(followerIDs, i)
	}
	repo := &fakeNewsFeedRepo{}
	publisher := &fakePublisher{}
	svc := newFanoutService(repo, &fakeFriendshipService{followerIDs: followerIDs}, publisher, 1000)

	createdAt := time.Now()
	require.NoError(t, svc.FanoutNewsFeedsMain(context.Background(), 55, 7, createdAt))

	// 作者自己的信息流同步落好
	require.Len(t, repo.created, 1)
	assert.Equal(t, uint64(7), repo.created[0].UserID)
	assert.Equal(t, uint64(55), repo.created[0].TweetID)

	// 粉丝被切成 1000/1000/500 三个批次，顺序与原列表一致
	require.Len(t, publisher.batches, 3)
	assert.Len(t, publisher.batches[0], 1000)
	assert.Len(t, publisher.batches[1], 1000)
	assert.Len(t, publisher.batches[2], 500)
	assert.Equal(t, uint64(1), publisher.batches[0][0])
	assert.Equal(t, uint64(1001), publisher.batches[1][0])
	assert.Equal(t, uint64(2500), publisher.batches[2][499])
}

func TestFanoutMainNoFollowers(t *testing.T) {
	setupFeedRedis(t)

	repo := &fakeNewsFeedRepo{}
	publisher := &fakePublisher{}
	svc := newFanoutService(repo, &fakeFriendshipService{}, publisher, 1000)

	require.NoError(t, svc.FanoutNewsFeedsMain(context.Background(), 55, 7, time.Now()))
	assert.Len(t, repo.created, 1)
	assert.Empty(t, publisher.batches, "no followers means no batch tasks")
}

func TestDeliverBatchWritesFeedsAndCaches(t *testing.T) {
	mr := setupFeedRedis(t)

	repo := &fakeNewsFeedRepo{}
	svc := newFanoutService(repo, &fakeFriendshipService{}, &fakePublisher{}, 1000)

	createdAt := time.Now()
	followerIDs := []uint64{11, 12, 13}
	require.NoError(t, svc.DeliverNewsFeedsBatch(context.Background(), 55, createdAt, followerIDs))

	require.Len(t, repo.bulks, 1)
	require.Len(t, repo.bulks[0], 3)
	for i, feed := range repo.bulks[0] {
		assert.Equal(t, followerIDs[i], feed.UserID)
		assert.Equal(t, uint64(55), feed.TweetID)
	}

	// 每个粉丝的信息流缓存被回填（key 不存在时 Push 走整体回填）
	for _, followerID := range followerIDs {
		key := consts.UserNewsFeedsKey + strconv.FormatUint(followerID, 10)
		values, err := mr.List(key)
		require.NoError(t, err)
		assert.Len(t, values, 1)
	}
}

func TestPaginateCached(t *testing.T) {
	key := func(v int64) int64 { return v }
	items := []int64{100, 90, 80, 70, 60}

	// 缓存未满：整条真实序列都在缓存里，任何页都可信
	page, served := paginateCached(items, pagination.Query{PageSize: 2}, 10, key)
	assert.True(t, served)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, []int64{100, 90}, page.Results)

	// 缓存已满 + 首页命中：页尾之外缓存里还有数据，可信
	page, served = paginateCached(items, pagination.Query{PageSize: 2}, 5, key)
	assert.True(t, served)
	assert.Equal(t, []int64{100, 90}, page.Results)

	// 缓存已满 + after：更新的数据必然在缓存头部，可信
	after := int64(80)
	page, served = paginateCached(items, pagination.Query{PageSize: 2, After: &after}, 5, key)
	assert.True(t, served)
	assert.Equal(t, []int64{100, 90}, page.Results)

	// 缓存已满 + 翻到缓存尾部：缓存之外可能还有更老的数据，必须回源
	before := int64(70)
	_, served = paginateCached(items, pagination.Query{PageSize: 2, Before: &before}, 5, key)
	assert.False(t, served)
}
