package service

import (
	"Chirp/internal/api/dto"
	"Chirp/internal/model"
	"Chirp/internal/pkg/cache"
	"Chirp/internal/pkg/pagination"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTweetRepo struct {
	tweets    []*model.Tweet
	nextID    uint64
	paginated int
}

func (f *fakeTweetRepo) CreateTweet(ctx context.Context, tweet *model.Tweet) error {
	f.nextID++
	tweet.ID = f.nextID
	f.tweets = append([]*model.Tweet{tweet}, f.tweets...)
	return nil
}

func (f *fakeTweetRepo) GetTweetByID(ctx context.Context, tweetID uint64) (*model.Tweet, error) {
	for _, tweet := range f.tweets {
		if tweet.ID == tweetID {
			return tweet, nil
		}
	}
	return nil, nil
}

func (f *fakeTweetRepo) GetTweetsByIDs(ctx context.Context, tweetIDs []uint64) ([]*model.Tweet, error) {
	var result []*model.Tweet
	for _, id := range tweetIDs {
		if tweet, _ := f.GetTweetByID(ctx, id); tweet != nil {
			result = append(result, tweet)
		}
	}
	return result, nil
}

func (f *fakeTweetRepo) GetUserTweets(ctx context.Context, userID uint64, limit int) ([]*model.Tweet, error) {
	var result []*model.Tweet
	for _, tweet := range f.tweets {
		if tweet.UserID == userID && len(result) < limit {
			result = append(result, tweet)
		}
	}
	return result, nil
}

func (f *fakeTweetRepo) PaginateUserTweets(ctx context.Context, userID uint64, q pagination.Query) (pagination.Page[*model.Tweet], error) {
	f.paginated++
	var owned []*model.Tweet
	for _, tweet := range f.tweets {
		if tweet.UserID == userID {
			owned = append(owned, tweet)
		}
	}
	return pagination.PaginateSlice(owned, func(t *model.Tweet) int64 {
		return t.CreatedAt.UnixMicro()
	}, q), nil
}

func (f *fakeTweetRepo) AdjustLikesCount(ctx context.Context, tweetID uint64, delta int) error {
	return nil
}

func (f *fakeTweetRepo) AdjustCommentsCount(ctx context.Context, tweetID uint64, delta int) error {
	return nil
}

func (f *fakeTweetRepo) SyncCounters(ctx context.Context, tweetID uint64, likesCount, commentsCount int64) error {
	return nil
}

func newTweetFixture(t *testing.T, cacheLimit int) (TweetService, *fakeTweetRepo, *fakePublisher) {
	t.Helper()
	setupFeedRedis(t)
	repo := &fakeTweetRepo{}
	publisher := &fakePublisher{}
	users := &fakeUserService{users: map[uint64]*dto.UserDTO{
		7: {ID: 7, Nickname: "seven"},
	}}
	svc := NewTweetService(repo, users, cache.NewListCache(cacheLimit, time.Minute), publisher)
	return svc, repo, publisher
}

func TestCreateTweet(t *testing.T) {
	svc, repo, _ := newTweetFixture(t, 100)

	tweetDTO, err := svc.CreateTweet(context.Background(), 7, &dto.CreateTweetDTO{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", tweetDTO.Content)
	assert.Equal(t, uint64(7), tweetDTO.UserID)
	assert.Equal(t, "seven", tweetDTO.Nickname)
	assert.NotZero(t, tweetDTO.CreatedAtTS)
	require.Len(t, repo.tweets, 1)
}

func TestCreateTweetContentTooLong(t *testing.T) {
	svc, repo, _ := newTweetFixture(t, 100)

	// 长度按 rune 计，255 个多字节字符是合法上界
	_, err := svc.CreateTweet(context.Background(), 7, &dto.CreateTweetDTO{
		Content: strings.Repeat("汉", 255),
	})
	require.NoError(t, err)

	_, err = svc.CreateTweet(context.Background(), 7, &dto.CreateTweetDTO{
		Content: strings.Repeat("汉", 256),
	})
	assert.ErrorIs(t, err, ErrContentTooLong)
	assert.Len(t, repo.tweets, 1)
}

func TestGetTweetNotFound(t *testing.T) {
	svc, _, _ := newTweetFixture(t, 100)

	_, err := svc.GetTweet(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestGetUserTweetsFromCache(t *testing.T) {
	svc, repo, _ := newTweetFixture(t, 100)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.CreateTweet(context.Background(), &model.Tweet{
			UserID:    7,
			Content:   "t",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := svc.GetUserTweets(context.Background(), 7, pagination.Query{PageSize: 3})
	require.NoError(t, err)
	assert.True(t, page.HasNextPage)
	require.Len(t, page.Results, 3)
	// 新在前
	assert.Greater(t, page.Results[0].CreatedAtTS, page.Results[1].CreatedAtTS)
	assert.Equal(t, 0, repo.paginated, "page within cache must not hit the database")
}

func TestGetUserTweetsFallsBackToDB(t *testing.T) {
	// 缓存上限 3，用户有 5 条推文，翻过缓存尾部必须回源
	svc, repo, _ := newTweetFixture(t, 3)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.CreateTweet(context.Background(), &model.Tweet{
			UserID:    7,
			Content:   "t",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	oldest := base.Add(2 * time.Minute).UnixMicro()
	page, err := svc.GetUserTweets(context.Background(), 7, pagination.Query{
		PageSize: 3,
		Before:   &oldest,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.paginated)
	require.Len(t, page.Results, 2)
	assert.False(t, page.HasNextPage)
}
