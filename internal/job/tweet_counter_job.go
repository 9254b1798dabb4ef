package job

import (
	"Chirp/internal/model"
	"Chirp/internal/pkg/consts"
	"Chirp/internal/pkg/logger"
	"Chirp/internal/pkg/redis"
	"Chirp/internal/pkg/util"
	"Chirp/internal/repository"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// TweetCounterJob 对账脏推文的冗余计数列
// 点赞/评论路径上的原子增减偶尔会和权威计数漂移（重试、并发删除），
// 这里拿 likes/comments 表的真实计数覆写回去
type TweetCounterJob struct {
	tweetRepo   repository.TweetRepo
	likeRepo    repository.LikeRepo
	commentRepo repository.CommentRepo
}

func NewTweetCounterJob(tweetRepo repository.TweetRepo, likeRepo repository.LikeRepo,
	commentRepo repository.CommentRepo) *TweetCounterJob {
	return &TweetCounterJob{
		tweetRepo:   tweetRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

func (s *TweetCounterJob) Run() {
	traceID := "job-tweet-counter-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.CounterDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.CounterDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get counter dirty set error", "err", err)
		return
	}

	tweetIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert counter set to int slice error", "err", err)
		return
	}

	log.InfoContext(ctx, "start syncing tweet counters", "count", len(tweetIDs))

	successCount := 0
	for _, tid := range tweetIDs {
		likesCount, err := s.likeRepo.CountByTarget(ctx, model.LikeTargetTweet, tid)
		if err != nil {
			log.ErrorContext(ctx, "get tweet likes count error", "tid", tid, "err", err)
			continue
		}
		commentsCount, err := s.commentRepo.CountByTweet(ctx, tid)
		if err != nil {
			log.ErrorContext(ctx, "get tweet comments count error", "tid", tid, "err", err)
			continue
		}

		if err = s.tweetRepo.SyncCounters(ctx, tid, likesCount, commentsCount); err != nil {
			log.ErrorContext(ctx, "sync tweet counters to mysql error", "tid", tid, "err", err)
			continue
		}
		successCount++
	}

	if err = redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete counter processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync tweet counters success",
		"total_count", len(tweetIDs),
		"success_count", successCount)
}
