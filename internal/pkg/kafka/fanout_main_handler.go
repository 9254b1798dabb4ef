package kafka

import (
	"Chirp/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// FanoutMainHandler 消费扇出主任务
type FanoutMainHandler struct {
	newsFeedService service.NewsFeedService
}

func NewFanoutMainHandler(newsFeedService service.NewsFeedService) *FanoutMainHandler {
	return &FanoutMainHandler{newsFeedService: newsFeedService}
}

func (s *FanoutMainHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("fanout main consumer setup")
	return nil
}

func (s *FanoutMainHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("fanout main consumer cleanup")
	return nil
}

func (s *FanoutMainHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-fanout-main consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-fanout-main process batch error", "err", err)
		return err
	}
	log.Info("topic-fanout-main consume claim end")
	return nil
}

func (s *FanoutMainHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event FanoutMainEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 坏消息无法靠重试救回，记日志后吞掉
		log.ErrorContext(ctx, "unmarshal fanout main event error", "err", err)
		return nil
	}
	return s.newsFeedService.FanoutNewsFeedsMain(ctx, event.TweetID, event.AuthorID, time.UnixMicro(event.CreatedAtTS))
}
