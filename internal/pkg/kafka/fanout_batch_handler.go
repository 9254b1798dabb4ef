package kafka

import (
	"Chirp/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// FanoutBatchHandler 消费扇出批次任务
type FanoutBatchHandler struct {
	newsFeedService service.NewsFeedService
}

func NewFanoutBatchHandler(newsFeedService service.NewsFeedService) *FanoutBatchHandler {
	return &FanoutBatchHandler{newsFeedService: newsFeedService}
}

func (s *FanoutBatchHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("fanout batch consumer setup")
	return nil
}

func (s *FanoutBatchHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("fanout batch consumer cleanup")
	return nil
}

func (s *FanoutBatchHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-fanout-batch consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-fanout-batch process batch error", "err", err)
		return err
	}
	log.Info("topic-fanout-batch consume claim end")
	return nil
}

func (s *FanoutBatchHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event FanoutBatchEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.ErrorContext(ctx, "unmarshal fanout batch event error", "err", err)
		return nil
	}
	if len(event.FollowerIDs) == 0 {
		return nil
	}
	return s.newsFeedService.DeliverNewsFeedsBatch(ctx, event.TweetID, time.UnixMicro(event.CreatedAtTS), event.FollowerIDs)
}
