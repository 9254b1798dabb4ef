package kafka

import (
	"Chirp/internal/api/config"
	"Chirp/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	mainConsumer sarama.ConsumerGroup
	mainHandler  sarama.ConsumerGroupHandler

	batchConsumer sarama.ConsumerGroup
	batchHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, newsFeedService service.NewsFeedService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	mainConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Fanout.MainGroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	mainHandler := NewFanoutMainHandler(newsFeedService)

	batchConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Fanout.BatchGroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	batchHandler := NewFanoutBatchHandler(newsFeedService)

	return &ConsumerManager{
		mainConsumer:  mainConsumer,
		mainHandler:   mainHandler,
		batchConsumer: batchConsumer,
		batchHandler:  batchHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Fanout Main Consumer
	go func() {
		topic := cfg.Fanout.MainTopic
		log.Info("Fanout main consumer started", "topic", topic)
		for {
			if err := m.mainConsumer.Consume(ctx, []string{topic}, m.mainHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Fanout Batch Consumer
	go func() {
		topic := cfg.Fanout.BatchTopic
		log.Info("Fanout batch consumer started", "topic", topic)
		for {
			if err := m.batchConsumer.Consume(ctx, []string{topic}, m.batchHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.mainConsumer.Close(); err != nil {
		log.Error("Failed to close fanout main consumer", "err", err)
	}
	if err := m.batchConsumer.Close(); err != nil {
		log.Error("Failed to close fanout batch consumer", "err", err)
	}

	return nil
}
