package kafka

import (
	"Chirp/internal/api/config"
	"context"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// FanoutProducer 扇出任务生产者，实现 service.FanoutPublisher
type FanoutProducer struct {
	producer   sarama.SyncProducer
	mainTopic  string
	batchTopic string
}

func NewFanoutProducer(cfg *config.Config) (*FanoutProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, errors.Wrap(err, "kafka: create sync producer")
	}
	return &FanoutProducer{
		producer:   producer,
		mainTopic:  cfg.Fanout.MainTopic,
		batchTopic: cfg.Fanout.BatchTopic,
	}, nil
}

// PublishFanoutMain 投递扇出主任务
func (p *FanoutProducer) PublishFanoutMain(ctx context.Context, tweetID, authorID uint64, createdAt time.Time) error {
	event := &FanoutMainEvent{
		TweetID:     tweetID,
		AuthorID:    authorID,
		CreatedAtTS: createdAt.UnixMicro(),
	}
	return p.send(p.mainTopic, tweetID, event)
}

// PublishFanoutBatch 投递扇出批次任务
func (p *FanoutProducer) PublishFanoutBatch(ctx context.Context, tweetID uint64, createdAt time.Time, followerIDs []uint64) error {
	event := &FanoutBatchEvent{
		TweetID:     tweetID,
		CreatedAtTS: createdAt.UnixMicro(),
		FollowerIDs: followerIDs,
	}
	return p.send(p.batchTopic, tweetID, event)
}

func (p *FanoutProducer) Close() error {
	return p.producer.Close()
}

func (p *FanoutProducer) send(topic string, tweetID uint64, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(tweetID, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	return errors.Wrapf(err, "kafka: send to %s", topic)
}
