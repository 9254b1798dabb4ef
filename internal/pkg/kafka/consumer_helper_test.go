package kafka

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	ctx    context.Context
	marked []*sarama.ConsumerMessage
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string           { return "test-member" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
}
func (s *fakeSession) Commit() {}
func (s *fakeSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	s.marked = append(s.marked, msg)
}
func (s *fakeSession) Context() context.Context { return s.ctx }

func testMessage(offset int64) *sarama.ConsumerMessage {
	return &sarama.ConsumerMessage{Topic: "newsfeed-fanout-main", Partition: 0, Offset: offset}
}

func TestProcessBatchMarksLastMessage(t *testing.T) {
	session := &fakeSession{ctx: context.Background()}
	messages := []*sarama.ConsumerMessage{testMessage(10), testMessage(11), testMessage(12)}

	var processed atomic.Int64
	processBatch(session, messages, func(ctx context.Context, msg *sarama.ConsumerMessage) error {
		processed.Add(1)
		return nil
	})

	assert.Equal(t, int64(3), processed.Load())
	require.Len(t, session.marked, 1)
	assert.Equal(t, int64(12), session.marked[0].Offset)
}

func TestProcessBatchRetriesTransientFailure(t *testing.T) {
	session := &fakeSession{ctx: context.Background()}

	var attempts atomic.Int64
	processBatch(session, []*sarama.ConsumerMessage{testMessage(10)},
		func(ctx context.Context, msg *sarama.ConsumerMessage) error {
			if attempts.Add(1) < 3 {
				return fmt.Errorf("db hiccup")
			}
			return nil
		})

	assert.Equal(t, int64(3), attempts.Load())
	assert.Len(t, session.marked, 1)
}

func TestProcessBatchDropsPoisonMessage(t *testing.T) {
	session := &fakeSession{ctx: context.Background()}

	// 一直失败的消息重试次数耗尽后放行，位点照常提交，
	// 不会堵死同分区后续消息
	var attempts atomic.Int64
	processBatch(session, []*sarama.ConsumerMessage{testMessage(10)},
		func(ctx context.Context, msg *sarama.ConsumerMessage) error {
			attempts.Add(1)
			return fmt.Errorf("unmarshalable payload")
		})

	assert.Equal(t, int64(maxProcessAttempts), attempts.Load())
	require.Len(t, session.marked, 1)
	assert.Equal(t, int64(10), session.marked[0].Offset)
}

func TestProcessBatchStopsOnSessionDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := &fakeSession{ctx: ctx}

	var attempts atomic.Int64
	processBatch(session, []*sarama.ConsumerMessage{testMessage(10)},
		func(c context.Context, msg *sarama.ConsumerMessage) error {
			attempts.Add(1)
			cancel()
			return fmt.Errorf("rebalancing")
		})

	assert.Equal(t, int64(1), attempts.Load())
}
