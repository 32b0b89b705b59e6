package producer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hris-dashboard/internal/messaging/kafka"
	"hris-dashboard/internal/messaging/kafka/mock"
	"hris-dashboard/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failFor map[string]bool
	written []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if w.failFor[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("sends and marks each event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		events := []kafka.OutboxEvent{
			{ID: "o1", AggregateID: "leave-1", Topic: "hr.leave.status.v1", EventType: "leave_status_changed", Payload: []byte(`{}`)},
			{ID: "o2", AggregateID: "leave-2", Topic: "hr.leave.status.v1", EventType: "leave_status_changed", Payload: []byte(`{}`)},
		}
		repo.EXPECT().ListPending(gomock.Any(), 50).Return(events, nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o1").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		if assert.Len(t, writer.written, 2) {
			assert.Equal(t, "hr.leave.status.v1", writer.written[0].Topic)
			assert.Equal(t, []byte("leave-1"), writer.written[0].Key)
		}
	})

	t.Run("failed publish is marked for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{"leave-1": true}}

		repo.EXPECT().ListPending(gomock.Any(), 50).Return([]kafka.OutboxEvent{
			{ID: "o1", AggregateID: "leave-1", Topic: "t"},
			{ID: "o2", AggregateID: "leave-2", Topic: "t"},
		}, nil)
		repo.EXPECT().MarkFailed(gomock.Any(), "o1", "broker unavailable").Return(nil)
		repo.EXPECT().MarkSent(gomock.Any(), "o2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(gomock.Any(), 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.EqualError(t, err, "db down")
	})
}

func TestPurgeSentEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	now := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().PurgeSent(gomock.Any(), now.Add(-producer.SentRetention)).Return(int64(3), nil)

	producer.PurgeSentEvents(context.Background(), repo, zap.NewNop(), now)
}
