package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hris-dashboard/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// LeaveStatusRecorder stores one inbox notification per event id.
type LeaveStatusRecorder interface {
	RecordLeaveStatusChanged(ctx context.Context, eventID string, e events.LeaveStatusChangedEvent) (bool, error)
}

// Backoff bounds for storage failures and fetch errors.
var (
	RetryBaseDelay = 200 * time.Millisecond
	RetryMaxDelay  = 10 * time.Second
)

// ConsumeLeaveStatusChanged turns leave status events into inbox
// notifications until ctx is cancelled. A message is committed once it is
// recorded, already recorded, or undecodable. Storage failures are retried
// in place, so no later offset is committed past an unrecorded message.
func ConsumeLeaveStatusChanged(
	ctx context.Context,
	reader MessageReader,
	recorder LeaveStatusRecorder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	delay := RetryBaseDelay
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Duration("retry_in", delay), zap.Error(err))
			if !wait(ctx, delay) {
				log.Info("leave status consumer stopped")
				return
			}
			delay = nextDelay(delay)
			continue
		}
		delay = RetryBaseDelay

		HandleLeaveStatusMessage(ctx, reader, recorder, msg, log)
	}
}

// HandleLeaveStatusMessage processes a single fetched message. It returns
// once the message is committed or ctx is done; in the latter case the
// message stays uncommitted and is redelivered after restart.
func HandleLeaveStatusMessage(
	ctx context.Context,
	reader MessageReader,
	recorder LeaveStatusRecorder,
	msg kafkago.Message,
	log *zap.Logger,
) {
	eventID := EventID(msg)

	var event events.LeaveStatusChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave_status_changed event failed",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
		commit(ctx, reader, msg, log)
		return
	}

	delay := RetryBaseDelay
	var created bool
	for attempt := 1; ; attempt++ {
		var err error
		created, err = recorder.RecordLeaveStatusChanged(ctx, eventID, event)
		if err == nil {
			break
		}
		log.Error("record leave status notification failed",
			zap.String("event_id", eventID),
			zap.String("leave_id", event.LeaveID),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		if !wait(ctx, delay) {
			log.Warn("leave status message left uncommitted", zap.String("event_id", eventID))
			return
		}
		delay = nextDelay(delay)
	}
	if !created {
		log.Warn("leave status event already recorded, skipping", zap.String("event_id", eventID))
	}

	commit(ctx, reader, msg, log)
}

// EventID prefers the outbox id header and falls back to the message's
// position in the log.
func EventID(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "outbox_id" && len(h.Value) > 0 {
			return string(h.Value)
		}
	}
	return fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
}

func nextDelay(d time.Duration) time.Duration {
	return min(d*2, RetryMaxDelay)
}

// wait reports false when ctx ends first.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit leave status message failed", zap.Error(err))
	}
}
