package app

import (
	"context"
	"fmt"

	"hris-dashboard/internal/config"
	"hris-dashboard/internal/events"
	"hris-dashboard/internal/messaging/kafka/consumer"
	"hris-dashboard/internal/notification"
	"hris-dashboard/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer records leave status events as inbox notifications.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	notificationService := notification.NewService(notification.NewRepository(gormDB), logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.LeaveStatusChangedTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumeLeaveStatusChanged(ctx, reader, notificationService, logger)

	log.Info("consumer shutting down")
	return nil
}
