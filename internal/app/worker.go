package app

import (
	"context"
	"fmt"
	"time"

	"hris-dashboard/internal/config"
	"hris-dashboard/internal/messaging/kafka"
	"hris-dashboard/internal/messaging/kafka/producer"
	"hris-dashboard/internal/shared/connection"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const outboxPollInterval = 3 * time.Second

// RunWorker relays the outbox to Kafka and purges relayed rows daily.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	scheduler, err := newPurgeScheduler(ctx, outboxRepo, log)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, outboxPollInterval)

	log.Info("worker shutting down")
	return nil
}

func newPurgeScheduler(ctx context.Context, repo kafka.OutboxRepository, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc("@daily", func() {
		producer.PurgeSentEvents(ctx, repo, log, time.Now())
	})
	if err != nil {
		return nil, fmt.Errorf("schedule outbox purge: %w", err)
	}
	return c, nil
}
