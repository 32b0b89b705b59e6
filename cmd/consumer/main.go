package main

import (
	"context"
	"os/signal"
	"syscall"

	"hris-dashboard/internal/app"
	"hris-dashboard/internal/config"
	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, v, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, level, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)
	config.WatchLogLevel(v, level)

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunConsumer(ctx, cfg, log); err != nil {
		log.Fatal("run consumer failed", zap.Error(err))
	}
}
