package logger_test

import (
	"path/filepath"
	"testing"

	"hris-dashboard/internal/config"
	"hris-dashboard/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew_Development(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "development"
	cfg.Log.Level = "debug"

	l, level, err := logger.New(cfg)

	assert.NoError(t, err)
	assert.NotNil(t, l)
	assert.Equal(t, zap.DebugLevel, level.Level())
}

func TestNew_ProductionFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "production"
	cfg.Log.Level = "not-a-level"
	cfg.Log.Filename = filepath.Join(t.TempDir(), "app.log")
	cfg.Log.MaxSizeMB = 1

	l, level, err := logger.New(cfg)

	assert.NoError(t, err)
	assert.NotNil(t, l)
	assert.Equal(t, zap.InfoLevel, level.Level())
	l.Info("written to rotating file")
	_ = l.Sync()
}
