package contextutil_test

import (
	"context"
	"testing"

	"hris-dashboard/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestContextUtil_Metadata(t *testing.T) {
	ctx := context.Background()
	ctx = contextutil.WithRequestID(ctx, "req-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithRole(ctx, "hr")

	md := contextutil.ExtractMetadata(ctx)
	assert.Equal(t, "req-1", md.RequestID)
	assert.Equal(t, "user-1", md.UserID)
	assert.Equal(t, "hr", md.Role)
}

func TestContextUtil_GetLogger(t *testing.T) {
	t.Run("falls back to nop when nothing is set", func(t *testing.T) {
		l := contextutil.GetLogger(context.Background(), nil)
		assert.NotNil(t, l)
	})

	t.Run("returns scoped logger", func(t *testing.T) {
		scoped := zap.NewExample()
		ctx := contextutil.WithLogger(context.Background(), scoped)
		assert.Same(t, scoped, contextutil.GetLogger(ctx, zap.NewNop()))
	})

	t.Run("returns default when ctx has none", func(t *testing.T) {
		def := zap.NewExample()
		assert.Same(t, def, contextutil.GetLogger(context.Background(), def))
	})
}
