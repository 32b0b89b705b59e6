package middleware

import (
	"time"

	"hris-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger carrying the request id,
// user id and role, and writes one access line per request. Mount it after
// RequestID and, on protected groups, after AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	base := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		meta := contextutil.ExtractMetadata(c.Request.Context())

		reqLogger := base.With(
			zap.String("request_id", meta.RequestID),
			zap.String("user_id", meta.UserID),
			zap.String("role", meta.Role),
		)
		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			reqLogger.Error("request completed", fields...)
		case status >= 400:
			reqLogger.Warn("request completed", fields...)
		default:
			reqLogger.Info("request completed", fields...)
		}
	}
}
