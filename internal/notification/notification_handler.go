package notification

import (
	"net/http"
	"slices"

	autherrors "hris-dashboard/internal/auth/errors"
	"hris-dashboard/internal/auth/token"
	"hris-dashboard/internal/shared/apperror"
	"hris-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	service  Service
	hub      *Hub
	tokens   token.Parser
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler builds the inbox and websocket handler. An empty
// allowedOrigins accepts any origin.
func NewHandler(service Service, hub *Hub, tokens token.Parser, allowedOrigins []string, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{
		service: service,
		hub:     hub,
		tokens:  tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowedOrigins) == 0 || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("notification request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
}

// List godoc
// @Summary List recent notifications
// @Tags notifications
// @Produce json
// @Param limit query int false "max rows (default 20)"
// @Param unread query bool false "only unread"
// @Success 200 {object} response.ApiEnvelope
// @Router /notifications [get]
func (h *Handler) List(c *gin.Context) {
	var q ListNotificationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.List(c.Request.Context(), q.Limit, q.UnreadOnly)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path string true "notification id"
// @Success 200 {object} response.ApiEnvelope
// @Failure 404 {object} response.ApiEnvelope
// @Router /notifications/{id}/read [put]
func (h *Handler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

// ServeWs upgrades an authenticated request. Browsers cannot set headers on
// websocket requests, so the token comes from the query string or cookie.
func (h *Handler) ServeWs(c *gin.Context) {
	raw := c.Query("token")
	if raw == "" {
		raw, _ = c.Cookie("access_token")
	}
	if raw == "" {
		h.writeServiceError(c, autherrors.ErrTokenMissing)
		return
	}

	claims, err := h.tokens.Parse(raw)
	if err != nil {
		h.writeServiceError(c, autherrors.ErrInvalidToken)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.hub.Attach(conn, claims.UserID)
}
