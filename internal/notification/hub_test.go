package notification_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hris-dashboard/internal/auth/token"
	"hris-dashboard/internal/notification"
	notificationerrors "hris-dashboard/internal/notification/errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PushFailsFastWhenBacklogged(t *testing.T) {
	hub := notification.NewHub()

	var err error
	for i := 0; i < 100 && err == nil; i++ {
		err = hub.Push(context.Background(), notification.Message{Title: "x"})
	}
	assert.ErrorIs(t, err, notificationerrors.ErrHubBusy)
}

func TestHub_DeliversToConnectedClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := notification.NewHub()
	go hub.Run(ctx)

	tokens := token.NewManager("ws-secret", time.Hour)
	signed, _, err := tokens.Issue("u-1", "jane", "employee")
	require.NoError(t, err)

	r := gin.New()
	h := notification.NewHandler(notification.NewService(&fakeRepo{}), hub, tokens, nil)
	r.GET("/ws", h.ServeWs)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + signed
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients(ctx) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Push(ctx, notification.Message{Type: "leave_status_changed", Status: "Approved"}))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var got notification.Message
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Approved", got.Status)
}

func TestHandler_ServeWsRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := notification.NewHub()
	tokens := token.NewManager("ws-secret", time.Hour)

	r := gin.New()
	r.GET("/ws", notification.NewHandler(notification.NewService(&fakeRepo{}), hub, tokens, nil).ServeWs)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ws", nil))
	assert.Equal(t, 401, w.Code)
}
