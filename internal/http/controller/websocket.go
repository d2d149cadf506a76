package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"omni_notifications/internal/http/dto"
	"omni_notifications/internal/http/resp"
	"omni_notifications/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the app origin; auth happens upstream.
	CheckOrigin: func(*http.Request) bool { return true },
}

// WebSocket upgrades the request and subscribes the connection to the
// account's notification feed until the peer goes away.
func (h *Handler) WebSocket(c *gin.Context) {
	accountID := c.Param("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "account_id is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.log.Warn("websocket upgrade failed", zap.String("account_id", accountID), zap.Error(err))
		return
	}

	client := ws.NewClient(accountID, conn)
	h.registry.Connect(client)
	defer h.registry.Disconnect(client)

	unread, err := h.svc.UnreadCount(c.Request.Context(), accountID)
	if err != nil {
		h.log.Error("unread count for greeting failed", zap.String("account_id", accountID), zap.Error(err))
		unread = 0
	}
	if err := client.Send(ws.Envelope{
		Type: ws.MessageTypeConnected,
		Data: map[string]any{
			"message":      "Connected to notification service",
			"account_id":   accountID,
			"unread_count": unread,
		},
	}); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("websocket read ended", zap.String("account_id", accountID), zap.Error(err))
			}
			return
		}
		if strings.TrimSpace(string(data)) == "ping" {
			if err := client.Send(ws.Envelope{
				Type: ws.MessageTypePong,
				Data: map[string]any{"timestamp": time.Now().UTC().Format(time.RFC3339)},
			}); err != nil {
				return
			}
		}
		// Anything else from the client is ignored.
	}
}
