package e2e

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"omni_notifications/internal/model"
	"omni_notifications/internal/ws"
)

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialWS(t *testing.T, serverURL, accountID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/api/notifications/ws/" + accountID
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestWebSocketGreetingAndPing(t *testing.T) {
	server := startServer(t)
	conn := dialWS(t, server.URL, "acct-1")

	hello := readEnvelope(t, conn)
	require.Equal(t, ws.MessageTypeConnected, hello.Type)
	var greeting map[string]any
	require.NoError(t, json.Unmarshal(hello.Data, &greeting))
	require.Equal(t, "acct-1", greeting["account_id"])
	require.EqualValues(t, 0, greeting["unread_count"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
	pong := readEnvelope(t, conn)
	require.Equal(t, ws.MessageTypePong, pong.Type)
	var pongData map[string]any
	require.NoError(t, json.Unmarshal(pong.Data, &pongData))
	require.NotEmpty(t, pongData["timestamp"])
}

func TestWebSocketReceivesLiveNotifications(t *testing.T) {
	server := startServer(t)
	conn := dialWS(t, server.URL, "acct-1")

	hello := readEnvelope(t, conn)
	require.Equal(t, ws.MessageTypeConnected, hello.Type)

	createResp := postJSON(t, server.URL+"/api/notifications/test/create", map[string]string{
		"account_id": "acct-1",
		"label":      "Funds received",
	})
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	var created model.Notification
	decodeBody(t, createResp, &created)

	pushed := readEnvelope(t, conn)
	require.Equal(t, ws.MessageTypeNotification, pushed.Type)
	var notification model.Notification
	require.NoError(t, json.Unmarshal(pushed.Data, &notification))
	require.Equal(t, created.ID, notification.ID)
	require.Equal(t, "Funds received", notification.Label)

	readResp := doRequest(t, http.MethodPut, server.URL+"/api/notifications/"+created.ID+"/read?account_id=acct-1")
	require.Equal(t, http.StatusOK, readResp.StatusCode)
	_ = readResp.Body.Close()

	update := readEnvelope(t, conn)
	require.Equal(t, ws.MessageTypeUnreadCount, update.Type)
	var counts map[string]any
	require.NoError(t, json.Unmarshal(update.Data, &counts))
	require.EqualValues(t, 0, counts["unread_count"])
}

func TestWebSocketAccountIsolation(t *testing.T) {
	server := startServer(t)
	connA := dialWS(t, server.URL, "acct-a")
	connB := dialWS(t, server.URL, "acct-b")

	require.Equal(t, ws.MessageTypeConnected, readEnvelope(t, connA).Type)
	require.Equal(t, ws.MessageTypeConnected, readEnvelope(t, connB).Type)

	createResp := postJSON(t, server.URL+"/api/notifications/test/create", map[string]string{
		"account_id": "acct-a",
	})
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	_ = createResp.Body.Close()

	require.Equal(t, ws.MessageTypeNotification, readEnvelope(t, connA).Type)

	require.NoError(t, connB.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var env envelope
	err := connB.ReadJSON(&env)
	require.Error(t, err)
	netErr, ok := err.(interface{ Timeout() bool })
	require.True(t, ok)
	require.True(t, netErr.Timeout())
}

func TestWebSocketGreetingCarriesUnreadCount(t *testing.T) {
	server := startServer(t)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, server.URL+"/api/notifications/test/create", map[string]string{
			"account_id": "acct-1",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	conn := dialWS(t, server.URL, "acct-1")
	hello := readEnvelope(t, conn)
	require.Equal(t, ws.MessageTypeConnected, hello.Type)
	var greeting map[string]any
	require.NoError(t, json.Unmarshal(hello.Data, &greeting))
	require.EqualValues(t, 3, greeting["unread_count"])
}
