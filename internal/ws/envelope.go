package ws

// Server-to-client message types.
const (
	MessageTypeConnected    = "connected"
	MessageTypeNotification = "notification"
	MessageTypeUnreadCount  = "unread_count_update"
	MessageTypePong         = "pong"
)

// Envelope is the wire frame for every server-to-client message.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
