package ws

import "sync"

// Conn is the transport a client sends on. *websocket.Conn satisfies it;
// tests substitute their own.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Client is one live connection belonging to exactly one account.
type Client struct {
	accountID string
	conn      Conn

	// The underlying websocket permits a single concurrent writer; sends
	// from broadcasts and from the read loop's pong replies serialize here.
	writeMu sync.Mutex
}

func NewClient(accountID string, conn Conn) *Client {
	return &Client{accountID: accountID, conn: conn}
}

func (c *Client) AccountID() string {
	return c.accountID
}

func (c *Client) Send(envelope Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(envelope)
}

func (c *Client) Close() error {
	return c.conn.Close()
}
