package ws

import (
	"sync"

	"go.uber.org/zap"

	"omni_notifications/internal/metrics"
	"omni_notifications/internal/model"
)

// Registry fans a single message out to every live client of an account.
// Map mutations (connect, disconnect, the post-broadcast failure sweep)
// serialize on mu; socket writes happen against a snapshot so a slow
// subscriber never blocks connects or disconnects.
type Registry struct {
	mu       sync.RWMutex
	accounts map[string]map[*Client]struct{}
	log      *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		accounts: make(map[string]map[*Client]struct{}),
		log:      logger,
	}
}

func (r *Registry) Connect(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.accounts[client.AccountID()]
	if set == nil {
		set = make(map[*Client]struct{})
		r.accounts[client.AccountID()] = set
	}
	set[client] = struct{}{}
	metrics.WebSocketConnections.Inc()
	r.log.Info("client connected",
		zap.String("account_id", client.AccountID()),
		zap.Int("account_connections", len(set)),
	)
}

func (r *Registry) Disconnect(client *Client) {
	r.mu.Lock()
	removed := r.removeLocked(client)
	r.mu.Unlock()

	if removed {
		metrics.WebSocketConnections.Dec()
		r.log.Info("client disconnected", zap.String("account_id", client.AccountID()))
	}
}

// BroadcastNotification delivers a full notification record to every live
// client of the account. A no-op when the account has no entry.
func (r *Registry) BroadcastNotification(accountID string, notification model.Notification) {
	r.broadcast(accountID, Envelope{Type: MessageTypeNotification, Data: notification})
}

// BroadcastMessage delivers a generic payload, e.g. an unread-count update.
func (r *Registry) BroadcastMessage(accountID, messageType string, data map[string]any) {
	r.broadcast(accountID, Envelope{Type: messageType, Data: data})
}

func (r *Registry) ConnectionCount(accountID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts[accountID])
}

func (r *Registry) TotalConnections() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, set := range r.accounts {
		total += len(set)
	}
	return total
}

func (r *Registry) broadcast(accountID string, envelope Envelope) {
	r.mu.RLock()
	clients := make([]*Client, 0, len(r.accounts[accountID]))
	for client := range r.accounts[accountID] {
		clients = append(clients, client)
	}
	r.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	// A failed send removes that client only, after the pass: delivery to
	// siblings is never aborted and cleanup is invisible to them.
	var failed []*Client
	for _, client := range clients {
		if err := client.Send(envelope); err != nil {
			r.log.Warn("send failed, dropping client",
				zap.String("account_id", accountID),
				zap.String("message_type", envelope.Type),
				zap.Error(err),
			)
			failed = append(failed, client)
		}
	}
	if len(failed) == 0 {
		return
	}

	r.mu.Lock()
	var dropped []*Client
	for _, client := range failed {
		if r.removeLocked(client) {
			dropped = append(dropped, client)
		}
	}
	r.mu.Unlock()

	for _, client := range dropped {
		metrics.WebSocketConnections.Dec()
		_ = client.Close()
	}
}

func (r *Registry) removeLocked(client *Client) bool {
	set := r.accounts[client.AccountID()]
	if set == nil {
		return false
	}
	if _, ok := set[client]; !ok {
		return false
	}
	delete(set, client)
	if len(set) == 0 {
		delete(r.accounts, client.AccountID())
	}
	return true
}
