// Package memory is the in-process NotificationStore used when no Redis
// address is configured, and by tests. It mirrors the Redis implementation's
// three indexes and their observable quirks.
package memory

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"omni_notifications/internal/model"
)

type timelineEntry struct {
	id        string
	createdAt time.Time
}

type Store struct {
	mu        sync.Mutex
	byID      map[string]model.Notification
	timelines map[string][]timelineEntry
	unread    map[string]map[string]struct{}
	log       *zap.Logger
}

func New(logger *zap.Logger) *Store {
	return &Store{
		byID:      make(map[string]model.Notification),
		timelines: make(map[string][]timelineEntry),
		unread:    make(map[string]map[string]struct{}),
		log:       logger,
	}
}

func (s *Store) Close() error {
	return nil
}
