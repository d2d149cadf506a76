// Package notify coordinates the store and the connection registry: every
// persisted notification is offered to the registry exactly once, and every
// mutation that changes count-relevant state pushes the new unread count to
// the affected account's live connections.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"omni_notifications/internal/domain"
	"omni_notifications/internal/metrics"
	"omni_notifications/internal/model"
	"omni_notifications/internal/repository"
	"omni_notifications/internal/ws"
)

type Service struct {
	store    repository.NotificationStore
	registry *ws.Registry
	log      *zap.Logger
}

func NewService(store repository.NotificationStore, registry *ws.Registry, logger *zap.Logger) *Service {
	return &Service{store: store, registry: registry, log: logger}
}

// Create persists the notification and pushes it to live subscribers. ID,
// CreatedAt, and Priority receive defaults when zero; a store failure means
// no push.
func (s *Service) Create(ctx context.Context, notification model.Notification) (model.Notification, error) {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	if notification.Priority == "" {
		notification.Priority = domain.PriorityNormal
	}

	if err := s.store.Save(ctx, notification); err != nil {
		s.log.Error("store save notification failed",
			zap.String("account_id", notification.AccountID),
			zap.String("label", notification.Label),
			zap.Error(err),
		)
		return model.Notification{}, err
	}
	metrics.NotificationsCreated.Inc()

	s.registry.BroadcastNotification(notification.AccountID, notification)
	return notification, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Notification, error) {
	return s.store.Get(ctx, id)
}

// List returns one timeline page plus the unfiltered total and the account's
// unread count.
func (s *Service) List(ctx context.Context, accountID string, page, pageSize int, category string) ([]model.Notification, int64, int64, error) {
	items, total, err := s.store.ListForAccount(ctx, accountID, page, pageSize, category)
	if err != nil {
		s.log.Error("store list notifications failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, 0, 0, err
	}
	unread, err := s.store.UnreadCount(ctx, accountID)
	if err != nil {
		s.log.Error("store unread count failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, 0, 0, err
	}
	return items, total, unread, nil
}

func (s *Service) UnreadCount(ctx context.Context, accountID string) (int64, error) {
	return s.store.UnreadCount(ctx, accountID)
}

// MarkRead marks one notification read and, when it existed, pushes the new
// unread count. Returns found and the count.
func (s *Service) MarkRead(ctx context.Context, id, accountID string) (bool, int64, error) {
	ok, err := s.store.MarkRead(ctx, id, accountID)
	if err != nil || !ok {
		return false, 0, err
	}

	unread, err := s.store.UnreadCount(ctx, accountID)
	if err != nil {
		s.log.Error("store unread count failed", zap.String("account_id", accountID), zap.Error(err))
		return true, 0, err
	}
	s.pushUnreadCount(accountID, unread)
	return true, unread, nil
}

// MarkAllRead sweeps the account's unread set and pushes a zero count.
func (s *Service) MarkAllRead(ctx context.Context, accountID string) (int, error) {
	count, err := s.store.MarkAllRead(ctx, accountID)
	if err != nil {
		s.log.Error("store mark all read failed", zap.String("account_id", accountID), zap.Error(err))
		return count, err
	}
	s.pushUnreadCount(accountID, 0)
	return count, nil
}

// Delete removes the notification from all indexes. Deleting an unread
// record changes the count, so a successful delete pushes the refreshed
// value.
func (s *Service) Delete(ctx context.Context, id, accountID string) (bool, error) {
	ok, err := s.store.Delete(ctx, id, accountID)
	if err != nil || !ok {
		return false, err
	}

	unread, err := s.store.UnreadCount(ctx, accountID)
	if err != nil {
		s.log.Error("store unread count failed", zap.String("account_id", accountID), zap.Error(err))
		return true, nil
	}
	s.pushUnreadCount(accountID, unread)
	return true, nil
}

func (s *Service) pushUnreadCount(accountID string, unread int64) {
	s.registry.BroadcastMessage(accountID, ws.MessageTypeUnreadCount, map[string]any{
		"unread_count": unread,
	})
}
