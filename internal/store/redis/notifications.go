package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"omni_notifications/internal/model"
)

// Save issues three writes with no transaction: a crash between them can
// leave the indexes inconsistent. Callers tolerate that; see the repository
// contract.
func (s *Store) Save(ctx context.Context, notification model.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.client.Set(ctx, notificationKey(notification.ID), payload, 0).Err(); err != nil {
		s.log.Error("redis set notification failed",
			zap.String("notification_id", notification.ID),
			zap.String("account_id", notification.AccountID),
			zap.Error(err),
		)
		return fmt.Errorf("redis set: %w", err)
	}

	score := float64(notification.CreatedAt.UnixNano()) / 1e9
	if err := s.client.ZAdd(ctx, timelineKey(notification.AccountID), redis.Z{
		Score:  score,
		Member: notification.ID,
	}).Err(); err != nil {
		s.log.Error("redis timeline add failed",
			zap.String("notification_id", notification.ID),
			zap.String("account_id", notification.AccountID),
			zap.Error(err),
		)
		return fmt.Errorf("redis zadd: %w", err)
	}

	if !notification.IsRead {
		if err := s.client.SAdd(ctx, unreadKey(notification.AccountID), notification.ID).Err(); err != nil {
			s.log.Error("redis unread add failed",
				zap.String("notification_id", notification.ID),
				zap.String("account_id", notification.AccountID),
				zap.Error(err),
			)
			return fmt.Errorf("redis sadd: %w", err)
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*model.Notification, error) {
	data, err := s.client.Get(ctx, notificationKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("redis get notification failed", zap.String("notification_id", id), zap.Error(err))
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var notification model.Notification
	if err := json.Unmarshal(data, &notification); err != nil {
		return nil, fmt.Errorf("unmarshal notification: %w", err)
	}
	return &notification, nil
}

func (s *Store) ListForAccount(ctx context.Context, accountID string, page, pageSize int, category string) ([]model.Notification, int64, error) {
	total, err := s.client.ZCard(ctx, timelineKey(accountID)).Result()
	if err != nil {
		s.log.Error("redis timeline card failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, 0, fmt.Errorf("redis zcard: %w", err)
	}

	start := int64(page-1) * int64(pageSize)
	end := start + int64(pageSize) - 1

	ids, err := s.client.ZRevRange(ctx, timelineKey(accountID), start, end).Result()
	if err != nil {
		s.log.Error("redis timeline range failed", zap.String("account_id", accountID), zap.Error(err))
		return nil, 0, fmt.Errorf("redis zrevrange: %w", err)
	}

	// Fetch the page first, then filter: total stays unfiltered and a
	// filtered page may come back short.
	var result []model.Notification
	for _, id := range ids {
		notification, err := s.Get(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		if notification == nil {
			continue
		}
		if category == "" || notification.Category == category {
			result = append(result, *notification)
		}
	}
	return result, total, nil
}

func (s *Store) MarkRead(ctx context.Context, id, accountID string) (bool, error) {
	notification, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if notification == nil {
		return false, nil
	}

	notification.IsRead = true
	if err := s.Save(ctx, *notification); err != nil {
		return false, err
	}

	if err := s.client.SRem(ctx, unreadKey(accountID), id).Err(); err != nil {
		s.log.Error("redis unread remove failed",
			zap.String("notification_id", id),
			zap.String("account_id", accountID),
			zap.Error(err),
		)
		return false, fmt.Errorf("redis srem: %w", err)
	}
	return true, nil
}

func (s *Store) MarkAllRead(ctx context.Context, accountID string) (int, error) {
	ids, err := s.client.SMembers(ctx, unreadKey(accountID)).Result()
	if err != nil {
		s.log.Error("redis unread members failed", zap.String("account_id", accountID), zap.Error(err))
		return 0, fmt.Errorf("redis smembers: %w", err)
	}

	count := 0
	for _, id := range ids {
		ok, err := s.MarkRead(ctx, id, accountID)
		if err != nil {
			return count, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

func (s *Store) UnreadCount(ctx context.Context, accountID string) (int64, error) {
	count, err := s.client.SCard(ctx, unreadKey(accountID)).Result()
	if err != nil {
		s.log.Error("redis unread card failed", zap.String("account_id", accountID), zap.Error(err))
		return 0, fmt.Errorf("redis scard: %w", err)
	}
	return count, nil
}

func (s *Store) Delete(ctx context.Context, id, accountID string) (bool, error) {
	removed, err := s.client.Del(ctx, notificationKey(id)).Result()
	if err != nil {
		s.log.Error("redis delete notification failed", zap.String("notification_id", id), zap.Error(err))
		return false, fmt.Errorf("redis del: %w", err)
	}

	if err := s.client.ZRem(ctx, timelineKey(accountID), id).Err(); err != nil {
		s.log.Error("redis timeline remove failed", zap.String("notification_id", id), zap.Error(err))
		return false, fmt.Errorf("redis zrem: %w", err)
	}
	if err := s.client.SRem(ctx, unreadKey(accountID), id).Err(); err != nil {
		s.log.Error("redis unread remove failed", zap.String("notification_id", id), zap.Error(err))
		return false, fmt.Errorf("redis srem: %w", err)
	}
	return removed > 0, nil
}
