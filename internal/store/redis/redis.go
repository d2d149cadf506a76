// Package redis is the durable NotificationStore. Key schema:
//
//	notification:{id}                 -> full record, JSON
//	account_notifications:{accountId} -> ZSET id -> created-at (unix seconds)
//	unread_notifications:{accountId}  -> SET of ids
package redis

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Store struct {
	client *redis.Client
	log    *zap.Logger
}

func New(client *redis.Client, logger *zap.Logger) *Store {
	return &Store{client: client, log: logger}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func notificationKey(id string) string {
	return "notification:" + id
}

func timelineKey(accountID string) string {
	return "account_notifications:" + accountID
}

func unreadKey(accountID string) string {
	return "unread_notifications:" + accountID
}
