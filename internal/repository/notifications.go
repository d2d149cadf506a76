package repository

import (
	"context"

	"omni_notifications/internal/model"
)

// NotificationStore owns the durable representation of notifications and the
// three indexes over it: by-id record, per-account timeline ordered by
// creation time, and per-account unread set.
//
// Not-found is a benign result everywhere: Get returns nil, MarkRead and
// Delete return false. Errors mean the underlying storage is unavailable.
type NotificationStore interface {
	// Save upserts the by-id record, (re-)inserts the timeline entry keyed by
	// CreatedAt, and adds the id to the unread set iff IsRead is false. Safe
	// for both first write and the mark-read overwrite.
	Save(ctx context.Context, notification model.Notification) error

	Get(ctx context.Context, id string) (*model.Notification, error)

	// ListForAccount pages the timeline most-recent-first. The returned total
	// is the unfiltered timeline size; the category filter is applied after
	// the page slice is fetched, so a filtered page may hold fewer than
	// pageSize items.
	ListForAccount(ctx context.Context, accountID string, page, pageSize int, category string) ([]model.Notification, int64, error)

	MarkRead(ctx context.Context, id, accountID string) (bool, error)

	// MarkAllRead sweeps the unread set as observed at call start and returns
	// the number of notifications marked. Concurrent additions during the
	// sweep may be missed.
	MarkAllRead(ctx context.Context, accountID string) (int, error)

	UnreadCount(ctx context.Context, accountID string) (int64, error)

	Delete(ctx context.Context, id, accountID string) (bool, error)

	Close() error
}
