package memory

import (
	"context"
	"sort"

	"omni_notifications/internal/model"
)

func (s *Store) Save(_ context.Context, notification model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[notification.ID] = notification
	s.upsertTimelineEntry(notification)

	if !notification.IsRead {
		set := s.unread[notification.AccountID]
		if set == nil {
			set = make(map[string]struct{})
			s.unread[notification.AccountID] = set
		}
		set[notification.ID] = struct{}{}
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*model.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return &notification, nil
}

func (s *Store) ListForAccount(_ context.Context, accountID string, page, pageSize int, category string) ([]model.Notification, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timeline := s.timelines[accountID]
	total := int64(len(timeline))

	start := (page - 1) * pageSize
	if start < 0 || start >= len(timeline) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(timeline) {
		end = len(timeline)
	}

	// The category filter runs after the page slice is taken, so a filtered
	// page may be short while total stays unfiltered.
	var result []model.Notification
	for _, entry := range timeline[start:end] {
		notification, ok := s.byID[entry.id]
		if !ok {
			continue
		}
		if category == "" || notification.Category == category {
			result = append(result, notification)
		}
	}
	return result, total, nil
}

func (s *Store) MarkRead(_ context.Context, id, accountID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markReadLocked(id, accountID), nil
}

func (s *Store) MarkAllRead(_ context.Context, accountID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.unread[accountID]))
	for id := range s.unread[accountID] {
		ids = append(ids, id)
	}

	count := 0
	for _, id := range ids {
		if s.markReadLocked(id, accountID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) UnreadCount(_ context.Context, accountID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.unread[accountID])), nil
}

func (s *Store) Delete(_ context.Context, id, accountID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.byID[id]
	delete(s.byID, id)
	s.removeTimelineEntry(accountID, id)
	s.removeUnread(accountID, id)
	return existed, nil
}

func (s *Store) markReadLocked(id, accountID string) bool {
	notification, ok := s.byID[id]
	if !ok {
		return false
	}
	notification.IsRead = true
	s.byID[id] = notification
	s.removeUnread(accountID, id)
	return true
}

// upsertTimelineEntry keeps the per-account timeline sorted most-recent-first
// with ties broken by descending id, matching a sorted set's deterministic
// reverse-range order.
func (s *Store) upsertTimelineEntry(notification model.Notification) {
	s.removeTimelineEntry(notification.AccountID, notification.ID)

	timeline := s.timelines[notification.AccountID]
	entry := timelineEntry{id: notification.ID, createdAt: notification.CreatedAt}
	idx := sort.Search(len(timeline), func(i int) bool {
		if !timeline[i].createdAt.Equal(entry.createdAt) {
			return timeline[i].createdAt.Before(entry.createdAt)
		}
		return timeline[i].id < entry.id
	})
	timeline = append(timeline, timelineEntry{})
	copy(timeline[idx+1:], timeline[idx:])
	timeline[idx] = entry
	s.timelines[notification.AccountID] = timeline
}

func (s *Store) removeTimelineEntry(accountID, id string) {
	timeline := s.timelines[accountID]
	for i, entry := range timeline {
		if entry.id == id {
			s.timelines[accountID] = append(timeline[:i], timeline[i+1:]...)
			return
		}
	}
}

func (s *Store) removeUnread(accountID, id string) {
	set := s.unread[accountID]
	if set == nil {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(s.unread, accountID)
	}
}
