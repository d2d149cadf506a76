package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"omni_notifications/internal/model"
)

func newNotification(id, accountID string, createdAt time.Time) model.Notification {
	return model.Notification{
		ID:        id,
		AccountID: accountID,
		Label:     "label-" + id,
		Content:   "content-" + id,
		CreatedAt: createdAt,
		Kind:      "info",
		Priority:  "normal",
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	n := newNotification("n-1", "acct-1", time.Now().UTC())
	n.Category = "card"
	n.ActionURL = "/cards"
	require.NoError(t, store.Save(ctx, n))

	got, err := store.Get(ctx, "n-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, n, *got)
}

func TestGetMissingIsNotAnError(t *testing.T) {
	store := New(zap.NewNop())

	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUnreadCountTracksMutations(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		n := newNotification(fmt.Sprintf("n-%d", i), "acct-1", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, store.Save(ctx, n))
	}

	count, err := store.UnreadCount(ctx, "acct-1")
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	ok, err := store.MarkRead(ctx, "n-1", "acct-1")
	require.NoError(t, err)
	require.True(t, ok)

	count, err = store.UnreadCount(ctx, "acct-1")
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	got, err := store.Get(ctx, "n-1")
	require.NoError(t, err)
	require.True(t, got.IsRead)

	deleted, err := store.Delete(ctx, "n-0", "acct-1")
	require.NoError(t, err)
	require.True(t, deleted)

	count, err = store.UnreadCount(ctx, "acct-1")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestMarkReadMissing(t *testing.T) {
	store := New(zap.NewNop())

	ok, err := store.MarkRead(context.Background(), "missing", "acct-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMarkAllRead(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	base := time.Now().UTC()
	for i := 0; i < 4; i++ {
		require.NoError(t, store.Save(ctx, newNotification(fmt.Sprintf("n-%d", i), "acct-1", base.Add(time.Duration(i)*time.Second))))
	}
	// Already-read records are not part of the sweep.
	ok, err := store.MarkRead(ctx, "n-3", "acct-1")
	require.NoError(t, err)
	require.True(t, ok)

	count, err := store.MarkAllRead(ctx, "acct-1")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	unread, err := store.UnreadCount(ctx, "acct-1")
	require.NoError(t, err)
	require.EqualValues(t, 0, unread)
}

func TestListForAccountPagination(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	base := time.Now().UTC()
	var ids []string
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("n-%d", i)
		require.NoError(t, store.Save(ctx, newNotification(id, "acct-1", base.Add(time.Duration(i)*time.Second))))
		ids = append(ids, id)
	}

	pageOne, total, err := store.ListForAccount(ctx, "acct-1", 1, 2, "")
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, pageOne, 2)

	pageTwo, total, err := store.ListForAccount(ctx, "acct-1", 2, 2, "")
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, pageTwo, 2)

	// Most-recent-first across pages, disjoint, covering the first 4 entries.
	var got []string
	for _, n := range append(pageOne, pageTwo...) {
		got = append(got, n.ID)
	}
	require.Equal(t, []string{ids[4], ids[3], ids[2], ids[1]}, got)

	// Overwriting on mark-read keeps the ordering key.
	ok, err := store.MarkRead(ctx, ids[4], "acct-1")
	require.NoError(t, err)
	require.True(t, ok)
	pageOne, _, err = store.ListForAccount(ctx, "acct-1", 1, 2, "")
	require.NoError(t, err)
	require.Equal(t, ids[4], pageOne[0].ID)
	require.True(t, pageOne[0].IsRead)
}

func TestListForAccountCategoryFilterAfterSlice(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	base := time.Now().UTC()
	for i := 0; i < 6; i++ {
		n := newNotification(fmt.Sprintf("n-%d", i), "acct-1", base.Add(time.Duration(i)*time.Second))
		if i%2 == 0 {
			n.Category = "card"
		} else {
			n.Category = "contact"
		}
		require.NoError(t, store.Save(ctx, n))
	}

	// The page slice is taken first, then filtered: page 1 of size 4 holds
	// n-5..n-2, of which only n-4 and n-2 are card, while total stays at the
	// unfiltered timeline size.
	items, total, err := store.ListForAccount(ctx, "acct-1", 1, 4, "card")
	require.NoError(t, err)
	require.EqualValues(t, 6, total)
	require.Len(t, items, 2)
	require.Equal(t, "n-4", items[0].ID)
	require.Equal(t, "n-2", items[1].ID)
}

func TestListForAccountBeyondEnd(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())
	require.NoError(t, store.Save(ctx, newNotification("n-0", "acct-1", time.Now().UTC())))

	items, total, err := store.ListForAccount(ctx, "acct-1", 3, 10, "")
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Empty(t, items)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	require.NoError(t, store.Save(ctx, newNotification("n-0", "acct-1", time.Now().UTC())))

	deleted, err := store.Delete(ctx, "n-0", "acct-1")
	require.NoError(t, err)
	require.True(t, deleted)

	got, err := store.Get(ctx, "n-0")
	require.NoError(t, err)
	require.Nil(t, got)

	items, total, err := store.ListForAccount(ctx, "acct-1", 1, 10, "")
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.Empty(t, items)

	deleted, err = store.Delete(ctx, "n-0", "acct-1")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestAccountsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := New(zap.NewNop())

	require.NoError(t, store.Save(ctx, newNotification("a-1", "acct-1", time.Now().UTC())))
	require.NoError(t, store.Save(ctx, newNotification("b-1", "acct-2", time.Now().UTC())))

	items, total, err := store.ListForAccount(ctx, "acct-1", 1, 10, "")
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "a-1", items[0].ID)

	count, err := store.UnreadCount(ctx, "acct-2")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
