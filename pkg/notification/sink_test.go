package notification

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorconnect/tutorconnect/pkg/log"
	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

func TestMain(m *testing.M) {
	log.Init(log.Config{Level: log.ErrorLevel, Output: io.Discard})
	os.Exit(m.Run())
}

func newTestSink(t *testing.T) (*Sink, storage.Store) {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewSink(store), store
}

func TestAddOwnsReadStateAndTimestamp(t *testing.T) {
	sink, _ := newTestSink(t)

	n, err := sink.Add(&types.Notification{
		UserName: "Mike",
		Type:     types.NotificationBookingRequest,
		Title:    "New Booking Request",
		Message:  "Sarah wants to book a session for Mathematics",
		Read:     true, // caller state is discarded
	})
	require.NoError(t, err)
	assert.NotZero(t, n.ID)
	assert.False(t, n.Read)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestUserNotificationsNewestFirst(t *testing.T) {
	sink, store := newTestSink(t)

	base := time.Now()
	for i, offset := range []time.Duration{0, 2 * time.Minute, time.Minute} {
		require.NoError(t, store.CreateNotification(&types.Notification{
			UserName:  "Mike",
			Type:      types.NotificationBookingRequest,
			Title:     string(rune('a' + i)),
			CreatedAt: base.Add(offset),
		}))
	}
	require.NoError(t, store.CreateNotification(&types.Notification{
		UserName:  "Sarah",
		Type:      types.NotificationBookingConfirmed,
		CreatedAt: base,
	}))

	forMike, err := sink.UserNotifications("Mike")
	require.NoError(t, err)
	require.Len(t, forMike, 3)
	assert.Equal(t, "b", forMike[0].Title)
	assert.Equal(t, "c", forMike[1].Title)
	assert.Equal(t, "a", forMike[2].Title)

	none, err := sink.UserNotifications("Sam")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMarkRead(t *testing.T) {
	sink, store := newTestSink(t)

	n, err := sink.Add(&types.Notification{
		UserName: "Sarah",
		Type:     types.NotificationBookingDeclined,
	})
	require.NoError(t, err)

	require.NoError(t, sink.MarkRead(n.ID))
	got, err := store.GetNotification(n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	// Already read and missing IDs are both no-ops
	assert.NoError(t, sink.MarkRead(n.ID))
	assert.NoError(t, sink.MarkRead(999))
}
