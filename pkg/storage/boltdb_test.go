package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	store, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBookingCRUD(t *testing.T) {
	store := newTestStore(t)

	booking := &types.Booking{
		TutorName:   "Mike Chen",
		StudentName: "Sarah Johnson",
		Status:      types.BookingStatusPending,
	}
	require.NoError(t, store.CreateBooking(booking))
	assert.Equal(t, uint64(1), booking.ID)

	got, err := store.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mike Chen", got.TutorName)
	assert.Equal(t, types.BookingStatusPending, got.Status)

	got.Status = types.BookingStatusConfirmed
	require.NoError(t, store.UpdateBooking(got))

	updated, err := store.GetBooking(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, types.BookingStatusConfirmed, updated.Status)
}

func TestBookingIDsAreMonotonic(t *testing.T) {
	store := newTestStore(t)

	var last uint64
	for i := 0; i < 5; i++ {
		b := &types.Booking{TutorName: "Mike"}
		require.NoError(t, store.CreateBooking(b))
		assert.Greater(t, b.ID, last)
		last = b.ID
	}
}

func TestGetBookingNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetBooking(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConversationUpsert(t *testing.T) {
	store := newTestStore(t)

	conv := &types.Conversation{
		ID:                 "Mike_Sarah_1",
		BookingID:          1,
		UnreadCountStudent: 1,
	}
	require.NoError(t, store.CreateConversation(conv))

	conv.UnreadCountStudent = 3
	require.NoError(t, store.UpdateConversation(conv))

	got, err := store.GetConversation("Mike_Sarah_1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.UnreadCountStudent)

	all, err := store.ListConversations()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMessagesKeepInsertionOrder(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateMessage(&types.Message{
			ConversationID: "conv-a",
			Message:        "hello",
		}))
	}
	require.NoError(t, store.CreateMessage(&types.Message{
		ConversationID: "conv-b",
		Message:        "other thread",
	}))

	messages, err := store.ListMessagesByConversation("conv-a")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, uint64(1), messages[0].ID)
	assert.Equal(t, uint64(2), messages[1].ID)
	assert.Equal(t, uint64(3), messages[2].ID)
}

func TestStudentRollupPairLookup(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateStudentRollup(&types.StudentRollup{
		TutorName:     "Mike",
		StudentEmail:  "sarah@example.com",
		SessionsCount: 1,
	}))
	require.NoError(t, store.CreateStudentRollup(&types.StudentRollup{
		TutorName:     "Mike",
		StudentEmail:  "alex@example.com",
		SessionsCount: 1,
	}))

	got, err := store.GetStudentRollupByPair("Mike", "sarah@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sarah@example.com", got.StudentEmail)

	_, err = store.GetStudentRollupByPair("Mike", "nobody@example.com")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTutorProfileFixedKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTutorProfile()
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.SaveTutorProfile(&types.TutorProfile{Name: "Mike Chen"}))
	require.NoError(t, store.SaveTutorProfile(&types.TutorProfile{Name: "Priya Patel"}))

	// Fixed key: the second save replaces the first
	profile, err := store.GetTutorProfile()
	require.NoError(t, err)
	assert.Equal(t, "Priya Patel", profile.Name)
}

func TestReset(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateBooking(&types.Booking{TutorName: "Mike"}))
	require.NoError(t, store.CreateNotification(&types.Notification{UserName: "Mike"}))

	require.NoError(t, store.Reset())

	bookings, err := store.ListBookings()
	require.NoError(t, err)
	assert.Empty(t, bookings)

	notifications, err := store.ListNotificationsByUser("Mike")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}
