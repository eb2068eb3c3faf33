package conversation

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

func newTestManager(t *testing.T) (*Manager, storage.Store) {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewManager(store), store
}

func confirmedBooking() *types.Booking {
	return &types.Booking{
		ID:              7,
		TutorName:       "Mike Chen",
		StudentName:     "Sarah Johnson",
		StudentEmail:    "sarah@example.com",
		Subject:         "Mathematics",
		RequestedDate:   "2026-09-14",
		RequestedTime:   "16:00",
		DurationMinutes: 90,
		Status:          types.BookingStatusConfirmed,
	}
}

func TestDeriveID(t *testing.T) {
	tests := []struct {
		name    string
		booking *types.Booking
		want    string
	}{
		{
			name:    "names with spaces",
			booking: &types.Booking{ID: 7, TutorName: "Mike Chen", StudentName: "Sarah Johnson"},
			want:    "Mike_Chen_Sarah_Johnson_7",
		},
		{
			name:    "single-word names",
			booking: &types.Booking{ID: 1, TutorName: "Mike", StudentName: "Sarah"},
			want:    "Mike_Sarah_1",
		},
		{
			name:    "runs of whitespace collapse",
			booking: &types.Booking{ID: 2, TutorName: "Mike  Chen", StudentName: "Sarah\tJohnson"},
			want:    "Mike_Chen_Sarah_Johnson_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveID(tt.booking))
		})
	}
}

func TestCreateFromBookingIsIdempotent(t *testing.T) {
	manager, _ := newTestManager(t)
	booking := confirmedBooking()

	first, err := manager.CreateFromBooking(booking)
	require.NoError(t, err)
	assert.Equal(t, "Mike_Chen_Sarah_Johnson_7", first.ID)
	assert.Equal(t, 1, first.UnreadCountStudent)
	assert.Equal(t, 0, first.UnreadCountTutor)

	// Mutate, then create again: the stored record wins
	first.UnreadCountStudent = 5
	require.NoError(t, manager.store.UpdateConversation(first))

	second, err := manager.CreateFromBooking(booking)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.UnreadCountStudent)

	all, err := manager.store.ListConversations()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSetTypingStatus(t *testing.T) {
	manager, _ := newTestManager(t)
	conv, err := manager.CreateFromBooking(confirmedBooking())
	require.NoError(t, err)

	require.NoError(t, manager.SetTypingStatus(conv.ID, types.RoleTutor, true))
	got, err := manager.Get(conv.ID)
	require.NoError(t, err)
	assert.True(t, got.TypingTutor)
	assert.False(t, got.TypingStudent)

	require.NoError(t, manager.SetTypingStatus(conv.ID, types.RoleStudent, true))
	require.NoError(t, manager.SetTypingStatus(conv.ID, types.RoleTutor, false))
	got, err = manager.Get(conv.ID)
	require.NoError(t, err)
	assert.False(t, got.TypingTutor)
	assert.True(t, got.TypingStudent)

	// Unknown conversation is a no-op, not an error
	assert.NoError(t, manager.SetTypingStatus("missing", types.RoleTutor, true))
}

func TestUserConversationsFilterAndOrder(t *testing.T) {
	manager, store := newTestManager(t)

	older := &types.Conversation{
		ID:              "Mike_Sarah_1",
		TutorName:       "Mike",
		StudentName:     "Sarah",
		LastMessageTime: time.Now().Add(-time.Hour),
	}
	newer := &types.Conversation{
		ID:              "Mike_Sarah_2",
		TutorName:       "Mike",
		StudentName:     "Sarah",
		LastMessageTime: time.Now(),
	}
	foreign := &types.Conversation{
		ID:              "Priya_Alex_3",
		TutorName:       "Priya",
		StudentName:     "Alex",
		LastMessageTime: time.Now(),
	}
	require.NoError(t, store.CreateConversation(older))
	require.NoError(t, store.CreateConversation(newer))
	require.NoError(t, store.CreateConversation(foreign))

	asTutor, err := manager.UserConversations("Mike", types.RoleTutor)
	require.NoError(t, err)
	require.Len(t, asTutor, 2)
	assert.Equal(t, "Mike_Sarah_2", asTutor[0].ID)
	assert.Equal(t, "Mike_Sarah_1", asTutor[1].ID)
	for _, c := range asTutor {
		assert.Equal(t, "Mike", c.TutorName)
	}

	asStudent, err := manager.UserConversations("Alex", types.RoleStudent)
	require.NoError(t, err)
	require.Len(t, asStudent, 1)
	assert.Equal(t, "Priya_Alex_3", asStudent[0].ID)

	nobody, err := manager.UserConversations("Sam", types.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, nobody)
}

func TestMarkMessagesAsRead(t *testing.T) {
	manager, store := newTestManager(t)
	conv, err := manager.CreateFromBooking(confirmedBooking())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateMessage(&types.Message{
			ConversationID: conv.ID,
			SenderName:     "Mike Chen",
			SenderRole:     types.RoleTutor,
			ReceiverName:   "Sarah Johnson",
		}))
	}
	// A message addressed to the tutor stays unread
	require.NoError(t, store.CreateMessage(&types.Message{
		ConversationID: conv.ID,
		SenderName:     "Sarah Johnson",
		SenderRole:     types.RoleStudent,
		ReceiverName:   "Mike Chen",
	}))

	conv.UnreadCountStudent = 3
	conv.UnreadCountTutor = 1
	require.NoError(t, store.UpdateConversation(conv))

	require.NoError(t, manager.MarkMessagesAsRead(conv.ID, "Sarah Johnson", types.RoleStudent))

	got, err := manager.Get(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnreadCountStudent)
	assert.Equal(t, 1, got.UnreadCountTutor)

	messages, err := store.ListMessagesByConversation(conv.ID)
	require.NoError(t, err)
	for _, m := range messages {
		if m.ReceiverName == "Sarah Johnson" {
			assert.True(t, m.Read)
		} else {
			assert.False(t, m.Read)
		}
	}
}
