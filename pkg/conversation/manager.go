package conversation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorconnect/tutorconnect/pkg/log"
	"github.com/tutorconnect/tutorconnect/pkg/metrics"
	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

var whitespace = regexp.MustCompile(`\s+`)

// Manager owns conversation records: derivation from confirmed bookings,
// unread counters, and typing state.
type Manager struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewManager creates a Manager backed by the given store
func NewManager(store storage.Store) *Manager {
	return &Manager{
		store:  store,
		logger: log.WithComponent("conversation"),
	}
}

// DeriveID builds the deterministic conversation ID for a booking.
// Whitespace in names collapses to underscores so the ID is a single
// safe token.
func DeriveID(booking *types.Booking) string {
	raw := fmt.Sprintf("%s_%s_%d", booking.TutorName, booking.StudentName, booking.ID)
	return whitespace.ReplaceAllString(raw, "_")
}

// CreateFromBooking derives a conversation from a confirmed booking.
// Idempotent: if the derived ID already exists the stored record is
// returned unchanged. New conversations start with one unread message
// on the student side, anticipating the welcome message.
func (m *Manager) CreateFromBooking(booking *types.Booking) (*types.Conversation, error) {
	id := DeriveID(booking)

	existing, err := m.store.GetConversation(id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	conv := &types.Conversation{
		ID:                 id,
		BookingID:          booking.ID,
		TutorName:          booking.TutorName,
		StudentName:        booking.StudentName,
		StudentEmail:       booking.StudentEmail,
		Subject:            booking.Subject,
		SessionDate:        booking.RequestedDate,
		SessionTime:        booking.RequestedTime,
		DurationMinutes:    booking.DurationMinutes,
		Status:             types.ConversationStatusActive,
		LastMessageTime:    now,
		UnreadCountTutor:   0,
		UnreadCountStudent: 1,
		CreatedAt:          now,
	}

	if err := m.store.CreateConversation(conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	metrics.ConversationsActive.Inc()

	m.logger.Info().
		Str("conversation_id", conv.ID).
		Uint64("booking_id", booking.ID).
		Msg("conversation created")
	return conv, nil
}

// Get returns a conversation by ID, or nil if it does not exist.
func (m *Manager) Get(conversationID string) (*types.Conversation, error) {
	conv, err := m.store.GetConversation(conversationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return conv, nil
}

// SetTypingStatus flips the role-matching typing flag. Missing
// conversations are a no-op.
func (m *Manager) SetTypingStatus(conversationID string, role types.Role, isTyping bool) error {
	conv, err := m.Get(conversationID)
	if err != nil || conv == nil {
		return err
	}

	if role == types.RoleTutor {
		conv.TypingTutor = isTyping
	} else {
		conv.TypingStudent = isTyping
	}
	return m.store.UpdateConversation(conv)
}

// UserConversations returns the conversations where the role-matching
// party field equals userName, most recently active first.
func (m *Manager) UserConversations(userName string, role types.Role) ([]*types.Conversation, error) {
	all, err := m.store.ListConversations()
	if err != nil {
		return nil, err
	}

	var result []*types.Conversation
	for _, conv := range all {
		if role == types.RoleTutor && conv.TutorName == userName {
			result = append(result, conv)
		} else if role != types.RoleTutor && conv.StudentName == userName {
			result = append(result, conv)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastMessageTime.After(result[j].LastMessageTime)
	})
	return result, nil
}

// MarkMessagesAsRead zeroes the reader's unread counter and marks every
// stored message in the conversation addressed to the reader as read.
func (m *Manager) MarkMessagesAsRead(conversationID, userName string, role types.Role) error {
	messages, err := m.store.ListMessagesByConversation(conversationID)
	if err != nil {
		return err
	}
	for _, msg := range messages {
		if msg.ReceiverName == userName && !msg.Read {
			msg.Read = true
			if err := m.store.UpdateMessage(msg); err != nil {
				return err
			}
		}
	}

	conv, err := m.Get(conversationID)
	if err != nil || conv == nil {
		return err
	}
	if role == types.RoleTutor {
		conv.UnreadCountTutor = 0
	} else {
		conv.UnreadCountStudent = 0
	}
	return m.store.UpdateConversation(conv)
}
