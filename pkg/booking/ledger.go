package booking

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorconnect/tutorconnect/pkg/conversation"
	"github.com/tutorconnect/tutorconnect/pkg/events"
	"github.com/tutorconnect/tutorconnect/pkg/log"
	"github.com/tutorconnect/tutorconnect/pkg/message"
	"github.com/tutorconnect/tutorconnect/pkg/metrics"
	"github.com/tutorconnect/tutorconnect/pkg/notification"
	"github.com/tutorconnect/tutorconnect/pkg/rollup"
	"github.com/tutorconnect/tutorconnect/pkg/session"
	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

// Ledger owns booking records and their lifecycle, and orchestrates the
// confirmation fan-out across the other workflow components. It is the
// entrypoint an embedding UI constructs once per client profile.
type Ledger struct {
	store         storage.Store
	conversations *conversation.Manager
	sessions      *session.Ledger
	messages      *message.Store
	rollups       *rollup.Engine
	notifications *notification.Sink
	broker        *events.Broker
	logger        zerolog.Logger
}

// NewLedger creates a Ledger and its workflow components over one store.
// The broker is optional; pass nil when no subscriber will listen.
func NewLedger(store storage.Store, broker *events.Broker) *Ledger {
	return &Ledger{
		store:         store,
		conversations: conversation.NewManager(store),
		sessions:      session.NewLedger(store),
		messages:      message.NewStore(store, broker),
		rollups:       rollup.NewEngine(store),
		notifications: notification.NewSink(store),
		broker:        broker,
		logger:        log.WithComponent("booking"),
	}
}

// Conversations returns the conversation manager sharing this ledger's store.
func (l *Ledger) Conversations() *conversation.Manager { return l.conversations }

// Sessions returns the session ledger sharing this ledger's store.
func (l *Ledger) Sessions() *session.Ledger { return l.sessions }

// Messages returns the message store sharing this ledger's store.
func (l *Ledger) Messages() *message.Store { return l.messages }

// Rollups returns the rollup engine sharing this ledger's store.
func (l *Ledger) Rollups() *rollup.Engine { return l.rollups }

// Notifications returns the notification sink sharing this ledger's store.
func (l *Ledger) Notifications() *notification.Sink { return l.notifications }

// CreateRequestInput carries the fields of a new booking request. The
// core performs no plausibility validation; malformed dates and times
// are the caller's responsibility.
type CreateRequestInput struct {
	TutorName       string  `yaml:"tutor_name"`
	StudentName     string  `yaml:"student_name"`
	StudentEmail    string  `yaml:"student_email"`
	Subject         string  `yaml:"subject"`
	RequestedDate   string  `yaml:"requested_date"`
	RequestedTime   string  `yaml:"requested_time"`
	DurationMinutes int     `yaml:"duration"`
	HourlyRate      float64 `yaml:"hourly_rate"`
	Message         string  `yaml:"message"`
}

// CreateRequest stores a pending booking, computes its total cost, and
// notifies the tutor.
func (l *Ledger) CreateRequest(in CreateRequestInput) (*types.Booking, error) {
	now := time.Now()
	booking := &types.Booking{
		TutorName:       in.TutorName,
		StudentName:     in.StudentName,
		StudentEmail:    in.StudentEmail,
		Subject:         in.Subject,
		RequestedDate:   in.RequestedDate,
		RequestedTime:   in.RequestedTime,
		DurationMinutes: in.DurationMinutes,
		HourlyRate:      in.HourlyRate,
		TotalCost:       in.HourlyRate * float64(in.DurationMinutes) / 60,
		Message:         in.Message,
		Status:          types.BookingStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := l.store.CreateBooking(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	_, err := l.notifications.Add(&types.Notification{
		UserName: booking.TutorName,
		Type:     types.NotificationBookingRequest,
		Title:    "New Booking Request",
		Message:  fmt.Sprintf("%s wants to book a session for %s", booking.StudentName, booking.Subject),
		Data:     map[string]any{"booking_id": booking.ID},
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	l.publish(events.EventBookingRequested, booking, "")

	l.logger.Info().
		Uint64("booking_id", booking.ID).
		Str("tutor", booking.TutorName).
		Str("student", booking.StudentName).
		Float64("total_cost", booking.TotalCost).
		Msg("booking request created")
	return booking, nil
}

// UpdateStatus transitions a pending booking to confirmed or declined.
// Returns nil when the booking does not exist. A booking already in a
// terminal state is returned unchanged: the confirmation fan-out runs at
// most once per booking.
func (l *Ledger) UpdateStatus(id uint64, status types.BookingStatus) (*types.Booking, error) {
	if status != types.BookingStatusConfirmed && status != types.BookingStatusDeclined {
		return nil, fmt.Errorf("invalid target status %q", status)
	}

	booking, err := l.store.GetBooking(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if booking.Status != types.BookingStatusPending {
		l.logger.Warn().
			Uint64("booking_id", id).
			Str("status", string(booking.Status)).
			Msg("ignoring transition on terminal booking")
		return booking, nil
	}

	booking.Status = status
	booking.UpdatedAt = time.Now()
	if err := l.store.UpdateBooking(booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	metrics.BookingsTransitioned.WithLabelValues(string(status)).Inc()

	if status == types.BookingStatusConfirmed {
		if err := l.confirm(booking); err != nil {
			return nil, err
		}
	} else {
		if err := l.decline(booking); err != nil {
			return nil, err
		}
	}
	return booking, nil
}

// confirm runs the fan-out for a newly confirmed booking in fixed
// order: conversation, session, welcome message, tutor rollup, student
// record, student notification. Single synchronous pass; no step can
// fail once the inputs above validated.
func (l *Ledger) confirm(booking *types.Booking) error {
	conv, err := l.conversations.CreateFromBooking(booking)
	if err != nil {
		return err
	}

	sess, err := l.sessions.CreateFromBooking(booking)
	if err != nil {
		return err
	}

	if err := l.sendWelcomeMessage(booking, conv.ID); err != nil {
		return err
	}

	if err := l.rollups.AddToMyStudents(booking); err != nil {
		return err
	}
	if err := l.rollups.AddToMySessions(booking); err != nil {
		return err
	}

	_, err = l.notifications.Add(&types.Notification{
		UserName: booking.StudentName,
		Type:     types.NotificationBookingConfirmed,
		Title:    "Booking Confirmed! 🎉",
		Message:  fmt.Sprintf("Your session with %s has been confirmed for %s", booking.TutorName, booking.RequestedDate),
		Data: map[string]any{
			"booking_id":      booking.ID,
			"session_id":      sess.ID,
			"conversation_id": conv.ID,
		},
	})
	if err != nil {
		return err
	}

	l.publish(events.EventBookingConfirmed, booking, conv.ID)
	l.publish(events.EventSessionScheduled, booking, conv.ID)

	l.logger.Info().
		Uint64("booking_id", booking.ID).
		Str("conversation_id", conv.ID).
		Uint64("session_id", sess.ID).
		Msg("booking confirmed")
	return nil
}

func (l *Ledger) decline(booking *types.Booking) error {
	_, err := l.notifications.Add(&types.Notification{
		UserName: booking.StudentName,
		Type:     types.NotificationBookingDeclined,
		Title:    "Booking Request Declined",
		Message:  fmt.Sprintf("%s is unavailable for your requested time. Please try a different slot.", booking.TutorName),
		Data:     map[string]any{"booking_id": booking.ID},
	})
	if err != nil {
		return err
	}

	l.publish(events.EventBookingDeclined, booking, "")
	l.logger.Info().Uint64("booking_id", booking.ID).Msg("booking declined")
	return nil
}

// sendWelcomeMessage appends the tutor's system welcome into the new
// conversation.
func (l *Ledger) sendWelcomeMessage(booking *types.Booking, conversationID string) error {
	body := fmt.Sprintf(`🎉 Welcome %s!

I'm excited to help you with %s! Here are the details of our upcoming session:

📅 Session Details:
• Date: %s
• Time: %s
• Duration: %d minutes
• Subject: %s
• Cost: ₹%d

📚 What to expect:
• We'll cover the topics you mentioned: "%s"
• Please come prepared with any specific questions
• I'll share materials and notes as we progress

💬 Communication:
• Use this chat for any questions before our session
• Share files, documents, or images if needed
• I typically respond within a few hours

Looking forward to our session! Feel free to ask any questions. 😊

Best regards,
%s`,
		booking.StudentName,
		booking.Subject,
		booking.RequestedDate,
		booking.RequestedTime,
		booking.DurationMinutes,
		booking.Subject,
		int(math.Round(booking.TotalCost)),
		booking.Message,
		booking.TutorName,
	)

	_, err := l.messages.Send(message.SendRequest{
		ConversationID: conversationID,
		SenderName:     booking.TutorName,
		SenderRole:     types.RoleTutor,
		ReceiverName:   booking.StudentName,
		Message:        body,
		Type:           types.MessageTypeWelcome,
	})
	return err
}

// Get returns a booking by ID, or nil if it does not exist.
func (l *Ledger) Get(id uint64) (*types.Booking, error) {
	booking, err := l.store.GetBooking(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return booking, nil
}

// TutorBookings returns the bookings addressed to a tutor. The name
// match is case-insensitive.
func (l *Ledger) TutorBookings(tutorName string) ([]*types.Booking, error) {
	all, err := l.store.ListBookings()
	if err != nil {
		return nil, err
	}
	var result []*types.Booking
	for _, b := range all {
		if strings.EqualFold(b.TutorName, tutorName) {
			result = append(result, b)
		}
	}
	return result, nil
}

// StudentBookings returns the bookings filed under a student email.
func (l *Ledger) StudentBookings(studentEmail string) ([]*types.Booking, error) {
	all, err := l.store.ListBookings()
	if err != nil {
		return nil, err
	}
	var result []*types.Booking
	for _, b := range all {
		if b.StudentEmail == studentEmail {
			result = append(result, b)
		}
	}
	return result, nil
}

func (l *Ledger) publish(eventType events.EventType, booking *types.Booking, conversationID string) {
	if l.broker == nil {
		return
	}
	l.broker.Publish(&events.Event{
		Type:           eventType,
		BookingID:      booking.ID,
		ConversationID: conversationID,
		UserName:       booking.StudentName,
		Message:        fmt.Sprintf("%s / %s: %s", booking.TutorName, booking.StudentName, booking.Subject),
	})
}
