package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tutorconnect/tutorconnect/pkg/log"
	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

const meetingLinkPrefix = "https://meet.jit.si/tutorconnect-"

// Ledger owns tutor-facing session records derived from confirmed
// bookings.
type Ledger struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewLedger creates a Ledger backed by the given store
func NewLedger(store storage.Store) *Ledger {
	return &Ledger{
		store:  store,
		logger: log.WithComponent("session"),
	}
}

// generateMeetingLink composes a meeting URL with a short random token.
func generateMeetingLink() string {
	token := uuid.NewString()[:8]
	return meetingLinkPrefix + token
}

// CreateFromBooking records a scheduled session for a confirmed booking
// and generates its meeting link.
func (l *Ledger) CreateFromBooking(booking *types.Booking) (*types.Session, error) {
	session := &types.Session{
		BookingID:       booking.ID,
		TutorName:       booking.TutorName,
		StudentName:     booking.StudentName,
		StudentEmail:    booking.StudentEmail,
		Subject:         booking.Subject,
		ScheduledDate:   booking.RequestedDate,
		ScheduledTime:   booking.RequestedTime,
		DurationMinutes: booking.DurationMinutes,
		Status:          types.SessionStatusScheduled,
		MeetingLink:     generateMeetingLink(),
		TotalCost:       booking.TotalCost,
		Materials:       []string{},
		CreatedAt:       time.Now(),
	}

	if err := l.store.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	l.logger.Info().
		Uint64("session_id", session.ID).
		Uint64("booking_id", booking.ID).
		Str("meeting_link", session.MeetingLink).
		Msg("session scheduled")
	return session, nil
}

// UserSessions returns the sessions where the role-matching party field
// equals userName.
func (l *Ledger) UserSessions(userName string, role types.Role) ([]*types.Session, error) {
	all, err := l.store.ListSessions()
	if err != nil {
		return nil, err
	}

	var result []*types.Session
	for _, s := range all {
		if role == types.RoleTutor && s.TutorName == userName {
			result = append(result, s)
		} else if role != types.RoleTutor && s.StudentName == userName {
			result = append(result, s)
		}
	}
	return result, nil
}

// SetNotes replaces the tutor's notes on a session.
func (l *Ledger) SetNotes(sessionID uint64, notes string) error {
	session, err := l.get(sessionID)
	if err != nil || session == nil {
		return err
	}
	session.Notes = notes
	return l.store.UpdateSession(session)
}

// AddMaterial appends a material reference to a session.
func (l *Ledger) AddMaterial(sessionID uint64, material string) error {
	session, err := l.get(sessionID)
	if err != nil || session == nil {
		return err
	}
	session.Materials = append(session.Materials, material)
	return l.store.UpdateSession(session)
}

// Rate records the student's rating, 1 through 5.
func (l *Ledger) Rate(sessionID uint64, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	session, err := l.get(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session %d: %w", sessionID, storage.ErrNotFound)
	}
	session.Rating = &rating
	return l.store.UpdateSession(session)
}

func (l *Ledger) get(sessionID uint64) (*types.Session, error) {
	session, err := l.store.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}
