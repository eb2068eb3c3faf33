package rollup

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorconnect/tutorconnect/pkg/log"
	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

// Engine maintains the denormalized per-user views: the tutor's
// aggregated student list and the student's per-booking session list.
type Engine struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewEngine creates an Engine backed by the given store
func NewEngine(store storage.Store) *Engine {
	return &Engine{
		store:  store,
		logger: log.WithComponent("rollup"),
	}
}

// AddToMyStudents upserts the (tutor, student email) aggregate for a
// confirmed booking: a repeat pair increments the session count,
// accumulates earnings, and moves the last-session date; a new pair
// inserts a fresh row.
func (e *Engine) AddToMyStudents(booking *types.Booking) error {
	existing, err := e.store.GetStudentRollupByPair(booking.TutorName, booking.StudentEmail)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if existing != nil {
		existing.SessionsCount++
		existing.TotalEarnings += booking.TotalCost
		existing.LastSession = booking.RequestedDate
		if err := e.store.UpdateStudentRollup(existing); err != nil {
			return fmt.Errorf("failed to update student rollup: %w", err)
		}
		e.logger.Debug().
			Str("tutor", booking.TutorName).
			Str("student_email", booking.StudentEmail).
			Int("sessions_count", existing.SessionsCount).
			Msg("student rollup incremented")
		return nil
	}

	rollup := &types.StudentRollup{
		TutorName:     booking.TutorName,
		StudentName:   booking.StudentName,
		StudentEmail:  booking.StudentEmail,
		Subject:       booking.Subject,
		SessionsCount: 1,
		TotalEarnings: booking.TotalCost,
		FirstSession:  booking.RequestedDate,
		LastSession:   booking.RequestedDate,
		Status:        "active",
		CreatedAt:     time.Now(),
	}
	if err := e.store.CreateStudentRollup(rollup); err != nil {
		return fmt.Errorf("failed to create student rollup: %w", err)
	}
	return nil
}

// AddToMySessions appends the student-facing session record for a
// confirmed booking. Never deduplicated: each confirmed booking is one
// visible session to the student.
func (e *Engine) AddToMySessions(booking *types.Booking) error {
	record := &types.StudentSessionRecord{
		BookingID:       booking.ID,
		StudentName:     booking.StudentName,
		StudentEmail:    booking.StudentEmail,
		TutorName:       booking.TutorName,
		Subject:         booking.Subject,
		SessionDate:     booking.RequestedDate,
		SessionTime:     booking.RequestedTime,
		DurationMinutes: booking.DurationMinutes,
		Cost:            booking.TotalCost,
		Status:          types.BookingStatusConfirmed,
		CreatedAt:       time.Now(),
	}
	if err := e.store.CreateStudentSessionRecord(record); err != nil {
		return fmt.Errorf("failed to create session record: %w", err)
	}
	return nil
}

// MyStudents returns the tutor's aggregated student rows in insertion
// order.
func (e *Engine) MyStudents(tutorName string) ([]*types.StudentRollup, error) {
	all, err := e.store.ListStudentRollups()
	if err != nil {
		return nil, err
	}
	var result []*types.StudentRollup
	for _, rollup := range all {
		if rollup.TutorName == tutorName {
			result = append(result, rollup)
		}
	}
	return result, nil
}

// MySessions returns the student's session records in insertion order.
func (e *Engine) MySessions(studentEmail string) ([]*types.StudentSessionRecord, error) {
	all, err := e.store.ListStudentSessionRecords()
	if err != nil {
		return nil, err
	}
	var result []*types.StudentSessionRecord
	for _, record := range all {
		if record.StudentEmail == studentEmail {
			result = append(result, record)
		}
	}
	return result, nil
}
