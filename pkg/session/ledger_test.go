package session

import (
	"io"
	"os"
	"strings"
	"testing"

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

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	store, err := storage.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewLedger(store)
}

func confirmedBooking() *types.Booking {
	return &types.Booking{
		ID:              3,
		TutorName:       "Mike",
		StudentName:     "Sarah",
		StudentEmail:    "sarah@example.com",
		Subject:         "Mathematics",
		RequestedDate:   "2026-09-14",
		RequestedTime:   "16:00",
		DurationMinutes: 90,
		TotalCost:       1200,
		Status:          types.BookingStatusConfirmed,
	}
}

func TestCreateFromBooking(t *testing.T) {
	ledger := newTestLedger(t)

	session, err := ledger.CreateFromBooking(confirmedBooking())
	require.NoError(t, err)

	assert.NotZero(t, session.ID)
	assert.Equal(t, uint64(3), session.BookingID)
	assert.Equal(t, types.SessionStatusScheduled, session.Status)
	assert.Equal(t, float64(1200), session.TotalCost)
	assert.Empty(t, session.Notes)
	assert.Nil(t, session.Rating)
	assert.NotNil(t, session.Materials)
}

func TestMeetingLinkFormat(t *testing.T) {
	ledger := newTestLedger(t)

	first, err := ledger.CreateFromBooking(confirmedBooking())
	require.NoError(t, err)
	second, err := ledger.CreateFromBooking(confirmedBooking())
	require.NoError(t, err)

	for _, s := range []*types.Session{first, second} {
		require.True(t, strings.HasPrefix(s.MeetingLink, "https://meet.jit.si/tutorconnect-"))
		token := strings.TrimPrefix(s.MeetingLink, "https://meet.jit.si/tutorconnect-")
		assert.Len(t, token, 8)
	}
	assert.NotEqual(t, first.MeetingLink, second.MeetingLink)
}

func TestUserSessions(t *testing.T) {
	ledger := newTestLedger(t)

	_, err := ledger.CreateFromBooking(confirmedBooking())
	require.NoError(t, err)

	other := confirmedBooking()
	other.TutorName = "Priya"
	other.StudentName = "Alex"
	_, err = ledger.CreateFromBooking(other)
	require.NoError(t, err)

	asTutor, err := ledger.UserSessions("Mike", types.RoleTutor)
	require.NoError(t, err)
	assert.Len(t, asTutor, 1)

	asStudent, err := ledger.UserSessions("Sarah", types.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, asStudent, 1)

	none, err := ledger.UserSessions("Sam", types.RoleStudent)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNotesMaterialsRating(t *testing.T) {
	ledger := newTestLedger(t)

	session, err := ledger.CreateFromBooking(confirmedBooking())
	require.NoError(t, err)

	require.NoError(t, ledger.SetNotes(session.ID, "covered chapters 3-4"))
	require.NoError(t, ledger.AddMaterial(session.ID, "worksheet.pdf"))
	require.NoError(t, ledger.AddMaterial(session.ID, "answers.pdf"))
	require.NoError(t, ledger.Rate(session.ID, 5))

	got, err := ledger.get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "covered chapters 3-4", got.Notes)
	assert.Equal(t, []string{"worksheet.pdf", "answers.pdf"}, got.Materials)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 5, *got.Rating)
}

func TestRateValidation(t *testing.T) {
	ledger := newTestLedger(t)

	session, err := ledger.CreateFromBooking(confirmedBooking())
	require.NoError(t, err)

	assert.Error(t, ledger.Rate(session.ID, 0))
	assert.Error(t, ledger.Rate(session.ID, 6))
	assert.Error(t, ledger.Rate(999, 4))
}
