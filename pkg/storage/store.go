package storage

import (
	"errors"

	"github.com/tutorconnect/tutorconnect/pkg/types"
)

// ErrNotFound is returned when a record does not exist. Callers that
// surface absence as an empty result should test with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for workflow state storage.
// Implemented by the BoltDB-backed store.
type Store interface {
	// Bookings
	CreateBooking(booking *types.Booking) error
	GetBooking(id uint64) (*types.Booking, error)
	UpdateBooking(booking *types.Booking) error
	ListBookings() ([]*types.Booking, error)

	// Conversations
	CreateConversation(conversation *types.Conversation) error
	GetConversation(id string) (*types.Conversation, error)
	UpdateConversation(conversation *types.Conversation) error
	ListConversations() ([]*types.Conversation, error)

	// Sessions
	CreateSession(session *types.Session) error
	GetSession(id uint64) (*types.Session, error)
	UpdateSession(session *types.Session) error
	ListSessions() ([]*types.Session, error)

	// Messages
	CreateMessage(message *types.Message) error
	UpdateMessage(message *types.Message) error
	ListMessagesByConversation(conversationID string) ([]*types.Message, error)

	// Notifications
	CreateNotification(notification *types.Notification) error
	GetNotification(id uint64) (*types.Notification, error)
	UpdateNotification(notification *types.Notification) error
	ListNotificationsByUser(userName string) ([]*types.Notification, error)

	// Files
	CreateFileRecord(file *types.FileRecord) error

	// Rollups
	CreateStudentRollup(rollup *types.StudentRollup) error
	GetStudentRollupByPair(tutorName, studentEmail string) (*types.StudentRollup, error)
	UpdateStudentRollup(rollup *types.StudentRollup) error
	ListStudentRollups() ([]*types.StudentRollup, error)

	CreateStudentSessionRecord(record *types.StudentSessionRecord) error
	ListStudentSessionRecords() ([]*types.StudentSessionRecord, error)

	// Live tutor profile (single record, fixed key)
	SaveTutorProfile(profile *types.TutorProfile) error
	GetTutorProfile() (*types.TutorProfile, error)

	// Utility
	Reset() error
	Close() error
}
