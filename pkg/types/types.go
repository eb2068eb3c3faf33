package types

import (
	"time"
)

// Role identifies which side of a booking a user is acting as.
type Role string

const (
	RoleTutor   Role = "tutor"
	RoleStudent Role = "student"
)

// BookingStatus represents the lifecycle state of a booking request
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDeclined  BookingStatus = "declined"
)

// Booking is a student's request to reserve a tutor's time.
// Immutable after creation except Status and UpdatedAt.
type Booking struct {
	ID              uint64        `json:"id"`
	TutorName       string        `json:"tutor_name"`
	StudentName     string        `json:"student_name"`
	StudentEmail    string        `json:"student_email"`
	Subject         string        `json:"subject"`
	RequestedDate   string        `json:"requested_date"`
	RequestedTime   string        `json:"requested_time"`
	DurationMinutes int           `json:"duration"`
	HourlyRate      float64       `json:"hourly_rate"`
	TotalCost       float64       `json:"total_cost"`
	Message         string        `json:"message"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ConversationStatus represents the state of a message thread
type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "active"
)

// Conversation is the message thread derived from a confirmed booking.
// Its ID is deterministic over (tutor, student, booking ID) so a
// repeated confirmation cannot create a duplicate thread.
type Conversation struct {
	ID                 string             `json:"id"`
	BookingID          uint64             `json:"booking_id"`
	TutorName          string             `json:"tutor_name"`
	StudentName        string             `json:"student_name"`
	StudentEmail       string             `json:"student_email"`
	Subject            string             `json:"subject"`
	SessionDate        string             `json:"session_date"`
	SessionTime        string             `json:"session_time"`
	DurationMinutes    int                `json:"duration"`
	Status             ConversationStatus `json:"status"`
	LastMessage        string             `json:"last_message"`
	LastMessageTime    time.Time          `json:"last_message_time"`
	UnreadCountTutor   int                `json:"unread_count_tutor"`
	UnreadCountStudent int                `json:"unread_count_student"`
	TypingTutor        bool               `json:"typing_tutor"`
	TypingStudent      bool               `json:"typing_student"`
	CreatedAt          time.Time          `json:"created_at"`
}

// SessionStatus represents the state of a scheduled session
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is the tutor-facing record of a confirmed teaching slot.
type Session struct {
	ID              uint64        `json:"id"`
	BookingID       uint64        `json:"booking_id"`
	TutorName       string        `json:"tutor_name"`
	StudentName     string        `json:"student_name"`
	StudentEmail    string        `json:"student_email"`
	Subject         string        `json:"subject"`
	ScheduledDate   string        `json:"scheduled_date"`
	ScheduledTime   string        `json:"scheduled_time"`
	DurationMinutes int           `json:"duration"`
	Status          SessionStatus `json:"status"`
	MeetingLink     string        `json:"meeting_link"`
	TotalCost       float64       `json:"total_cost"`
	Materials       []string      `json:"materials"`
	Notes           string        `json:"notes"`
	Rating          *int          `json:"rating"`
	CreatedAt       time.Time     `json:"created_at"`
}

// StudentSessionRecord is the student-facing "my sessions" entry.
// One record per confirmed booking; never deduplicated.
type StudentSessionRecord struct {
	ID              uint64        `json:"id"`
	BookingID       uint64        `json:"booking_id"`
	StudentName     string        `json:"student_name"`
	StudentEmail    string        `json:"student_email"`
	TutorName       string        `json:"tutor_name"`
	Subject         string        `json:"subject"`
	SessionDate     string        `json:"session_date"`
	SessionTime     string        `json:"session_time"`
	DurationMinutes int           `json:"duration"`
	Cost            float64       `json:"cost"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// StudentRollup is the tutor-facing "my students" aggregate, keyed by
// (tutor name, student email). Repeat confirmations for the same pair
// increment the counters instead of adding a row.
type StudentRollup struct {
	ID            uint64    `json:"id"`
	TutorName     string    `json:"tutor_name"`
	StudentName   string    `json:"student_name"`
	StudentEmail  string    `json:"student_email"`
	Subject       string    `json:"subject"`
	SessionsCount int       `json:"sessions_count"`
	TotalEarnings float64   `json:"total_earnings"`
	FirstSession  string    `json:"first_session"`
	LastSession   string    `json:"last_session"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// MessageType distinguishes plain chat text, file attachments, and the
// system welcome message sent on confirmation.
type MessageType string

const (
	MessageTypeText    MessageType = "text"
	MessageTypeFile    MessageType = "file"
	MessageTypeWelcome MessageType = "welcome"
)

// Message is one entry in a conversation's append-only log.
type Message struct {
	ID             uint64      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	SenderName     string      `json:"sender_name"`
	SenderRole     Role        `json:"sender_role"`
	ReceiverName   string      `json:"receiver_name"`
	Message        string      `json:"message"`
	Type           MessageType `json:"type"`
	Timestamp      time.Time   `json:"timestamp"`
	Read           bool        `json:"read"`
	FileURL        string      `json:"file_url,omitempty"`
	FileName       string      `json:"file_name,omitempty"`
	FileType       string      `json:"file_type,omitempty"`
	FileSize       int64       `json:"file_size,omitempty"`
}

// NotificationType identifies the booking lifecycle event a
// notification was emitted for.
type NotificationType string

const (
	NotificationBookingRequest   NotificationType = "booking_request"
	NotificationBookingConfirmed NotificationType = "booking_confirmed"
	NotificationBookingDeclined  NotificationType = "booking_declined"
)

// Notification is a user-addressed lifecycle event record.
type Notification struct {
	ID        uint64           `json:"id"`
	UserName  string           `json:"user_name"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// FileRecord holds an uploaded file's bytes as a base64 data URL,
// ready to be referenced from a file-type message.
type FileRecord struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Size           int64     `json:"size"`
	Data           string    `json:"data"`
	ConversationID string    `json:"conversation_id"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// TutorProfile is the locally stored "live profile": the tutor identity
// this client is acting as. At most one per store, kept under a fixed key.
type TutorProfile struct {
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}
