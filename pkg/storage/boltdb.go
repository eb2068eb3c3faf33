package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tutorconnect/tutorconnect/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var (
	// Bucket names
	bucketBookings        = []byte("bookings")
	bucketConversations   = []byte("conversations")
	bucketSessions        = []byte("sessions")
	bucketMessages        = []byte("messages")
	bucketNotifications   = []byte("notifications")
	bucketFiles           = []byte("files")
	bucketStudentRollups  = []byte("my_students")
	bucketStudentSessions = []byte("my_sessions")
	bucketProfile         = []byte("profile")

	// Fixed key for the single live tutor profile record
	keyLiveProfile = []byte("live_profile")
)

var allBuckets = [][]byte{
	bucketBookings,
	bucketConversations,
	bucketSessions,
	bucketMessages,
	bucketNotifications,
	bucketFiles,
	bucketStudentRollups,
	bucketStudentSessions,
	bucketProfile,
}

// BoltStore implements Store interface using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "tutorconnect.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})

	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Reset drops and recreates every bucket. Used by tests and tooling.
func (s *BoltStore) Reset() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if err := tx.DeleteBucket(bucket); err != nil {
				return fmt.Errorf("failed to delete bucket %s: %w", bucket, err)
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return fmt.Errorf("failed to recreate bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
}

// itob converts a sequence ID into a sortable 8-byte big-endian key,
// so cursor order equals insertion order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Booking operations

// CreateBooking stores a booking, assigning its ID from the bucket
// sequence inside the write transaction.
func (s *BoltStore) CreateBooking(booking *types.Booking) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBookings)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		booking.ID = id
		data, err := json.Marshal(booking)
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
}

func (s *BoltStore) GetBooking(id uint64) (*types.Booking, error) {
	var booking types.Booking
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBookings)
		data := b.Get(itob(id))
		if data == nil {
			return fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &booking)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BoltStore) UpdateBooking(booking *types.Booking) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBookings)
		data, err := json.Marshal(booking)
		if err != nil {
			return err
		}
		return b.Put(itob(booking.ID), data)
	})
}

func (s *BoltStore) ListBookings() ([]*types.Booking, error) {
	var bookings []*types.Booking
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBookings)
		return b.ForEach(func(k, v []byte) error {
			var booking types.Booking
			if err := json.Unmarshal(v, &booking); err != nil {
				return err
			}
			bookings = append(bookings, &booking)
			return nil
		})
	})
	return bookings, err
}

// Conversation operations

// CreateConversation stores a conversation under its deterministic
// string ID (assigned by the conversation manager, not the store).
func (s *BoltStore) CreateConversation(conversation *types.Conversation) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		data, err := json.Marshal(conversation)
		if err != nil {
			return err
		}
		return b.Put([]byte(conversation.ID), data)
	})
}

func (s *BoltStore) GetConversation(id string) (*types.Conversation, error) {
	var conversation types.Conversation
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("conversation %s: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &conversation)
	})
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (s *BoltStore) UpdateConversation(conversation *types.Conversation) error {
	return s.CreateConversation(conversation) // Same as create (upsert)
}

func (s *BoltStore) ListConversations() ([]*types.Conversation, error) {
	var conversations []*types.Conversation
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketConversations)
		return b.ForEach(func(k, v []byte) error {
			var conversation types.Conversation
			if err := json.Unmarshal(v, &conversation); err != nil {
				return err
			}
			conversations = append(conversations, &conversation)
			return nil
		})
	})
	return conversations, err
}

// Session operations

func (s *BoltStore) CreateSession(session *types.Session) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		session.ID = id
		data, err := json.Marshal(session)
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
}

func (s *BoltStore) GetSession(id uint64) (*types.Session, error) {
	var session types.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		data := b.Get(itob(id))
		if data == nil {
			return fmt.Errorf("session %d: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &session)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *BoltStore) UpdateSession(session *types.Session) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		data, err := json.Marshal(session)
		if err != nil {
			return err
		}
		return b.Put(itob(session.ID), data)
	})
}

func (s *BoltStore) ListSessions() ([]*types.Session, error) {
	var sessions []*types.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSessions)
		return b.ForEach(func(k, v []byte) error {
			var session types.Session
			if err := json.Unmarshal(v, &session); err != nil {
				return err
			}
			sessions = append(sessions, &session)
			return nil
		})
	})
	return sessions, err
}

// Message operations

func (s *BoltStore) CreateMessage(message *types.Message) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		message.ID = id
		data, err := json.Marshal(message)
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
}

func (s *BoltStore) UpdateMessage(message *types.Message) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		data, err := json.Marshal(message)
		if err != nil {
			return err
		}
		return b.Put(itob(message.ID), data)
	})
}

// ListMessagesByConversation returns a conversation's messages in
// insertion order (keys are sequence IDs, so cursor order is stable).
func (s *BoltStore) ListMessagesByConversation(conversationID string) ([]*types.Message, error) {
	var messages []*types.Message
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMessages)
		return b.ForEach(func(k, v []byte) error {
			var message types.Message
			if err := json.Unmarshal(v, &message); err != nil {
				return err
			}
			if message.ConversationID == conversationID {
				messages = append(messages, &message)
			}
			return nil
		})
	})
	return messages, err
}

// Notification operations

func (s *BoltStore) CreateNotification(notification *types.Notification) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotifications)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		notification.ID = id
		data, err := json.Marshal(notification)
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
}

func (s *BoltStore) GetNotification(id uint64) (*types.Notification, error) {
	var notification types.Notification
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotifications)
		data := b.Get(itob(id))
		if data == nil {
			return fmt.Errorf("notification %d: %w", id, ErrNotFound)
		}
		return json.Unmarshal(data, &notification)
	})
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *BoltStore) UpdateNotification(notification *types.Notification) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotifications)
		data, err := json.Marshal(notification)
		if err != nil {
			return err
		}
		return b.Put(itob(notification.ID), data)
	})
}

func (s *BoltStore) ListNotificationsByUser(userName string) ([]*types.Notification, error) {
	var notifications []*types.Notification
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotifications)
		return b.ForEach(func(k, v []byte) error {
			var notification types.Notification
			if err := json.Unmarshal(v, &notification); err != nil {
				return err
			}
			if notification.UserName == userName {
				notifications = append(notifications, &notification)
			}
			return nil
		})
	})
	return notifications, err
}

// File operations

func (s *BoltStore) CreateFileRecord(file *types.FileRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		file.ID = id
		data, err := json.Marshal(file)
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
}

// Rollup operations

func (s *BoltStore) CreateStudentRollup(rollup *types.StudentRollup) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketStudentRollups)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		rollup.ID = id
		data, err := json.Marshal(rollup)
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
}

// GetStudentRollupByPair scans for the aggregate row keyed by
// (tutor name, student email).
func (s *BoltStore) GetStudentRollupByPair(tutorName, studentEmail string) (*types.StudentRollup, error) {
	var found *types.StudentRollup
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketStudentRollups)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var rollup types.StudentRollup
			if err := json.Unmarshal(v, &rollup); err != nil {
				return err
			}
			if rollup.TutorName == tutorName && rollup.StudentEmail == studentEmail {
				found = &rollup
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("student rollup %s/%s: %w", tutorName, studentEmail, ErrNotFound)
	}
	return found, nil
}

func (s *BoltStore) UpdateStudentRollup(rollup *types.StudentRollup) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketStudentRollups)
		data, err := json.Marshal(rollup)
		if err != nil {
			return err
		}
		return b.Put(itob(rollup.ID), data)
	})
}

func (s *BoltStore) ListStudentRollups() ([]*types.StudentRollup, error) {
	var rollups []*types.StudentRollup
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketStudentRollups)
		return b.ForEach(func(k, v []byte) error {
			var rollup types.StudentRollup
			if err := json.Unmarshal(v, &rollup); err != nil {
				return err
			}
			rollups = append(rollups, &rollup)
			return nil
		})
	})
	return rollups, err
}

func (s *BoltStore) CreateStudentSessionRecord(record *types.StudentSessionRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketStudentSessions)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		record.ID = id
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put(itob(id), data)
	})
}

func (s *BoltStore) ListStudentSessionRecords() ([]*types.StudentSessionRecord, error) {
	var records []*types.StudentSessionRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketStudentSessions)
		return b.ForEach(func(k, v []byte) error {
			var record types.StudentSessionRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return err
			}
			records = append(records, &record)
			return nil
		})
	})
	return records, err
}

// Live tutor profile operations

// SaveTutorProfile stores the live profile under a fixed key.
func (s *BoltStore) SaveTutorProfile(profile *types.TutorProfile) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProfile)
		data, err := json.Marshal(profile)
		if err != nil {
			return err
		}
		return b.Put(keyLiveProfile, data)
	})
}

func (s *BoltStore) GetTutorProfile() (*types.TutorProfile, error) {
	var profile types.TutorProfile
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketProfile)
		data := b.Get(keyLiveProfile)
		if data == nil {
			return fmt.Errorf("live tutor profile: %w", ErrNotFound)
		}
		return json.Unmarshal(data, &profile)
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
