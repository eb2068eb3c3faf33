package notification

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorconnect/tutorconnect/pkg/log"
	"github.com/tutorconnect/tutorconnect/pkg/metrics"
	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

// Sink appends user-addressed notifications for booking lifecycle
// events.
type Sink struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewSink creates a Sink backed by the given store
func NewSink(store storage.Store) *Sink {
	return &Sink{
		store:  store,
		logger: log.WithComponent("notification"),
	}
}

// Add appends a notification. Read state and creation time are owned
// here; callers supply addressee and content only.
func (s *Sink) Add(n *types.Notification) (*types.Notification, error) {
	n.Read = false
	n.CreatedAt = time.Now()
	if err := s.store.CreateNotification(n); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}
	metrics.NotificationsEmitted.WithLabelValues(string(n.Type)).Inc()

	s.logger.Debug().
		Str("user", n.UserName).
		Str("type", string(n.Type)).
		Msg("notification emitted")
	return n, nil
}

// UserNotifications returns a user's notifications, newest first.
func (s *Sink) UserNotifications(userName string) ([]*types.Notification, error) {
	notifications, err := s.store.ListNotificationsByUser(userName)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// MarkRead flags a notification as read. Missing IDs are a no-op.
func (s *Sink) MarkRead(id uint64) error {
	n, err := s.store.GetNotification(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	if n.Read {
		return nil
	}
	n.Read = true
	return s.store.UpdateNotification(n)
}
