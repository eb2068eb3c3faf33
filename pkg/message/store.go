package message

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorconnect/tutorconnect/pkg/events"
	"github.com/tutorconnect/tutorconnect/pkg/log"
	"github.com/tutorconnect/tutorconnect/pkg/metrics"
	"github.com/tutorconnect/tutorconnect/pkg/storage"
	"github.com/tutorconnect/tutorconnect/pkg/types"
)

// previewLimit is the number of characters of a text message kept as the
// conversation's last-message preview.
const previewLimit = 50

// Store appends messages to conversation threads and maintains the
// parent conversation's preview and unread counters.
type Store struct {
	store  storage.Store
	broker *events.Broker
	logger zerolog.Logger
}

// NewStore creates a message Store backed by the given store
func NewStore(store storage.Store, broker *events.Broker) *Store {
	return &Store{
		store:  store,
		broker: broker,
		logger: log.WithComponent("message"),
	}
}

// SendRequest carries the fields of an outgoing message.
type SendRequest struct {
	ConversationID string
	SenderName     string
	SenderRole     types.Role
	ReceiverName   string
	Message        string
	Type           types.MessageType
	FileURL        string
	FileName       string
	FileType       string
	FileSize       int64
}

// Send appends a message to the log and updates the parent
// conversation's preview, timestamp, and receiving-side unread counter.
// If the conversation does not exist the message is still stored and the
// preview update is skipped.
func (s *Store) Send(req SendRequest) (*types.Message, error) {
	if req.ConversationID == "" {
		return nil, fmt.Errorf("send requires a conversation_id")
	}
	if req.Type == "" {
		req.Type = types.MessageTypeText
	}

	now := time.Now()
	msg := &types.Message{
		ConversationID: req.ConversationID,
		SenderName:     req.SenderName,
		SenderRole:     req.SenderRole,
		ReceiverName:   req.ReceiverName,
		Message:        req.Message,
		Type:           req.Type,
		Timestamp:      now,
		Read:           false,
		FileURL:        req.FileURL,
		FileName:       req.FileName,
		FileType:       req.FileType,
		FileSize:       req.FileSize,
	}

	if err := s.store.CreateMessage(msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if err := s.updateConversation(msg); err != nil {
		return nil, err
	}

	metrics.MessagesSent.WithLabelValues(string(msg.Type)).Inc()
	if s.broker != nil {
		s.broker.Publish(&events.Event{
			Type:           events.EventMessageSent,
			ConversationID: msg.ConversationID,
			UserName:       msg.SenderName,
			Message:        preview(msg),
		})
	}

	s.logger.Debug().
		Str("conversation_id", msg.ConversationID).
		Str("sender", msg.SenderName).
		Str("type", string(msg.Type)).
		Msg("message sent")
	return msg, nil
}

// preview renders the last-message summary: the file name for
// attachments, otherwise the first 50 characters with an ellipsis.
func preview(msg *types.Message) string {
	if msg.FileName != "" {
		return "📎 " + msg.FileName
	}
	runes := []rune(msg.Message)
	if len(runes) <= previewLimit {
		return msg.Message
	}
	return string(runes[:previewLimit]) + "..."
}

func (s *Store) updateConversation(msg *types.Message) error {
	conv, err := s.store.GetConversation(msg.ConversationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Message kept; there is no thread to annotate.
			s.logger.Warn().
				Str("conversation_id", msg.ConversationID).
				Msg("message stored for unknown conversation")
			return nil
		}
		return err
	}

	conv.LastMessage = preview(msg)
	conv.LastMessageTime = msg.Timestamp

	// The welcome message is already accounted for: its conversation is
	// created with one unread on the student side.
	if msg.Type != types.MessageTypeWelcome {
		if msg.SenderRole == types.RoleTutor {
			conv.UnreadCountStudent++
		} else {
			conv.UnreadCountTutor++
		}
	}

	return s.store.UpdateConversation(conv)
}

// ConversationMessages returns a conversation's messages in
// chronological order, stable by insertion for equal timestamps.
func (s *Store) ConversationMessages(conversationID string) ([]*types.Message, error) {
	messages, err := s.store.ListMessagesByConversation(conversationID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

// UploadFile reads a file's bytes into a base64 data URL and stores the
// record. The caller is expected to follow up with Send using the
// returned name, type, and size. A read failure surfaces as an error
// with nothing stored.
func (s *Store) UploadFile(ctx context.Context, r io.Reader, name, mimeType, conversationID string) (*types.FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	file := &types.FileRecord{
		Name:           name,
		Type:           mimeType,
		Size:           int64(len(data)),
		Data:           fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		ConversationID: conversationID,
		UploadedAt:     time.Now(),
	}
	if err := s.store.CreateFileRecord(file); err != nil {
		return nil, fmt.Errorf("failed to store file record: %w", err)
	}

	metrics.FilesUploaded.Inc()
	metrics.FileUploadBytes.Add(float64(file.Size))
	if s.broker != nil {
		s.broker.Publish(&events.Event{
			Type:           events.EventFileUploaded,
			ConversationID: conversationID,
			Message:        name,
		})
	}

	s.logger.Info().
		Str("conversation_id", conversationID).
		Str("file", name).
		Int64("size", file.Size).
		Msg("file uploaded")
	return file, nil
}
