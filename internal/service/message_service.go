package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/metrics"
)

const maxContentRunes = 5000

// MessageService owns message creation, ordering, delivery and read state,
// reactions, replies, and per-user soft deletion.
type MessageService struct {
	conversations domain.ConversationRepository
	participants  domain.ParticipantRepository
	messages      domain.MessageRepository
	contacts      domain.ContactRepository

	DefaultPageSize int
}

func NewMessageService(
	conversations domain.ConversationRepository,
	participants domain.ParticipantRepository,
	messages domain.MessageRepository,
	contacts domain.ContactRepository,
	defaultPageSize int,
) *MessageService {
	return &MessageService{
		conversations:   conversations,
		participants:    participants,
		messages:        messages,
		contacts:        contacts,
		DefaultPageSize: defaultPageSize,
	}
}

// AppendInput carries a new message's payload.
type AppendInput struct {
	ConversationID int64
	Content        string
	Kind           string
	MediaURL       *string
	MediaType      *string
	ReplyToID      *int64
}

// Append validates and stores a new message with status "sent", bumps the
// unread counter of every other participant, and refreshes the
// conversation's update time.
func (s *MessageService) Append(ctx context.Context, senderID int64, in AppendInput) (*domain.Message, error) {
	conv, err := s.memberConversation(ctx, in.ConversationID, senderID)
	if err != nil {
		return nil, err
	}

	if in.Kind == "" {
		in.Kind = domain.MessageText
	}
	if !domain.ValidMessageKind(in.Kind) {
		return nil, fmt.Errorf("%w: unknown message kind %q", domain.ErrValidation, in.Kind)
	}
	if len([]rune(in.Content)) > maxContentRunes {
		return nil, fmt.Errorf("%w: content exceeds %d characters", domain.ErrValidation, maxContentRunes)
	}
	if in.Kind == domain.MessageText {
		if in.Content == "" {
			return nil, fmt.Errorf("%w: content is required for text messages", domain.ErrValidation)
		}
	} else if in.MediaURL == nil || *in.MediaURL == "" {
		return nil, fmt.Errorf("%w: media_url is required for %s messages", domain.ErrValidation, in.Kind)
	}

	if in.ReplyToID != nil {
		parent, err := s.messages.GetByID(ctx, *in.ReplyToID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: reply target does not exist", domain.ErrValidation)
			}
			return nil, err
		}
		if parent.ConversationID != conv.ID {
			return nil, fmt.Errorf("%w: reply target belongs to another conversation", domain.ErrValidation)
		}
	}

	// Blocking gates direct conversations only: a recipient who blocked the
	// sender does not accept new messages from them.
	if !conv.IsGroup() {
		if err := s.checkNotBlocked(ctx, conv, senderID); err != nil {
			return nil, err
		}
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        in.Content,
		Kind:           in.Kind,
		MediaURL:       in.MediaURL,
		MediaType:      in.MediaType,
		Status:         domain.StatusSent,
		ReplyToID:      in.ReplyToID,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.participants.IncrementUnread(ctx, conv.ID, senderID); err != nil {
		return nil, fmt.Errorf("increment unread: %w", err)
	}
	if err := s.conversations.Touch(ctx, conv.ID); err != nil {
		return nil, fmt.Errorf("touch conversation: %w", err)
	}

	metrics.MessagesAppended.WithLabelValues(msg.Kind).Inc()
	return msg, nil
}

// MarkDelivered promotes the message from sent to delivered. Calls against
// an already delivered or read message are no-ops.
func (s *MessageService) MarkDelivered(ctx context.Context, messageID int64) error {
	if _, err := s.messages.GetByID(ctx, messageID); err != nil {
		return err
	}
	return s.messages.MarkDelivered(ctx, messageID)
}

// MarkRead records the reader's receipt, promotes the scalar status, and
// decrements the reader's unread counter. Repeated calls for the same
// (user, message) change nothing: the receipt insert is the idempotency
// guard for the decrement.
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID int64) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if _, err := s.memberConversation(ctx, msg.ConversationID, userID); err != nil {
		return err
	}

	inserted, err := s.messages.MarkRead(ctx, messageID, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if inserted {
		if err := s.participants.DecrementUnread(ctx, msg.ConversationID, userID); err != nil {
			return fmt.Errorf("decrement unread: %w", err)
		}
	}
	return nil
}

// React upserts the user's reaction; a second reaction from the same user
// replaces the first.
func (s *MessageService) React(ctx context.Context, userID, messageID int64, emoji string) (*domain.Message, error) {
	if emoji == "" {
		return nil, fmt.Errorf("%w: emoji is required", domain.ErrValidation)
	}
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberConversation(ctx, msg.ConversationID, userID); err != nil {
		return nil, err
	}
	if msg.Deleted {
		return nil, fmt.Errorf("%w: message was deleted", domain.ErrValidation)
	}
	if err := s.messages.UpsertReaction(ctx, messageID, userID, emoji); err != nil {
		return nil, err
	}
	return s.messages.GetByID(ctx, messageID)
}

// DeleteForEveryone tombstones the message: content and media become
// inaccessible for every participant, but the row survives so ordering and
// replies stay intact. Only the original sender may do this.
func (s *MessageService) DeleteForEveryone(ctx context.Context, senderID, messageID int64) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != senderID {
		return domain.ErrForbidden
	}
	return s.messages.Tombstone(ctx, messageID)
}

// DeleteForMe hides the message from the requester's own view only.
func (s *MessageService) DeleteForMe(ctx context.Context, userID, messageID int64) error {
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if _, err := s.memberConversation(ctx, msg.ConversationID, userID); err != nil {
		return err
	}
	return s.messages.HideForUser(ctx, messageID, userID)
}

// List returns the requester's view of a conversation: chronological order,
// minus messages deleted-for-them, with tombstoned messages redacted.
func (s *MessageService) List(ctx context.Context, userID, conversationID int64, limit, offset int) ([]*domain.Message, error) {
	if _, err := s.memberConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.DefaultPageSize {
		limit = s.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	msgs, err := s.messages.ListForConversation(ctx, conversationID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, m := range msgs {
		Redact(m)
	}
	return msgs, nil
}

// Redact blanks the payload of a tombstoned message in place. Stored rows
// already have content cleared; this also covers messages tombstoned after
// being loaded.
func Redact(m *domain.Message) {
	if m.Deleted {
		m.Content = ""
		m.MediaURL = nil
		m.MediaType = nil
	}
}

// memberConversation loads the conversation and requires the user to be a
// participant, collapsing both failure modes into ErrNotFound.
func (s *MessageService) memberConversation(ctx context.Context, conversationID, userID int64) (*domain.Conversation, error) {
	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	isMember, err := s.participants.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("check participant: %w", err)
	}
	if !isMember {
		return nil, domain.ErrNotFound
	}
	return conv, nil
}

func (s *MessageService) checkNotBlocked(ctx context.Context, conv *domain.Conversation, senderID int64) error {
	parts, err := s.participants.List(ctx, conv.ID)
	if err != nil {
		return fmt.Errorf("list participants: %w", err)
	}
	for _, p := range parts {
		if p.UserID == senderID {
			continue
		}
		blocked, err := s.contacts.IsBlocked(ctx, p.UserID, senderID)
		if err != nil {
			return fmt.Errorf("check blocked: %w", err)
		}
		if blocked {
			return fmt.Errorf("%w: recipient is not accepting your messages", domain.ErrForbidden)
		}
	}
	return nil
}
