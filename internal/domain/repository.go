package domain

import (
	"context"
	"time"
)

// UserRepository defines persistence operations for users. The messaging
// core only reads users; Create and the profile mutations serve the thin
// identity glue around it.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*User, error)
	Search(ctx context.Context, query string, limit int) ([]*User, error)
	UpdateProfile(ctx context.Context, u *User) error
	SetPresence(ctx context.Context, id int64, status string, lastSeen time.Time) error
}

// ContactRepository defines persistence operations for contacts.
// Create must surface a unique-index violation on (owner_id, contact_user_id)
// as ErrDuplicate.
type ContactRepository interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, ownerID, contactID int64) (*Contact, error)
	ListByOwner(ctx context.Context, ownerID int64, includeBlocked bool) ([]*Contact, error)
	UpdateNickname(ctx context.Context, ownerID, contactID int64, nickname string) error
	Delete(ctx context.Context, ownerID, contactID int64) error
	SetBlocked(ctx context.Context, ownerID, contactID int64, blocked bool) error
	IsBlocked(ctx context.Context, ownerID, targetUserID int64) (bool, error)
}

// ConversationRepository defines persistence operations for conversations.
// Create must surface a unique-index violation on direct_key as ErrDuplicate
// so that concurrent find-or-create callers can retry the find.
type ConversationRepository interface {
	Create(ctx context.Context, c *Conversation, participantIDs []int64) error
	GetByID(ctx context.Context, id int64) (*Conversation, error)
	FindDirectByKey(ctx context.Context, key string) (*Conversation, error)
	ListForUser(ctx context.Context, userID int64) ([]*Conversation, error)
	UpdateGroupInfo(ctx context.Context, id int64, groupName, groupAvatar *string) error
	Touch(ctx context.Context, id int64) error
	DeleteCascade(ctx context.Context, id int64) error
}

// ParticipantRepository defines operations around conversation membership
// and the per-member unread counters.
type ParticipantRepository interface {
	List(ctx context.Context, conversationID int64) ([]*Participant, error)
	ListUsers(ctx context.Context, conversationID int64) ([]*User, error)
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
	IncrementUnread(ctx context.Context, conversationID, exceptUserID int64) error
	DecrementUnread(ctx context.Context, conversationID, userID int64) error
	UnreadCount(ctx context.Context, conversationID, userID int64) (int, error)
}

// MessageRepository defines persistence operations for messages and their
// receipts, reactions, and per-viewer hidden markers.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	// ListForConversation returns messages in (created_at, id) ascending
	// order, excluding any message hidden for the viewer. Tombstoned
	// messages are included as stored.
	ListForConversation(ctx context.Context, conversationID, viewerID int64, limit, offset int) ([]*Message, error)
	// LastVisible returns the latest message not hidden for the viewer, or
	// ErrNotFound when the conversation has none.
	LastVisible(ctx context.Context, conversationID, viewerID int64) (*Message, error)
	MarkDelivered(ctx context.Context, messageID int64) error
	// MarkRead records a read receipt and promotes the scalar status.
	// It reports whether the receipt was newly inserted, which callers use
	// to decide whether to decrement the reader's unread counter.
	MarkRead(ctx context.Context, messageID, userID int64, readAt time.Time) (bool, error)
	UpsertReaction(ctx context.Context, messageID, userID int64, emoji string) error
	Tombstone(ctx context.Context, messageID int64) error
	HideForUser(ctx context.Context, messageID, userID int64) error
}
