package domain

import (
	"fmt"
	"time"
)

// Conversation kinds.
const (
	ConversationDirect = "direct"
	ConversationGroup  = "group"
)

// Message kinds.
const (
	MessageText  = "text"
	MessageImage = "image"
	MessageVideo = "video"
	MessageFile  = "file"
	MessageAudio = "audio"
)

// Message delivery statuses. Transitions are monotonic:
// sent -> delivered -> read.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
)

// ValidMessageKind reports whether k is one of the supported message kinds.
func ValidMessageKind(k string) bool {
	switch k {
	case MessageText, MessageImage, MessageVideo, MessageFile, MessageAudio:
		return true
	}
	return false
}

// User represents an application user. The messaging core treats users as
// read-only referenced data owned by the identity layer.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Avatar         string    `db:"avatar" json:"avatar"`
	Bio            string    `db:"bio" json:"bio"`
	Status         string    `db:"status" json:"status"`
	Theme          string    `db:"theme" json:"theme"`
	DarkMode       bool      `db:"dark_mode" json:"dark_mode"`
	LastSeen       time.Time `db:"last_seen" json:"last_seen"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Profile is the public projection of a user shared with other participants.
type Profile struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    *string   `json:"phone,omitempty"`
	Avatar   string    `json:"avatar"`
	Bio      string    `json:"bio"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"last_seen"`
}

// PublicProfile strips private fields from a user.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		Avatar:   u.Avatar,
		Bio:      u.Bio,
		Status:   u.Status,
		LastSeen: u.LastSeen,
	}
}

// Contact is a directed, owner-scoped relationship to another user.
// At most one record exists per (owner, contact user) pair.
type Contact struct {
	ID            int64     `db:"id" json:"id"`
	OwnerID       int64     `db:"owner_id" json:"owner_id"`
	ContactUserID int64     `db:"contact_user_id" json:"contact_user_id"`
	Nickname      string    `db:"nickname" json:"nickname"`
	Blocked       bool      `db:"blocked" json:"blocked"`
	AddedAt       time.Time `db:"added_at" json:"added_at"`
}

// ContactView is a contact enriched with the target user's public profile.
type ContactView struct {
	Contact
	User Profile `json:"user"`
}

// Conversation is either a direct exchange between exactly two users or an
// admin-governed group. DirectKey is the normalized participant pair key that
// keeps direct conversations unique per unordered pair.
type Conversation struct {
	ID           int64     `db:"id" json:"id"`
	Kind         string    `db:"kind" json:"kind"`
	GroupName    *string   `db:"group_name" json:"group_name,omitempty"`
	GroupAvatar  *string   `db:"group_avatar" json:"group_avatar,omitempty"`
	GroupAdminID *int64    `db:"group_admin_id" json:"group_admin_id,omitempty"`
	DirectKey    *string   `db:"direct_key" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// IsGroup reports whether the conversation is a group.
func (c *Conversation) IsGroup() bool { return c.Kind == ConversationGroup }

// DirectKey normalizes an unordered user pair into the storage key backing
// the direct-conversation uniqueness constraint.
func DirectKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Participant is a user's membership in a conversation. Position preserves
// insertion order for display; UnreadCount is a per-member counter maintained
// with atomic storage-level increments.
type Participant struct {
	ConversationID int64     `db:"conversation_id" json:"conversation_id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	Position       int       `db:"position" json:"position"`
	UnreadCount    int       `db:"unread_count" json:"unread_count"`
	JoinedAt       time.Time `db:"joined_at" json:"joined_at"`
}

// ReadReceipt records that a user read a message. Each user appears at most
// once per message.
type ReadReceipt struct {
	UserID int64     `db:"user_id" json:"user_id"`
	ReadAt time.Time `db:"read_at" json:"read_at"`
}

// Reaction is a user's emoji reaction to a message. Re-reacting replaces the
// previous reaction rather than adding a second one.
type Reaction struct {
	UserID int64  `db:"user_id" json:"user_id"`
	Emoji  string `db:"emoji" json:"emoji"`
}

// Message belongs to exactly one conversation. A globally deleted message is
// tombstoned (Deleted=true, content and media cleared) rather than removed,
// so ordering and reply references stay intact.
type Message struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversation_id"`
	SenderID       int64     `db:"sender_id" json:"sender_id"`
	Content        string    `db:"content" json:"content"`
	Kind           string    `db:"kind" json:"kind"`
	MediaURL       *string   `db:"media_url" json:"media_url,omitempty"`
	MediaType      *string   `db:"media_type" json:"media_type,omitempty"`
	Status         string    `db:"status" json:"status"`
	ReplyToID      *int64    `db:"reply_to_id" json:"reply_to_id,omitempty"`
	Deleted        bool      `db:"deleted" json:"deleted"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`

	ReadBy    []ReadReceipt `json:"read_by"`
	Reactions []Reaction    `json:"reactions"`
}
