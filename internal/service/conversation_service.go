package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/metrics"
)

// defaultGroupName is used when a group is created without a name.
const defaultGroupName = "New Group"

// ConversationService owns conversation identity, membership, and group
// administration.
type ConversationService struct {
	conversations domain.ConversationRepository
	participants  domain.ParticipantRepository
	users         domain.UserRepository
}

func NewConversationService(
	conversations domain.ConversationRepository,
	participants domain.ParticipantRepository,
	users domain.UserRepository,
) *ConversationService {
	return &ConversationService{
		conversations: conversations,
		participants:  participants,
		users:         users,
	}
}

// ListForUser returns every conversation the user belongs to, most recently
// updated first.
func (s *ConversationService) ListForUser(ctx context.Context, userID int64) ([]*domain.Conversation, error) {
	return s.conversations.ListForUser(ctx, userID)
}

// Get returns the conversation when the caller is a participant. Everyone
// else gets ErrNotFound; membership doubles as the authorization boundary so
// outsiders cannot learn a conversation exists.
func (s *ConversationService) Get(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error) {
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

// FindOrCreateDirect returns the unique direct conversation between the two
// users, creating it on first contact. The normalized pair key carries a
// unique index, so when both sides race to create, exactly one insert wins
// and the loser re-runs the find.
func (s *ConversationService) FindOrCreateDirect(ctx context.Context, userID, otherUserID int64) (*domain.Conversation, error) {
	if userID == otherUserID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", domain.ErrValidation)
	}
	if _, err := s.users.GetByID(ctx, otherUserID); err != nil {
		return nil, err
	}

	key := domain.DirectKey(userID, otherUserID)
	conv, err := s.conversations.FindDirectByKey(ctx, key)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find direct conversation: %w", err)
	}

	conv = &domain.Conversation{
		Kind:      domain.ConversationDirect,
		DirectKey: &key,
	}
	err = s.conversations.Create(ctx, conv, []int64{userID, otherUserID})
	if errors.Is(err, domain.ErrDuplicate) {
		// The other side won the race; the conversation exists now.
		return s.conversations.FindDirectByKey(ctx, key)
	}
	if err != nil {
		return nil, fmt.Errorf("create direct conversation: %w", err)
	}
	metrics.ConversationsCreated.WithLabelValues(domain.ConversationDirect).Inc()
	return conv, nil
}

// CreateGroup creates a group conversation with the creator as its admin.
// The creator is always a member; duplicate participant IDs collapse.
func (s *ConversationService) CreateGroup(ctx context.Context, creatorID int64, participantIDs []int64, groupName string) (*domain.Conversation, error) {
	members := lo.Uniq(append([]int64{creatorID}, participantIDs...))
	if groupName == "" {
		groupName = defaultGroupName
	}

	conv := &domain.Conversation{
		Kind:         domain.ConversationGroup,
		GroupName:    &groupName,
		GroupAdminID: &creatorID,
	}
	if err := s.conversations.Create(ctx, conv, members); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	metrics.ConversationsCreated.WithLabelValues(domain.ConversationGroup).Inc()
	return conv, nil
}

// UpdateGroupInfo applies a partial metadata update. Only the group admin may
// edit; non-admin members get ErrForbidden, outsiders ErrNotFound.
func (s *ConversationService) UpdateGroupInfo(ctx context.Context, userID, conversationID int64, groupName, groupAvatar *string) (*domain.Conversation, error) {
	conv, err := s.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.IsGroup() {
		return nil, fmt.Errorf("%w: not a group conversation", domain.ErrValidation)
	}
	if conv.GroupAdminID == nil || *conv.GroupAdminID != userID {
		return nil, domain.ErrForbidden
	}
	if err := s.conversations.UpdateGroupInfo(ctx, conversationID, groupName, groupAvatar); err != nil {
		return nil, err
	}
	return s.conversations.GetByID(ctx, conversationID)
}

// Delete removes a conversation and all its messages. Any participant may
// delete; the cascade runs in one storage transaction so no reader observes
// a half-deleted conversation.
func (s *ConversationService) Delete(ctx context.Context, userID, conversationID int64) error {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return err
	}
	return s.conversations.DeleteCascade(ctx, conversationID)
}
