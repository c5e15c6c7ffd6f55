package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/santanu-atta03/Ovara/internal/domain"
)

// ConversationSummary is the denormalized view a client renders in its
// conversation list: the conversation, its participants' public profiles,
// the last message visible to the viewer, and the viewer's unread count.
type ConversationSummary struct {
	domain.Conversation
	Participants []domain.Profile `json:"participants"`
	LastMessage  *domain.Message  `json:"last_message,omitempty"`
	UnreadCount  int              `json:"unread_count"`
}

// SummaryService derives conversation summaries from the conversation and
// message stores. It holds no state and has no side effects; every summary
// is recomputed from the underlying records, so the "last message" can never
// drift from the message log.
type SummaryService struct {
	participants domain.ParticipantRepository
	messages     domain.MessageRepository
}

func NewSummaryService(participants domain.ParticipantRepository, messages domain.MessageRepository) *SummaryService {
	return &SummaryService{participants: participants, messages: messages}
}

// Project builds the viewer's summary of a single conversation.
func (s *SummaryService) Project(ctx context.Context, conv *domain.Conversation, viewerID int64) (*ConversationSummary, error) {
	users, err := s.participants.ListUsers(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}

	summary := &ConversationSummary{
		Conversation: *conv,
		Participants: lo.Map(users, func(u *domain.User, _ int) domain.Profile {
			return u.PublicProfile()
		}),
	}

	last, err := s.messages.LastVisible(ctx, conv.ID, viewerID)
	switch {
	case err == nil:
		Redact(last)
		summary.LastMessage = last
	case errors.Is(err, domain.ErrNotFound):
		// no visible messages yet
	default:
		return nil, fmt.Errorf("load last message: %w", err)
	}

	unread, err := s.participants.UnreadCount(ctx, conv.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load unread count: %w", err)
	}
	summary.UnreadCount = unread
	return summary, nil
}

// ProjectAll builds summaries for a list of conversations, preserving order.
func (s *SummaryService) ProjectAll(ctx context.Context, convs []*domain.Conversation, viewerID int64) ([]*ConversationSummary, error) {
	summaries := make([]*ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary, err := s.Project(ctx, conv, viewerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
