package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/service"
)

func TestProjectSummary(t *testing.T) {
	conv := &domain.Conversation{ID: 3, Kind: domain.ConversationDirect}

	t.Run("WithLastMessage", func(t *testing.T) {
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		svc := service.NewSummaryService(parts, msgs)

		parts.On("ListUsers", mock.Anything, int64(3)).Return([]*domain.User{
			{ID: 1, Name: "Alice", HashedPassword: "secret"},
			{ID: 2, Name: "Bob"},
		}, nil)
		msgs.On("LastVisible", mock.Anything, int64(3), int64(1)).Return(&domain.Message{
			ID: 7, ConversationID: 3, SenderID: 2, Content: "hey",
		}, nil)
		parts.On("UnreadCount", mock.Anything, int64(3), int64(1)).Return(4, nil)

		summary, err := svc.Project(context.Background(), conv, 1)
		assert.NoError(t, err)
		assert.Len(t, summary.Participants, 2)
		assert.Equal(t, "hey", summary.LastMessage.Content)
		assert.Equal(t, 4, summary.UnreadCount)
	})

	t.Run("EmptyConversation", func(t *testing.T) {
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		svc := service.NewSummaryService(parts, msgs)

		parts.On("ListUsers", mock.Anything, int64(3)).Return([]*domain.User{{ID: 1}, {ID: 2}}, nil)
		msgs.On("LastVisible", mock.Anything, int64(3), int64(1)).Return(nil, domain.ErrNotFound)
		parts.On("UnreadCount", mock.Anything, int64(3), int64(1)).Return(0, nil)

		summary, err := svc.Project(context.Background(), conv, 1)
		assert.NoError(t, err)
		assert.Nil(t, summary.LastMessage)
		assert.Zero(t, summary.UnreadCount)
	})

	t.Run("TombstonedLastMessageIsRedacted", func(t *testing.T) {
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		svc := service.NewSummaryService(parts, msgs)

		parts.On("ListUsers", mock.Anything, int64(3)).Return([]*domain.User{{ID: 1}, {ID: 2}}, nil)
		msgs.On("LastVisible", mock.Anything, int64(3), int64(1)).Return(&domain.Message{
			ID: 7, ConversationID: 3, Content: "leaked", Deleted: true,
		}, nil)
		parts.On("UnreadCount", mock.Anything, int64(3), int64(1)).Return(0, nil)

		summary, err := svc.Project(context.Background(), conv, 1)
		assert.NoError(t, err)
		assert.True(t, summary.LastMessage.Deleted)
		assert.Empty(t, summary.LastMessage.Content)
	})
}
