package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/service"
)

func newMessageService(convs *MockConversationRepo, parts *MockParticipantRepo, msgs *MockMessageRepo, contacts *MockContactRepo) *service.MessageService {
	return service.NewMessageService(convs, parts, msgs, contacts, 50)
}

func directConv(id int64) *domain.Conversation {
	return &domain.Conversation{ID: id, Kind: domain.ConversationDirect}
}

func TestAppend(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		contacts := new(MockContactRepo)
		svc := newMessageService(convs, parts, msgs, contacts)

		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(1)).Return(true, nil)
		parts.On("List", mock.Anything, int64(3)).Return([]*domain.Participant{
			{ConversationID: 3, UserID: 1},
			{ConversationID: 3, UserID: 2},
		}, nil)
		contacts.On("IsBlocked", mock.Anything, int64(2), int64(1)).Return(false, nil)
		msgs.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
			return m.Status == domain.StatusSent && m.Kind == domain.MessageText && m.SenderID == 1
		})).Return(nil)
		parts.On("IncrementUnread", mock.Anything, int64(3), int64(1)).Return(nil)
		convs.On("Touch", mock.Anything, int64(3)).Return(nil)

		msg, err := svc.Append(context.Background(), 1, service.AppendInput{
			ConversationID: 3,
			Content:        "hello",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusSent, msg.Status)
		parts.AssertExpectations(t)
	})

	t.Run("NonParticipant", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		svc := newMessageService(convs, parts, new(MockMessageRepo), new(MockContactRepo))

		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(9)).Return(false, nil)

		_, err := svc.Append(context.Background(), 9, service.AppendInput{ConversationID: 3, Content: "hi"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("BlockedByRecipient", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		contacts := new(MockContactRepo)
		svc := newMessageService(convs, parts, msgs, contacts)

		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(1)).Return(true, nil)
		parts.On("List", mock.Anything, int64(3)).Return([]*domain.Participant{
			{ConversationID: 3, UserID: 1},
			{ConversationID: 3, UserID: 2},
		}, nil)
		contacts.On("IsBlocked", mock.Anything, int64(2), int64(1)).Return(true, nil)

		_, err := svc.Append(context.Background(), 1, service.AppendInput{ConversationID: 3, Content: "hi"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
		msgs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EmptyTextContent", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		svc := newMessageService(convs, parts, new(MockMessageRepo), new(MockContactRepo))

		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(1)).Return(true, nil)

		_, err := svc.Append(context.Background(), 1, service.AppendInput{ConversationID: 3})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ContentTooLong", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		svc := newMessageService(convs, parts, new(MockMessageRepo), new(MockContactRepo))

		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(1)).Return(true, nil)

		_, err := svc.Append(context.Background(), 1, service.AppendInput{
			ConversationID: 3,
			Content:        strings.Repeat("a", 5001),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ReplyAcrossConversations", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		svc := newMessageService(convs, parts, msgs, new(MockContactRepo))

		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(1)).Return(true, nil)
		replyTo := int64(44)
		msgs.On("GetByID", mock.Anything, replyTo).Return(&domain.Message{ID: 44, ConversationID: 8}, nil)

		_, err := svc.Append(context.Background(), 1, service.AppendInput{
			ConversationID: 3,
			Content:        "hi",
			ReplyToID:      &replyTo,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("MediaWithoutURL", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		svc := newMessageService(convs, parts, new(MockMessageRepo), new(MockContactRepo))

		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(1)).Return(true, nil)

		_, err := svc.Append(context.Background(), 1, service.AppendInput{
			ConversationID: 3,
			Kind:           domain.MessageImage,
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestMarkRead(t *testing.T) {
	t.Run("FirstReadDecrementsUnread", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		svc := newMessageService(convs, parts, msgs, new(MockContactRepo))

		msgs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Message{ID: 7, ConversationID: 3}, nil)
		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(2)).Return(true, nil)
		msgs.On("MarkRead", mock.Anything, int64(7), int64(2), mock.Anything).Return(true, nil)
		parts.On("DecrementUnread", mock.Anything, int64(3), int64(2)).Return(nil)

		assert.NoError(t, svc.MarkRead(context.Background(), 2, 7))
		parts.AssertExpectations(t)
	})

	t.Run("RepeatReadIsNoOp", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		svc := newMessageService(convs, parts, msgs, new(MockContactRepo))

		msgs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Message{ID: 7, ConversationID: 3}, nil)
		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(2)).Return(true, nil)
		msgs.On("MarkRead", mock.Anything, int64(7), int64(2), mock.Anything).Return(false, nil)

		assert.NoError(t, svc.MarkRead(context.Background(), 2, 7))
		parts.AssertNotCalled(t, "DecrementUnread", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteForEveryone(t *testing.T) {
	t.Run("SenderOnly", func(t *testing.T) {
		msgs := new(MockMessageRepo)
		svc := newMessageService(new(MockConversationRepo), new(MockParticipantRepo), msgs, new(MockContactRepo))

		msgs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Message{ID: 7, SenderID: 1}, nil)

		err := svc.DeleteForEveryone(context.Background(), 2, 7)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		msgs.AssertNotCalled(t, "Tombstone", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		msgs := new(MockMessageRepo)
		svc := newMessageService(new(MockConversationRepo), new(MockParticipantRepo), msgs, new(MockContactRepo))

		msgs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Message{ID: 7, SenderID: 1}, nil)
		msgs.On("Tombstone", mock.Anything, int64(7)).Return(nil)

		assert.NoError(t, svc.DeleteForEveryone(context.Background(), 1, 7))
		msgs.AssertExpectations(t)
	})
}

func TestReact(t *testing.T) {
	t.Run("DeletedMessage", func(t *testing.T) {
		convs := new(MockConversationRepo)
		parts := new(MockParticipantRepo)
		msgs := new(MockMessageRepo)
		svc := newMessageService(convs, parts, msgs, new(MockContactRepo))

		msgs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Message{ID: 7, ConversationID: 3, Deleted: true}, nil)
		convs.On("GetByID", mock.Anything, int64(3)).Return(directConv(3), nil)
		parts.On("IsParticipant", mock.Anything, int64(3), int64(1)).Return(true, nil)

		_, err := svc.React(context.Background(), 1, 7, "👍")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("MissingEmoji", func(t *testing.T) {
		svc := newMessageService(new(MockConversationRepo), new(MockParticipantRepo), new(MockMessageRepo), new(MockContactRepo))

		_, err := svc.React(context.Background(), 1, 7, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestRedact(t *testing.T) {
	url := "/api/uploads/x.png"
	mt := "image/png"
	m := &domain.Message{Content: "secret", MediaURL: &url, MediaType: &mt, Deleted: true}
	service.Redact(m)
	assert.Empty(t, m.Content)
	assert.Nil(t, m.MediaURL)
	assert.Nil(t, m.MediaType)

	kept := &domain.Message{Content: "visible"}
	service.Redact(kept)
	assert.Equal(t, "visible", kept.Content)
}
