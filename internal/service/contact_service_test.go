package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/service"
)

func TestAddContact(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		target := &domain.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
		users.On("GetByID", mock.Anything, int64(2)).Return(target, nil)
		contacts.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Contact) bool {
			return c.OwnerID == 1 && c.ContactUserID == 2 && c.Nickname == "Bob"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Contact).ID = 10
		}).Return(nil)
		contacts.On("GetByID", mock.Anything, int64(1), int64(10)).Return(&domain.Contact{
			ID: 10, OwnerID: 1, ContactUserID: 2, Nickname: "Bob",
		}, nil)

		view, err := svc.Add(context.Background(), 1, 2, "")
		assert.NoError(t, err)
		assert.Equal(t, "Bob", view.Nickname)
		assert.Equal(t, int64(2), view.User.ID)
	})

	t.Run("Self", func(t *testing.T) {
		svc := service.NewContactService(new(MockContactRepo), new(MockUserRepo))

		view, err := svc.Add(context.Background(), 1, 1, "")
		assert.ErrorIs(t, err, domain.ErrSelfReference)
		assert.Nil(t, view)
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		users.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		view, err := svc.Add(context.Background(), 1, 99, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, view)
	})

	t.Run("Duplicate", func(t *testing.T) {
		contacts := new(MockContactRepo)
		users := new(MockUserRepo)
		svc := service.NewContactService(contacts, users)

		users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Name: "Bob"}, nil)
		contacts.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		view, err := svc.Add(context.Background(), 1, 2, "")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.Nil(t, view)
	})
}

func TestRenameContact(t *testing.T) {
	t.Run("EmptyNickname", func(t *testing.T) {
		svc := service.NewContactService(new(MockContactRepo), new(MockUserRepo))

		view, err := svc.Rename(context.Background(), 1, 10, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Nil(t, view)
	})

	t.Run("NotOwned", func(t *testing.T) {
		contacts := new(MockContactRepo)
		svc := service.NewContactService(contacts, new(MockUserRepo))

		contacts.On("UpdateNickname", mock.Anything, int64(1), int64(10), "Rob").Return(domain.ErrNotFound)

		view, err := svc.Rename(context.Background(), 1, 10, "Rob")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, view)
	})
}

func TestToggleBlock(t *testing.T) {
	contacts := new(MockContactRepo)
	users := new(MockUserRepo)
	svc := service.NewContactService(contacts, users)

	contacts.On("GetByID", mock.Anything, int64(1), int64(10)).Return(&domain.Contact{
		ID: 10, OwnerID: 1, ContactUserID: 2, Blocked: false,
	}, nil).Once()
	contacts.On("SetBlocked", mock.Anything, int64(1), int64(10), true).Return(nil)
	contacts.On("GetByID", mock.Anything, int64(1), int64(10)).Return(&domain.Contact{
		ID: 10, OwnerID: 1, ContactUserID: 2, Blocked: true,
	}, nil)
	users.On("GetByID", mock.Anything, int64(2)).Return(&domain.User{ID: 2, Name: "Bob"}, nil)

	view, err := svc.ToggleBlock(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.True(t, view.Blocked)
	contacts.AssertExpectations(t)
}

func TestListContacts(t *testing.T) {
	contacts := new(MockContactRepo)
	users := new(MockUserRepo)
	svc := service.NewContactService(contacts, users)

	contacts.On("ListByOwner", mock.Anything, int64(1), false).Return([]*domain.Contact{
		{ID: 11, OwnerID: 1, ContactUserID: 3, Nickname: "Carol"},
		{ID: 10, OwnerID: 1, ContactUserID: 2, Nickname: "Bob"},
	}, nil)
	users.On("GetByIDs", mock.Anything, []int64{3, 2}).Return([]*domain.User{
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Carol"},
	}, nil)

	views, err := svc.List(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "Carol", views[0].User.Name)
	assert.Equal(t, "Bob", views[1].User.Name)
}
