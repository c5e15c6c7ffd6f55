package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/security"
	"github.com/santanu-atta03/Ovara/internal/service"
)

func TestRegister(t *testing.T) {
	tokenSvc := security.NewTokenService("secret", time.Hour)
	hasher := security.NewPasswordHasher(4) // low cost for tests

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokenSvc, hasher)

		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "alice@example.com" && u.HashedPassword != "password1"
		})).Return(nil)

		user, err := svc.Register(context.Background(), service.RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password1",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.NotEmpty(t, user.Bio)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), tokenSvc, hasher)

		_, err := svc.Register(context.Background(), service.RegisterInput{Email: "a@b.c"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokenSvc, hasher)

		users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := svc.Register(context.Background(), service.RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password1",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}

func TestLogin(t *testing.T) {
	tokenSvc := security.NewTokenService("secret", time.Hour)
	hasher := security.NewPasswordHasher(4)
	hashed, _ := hasher.Hash("password1")

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokenSvc, hasher)

		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
			ID: 1, Email: "alice@example.com", HashedPassword: hashed,
		}, nil)
		users.On("SetPresence", mock.Anything, int64(1), "online", mock.Anything).Return(nil)

		resp, err := svc.Login(context.Background(), "alice@example.com", "password1")
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		id, err := tokenSvc.Parse(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokenSvc, hasher)

		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
			ID: 1, Email: "alice@example.com", HashedPassword: hashed,
		}, nil)

		_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(MockUserRepo)
		svc := service.NewAuthService(users, tokenSvc, hasher)

		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, err := svc.Login(context.Background(), "nobody@example.com", "password1")
		// Unknown account and bad password are indistinguishable to callers.
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
