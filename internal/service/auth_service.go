package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/security"
)

// AuthService is the thin identity collaborator: registration, login, and
// logout. The messaging core never calls it; it only consumes the users the
// service creates.
type AuthService struct {
	users  domain.UserRepository
	tokens *security.TokenService
	hash   *security.PasswordHasher
}

func NewAuthService(users domain.UserRepository, tokens *security.TokenService, hash *security.PasswordHasher) *AuthService {
	return &AuthService{users: users, tokens: tokens, hash: hash}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}

	hashed, err := s.hash.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:           in.Name,
		Email:          in.Email,
		HashedPassword: hashed,
		Bio:            "Hey there! I am using Ovara",
		Theme:          "#1976D2",
	}
	// The unique index on email is the authority; a duplicate insert comes
	// back as ErrDuplicate regardless of interleaving.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: incorrect email or password", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hash.Verify(password, user.HashedPassword); err != nil {
		return nil, fmt.Errorf("%w: incorrect email or password", domain.ErrUnauthorized)
	}

	if err := s.users.SetPresence(ctx, user.ID, "online", time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("set presence: %w", err)
	}
	user.Status = "online"

	token, err := s.tokens.CreateForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer", User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.users.SetPresence(ctx, userID, "offline", time.Now().UTC())
}
