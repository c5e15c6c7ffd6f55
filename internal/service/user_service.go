package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/santanu-atta03/Ovara/internal/domain"
)

const searchLimit = 20

// UserService covers profile reads and mutations for the authenticated user.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

type ProfileUpdate struct {
	Name     *string
	Phone    *string
	Avatar   *string
	Bio      *string
	Theme    *string
	DarkMode *bool
}

// UpdateProfile applies the non-nil fields of upd and returns the stored user.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = upd.Phone
	}
	if upd.Avatar != nil {
		user.Avatar = *upd.Avatar
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}
	if upd.Theme != nil {
		user.Theme = *upd.Theme
	}
	if upd.DarkMode != nil {
		user.DarkMode = *upd.DarkMode
	}
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Search finds users by name or email fragment, excluding the caller.
func (s *UserService) Search(ctx context.Context, callerID int64, query string) ([]domain.Profile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}
	users, err := s.users.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	users = lo.Filter(users, func(u *domain.User, _ int) bool { return u.ID != callerID })
	return lo.Map(users, func(u *domain.User, _ int) domain.Profile { return u.PublicProfile() }), nil
}

// Heartbeat refreshes the caller's presence.
func (s *UserService) Heartbeat(ctx context.Context, id int64) error {
	return s.users.SetPresence(ctx, id, "online", time.Now().UTC())
}
