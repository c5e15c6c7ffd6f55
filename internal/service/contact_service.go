package service

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/santanu-atta03/Ovara/internal/domain"
	"github.com/santanu-atta03/Ovara/internal/metrics"
)

// ContactService owns the directed contact relationship between users,
// including blocking.
type ContactService struct {
	contacts domain.ContactRepository
	users    domain.UserRepository
}

func NewContactService(contacts domain.ContactRepository, users domain.UserRepository) *ContactService {
	return &ContactService{contacts: contacts, users: users}
}

// List returns the owner's non-blocked contacts, newest first, each enriched
// with the target user's public profile.
func (s *ContactService) List(ctx context.Context, ownerID int64) ([]*domain.ContactView, error) {
	contacts, err := s.contacts.ListByOwner(ctx, ownerID, false)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	userIDs := lo.Map(contacts, func(c *domain.Contact, _ int) int64 { return c.ContactUserID })
	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load contact users: %w", err)
	}
	byID := lo.SliceToMap(users, func(u *domain.User) (int64, *domain.User) { return u.ID, u })

	views := make([]*domain.ContactView, 0, len(contacts))
	for _, c := range contacts {
		v := &domain.ContactView{Contact: *c}
		if u, ok := byID[c.ContactUserID]; ok {
			v.User = u.PublicProfile()
		}
		views = append(views, v)
	}
	return views, nil
}

// Add creates a contact record for (owner, target). The storage-level unique
// index on the pair makes concurrent duplicate adds safe; the violation
// surfaces as ErrDuplicate.
func (s *ContactService) Add(ctx context.Context, ownerID, targetUserID int64, nickname string) (*domain.ContactView, error) {
	if targetUserID == ownerID {
		return nil, domain.ErrSelfReference
	}

	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if nickname == "" {
		nickname = target.Name
	}

	contact := &domain.Contact{
		OwnerID:       ownerID,
		ContactUserID: targetUserID,
		Nickname:      nickname,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	metrics.ContactsAdded.Inc()

	// Create does not round-trip added_at; re-fetch so the caller sees the
	// stored timestamps.
	stored, err := s.contacts.GetByID(ctx, ownerID, contact.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ContactView{Contact: *stored, User: target.PublicProfile()}, nil
}

// Rename overwrites the contact's nickname. Only the owner can reach their
// own contacts; anything else is ErrNotFound.
func (s *ContactService) Rename(ctx context.Context, ownerID, contactID int64, nickname string) (*domain.ContactView, error) {
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", domain.ErrValidation)
	}
	if err := s.contacts.UpdateNickname(ctx, ownerID, contactID, nickname); err != nil {
		return nil, err
	}
	return s.view(ctx, ownerID, contactID)
}

// Remove deletes the relationship entirely. Conversations are unaffected.
func (s *ContactService) Remove(ctx context.Context, ownerID, contactID int64) error {
	return s.contacts.Delete(ctx, ownerID, contactID)
}

// ToggleBlock flips the blocked flag and returns the updated contact.
// A blocked relationship stops the blocked party's new messages into a
// direct conversation with the owner; MessageService enforces that.
func (s *ContactService) ToggleBlock(ctx context.Context, ownerID, contactID int64) (*domain.ContactView, error) {
	contact, err := s.contacts.GetByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	if err := s.contacts.SetBlocked(ctx, ownerID, contactID, !contact.Blocked); err != nil {
		return nil, err
	}
	return s.view(ctx, ownerID, contactID)
}

func (s *ContactService) view(ctx context.Context, ownerID, contactID int64) (*domain.ContactView, error) {
	contact, err := s.contacts.GetByID(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}
	v := &domain.ContactView{Contact: *contact}
	if u, err := s.users.GetByID(ctx, contact.ContactUserID); err == nil {
		v.User = u.PublicProfile()
	}
	return v, nil
}
