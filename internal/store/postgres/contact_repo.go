package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/santanu-atta03/Ovara/internal/domain"
)

type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

var _ domain.ContactRepository = (*ContactRepo)(nil)

const contactColumns = `id, owner_id, contact_user_id, nickname, blocked, added_at`

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contacts (owner_id, contact_user_id, nickname)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.OwnerID, c.ContactUserID, c.Nickname).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, ownerID, contactID int64) (*domain.Contact, error) {
	c := &domain.Contact{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND owner_id = $2
	`, contactID, ownerID).Scan(
		&c.ID, &c.OwnerID, &c.ContactUserID, &c.Nickname, &c.Blocked, &c.AddedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID int64, includeBlocked bool) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1`
	if !includeBlocked {
		query += ` AND NOT blocked`
	}
	query += ` ORDER BY added_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		c := &domain.Contact{}
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.ContactUserID, &c.Nickname, &c.Blocked, &c.AddedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepo) UpdateNickname(ctx context.Context, ownerID, contactID int64, nickname string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET nickname = $1 WHERE id = $2 AND owner_id = $3
	`, nickname, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("update nickname: %w", err)
	}
	return requireAffected(res)
}

func (r *ContactRepo) Delete(ctx context.Context, ownerID, contactID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM contacts WHERE id = $1 AND owner_id = $2
	`, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return requireAffected(res)
}

func (r *ContactRepo) SetBlocked(ctx context.Context, ownerID, contactID int64, blocked bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET blocked = $1 WHERE id = $2 AND owner_id = $3
	`, blocked, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("set blocked: %w", err)
	}
	return requireAffected(res)
}

func (r *ContactRepo) IsBlocked(ctx context.Context, ownerID, targetUserID int64) (bool, error) {
	var blocked bool
	err := r.db.QueryRowContext(ctx, `
		SELECT blocked FROM contacts WHERE owner_id = $1 AND contact_user_id = $2
	`, ownerID, targetUserID).Scan(&blocked)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("is blocked: %w", err)
	}
	return blocked, nil
}
