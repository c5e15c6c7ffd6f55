package sqlite

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
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (owner_id, contact_user_id, nickname, blocked, added_at)
		VALUES (?, ?, ?, 0, CURRENT_TIMESTAMP)
	`, c.OwnerID, c.ContactUserID, c.Nickname)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	c.ID = id
	return nil
}

func (r *ContactRepo) GetByID(ctx context.Context, ownerID, contactID int64) (*domain.Contact, error) {
	c := &domain.Contact{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+` FROM contacts WHERE id = ? AND owner_id = ?
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
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = ?`
	if !includeBlocked {
		query += ` AND blocked = 0`
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
		UPDATE contacts SET nickname = ? WHERE id = ? AND owner_id = ?
	`, nickname, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("update nickname: %w", err)
	}
	return requireAffected(res)
}

func (r *ContactRepo) Delete(ctx context.Context, ownerID, contactID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM contacts WHERE id = ? AND owner_id = ?
	`, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return requireAffected(res)
}

func (r *ContactRepo) SetBlocked(ctx context.Context, ownerID, contactID int64, blocked bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET blocked = ? WHERE id = ? AND owner_id = ?
	`, blocked, contactID, ownerID)
	if err != nil {
		return fmt.Errorf("set blocked: %w", err)
	}
	return requireAffected(res)
}

func (r *ContactRepo) IsBlocked(ctx context.Context, ownerID, targetUserID int64) (bool, error) {
	var blocked bool
	err := r.db.QueryRowContext(ctx, `
		SELECT blocked FROM contacts WHERE owner_id = ? AND contact_user_id = ?
	`, ownerID, targetUserID).Scan(&blocked)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("is blocked: %w", err)
	}
	return blocked, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
