package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/santanu-atta03/Ovara/internal/domain"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

var _ domain.MessageRepository = (*MessageRepo)(nil)

const messageColumns = `id, conversation_id, sender_id, content, kind, media_url, media_type, status, reply_to_id, deleted, created_at`

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content, kind, media_url, media_type, status, reply_to_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, m.ConversationID, m.SenderID, m.Content, m.Kind, m.MediaURL, m.MediaType, m.Status, m.ReplyToID).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	m := &domain.Message{}
	err := r.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id).Scan(
		&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Kind,
		&m.MediaURL, &m.MediaType, &m.Status, &m.ReplyToID, &m.Deleted, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (r *MessageRepo) ListForConversation(ctx context.Context, conversationID, viewerID int64, limit, offset int) ([]*domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages m
		WHERE m.conversation_id = $1
		AND NOT EXISTS (
			SELECT 1 FROM message_hidden h
			WHERE h.message_id = m.id AND h.user_id = $2
		)
		ORDER BY m.created_at ASC, m.id ASC
		LIMIT $3 OFFSET $4
	`, conversationID, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		m := &domain.Message{}
		if err := rows.Scan(
			&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Kind,
			&m.MediaURL, &m.MediaType, &m.Status, &m.ReplyToID, &m.Deleted, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAnnotations(ctx, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *MessageRepo) LastVisible(ctx context.Context, conversationID, viewerID int64) (*domain.Message, error) {
	m := &domain.Message{}
	err := r.db.QueryRowContext(ctx, `
		SELECT `+messageColumns+`
		FROM messages m
		WHERE m.conversation_id = $1
		AND NOT EXISTS (
			SELECT 1 FROM message_hidden h
			WHERE h.message_id = m.id AND h.user_id = $2
		)
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT 1
	`, conversationID, viewerID).Scan(
		&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.Kind,
		&m.MediaURL, &m.MediaType, &m.Status, &m.ReplyToID, &m.Deleted, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("last visible message: %w", err)
	}
	if err := r.loadAnnotations(ctx, []*domain.Message{m}); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MessageRepo) MarkDelivered(ctx context.Context, messageID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE messages SET status = $1 WHERE id = $2 AND status = $3
	`, domain.StatusDelivered, messageID, domain.StatusSent)
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	return nil
}

func (r *MessageRepo) MarkRead(ctx context.Context, messageID, userID int64, readAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO message_receipts (message_id, user_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (message_id, user_id) DO NOTHING
	`, messageID, userID, readAt)
	if err != nil {
		return false, fmt.Errorf("insert receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		UPDATE messages SET status = $1 WHERE id = $2 AND status IN ($3, $4)
	`, domain.StatusRead, messageID, domain.StatusSent, domain.StatusDelivered); err != nil {
		return false, fmt.Errorf("promote status: %w", err)
	}
	return n > 0, nil
}

func (r *MessageRepo) UpsertReaction(ctx context.Context, messageID, userID int64, emoji string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO message_reactions (message_id, user_id, emoji)
		VALUES ($1, $2, $3)
		ON CONFLICT (message_id, user_id) DO UPDATE SET emoji = EXCLUDED.emoji
	`, messageID, userID, emoji)
	if err != nil {
		return fmt.Errorf("upsert reaction: %w", err)
	}
	return nil
}

func (r *MessageRepo) Tombstone(ctx context.Context, messageID int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE messages
		SET deleted = TRUE, content = '', media_url = NULL, media_type = NULL
		WHERE id = $1
	`, messageID)
	if err != nil {
		return fmt.Errorf("tombstone message: %w", err)
	}
	return requireAffected(res)
}

func (r *MessageRepo) HideForUser(ctx context.Context, messageID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO message_hidden (message_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (message_id, user_id) DO NOTHING
	`, messageID, userID)
	if err != nil {
		return fmt.Errorf("hide message: %w", err)
	}
	return nil
}

func (r *MessageRepo) loadAnnotations(ctx context.Context, msgs []*domain.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Message, len(msgs))
	ids := make([]int64, 0, len(msgs))
	for _, m := range msgs {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT message_id, user_id, read_at FROM message_receipts
		WHERE message_id = ANY($1) ORDER BY read_at ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("load receipts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var msgID int64
		var rr domain.ReadReceipt
		if err := rows.Scan(&msgID, &rr.UserID, &rr.ReadAt); err != nil {
			return fmt.Errorf("scan receipt: %w", err)
		}
		if m := byID[msgID]; m != nil {
			m.ReadBy = append(m.ReadBy, rr)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rrows, err := r.db.QueryContext(ctx, `
		SELECT message_id, user_id, emoji FROM message_reactions
		WHERE message_id = ANY($1) ORDER BY user_id ASC
	`, ids)
	if err != nil {
		return fmt.Errorf("load reactions: %w", err)
	}
	defer rrows.Close()
	for rrows.Next() {
		var msgID int64
		var rx domain.Reaction
		if err := rrows.Scan(&msgID, &rx.UserID, &rx.Emoji); err != nil {
			return fmt.Errorf("scan reaction: %w", err)
		}
		if m := byID[msgID]; m != nil {
			m.Reactions = append(m.Reactions, rx)
		}
	}
	return rrows.Err()
}
