package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/santanu-atta03/Ovara/internal/domain"
)

// Open opens a PostgreSQL database using the pgx stdlib driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate runs idempotent DDL migrations. Mirrors the sqlite schema; the two
// unique indexes back the addContact and findOrCreateDirect race-safety.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id              BIGSERIAL PRIMARY KEY,
			name            VARCHAR(100) NOT NULL,
			email           VARCHAR(100) UNIQUE NOT NULL,
			hashed_password VARCHAR(255) NOT NULL,
			phone           VARCHAR(30),
			avatar          TEXT NOT NULL DEFAULT '',
			bio             TEXT NOT NULL DEFAULT '',
			status          VARCHAR(10) NOT NULL DEFAULT 'offline',
			theme           VARCHAR(20) NOT NULL DEFAULT '#1976D2',
			dark_mode       BOOLEAN NOT NULL DEFAULT FALSE,
			last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id              BIGSERIAL PRIMARY KEY,
			owner_id        BIGINT NOT NULL REFERENCES users(id),
			contact_user_id BIGINT NOT NULL REFERENCES users(id),
			nickname        VARCHAR(100) NOT NULL DEFAULT '',
			blocked         BOOLEAN NOT NULL DEFAULT FALSE,
			added_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id             BIGSERIAL PRIMARY KEY,
			kind           VARCHAR(10) NOT NULL,
			group_name     VARCHAR(100),
			group_avatar   TEXT,
			group_admin_id BIGINT REFERENCES users(id),
			direct_key     VARCHAR(50),
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS conversation_participants (
			conversation_id BIGINT NOT NULL REFERENCES conversations(id),
			user_id         BIGINT NOT NULL REFERENCES users(id),
			position        INT NOT NULL DEFAULT 0,
			unread_count    INT NOT NULL DEFAULT 0,
			joined_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (conversation_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS messages (
			id              BIGSERIAL PRIMARY KEY,
			conversation_id BIGINT NOT NULL REFERENCES conversations(id),
			sender_id       BIGINT NOT NULL REFERENCES users(id),
			content         TEXT NOT NULL DEFAULT '',
			kind            VARCHAR(10) NOT NULL DEFAULT 'text',
			media_url       TEXT,
			media_type      TEXT,
			status          VARCHAR(10) NOT NULL DEFAULT 'sent',
			reply_to_id     BIGINT REFERENCES messages(id),
			deleted         BOOLEAN NOT NULL DEFAULT FALSE,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS message_receipts (
			message_id BIGINT NOT NULL REFERENCES messages(id),
			user_id    BIGINT NOT NULL REFERENCES users(id),
			read_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (message_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS message_reactions (
			message_id BIGINT NOT NULL REFERENCES messages(id),
			user_id    BIGINT NOT NULL REFERENCES users(id),
			emoji      VARCHAR(20) NOT NULL,
			PRIMARY KEY (message_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS message_hidden (
			message_id BIGINT NOT NULL REFERENCES messages(id),
			user_id    BIGINT NOT NULL REFERENCES users(id),
			PRIMARY KEY (message_id, user_id)
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_owner_target ON contacts(owner_id, contact_user_id);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_direct_key ON conversations(direct_key) WHERE direct_key IS NOT NULL;`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_owner_added ON contacts(owner_id, added_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_updated_at ON conversations(updated_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_conv_participants_user ON conversation_participants(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conv_created ON messages(conversation_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a unique-constraint fault
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
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
