package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"fretebot/domain/entities"
	"fretebot/domain/interfaces"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS portal_sessions (
	account  TEXT PRIMARY KEY,
	state    BLOB NOT NULL,
	saved_at TIMESTAMP NOT NULL
);
`

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore - creates a session store on an opened database,
// applying the schema if needed. The caller owns the db handle.
func NewSQLiteStore(db *sql.DB) (interfaces.SessionStore, error) {
	if _, err := db.Exec(sessionSchema); err != nil {
		return nil, fmt.Errorf("applying session schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

// OpenSQLite opens (or creates) the session database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	// modernc sqlite is serialized per connection; one is enough here
	db.SetMaxOpenConns(1)
	return db, nil
}

// Load - loads saved session state for the account, nil when none
func (s *sqliteStore) Load(ctx context.Context, account string) (entities.SessionState, error) {
	var state []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM portal_sessions WHERE account = ?`, account).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entities.SessionState(state), nil
}

// Save - replaces the saved session state for the account
func (s *sqliteStore) Save(ctx context.Context, account string, state entities.SessionState) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO portal_sessions (account, state, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(account) DO UPDATE SET state = excluded.state, saved_at = excluded.saved_at`,
		account, []byte(state), time.Now().UTC())
	return err
}

// Delete - removes the saved session state for the account
func (s *sqliteStore) Delete(ctx context.Context, account string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM portal_sessions WHERE account = ?`, account)
	return err
}
