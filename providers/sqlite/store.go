package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	auth "github.com/riculum/go-auth"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              TEXT PRIMARY KEY,
	email           TEXT NOT NULL UNIQUE,
	password_hash   TEXT NOT NULL,
	failed_attempts INTEGER NOT NULL DEFAULT 0,
	enabled         INTEGER NOT NULL DEFAULT 1,
	session_token   TEXT NOT NULL DEFAULT '',
	online          INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMP NOT NULL,
	updated_at      TIMESTAMP NOT NULL
)`

// Store is a SQLite-backed credential store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and bootstraps the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

const selectColumns = `id, email, password_hash, failed_attempts, enabled, session_token, online, created_at, updated_at`

// FindByEmail looks up an identity record by its unique email.
func (s *Store) FindByEmail(ctx context.Context, email string) (auth.UserRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// FindByID looks up an identity record by its UUID.
func (s *Store) FindByID(ctx context.Context, id string) (auth.UserRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// Insert persists a new identity record.
func (s *Store) Insert(ctx context.Context, record auth.UserRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+selectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Email,
		record.PasswordHash,
		record.FailedAttempts,
		record.Enabled,
		record.SessionToken,
		record.Online,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}
	return nil
}

// UpdateFields applies a partial update. Nil fields are untouched; a zero
// update is a no-op success.
func (s *Store) UpdateFields(ctx context.Context, id string, update auth.UserUpdate) error {
	if update.IsZero() {
		return nil
	}

	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.PasswordHash != nil {
		add("password_hash", *update.PasswordHash)
	}
	if update.FailedAttempts != nil {
		add("failed_attempts", *update.FailedAttempts)
	}
	if update.Enabled != nil {
		add("enabled", *update.Enabled)
	}
	if update.SessionToken != nil {
		add("session_token", *update.SessionToken)
	}
	if update.Online != nil {
		add("online", *update.Online)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}
	if affected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// Delete removes an identity record.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}
	if affected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (auth.UserRecord, error) {
	var record auth.UserRecord
	err := row.Scan(
		&record.ID,
		&record.Email,
		&record.PasswordHash,
		&record.FailedAttempts,
		&record.Enabled,
		&record.SessionToken,
		&record.Online,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.UserRecord{}, auth.ErrUserNotFound
		}
		return auth.UserRecord{}, fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}
	return record, nil
}

// The driver has no typed error for constraint violations, so match on the
// message the SQLite engine produces.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
