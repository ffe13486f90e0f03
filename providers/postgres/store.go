package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	auth "github.com/riculum/go-auth"
)

// Schema is the table definition the store expects. Apply it with your
// migration tooling of choice.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id              UUID PRIMARY KEY,
	email           TEXT NOT NULL UNIQUE,
	password_hash   TEXT NOT NULL,
	failed_attempts INTEGER NOT NULL DEFAULT 0,
	enabled         BOOLEAN NOT NULL DEFAULT TRUE,
	session_token   TEXT NOT NULL DEFAULT '',
	online          BOOLEAN NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
)`

// Querier is the subset of *pgxpool.Pool the store uses. The pgxmock pool
// satisfies it, which keeps the store testable without a live database.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a PostgreSQL-backed credential store.
type Store struct {
	db Querier
}

// NewStore creates a [Store] on top of any [Querier].
func NewStore(db Querier) *Store {
	return &Store{db: db}
}

// NewStoreFromPool creates a [Store] bound to a pgxpool connection pool.
func NewStoreFromPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// EnsureSchema creates the users table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}
	return nil
}

const selectColumns = `id, email, password_hash, failed_attempts, enabled, session_token, online, created_at, updated_at`

// FindByEmail looks up an identity record by its unique email.
func (s *Store) FindByEmail(ctx context.Context, email string) (auth.UserRecord, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByID looks up an identity record by its UUID.
func (s *Store) FindByID(ctx context.Context, id string) (auth.UserRecord, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Insert persists a new identity record. A unique violation on the email
// column is reported as auth.ErrUserAlreadyExists.
func (s *Store) Insert(ctx context.Context, record auth.UserRecord) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (`+selectColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
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
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
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
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
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
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return auth.ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// Delete removes an identity record.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (auth.UserRecord, error) {
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
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.UserRecord{}, auth.ErrUserNotFound
		}
		return auth.UserRecord{}, fmt.Errorf("%w: %v", auth.ErrStorageFailure, err)
	}
	return record, nil
}
