package auth

import (
	"context"
	"time"
)

// UserRecord is the full identity record persisted by a [UserStore].
// It carries the credential hash, lockout counter, enabled flag, and the
// server-side session token that [Engine.Verify] compares against.
type UserRecord struct {
	ID             string
	Email          string
	PasswordHash   string
	FailedAttempts int
	Enabled        bool
	SessionToken   string
	Online         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserUpdate is a partial update applied by [UserStore.UpdateFields].
// Nil fields are left untouched.
type UserUpdate struct {
	Email          *string
	PasswordHash   *string
	FailedAttempts *int
	Enabled        *bool
	SessionToken   *string
	Online         *bool
}

// IsZero reports whether the update carries no fields.
func (u UserUpdate) IsZero() bool {
	return u.Email == nil &&
		u.PasswordHash == nil &&
		u.FailedAttempts == nil &&
		u.Enabled == nil &&
		u.SessionToken == nil &&
		u.Online == nil
}

// RegisterRequest is the input for [Engine.Register].
type RegisterRequest struct {
	Email    string
	Password string
}

// UserStore is the interface that callers must implement to integrate the
// engine with their credential database. Reference adapters live under
// providers/ (postgres, sqlite, memory).
//
// Lookup methods return [ErrUserNotFound] when no record matches. Insert
// returns [ErrUserAlreadyExists] on an email uniqueness conflict. Any
// infrastructure fault must be returned wrapped in [ErrStorageFailure] so
// the engine can distinguish it from deterministic outcomes.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (UserRecord, error)
	FindByID(ctx context.Context, id string) (UserRecord, error)
	Insert(ctx context.Context, record UserRecord) error
	UpdateFields(ctx context.Context, id string, update UserUpdate) error
	Delete(ctx context.Context, id string) error
}
