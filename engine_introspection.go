package auth

import (
	"context"
	"errors"
	"time"

	"github.com/riculum/go-auth/internal"
)

// AccountStatus is the safe introspection view for an identity record.
// It intentionally excludes the password hash and the raw session token.
type AccountStatus struct {
	ID             string
	Email          string
	Enabled        bool
	Online         bool
	FailedAttempts int
	Locked         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HealthStatus is an on-demand backend health result.
type HealthStatus struct {
	RedisAvailable bool
	RedisLatency   time.Duration
}

// GetAccountStatus looks up an identity record by email and returns a
// sanitized view suitable for admin and support tooling.
//
// GetAccountStatus may return an error when input validation, dependency calls, or security checks fail.
// GetAccountStatus does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GetAccountStatus(ctx context.Context, email string) (*AccountStatus, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}

	user, err := e.users.FindByEmail(ctx, internal.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, e.storageFault(err)
	}

	status := toAccountStatus(user, e.config.Security.MaxLoginAttempts)
	return &status, nil
}

// GetLoginAttempts returns the persistent failed-attempt counter for a user.
//
// GetLoginAttempts may return an error when input validation, dependency calls, or security checks fail.
// GetLoginAttempts does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) GetLoginAttempts(ctx context.Context, userID string) (int, error) {
	if e == nil || e.users == nil {
		return 0, ErrEngineNotReady
	}
	if userID == "" {
		return 0, ErrUserNotFound
	}

	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, e.storageFault(err)
	}

	return user.FailedAttempts, nil
}

// Health describes the health operation and its observable behavior.
//
// Health does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Health(ctx context.Context) HealthStatus {
	if e == nil || e.sessionStore == nil {
		return HealthStatus{}
	}

	latency, err := e.sessionStore.Ping(ctx)
	return HealthStatus{
		RedisAvailable: err == nil,
		RedisLatency:   latency,
	}
}

func toAccountStatus(user UserRecord, maxAttempts int) AccountStatus {
	return AccountStatus{
		ID:             user.ID,
		Email:          user.Email,
		Enabled:        user.Enabled,
		Online:         user.Online,
		FailedAttempts: user.FailedAttempts,
		Locked:         maxAttempts > 0 && user.FailedAttempts >= maxAttempts,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
