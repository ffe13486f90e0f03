package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/riculum/go-auth/internal"
)

// Register creates a new identity record and returns its generated UUID.
// The email must be well formed and unused; the password is hashed with
// argon2id before anything touches the credential store. New accounts start
// enabled with a zero failure counter and no session token.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if e == nil || e.users == nil {
		return "", ErrEngineNotReady
	}

	email := internal.NormalizeEmail(req.Email)
	if err := internal.ValidateEmail(email); err != nil {
		return "", ErrInvalidEmail
	}

	hash, err := e.passwordHash.Hash(req.Password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	record := UserRecord{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := e.users.Insert(ctx, record); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventRegisterDuplicate, false, "", ErrUserAlreadyExists, func() map[string]string {
				return map[string]string{"email": email}
			})
			return "", ErrUserAlreadyExists
		}
		e.metricInc(MetricStorageFault)
		return "", e.storageFault(err)
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, record.ID, nil, nil)
	return record.ID, nil
}
