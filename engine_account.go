package auth

import (
	"context"
	"errors"
	"fmt"
)

// UnlockAccount resets the failed-attempt counter to zero. It is the only
// path out of the [ErrTooManyAttempts] lockout, which never expires on its
// own; wire it to whatever administrative or support action your product
// uses.
func (e *Engine) UnlockAccount(ctx context.Context, userID string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	zero := 0
	if err := e.users.UpdateFields(ctx, userID, UserUpdate{FailedAttempts: &zero}); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		e.metricInc(MetricStorageFault)
		return e.storageFault(err)
	}

	e.metricInc(MetricAccountUnlocked)
	e.emitAudit(ctx, auditEventAccountUnlocked, true, userID, nil, nil)
	return nil
}

// SetAccountEnabled flips the enabled flag. Disabling an account makes every
// subsequent login fail with [ErrUserNotEnabled]; it does not destroy an
// already-issued session.
func (e *Engine) SetAccountEnabled(ctx context.Context, userID string, enabled bool) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	if err := e.users.UpdateFields(ctx, userID, UserUpdate{Enabled: &enabled}); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		e.metricInc(MetricStorageFault)
		return e.storageFault(err)
	}

	if !enabled {
		e.metricInc(MetricAccountDisabled)
	}
	e.emitAudit(ctx, auditEventAccountStatusChange, true, userID, nil, func() map[string]string {
		return map[string]string{"enabled": fmt.Sprint(enabled)}
	})
	return nil
}

// DeleteUser removes the identity record. Session entries pointing at the
// deleted user fail verification on their next check.
func (e *Engine) DeleteUser(ctx context.Context, userID string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	if err := e.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		e.metricInc(MetricStorageFault)
		return e.storageFault(err)
	}

	e.metricInc(MetricAccountDeleted)
	e.emitAudit(ctx, auditEventAccountDeleted, true, userID, nil, nil)
	return nil
}

// ChangePassword verifies the current password and replaces the stored hash.
// The record-side session token is cleared so existing sessions stop
// verifying and the user has to log in again with the new password.
func (e *Engine) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		e.metricInc(MetricStorageFault)
		return e.storageFault(err)
	}

	match, err := e.passwordHash.Verify(oldPassword, user.PasswordHash)
	if err != nil {
		return e.storageFault(err)
	}
	if !match {
		e.metricInc(MetricPasswordChangeInvalidOld)
		e.emitAudit(ctx, auditEventPasswordChangeInvalid, false, userID, ErrInvalidPassword, nil)
		return ErrInvalidPassword
	}

	hash, err := e.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}

	empty := ""
	offline := false
	update := UserUpdate{
		PasswordHash: &hash,
		SessionToken: &empty,
		Online:       &offline,
	}
	if err := e.users.UpdateFields(ctx, userID, update); err != nil {
		e.metricInc(MetricStorageFault)
		return e.storageFault(err)
	}

	e.metricInc(MetricPasswordChangeSuccess)
	e.emitAudit(ctx, auditEventPasswordChangeSuccess, true, userID, nil, nil)
	return nil
}
