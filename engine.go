package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/riculum/go-auth/internal"
	"github.com/riculum/go-auth/password"
	"github.com/riculum/go-auth/session"
)

// Engine defines a public type used by auth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	sessionStore *session.Store
	audit        *auditDispatcher
	metrics      *Metrics
	passwordHash *password.Argon2
	users        UserStore

	// dummyHash is verified against on rejection branches so that a failed
	// login costs one argon2id derivation regardless of which check failed.
	dummyHash string
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// Login authenticates email and password against the credential store and,
// on success, issues a fresh session token bound to the caller's session
// context (see [WithSessionContext]).
//
// Checks run in a fixed priority order and the first failure wins: unknown
// email, disabled account, attempt lockout, wrong password. A wrong password
// increments the persistent failure counter; once the counter reaches the
// configured maximum the account stays locked until [Engine.UnlockAccount].
// The identity record is persisted before the session entry; if the session
// write fails the half-issued token is rolled back and the call reports
// [ErrStorageFailure].
func (e *Engine) Login(ctx context.Context, email, pass string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	sessionCtx, ok := sessionContextFromContext(ctx)
	if !ok {
		return ErrSessionContextMissing
	}

	err := e.loginInternal(ctx, sessionCtx, email, pass)
	switch {
	case err == nil:
		e.metricInc(MetricLoginSuccess)
		e.metricInc(MetricSessionCreated)
	case errors.Is(err, ErrTooManyAttempts):
		e.metricInc(MetricLoginLocked)
	case errors.Is(err, ErrUserNotEnabled):
		e.metricInc(MetricLoginDisabled)
	case errors.Is(err, ErrInvalidPassword), errors.Is(err, ErrInvalidEmail):
		e.metricInc(MetricLoginFailure)
		if errors.Is(err, ErrStorageFailure) {
			e.metricInc(MetricStorageFault)
		}
	default:
		e.metricInc(MetricStorageFault)
	}

	return err
}

func (e *Engine) loginInternal(ctx context.Context, sessionCtx, email, pass string) error {
	user, err := e.users.FindByEmail(ctx, internal.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.burnDummyVerify(pass)
			e.emitAudit(ctx, auditEventLoginFailure, false, "", ErrInvalidEmail, nil)
			return ErrInvalidEmail
		}
		return e.storageFault(err)
	}

	if !user.Enabled {
		e.burnDummyVerify(pass)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.ID, ErrUserNotEnabled, nil)
		return ErrUserNotEnabled
	}

	if user.FailedAttempts >= e.config.Security.MaxLoginAttempts {
		e.burnDummyVerify(pass)
		e.emitAudit(ctx, auditEventLoginLocked, false, user.ID, ErrTooManyAttempts, func() map[string]string {
			return map[string]string{"failed_attempts": fmt.Sprint(user.FailedAttempts)}
		})
		return ErrTooManyAttempts
	}

	match, err := e.passwordHash.Verify(pass, user.PasswordHash)
	if err != nil {
		// Stored hash is unreadable. Surface it as an infrastructure fault
		// instead of leaking a parse error to the caller.
		return e.storageFault(err)
	}

	if !match {
		attempts := user.FailedAttempts + 1
		if uerr := e.users.UpdateFields(ctx, user.ID, UserUpdate{FailedAttempts: &attempts}); uerr != nil {
			e.emitAudit(ctx, auditEventLoginFailure, false, user.ID, ErrInvalidPassword, nil)
			return errors.Join(ErrInvalidPassword, e.storageFault(uerr))
		}
		e.emitAudit(ctx, auditEventLoginFailure, false, user.ID, ErrInvalidPassword, func() map[string]string {
			return map[string]string{"failed_attempts": fmt.Sprint(attempts)}
		})
		return ErrInvalidPassword
	}

	token, err := internal.NewSessionToken()
	if err != nil {
		return err
	}

	zero := 0
	online := true
	update := UserUpdate{
		FailedAttempts: &zero,
		SessionToken:   &token,
		Online:         &online,
	}
	if err := e.users.UpdateFields(ctx, user.ID, update); err != nil {
		return e.storageFault(err)
	}

	rec := &session.Record{
		UserID:    user.ID,
		Token:     token,
		CreatedAt: time.Now().Unix(),
	}
	if err := e.sessionStore.Put(ctx, sessionCtx, rec); err != nil {
		e.rollbackSessionToken(ctx, user.ID)
		return e.storageFault(err)
	}

	e.emitAudit(ctx, auditEventLoginSuccess, true, user.ID, nil, nil)
	return nil
}

// rollbackSessionToken clears the record-side token after a failed session
// write so a half-issued login can never verify. Best effort.
func (e *Engine) rollbackSessionToken(ctx context.Context, userID string) {
	empty := ""
	offline := false
	update := UserUpdate{
		SessionToken: &empty,
		Online:       &offline,
	}
	if err := e.users.UpdateFields(ctx, userID, update); err != nil {
		log.Print("auth: session token rollback failed: ", err)
	}
}

func (e *Engine) storageFault(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageFailure) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorageFailure, err)
}

func (e *Engine) burnDummyVerify(pass string) {
	if e.dummyHash == "" {
		return
	}
	_, _ = e.passwordHash.Verify(pass, e.dummyHash)
}

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}
