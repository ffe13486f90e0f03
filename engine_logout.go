package auth

import (
	"context"
	"errors"

	"github.com/riculum/go-auth/internal"
	"github.com/riculum/go-auth/session"
)

// Logout ends the caller's session. Without a session context, or when no
// session entry exists for it, Logout is an idempotent no-op success.
// Otherwise it rotates the record-side token so captured copies go stale,
// marks the user offline, and destroys the session entry.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	sessionCtx, ok := sessionContextFromContext(ctx)
	if !ok {
		return nil
	}

	rec, err := e.sessionStore.Get(ctx, sessionCtx)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil
		}
		e.metricInc(MetricStorageFault)
		return e.storageFault(err)
	}

	token, err := internal.NewSessionToken()
	if err != nil {
		return err
	}

	offline := false
	update := UserUpdate{
		SessionToken: &token,
		Online:       &offline,
	}
	if err := e.users.UpdateFields(ctx, rec.UserID, update); err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricStorageFault)
			return e.storageFault(err)
		}
		// Record already gone; the session entry still has to go.
	}

	if err := e.sessionStore.Delete(ctx, sessionCtx); err != nil {
		e.metricInc(MetricStorageFault)
		return e.storageFault(err)
	}

	e.metricInc(MetricLogout)
	e.metricInc(MetricSessionInvalidated)
	e.emitAudit(ctx, auditEventLogoutSession, true, rec.UserID, nil, nil)
	return nil
}
