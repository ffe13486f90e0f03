package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/riculum/go-auth/session"
)

// Verify reports whether the caller's session context holds a live,
// authentic session. It is a double check: the token stored in the session
// entry must exactly match the token persisted on the identity record, and
// the comparison runs in constant time. A missing session entry, unknown
// user, or cleared record token all yield false without error; storage
// faults are reported as errors and never collapsed into false silently.
func (e *Engine) Verify(ctx context.Context) (bool, error) {
	if e == nil || e.users == nil {
		return false, ErrEngineNotReady
	}

	start := time.Now()
	ok, err := e.verifyInternal(ctx)
	e.metrics.Observe(MetricVerifyLatency, time.Since(start))

	switch {
	case err != nil:
		e.metricInc(MetricStorageFault)
	case ok:
		e.metricInc(MetricVerifySuccess)
	default:
		e.metricInc(MetricVerifyFailure)
	}

	return ok, err
}

func (e *Engine) verifyInternal(ctx context.Context) (bool, error) {
	sessionCtx, ok := sessionContextFromContext(ctx)
	if !ok {
		return false, nil
	}

	rec, err := e.sessionStore.Get(ctx, sessionCtx)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return false, nil
		}
		return false, e.storageFault(err)
	}

	user, err := e.users.FindByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, e.storageFault(err)
	}

	// A logged-out or rolled-back record has no token; nothing can match it.
	if user.SessionToken == "" || rec.Token == "" {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(rec.Token), []byte(user.SessionToken)) == 1, nil
}
