package auth

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventLoginSuccess          = "login_success"
	auditEventLoginFailure          = "login_failure"
	auditEventLoginLocked           = "login_locked"
	auditEventLogoutSession         = "logout_session"
	auditEventRegisterSuccess       = "register_success"
	auditEventRegisterDuplicate     = "register_duplicate"
	auditEventPasswordChangeSuccess = "password_change_success"
	auditEventPasswordChangeInvalid = "password_change_invalid_old"
	auditEventAccountStatusChange   = "account_status_change"
	auditEventAccountUnlocked       = "account_unlocked"
	auditEventAccountDeleted        = "account_deleted"
	auditEventStorageFault          = "storage_fault"
)

// AuditErrorCode defines a public type used by auth APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidEmail     AuditErrorCode = "invalid_email"
	auditErrInvalidPassword  AuditErrorCode = "invalid_password"
	auditErrUserNotEnabled   AuditErrorCode = "user_not_enabled"
	auditErrTooManyAttempts  AuditErrorCode = "too_many_attempts"
	auditErrDuplicate        AuditErrorCode = "duplicate"
	auditErrUserNotFound     AuditErrorCode = "user_not_found"
	auditErrStorageFailure   AuditErrorCode = "storage_failure"
	auditErrNoSessionContext AuditErrorCode = "session_context_missing"
	auditErrInternal         AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	sessionCtx, _ := sessionContextFromContext(ctx)

	event := AuditEvent{
		Timestamp:      time.Now().UTC(),
		EventType:      eventType,
		UserID:         userID,
		SessionContext: sessionCtx,
		IP:             clientIPFromContext(ctx),
		Success:        success,
		Metadata:       metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidEmail):
		return auditErrInvalidEmail
	case errors.Is(err, ErrInvalidPassword):
		return auditErrInvalidPassword
	case errors.Is(err, ErrUserNotEnabled):
		return auditErrUserNotEnabled
	case errors.Is(err, ErrTooManyAttempts):
		return auditErrTooManyAttempts
	case errors.Is(err, ErrUserAlreadyExists):
		return auditErrDuplicate
	case errors.Is(err, ErrUserNotFound):
		return auditErrUserNotFound
	case errors.Is(err, ErrStorageFailure):
		return auditErrStorageFailure
	case errors.Is(err, ErrSessionContextMissing):
		return auditErrNoSessionContext
	default:
		return auditErrInternal
	}
}
