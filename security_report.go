package auth

import "time"

// SecurityReport summarizes the security-relevant configuration an engine was
// built with. It exposes no secrets and is safe to log or ship to an
// operations dashboard.
type SecurityReport struct {
	Argon2              PasswordConfigReport
	SessionTTL          time.Duration
	SlidingExpiration   bool
	MaxLoginAttempts    int
	StorageRetryEnabled bool
	AuditEnabled        bool
	MetricsEnabled      bool
}

// PasswordConfigReport defines a public type used by auth APIs.
//
// PasswordConfigReport instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfigReport struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// SecurityReport describes the securityreport operation and its observable behavior.
//
// SecurityReport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		Argon2: PasswordConfigReport{
			Memory:      e.config.Password.Memory,
			Time:        e.config.Password.Time,
			Parallelism: e.config.Password.Parallelism,
			SaltLength:  e.config.Password.SaltLength,
			KeyLength:   e.config.Password.KeyLength,
		},
		SessionTTL:          e.config.Session.TTL,
		SlidingExpiration:   e.config.Session.SlidingExpiration,
		MaxLoginAttempts:    e.config.Security.MaxLoginAttempts,
		StorageRetryEnabled: e.config.Storage.RetryEnabled,
		AuditEnabled:        e.config.Audit.Enabled,
		MetricsEnabled:      e.config.Metrics.Enabled,
	}
}
