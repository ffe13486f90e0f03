package auth

import (
	"testing"
	"time"
)

func TestSecurityReportReflectsConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Session.TTL = 2 * time.Hour
	cfg.Session.SlidingExpiration = false
	cfg.Security.MaxLoginAttempts = 3
	cfg.Storage.RetryEnabled = true
	cfg.Audit.Enabled = true
	cfg.Metrics.Enabled = true

	engine, _, _ := buildTestEngine(t, cfg)
	report := engine.SecurityReport()

	if report.Argon2.Memory != cfg.Password.Memory {
		t.Fatalf("Argon2.Memory = %d, want %d", report.Argon2.Memory, cfg.Password.Memory)
	}
	if report.Argon2.Time != cfg.Password.Time {
		t.Fatalf("Argon2.Time = %d, want %d", report.Argon2.Time, cfg.Password.Time)
	}
	if report.SessionTTL != 2*time.Hour {
		t.Fatalf("SessionTTL = %s, want 2h", report.SessionTTL)
	}
	if report.SlidingExpiration {
		t.Fatal("SlidingExpiration should be false")
	}
	if report.MaxLoginAttempts != 3 {
		t.Fatalf("MaxLoginAttempts = %d, want 3", report.MaxLoginAttempts)
	}
	if !report.StorageRetryEnabled {
		t.Fatal("StorageRetryEnabled should be true")
	}
	if !report.AuditEnabled {
		t.Fatal("AuditEnabled should be true")
	}
	if !report.MetricsEnabled {
		t.Fatal("MetricsEnabled should be true")
	}
}

func TestSecurityReportNilEngine(t *testing.T) {
	var engine *Engine

	report := engine.SecurityReport()
	if report.MaxLoginAttempts != 0 || report.SessionTTL != 0 {
		t.Fatalf("expected zero report for nil engine, got %+v", report)
	}
}
