package internaldefs

import (
	auth "github.com/riculum/go-auth"
)

// CounterDef defines a public type used by auth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   auth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by auth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   auth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: auth.MetricLoginSuccess, Name: "auth_login_success_total", Help: "Successful login attempts."},
	{ID: auth.MetricLoginFailure, Name: "auth_login_failure_total", Help: "Failed login attempts."},
	{ID: auth.MetricLoginLocked, Name: "auth_login_locked_total", Help: "Login attempts rejected by the attempt lockout."},
	{ID: auth.MetricLoginDisabled, Name: "auth_login_disabled_total", Help: "Login attempts against disabled accounts."},
	{ID: auth.MetricRegisterSuccess, Name: "auth_register_success_total", Help: "Successful account registrations."},
	{ID: auth.MetricRegisterDuplicate, Name: "auth_register_duplicate_total", Help: "Registrations rejected as duplicate."},
	{ID: auth.MetricLogout, Name: "auth_logout_total", Help: "Logout operations."},
	{ID: auth.MetricVerifySuccess, Name: "auth_verify_success_total", Help: "Session verifications that passed."},
	{ID: auth.MetricVerifyFailure, Name: "auth_verify_failure_total", Help: "Session verifications that failed."},
	{ID: auth.MetricSessionCreated, Name: "auth_session_created_total", Help: "Created sessions."},
	{ID: auth.MetricSessionInvalidated, Name: "auth_session_invalidated_total", Help: "Invalidated sessions."},
	{ID: auth.MetricStorageFault, Name: "auth_storage_fault_total", Help: "Operations that hit a storage fault."},
	{ID: auth.MetricPasswordChangeSuccess, Name: "auth_password_change_success_total", Help: "Successful password changes."},
	{ID: auth.MetricPasswordChangeInvalidOld, Name: "auth_password_change_invalid_old_total", Help: "Password change attempts with invalid old password."},
	{ID: auth.MetricAccountUnlocked, Name: "auth_account_unlocked_total", Help: "Account unlock operations."},
	{ID: auth.MetricAccountDisabled, Name: "auth_account_disabled_total", Help: "Account disable operations."},
	{ID: auth.MetricAccountDeleted, Name: "auth_account_deleted_total", Help: "Account delete operations."},
}

// HistogramDefs is an exported constant or variable used by the authentication engine.
var HistogramDefs = []HistogramDef{
	{ID: auth.MetricVerifyLatency, Name: "auth_verify_latency_seconds", Help: "Verify latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets copies a raw bucket slice into the fixed 8-bucket layout.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
