// Package auth provides a credential-verification engine with argon2id password
// hashing, Redis-backed server-side sessions, and attempt-based account lockout.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// auth is the public surface. It exposes [Engine], [Builder], [Config], and value types
// (UserRecord, MetricsSnapshot, etc.). Credential persistence is injected through the
// [UserStore] interface; reference adapters live under providers/. Session persistence,
// password hashing, and token generation live in their own sub-packages.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or encoding details in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is allocation-only
//     until Build).
//   - Import any sub-package that re-imports auth (no import cycles).
//
// # Performance contract
//
// Verify is the hot path. It performs one Redis round-trip and one credential-store read
// per call, and compares tokens in constant time. Login additionally pays one argon2id
// derivation on every branch so that rejection latency does not reveal which check failed.
package auth
