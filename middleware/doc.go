// Package middleware exposes HTTP adapters for cookie-based session
// enforcement built on top of auth.Engine verification.
//
// # Guards
//
//   - [RequireSession] — reads the session cookie, attaches the session
//     context, and rejects requests whose session does not verify.
//
// [EnsureSessionCookie] mints the session-context cookie on first contact so
// login handlers have a context id to bind the session to.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.Verify.
//
// # What this package must NOT do
//
//   - Compare session tokens directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from Engine.Verify.
package middleware
