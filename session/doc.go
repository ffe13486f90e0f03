// Package session provides Redis-backed session persistence and compact binary
// record encoding for authentication hot paths.
//
// # Binary encoding
//
// Records are stored in Redis as a compact binary format with a leading schema
// version byte. The encoder is append-only: new versions add fields but never
// reinterpret old ones.
//
// # Architecture boundaries
//
// This package owns the [Store] (Redis operations) and the [Record] model. It does
// NOT compare tokens or enforce authentication policy — those responsibilities
// belong to the Engine.
//
// # What this package must NOT do
//
//   - Import the root auth package (no upward imports).
//   - Perform application-level authorization decisions.
//   - Store password hashes or plaintext passwords in [Record] fields.
package session
