// Package sqlite implements the auth.UserStore interface on database/sql
// with the modernc.org/sqlite driver (no cgo).
//
// It is intended for single-node deployments and local tooling. Unique
// constraint violations on the email column map to auth.ErrUserAlreadyExists,
// missing rows to auth.ErrUserNotFound, and other database errors are wrapped
// in auth.ErrStorageFailure.
package sqlite
