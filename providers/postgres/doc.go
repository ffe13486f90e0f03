// Package postgres implements the auth.UserStore interface on top of a
// pgx/v5 connection pool.
//
// The store speaks to any [Querier], which both *pgxpool.Pool and the
// pgxmock test pool satisfy. Unique-violation errors on the email column are
// mapped to auth.ErrUserAlreadyExists, missing rows to auth.ErrUserNotFound,
// and every other database error is wrapped in auth.ErrStorageFailure.
package postgres
