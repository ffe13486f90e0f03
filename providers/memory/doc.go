// Package memory implements the auth.UserStore interface on an in-process
// map. It exists for tests, examples, and prototypes; records do not survive
// a restart.
package memory
