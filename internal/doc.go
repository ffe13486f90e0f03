// Package internal contains helper utilities that are intentionally private to auth,
// including secure random token generation and input validation helpers.
//
// # What this package must NOT do
//
//   - Export types that appear in the public auth API.
//   - Be imported by any package outside the auth module.
package internal
