package auth

import "context"

type sessionContextKey struct{}
type clientIPContextKey struct{}

// WithSessionContext attaches the caller's opaque session-context identifier
// to ctx. The transport layer supplies it (typically a session cookie value);
// the Engine uses it as the session-store key for Login, Logout, and Verify.
func WithSessionContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, id)
}

// WithClientIP attaches the caller's IP address to ctx. The Engine records
// it on audit events.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

func sessionContextFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	id, _ := ctx.Value(sessionContextKey{}).(string)
	if id == "" {
		return "", false
	}

	return id, true
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}
