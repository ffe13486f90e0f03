package middleware

import (
	"net"
	"net/http"

	auth "github.com/riculum/go-auth"
	"github.com/riculum/go-auth/internal"
)

// SessionCookieName is the cookie that carries the caller's opaque
// session-context identifier.
const SessionCookieName = "session_ctx"

// EnsureSessionCookie returns the request's session-context id, minting and
// setting a fresh one when the cookie is absent. Login handlers call it
// before Engine.Login so the new session has a context to bind to.
func EnsureSessionCookie(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	cid, err := internal.NewContextID()
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    cid.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	return cid.String(), nil
}

// RequireSession rejects requests whose session does not verify. On success
// the wrapped handler runs with the session context already attached, so it
// can call Engine.Logout or Engine.Verify again without re-reading cookies.
func RequireSession(engine *auth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := auth.WithSessionContext(r.Context(), cookie.Value)
			ctx = auth.WithClientIP(ctx, clientIP(r))

			ok, err := engine.Verify(ctx)
			if err != nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
