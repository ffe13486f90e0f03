package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	auth "github.com/riculum/go-auth"
	"github.com/riculum/go-auth/internal"
	"github.com/riculum/go-auth/providers/memory"
)

const testPassword = "correct-horse-battery"

func buildEngine(t *testing.T) (*auth.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := auth.DefaultConfig()
	cfg.Password = auth.PasswordConfig{
		Memory:      8192,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}

	engine, err := auth.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserStore(memory.NewStore()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, mr
}

func loggedInCookie(t *testing.T, engine *auth.Engine) *http.Cookie {
	t.Helper()

	if _, err := engine.Register(context.Background(), auth.RegisterRequest{
		Email:    "alice@example.com",
		Password: testPassword,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	cid, err := internal.NewContextID()
	if err != nil {
		t.Fatalf("NewContextID failed: %v", err)
	}

	ctx := auth.WithSessionContext(context.Background(), cid.String())
	if err := engine.Login(ctx, "alice@example.com", testPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	return &http.Cookie{Name: SessionCookieName, Value: cid.String()}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestEnsureSessionCookieMintsCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	id, err := EnsureSessionCookie(rec, req)
	if err != nil {
		t.Fatalf("EnsureSessionCookie failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a context id")
	}
	if _, err := internal.ParseContextID(id); err != nil {
		t.Fatalf("minted id %q is not a context id: %v", id, err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || cookies[0].Value != id {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("expected an http-only cookie")
	}
}

func TestEnsureSessionCookieReusesExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "existing-ctx"})

	id, err := EnsureSessionCookie(rec, req)
	if err != nil {
		t.Fatalf("EnsureSessionCookie failed: %v", err)
	}
	if id != "existing-ctx" {
		t.Fatalf("expected the existing id, got %q", id)
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Fatalf("expected no new cookie, got %+v", cookies)
	}
}

func TestRequireSessionAllowsVerifiedSession(t *testing.T) {
	engine, _ := buildEngine(t)
	cookie := loggedInCookie(t, engine)

	handler := RequireSession(engine)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSessionRejectsMissingCookie(t *testing.T) {
	engine, _ := buildEngine(t)

	handler := RequireSession(engine)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSessionRejectsUnknownSession(t *testing.T) {
	engine, _ := buildEngine(t)

	handler := RequireSession(engine)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "never-logged-in"})
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSessionRejectsAfterLogout(t *testing.T) {
	engine, _ := buildEngine(t)
	cookie := loggedInCookie(t, engine)

	ctx := auth.WithSessionContext(context.Background(), cookie.Value)
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	handler := RequireSession(engine)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSessionReportsStorageOutage(t *testing.T) {
	engine, mr := buildEngine(t)
	cookie := loggedInCookie(t, engine)

	mr.Close()

	handler := RequireSession(engine)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(rec, req)

	// Outages must not look like bad credentials.
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRequireSessionNilEngine(t *testing.T) {
	handler := RequireSession(nil)(okHandler())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "ctx"})
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
