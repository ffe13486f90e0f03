//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"testing"

	auth "github.com/riculum/go-auth"
)

func TestFullLifecycle(t *testing.T) {
	engine, _ := newEngine(t)

	register(t, engine, "alice@example.com")
	ctx := sessionCtx("browser-1")

	if err := engine.Login(ctx, "alice@example.com", testPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if ok, err := engine.Verify(ctx); err != nil || !ok {
		t.Fatalf("Verify after login: ok=%v err=%v", ok, err)
	}
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if ok, err := engine.Verify(ctx); err != nil || ok {
		t.Fatalf("Verify after logout: ok=%v err=%v", ok, err)
	}
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("repeated Logout failed: %v", err)
	}
}

func TestFullLifecycleOnSQLite(t *testing.T) {
	engine := newSQLiteEngine(t)

	id := register(t, engine, "alice@example.com")
	ctx := sessionCtx("browser-1")

	if err := engine.Login(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, auth.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := engine.Login(ctx, "alice@example.com", testPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if ok, err := engine.Verify(ctx); err != nil || !ok {
		t.Fatalf("Verify: ok=%v err=%v", ok, err)
	}

	if err := engine.ChangePassword(context.Background(), id, testPassword, "another-long-secret"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if ok, err := engine.Verify(ctx); err != nil || ok {
		t.Fatalf("expected session invalidation after password change: ok=%v err=%v", ok, err)
	}
	if err := engine.Login(ctx, "alice@example.com", "another-long-secret"); err != nil {
		t.Fatalf("Login with new password failed: %v", err)
	}
}

func TestLockoutLifecycle(t *testing.T) {
	engine, _ := newEngine(t)

	id := register(t, engine, "alice@example.com")
	ctx := sessionCtx("browser-1")

	for i := 0; i < 5; i++ {
		if err := engine.Login(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, auth.ErrInvalidPassword) {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}

	// Permanent until an explicit unlock, regardless of the password.
	if err := engine.Login(ctx, "alice@example.com", testPassword); !errors.Is(err, auth.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if err := engine.Login(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, auth.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	if err := engine.UnlockAccount(context.Background(), id); err != nil {
		t.Fatalf("UnlockAccount failed: %v", err)
	}
	if err := engine.Login(ctx, "alice@example.com", testPassword); err != nil {
		t.Fatalf("Login after unlock failed: %v", err)
	}
}

func TestDisableLifecycle(t *testing.T) {
	engine, _ := newEngine(t)

	id := register(t, engine, "alice@example.com")
	ctx := sessionCtx("browser-1")

	if err := engine.SetAccountEnabled(context.Background(), id, false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if err := engine.Login(ctx, "alice@example.com", testPassword); !errors.Is(err, auth.ErrUserNotEnabled) {
		t.Fatalf("expected ErrUserNotEnabled, got %v", err)
	}
	if err := engine.SetAccountEnabled(context.Background(), id, true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if err := engine.Login(ctx, "alice@example.com", testPassword); err != nil {
		t.Fatalf("Login after enable failed: %v", err)
	}
}

func TestSessionSurvivesOnlyOnItsContext(t *testing.T) {
	engine, _ := newEngine(t)

	register(t, engine, "alice@example.com")

	if err := engine.Login(sessionCtx("browser-1"), "alice@example.com", testPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if ok, err := engine.Verify(sessionCtx("browser-2")); err != nil || ok {
		t.Fatalf("foreign context must not verify: ok=%v err=%v", ok, err)
	}
	if ok, err := engine.Verify(sessionCtx("browser-1")); err != nil || !ok {
		t.Fatalf("own context must verify: ok=%v err=%v", ok, err)
	}
}

func TestReloginReplacesSession(t *testing.T) {
	engine, _ := newEngine(t)

	register(t, engine, "alice@example.com")

	first := sessionCtx("browser-1")
	second := sessionCtx("browser-2")

	if err := engine.Login(first, "alice@example.com", testPassword); err != nil {
		t.Fatalf("first Login failed: %v", err)
	}
	if err := engine.Login(second, "alice@example.com", testPassword); err != nil {
		t.Fatalf("second Login failed: %v", err)
	}

	// The record holds one token: the latest login wins, the earlier
	// session's copy goes stale.
	if ok, err := engine.Verify(second); err != nil || !ok {
		t.Fatalf("latest session must verify: ok=%v err=%v", ok, err)
	}
	if ok, err := engine.Verify(first); err != nil || ok {
		t.Fatalf("stale session must not verify: ok=%v err=%v", ok, err)
	}
}

func TestRedisOutageSurfacesAsStorageFailure(t *testing.T) {
	engine, mr := newEngine(t)

	register(t, engine, "alice@example.com")
	ctx := sessionCtx("browser-1")
	if err := engine.Login(ctx, "alice@example.com", testPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	mr.Close()

	if _, err := engine.Verify(ctx); !errors.Is(err, auth.ErrStorageFailure) {
		t.Fatalf("Verify: expected ErrStorageFailure, got %v", err)
	}
	if err := engine.Login(ctx, "alice@example.com", testPassword); !errors.Is(err, auth.ErrStorageFailure) {
		t.Fatalf("Login: expected ErrStorageFailure, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	engine, mr := newEngine(t)

	register(t, engine, "alice@example.com")
	ctx := sessionCtx("browser-1")
	if err := engine.Login(ctx, "alice@example.com", testPassword); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	mr.FastForward(fastConfig().Session.TTL * 2)

	if ok, err := engine.Verify(ctx); err != nil || ok {
		t.Fatalf("expired session must not verify: ok=%v err=%v", ok, err)
	}
}
