//go:build integration
// +build integration

package test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	auth "github.com/riculum/go-auth"
	"github.com/riculum/go-auth/providers/memory"
	"github.com/riculum/go-auth/providers/sqlite"
)

const testPassword = "correct-horse-battery"

func fastConfig() auth.Config {
	cfg := auth.DefaultConfig()
	cfg.Password = auth.PasswordConfig{
		Memory:      8192,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
	return cfg
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, rdb
}

// newEngine builds an engine on the in-memory credential store.
func newEngine(t *testing.T) (*auth.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr, rdb := newRedis(t)
	engine, err := auth.New().
		WithConfig(fastConfig()).
		WithRedis(rdb).
		WithUserStore(memory.NewStore()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, mr
}

// newSQLiteEngine builds an engine on an ephemeral SQLite database, which
// exercises the same SQL paths a file-backed deployment uses.
func newSQLiteEngine(t *testing.T) *auth.Engine {
	t.Helper()

	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	_, rdb := newRedis(t)
	engine, err := auth.New().
		WithConfig(fastConfig()).
		WithRedis(rdb).
		WithUserStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func register(t *testing.T, engine *auth.Engine, email string) string {
	t.Helper()

	id, err := engine.Register(context.Background(), auth.RegisterRequest{
		Email:    email,
		Password: testPassword,
	})
	if err != nil {
		t.Fatalf("Register(%q) failed: %v", email, err)
	}
	return id
}

func sessionCtx(id string) context.Context {
	return auth.WithSessionContext(context.Background(), id)
}
