package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the authentication engine.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrNotFound is returned when no session entry exists for a context id.
var ErrNotFound = errors.New("session not found")

// Store is a Redis-backed session store keyed by the caller's opaque
// session-context identifier. Entries expire after the configured TTL;
// sliding mode renews the TTL on every read.
type Store struct {
	redis   redis.UniversalClient
	prefix  string
	ttl     time.Duration
	sliding bool
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace; ttl and sliding control expiration.
func NewStore(
	redis redis.UniversalClient,
	prefix string,
	ttl time.Duration,
	sliding bool,
) *Store {
	return &Store{
		redis:   redis,
		prefix:  prefix,
		ttl:     ttl,
		sliding: sliding,
	}
}

func (s *Store) key(contextID string) string {
	return s.prefix + ":" + contextID
}

// Put persists a [Record] under the caller's context id with the store TTL.
//
//	Performance: 1 Redis SET.
func (s *Store) Put(ctx context.Context, contextID string, rec *Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(contextID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Get retrieves the record stored under a context id. Returns [ErrNotFound]
// when no entry exists.
//
//	Performance: 1 Redis GET, plus 1 EXPIRE in sliding mode.
func (s *Store) Get(ctx context.Context, contextID string) (*Record, error) {
	key := s.key(contextID)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rec, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if s.sliding {
		if err := s.redis.Expire(ctx, key, s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return rec, nil
}

// Delete removes the entry stored under a context id. Deleting an absent
// entry is not an error.
//
//	Performance: 1 Redis DEL.
func (s *Store) Delete(ctx context.Context, contextID string) error {
	if err := s.redis.Del(ctx, s.key(contextID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
