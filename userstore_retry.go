package auth

import (
	"context"
	"errors"

	"github.com/sethvargo/go-retry"
)

// retryingUserStore decorates a [UserStore] with bounded fibonacci-backoff
// retries. Only [ErrStorageFailure] outcomes are retried; deterministic
// results such as [ErrUserNotFound] and [ErrUserAlreadyExists] come back
// immediately.
type retryingUserStore struct {
	inner UserStore
	cfg   StorageConfig
}

// NewRetryingUserStore wraps store with the retry policy described by cfg.
// [Builder.Build] applies it automatically when Storage.RetryEnabled is set;
// exported so callers composing their own stack can reuse it.
func NewRetryingUserStore(store UserStore, cfg StorageConfig) UserStore {
	return &retryingUserStore{inner: store, cfg: cfg}
}

func (r *retryingUserStore) backoff() retry.Backoff {
	return retry.WithMaxRetries(r.cfg.MaxRetries, retry.NewFibonacci(r.cfg.RetryBaseDelay))
}

func retryable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageFailure) {
		return retry.RetryableError(err)
	}
	return err
}

func (r *retryingUserStore) FindByEmail(ctx context.Context, email string) (UserRecord, error) {
	var record UserRecord
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		var innerErr error
		record, innerErr = r.inner.FindByEmail(ctx, email)
		return retryable(innerErr)
	})
	return record, err
}

func (r *retryingUserStore) FindByID(ctx context.Context, id string) (UserRecord, error) {
	var record UserRecord
	err := retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		var innerErr error
		record, innerErr = r.inner.FindByID(ctx, id)
		return retryable(innerErr)
	})
	return record, err
}

func (r *retryingUserStore) Insert(ctx context.Context, record UserRecord) error {
	return retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		return retryable(r.inner.Insert(ctx, record))
	})
}

func (r *retryingUserStore) UpdateFields(ctx context.Context, id string, update UserUpdate) error {
	return retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		return retryable(r.inner.UpdateFields(ctx, id, update))
	})
}

func (r *retryingUserStore) Delete(ctx context.Context, id string) error {
	return retry.Do(ctx, r.backoff(), func(ctx context.Context) error {
		return retryable(r.inner.Delete(ctx, id))
	})
}
