package memory

import (
	"context"
	"sync"
	"time"

	auth "github.com/riculum/go-auth"
)

// Store is a mutex-guarded in-memory credential store.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]auth.UserRecord
	byEmail map[string]string
}

// NewStore creates an empty [Store].
func NewStore() *Store {
	return &Store{
		byID:    make(map[string]auth.UserRecord),
		byEmail: make(map[string]string),
	}
}

// FindByEmail looks up an identity record by its unique email.
func (s *Store) FindByEmail(_ context.Context, email string) (auth.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return auth.UserRecord{}, auth.ErrUserNotFound
	}
	return s.byID[id], nil
}

// FindByID looks up an identity record by its UUID.
func (s *Store) FindByID(_ context.Context, id string) (auth.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	if !ok {
		return auth.UserRecord{}, auth.ErrUserNotFound
	}
	return record, nil
}

// Insert persists a new identity record.
func (s *Store) Insert(_ context.Context, record auth.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[record.Email]; exists {
		return auth.ErrUserAlreadyExists
	}
	if _, exists := s.byID[record.ID]; exists {
		return auth.ErrUserAlreadyExists
	}

	s.byID[record.ID] = record
	s.byEmail[record.Email] = record.ID
	return nil
}

// UpdateFields applies a partial update. Nil fields are untouched.
func (s *Store) UpdateFields(_ context.Context, id string, update auth.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return auth.ErrUserNotFound
	}

	if update.Email != nil && *update.Email != record.Email {
		if _, exists := s.byEmail[*update.Email]; exists {
			return auth.ErrUserAlreadyExists
		}
		delete(s.byEmail, record.Email)
		record.Email = *update.Email
		s.byEmail[record.Email] = id
	}
	if update.PasswordHash != nil {
		record.PasswordHash = *update.PasswordHash
	}
	if update.FailedAttempts != nil {
		record.FailedAttempts = *update.FailedAttempts
	}
	if update.Enabled != nil {
		record.Enabled = *update.Enabled
	}
	if update.SessionToken != nil {
		record.SessionToken = *update.SessionToken
	}
	if update.Online != nil {
		record.Online = *update.Online
	}
	record.UpdatedAt = time.Now().UTC()

	s.byID[id] = record
	return nil
}

// Delete removes an identity record.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return auth.ErrUserNotFound
	}

	delete(s.byEmail, record.Email)
	delete(s.byID, id)
	return nil
}
