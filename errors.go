package auth

import "errors"

var (
	// ErrInvalidEmail is an exported constant or variable used by the authentication engine.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrInvalidPassword is an exported constant or variable used by the authentication engine.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrUserNotEnabled is an exported constant or variable used by the authentication engine.
	ErrUserNotEnabled = errors.New("user not enabled")
	// ErrTooManyAttempts is an exported constant or variable used by the authentication engine.
	ErrTooManyAttempts = errors.New("too many failed login attempts")
	// ErrUserAlreadyExists is an exported constant or variable used by the authentication engine.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is an exported constant or variable used by the authentication engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrStorageFailure is an exported constant or variable used by the authentication engine.
	ErrStorageFailure = errors.New("storage failure")
	// ErrSessionContextMissing is an exported constant or variable used by the authentication engine.
	ErrSessionContextMissing = errors.New("session context missing")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
