package domain

import "errors"

// Sentinel errors shared across services, repositories and the HTTP error
// handler. Handlers map these to status codes in one place.
var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrUserNotFound       = errors.New("user not found")

	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProjectNotFound   = errors.New("project not found")
	ErrIDMismatch        = errors.New("id mismatch")
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrConflict signals that a row changed between read and write. There
	// is no resolution policy; the caller sees the raw conflict.
	ErrConflict = errors.New("concurrent modification detected")
)
