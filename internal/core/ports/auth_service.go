package ports

import "context"

// AuthService authenticates credentials and mints bearer tokens.
type AuthService interface {
	// Login verifies the username/password pair and returns a signed JWT.
	// Unknown users and wrong passwords fail identically with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
}

// LoginLimiter throttles repeated login failures per username. Implementations
// may be unavailable at runtime; callers fail open on limiter errors.
type LoginLimiter interface {
	// TooMany reports whether the username has exceeded the failure budget.
	TooMany(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt against the username.
	RecordFailure(ctx context.Context, username string) error
}
