package ports

import (
	"context"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
type UserRepository interface {
	// FindByUsername performs a case-sensitive exact lookup and returns
	// domain.ErrUserNotFound when no such account exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
