package ports

import (
	"context"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	// List returns all customers with their projects eagerly attached.
	List(ctx context.Context) ([]*domain.Customer, error)
	// Get returns the customer with projects attached, or
	// domain.ErrCustomerNotFound.
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	// Create persists c and fills in the store-assigned ID and Version.
	Create(ctx context.Context, c *domain.Customer) error
	// Update overwrites mutable fields, guarded by c.Version. A stale
	// version (or a concurrently deleted row) yields domain.ErrConflict.
	Update(ctx context.Context, c *domain.Customer) error
	// Delete removes the customer and, via the cascade, all its projects.
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
