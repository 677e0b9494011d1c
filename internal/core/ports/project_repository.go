package ports

import (
	"context"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	// List returns all projects with their owning customer attached.
	List(ctx context.Context) ([]*domain.Project, error)
	// Get returns the project with its customer attached, or
	// domain.ErrProjectNotFound.
	Get(ctx context.Context, id int64) (*domain.Project, error)
	// Create persists p and fills in the store-assigned ID and Version.
	Create(ctx context.Context, p *domain.Project) error
	// Update overwrites the full record, guarded by p.Version.
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
