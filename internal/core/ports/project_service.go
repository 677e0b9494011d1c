package ports

import (
	"context"
	"time"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// ProjectInput carries client-supplied project fields. CustomerID must
// reference an existing customer at create and update time.
type ProjectInput struct {
	ID                int64
	Description       string
	ResponsiblePerson string
	StartDate         time.Time
	EndDate           time.Time
	CustomerID        int64
	Version           int64
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	List(ctx context.Context) ([]*domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, input ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id int64, input ProjectInput) error
	Delete(ctx context.Context, id int64) error
}
