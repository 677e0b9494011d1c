package ports

import (
	"context"
	"time"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// CustomerInput carries client-supplied customer fields. ID is only
// meaningful on update, where it must match the path id; Version is the
// concurrency token read alongside the record being replaced.
type CustomerInput struct {
	ID                int64
	Name              string
	Code              string
	ResponsiblePerson string
	StartDate         time.Time
	Version           int64
}

// CustomerService defines use-case operations for customers.
type CustomerService interface {
	List(ctx context.Context) ([]*domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int64, input CustomerInput) error
	Delete(ctx context.Context, id int64) error
}
