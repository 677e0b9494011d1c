package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/layer2/project-tracker/internal/core/domain"
	"github.com/layer2/project-tracker/internal/core/ports"
)

// ProjectService implements project CRUD. It consults the customer
// repository to reject dangling customer references before persisting.
type ProjectService struct {
	repo      ports.ProjectRepository
	customers ports.CustomerRepository
	logger    zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, customers ports.CustomerRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, customers: customers, logger: logger}
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, input ports.ProjectInput) (*domain.Project, error) {
	exists, err := s.customers.Exists(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("customer with id %d: %w", input.CustomerID, domain.ErrCustomerNotFound)
	}

	project := &domain.Project{
		Description:       input.Description,
		ResponsiblePerson: input.ResponsiblePerson,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		CustomerID:        input.CustomerID,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.Error().Err(err).Int64("customer_id", input.CustomerID).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Int64("project_id", project.ID).Int64("customer_id", project.CustomerID).Msg("project created")
	return project, nil
}

// Update persists a full replacement of the project. A nonexistent customer
// reference is a bad request, unlike on create where it is not-found.
func (s *ProjectService) Update(ctx context.Context, id int64, input ports.ProjectInput) error {
	if id != input.ID {
		return domain.ErrIDMismatch
	}

	exists, err := s.customers.Exists(ctx, input.CustomerID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrInvalidCustomerID
	}

	project := &domain.Project{
		ID:                id,
		Description:       input.Description,
		ResponsiblePerson: input.ResponsiblePerson,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		CustomerID:        input.CustomerID,
		Version:           input.Version,
	}

	if err := s.repo.Update(ctx, project); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.resolveConflict(ctx, id)
		}
		return err
	}

	s.logger.Info().Int64("project_id", id).Msg("project updated")
	return nil
}

func (s *ProjectService) resolveConflict(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrProjectNotFound
	}
	return domain.ErrConflict
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("project_id", id).Msg("project deleted")
	return nil
}
