package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/layer2/project-tracker/internal/core/domain"
	"github.com/layer2/project-tracker/internal/core/ports"
)

// CustomerService implements customer CRUD on top of the repository.
type CustomerService struct {
	repo   ports.CustomerRepository
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.Get(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, input ports.CustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		Name:              input.Name,
		Code:              input.Code,
		ResponsiblePerson: input.ResponsiblePerson,
		StartDate:         input.StartDate,
		Projects:          []domain.Project{},
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		s.logger.Error().Err(err).Msg("failed to create customer")
		return nil, err
	}

	s.logger.Info().Int64("customer_id", customer.ID).Str("code", customer.Code).Msg("customer created")
	return customer, nil
}

// Update overwrites the mutable fields of an existing customer. A stale
// version yields domain.ErrConflict unless the row was deleted in the
// meantime, in which case the outcome is domain.ErrCustomerNotFound.
func (s *CustomerService) Update(ctx context.Context, id int64, input ports.CustomerInput) error {
	if id != input.ID {
		return domain.ErrIDMismatch
	}

	customer := &domain.Customer{
		ID:                id,
		Name:              input.Name,
		Code:              input.Code,
		ResponsiblePerson: input.ResponsiblePerson,
		StartDate:         input.StartDate,
		Version:           input.Version,
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.resolveConflict(ctx, id)
		}
		return err
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer updated")
	return nil
}

// resolveConflict re-checks existence after a failed guarded update: a row
// deleted between read and write reports not-found, anything else propagates
// the conflict unresolved.
func (s *CustomerService) resolveConflict(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrCustomerNotFound
	}
	return domain.ErrConflict
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("customer_id", id).Msg("customer deleted with dependent projects")
	return nil
}
