// Package usecase implements the business logic for exchange operations.
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"company_backend/internal/domain"
	"company_backend/internal/feature/exchanges/domain/entity"
)

// ExchangeRepository abstracts the persistence layer for exchanges.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ExchangeRepository interface {
	List(ctx context.Context) ([]entity.Exchange, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Exchange, error)
	FindByMIC(ctx context.Context, mic string) (*entity.Exchange, error)
	Create(ctx context.Context, e *entity.Exchange) error
	Update(ctx context.Context, e *entity.Exchange) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateInput carries the fields accepted when creating an exchange.
type CreateInput struct {
	MIC         string
	Description string
	City        string
	Website     string
	Status      domain.Status
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	MIC         *string
	Description *string
	City        *string
	Website     *string
	Status      *domain.Status
}

// ExchangeUsecase provides business logic for exchange operations.
type ExchangeUsecase struct {
	repo ExchangeRepository
}

// NewExchangeUsecase creates a new ExchangeUsecase with the given repository.
func NewExchangeUsecase(r ExchangeRepository) *ExchangeUsecase {
	return &ExchangeUsecase{repo: r}
}

// List returns every exchange.
func (u *ExchangeUsecase) List(ctx context.Context) ([]entity.Exchange, error) {
	return u.repo.List(ctx)
}

// Get returns one exchange or domain.ErrNotFound.
func (u *ExchangeUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Exchange, error) {
	return u.repo.FindByID(ctx, id)
}

// Create validates the status and persists a new exchange.
func (u *ExchangeUsecase) Create(ctx context.Context, in CreateInput) (*entity.Exchange, error) {
	status := in.Status
	if status == "" {
		status = domain.StatusActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	e := &entity.Exchange{
		MIC:         in.MIC,
		Description: in.Description,
		City:        in.City,
		Website:     in.Website,
		Status:      status,
	}
	if err := u.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update applies a partial update to an existing exchange.
func (u *ExchangeUsecase) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*entity.Exchange, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *in.Status)
	}
	e, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.MIC != nil {
		e.MIC = *in.MIC
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.City != nil {
		e.City = *in.City
	}
	if in.Website != nil {
		e.Website = *in.Website
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if err := u.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
