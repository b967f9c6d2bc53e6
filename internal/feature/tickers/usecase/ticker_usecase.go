// Package usecase implements the business logic for ticker listing and ingestion.
package usecase

import (
	"context"
	"strings"

	"company_backend/internal/feature/tickers/domain/entity"
)

// ListFilter narrows a ticker listing. Empty fields match everything.
type ListFilter struct {
	Symbol      string
	ExchangeMIC string
}

// TickerRepository abstracts the read side of ticker persistence.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TickerRepository interface {
	List(ctx context.Context, f ListFilter) ([]entity.Ticker, error)
}

// TickerUsecase provides business logic for ticker queries.
type TickerUsecase struct {
	repo TickerRepository
}

// NewTickerUsecase creates a new TickerUsecase with the given repository.
func NewTickerUsecase(r TickerRepository) *TickerUsecase {
	return &TickerUsecase{repo: r}
}

// List returns the tickers matching f. Filter values are matched exactly after trimming.
func (u *TickerUsecase) List(ctx context.Context, f ListFilter) ([]entity.Ticker, error) {
	f.Symbol = strings.TrimSpace(f.Symbol)
	f.ExchangeMIC = strings.TrimSpace(f.ExchangeMIC)
	return u.repo.List(ctx, f)
}
