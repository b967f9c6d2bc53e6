// Package dto defines data transfer objects for the tickers HTTP API.
package dto

import (
	"time"

	"company_backend/internal/feature/tickers/domain/entity"
)

// TickerResponse is the public representation of a ticker.
type TickerResponse struct {
	ID          string    `json:"id"`
	Exchange    string    `json:"exchange"`
	CompanyName string    `json:"company_name"`
	Symbol      string    `json:"symbol"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromEntity converts a ticker into its response DTO. Exchange is the MIC of the listing exchange.
func FromEntity(t entity.Ticker) TickerResponse {
	return TickerResponse{
		ID:          t.ID.String(),
		Exchange:    t.Exchange.MIC,
		CompanyName: t.CompanyName,
		Symbol:      t.Symbol,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
