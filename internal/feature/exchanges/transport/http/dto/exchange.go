// Package dto defines data transfer objects for the exchanges HTTP API.
package dto

import (
	"time"

	"company_backend/internal/feature/exchanges/domain/entity"
)

// ExchangeResponse is the public representation of an exchange.
type ExchangeResponse struct {
	ID          string    `json:"id"`
	MIC         string    `json:"mic"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Website     string    `json:"website"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateExchangeRequest is the body of POST /exchanges/.
type CreateExchangeRequest struct {
	MIC         string `json:"mic" binding:"required,max=50"`
	Description string `json:"description" binding:"max=50"`
	City        string `json:"city" binding:"max=50"`
	Website     string `json:"website" binding:"omitempty,url,max=200"`
	Status      string `json:"status" binding:"omitempty,oneof=active disabled"`
}

// UpdateExchangeRequest is the body of PUT/PATCH /exchanges/{id}/.
type UpdateExchangeRequest struct {
	MIC         *string `json:"mic" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=50"`
	City        *string `json:"city" binding:"omitempty,max=50"`
	Website     *string `json:"website" binding:"omitempty,url,max=200"`
	Status      *string `json:"status" binding:"omitempty,oneof=active disabled"`
}

// FromEntity converts an exchange into its response DTO.
func FromEntity(e entity.Exchange) ExchangeResponse {
	return ExchangeResponse{
		ID:          e.ID.String(),
		MIC:         e.MIC,
		Description: e.Description,
		City:        e.City,
		Website:     e.Website,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
