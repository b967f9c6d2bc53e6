// Package dto defines data transfer objects for the companies HTTP API.
package dto

import (
	"encoding/json"

	"company_backend/internal/feature/companies/domain/entity"
	"company_backend/internal/feature/companies/usecase"
)

// TickerRef is the ticker as embedded in a company listing.
type TickerRef struct {
	Symbol string `json:"symbol"`
}

// CompanyResponse is the public representation of a company.
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Ticker      TickerRef `json:"ticker"`
}

// TickerDetail is the ticker as embedded in a company detail, with its price history.
type TickerDetail struct {
	Name    string          `json:"name"`
	Symbol  string          `json:"symbol"`
	History json.RawMessage `json:"history"`
}

// CompanyDetailResponse is the enriched company returned by GET /companies/{id}/.
type CompanyDetailResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Ticker      TickerDetail `json:"ticker"`
}

// TickerInput references an existing ticker by symbol.
type TickerInput struct {
	Symbol string `json:"symbol" binding:"required,max=50"`
}

// CreateCompanyRequest is the body of POST /companies/.
type CreateCompanyRequest struct {
	Name        string       `json:"name" binding:"max=50"`
	Description string       `json:"description" binding:"max=50"`
	Ticker      *TickerInput `json:"ticker" binding:"required"`
}

// UpdateCompanyRequest is the body of PUT/PATCH /companies/{id}/.
// PUT additionally requires Ticker.
type UpdateCompanyRequest struct {
	Name        *string      `json:"name" binding:"omitempty,max=50"`
	Description *string      `json:"description" binding:"omitempty,max=50"`
	Ticker      *TickerInput `json:"ticker"`
}

// FromEntity converts a company into its response DTO.
func FromEntity(c entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Ticker:      TickerRef{Symbol: c.Ticker.Symbol},
	}
}

// FromDetail converts an enriched company into its response DTO.
func FromDetail(d usecase.Detail) CompanyDetailResponse {
	history := d.History
	if len(history) == 0 {
		history = json.RawMessage("null")
	}
	return CompanyDetailResponse{
		ID:          d.Company.ID.String(),
		Name:        d.Company.Name,
		Description: d.Company.Description,
		Ticker: TickerDetail{
			Name:    d.Company.Ticker.CompanyName,
			Symbol:  d.Company.Ticker.Symbol,
			History: history,
		},
	}
}
