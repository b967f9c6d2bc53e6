// Package entity defines the domain models for the tickers feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"company_backend/internal/domain"
	exchangeentity "company_backend/internal/feature/exchanges/domain/entity"
)

// MaxFieldLength bounds CompanyName and Symbol.
const MaxFieldLength = 50

// Ticker is a tradable symbol listed on an Exchange.
// Deleting the exchange deletes its tickers.
type Ticker struct {
	ID          uuid.UUID               `gorm:"type:uuid;primaryKey"`
	ExchangeID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	Exchange    exchangeentity.Exchange `gorm:"constraint:OnDelete:CASCADE"`
	CompanyName string                  `gorm:"size:50"`
	Symbol      string                  `gorm:"size:50;index"`
	Status      domain.Status           `gorm:"size:100;not null;default:active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate assigns a random UUID and the default status.
func (t *Ticker) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = domain.StatusActive
	}
	return nil
}

// String renders "<company name> - <symbol>".
func (t Ticker) String() string {
	return t.CompanyName + " - " + t.Symbol
}
