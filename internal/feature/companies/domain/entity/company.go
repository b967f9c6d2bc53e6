// Package entity defines the domain models for the companies feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"company_backend/internal/domain"
	tickerentity "company_backend/internal/feature/tickers/domain/entity"
)

// MaxFieldLength bounds Name and Description.
const MaxFieldLength = 50

// Company is a business entity paired with exactly one Ticker.
// The unique TickerID makes the relation one-to-one; deleting the ticker deletes the company.
type Company struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TickerID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	Ticker      tickerentity.Ticker `gorm:"constraint:OnDelete:CASCADE"`
	Name        string              `gorm:"size:50"`
	Description string              `gorm:"size:50"`
	Status      domain.Status       `gorm:"size:100;not null;default:active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate assigns a random UUID and the default status.
func (c *Company) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = domain.StatusActive
	}
	return nil
}

// String renders "<name> - <description>".
func (c Company) String() string {
	return c.Name + " - " + c.Description
}
