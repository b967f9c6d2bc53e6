// Package entity defines the domain models for the exchanges feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"company_backend/internal/domain"
)

// Exchange is a trading venue identified by its market identifier code.
// MIC is indexed but deliberately not unique: the schema never enforced it.
type Exchange struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	MIC         string        `gorm:"column:mic;size:50;index"`
	Description string        `gorm:"size:50"`
	City        string        `gorm:"size:50"`
	Website     string        `gorm:"size:200"`
	Status      domain.Status `gorm:"size:100;not null;default:active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate assigns a random UUID and the default status.
func (e *Exchange) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = domain.StatusActive
	}
	return nil
}

// String renders "<mic> - <description>".
func (e Exchange) String() string {
	return e.MIC + " - " + e.Description
}
