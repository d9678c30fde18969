package models

import (
	"time"

	"github.com/google/uuid"
)

type Package struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Credits      int       `gorm:"not null" json:"credits"`
	ValidityDays int       `gorm:"not null;default:0" json:"validity_days"`
	Price        float64   `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	Currency     string    `gorm:"size:3;default:'CHF'" json:"currency"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
