package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type Member struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"size:255;not null;index" json:"name"`
	Email        *string   `gorm:"size:255;unique" json:"email"`
	Phone        *string   `gorm:"size:50" json:"phone"`
	Role         string    `gorm:"size:20;not null;default:'member'" json:"role"`
	PasswordHash *string   `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
