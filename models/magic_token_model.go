package models

import (
	"time"

	"github.com/google/uuid"
)

type MagicToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MemberID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Token     string     `gorm:"size:128;not null;unique"`
	ExpiresAt time.Time  `gorm:"not null;index"`
	UsedAt    *time.Time

	Member Member `gorm:"foreignkey:MemberID"`

	CreatedAt time.Time
}
