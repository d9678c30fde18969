package models

import (
	"time"

	"github.com/google/uuid"
)

// PackagePurchase is a member's credit balance. Only the most recently
// activated purchase counts.
type PackagePurchase struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_package_purchases_member_activated,priority:1" json:"member_id"`
	PackageID   *uuid.UUID `gorm:"type:uuid" json:"package_id"`
	Total       int        `gorm:"not null" json:"total"`
	Remaining   int        `gorm:"not null;check:remaining >= 0" json:"remaining"`
	ActivatedAt time.Time  `gorm:"not null;index:idx_package_purchases_member_activated,priority:2,sort:desc" json:"activated_at"`
	ExpiresAt   *time.Time `json:"expires_at"`

	Member  Member   `gorm:"foreignkey:MemberID" json:"-"`
	Package *Package `gorm:"foreignkey:PackageID" json:"package,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (p PackagePurchase) ExpiredAt(now time.Time) bool {
	return p.ExpiresAt != nil && !now.Before(*p.ExpiresAt)
}
