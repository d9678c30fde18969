package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookings_member_class,priority:1" json:"member_id"`
	ClassSessionID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_bookings_member_class,priority:2" json:"class_session_id"`

	Member       Member       `gorm:"foreignkey:MemberID" json:"member"`
	ClassSession ClassSession `gorm:"foreignkey:ClassSessionID" json:"class_session"`

	CreatedAt time.Time `json:"created_at"`
}
