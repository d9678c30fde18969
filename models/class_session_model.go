package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ClassSession is one scheduled occurrence. Generated "Personal" slots are
// unique on (title, date, start_time, end_time, location).
type ClassSession struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string         `gorm:"size:255;not null;uniqueIndex:idx_class_sessions_slot,priority:1" json:"title"`
	Coach     *string        `gorm:"size:255" json:"coach"`
	Date      datatypes.Date `gorm:"not null;index;uniqueIndex:idx_class_sessions_slot,priority:2" json:"date"`
	StartTime datatypes.Time `gorm:"not null;uniqueIndex:idx_class_sessions_slot,priority:3" json:"start_time"`
	EndTime   datatypes.Time `gorm:"not null;uniqueIndex:idx_class_sessions_slot,priority:4" json:"end_time"`
	Capacity  int            `gorm:"not null" json:"capacity"`
	Location  *string        `gorm:"size:255;uniqueIndex:idx_class_sessions_slot,priority:5" json:"location"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartsAt combines the calendar date and start time in loc.
func (s ClassSession) StartsAt(loc *time.Location) time.Time {
	return combine(time.Time(s.Date), time.Duration(s.StartTime), loc)
}

func (s ClassSession) EndsAt(loc *time.Location) time.Time {
	return combine(time.Time(s.Date), time.Duration(s.EndTime), loc)
}

func combine(day time.Time, offset time.Duration, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(offset)
}
