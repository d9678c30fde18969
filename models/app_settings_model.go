package models

import "time"

const SettingsRowID uint = 1

type AppSettings struct {
	ID                  uint   `gorm:"primaryKey" json:"-"`
	WeeksAhead          int    `gorm:"not null" json:"weeks_ahead"`
	PersonalCapacity    int    `gorm:"not null" json:"personal_capacity"`
	PersonalDurationMin int    `gorm:"not null" json:"personal_duration_min"`
	PersonalCoach       string `gorm:"size:255" json:"personal_coach"`

	UpdatedAt time.Time `json:"updated_at"`
}
