package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anjiri1684/pgym_booking/models"
	"github.com/anjiri1684/pgym_booking/schedule"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenerationReport struct {
	Days    int `json:"days"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// existingPersonalSlots loads the identity of every Personal session already
// stored for the horizon.
func existingPersonalSlots(db *gorm.DB, from, to time.Time, location string) (schedule.ExistingSet, error) {
	var sessions []models.ClassSession
	err := db.Select("date", "start_time", "end_time", "location").
		Where("title = ? AND location = ? AND date BETWEEN ? AND ?",
			schedule.PersonalTitle, location, datatypes.Date(from), datatypes.Date(to)).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	set := make(schedule.ExistingSet, len(sessions))
	for _, s := range sessions {
		set.Add(schedule.SlotKey{
			Date:     time.Time(s.Date).Format("2006-01-02"),
			Start:    time.Duration(s.StartTime),
			End:      time.Duration(s.EndTime),
			Location: location,
		})
	}
	return set, nil
}

// GeneratePersonalSlots fills the horizon with missing Personal sessions. Bad
// settings abort before anything is written. Each day commits on its own, and
// the unique slot index turns concurrent or repeated inserts into no-ops.
func GeneratePersonalSlots(ctx context.Context, db *gorm.DB, settings schedule.Settings, today time.Time) (GenerationReport, error) {
	var report GenerationReport
	if err := settings.Validate(); err != nil {
		return report, err
	}

	days := schedule.Horizon(today, settings.WeeksAhead)
	existing, err := existingPersonalSlots(db.WithContext(ctx), days[0], days[len(days)-1], settings.DefaultLocation)
	if err != nil {
		return report, fmt.Errorf("loading existing slots: %w", err)
	}

	plans, err := schedule.Plan(today, settings, schedule.DefaultTemplate, existing)
	if err != nil {
		return report, err
	}

	var coach *string
	if settings.PersonalCoach != "" {
		c := settings.PersonalCoach
		coach = &c
	}
	location := settings.DefaultLocation

	for _, day := range plans {
		if len(day.Missing) == 0 {
			report.Days++
			report.Skipped += day.Skipped
			continue
		}

		rows := make([]models.ClassSession, len(day.Missing))
		for i, slot := range day.Missing {
			rows[i] = models.ClassSession{
				ID:        uuid.New(),
				Title:     schedule.PersonalTitle,
				Coach:     coach,
				Date:      datatypes.Date(day.Date),
				StartTime: datatypes.Time(slot.Start),
				EndTime:   datatypes.Time(slot.End),
				Capacity:  settings.PersonalCapacity,
				Location:  &location,
			}
		}

		var inserted int64
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
			inserted = res.RowsAffected
			return res.Error
		})
		if err != nil {
			return report, fmt.Errorf("generating slots for %s: %w", day.Date.Format("2006-01-02"), err)
		}
		report.Days++
		report.Created += int(inserted)
		report.Skipped += day.Skipped + len(rows) - int(inserted)
	}
	return report, nil
}
