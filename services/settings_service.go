package services

import (
	"fmt"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/anjiri1684/pgym_booking/models"
	"github.com/anjiri1684/pgym_booking/schedule"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func defaultSettingsRow() models.AppSettings {
	return models.AppSettings{
		ID:                  models.SettingsRowID,
		WeeksAhead:          config.Int("DEFAULT_WEEKS_AHEAD", 4),
		PersonalCapacity:    config.Int("DEFAULT_PERSONAL_CAPACITY", 1),
		PersonalDurationMin: config.Int("DEFAULT_PERSONAL_DURATION_MIN", 60),
		PersonalCoach:       config.String("DEFAULT_PERSONAL_COACH", ""),
	}
}

// LoadSettings returns the singleton settings row, creating it from the
// configured defaults on first access.
func LoadSettings(db *gorm.DB) (*models.AppSettings, error) {
	row := defaultSettingsRow()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("initialising settings: %w", err)
	}
	var settings models.AppSettings
	if err := db.First(&settings, models.SettingsRowID).Error; err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return &settings, nil
}

// SettingsSnapshot is the explicit configuration a generation pass runs with.
func SettingsSnapshot(row *models.AppSettings, location string) schedule.Settings {
	return schedule.Settings{
		WeeksAhead:          row.WeeksAhead,
		PersonalCapacity:    row.PersonalCapacity,
		PersonalDurationMin: row.PersonalDurationMin,
		PersonalCoach:       row.PersonalCoach,
		DefaultLocation:     location,
	}
}

// CurrentSnapshot reads the settings row fresh and pairs it with the
// deployment's default location.
func CurrentSnapshot(db *gorm.DB) (schedule.Settings, error) {
	row, err := LoadSettings(db)
	if err != nil {
		return schedule.Settings{}, err
	}
	return SettingsSnapshot(row, config.DefaultLocation()), nil
}

type SettingsPatch struct {
	WeeksAhead          *int
	PersonalCapacity    *int
	PersonalDurationMin *int
	PersonalCoach       *string
}

func (p SettingsPatch) apply(row *models.AppSettings) {
	if p.WeeksAhead != nil {
		row.WeeksAhead = *p.WeeksAhead
	}
	if p.PersonalCapacity != nil {
		row.PersonalCapacity = *p.PersonalCapacity
	}
	if p.PersonalDurationMin != nil {
		row.PersonalDurationMin = *p.PersonalDurationMin
	}
	if p.PersonalCoach != nil {
		row.PersonalCoach = *p.PersonalCoach
	}
}

// UpdateSettings validates the patched values before anything is saved.
func UpdateSettings(db *gorm.DB, patch SettingsPatch) (*models.AppSettings, error) {
	row, err := LoadSettings(db)
	if err != nil {
		return nil, err
	}
	patch.apply(row)
	if err := SettingsSnapshot(row, config.DefaultLocation()).Validate(); err != nil {
		return nil, err
	}
	if err := db.Save(row).Error; err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return row, nil
}
