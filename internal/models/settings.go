package models

import (
	"time"

	"gorm.io/gorm"
)

// Settings is the single row of instance wide configuration.
type Settings struct {
	ID           uint `gorm:"primaryKey" json:"-"`
	WeekStartDay time.Weekday
	Timestamps
}

func (s *Settings) BeforeSave(_ *gorm.DB) error {
	if s.WeekStartDay < time.Sunday || s.WeekStartDay > time.Saturday {
		return ErrWeekStartInvalid
	}

	return nil
}

// LoadSettings returns the instance settings, creating them with their
// defaults on first use. The default week start is Monday.
func LoadSettings(db *gorm.DB) (Settings, error) {
	settings := Settings{ID: 1, WeekStartDay: time.Monday}
	err := db.FirstOrCreate(&settings, Settings{ID: 1}).Error
	return settings, err
}
