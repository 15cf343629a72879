package models

import (
	"time"
)

// MealTimes are the declared reminder times for the three main meals,
// "HH:MM" in local time.
type MealTimes struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// NotificationConfig is declared reminder configuration. It is persisted
// and merged like any other profile field but never armed here;
// scheduling belongs to the host platform.
type NotificationConfig struct {
	Enabled            bool      `json:"enabled"`
	WaterReminder      bool      `json:"waterReminder"`
	WaterInterval      int       `json:"waterInterval"` // minutes
	MealReminder       bool      `json:"mealReminder"`
	MealTimes          MealTimes `json:"mealTimes"`
	SupplementReminder bool      `json:"supplementReminder"`
	SupplementTime     string    `json:"supplementTime"`
}

// UserProfile is the process-wide singleton user record. The pregnancy
// start date is the HPHT (last menstrual period) date, YYYY-MM-DD, and
// may be empty when not yet set.
type UserProfile struct {
	Name               string             `json:"name"`
	PregnancyStartDate string             `json:"pregnancyStartDate"`
	Notifications      NotificationConfig `json:"notifications"`
}

// NewUserProfile returns the first-run profile: empty identity, sensible
// reminder defaults.
func NewUserProfile() UserProfile {
	return UserProfile{
		Notifications: NotificationConfig{
			WaterInterval: 60,
			MealTimes: MealTimes{
				Breakfast: "07:00",
				Lunch:     "12:00",
				Dinner:    "19:00",
			},
			SupplementTime: "08:00",
		},
	}
}

// GestationalStats is the derived pregnancy progress at a reference
// instant. Never stored.
type GestationalStats struct {
	Weeks     int `json:"weeks"`
	Days      int `json:"days"`
	Trimester int `json:"trimester"`
}

// Gestational computes week, remainder day and trimester from the
// pregnancy start date. The second result is false when no start date is
// set or it does not parse. A reference instant before the start date
// clamps to zero elapsed days.
func (p UserProfile) Gestational(now time.Time) (GestationalStats, bool) {
	if p.PregnancyStartDate == "" {
		return GestationalStats{}, false
	}
	start, err := time.ParseInLocation(DateLayout, p.PregnancyStartDate, now.Location())
	if err != nil {
		return GestationalStats{}, false
	}

	elapsed := int(now.Sub(start).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}

	stats := GestationalStats{
		Weeks:     elapsed / 7,
		Days:      elapsed % 7,
		Trimester: 1,
	}
	if stats.Weeks >= 28 {
		stats.Trimester = 3
	} else if stats.Weeks >= 14 {
		stats.Trimester = 2
	}
	return stats, true
}
