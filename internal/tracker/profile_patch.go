package tracker

import (
	"bundasehat/internal/models"
)

// ProfilePatch is a partial profile update: nil fields keep their prior
// values, including inside the nested notification configuration.
type ProfilePatch struct {
	Name               *string            `json:"name,omitempty"`
	PregnancyStartDate *string            `json:"pregnancyStartDate,omitempty"`
	Notifications      *NotificationPatch `json:"notifications,omitempty"`
}

type NotificationPatch struct {
	Enabled            *bool           `json:"enabled,omitempty"`
	WaterReminder      *bool           `json:"waterReminder,omitempty"`
	WaterInterval      *int            `json:"waterInterval,omitempty"`
	MealReminder       *bool           `json:"mealReminder,omitempty"`
	MealTimes          *MealTimesPatch `json:"mealTimes,omitempty"`
	SupplementReminder *bool           `json:"supplementReminder,omitempty"`
	SupplementTime     *string         `json:"supplementTime,omitempty"`
}

type MealTimesPatch struct {
	Breakfast *string `json:"breakfast,omitempty"`
	Lunch     *string `json:"lunch,omitempty"`
	Dinner    *string `json:"dinner,omitempty"`
}

func (p ProfilePatch) apply(profile models.UserProfile) models.UserProfile {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.PregnancyStartDate != nil {
		profile.PregnancyStartDate = *p.PregnancyStartDate
	}
	if p.Notifications != nil {
		profile.Notifications = p.Notifications.apply(profile.Notifications)
	}
	return profile
}

func (p NotificationPatch) apply(cfg models.NotificationConfig) models.NotificationConfig {
	if p.Enabled != nil {
		cfg.Enabled = *p.Enabled
	}
	if p.WaterReminder != nil {
		cfg.WaterReminder = *p.WaterReminder
	}
	if p.WaterInterval != nil {
		cfg.WaterInterval = *p.WaterInterval
	}
	if p.MealReminder != nil {
		cfg.MealReminder = *p.MealReminder
	}
	if p.MealTimes != nil {
		cfg.MealTimes = p.MealTimes.apply(cfg.MealTimes)
	}
	if p.SupplementReminder != nil {
		cfg.SupplementReminder = *p.SupplementReminder
	}
	if p.SupplementTime != nil {
		cfg.SupplementTime = *p.SupplementTime
	}
	return cfg
}

func (p MealTimesPatch) apply(times models.MealTimes) models.MealTimes {
	if p.Breakfast != nil {
		times.Breakfast = *p.Breakfast
	}
	if p.Lunch != nil {
		times.Lunch = *p.Lunch
	}
	if p.Dinner != nil {
		times.Dinner = *p.Dinner
	}
	return times
}

// UpdateProfile shallow-merges the patch into the singleton profile and
// persists the result.
func (t *Tracker) UpdateProfile(patch ProfilePatch) (models.UserProfile, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	profile := patch.apply(t.store.Profile())
	return profile, t.store.SaveProfile(profile)
}
