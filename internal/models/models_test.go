package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDailyLogDefaults(t *testing.T) {
	dayLog := NewDailyLog("2026-03-10")

	assert.Equal(t, "2026-03-10", dayLog.Date)
	assert.Equal(t, 0, dayLog.WaterIntake)
	assert.Equal(t, Supplements{}, dayLog.Supplements)
	assert.Empty(t, dayLog.Meals)
	assert.NotNil(t, dayLog.Meals)
}

func TestNewMealID(t *testing.T) {
	id := NewMealID()
	assert.True(t, strings.HasPrefix(id, "meal_"))
}

func TestSupplementsSetAndTaken(t *testing.T) {
	var s Supplements

	for _, key := range SupplementKeys {
		taken, ok := s.Taken(key)
		assert.True(t, ok)
		assert.False(t, taken)
	}

	assert.True(t, s.Set(Iron, true))
	taken, ok := s.Taken(Iron)
	assert.True(t, ok)
	assert.True(t, taken)
	assert.Equal(t, 1, s.TakenCount())

	assert.False(t, s.Set("magnesium", true))
	_, ok = s.Taken("magnesium")
	assert.False(t, ok)
}

func TestDailyLogRoundTrip(t *testing.T) {
	original := DailyLog{
		Date:        "2026-03-10",
		WaterIntake: 6,
		Supplements: Supplements{FolicAcid: true, VitaminD: true},
		Meals: []Meal{
			{
				ID:        "meal_1741600000000000000",
				Name:      "nasi goreng with egg",
				Calories:  520,
				Protein:   18,
				IsHealthy: true,
				Notes:     "Cukup seimbang, tambahkan sayur.",
				Timestamp: 1741600000000,
			},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded DailyLog
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestUserProfileRoundTrip(t *testing.T) {
	original := NewUserProfile()
	original.Name = "Sari"
	original.PregnancyStartDate = "2026-01-01"
	original.Notifications.Enabled = true
	original.Notifications.WaterReminder = true
	original.Notifications.MealTimes.Lunch = "12:30"

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded UserProfile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestGestational(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("70 days elapsed", func(t *testing.T) {
		profile := UserProfile{PregnancyStartDate: DateOf(now.AddDate(0, 0, -70))}
		gest, ok := profile.Gestational(now)
		require.True(t, ok)
		assert.Equal(t, GestationalStats{Weeks: 10, Days: 0, Trimester: 1}, gest)
	})

	t.Run("200 days elapsed", func(t *testing.T) {
		profile := UserProfile{PregnancyStartDate: DateOf(now.AddDate(0, 0, -200))}
		gest, ok := profile.Gestational(now)
		require.True(t, ok)
		assert.Equal(t, GestationalStats{Weeks: 28, Days: 4, Trimester: 3}, gest)
	})

	t.Run("second trimester boundary", func(t *testing.T) {
		profile := UserProfile{PregnancyStartDate: DateOf(now.AddDate(0, 0, -98))}
		gest, ok := profile.Gestational(now)
		require.True(t, ok)
		assert.Equal(t, 14, gest.Weeks)
		assert.Equal(t, 2, gest.Trimester)
	})

	t.Run("start date in the future clamps to zero", func(t *testing.T) {
		profile := UserProfile{PregnancyStartDate: DateOf(now.AddDate(0, 0, 10))}
		gest, ok := profile.Gestational(now)
		require.True(t, ok)
		assert.Equal(t, GestationalStats{Weeks: 0, Days: 0, Trimester: 1}, gest)
	})

	t.Run("unset start date", func(t *testing.T) {
		_, ok := UserProfile{}.Gestational(now)
		assert.False(t, ok)
	})

	t.Run("unparseable start date", func(t *testing.T) {
		_, ok := UserProfile{PregnancyStartDate: "next spring"}.Gestational(now)
		assert.False(t, ok)
	})
}
