package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundasehat/internal/models"
	"bundasehat/internal/storage"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func TestDailyLogDefaultsBeforeAnyWrite(t *testing.T) {
	tr := newTestTracker(t)

	dayLog := tr.DailyLog("2026-03-10")
	assert.Equal(t, 0, dayLog.WaterIntake)
	assert.Equal(t, models.Supplements{}, dayLog.Supplements)
	assert.Empty(t, dayLog.Meals)
}

func TestSetWater(t *testing.T) {
	tr := newTestTracker(t)

	dayLog, err := tr.SetWater("2026-03-10", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, dayLog.WaterIntake)

	// There is no upper bound.
	dayLog, err = tr.SetWater("2026-03-10", 40)
	require.NoError(t, err)
	assert.Equal(t, 40, dayLog.WaterIntake)

	// Negative input clamps to zero.
	dayLog, err = tr.SetWater("2026-03-10", -1)
	require.NoError(t, err)
	assert.Equal(t, 0, dayLog.WaterIntake)
}

func TestToggleSupplementIsItsOwnInverse(t *testing.T) {
	tr := newTestTracker(t)

	dayLog, err := tr.ToggleSupplement("2026-03-10", models.Calcium)
	require.NoError(t, err)
	assert.True(t, dayLog.Supplements.Calcium)
	assert.Equal(t, models.Supplements{Calcium: true}, dayLog.Supplements)

	dayLog, err = tr.ToggleSupplement("2026-03-10", models.Calcium)
	require.NoError(t, err)
	assert.Equal(t, models.Supplements{}, dayLog.Supplements)
}

func TestToggleSupplementUnknownKey(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.ToggleSupplement("2026-03-10", "zinc")
	assert.Error(t, err)
	assert.Equal(t, models.Supplements{}, tr.DailyLog("2026-03-10").Supplements)
}

func TestMergeSupplementsLeavesOtherFlagsAlone(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.ToggleSupplement("2026-03-10", models.FolicAcid)
	require.NoError(t, err)

	dayLog, err := tr.MergeSupplements("2026-03-10", map[models.SupplementKey]bool{models.Iron: true})
	require.NoError(t, err)
	assert.Equal(t, models.Supplements{FolicAcid: true, Iron: true}, dayLog.Supplements)

	// Merging an already-set flag is a no-op, and false entries never
	// clear anything.
	dayLog, err = tr.MergeSupplements("2026-03-10", map[models.SupplementKey]bool{
		models.Iron:      true,
		models.FolicAcid: false,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Supplements{FolicAcid: true, Iron: true}, dayLog.Supplements)
}

func TestAppendMealPrepends(t *testing.T) {
	tr := newTestTracker(t)

	mealA := models.Meal{ID: "meal_a", Name: "A", Calories: 300, Timestamp: 1}
	mealB := models.Meal{ID: "meal_b", Name: "B", Calories: 450, Timestamp: 2}

	_, err := tr.AppendMeal("2026-03-10", mealA)
	require.NoError(t, err)
	dayLog, err := tr.AppendMeal("2026-03-10", mealB)
	require.NoError(t, err)

	require.Len(t, dayLog.Meals, 2)
	assert.Equal(t, "meal_b", dayLog.Meals[0].ID)
	assert.Equal(t, "meal_a", dayLog.Meals[1].ID)
}

func TestAllLogsSortedAscending(t *testing.T) {
	tr := newTestTracker(t)

	for _, date := range []string{"2026-03-10", "2026-03-08", "2026-03-09"} {
		_, err := tr.SetWater(date, 1)
		require.NoError(t, err)
	}

	logs, err := tr.AllLogs()
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2026-03-08", logs[0].Date)
	assert.Equal(t, "2026-03-09", logs[1].Date)
	assert.Equal(t, "2026-03-10", logs[2].Date)
}

func TestUpdateProfileShallowMerge(t *testing.T) {
	tr := newTestTracker(t)

	name := "Sari"
	start := "2026-01-01"
	profile, err := tr.UpdateProfile(ProfilePatch{Name: &name, PregnancyStartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, "Sari", profile.Name)
	assert.Equal(t, "2026-01-01", profile.PregnancyStartDate)

	// A nested notification patch keeps every unspecified field.
	enabled := true
	lunch := "13:00"
	profile, err = tr.UpdateProfile(ProfilePatch{
		Notifications: &NotificationPatch{
			Enabled:   &enabled,
			MealTimes: &MealTimesPatch{Lunch: &lunch},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sari", profile.Name)
	assert.True(t, profile.Notifications.Enabled)
	assert.Equal(t, "13:00", profile.Notifications.MealTimes.Lunch)
	assert.Equal(t, "07:00", profile.Notifications.MealTimes.Breakfast)
	assert.Equal(t, "19:00", profile.Notifications.MealTimes.Dinner)
	assert.Equal(t, 60, profile.Notifications.WaterInterval)

	// Persisted across a fresh read.
	assert.Equal(t, profile, tr.Profile())
}

func TestGestationalFromProfile(t *testing.T) {
	tr := newTestTracker(t)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	_, ok := tr.Gestational(now)
	assert.False(t, ok)

	start := models.DateOf(now.AddDate(0, 0, -70))
	_, err := tr.UpdateProfile(ProfilePatch{PregnancyStartDate: &start})
	require.NoError(t, err)

	gest, ok := tr.Gestational(now)
	require.True(t, ok)
	assert.Equal(t, models.GestationalStats{Weeks: 10, Days: 0, Trimester: 1}, gest)
}
