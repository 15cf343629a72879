package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundasehat/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func (s *Store) putRaw(t *testing.T, key, value string) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	require.NoError(t, err)
}

func TestDailyLogDefaultBeforeWrite(t *testing.T) {
	store := newTestStore(t)

	dayLog := store.DailyLog("2026-03-10")
	assert.Equal(t, models.NewDailyLog("2026-03-10"), dayLog)
}

func TestDailyLogSaveAndReload(t *testing.T) {
	store := newTestStore(t)

	dayLog := models.NewDailyLog("2026-03-10")
	dayLog.WaterIntake = 5
	dayLog.Supplements.Iron = true
	dayLog.Meals = []models.Meal{{ID: "meal_1", Name: "bubur ayam", Calories: 380, Protein: 12, Timestamp: 1}}
	require.NoError(t, store.SaveDailyLog(dayLog))

	assert.Equal(t, dayLog, store.DailyLog("2026-03-10"))
}

func TestDailyLogLastWriteWins(t *testing.T) {
	store := newTestStore(t)

	first := models.NewDailyLog("2026-03-10")
	first.WaterIntake = 3
	require.NoError(t, store.SaveDailyLog(first))

	second := models.NewDailyLog("2026-03-10")
	second.WaterIntake = 8
	require.NoError(t, store.SaveDailyLog(second))

	assert.Equal(t, 8, store.DailyLog("2026-03-10").WaterIntake)

	logs, err := store.AllDailyLogs()
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestDailyLogCorruptValueFallsBackToDefault(t *testing.T) {
	store := newTestStore(t)
	store.putRaw(t, "log_2026-03-10", "{not json")

	assert.Equal(t, models.NewDailyLog("2026-03-10"), store.DailyLog("2026-03-10"))
}

func TestAllDailyLogsSkipsProfileAndCorruptRows(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveDailyLog(models.NewDailyLog("2026-03-09")))
	require.NoError(t, store.SaveDailyLog(models.NewDailyLog("2026-03-10")))
	require.NoError(t, store.SaveProfile(models.NewUserProfile()))
	store.putRaw(t, "log_2026-03-08", "{broken")

	logs, err := store.AllDailyLogs()
	require.NoError(t, err)
	require.Len(t, logs, 2)

	dates := []string{logs[0].Date, logs[1].Date}
	assert.ElementsMatch(t, []string{"2026-03-09", "2026-03-10"}, dates)
}

func TestProfileDefaultAndRoundTrip(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, models.NewUserProfile(), store.Profile())

	profile := models.NewUserProfile()
	profile.Name = "Sari"
	profile.PregnancyStartDate = "2026-01-01"
	profile.Notifications.Enabled = true
	require.NoError(t, store.SaveProfile(profile))

	assert.Equal(t, profile, store.Profile())
}

func TestProfileCorruptValueFallsBackToDefault(t *testing.T) {
	store := newTestStore(t)
	store.putRaw(t, "user_profile", "not even close")

	assert.Equal(t, models.NewUserProfile(), store.Profile())
}
