// Package tracker holds the application state: the per-day logs and the
// user profile, with every mutation persisted immediately through named
// update operations.
package tracker

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bundasehat/internal/models"
	"bundasehat/internal/storage"
)

// Tracker is the single mutable state object of the application. The
// original runs single-threaded; the mutex restores that single-writer
// model under a concurrent HTTP server, with last write winning at the
// storage layer.
type Tracker struct {
	mu    sync.Mutex
	store *storage.Store
}

func New(store *storage.Store) *Tracker {
	return &Tracker{store: store}
}

// Today returns the current local calendar date.
func Today() string {
	return models.DateOf(time.Now())
}

// DailyLog returns the record for a date, zero-valued if none was ever
// written. It never fails.
func (t *Tracker) DailyLog(date string) models.DailyLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.DailyLog(date)
}

// SetWater replaces the water glass count for a date. Negative input
// clamps to zero; there is no upper bound.
func (t *Tracker) SetWater(date string, glasses int) (models.DailyLog, error) {
	if glasses < 0 {
		glasses = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	dayLog := t.store.DailyLog(date)
	dayLog.WaterIntake = glasses
	return dayLog, t.store.SaveDailyLog(dayLog)
}

// ToggleSupplement flips exactly one supplement flag, leaving the others
// untouched.
func (t *Tracker) ToggleSupplement(date string, key models.SupplementKey) (models.DailyLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dayLog := t.store.DailyLog(date)
	taken, ok := dayLog.Supplements.Taken(key)
	if !ok {
		return dayLog, fmt.Errorf("unknown supplement %q", key)
	}
	dayLog.Supplements.Set(key, !taken)
	return dayLog, t.store.SaveDailyLog(dayLog)
}

// MergeSupplements sets the flags present and true in detected, leaving
// every other flag unchanged. Absence means "not mentioned", so a flag
// is never forced back to false here. This is the integration point for
// AI-detected supplement mentions.
func (t *Tracker) MergeSupplements(date string, detected map[models.SupplementKey]bool) (models.DailyLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dayLog := t.store.DailyLog(date)
	for key, taken := range detected {
		if taken {
			dayLog.Supplements.Set(key, true)
		}
	}
	return dayLog, t.store.SaveDailyLog(dayLog)
}

// AppendMeal prepends a meal to the date's log, keeping newest first.
func (t *Tracker) AppendMeal(date string, meal models.Meal) (models.DailyLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	dayLog := t.store.DailyLog(date)
	dayLog.Meals = append([]models.Meal{meal}, dayLog.Meals...)
	return dayLog, t.store.SaveDailyLog(dayLog)
}

// AllLogs returns every persisted daily log sorted ascending by date.
func (t *Tracker) AllLogs() ([]models.DailyLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	logs, err := t.store.AllDailyLogs()
	if err != nil {
		return nil, err
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })
	return logs, nil
}

// Profile returns the singleton user profile.
func (t *Tracker) Profile() models.UserProfile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Profile()
}

// Gestational computes pregnancy progress at the reference instant. The
// second result is false when no pregnancy start date is set.
func (t *Tracker) Gestational(now time.Time) (models.GestationalStats, bool) {
	return t.Profile().Gestational(now)
}
