package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used for log keys, in the
// device's local time zone.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t as a log key component.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Meal is a single logged meal. Meals are append-only: once created they
// are never edited in place.
type Meal struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"` // grams
	IsHealthy bool    `json:"isHealthy"`
	Notes     string  `json:"notes,omitempty"`
	Timestamp int64   `json:"timestamp"` // unix milliseconds
}

// NewMealID generates a time-derived meal identifier. Collisions require
// two meals created within the same nanosecond, which a single-user app
// cannot produce.
func NewMealID() string {
	return fmt.Sprintf("meal_%d", time.Now().UnixNano())
}

// SupplementKey names one of the four tracked supplement flags.
type SupplementKey string

const (
	FolicAcid SupplementKey = "folicAcid"
	Iron      SupplementKey = "iron"
	Calcium   SupplementKey = "calcium"
	VitaminD  SupplementKey = "vitaminD"
)

// SupplementKeys lists every tracked supplement, in display order.
var SupplementKeys = []SupplementKey{FolicAcid, Iron, Calcium, VitaminD}

// Supplements holds the four independent daily intake flags.
type Supplements struct {
	FolicAcid bool `json:"folicAcid"`
	Iron      bool `json:"iron"`
	Calcium   bool `json:"calcium"`
	VitaminD  bool `json:"vitaminD"`
}

func (s Supplements) flag(key SupplementKey) *bool {
	switch key {
	case FolicAcid:
		return &s.FolicAcid
	case Iron:
		return &s.Iron
	case Calcium:
		return &s.Calcium
	case VitaminD:
		return &s.VitaminD
	}
	return nil
}

// Taken reports whether the named supplement was taken. The second
// result is false for an unknown key.
func (s Supplements) Taken(key SupplementKey) (bool, bool) {
	f := s.flag(key)
	if f == nil {
		return false, false
	}
	return *f, true
}

// Set updates the named flag and reports whether the key was known.
func (s *Supplements) Set(key SupplementKey, taken bool) bool {
	switch key {
	case FolicAcid:
		s.FolicAcid = taken
	case Iron:
		s.Iron = taken
	case Calcium:
		s.Calcium = taken
	case VitaminD:
		s.VitaminD = taken
	default:
		return false
	}
	return true
}

// TakenCount returns how many of the four flags are set.
func (s Supplements) TakenCount() int {
	n := 0
	for _, key := range SupplementKeys {
		if taken, _ := s.Taken(key); taken {
			n++
		}
	}
	return n
}

// DailyLog is the per-calendar-date record of water, supplements and
// meals. Meals are stored newest first.
type DailyLog struct {
	Date        string      `json:"date"` // YYYY-MM-DD, local time
	WaterIntake int         `json:"waterIntake"`
	Supplements Supplements `json:"supplements"`
	Meals       []Meal      `json:"meals"`
}

// NewDailyLog returns the zero-valued log for a date: no water, no
// supplements, no meals.
func NewDailyLog(date string) DailyLog {
	return DailyLog{
		Date:  date,
		Meals: []Meal{},
	}
}
