// Package stats derives nutrition figures from daily logs. Everything
// here is a pure function; logs are read, never mutated.
package stats

import (
	"math"

	"bundasehat/internal/models"
)

// TotalCalories sums the calories of every meal in a log.
func TotalCalories(dayLog models.DailyLog) float64 {
	total := 0.0
	for _, meal := range dayLog.Meals {
		total += meal.Calories
	}
	return total
}

// TotalProtein sums the protein grams of every meal in a log.
func TotalProtein(dayLog models.DailyLog) float64 {
	total := 0.0
	for _, meal := range dayLog.Meals {
		total += meal.Protein
	}
	return total
}

// SupplementCompletionRatio is the fraction of the four supplement flags
// that are set, in [0, 1].
func SupplementCompletionRatio(dayLog models.DailyLog) float64 {
	return float64(dayLog.Supplements.TakenCount()) / float64(len(models.SupplementKeys))
}

// Averages are rounded per-day means over a rolling window.
type Averages struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Water    float64 `json:"water"`
	MealDays int     `json:"mealDays"`
	Days     int     `json:"days"`
}

// RollingAverages computes per-day means over the last windowDays
// entries of a date-ascending log sequence (all entries when fewer
// exist). Calorie and protein means cover only the window days with at
// least one logged meal; the water mean covers every day in the window,
// because water is logged independently of meals. Empty windows yield
// zeroes.
func RollingAverages(logs []models.DailyLog, windowDays int) Averages {
	if windowDays > 0 && len(logs) > windowDays {
		logs = logs[len(logs)-windowDays:]
	}
	if len(logs) == 0 {
		return Averages{}
	}

	var totalCal, totalProt, totalWater float64
	mealDays := 0
	for _, dayLog := range logs {
		totalWater += float64(dayLog.WaterIntake)
		if len(dayLog.Meals) > 0 {
			totalCal += TotalCalories(dayLog)
			totalProt += TotalProtein(dayLog)
			mealDays++
		}
	}

	avg := Averages{
		Water:    math.Round(totalWater / float64(len(logs))),
		MealDays: mealDays,
		Days:     len(logs),
	}
	if mealDays > 0 {
		avg.Calories = math.Round(totalCal / float64(mealDays))
		avg.Protein = math.Round(totalProt / float64(mealDays))
	}
	return avg
}
