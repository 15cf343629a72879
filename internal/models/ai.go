package models

// MealAnalysis is the structured result of an AI meal estimation.
type MealAnalysis struct {
	Calories         float64 `json:"calories"`
	Protein          float64 `json:"protein"`
	IsPregnancySafe  bool    `json:"isPregnancySafe"`
	NutritionalNotes string  `json:"nutritionalNotes"`
}

// SupplementAnalysis is the structured result of AI supplement-mention
// extraction. Detected holds only the flags the text explicitly
// mentioned; an absent key means "not mentioned", never "false".
type SupplementAnalysis struct {
	Detected map[SupplementKey]bool `json:"detected"`
	Feedback string                 `json:"feedback"`
}

// MenuItem is one recommended dish in a generated daily menu.
type MenuItem struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	EstimatedCalories float64 `json:"estimatedCalories"`
	EstimatedProtein  float64 `json:"estimatedProtein"`
}

// DailyMenuPlan is a generated one-day meal plan.
type DailyMenuPlan struct {
	Breakfast            MenuItem `json:"breakfast"`
	Lunch                MenuItem `json:"lunch"`
	Dinner               MenuItem `json:"dinner"`
	Snack                MenuItem `json:"snack"`
	NutritionalReasoning string   `json:"nutritionalReasoning"`
	CookingTip           string   `json:"cookingTip"`
}

// Chat roles as the gateway expects them.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of the advisor conversation. The gateway is
// stateless, so callers resend the full prior sequence with every call.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}
