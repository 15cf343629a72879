package gemini

import (
	"context"
	"fmt"

	"bundasehat/internal/models"
)

var menuItemSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"name":              {Type: "STRING"},
		"description":       {Type: "STRING"},
		"estimatedCalories": {Type: "NUMBER"},
		"estimatedProtein":  {Type: "NUMBER"},
	},
}

var menuPlanSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"breakfast":            menuItemSchema,
		"lunch":                menuItemSchema,
		"dinner":               menuItemSchema,
		"snack":                menuItemSchema,
		"nutritionalReasoning": {Type: "STRING"},
		"cookingTip":           {Type: "STRING"},
	},
}

// GenerateDailyMenu asks for a one-day meal plan tuned to the user's
// gestational week and recent average intake. It returns nil on any
// failure; callers treat nil as "no recommendation available", not as an
// error state.
func (c *Client) GenerateDailyMenu(ctx context.Context, week int, avgCalories, avgProtein float64) *models.DailyMenuPlan {
	if !c.Configured() {
		return nil
	}

	prompt := fmt.Sprintf(`Act as a professional nutritionist for pregnant women in Indonesia.
User Context:
- Pregnancy Week: %d
- Recent Average Intake: %.0f kcal/day, %.0fg protein/day.
- Target: ~2200 kcal/day, ~75g protein/day.

Task: Generate a 1-day meal plan (Breakfast, Lunch, Dinner, Snack) using INDONESIAN CUISINE that helps balance her nutrition.
If her protein is low, suggest high protein meals. If calories are low, suggest nutrient-dense foods.

Also provide:
1. 'nutritionalReasoning': A short explanation (in Indonesian) why this menu fits her current stats/deficiencies.
2. 'cookingTip': A specific food safety or cooking tip relevant to pregnancy (in Indonesian).

Output must be strictly JSON.`, week, avgCalories, avgProtein)

	var plan models.DailyMenuPlan
	err := c.generateInto(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   menuPlanSchema,
		},
	}, &plan)
	if err != nil {
		logFailure("menu generation", err)
		return nil
	}
	return &plan
}
