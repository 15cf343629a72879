package gemini

import (
	"context"
	"fmt"

	"bundasehat/internal/models"
)

var mealAnalysisSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"calories":         {Type: "NUMBER", Description: "Estimated calories in kcal"},
		"protein":          {Type: "NUMBER", Description: "Estimated protein in grams"},
		"isPregnancySafe":  {Type: "BOOLEAN", Description: "Is this generally considered safe for pregnant women?"},
		"nutritionalNotes": {Type: "STRING", Description: "Brief advice (max 1 sentence) in the SAME LANGUAGE as input."},
	},
	Required: []string{"calories", "protein", "isPregnancySafe", "nutritionalNotes"},
}

// AnalyzeMeal estimates calories, protein and pregnancy safety for a
// free-text meal description. On any failure it returns a zero-valued
// safe result carrying an explanatory note; it never returns an error to
// the caller.
func (c *Client) AnalyzeMeal(ctx context.Context, description string) models.MealAnalysis {
	if !c.Configured() {
		return models.MealAnalysis{
			IsPregnancySafe:  true,
			NutritionalNotes: "API Key belum dikonfigurasi. Mohon cek pengaturan deployment.",
		}
	}

	prompt := fmt.Sprintf(`Analyze this meal for a pregnant woman: %q.
Estimate calories, protein, pregnancy safety, and provide brief nutritional notes.
IMPORTANT: The 'nutritionalNotes' MUST be in the SAME LANGUAGE as the user's input %q.`, description, description)

	var analysis models.MealAnalysis
	err := c.generateInto(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   mealAnalysisSchema,
		},
	}, &analysis)
	if err != nil {
		logFailure("meal analysis", err)
		return models.MealAnalysis{
			IsPregnancySafe:  true,
			NutritionalNotes: "Gagal menganalisis. Silakan coba lagi.",
		}
	}
	return analysis
}

var supplementSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"detected": {
			Type: "OBJECT",
			Properties: map[string]*schema{
				"folicAcid": {Type: "BOOLEAN"},
				"iron":      {Type: "BOOLEAN"},
				"calcium":   {Type: "BOOLEAN"},
				"vitaminD":  {Type: "BOOLEAN"},
			},
		},
		"feedback": {Type: "STRING", Description: "Brief confirmation message in user's language"},
	},
}

// AnalyzeSupplements extracts which of the four supplements a free-text
// message says were taken. Only explicitly mentioned supplements appear
// in the result; absence means "not mentioned", not "false". Failures
// yield an empty detection map and never an error.
func (c *Client) AnalyzeSupplements(ctx context.Context, text string) models.SupplementAnalysis {
	if !c.Configured() {
		return models.SupplementAnalysis{
			Detected: map[models.SupplementKey]bool{},
			Feedback: "API Key missing.",
		}
	}

	prompt := fmt.Sprintf(`Analyze this text from a pregnant woman: %q. Determine which supplements she just took.
Mapping:
- Folic Acid / Asam Folat -> folicAcid
- Iron / Zat Besi / TTD -> iron
- Calcium / Kalsium -> calcium
- Vitamin D -> vitaminD

Output JSON.
1. Set booleans to true ONLY if explicitly mentioned.
2. 'feedback': A very short sentence confirming what was logged (e.g., "Logged Iron and Calcium.") in the SAME LANGUAGE as the input text.`, text)

	var analysis models.SupplementAnalysis
	err := c.generateInto(ctx, generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   supplementSchema,
		},
	}, &analysis)
	if err != nil {
		logFailure("supplement analysis", err)
		return models.SupplementAnalysis{Detected: map[models.SupplementKey]bool{}}
	}

	// Keep only the four known flags; the model occasionally invents
	// extra keys.
	detected := map[models.SupplementKey]bool{}
	for _, key := range models.SupplementKeys {
		if analysis.Detected[key] {
			detected[key] = true
		}
	}
	analysis.Detected = detected
	if analysis.Feedback == "" {
		analysis.Feedback = "Processed."
	}
	return analysis
}
