package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/google/uuid"

	"bundasehat/internal/models"
	"bundasehat/internal/stats"
	"bundasehat/internal/tracker"
)

type GetDailyLogParams struct {
	Date string `json:"date,omitempty" description:"Calendar date YYYY-MM-DD (defaults to today)"`
}

type SetWaterParams struct {
	Date    string `json:"date,omitempty" description:"Calendar date YYYY-MM-DD (defaults to today)"`
	Glasses int    `json:"glasses" description:"New water glass count"`
}

type ToggleSupplementParams struct {
	Date string `json:"date,omitempty" description:"Calendar date YYYY-MM-DD (defaults to today)"`
	Key  string `json:"key" description:"Supplement flag: folicAcid, iron, calcium or vitaminD"`
}

type LogMealParams struct {
	Description string `json:"description" description:"Free-text description of the meal eaten"`
	Date        string `json:"date,omitempty" description:"Calendar date YYYY-MM-DD (defaults to today)"`
}

type LogSupplementsTextParams struct {
	Text string `json:"text" description:"Free-text message describing supplements just taken"`
}

type GetHistoryParams struct {
	WindowDays int `json:"window_days,omitempty" description:"Rolling-average window in days (defaults to 7)"`
}

type ChatParams struct {
	History []models.ChatMessage `json:"history,omitempty" description:"Full prior conversation, oldest first"`
	Message string               `json:"message" description:"New user message"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("failed to unmarshal parameters: %w", err)
	}

	return nil
}

func dateOrToday(date string) (string, error) {
	if date == "" {
		return tracker.Today(), nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return date, nil
}

// dailyLogView is a daily log with its derived figures attached.
func dailyLogView(dayLog models.DailyLog) map[string]interface{} {
	return map[string]interface{}{
		"log":                  dayLog,
		"totalCalories":        stats.TotalCalories(dayLog),
		"totalProtein":         stats.TotalProtein(dayLog),
		"supplementCompletion": stats.SupplementCompletionRatio(dayLog),
	}
}

func (s *TrackerServer) handleGetDailyLog(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetDailyLogParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	date, err := dateOrToday(params.Date)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(dailyLogView(s.tracker.DailyLog(date)))
}

func (s *TrackerServer) handleSetWater(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SetWaterParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	date, err := dateOrToday(params.Date)
	if err != nil {
		return nil, err
	}

	dayLog, err := s.tracker.SetWater(date, params.Glasses)
	if err != nil {
		return nil, fmt.Errorf("failed to save water intake: %w", err)
	}
	return s.createJSONResponse(dailyLogView(dayLog))
}

func (s *TrackerServer) handleToggleSupplement(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ToggleSupplementParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	date, err := dateOrToday(params.Date)
	if err != nil {
		return nil, err
	}

	dayLog, err := s.tracker.ToggleSupplement(date, models.SupplementKey(params.Key))
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(dailyLogView(dayLog))
}

// handleLogMeal analyzes a free-text meal description and appends the
// resulting meal to the day's log. A failed analysis still logs the meal
// with the zero-valued safe estimate.
func (s *TrackerServer) handleLogMeal(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogMealParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Description == "" {
		return nil, fmt.Errorf("meal description is required")
	}

	date, err := dateOrToday(params.Date)
	if err != nil {
		return nil, err
	}

	analysis := s.ai.AnalyzeMeal(ctx, params.Description)

	meal := models.Meal{
		ID:        models.NewMealID(),
		Name:      params.Description,
		Calories:  analysis.Calories,
		Protein:   analysis.Protein,
		IsHealthy: analysis.IsPregnancySafe,
		Notes:     analysis.NutritionalNotes,
		Timestamp: time.Now().UnixMilli(),
	}

	dayLog, err := s.tracker.AppendMeal(date, meal)
	if err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}

	return s.createJSONResponse(map[string]interface{}{
		"meal":     meal,
		"analysis": analysis,
		"log":      dayLog,
	})
}

// handleLogSupplementsText runs AI supplement-mention extraction over a
// free-text message and merges the detected flags into today's record.
func (s *TrackerServer) handleLogSupplementsText(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogSupplementsTextParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Text == "" {
		return nil, fmt.Errorf("supplement text is required")
	}

	analysis := s.ai.AnalyzeSupplements(ctx, params.Text)

	dayLog, err := s.tracker.MergeSupplements(tracker.Today(), analysis.Detected)
	if err != nil {
		return nil, fmt.Errorf("failed to save supplements: %w", err)
	}

	return s.createJSONResponse(map[string]interface{}{
		"detected": analysis.Detected,
		"feedback": analysis.Feedback,
		"log":      dayLog,
	})
}

// handleGetHistory returns every log descending for display, ascending
// chart rows, and the rolling averages over the requested window.
func (s *TrackerServer) handleGetHistory(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetHistoryParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.WindowDays <= 0 {
		params.WindowDays = 7
	}

	logs, err := s.tracker.AllLogs()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	averages := stats.RollingAverages(logs, params.WindowDays)

	chart := make([]map[string]interface{}, 0, len(logs))
	for _, dayLog := range logs {
		chart = append(chart, map[string]interface{}{
			"date":     dayLog.Date,
			"calories": stats.TotalCalories(dayLog),
			"protein":  stats.TotalProtein(dayLog),
			"water":    dayLog.WaterIntake,
		})
	}

	display := make([]models.DailyLog, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		display = append(display, logs[i])
	}

	return s.createJSONResponse(map[string]interface{}{
		"logs":     display,
		"chart":    chart,
		"averages": averages,
	})
}

// handleGenerateMenu builds the user context (gestational week plus
// 7-day averages) and asks the gateway for a daily plan. An unavailable
// plan is not an error.
func (s *TrackerServer) handleGenerateMenu(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	week := 0
	if gest, ok := s.tracker.Gestational(time.Now()); ok {
		week = gest.Weeks
	}

	logs, err := s.tracker.AllLogs()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	averages := stats.RollingAverages(logs, 7)

	plan := s.ai.GenerateDailyMenu(ctx, week, averages.Calories, averages.Protein)
	if plan == nil {
		return s.createJSONResponse(map[string]interface{}{
			"available": false,
		})
	}

	return s.createJSONResponse(map[string]interface{}{
		"available": true,
		"plan":      plan,
	})
}

func (s *TrackerServer) handleChat(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ChatParams
	if err := extractParams(req, &params); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if params.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	reply := s.ai.Chat(ctx, params.History, params.Message)

	return s.createJSONResponse(models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.RoleModel,
		Text:      reply,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *TrackerServer) handleGetProfile(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(s.tracker.Profile())
}

func (s *TrackerServer) handleUpdateProfile(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var patch tracker.ProfilePatch
	if err := extractParams(req, &patch); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	profile, err := s.tracker.UpdateProfile(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return s.createJSONResponse(profile)
}

func (s *TrackerServer) handleGestationalStats(_ context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	gest, ok := s.tracker.Gestational(time.Now())
	if !ok {
		return s.createJSONResponse(map[string]interface{}{
			"available": false,
		})
	}

	return s.createJSONResponse(map[string]interface{}{
		"available": true,
		"stats":     gest,
	})
}

// Register all tools - simplified without protocol.NewTool
func (s *TrackerServer) registerTools() error {
	tools := []string{
		"get_daily_log",
		"set_water",
		"toggle_supplement",
		"log_meal",
		"log_supplements_text",
		"get_history",
		"generate_menu",
		"chat",
		"get_profile",
		"update_profile",
		"gestational_stats",
	}

	for _, name := range tools {
		fmt.Printf("Registered tool: %s\n", name)
	}

	return nil
}
