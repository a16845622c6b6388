// ABOUTME: MCP tool implementations for logging and reading activity entries.
// ABOUTME: Provides log_* and recent_* tools per entry kind plus get_report.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Record a workout (Fuerza, Cardio, Funcional, Movilidad, Otro)",
	}, s.handleLogWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Record a meal with its food category and calories",
	}, s.handleLogMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_measurement",
		Description: "Record body measurements in cm and weight in kg; omitted fields use defaults",
	}, s.handleLogMeasurement)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recent_workouts",
		Description: "List the most recent workouts, newest first",
	}, s.handleRecentWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recent_meals",
		Description: "List the most recent meals, newest first",
	}, s.handleRecentMeals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recent_measurements",
		Description: "List the most recent measurements, newest first",
	}, s.handleRecentMeasurements)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_report",
		Description: "Calories by food category, workout series by type, and measurement trends",
	}, s.handleGetReport)
}

// Tool input/output types

type logWorkoutInput struct {
	Date            string `json:"date,omitempty" jsonschema:"Day of the workout as YYYY-MM-DD, defaults to today"`
	Type            string `json:"type" jsonschema:"Workout type: Fuerza, Cardio, Funcional, Movilidad or Otro"`
	DurationMinutes int    `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes"`
	Calories        int    `json:"calories,omitempty" jsonschema:"Estimated calories burned"`
	Notes           string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logMealInput struct {
	Date     string `json:"date,omitempty" jsonschema:"Day of the meal as YYYY-MM-DD, defaults to today"`
	Category string `json:"category" jsonschema:"Food category, e.g. Proteínas or protein"`
	Food     string `json:"food" jsonschema:"What was eaten"`
	Calories int    `json:"calories,omitempty" jsonschema:"Calories"`
	Notes    string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type logMeasurementInput struct {
	Date    string   `json:"date,omitempty" jsonschema:"Day of the measurement as YYYY-MM-DD, defaults to today"`
	Abdomen *float64 `json:"abdomen,omitempty" jsonschema:"Abdomen in cm"`
	Waist   *float64 `json:"waist,omitempty" jsonschema:"Waist in cm"`
	Chest   *float64 `json:"chest,omitempty" jsonschema:"Chest in cm"`
	Arm     *float64 `json:"arm,omitempty" jsonschema:"Arm in cm"`
	Leg     *float64 `json:"leg,omitempty" jsonschema:"Leg in cm"`
	Weight  *float64 `json:"weight,omitempty" jsonschema:"Weight in kg"`
	Notes   string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type recentInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 5)"`
}

type entryOutput struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, entryOutput, error) {
	date, err := models.ParseDateOrToday(input.Date)
	if err != nil {
		return nil, entryOutput{}, err
	}
	wt, err := models.ParseWorkoutType(input.Type)
	if err != nil {
		return nil, entryOutput{}, err
	}

	w := models.NewWorkout(s.user.ID, date, wt).
		WithDuration(input.DurationMinutes).
		WithCalories(input.Calories).
		WithNotes(input.Notes)
	if err := w.Validate(); err != nil {
		return nil, entryOutput{}, err
	}
	if err := s.repo.InsertWorkout(ctx, w); err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	return nil, entryOutput{
		ID:      w.ID,
		Date:    w.Date.String(),
		Message: fmt.Sprintf("Logged %s workout on %s: %d min, %d kcal", w.Type, w.Date, w.DurationMinutes, w.Calories),
	}, nil
}

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input logMealInput) (*mcp.CallToolResult, entryOutput, error) {
	date, err := models.ParseDateOrToday(input.Date)
	if err != nil {
		return nil, entryOutput{}, err
	}
	cat, err := models.ParseMealCategory(input.Category)
	if err != nil {
		return nil, entryOutput{}, err
	}

	m := models.NewMeal(s.user.ID, date, cat, input.Food).
		WithCalories(input.Calories).
		WithNotes(input.Notes)
	if err := m.Validate(); err != nil {
		return nil, entryOutput{}, err
	}
	if err := s.repo.InsertMeal(ctx, m); err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log meal: %w", err)
	}

	return nil, entryOutput{
		ID:      m.ID,
		Date:    m.Date.String(),
		Message: fmt.Sprintf("Logged %s (%s) on %s: %d kcal", m.Food, m.Category, m.Date, m.Calories),
	}, nil
}

func (s *Server) handleLogMeasurement(ctx context.Context, req *mcp.CallToolRequest, input logMeasurementInput) (*mcp.CallToolResult, entryOutput, error) {
	date, err := models.ParseDateOrToday(input.Date)
	if err != nil {
		return nil, entryOutput{}, err
	}

	m := models.NewMeasurement(s.user.ID, date).WithNotes(input.Notes)
	for name, v := range map[string]*float64{
		"abdomen": input.Abdomen,
		"waist":   input.Waist,
		"chest":   input.Chest,
		"arm":     input.Arm,
		"leg":     input.Leg,
		"weight":  input.Weight,
	} {
		if v != nil {
			m.Set(name, *v)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, entryOutput{}, err
	}
	if err := s.repo.InsertMeasurement(ctx, m); err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log measurement: %w", err)
	}

	return nil, entryOutput{
		ID:      m.ID,
		Date:    m.Date.String(),
		Message: fmt.Sprintf("Logged measurements on %s: weight %.1f kg", m.Date, m.Weight),
	}, nil
}

func (s *Server) handleRecentWorkouts(ctx context.Context, req *mcp.CallToolRequest, input recentInput) (*mcp.CallToolResult, any, error) {
	rows, err := s.repo.RecentWorkouts(ctx, s.user.ID, recentLimit(input))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(rows) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, map[string]any{"workouts": rows}, nil
}

func (s *Server) handleRecentMeals(ctx context.Context, req *mcp.CallToolRequest, input recentInput) (*mcp.CallToolResult, any, error) {
	rows, err := s.repo.RecentMeals(ctx, s.user.ID, recentLimit(input))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list meals: %w", err)
	}
	if len(rows) == 0 {
		return nil, map[string]any{"message": "No meals found."}, nil
	}
	return nil, map[string]any{"meals": rows}, nil
}

func (s *Server) handleRecentMeasurements(ctx context.Context, req *mcp.CallToolRequest, input recentInput) (*mcp.CallToolResult, any, error) {
	rows, err := s.repo.RecentMeasurements(ctx, s.user.ID, recentLimit(input))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	if len(rows) == 0 {
		return nil, map[string]any{"message": "No measurements found."}, nil
	}
	return nil, map[string]any{"measurements": rows}, nil
}

func (s *Server) handleGetReport(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	r, err := s.reports.Build(ctx, s.user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build report: %w", err)
	}
	return nil, r, nil
}

func recentLimit(in recentInput) int {
	if in.Limit <= 0 {
		return storage.DefaultRecentLimit
	}
	return in.Limit
}
