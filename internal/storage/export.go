// ABOUTME: Per-user export and import of fitness history.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fuerza/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData is the portable form of one user's history.
type ExportData struct {
	Version      string                `json:"version" yaml:"version"`
	ExportedAt   time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool         string                `json:"tool" yaml:"tool"`
	User         *models.User          `json:"user,omitempty" yaml:"user,omitempty"`
	Workouts     []*models.Workout     `json:"workouts" yaml:"workouts"`
	Meals        []*models.Meal        `json:"meals" yaml:"meals"`
	Measurements []*models.Measurement `json:"measurements" yaml:"measurements"`
}

// ExportUser collects a user's profile and full history.
func (d *DB) ExportUser(ctx context.Context, userID int64) (*ExportData, error) {
	user, err := d.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	workouts, err := d.AllWorkouts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	meals, err := d.AllMeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	measurements, err := d.AllMeasurements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}

	return &ExportData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		Tool:         "fuerza",
		User:         user,
		Workouts:     workouts,
		Meals:        meals,
		Measurements: measurements,
	}, nil
}

// ImportData appends every entry in data to userID's history in one
// transaction. Original ids are discarded.
func (d *DB) ImportData(ctx context.Context, userID int64, data *ExportData) error {
	return d.WithTx(ctx, func(tx Repository) error {
		for _, w := range data.Workouts {
			w.UserID = userID
			if err := tx.InsertWorkout(ctx, w); err != nil {
				return fmt.Errorf("import workout: %w", err)
			}
		}
		for _, m := range data.Meals {
			m.UserID = userID
			if err := tx.InsertMeal(ctx, m); err != nil {
				return fmt.Errorf("import meal: %w", err)
			}
		}
		for _, m := range data.Measurements {
			m.UserID = userID
			if err := tx.InsertMeasurement(ctx, m); err != nil {
				return fmt.Errorf("import measurement: %w", err)
			}
		}
		return nil
	})
}

// ExportJSON exports a user's history as JSON.
func (d *DB) ExportJSON(ctx context.Context, userID int64) ([]byte, error) {
	data, err := d.ExportUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports a user's history as YAML.
func (d *DB) ExportYAML(ctx context.Context, userID int64) ([]byte, error) {
	data, err := d.ExportUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports history from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, userID int64, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, userID, &data)
}

// ImportYAML imports history from YAML bytes.
func (d *DB) ImportYAML(ctx context.Context, userID int64, raw []byte) error {
	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal YAML: %w", err)
	}
	return d.ImportData(ctx, userID, &data)
}

// ExportMarkdown renders a user's history as Markdown tables. Entries before
// since are skipped when since is non-nil.
func (d *DB) ExportMarkdown(ctx context.Context, userID int64, since *models.Date) (string, error) {
	data, err := d.ExportUser(ctx, userID)
	if err != nil {
		return "", err
	}

	keep := func(day models.Date) bool {
		return since == nil || !day.Before(*since)
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Fuerza Export - %s\n\n", data.User.Name))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Workouts\n\n")
	sb.WriteString("| Date | Type | Duration | Calories | Notes |\n")
	sb.WriteString("|------|------|----------|----------|-------|\n")
	for _, w := range data.Workouts {
		if !keep(w.Date) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %d min | %d kcal | %s |\n",
			w.Date, w.Type, w.DurationMinutes, w.Calories, w.Notes))
	}

	sb.WriteString("\n## Meals\n\n")
	sb.WriteString("| Date | Category | Food | Calories | Notes |\n")
	sb.WriteString("|------|----------|------|----------|-------|\n")
	for _, m := range data.Meals {
		if !keep(m.Date) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d kcal | %s |\n",
			m.Date, m.Category, m.Food, m.Calories, m.Notes))
	}

	sb.WriteString("\n## Measurements\n\n")
	sb.WriteString("| Date | Abdomen | Waist | Chest | Arm | Leg | Weight | Notes |\n")
	sb.WriteString("|------|---------|-------|-------|-----|-----|--------|-------|\n")
	for _, m := range data.Measurements {
		if !keep(m.Date) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f kg | %s |\n",
			m.Date, m.Abdomen, m.Waist, m.Chest, m.Arm, m.Leg, m.Weight, m.Notes))
	}

	return sb.String(), nil
}
