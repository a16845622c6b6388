// ABOUTME: Home summary and chart series built from a user's logged history.
// ABOUTME: Pure aggregation over the storage queries; rendering is left to callers.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/storage"
)

// Summary is the home view: the latest entries of each kind.
type Summary struct {
	Workouts     []*models.Workout     `json:"workouts"`
	Meals        []*models.Meal        `json:"meals"`
	Measurements []*models.Measurement `json:"measurements"`
}

// Slice is one wedge of the calories-by-category pie.
type Slice struct {
	Category models.MealCategory `json:"category"`
	Calories int                 `json:"calories"`
}

// Point is a dated value for a line or bar series.
type Point struct {
	Date  models.Date `json:"date"`
	Value float64     `json:"value"`
}

// Series is a named sequence of points.
type Series struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit,omitempty"`
	Points []Point `json:"points"`
}

// Reports holds every chart on the reports view.
type Reports struct {
	CaloriesByCategory []Slice  `json:"calories_by_category"`
	DurationByType     []Series `json:"duration_by_type"`
	WorkoutCaloriesDay []Series `json:"workout_calories_by_day"`
	Measurements       []Series `json:"measurements"`
	EmptyMeals         bool     `json:"empty_meals"`
	EmptyWorkouts      bool     `json:"empty_workouts"`
	EmptyMeasurements  bool     `json:"empty_measurements"`
}

// Builder reads history from a repository.
type Builder struct {
	repo storage.Repository
}

// NewBuilder returns a report Builder.
func NewBuilder(repo storage.Repository) *Builder {
	return &Builder{repo: repo}
}

// Summary returns the most recent entries of each kind.
func (b *Builder) Summary(ctx context.Context, userID int64, limit int) (*Summary, error) {
	workouts, err := b.repo.RecentWorkouts(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent workouts: %w", err)
	}
	meals, err := b.repo.RecentMeals(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent meals: %w", err)
	}
	measurements, err := b.repo.RecentMeasurements(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent measurements: %w", err)
	}
	return &Summary{Workouts: workouts, Meals: meals, Measurements: measurements}, nil
}

// Build aggregates the user's full history into chart series.
func (b *Builder) Build(ctx context.Context, userID int64) (*Reports, error) {
	workouts, err := b.repo.AllWorkouts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("all workouts: %w", err)
	}
	meals, err := b.repo.AllMeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("all meals: %w", err)
	}
	measurements, err := b.repo.AllMeasurements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("all measurements: %w", err)
	}

	return &Reports{
		CaloriesByCategory: CaloriesByCategory(meals),
		DurationByType:     DurationByType(workouts),
		WorkoutCaloriesDay: WorkoutCaloriesByDay(workouts),
		Measurements:       MeasurementSeries(measurements),
		EmptyMeals:         len(meals) == 0,
		EmptyWorkouts:      len(workouts) == 0,
		EmptyMeasurements:  len(measurements) == 0,
	}, nil
}

// CaloriesByCategory sums meal calories per category, in menu order.
// Categories with no meals are left out.
func CaloriesByCategory(meals []*models.Meal) []Slice {
	totals := make(map[models.MealCategory]int)
	for _, m := range meals {
		totals[m.Category] += m.Calories
	}

	out := []Slice{}
	seen := make(map[models.MealCategory]bool)
	for _, c := range models.AllMealCategories {
		if total, ok := totals[c]; ok {
			out = append(out, Slice{Category: c, Calories: total})
			seen[c] = true
		}
	}
	// Stored labels outside the known set still count.
	var extra []models.MealCategory
	for c := range totals {
		if !seen[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, c := range extra {
		out = append(out, Slice{Category: c, Calories: totals[c]})
	}
	return out
}

// DurationByType gives one series per workout type with each session's
// duration in date order.
func DurationByType(workouts []*models.Workout) []Series {
	return byType(workouts, "min", func(w *models.Workout) float64 {
		return float64(w.DurationMinutes)
	}, false)
}

// WorkoutCaloriesByDay gives one series per workout type with calories
// summed per day.
func WorkoutCaloriesByDay(workouts []*models.Workout) []Series {
	return byType(workouts, "kcal", func(w *models.Workout) float64 {
		return float64(w.Calories)
	}, true)
}

func byType(workouts []*models.Workout, unit string, value func(*models.Workout) float64, sumPerDay bool) []Series {
	index := make(map[models.WorkoutType]int)
	out := []Series{}

	for _, w := range workouts {
		i, ok := index[w.Type]
		if !ok {
			i = len(out)
			index[w.Type] = i
			out = append(out, Series{Name: string(w.Type), Unit: unit})
		}
		pts := out[i].Points
		if sumPerDay && len(pts) > 0 && pts[len(pts)-1].Date == w.Date {
			pts[len(pts)-1].Value += value(w)
			continue
		}
		out[i].Points = append(pts, Point{Date: w.Date, Value: value(w)})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return typeOrder(models.WorkoutType(out[a].Name)) < typeOrder(models.WorkoutType(out[b].Name))
	})
	return out
}

func typeOrder(t models.WorkoutType) int {
	for i, wt := range models.AllWorkoutTypes {
		if wt == t {
			return i
		}
	}
	return len(models.AllWorkoutTypes)
}

// MeasurementSeries gives one series per measurement field over time.
func MeasurementSeries(measurements []*models.Measurement) []Series {
	out := make([]Series, 0, len(models.MeasurementFields))
	for _, f := range models.MeasurementFields {
		s := Series{Name: f.Name, Unit: f.Unit, Points: []Point{}}
		for _, m := range measurements {
			v, _ := m.Get(f.Name)
			s.Points = append(s.Points, Point{Date: m.Date, Value: v})
		}
		out = append(out, s)
	}
	return out
}
