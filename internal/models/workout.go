// ABOUTME: Workout model and WorkoutType enum.
// ABOUTME: Types persist as the Spanish labels existing databases already hold.
package models

import (
	"fmt"
	"strings"
)

// WorkoutType is the kind of training session.
type WorkoutType string

const (
	WorkoutStrength   WorkoutType = "Fuerza"
	WorkoutCardio     WorkoutType = "Cardio"
	WorkoutFunctional WorkoutType = "Funcional"
	WorkoutMobility   WorkoutType = "Movilidad"
	WorkoutOther      WorkoutType = "Otro"
)

// AllWorkoutTypes lists workout types in menu order.
var AllWorkoutTypes = []WorkoutType{
	WorkoutStrength, WorkoutCardio, WorkoutFunctional, WorkoutMobility, WorkoutOther,
}

var workoutAliases = map[string]WorkoutType{
	"strength":   WorkoutStrength,
	"cardio":     WorkoutCardio,
	"functional": WorkoutFunctional,
	"mobility":   WorkoutMobility,
	"other":      WorkoutOther,
}

// ParseWorkoutType accepts either the stored label or its English name,
// case-insensitively.
func ParseWorkoutType(s string) (WorkoutType, error) {
	s = strings.TrimSpace(s)
	for _, wt := range AllWorkoutTypes {
		if strings.EqualFold(string(wt), s) {
			return wt, nil
		}
	}
	if wt, ok := workoutAliases[strings.ToLower(s)]; ok {
		return wt, nil
	}
	return "", fmt.Errorf("%w: unknown workout type %q", ErrInvalid, s)
}

// Workout is a single training session.
type Workout struct {
	ID              int64       `db:"id" json:"id" yaml:"id"`
	UserID          int64       `db:"usuario_id" json:"user_id" yaml:"user_id"`
	Date            Date        `db:"fecha" json:"date" yaml:"date"`
	Type            WorkoutType `db:"tipo" json:"type" yaml:"type"`
	DurationMinutes int         `db:"duracion" json:"duration_minutes" yaml:"duration_minutes"`
	Calories        int         `db:"calorias" json:"calories" yaml:"calories"`
	Notes           string      `db:"notas" json:"notes" yaml:"notes"`
}

// NewWorkout creates a Workout for the user on the given day.
func NewWorkout(userID int64, date Date, workoutType WorkoutType) *Workout {
	return &Workout{
		UserID: userID,
		Date:   date,
		Type:   workoutType,
	}
}

// WithDuration sets the duration in minutes.
func (w *Workout) WithDuration(minutes int) *Workout {
	w.DurationMinutes = minutes
	return w
}

// WithCalories sets the estimated calories burned.
func (w *Workout) WithCalories(kcal int) *Workout {
	w.Calories = kcal
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = notes
	return w
}

// Validate checks the input-boundary rules for a workout.
func (w *Workout) Validate() error {
	if _, err := ParseWorkoutType(string(w.Type)); err != nil {
		return err
	}
	if w.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}
	if w.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalid)
	}
	if w.Calories < 0 {
		return fmt.Errorf("%w: calories must not be negative", ErrInvalid)
	}
	return nil
}
