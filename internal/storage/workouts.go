// ABOUTME: Workout log operations: append-only insert plus recent and history queries.
// ABOUTME: All queries are scoped to a single user.
package storage

import (
	"context"

	"github.com/harperreed/fuerza/internal/models"
)

var workoutColumns = []string{
	"id", "usuario_id", "fecha", "tipo", "duracion", "calorias",
	"COALESCE(notas, '') AS notas",
}

// InsertWorkout stores a workout and sets w.ID. Values are stored as given.
func (d *DB) InsertWorkout(ctx context.Context, w *models.Workout) error {
	id, err := d.insertReturningID(ctx, d.sb.Insert("entrenamientos").
		Columns("usuario_id", "fecha", "tipo", "duracion", "calorias", "notas").
		Values(w.UserID, w.Date, string(w.Type), w.DurationMinutes, w.Calories, w.Notes))
	if err != nil {
		return classify("insert workout", err)
	}
	w.ID = id
	return nil
}

// RecentWorkouts returns up to limit workouts, newest first.
func (d *DB) RecentWorkouts(ctx context.Context, userID int64, limit int) ([]*models.Workout, error) {
	return selectAll[models.Workout](ctx, d, "recent workouts",
		d.recentQuery("entrenamientos", workoutColumns, userID, limit))
}

// AllWorkouts returns the user's full workout history, oldest first.
func (d *DB) AllWorkouts(ctx context.Context, userID int64) ([]*models.Workout, error) {
	return selectAll[models.Workout](ctx, d, "all workouts",
		d.historyQuery("entrenamientos", workoutColumns, userID))
}
