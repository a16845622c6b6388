// ABOUTME: Meal log operations: append-only insert plus recent and history queries.
package storage

import (
	"context"

	"github.com/harperreed/fuerza/internal/models"
)

var mealColumns = []string{
	"id", "usuario_id", "fecha", "tipo_comida", "alimento", "calorias",
	"COALESCE(notas, '') AS notas",
}

// InsertMeal stores a meal and sets m.ID.
func (d *DB) InsertMeal(ctx context.Context, m *models.Meal) error {
	id, err := d.insertReturningID(ctx, d.sb.Insert("comidas").
		Columns("usuario_id", "fecha", "tipo_comida", "alimento", "calorias", "notas").
		Values(m.UserID, m.Date, string(m.Category), m.Food, m.Calories, m.Notes))
	if err != nil {
		return classify("insert meal", err)
	}
	m.ID = id
	return nil
}

func (d *DB) RecentMeals(ctx context.Context, userID int64, limit int) ([]*models.Meal, error) {
	return selectAll[models.Meal](ctx, d, "recent meals",
		d.recentQuery("comidas", mealColumns, userID, limit))
}

func (d *DB) AllMeals(ctx context.Context, userID int64) ([]*models.Meal, error) {
	return selectAll[models.Meal](ctx, d, "all meals",
		d.historyQuery("comidas", mealColumns, userID))
}
