// ABOUTME: Body measurement log operations.
// ABOUTME: Range checks happen at the input boundary; rows are stored as given.
package storage

import (
	"context"

	"github.com/harperreed/fuerza/internal/models"
)

var measurementColumns = []string{
	"id", "usuario_id", "fecha", "abdomen", "cintura", "brazo", "pecho", "pierna", "peso",
	"COALESCE(notas, '') AS notas",
}

// InsertMeasurement stores a measurement and sets m.ID.
func (d *DB) InsertMeasurement(ctx context.Context, m *models.Measurement) error {
	id, err := d.insertReturningID(ctx, d.sb.Insert("medidas").
		Columns("usuario_id", "fecha", "abdomen", "cintura", "brazo", "pecho", "pierna", "peso", "notas").
		Values(m.UserID, m.Date, m.Abdomen, m.Waist, m.Arm, m.Chest, m.Leg, m.Weight, m.Notes))
	if err != nil {
		return classify("insert measurement", err)
	}
	m.ID = id
	return nil
}

// RecentMeasurements returns up to limit measurements, newest first.
func (d *DB) RecentMeasurements(ctx context.Context, userID int64, limit int) ([]*models.Measurement, error) {
	return selectAll[models.Measurement](ctx, d, "recent measurements",
		d.recentQuery("medidas", measurementColumns, userID, limit))
}

// AllMeasurements returns the full measurement history, oldest first, so the
// last element is the latest entry.
func (d *DB) AllMeasurements(ctx context.Context, userID int64) ([]*models.Measurement, error) {
	return selectAll[models.Measurement](ctx, d, "all measurements",
		d.historyQuery("medidas", measurementColumns, userID))
}
