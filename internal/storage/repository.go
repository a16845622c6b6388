// ABOUTME: Repository interface for fitness data storage.
// ABOUTME: Defines the user, activity log, and export contract shared by both dialects.
package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/jmoiron/sqlx"
)

// DefaultRecentLimit is the number of rows the home summary shows per kind.
const DefaultRecentLimit = 5

// Repository defines the storage interface for fitness data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByCredentials(ctx context.Context, email, digest string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	SetPhotoByID(ctx context.Context, id int64, ref string) error
	SetPhotoByEmail(ctx context.Context, email, ref string) error

	// Workout operations
	InsertWorkout(ctx context.Context, w *models.Workout) error
	RecentWorkouts(ctx context.Context, userID int64, limit int) ([]*models.Workout, error)
	AllWorkouts(ctx context.Context, userID int64) ([]*models.Workout, error)

	// Meal operations
	InsertMeal(ctx context.Context, m *models.Meal) error
	RecentMeals(ctx context.Context, userID int64, limit int) ([]*models.Meal, error)
	AllMeals(ctx context.Context, userID int64) ([]*models.Meal, error)

	// Measurement operations
	InsertMeasurement(ctx context.Context, m *models.Measurement) error
	RecentMeasurements(ctx context.Context, userID int64, limit int) ([]*models.Measurement, error)
	AllMeasurements(ctx context.Context, userID int64) ([]*models.Measurement, error)

	// Export/Import
	ExportUser(ctx context.Context, userID int64) (*ExportData, error)
	ImportData(ctx context.Context, userID int64, data *ExportData) error

	// Lifecycle
	WithTx(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
	Close() error
}

var _ Repository = (*DB)(nil)

// recentQuery selects a user's newest rows first. Equal dates fall back to
// insertion order so ties are stable.
func (d *DB) recentQuery(table string, columns []string, userID int64, limit int) sq.SelectBuilder {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return d.sb.Select(columns...).
		From(table).
		Where(sq.Eq{"usuario_id": userID}).
		OrderBy("fecha DESC", "id DESC").
		Limit(uint64(limit))
}

// historyQuery selects a user's full history oldest first.
func (d *DB) historyQuery(table string, columns []string, userID int64) sq.SelectBuilder {
	return d.sb.Select(columns...).
		From(table).
		Where(sq.Eq{"usuario_id": userID}).
		OrderBy("fecha ASC", "id ASC")
}

// selectAll runs a select and scans every row into a new T.
func selectAll[T any](ctx context.Context, d *DB, op string, b sq.SelectBuilder) ([]*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	out := []*T{}
	if err := sqlx.SelectContext(ctx, d.q, &out, query, args...); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}

// selectOne runs a select expected to return a single row.
func selectOne[T any](ctx context.Context, d *DB, op string, b sq.SelectBuilder) (*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	var out T
	if err := sqlx.GetContext(ctx, d.q, &out, query, args...); err != nil {
		return nil, classify(op, err)
	}
	return &out, nil
}

// insertReturningID runs an insert and returns the generated id. The raw
// driver error is returned so callers can inspect constraint violations.
func (d *DB) insertReturningID(ctx context.Context, b sq.InsertBuilder) (int64, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := d.q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
