// ABOUTME: Data migration between storage backends (e.g. SQLite to PostgreSQL).
// ABOUTME: Copies users with their digests and photos, then each user's history.

package storage

import (
	"context"
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Users        int
	Workouts     int
	Meals        int
	Measurements int
}

// MigrateData copies all data from src to dst storage. Users get new ids in
// the destination and their history is re-keyed to match. The destination
// should be empty before calling this function.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	users, err := src.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source users: %w", err)
	}

	err = dst.WithTx(ctx, func(tx Repository) error {
		for _, u := range users {
			srcID := u.ID
			if err := tx.CreateUser(ctx, u); err != nil {
				return fmt.Errorf("create user %s: %w", u.Email, err)
			}
			summary.Users++

			workouts, err := src.AllWorkouts(ctx, srcID)
			if err != nil {
				return fmt.Errorf("list workouts for %s: %w", u.Email, err)
			}
			for _, w := range workouts {
				w.UserID = u.ID
				if err := tx.InsertWorkout(ctx, w); err != nil {
					return fmt.Errorf("insert workout: %w", err)
				}
				summary.Workouts++
			}

			meals, err := src.AllMeals(ctx, srcID)
			if err != nil {
				return fmt.Errorf("list meals for %s: %w", u.Email, err)
			}
			for _, m := range meals {
				m.UserID = u.ID
				if err := tx.InsertMeal(ctx, m); err != nil {
					return fmt.Errorf("insert meal: %w", err)
				}
				summary.Meals++
			}

			measurements, err := src.AllMeasurements(ctx, srcID)
			if err != nil {
				return fmt.Errorf("list measurements for %s: %w", u.Email, err)
			}
			for _, m := range measurements {
				m.UserID = u.ID
				if err := tx.InsertMeasurement(ctx, m); err != nil {
					return fmt.Errorf("insert measurement: %w", err)
				}
				summary.Measurements++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// IsEmpty reports whether the store has no users yet.
func IsEmpty(ctx context.Context, repo Repository) (bool, error) {
	users, err := repo.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	return len(users) == 0, nil
}
