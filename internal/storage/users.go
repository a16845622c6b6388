// ABOUTME: User account persistence: registration insert, credential lookup, photo updates.
// ABOUTME: Email uniqueness is enforced by the database and surfaced as ErrEmailTaken.
package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/harperreed/fuerza/internal/models"
)

var userColumns = []string{"id", "nombre", "email", "contraseña", "foto"}

// CreateUser inserts a user and sets u.ID. A duplicate email leaves the
// existing row untouched and returns ErrEmailTaken.
func (d *DB) CreateUser(ctx context.Context, u *models.User) error {
	id, err := d.insertReturningID(ctx, d.sb.Insert("usuarios").
		Columns("nombre", "email", "contraseña", "foto").
		Values(u.Name, u.Email, u.PasswordHash, u.Photo))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", u.Email, ErrEmailTaken)
		}
		return classify("create user", err)
	}
	u.ID = id
	return nil
}

// GetUserByID loads a user by primary key.
func (d *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return selectOne[models.User](ctx, d, "get user",
		d.sb.Select(userColumns...).From("usuarios").Where(sq.Eq{"id": id}))
}

// GetUserByEmail loads a user by email.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return selectOne[models.User](ctx, d, "get user by email",
		d.sb.Select(userColumns...).From("usuarios").Where(sq.Eq{"email": email}))
}

// FindUserByCredentials returns the user whose email and stored digest both
// match, in a single lookup.
func (d *DB) FindUserByCredentials(ctx context.Context, email, digest string) (*models.User, error) {
	return selectOne[models.User](ctx, d, "find user by credentials",
		d.sb.Select(userColumns...).From("usuarios").Where(sq.And{
			sq.Eq{"email": email},
			sq.Eq{"contraseña": digest},
		}))
}

// ListUsers returns every user in id order.
func (d *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	return selectAll[models.User](ctx, d, "list users",
		d.sb.Select(userColumns...).From("usuarios").OrderBy("id ASC"))
}

// SetPhotoByID replaces the photo reference of the user with the given id.
func (d *DB) SetPhotoByID(ctx context.Context, id int64, ref string) error {
	return d.setPhoto(ctx, "set photo by id", sq.Eq{"id": id}, ref)
}

// SetPhotoByEmail replaces the photo reference of the user with the given email.
func (d *DB) SetPhotoByEmail(ctx context.Context, email, ref string) error {
	return d.setPhoto(ctx, "set photo by email", sq.Eq{"email": email}, ref)
}

func (d *DB) setPhoto(ctx context.Context, op string, where sq.Eq, ref string) error {
	query, args, err := d.sb.Update("usuarios").Set("foto", ref).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	res, err := d.q.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(op, err)
	}
	if n == 0 {
		return &StoreError{Op: op, Err: ErrNotFound}
	}
	return nil
}
