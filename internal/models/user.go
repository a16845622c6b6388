// ABOUTME: User account model.
// ABOUTME: Column tags match the usuarios table.
package models

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           int64   `db:"id" json:"id" yaml:"id"`
	Name         string  `db:"nombre" json:"name" yaml:"name"`
	Email        string  `db:"email" json:"email" yaml:"email"`
	PasswordHash string  `db:"contraseña" json:"-" yaml:"-"`
	Photo        *string `db:"foto" json:"photo,omitempty" yaml:"photo,omitempty"`
}

// PhotoRef returns the stored photo reference or "" when none is set.
func (u *User) PhotoRef() string {
	if u == nil || u.Photo == nil {
		return ""
	}
	return *u.Photo
}
