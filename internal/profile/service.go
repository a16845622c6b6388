// ABOUTME: Profile editor operations that tie photo files to the user row.
// ABOUTME: Updates are keyed by user id; registration uses the email path in auth.
package profile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/storage"
)

// Service updates and resolves a user's photo.
type Service struct {
	repo  storage.Repository
	files *Store
}

// NewService returns a profile Service.
func NewService(repo storage.Repository, files *Store) *Service {
	return &Service{repo: repo, files: files}
}

// UpdatePhoto stores the chosen photo and points the user's row at it.
func (s *Service) UpdatePhoto(ctx context.Context, user *models.User, c Choice) (string, error) {
	if c.IsZero() {
		return "", fmt.Errorf("%w: no photo selected", models.ErrInvalid)
	}

	ref, err := s.files.Ref(user.Email, UploadEdit, c)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetPhotoByID(ctx, user.ID, ref); err != nil {
		return "", fmt.Errorf("update photo: %w", err)
	}

	slog.Info("profile photo updated", "user_id", user.ID, "preset", s.files.IsPreset(ref))
	user.Photo = &ref
	return ref, nil
}

// PhotoPath returns the file to render for user, or false when there is none.
func (s *Service) PhotoPath(user *models.User) (string, bool) {
	return s.files.Resolve(user.PhotoRef())
}

// Photo returns the PNG bytes to render for user.
func (s *Service) Photo(user *models.User) ([]byte, error) {
	return s.files.Read(user.PhotoRef())
}
