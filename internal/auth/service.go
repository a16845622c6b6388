// ABOUTME: Credential service: login validation and account registration.
// ABOUTME: Registration with a photo runs the insert and photo update in one transaction.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/profile"
	"github.com/harperreed/fuerza/internal/storage"
)

// ErrInvalidCredentials is returned for any failed login, without saying
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service validates and registers accounts.
type Service struct {
	repo   storage.Repository
	hasher Hasher
	photos *profile.Store
}

// NewService returns a credential Service. A nil hasher means sha256.
func NewService(repo storage.Repository, hasher Hasher, photos *profile.Store) *Service {
	if hasher == nil {
		hasher = SHA256Hasher{}
	}
	return &Service{repo: repo, hasher: hasher, photos: photos}
}

// Validate returns the user whose email and password match.
func (s *Service) Validate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var (
		user *models.User
		err  error
	)
	if s.hasher.Deterministic() {
		digest, hashErr := s.hasher.Hash(password)
		if hashErr != nil {
			return nil, hashErr
		}
		user, err = s.repo.FindUserByCredentials(ctx, email, digest)
	} else {
		user, err = s.repo.GetUserByEmail(ctx, email)
		if err == nil && !s.hasher.Verify(user.PasswordHash, password) {
			err = ErrInvalidCredentials
		}
	}

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, ErrInvalidCredentials):
		slog.Debug("login rejected", "email", email)
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("validate credentials: %w", err)
	}
}

// Register creates an account with no photo.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.register(ctx, s.repo, name, email, password)
}

// SignUp creates an account and assigns its photo atomically. An upload is
// written to disk before commit, so a failed commit can leave an orphaned
// file but never a user without the chosen photo.
func (s *Service) SignUp(ctx context.Context, name, email, password string, choice profile.Choice) (*models.User, error) {
	if choice.IsZero() || s.photos == nil {
		return s.Register(ctx, name, email, password)
	}

	var user *models.User
	err := s.repo.WithTx(ctx, func(tx storage.Repository) error {
		u, err := s.register(ctx, tx, name, email, password)
		if err != nil {
			return err
		}

		ref, err := s.photos.Ref(u.Email, profile.UploadRegistration, choice)
		if err != nil {
			return err
		}
		if err := tx.SetPhotoByEmail(ctx, u.Email, ref); err != nil {
			return fmt.Errorf("assign photo: %w", err)
		}

		u.Photo = &ref
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) register(ctx context.Context, repo storage.Repository, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", models.ErrInvalid)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email, PasswordHash: digest}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}
