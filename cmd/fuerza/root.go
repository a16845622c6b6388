// ABOUTME: Root Cobra command for fuerza CLI.
// ABOUTME: Loads config, sets up logging, and owns the database lifecycle.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/fuerza/internal/auth"
	"github.com/harperreed/fuerza/internal/config"
	"github.com/harperreed/fuerza/internal/logging"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/profile"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg  *config.Config
	repo *storage.DB

	dbURL    string
	userFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fuerza",
	Short: "Workout, meal, and body measurement log",
	Long: `Fuerza keeps a personal log of workouts, meals, and body measurements.

WHAT IT TRACKS:

  Workouts      Fuerza, Cardio, Funcional, Movilidad, Otro (minutes, kcal)
  Meals         Proteínas, Frutas y verduras, Cereales, Lácteos, Legumbres, Grasas, Otros
  Measurements  abdomen, waist, chest, arm, leg (cm) and weight (kg)

QUICK START:

  $ fuerza register Ana ana@example.com --password secret
  $ fuerza login ana@example.com --password secret
  $ fuerza workout add cardio --duration 30 --calories 250
  $ fuerza meal add protein "huevos" --calories 200
  $ fuerza measure add --weight 68.5
  $ fuerza report

WEB AND MCP:

  $ fuerza serve    # JSON API with cookie sessions on :8080
  $ fuerza mcp      # Model Context Protocol server on stdio

CONFIGURATION:

  ~/.config/fuerza/config.json, a .env file, or FUERZA_* variables.
  FUERZA_DATABASE_URL selects PostgreSQL (postgres://...) or SQLite
  (sqlite://path). The default is ~/.local/share/fuerza/fuerza.db.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if dbURL != "" {
			cfg.DatabaseURL = dbURL
		}
		logging.SetupFromString(cfg.LogLevel)

		if repo != nil {
			_ = repo.Close()
		}
		repo, err = cfg.OpenStorage(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo == nil {
			return nil
		}
		err := repo.Close()
		repo = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "database URL or SQLite path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "act as this email instead of the logged-in user")
}

// currentUser returns the account the CLI acts as: --user, else the email
// saved by `fuerza login`.
func currentUser(ctx context.Context) (*models.User, error) {
	email := userFlag
	if email == "" {
		email = cfg.User
	}
	if email == "" {
		return nil, errors.New("not logged in: run 'fuerza login <email>' or pass --user")
	}

	u, err := repo.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("unknown user: %s", email)
	}
	return u, err
}

func photoStore() *profile.Store {
	return profile.NewStore(cfg.GetPhotoDir())
}

func authService() (*auth.Service, error) {
	hasher, err := auth.NewHasher(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}
	return auth.NewService(repo, hasher, photoStore()), nil
}
