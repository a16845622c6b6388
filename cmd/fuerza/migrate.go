// ABOUTME: CLI command for copying every account between databases.
// ABOUTME: Typically SQLite to PostgreSQL; the destination must be empty.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate --from <database>",
	Short: "Copy all accounts and history from another database",
	Long: `Copy every user, with password digest and photo reference, and their
full history from the --from database into the configured one.

The configured database must be empty. Users get new ids in the
destination; their entries are re-keyed to match.

USAGE:

  fuerza migrate --from ~/.local/share/fuerza/fuerza.db --db postgres://...
  fuerza migrate --from old.db --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == "" {
			return errors.New("--from is required")
		}
		ctx := cmd.Context()

		src, err := storage.Open(ctx, migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		users, err := src.ListUsers(ctx)
		if err != nil {
			return err
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			for _, u := range users {
				data, err := src.ExportUser(ctx, u.ID)
				if err != nil {
					return err
				}
				fmt.Printf("  %s: %d workouts, %d meals, %d measurements\n",
					u.Email, len(data.Workouts), len(data.Meals), len(data.Measurements))
			}
			fmt.Printf("\n%d users would be migrated.\n", len(users))
			return nil
		}

		empty, err := storage.IsEmpty(ctx, repo)
		if err != nil {
			return err
		}
		if !empty {
			return errors.New("destination database already has users; refusing to merge")
		}

		summary, err := storage.MigrateData(ctx, src, repo)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %d users", summary.Users)
		fmt.Printf("  %d workouts, %d meals, %d measurements\n",
			summary.Workouts, summary.Meals, summary.Measurements)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source database URL or SQLite path")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
