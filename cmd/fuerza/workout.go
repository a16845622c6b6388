// ABOUTME: CLI commands for logging and listing workouts.
// ABOUTME: Supports add and list subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/spf13/cobra"
)

var (
	workoutDate     string
	workoutDuration int
	workoutCalories int
	workoutNotes    string
	workoutLimit    int
	workoutAll      bool
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Log workouts",
	Long: `Log training sessions by type, duration, and calories burned.

TYPES:

  Fuerza (strength), Cardio, Funcional (functional),
  Movilidad (mobility), Otro (other)

Either the label or the English alias is accepted, in any case.

COMMANDS:

  add      Log a workout
  list     List recent workouts (newest first) or the full history`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Log a workout",
	Long: `Log a workout for the current user.

Examples:
  fuerza workout add cardio --duration 30 --calories 250
  fuerza workout add Fuerza -d 60 --date 2024-01-01 --notes "pierna"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		date, err := models.ParseDateOrToday(workoutDate)
		if err != nil {
			return err
		}
		wt, err := models.ParseWorkoutType(args[0])
		if err != nil {
			return err
		}

		w := models.NewWorkout(u.ID, date, wt).
			WithDuration(workoutDuration).
			WithCalories(workoutCalories).
			WithNotes(workoutNotes)
		if err := w.Validate(); err != nil {
			return err
		}
		if err := repo.InsertWorkout(cmd.Context(), w); err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		color.Green("✓ Added %s workout", w.Type)
		fmt.Printf("  %s %d min, %d kcal\n", color.New(color.Faint).Sprint(w.Date), w.DurationMinutes, w.Calories)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		var workouts []*models.Workout
		if workoutAll {
			workouts, err = repo.AllWorkouts(cmd.Context(), u.ID)
		} else {
			workouts, err = repo.RecentWorkouts(cmd.Context(), u.ID, workoutLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Printf("%s %s %4d min %5d kcal%s\n",
				faint.Sprint(w.Date),
				padRight(string(w.Type), 10),
				w.DurationMinutes,
				w.Calories,
				notesSuffix(w.Notes))
		}
		return nil
	},
}

func init() {
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "day of the workout (YYYY-MM-DD, default today)")
	workoutAddCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 0, "duration in minutes")
	workoutAddCmd.Flags().IntVarP(&workoutCalories, "calories", "c", 0, "calories burned")
	workoutAddCmd.Flags().StringVar(&workoutNotes, "notes", "", "notes")

	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", storage.DefaultRecentLimit, "max number of results")
	workoutListCmd.Flags().BoolVar(&workoutAll, "all", false, "full history, oldest first")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	rootCmd.AddCommand(workoutCmd)
}
