// ABOUTME: CLI command printing the home summary and report aggregates.
// ABOUTME: Text rendering of the same data the web and MCP reports return.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/report"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show recent activity and totals",
	Long: `Show the latest entries of each kind, calories by food category,
minutes trained per workout type, and the latest measurements.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		b := report.NewBuilder(repo)

		sum, err := b.Summary(cmd.Context(), u.ID, storage.DefaultRecentLimit)
		if err != nil {
			return err
		}
		r, err := b.Build(cmd.Context(), u.ID)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Printf("Hola, %s\n\n", u.Name)

		bold.Println("Recent workouts")
		if len(sum.Workouts) == 0 {
			faint.Println("  none yet")
		}
		for _, w := range sum.Workouts {
			fmt.Printf("  %s %s %d min\n", faint.Sprint(w.Date), padRight(string(w.Type), 10), w.DurationMinutes)
		}

		fmt.Println()
		bold.Println("Calories by food category")
		if r.EmptyMeals {
			faint.Println("  no meals logged")
		}
		for _, s := range r.CaloriesByCategory {
			fmt.Printf("  %s %6d kcal\n", padRight(string(s.Category), 18), s.Calories)
		}

		fmt.Println()
		bold.Println("Minutes by workout type")
		if r.EmptyWorkouts {
			faint.Println("  no workouts logged")
		}
		for _, s := range r.DurationByType {
			fmt.Printf("  %s %6.0f min over %d sessions\n", padRight(s.Name, 10), total(s), len(s.Points))
		}

		fmt.Println()
		bold.Println("Latest measurements")
		if r.EmptyMeasurements {
			faint.Println("  no measurements logged")
			return nil
		}
		for _, s := range r.Measurements {
			last := s.Points[len(s.Points)-1]
			fmt.Printf("  %s %6.1f %s %s\n", padRight(s.Name, 8), last.Value, s.Unit, faint.Sprint(last.Date))
		}
		return nil
	},
}

func total(s report.Series) float64 {
	var sum float64
	for _, p := range s.Points {
		sum += p.Value
	}
	return sum
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List workout types, food categories, and measurement ranges",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bold := color.New(color.Bold)

		bold.Println("Workout types")
		for _, t := range models.AllWorkoutTypes {
			fmt.Printf("  %s\n", t)
		}
		bold.Println("Food categories")
		for _, c := range models.AllMealCategories {
			fmt.Printf("  %s\n", c)
		}
		bold.Println("Measurements")
		for _, f := range models.MeasurementFields {
			fmt.Printf("  %s %g-%g %s (default %g)\n", padRight(f.Name, 8), f.Min, f.Max, f.Unit, f.Default)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(optionsCmd)
}
