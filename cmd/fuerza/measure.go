// ABOUTME: CLI commands for logging and listing body measurements.
// ABOUTME: One float flag per measurement field, defaulting to the field's default.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/spf13/cobra"
)

var (
	measureDate   string
	measureNotes  string
	measureLimit  int
	measureAll    bool
	measureValues = map[string]*float64{}
)

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Log body measurements",
	Long: `Log abdomen, waist, chest, arm, and leg in centimeters and weight in kilograms.

Fields you leave out are recorded with their default value.`,
}

var measureAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a set of measurements",
	Long: `Log measurements for the current user.

Examples:
  fuerza measure add --weight 68.5
  fuerza measure add --waist 72 --abdomen 78.5 --date 2024-01-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		date, err := models.ParseDateOrToday(measureDate)
		if err != nil {
			return err
		}

		m := models.NewMeasurement(u.ID, date).WithNotes(measureNotes)
		for name, v := range measureValues {
			m.Set(name, *v)
		}
		if err := m.Validate(); err != nil {
			return err
		}
		if err := repo.InsertMeasurement(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to log measurements: %w", err)
		}

		color.Green("✓ Added measurements")
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(m.Date), formatMeasurement(m))
		return nil
	},
}

var measureListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		var rows []*models.Measurement
		if measureAll {
			rows, err = repo.AllMeasurements(cmd.Context(), u.ID)
		} else {
			rows, err = repo.RecentMeasurements(cmd.Context(), u.ID, measureLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}

		if len(rows) == 0 {
			fmt.Println("No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range rows {
			fmt.Printf("%s %s%s\n", faint.Sprint(m.Date), formatMeasurement(m), notesSuffix(m.Notes))
		}
		return nil
	},
}

func formatMeasurement(m *models.Measurement) string {
	out := ""
	for i, f := range models.MeasurementFields {
		v, _ := m.Get(f.Name)
		if i > 0 {
			out += "  "
		}
		out += fmt.Sprintf("%s %.1f %s", f.Name, v, f.Unit)
	}
	return out
}

func init() {
	measureAddCmd.Flags().StringVar(&measureDate, "date", "", "day of the measurement (YYYY-MM-DD, default today)")
	measureAddCmd.Flags().StringVar(&measureNotes, "notes", "", "notes")
	for _, f := range models.MeasurementFields {
		v := new(float64)
		measureValues[f.Name] = v
		usage := fmt.Sprintf("%s in %s (%g-%g)", f.Name, f.Unit, f.Min, f.Max)
		measureAddCmd.Flags().Float64Var(v, f.Name, f.Default, usage)
	}

	measureListCmd.Flags().IntVarP(&measureLimit, "limit", "n", storage.DefaultRecentLimit, "max number of results")
	measureListCmd.Flags().BoolVar(&measureAll, "all", false, "full history, oldest first")

	measureCmd.AddCommand(measureAddCmd)
	measureCmd.AddCommand(measureListCmd)
	rootCmd.AddCommand(measureCmd)
}
