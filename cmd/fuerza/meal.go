// ABOUTME: CLI commands for logging and listing meals.
// ABOUTME: Food categories accept the Spanish label or an English alias.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/spf13/cobra"
)

var (
	mealDate     string
	mealCalories int
	mealNotes    string
	mealLimit    int
	mealAll      bool
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"m"},
	Short:   "Log meals",
	Long: `Log what you ate by food category.

CATEGORIES:

  Proteínas (protein), Frutas y verduras (produce), Cereales (cereals),
  Lácteos (dairy), Legumbres (legumes), Grasas (fats), Otros (other)`,
}

var mealAddCmd = &cobra.Command{
	Use:   "add <category> <food>",
	Short: "Log a meal",
	Long: `Log a meal for the current user. Everything after the category is the food.

Examples:
  fuerza meal add protein huevos revueltos --calories 200
  fuerza meal add Lácteos yogur --date 2024-01-01`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		date, err := models.ParseDateOrToday(mealDate)
		if err != nil {
			return err
		}
		cat, err := models.ParseMealCategory(args[0])
		if err != nil {
			return err
		}

		m := models.NewMeal(u.ID, date, cat, strings.Join(args[1:], " ")).
			WithCalories(mealCalories).
			WithNotes(mealNotes)
		if err := m.Validate(); err != nil {
			return err
		}
		if err := repo.InsertMeal(cmd.Context(), m); err != nil {
			return fmt.Errorf("failed to log meal: %w", err)
		}

		color.Green("✓ Added %s (%s)", m.Food, m.Category)
		fmt.Printf("  %s %d kcal\n", color.New(color.Faint).Sprint(m.Date), m.Calories)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}

		var meals []*models.Meal
		if mealAll {
			meals, err = repo.AllMeals(cmd.Context(), u.ID)
		} else {
			meals, err = repo.RecentMeals(cmd.Context(), u.ID, mealLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		if len(meals) == 0 {
			fmt.Println("No meals found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, m := range meals {
			fmt.Printf("%s %s %s %5d kcal%s\n",
				faint.Sprint(m.Date),
				padRight(string(m.Category), 18),
				padRight(truncate(m.Food, 24), 24),
				m.Calories,
				notesSuffix(m.Notes))
		}
		return nil
	},
}

func init() {
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "day of the meal (YYYY-MM-DD, default today)")
	mealAddCmd.Flags().IntVarP(&mealCalories, "calories", "c", 0, "calories")
	mealAddCmd.Flags().StringVar(&mealNotes, "notes", "", "notes")

	mealListCmd.Flags().IntVarP(&mealLimit, "limit", "n", storage.DefaultRecentLimit, "max number of results")
	mealListCmd.Flags().BoolVar(&mealAll, "all", false, "full history, oldest first")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	rootCmd.AddCommand(mealCmd)
}
