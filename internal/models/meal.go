// ABOUTME: Meal model and MealCategory enum.
// ABOUTME: Categories persist as the Spanish food-group labels.
package models

import (
	"fmt"
	"strings"
)

// MealCategory is the food group a meal belongs to.
type MealCategory string

const (
	MealProtein MealCategory = "Carnes, pescados y huevos"
	MealProduce MealCategory = "Fruta y Verdura"
	MealCereals MealCategory = "Cereales y derivados"
	MealDairy   MealCategory = "Lacteos y derivados"
	MealLegumes MealCategory = "Legumbres"
	MealFats    MealCategory = "Grasas y aceites"
	MealOther   MealCategory = "Otro"
)

// AllMealCategories lists categories in menu order.
var AllMealCategories = []MealCategory{
	MealProtein, MealProduce, MealCereals, MealDairy, MealLegumes, MealFats, MealOther,
}

var mealAliases = map[string]MealCategory{
	"protein": MealProtein,
	"produce": MealProduce,
	"cereals": MealCereals,
	"dairy":   MealDairy,
	"legumes": MealLegumes,
	"fats":    MealFats,
	"other":   MealOther,

	"proteínas":         MealProtein,
	"proteinas":         MealProtein,
	"frutas y verduras": MealProduce,
	"cereales":          MealCereals,
	"lácteos":           MealDairy,
	"lacteos":           MealDairy,
	"grasas":            MealFats,
	"otros":             MealOther,
}

// ParseMealCategory accepts the stored label, its short Spanish name, or a
// short English alias.
func ParseMealCategory(s string) (MealCategory, error) {
	s = strings.TrimSpace(s)
	for _, mc := range AllMealCategories {
		if strings.EqualFold(string(mc), s) {
			return mc, nil
		}
	}
	if mc, ok := mealAliases[strings.ToLower(s)]; ok {
		return mc, nil
	}
	return "", fmt.Errorf("%w: unknown meal category %q", ErrInvalid, s)
}

// Meal is a single food entry.
type Meal struct {
	ID       int64        `db:"id" json:"id" yaml:"id"`
	UserID   int64        `db:"usuario_id" json:"user_id" yaml:"user_id"`
	Date     Date         `db:"fecha" json:"date" yaml:"date"`
	Category MealCategory `db:"tipo_comida" json:"category" yaml:"category"`
	Food     string       `db:"alimento" json:"food" yaml:"food"`
	Calories int          `db:"calorias" json:"calories" yaml:"calories"`
	Notes    string       `db:"notas" json:"notes" yaml:"notes"`
}

// NewMeal creates a Meal for the user on the given day.
func NewMeal(userID int64, date Date, category MealCategory, food string) *Meal {
	return &Meal{
		UserID:   userID,
		Date:     date,
		Category: category,
		Food:     food,
	}
}

// WithCalories sets the meal's calories.
func (m *Meal) WithCalories(kcal int) *Meal {
	m.Calories = kcal
	return m
}

// WithNotes sets notes on the meal.
func (m *Meal) WithNotes(notes string) *Meal {
	m.Notes = notes
	return m
}

// Validate checks the input-boundary rules for a meal.
func (m *Meal) Validate() error {
	if _, err := ParseMealCategory(string(m.Category)); err != nil {
		return err
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}
	if m.Calories < 0 {
		return fmt.Errorf("%w: calories must not be negative", ErrInvalid)
	}
	return nil
}
