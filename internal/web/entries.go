// ABOUTME: HTTP handlers for logging and listing activity entries.
// ABOUTME: Also serves the home summary, reports and form options.
package web

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/profile"
	"github.com/harperreed/fuerza/internal/session"
	"github.com/harperreed/fuerza/internal/storage"
)

type workoutRequest struct {
	Date            string `json:"date"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	Calories        int    `json:"calories"`
	Notes           string `json:"notes"`
}

type mealRequest struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Food     string `json:"food"`
	Calories int    `json:"calories"`
	Notes    string `json:"notes"`
}

type measurementRequest struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
	Notes  string             `json:"notes"`
}

func (s *Server) logWorkout(c *fiber.Ctx) error {
	var req workoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	date, err := models.ParseDateOrToday(req.Date)
	if err != nil {
		return err
	}
	wt, err := models.ParseWorkoutType(req.Type)
	if err != nil {
		return err
	}

	w := models.NewWorkout(userID(c), date, wt).
		WithDuration(req.DurationMinutes).
		WithCalories(req.Calories).
		WithNotes(req.Notes)
	if err := w.Validate(); err != nil {
		return err
	}
	if err := s.repo.InsertWorkout(c.UserContext(), w); err != nil {
		return err
	}
	s.metrics.entries.WithLabelValues("workout").Inc()
	return c.Status(fiber.StatusCreated).JSON(w)
}

func (s *Server) recentWorkouts(c *fiber.Ctx) error {
	rows, err := s.repo.RecentWorkouts(c.UserContext(), userID(c), limit(c))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (s *Server) allWorkouts(c *fiber.Ctx) error {
	rows, err := s.repo.AllWorkouts(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (s *Server) logMeal(c *fiber.Ctx) error {
	var req mealRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	date, err := models.ParseDateOrToday(req.Date)
	if err != nil {
		return err
	}
	cat, err := models.ParseMealCategory(req.Category)
	if err != nil {
		return err
	}

	m := models.NewMeal(userID(c), date, cat, req.Food).
		WithCalories(req.Calories).
		WithNotes(req.Notes)
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.repo.InsertMeal(c.UserContext(), m); err != nil {
		return err
	}
	s.metrics.entries.WithLabelValues("meal").Inc()
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (s *Server) recentMeals(c *fiber.Ctx) error {
	rows, err := s.repo.RecentMeals(c.UserContext(), userID(c), limit(c))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (s *Server) allMeals(c *fiber.Ctx) error {
	rows, err := s.repo.AllMeals(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (s *Server) logMeasurement(c *fiber.Ctx) error {
	var req measurementRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	date, err := models.ParseDateOrToday(req.Date)
	if err != nil {
		return err
	}

	m := models.NewMeasurement(userID(c), date).WithNotes(req.Notes)
	for name, v := range req.Values {
		if !m.Set(name, v) {
			return fmt.Errorf("%w: unknown measurement %q", models.ErrInvalid, name)
		}
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.repo.InsertMeasurement(c.UserContext(), m); err != nil {
		return err
	}
	s.metrics.entries.WithLabelValues("measurement").Inc()
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (s *Server) recentMeasurements(c *fiber.Ctx) error {
	rows, err := s.repo.RecentMeasurements(c.UserContext(), userID(c), limit(c))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (s *Server) allMeasurements(c *fiber.Ctx) error {
	rows, err := s.repo.AllMeasurements(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (s *Server) summary(c *fiber.Ctx) error {
	sum, err := s.reports.Summary(c.UserContext(), userID(c), limit(c))
	if err != nil {
		return err
	}
	return c.JSON(sum)
}

func (s *Server) buildReports(c *fiber.Ctx) error {
	r, err := s.reports.Build(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

// options lists the values forms offer: workout types, meal categories,
// measurement ranges, and preset avatars.
func (s *Server) options(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"workout_types":   models.AllWorkoutTypes,
		"meal_categories": models.AllMealCategories,
		"measurements":    models.MeasurementFields,
		"avatars":         profile.Presets,
		"themes":          []session.Theme{session.ThemeLight, session.ThemeDark},
		"recent_limit":    storage.DefaultRecentLimit,
	})
}

func userID(c *fiber.Ctx) int64 {
	return session.IdentityFrom(c).ID
}

func limit(c *fiber.Ctx) int {
	return c.QueryInt("limit", storage.DefaultRecentLimit)
}
