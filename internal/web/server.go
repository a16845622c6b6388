// ABOUTME: JSON HTTP boundary over the credential, profile, log, and report services.
// ABOUTME: Sessions are per browser cookie; /metrics exposes Prometheus counters.
package web

import (
	"context"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/harperreed/fuerza/internal/auth"
	"github.com/harperreed/fuerza/internal/profile"
	"github.com/harperreed/fuerza/internal/report"
	"github.com/harperreed/fuerza/internal/session"
	"github.com/harperreed/fuerza/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// Options configures a Server.
type Options struct {
	Repo       storage.Repository
	Hasher     auth.Hasher
	PhotoDir   string
	SessionTTL time.Duration
}

// Server wires the fiber app to the application services.
type Server struct {
	app      *fiber.App
	repo     storage.Repository
	auth     *auth.Service
	profiles *profile.Service
	reports  *report.Builder
	sessions *session.Holder
	metrics  *metrics
}

// New builds a Server with routes and middleware installed.
func New(opts Options) *Server {
	photos := profile.NewStore(opts.PhotoDir)
	registry := prometheus.NewRegistry()

	s := &Server{
		repo:     opts.Repo,
		auth:     auth.NewService(opts.Repo, opts.Hasher, photos),
		profiles: profile.NewService(opts.Repo, photos),
		reports:  report.NewBuilder(opts.Repo),
		sessions: session.NewHolder(opts.SessionTTL),
		metrics:  newMetrics(registry),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "fuerza",
		ErrorHandler:          errorHandler,
		BodyLimit:             profile.MaxUploadBytes * 2,
		DisableStartupMessage: true,
	})

	prom := fiberprometheus.NewWithRegistry(registry, "fuerza", "http", "", nil)
	s.setupMiddleware(prom)
	s.setupRoutes(prom)
	return s
}

func (s *Server) setupMiddleware(prom *fiberprometheus.FiberPrometheus) {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(prom.Middleware)
	s.app.Use(requestLogger())
}

func (s *Server) setupRoutes(prom *fiberprometheus.FiberPrometheus) {
	prom.RegisterAt(s.app, "/metrics")
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")
	api.Get("/options", s.options)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.register)
	authGroup.Post("/login", s.login)
	authGroup.Post("/logout", s.logout)

	require := s.sessions.Require()

	me := api.Group("/me", require)
	me.Get("/", s.me)
	me.Get("/photo", s.photo)
	me.Put("/photo", s.updatePhoto)
	me.Put("/theme", s.setTheme)
	me.Put("/menu", s.setMenu)

	api.Get("/summary", require, s.summary)
	api.Get("/reports", require, s.buildReports)

	api.Post("/workouts", require, s.logWorkout)
	api.Get("/workouts", require, s.recentWorkouts)
	api.Get("/workouts/all", require, s.allWorkouts)

	api.Post("/meals", require, s.logMeal)
	api.Get("/meals", require, s.recentMeals)
	api.Get("/meals/all", require, s.allMeals)

	api.Post("/measurements", require, s.logMeasurement)
	api.Get("/measurements", require, s.recentMeasurements)
	api.Get("/measurements/all", require, s.allMeasurements)
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves HTTP on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) health(c *fiber.Ctx) error {
	if err := s.repo.Ping(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
