// ABOUTME: Request logging middleware and domain Prometheus counters.
// ABOUTME: One structured log line per request, tagged with the request id.
package web

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestLogger logs one line per request after the handler chain returns.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _, _ = statusFor(err)
		}

		fields := []any{
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", requestID(c)),
		}
		if err != nil {
			fields = append(fields, slog.String("error", err.Error()))
			slog.WarnContext(c.UserContext(), "request failed", fields...)
		} else {
			slog.InfoContext(c.UserContext(), "request processed", fields...)
		}
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	rid, _ := c.Locals("requestid").(string)
	return rid
}

type metrics struct {
	authAttempts *prometheus.CounterVec
	entries      *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		authAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fuerza_auth_attempts_total",
			Help: "Login and registration attempts by outcome",
		}, []string{"action", "outcome"}),
		entries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fuerza_entries_logged_total",
			Help: "Activity log entries recorded, by kind",
		}, []string{"kind"}),
	}
}

func (m *metrics) auth(action string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.authAttempts.WithLabelValues(action, outcome).Inc()
}
