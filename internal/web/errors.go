// ABOUTME: Maps domain errors to HTTP status codes and a uniform JSON error body.
// ABOUTME: Installed as the fiber ErrorHandler so handlers just return errors.
package web

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/harperreed/fuerza/internal/auth"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/session"
	"github.com/harperreed/fuerza/internal/storage"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor returns the HTTP status, machine code, and user-facing message
// for err. Internal details never reach the message of a 5xx.
func statusFor(err error) (int, string, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, "", fe.Message
	case errors.Is(err, models.ErrInvalid):
		return fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS", auth.ErrInvalidCredentials.Error()
	case errors.Is(err, session.ErrNoSession):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", session.ErrNoSession.Error()
	case errors.Is(err, storage.ErrEmailTaken):
		return fiber.StatusConflict, "EMAIL_TAKEN", storage.ErrEmailTaken.Error()
	case errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", storage.ErrNotFound.Error()
	case errors.Is(err, storage.ErrConnection):
		return fiber.StatusServiceUnavailable, "UNAVAILABLE", storage.ErrConnection.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	status, code, msg := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request error",
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err,
		)
	}
	return c.Status(status).JSON(ErrorResponse{Error: msg, Code: code})
}
