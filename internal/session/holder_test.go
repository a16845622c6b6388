// ABOUTME: Tests for the session holder using fiber's in-process test client.
// ABOUTME: Verifies sign-in, isolation between browsers, theme, and sign-out.
package session

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(h *Holder) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, ErrNoSession) {
				return c.SendStatus(fiber.StatusUnauthorized)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})

	photo := "perfiles/avatar1.png"
	app.Post("/login", func(c *fiber.Ctx) error {
		u := &models.User{ID: 7, Name: "Ana", Email: "ana@x.com", Photo: &photo}
		if err := h.SignIn(c, u); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		if err := h.SignOut(c); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Put("/theme/:t", func(c *fiber.Ctx) error {
		t, err := ParseTheme(c.Params("t"))
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return h.SetTheme(c, t)
	})
	app.Get("/theme", func(c *fiber.Ctx) error {
		t, err := h.Theme(c)
		if err != nil {
			return err
		}
		return c.SendString(string(t))
	})

	me := app.Group("/me", h.Require())
	me.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(IdentityFrom(c))
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == CookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func TestSignInAndCurrent(t *testing.T) {
	app := newTestApp(NewHolder(0))

	resp := do(t, app, http.MethodGet, "/me/", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/login", nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	resp = do(t, app, http.MethodGet, "/me/", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"id":7,"name":"Ana","email":"ana@x.com","photo":"perfiles/avatar1.png"}`, string(body))

	// Another browser has its own, empty slot.
	resp = do(t, app, http.MethodGet, "/me/", &http.Cookie{Name: CookieName, Value: "someone-else"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSignOutClearsUser(t *testing.T) {
	app := newTestApp(NewHolder(0))

	resp := do(t, app, http.MethodPost, "/login", nil)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	resp = do(t, app, http.MethodPost, "/logout", cookie)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/me/", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestThemeDefaultsAndPersistsPerSession(t *testing.T) {
	app := newTestApp(NewHolder(0))

	resp := do(t, app, http.MethodGet, "/theme", nil)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "light", string(body))

	resp = do(t, app, http.MethodPut, "/theme/oscuro", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	resp = do(t, app, http.MethodGet, "/theme", cookie)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "dark", string(body))

	resp = do(t, app, http.MethodPut, "/theme/sepia", cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestParseTheme(t *testing.T) {
	for in, want := range map[string]Theme{"Claro": ThemeLight, "light": ThemeLight, "OSCURO": ThemeDark, "dark": ThemeDark} {
		got, err := ParseTheme(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseTheme("neon")
	assert.ErrorIs(t, err, models.ErrInvalid)
}
