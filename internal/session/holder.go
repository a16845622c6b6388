// ABOUTME: Per-browser-session holder for the signed-in user, theme, and menu.
// ABOUTME: Backed by fiber's in-memory session store; nothing survives a restart.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/harperreed/fuerza/internal/models"
)

const (
	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
	keyUserPhoto = "user_photo"
	keyTheme     = "theme"
	keyMenu      = "menu"

	localsIdentity = "fuerza.identity"

	// CookieName names the session cookie.
	CookieName = "fuerza_session"
)

// ErrNoSession is returned by handlers that need a signed-in user.
var ErrNoSession = errors.New("not signed in")

// Theme is the display theme kept for the session.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light"/"dark" and the Spanish "claro"/"oscuro".
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "claro":
		return ThemeLight, nil
	case "dark", "oscuro":
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: unknown theme %q", models.ErrInvalid, s)
}

// Menu destinations after login.
const (
	MenuHome        = "home"
	MenuWorkout     = "workout"
	MenuMeal        = "meal"
	MenuMeasurement = "measurement"
	MenuReports     = "reports"
)

var menus = []string{MenuHome, MenuWorkout, MenuMeal, MenuMeasurement, MenuReports}

// Identity is the signed-in user as held in the session.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

// Holder reads and writes session state for a request.
type Holder struct {
	store *session.Store
}

// NewHolder returns a Holder whose sessions expire after ttl of inactivity.
func NewHolder(ttl time.Duration) *Holder {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Holder{store: session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})}
}

// Current returns the signed-in identity, or nil when there is none.
func (h *Holder) Current(c *fiber.Ctx) (*Identity, error) {
	sess, err := h.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	id, ok := sess.Get(keyUserID).(int64)
	if !ok || id == 0 {
		return nil, nil
	}
	return &Identity{
		ID:    id,
		Name:  str(sess.Get(keyUserName)),
		Email: str(sess.Get(keyUserEmail)),
		Photo: str(sess.Get(keyUserPhoto)),
	}, nil
}

// SignIn stores u as the session's user under a fresh session id.
func (h *Holder) SignIn(c *fiber.Ctx, u *models.User) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("regenerate session: %w", err)
	}
	sess.Set(keyUserID, u.ID)
	sess.Set(keyUserName, u.Name)
	sess.Set(keyUserEmail, u.Email)
	sess.Set(keyUserPhoto, u.PhotoRef())
	sess.Set(keyMenu, MenuHome)
	return sess.Save()
}

// SignOut clears the session entirely.
func (h *Holder) SignOut(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	return sess.Destroy()
}

// SetPhoto refreshes the cached photo reference after a profile edit.
func (h *Holder) SetPhoto(c *fiber.Ctx, ref string) error {
	return h.set(c, keyUserPhoto, ref)
}

// Theme returns the session theme, light by default.
func (h *Holder) Theme(c *fiber.Ctx) (Theme, error) {
	sess, err := h.store.Get(c)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if t, ok := sess.Get(keyTheme).(string); ok && t != "" {
		return Theme(t), nil
	}
	return ThemeLight, nil
}

// SetTheme stores the theme for the rest of the session.
func (h *Holder) SetTheme(c *fiber.Ctx, t Theme) error {
	return h.set(c, keyTheme, string(t))
}

// Menu returns the last selected destination, home by default.
func (h *Holder) Menu(c *fiber.Ctx) (string, error) {
	sess, err := h.store.Get(c)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if m, ok := sess.Get(keyMenu).(string); ok && m != "" {
		return m, nil
	}
	return MenuHome, nil
}

// SetMenu records the selected destination.
func (h *Holder) SetMenu(c *fiber.Ctx, menu string) error {
	for _, m := range menus {
		if m == menu {
			return h.set(c, keyMenu, menu)
		}
	}
	return fmt.Errorf("%w: unknown menu %q", models.ErrInvalid, menu)
}

// Require rejects requests without a signed-in user and makes the identity
// available through IdentityFrom.
func (h *Holder) Require() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := h.Current(c)
		if err != nil {
			return err
		}
		if id == nil {
			return ErrNoSession
		}
		c.Locals(localsIdentity, id)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by Require.
func IdentityFrom(c *fiber.Ctx) *Identity {
	id, _ := c.Locals(localsIdentity).(*Identity)
	return id
}

func (h *Holder) set(c *fiber.Ctx, key string, val string) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	sess.Set(key, val)
	return sess.Save()
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
