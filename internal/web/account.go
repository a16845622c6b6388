// ABOUTME: HTTP handlers for registration, login, and the signed-in profile.
// ABOUTME: Photo and theme preferences live on the session, as does the menu.
package web

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/harperreed/fuerza/internal/models"
	"github.com/harperreed/fuerza/internal/profile"
	"github.com/harperreed/fuerza/internal/session"
)

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Preset   string `json:"preset" form:"preset"`
	Photo    []byte `json:"photo" form:"-"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type photoRequest struct {
	Preset string `json:"preset" form:"preset"`
	Photo  []byte `json:"photo" form:"-"`
}

type meResponse struct {
	User  *session.Identity `json:"user"`
	Theme session.Theme     `json:"theme"`
	Menu  string            `json:"menu"`
}

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	choice, err := readChoice(c, req.Preset, req.Photo)
	if err != nil {
		return err
	}

	user, err := s.auth.SignUp(c.UserContext(), req.Name, req.Email, req.Password, choice)
	s.metrics.auth("register", err)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}

	user, err := s.auth.Validate(c.UserContext(), req.Email, req.Password)
	s.metrics.auth("login", err)
	if err != nil {
		return err
	}
	if err := s.sessions.SignIn(c, user); err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *Server) logout(c *fiber.Ctx) error {
	if err := s.sessions.SignOut(c); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) me(c *fiber.Ctx) error {
	theme, err := s.sessions.Theme(c)
	if err != nil {
		return err
	}
	menu, err := s.sessions.Menu(c)
	if err != nil {
		return err
	}
	return c.JSON(meResponse{User: session.IdentityFrom(c), Theme: theme, Menu: menu})
}

func (s *Server) photo(c *fiber.Ctx) error {
	user, err := s.repo.GetUserByID(c.UserContext(), session.IdentityFrom(c).ID)
	if err != nil {
		return err
	}
	raw, err := s.profiles.Photo(user)
	if errors.Is(err, profile.ErrNoPhoto) {
		return fiber.NewError(fiber.StatusNotFound, "no photo")
	}
	if err != nil {
		return err
	}
	c.Type("png")
	return c.Send(raw)
}

func (s *Server) updatePhoto(c *fiber.Ctx) error {
	var req photoRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	choice, err := readChoice(c, req.Preset, req.Photo)
	if err != nil {
		return err
	}

	user, err := s.repo.GetUserByID(c.UserContext(), session.IdentityFrom(c).ID)
	if err != nil {
		return err
	}
	ref, err := s.profiles.UpdatePhoto(c.UserContext(), user, choice)
	if err != nil {
		return err
	}
	if err := s.sessions.SetPhoto(c, ref); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"photo": ref})
}

func (s *Server) setTheme(c *fiber.Ctx) error {
	var req struct {
		Theme string `json:"theme" form:"theme"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	theme, err := session.ParseTheme(req.Theme)
	if err != nil {
		return err
	}
	if err := s.sessions.SetTheme(c, theme); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"theme": theme})
}

func (s *Server) setMenu(c *fiber.Ctx) error {
	var req struct {
		Menu string `json:"menu" form:"menu"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(err)
	}
	if err := s.sessions.SetMenu(c, req.Menu); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"menu": req.Menu})
}

// readChoice builds a photo choice from a JSON body (base64 "photo") or a
// multipart form with a "photo" file part.
func readChoice(c *fiber.Ctx, preset string, upload []byte) (profile.Choice, error) {
	choice := profile.Choice{Preset: strings.TrimSpace(preset), Upload: upload}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return choice, nil
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return choice, nil
	}
	f, err := fh.Open()
	if err != nil {
		return choice, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, profile.MaxUploadBytes+1))
	if err != nil {
		return choice, fmt.Errorf("read upload: %w", err)
	}
	choice.Upload = raw
	return choice, nil
}

func badBody(err error) error {
	return fmt.Errorf("%w: malformed request body: %v", models.ErrInvalid, err)
}
