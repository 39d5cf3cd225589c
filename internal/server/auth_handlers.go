package server

import (
	"time"

	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/serializer"
	"forum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL().Seconds()),
		Expires:  time.Now().Add(s.sessions.TTL()),
		Secure:   s.config.SessionCookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   s.config.SessionCookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// authFailure writes the auth envelope for rejected requests. Internal errors
// keep the standard error envelope.
func authFailure(c *fiber.Ctx, err error) error {
	appErr := models.AsAppError(err)
	if appErr.Code == models.CodeInternal {
		return models.RespondWithError(c, appErr)
	}
	return c.Status(appErr.Status()).JSON(serializer.AuthResponse{
		Success: false,
		Message: appErr.Message,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return authFailure(c, err)
	}

	current, _ := c.Locals(middleware.LocalSessionToken).(string)
	user, token, err := s.authService.Login(c.UserContext(), req.Username, req.Password, current)
	if err != nil {
		return authFailure(c, err)
	}

	s.setSessionCookie(c, token)
	profile := serializer.User(user)
	return c.JSON(serializer.AuthResponse{
		Success: true,
		User:    &profile,
		Message: "Login successful",
	})
}

// Logout handles POST /api/auth/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(middleware.LocalSessionToken).(string)
	if !middleware.CallerFrom(c).Authenticated() {
		return authFailure(c, models.NewUnauthorizedError("Authentication credentials were not provided."))
	}

	if err := s.authService.Logout(c.UserContext(), token); err != nil {
		return authFailure(c, err)
	}

	s.clearSessionCookie(c)
	return c.JSON(serializer.AuthResponse{
		Success: true,
		Message: "Logged out",
	})
}

// Register handles POST /api/auth/register. It does not log the new user in.
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := bindJSON(c, &in); err != nil {
		return authFailure(c, err)
	}

	user, err := s.authService.Register(c.UserContext(), in)
	if err != nil {
		return authFailure(c, err)
	}

	profile := serializer.User(user)
	return c.Status(fiber.StatusCreated).JSON(serializer.AuthResponse{
		Success: true,
		User:    &profile,
		Message: "Registration successful",
	})
}
