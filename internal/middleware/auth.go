package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"forum/internal/models"
	"forum/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	// SessionCookie names the cookie carrying the session token.
	SessionCookie = "sessionid"

	LocalUserID       = "userID"
	LocalSessionToken = "sessionToken"
)

// Authenticator resolves a session token to the caller it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Caller, error)
}

// SessionToken returns the token sent with the request: the session cookie first,
// then an "Authorization: Bearer" header.
func SessionToken(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookie); token != "" {
		return token
	}
	authHeader := c.Get(fiber.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SessionAuth identifies the caller on every request. Requests without a live
// session continue anonymously; AuthRequired decides whether that is enough.
func SessionAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c)
		if token == "" {
			return c.Next()
		}
		c.Locals(LocalSessionToken, token)

		caller, err := auth.Authenticate(c.UserContext(), token)
		if errors.Is(err, session.ErrNoSession) {
			return c.Next()
		}
		if err != nil {
			Logger.ErrorContext(c.UserContext(), "session lookup failed", slog.String("error", err.Error()))
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
				Error: "Session store unavailable",
				Code:  models.CodeInternal,
			})
		}

		c.Locals(LocalUserID, caller.UserID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, caller.UserID))
		return c.Next()
	}
}

// CallerFrom returns the identity SessionAuth attached to the request.
func CallerFrom(c *fiber.Ctx) models.Caller {
	uid, _ := c.Locals(LocalUserID).(uint)
	return models.Caller{UserID: uid}
}

// AuthRequired rejects anonymous requests with 401.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CallerFrom(c).Authenticated() {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Authentication credentials were not provided."))
		}
		return c.Next()
	}
}
