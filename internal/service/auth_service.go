package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/observability"
	"forum/internal/repository"
	"forum/internal/session"
	"forum/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// SessionStore is the subset of session.Manager the auth flow needs.
type SessionStore interface {
	Create(ctx context.Context, userID uint) (string, session.Session, error)
	Resolve(ctx context.Context, token string) (session.Session, error)
	Destroy(ctx context.Context, token string) error
}

// AuthService implements login, logout and registration on top of server-side sessions.
type AuthService struct {
	users    repository.UserRepository
	sessions SessionStore
	cost     int

	dummyOnce sync.Once
	dummyHash []byte
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func NewAuthService(users repository.UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost used for new password hashes.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// compareDummy burns the same bcrypt time as a real check so unknown usernames
// cannot be told apart by latency.
func (s *AuthService) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

// Login checks the credentials and opens a new session. A session presented with the
// request (currentToken) is destroyed first. Unknown users and wrong passwords fail alike.
func (s *AuthService) Login(ctx context.Context, username, password, currentToken string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		s.compareDummy(password)
		observability.RecordAuthEvent("login", "failure")
		return nil, "", models.NewAuthenticationFailedError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.RecordAuthEvent("login", "failure")
		return nil, "", models.NewAuthenticationFailedError()
	}

	if currentToken != "" {
		if err := s.sessions.Destroy(ctx, currentToken); err != nil && !errors.Is(err, session.ErrNoSession) {
			return nil, "", models.NewInternalError(err)
		}
	}

	token, _, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	observability.RecordAuthEvent("login", "success")
	middleware.Logger.InfoContext(ctx, "user logged in", slog.Uint64("user_id", uint64(user.ID)))
	return user, token, nil
}

// Logout destroys the session named by token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Destroy(ctx, token); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return models.NewUnauthorizedError("Authentication credentials were not provided.")
		}
		return models.NewInternalError(err)
	}
	observability.RecordAuthEvent("logout", "success")
	return nil
}

// Register creates an account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.RecordAuthEvent("register", "duplicate")
		return nil, models.NewValidationError("Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.RecordAuthEvent("register", "success")
	return user, nil
}

// Authenticate maps a session token onto the caller it belongs to.
// A token without a live session yields session.ErrNoSession.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Caller, error) {
	sess, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return models.Caller{}, err
	}
	return models.Caller{UserID: sess.UserID}, nil
}
