// Package session stores login sessions in Redis and hands clients a signed token naming them.
//
// The token is an HS256 JWT whose jti is the session id. A token only resolves while
// the matching Redis key exists, so Destroy takes effect immediately.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"forum/internal/observability"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	Issuer    = "forum-api"
	Audience  = "forum-client"
	keyPrefix = "session:"
)

// ErrNoSession is returned when a token does not name a live session.
var ErrNoSession = errors.New("session: no live session")

// Session is a live server-side login.
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
}

// Manager creates, resolves and destroys sessions.
type Manager struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager signing tokens with secret. Sessions live for ttl.
func NewManager(rdb *redis.Client, secret string, ttl time.Duration) *Manager {
	return &Manager{
		rdb:    rdb,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the lifetime given to new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func key(sid string) string {
	return keyPrefix + sid
}

// Create opens a session for userID and returns its signed token.
func (m *Manager) Create(ctx context.Context, userID uint) (_ string, _ Session, err error) {
	ctx, span := observability.StartRedisSpan(ctx, "session.create")
	defer func() { observability.EndSpan(span, err) }()

	now := m.now()
	s := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        s.ID,
		Issuer:    Issuer,
		Audience:  jwt.ClaimStrings{Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session token: %w", err)
	}

	if err := m.rdb.Set(ctx, key(s.ID), claims.Subject, m.ttl).Err(); err != nil {
		return "", Session{}, fmt.Errorf("store session: %w", err)
	}

	return token, s, nil
}

func (m *Manager) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || claims.ID == "" {
		return nil, ErrNoSession
	}
	return claims, nil
}

// Resolve returns the live session named by token, or ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (_ Session, err error) {
	if token == "" {
		return Session{}, ErrNoSession
	}
	claims, err := m.parse(token)
	if err != nil {
		return Session{}, err
	}

	ctx, span := observability.StartRedisSpan(ctx, "session.resolve")
	defer func() {
		if errors.Is(err, ErrNoSession) {
			span.End()
			return
		}
		observability.EndSpan(span, err)
	}()

	stored, err := m.rdb.Get(ctx, key(claims.ID)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if stored != claims.Subject {
		return Session{}, ErrNoSession
	}

	userID, err := strconv.ParseUint(stored, 10, 64)
	if err != nil || userID == 0 {
		return Session{}, ErrNoSession
	}

	return Session{
		ID:        claims.ID,
		UserID:    uint(userID),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Destroy ends the session named by token. A token without a live session yields ErrNoSession.
func (m *Manager) Destroy(ctx context.Context, token string) (err error) {
	claims, err := m.parse(token)
	if err != nil {
		return err
	}

	ctx, span := observability.StartRedisSpan(ctx, "session.destroy")
	defer func() { observability.EndSpan(span, err) }()

	n, err := m.rdb.Del(ctx, key(claims.ID)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return ErrNoSession
	}
	return nil
}
