package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"forum/internal/config"
	"forum/internal/middleware"
	"forum/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "correct-horse-battery"

type testServer struct {
	srv *Server
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	cfg := &config.Config{
		Port:             "0",
		Env:              "test",
		DBDriver:         "sqlite",
		SessionSecret:    "server-test-secret-0123456789abcdef",
		SessionTTLHours:  1,
		AllowedOrigins:   "http://localhost:5173",
		PostsPageSize:    10,
		PostsMaxPageSize: 100,
	}

	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)
	srv.authService.WithCost(bcrypt.MinCost)

	return &testServer{srv: srv, app: srv.App(), db: db, mr: mr}
}

func newRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// do sends body as JSON (when non-nil) with the session cookie (when non-nil).
func (ts *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := newRequest(t, method, path, body)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// login creates username and returns its session cookie.
func (ts *testServer) login(t *testing.T, username string) *http.Cookie {
	t.Helper()

	testutil.CreateUser(t, ts.db, username, testPassword)
	resp := ts.do(t, http.MethodPost, "/api/auth/login/", fiber.Map{"username": username, "password": testPassword}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return sessionCookie(t, resp)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatalf("response carries no %s cookie", middleware.SessionCookie)
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealthChecks(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/health/live", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "healthy", body["status"])

	ts.mr.Close()
	resp = ts.do(t, http.MethodGet, "/health/ready", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body = decode[map[string]any](t, resp)
	assert.Equal(t, "unhealthy", body["checks"].(map[string]any)["redis"])
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/nothing-here", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.NotEmpty(t, body["error"])
}

func TestSetupMiddleware_CORSAllowsConfiguredOrigin(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/boards/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodGet, "/api/boards/", nil, nil)
	resp := ts.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestNewServerWithDeps_RequiresStores(t *testing.T) {
	_, err := NewServerWithDeps(&config.Config{}, nil, nil)
	assert.Error(t, err)
}
