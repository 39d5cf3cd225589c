package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_AddsContextValues(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "production")

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, uint(42))
	log.InfoContext(ctx, "post created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "post created", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, float64(42), line["user_id"])
	assert.NotContains(t, line, "trace_id")
}

func TestNewLogger_TestEnvOnlyWarns(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "test")

	log.Info("quiet")
	assert.Empty(t, buf.String())

	log.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestStructuredLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = newLogger(&buf, "production")
	t.Cleanup(func() { Logger = prev })

	app := fiber.New()
	app.Use(StructuredLogger())
	app.Get("/health/live", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/api/boards", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, buf.String(), "health probes log at debug")

	resp, err = app.Test(httptest.NewRequest("GET", "/api/boards", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, float64(404), line["status"])
	assert.Equal(t, "/api/boards", line["path"])
}
