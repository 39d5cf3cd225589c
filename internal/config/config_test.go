package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:             "8000",
		Env:              "development",
		DBDriver:         "sqlite",
		DBPassword:       "secure-password",
		DBSSLMode:        "require",
		SessionSecret:    "secure-secret-at-least-32-chars-long",
		SessionTTLHours:  24,
		PostsPageSize:    10,
		PostsMaxPageSize: 100,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing session secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"Zero session ttl", func(c *Config) { c.SessionTTLHours = 0 }, true},
		{"Max page size below default", func(c *Config) { c.PostsMaxPageSize = 5 }, true},
		{"Sampler ratio out of range", func(c *Config) { c.TracingSamplerRatio = 1.5 }, true},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = defaultSessionSecret
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "prod"
			c.SessionSecret = "short"
		}, true},
		{"Production postgres with default password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
			c.DBPassword = "password"
		}, true},
		{"Production postgres with strong password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
		}, false},
		{"Development short secret only warns", func(c *Config) { c.SessionSecret = "short" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9100")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("POSTS_PAGE_SIZE", "25")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("ALLOWED_ORIGINS", " http://a.example , ,http://b.example")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9100", c.Port)
	assert.Equal(t, 25, c.PostsPageSize)
	assert.Equal(t, 100, c.PostsMaxPageSize)
	assert.Equal(t, 2*time.Hour, c.SessionTTL())
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, c.Origins())
	assert.False(t, c.IsProduction())
}

func TestLoadConfig_InvalidDriver(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DB_DRIVER")
}
