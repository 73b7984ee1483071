package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:           "8480",
		JWTSecret:      "secure-secret-at-least-32-chars-long!",
		DBDriver:       "postgres",
		DBPassword:     "secure-password",
		DBSSLMode:      "require",
		ChatMessageTTL: 24,
		Env:            "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		c := validConfig()
		c.Port = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := validConfig()
		c.JWTSecret = ""
		assert.Error(t, c.Validate())
	})

	t.Run("unsupported driver", func(t *testing.T) {
		c := validConfig()
		c.DBDriver = "mysql"
		assert.Error(t, c.Validate())
	})

	t.Run("non-positive chat ttl", func(t *testing.T) {
		c := validConfig()
		c.ChatMessageTTL = 0
		assert.Error(t, c.Validate())
	})
}

func TestConfig_ValidateProduction(t *testing.T) {
	t.Run("default secret rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, c.Validate())
	})

	t.Run("short secret rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.JWTSecret = "short"
		assert.Error(t, c.Validate())
	})

	t.Run("sqlite rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		c.DBDriver = "sqlite"
		assert.Error(t, c.Validate())
	})

	t.Run("weak db password rejected", func(t *testing.T) {
		c := validConfig()
		c.Env = "prod"
		c.DBPassword = "password"
		assert.Error(t, c.Validate())
	})

	t.Run("hardened config accepted", func(t *testing.T) {
		c := validConfig()
		c.Env = "production"
		assert.NoError(t, c.Validate())
	})
}

func TestConfig_ChatTTL(t *testing.T) {
	c := validConfig()
	assert.Equal(t, "24h0m0s", c.ChatTTL().String())
}
