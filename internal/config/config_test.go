package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  name: "shareit"
database:
  path: "./data/test.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Server.DefaultPageSize)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, "http://localhost:9090", cfg.Gateway.ServerURL)
	assert.Equal(t, 10, cfg.Gateway.RequestTimeout)
	assert.Equal(t, 30, cfg.Gateway.RateLimitRequests)
	assert.Equal(t, 60, cfg.Gateway.RateLimitWindow)
	assert.Equal(t, 1000, cfg.Telegram.QueueSize)
	assert.Equal(t, 3, cfg.Telegram.RetryCount)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/tmp/expanded.db")
	path := writeConfig(t, `
database:
  path: "${TEST_DB_PATH}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/expanded.db", cfg.Database.Path)
}

func TestLoadValidation(t *testing.T) {
	t.Run("MissingDatabasePath", func(t *testing.T) {
		path := writeConfig(t, `
app:
  name: "shareit"
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("TelegramEnabledWithoutToken", func(t *testing.T) {
		path := writeConfig(t, `
database:
  path: "./data/test.db"
telegram:
  enabled: true
  owners_chat: 123
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("TelegramEnabledWithoutChat", func(t *testing.T) {
		path := writeConfig(t, `
database:
  path: "./data/test.db"
telegram:
  enabled: true
  bot_token: "token"
`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
