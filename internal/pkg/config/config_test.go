package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
db:
  dsn: postgres://u:p@localhost/orders
  migrate: true
telegram:
  token: "123:abc"
  timeout: 5s
admin:
  password: secret
  jwt_secret: jwt
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost/orders", cfg.DB.DSN)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 10, cfg.DB.MaxConnections)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, 5*time.Second, cfg.Telegram.Timeout)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIURL)
	assert.Equal(t, 35*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, 24*time.Hour, cfg.Admin.TokenTTL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
db:
  dsn: postgres://file
telegram:
  token: from-file
admin:
  password: secret
  jwt_secret: jwt
`)
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, "postgres://env", cfg.DB.DSN)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("SECRET_KEY", "jwt")
	t.Setenv("ADMIN_PASSWORD", "pw")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Telegram.Token)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadRequiresSecrets(t *testing.T) {
	path := writeConfig(t, "db:\n  dsn: postgres://x\n")

	_, err := Load(path)
	assert.Error(t, err)
}
