package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
database:
  dsn: "postgres://localhost/bookings"
auth:
  jwt_secret: "secret"
  token_ttl: 2h
reference:
  workbook_path: "/etc/booking/reference.xlsx"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, "postgres://localhost/bookings", cfg.Database.DSN)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns, "default applies")
	assert.False(t, cfg.Auth.AllowPlaintext)
	assert.Equal(t, "/etc/booking/reference.xlsx", cfg.Reference.WorkbookPath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BOOKING_DATABASE_DSN", "postgres://env/bookings")
	t.Setenv("BOOKING_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("BOOKING_SERVER_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/bookings", cfg.Database.DSN)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "0.0.0.0:7070", cfg.Server.Addr())
}

func TestLoadMissingRequired(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn")
}

func TestLoadWithoutJWTSecret(t *testing.T) {
	t.Setenv("BOOKING_DATABASE_DSN", "postgres://env/bookings")

	cfg, err := Load("")
	require.NoError(t, err, "only the web server needs a jwt secret")

	err = cfg.ValidateWeb()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt_secret")

	cfg.Auth.JWTSecret = "secret"
	assert.NoError(t, cfg.ValidateWeb())
}
