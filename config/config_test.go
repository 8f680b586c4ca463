package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COMFORT_API_URL",
		"COMFORT_API_TIMEOUT",
		"COMFORT_DEGRADED_LOGIN",
		"COMFORT_DEGRADED_PASSWORD",
		"DATABASE_URL",
		"PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout())
	assert.Equal(t, "admin", cfg.DegradedAuth.Login)
	assert.Equal(t, "file:comfort-snapshots.db", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadReadsYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "comfort.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://comfort-asbl.org/api
  timeout: 3s
degraded_auth:
  login: secours
  password: motdepasse
database_url: "file:prod.db"
server:
  port: "9090"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://comfort-asbl.org/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout())
	assert.Equal(t, "secours", cfg.DegradedAuth.Login)
	assert.Equal(t, "file:prod.db", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMFORT_API_URL", "https://staging.comfort-asbl.org/api")
	t.Setenv("COMFORT_API_TIMEOUT", "500ms")
	t.Setenv("PORT", "3000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://staging.comfort-asbl.org/api", cfg.API.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.APITimeout())
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "comfort.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api: ["), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("unparseable timeout", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("COMFORT_API_TIMEOUT", "soon")

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("non-numeric port is ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "not-a-port")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
	})
}
