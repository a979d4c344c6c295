package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("ROLEPANEL_DEBUG", "false")
	t.Setenv("ROLEPANEL_SESSION_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoadDebugAllowsEmptySecret(t *testing.T) {
	t.Setenv("ROLEPANEL_DEBUG", "true")
	t.Setenv("ROLEPANEL_SESSION_SECRET", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Empty(t, c.SessionSecret)
	assert.Equal(t, Debug, GetLogLevel())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROLEPANEL_DEBUG", "")
	t.Setenv("ROLEPANEL_SESSION_SECRET", "s3cret")
	t.Setenv("ROLEPANEL_PORT", "not-a-number")
	t.Setenv("ROLEPANEL_DB_FOLDER", "/tmp/rp")
	t.Setenv("ROLEPANEL_ADMIN_PASSWORD", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultPort, c.Port)
	assert.Equal(t, defaultSessionMaxAge, c.SessionMaxAge)
	assert.Equal(t, "admin", c.AdminLogin)
	assert.True(t, c.UsesDefaultAdminPassword())
	assert.Equal(t, filepath.Join("/tmp/rp", "rolepanel.db"), c.Database.Path)
	assert.Empty(t, c.Redis.Addr)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("ROLEPANEL_SESSION_SECRET", "s3cret")
	t.Setenv("ROLEPANEL_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROLEPANEL_TEST_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ROLEPANEL_TEST_VALUE") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("ROLEPANEL_TEST_VALUE"))

	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
