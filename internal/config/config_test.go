package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "development key", cfg.SecretKey)
	assert.Equal(t, "admin", cfg.Username)
	assert.Equal(t, "default", cfg.Password)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "flaskr", cfg.EntriesKey)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FLASKR_DEBUG", "false")
	t.Setenv("FLASKR_USERNAME", "root")
	t.Setenv("FLASKR_STORE_DRIVER", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "root", cfg.Username)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	err := os.WriteFile(path, []byte("FLASKR_ENTRIES_KEY=guestbook\nFLASKR_STORE_DRIVER=sqlite\n"), 0o600)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("FLASKR_ENTRIES_KEY")
		os.Unsetenv("FLASKR_STORE_DRIVER")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "guestbook", cfg.EntriesKey)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("FLASKR_STORE_DRIVER", "mongo")

	_, err := Load("")
	assert.ErrorContains(t, err, "unknown store driver")
}
