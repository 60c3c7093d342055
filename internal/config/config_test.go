package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfig_Defaults(t *testing.T) {
	// run from an empty dir so no .env is picked up
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("DB_DRIVER", "")
	t.Setenv("OUTPUT_DIR", "")

	require.NoError(t, LoadEnvConfig())
	cfg := DefaultEnvConfig
	assert.Equal(t, "sqlite3", cfg.DB_DRIVER)
	assert.Equal(t, "empresa.db", cfg.DB_PATH)
	assert.Equal(t, "json_outputs", cfg.OUTPUT_DIR)
	assert.Equal(t, ".", cfg.DATA_DIR)
	assert.Equal(t, 1, cfg.DB_MAX_OPEN_CONNS)
	assert.Empty(t, cfg.REPORT_XLSX_PATH)
}

func TestLoadEnvConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	content := "DB_PATH=other.db\nDB_PORT=6543\nDB_CONN_MAX_LIFETIME=90\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("DB_PATH")
		os.Unsetenv("DB_PORT")
		os.Unsetenv("DB_CONN_MAX_LIFETIME")
	})

	require.NoError(t, LoadEnvConfig())
	assert.Equal(t, "other.db", DefaultEnvConfig.DB_PATH)
	assert.Equal(t, 6543, DefaultEnvConfig.DB_PORT)
	assert.Equal(t, 90*time.Second, DefaultEnvConfig.DB_CONN_MAX_LIFETIME)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("X_INT", "not-a-number")
	t.Setenv("X_DUR", "2m")

	assert.Equal(t, 7, getEnvInt("X_INT", 7))
	assert.Equal(t, 2*time.Minute, getEnvDuration("X_DUR", time.Second))
	assert.Equal(t, "fallback", getEnvString("X_MISSING_KEY", "fallback"))
}
