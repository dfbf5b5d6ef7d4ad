package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "rb_saved_resumes_v1", cfg.Storage.Key)
	assert.Equal(t, 2.0, cfg.Render.Scale)
	assert.Equal(t, 400*time.Millisecond, cfg.Render.SettleDelay)
	assert.Equal(t, "crop", cfg.Render.Pagination)
	assert.Equal(t, 800, cfg.Render.SurfaceWidth)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("RENDER_SCALE", "1.5")
	t.Setenv("PAGINATION_MODE", "clip")
	t.Setenv("SETTLE_DELAY", "1s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, 2.0, cfg.Render.Scale)
	assert.Equal(t, "clip", cfg.Render.Pagination)
	assert.Equal(t, time.Second, cfg.Render.SettleDelay)
}

func TestLoadFromDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SURFACE_WIDTH=640\nSTORAGE_KEY=custom_key\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("SURFACE_WIDTH")
		os.Unsetenv("STORAGE_KEY")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Render.SurfaceWidth)
	assert.Equal(t, "custom_key", cfg.Storage.Key)
}

func TestValidateRejects(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("STORAGE_BACKEND", "mongo")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "STORAGE_BACKEND")

	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("PAGINATION_MODE", "zigzag")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "PAGINATION_MODE")
}
