package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, LevelNormal, cfg.Logging.Level)
	assert.Equal(t, "build", cfg.SizeCheck.Dir)
	assert.Equal(t, int64(51200), cfg.SizeCheck.Limit)
	assert.Empty(t, cfg.Content.File)
	assert.Empty(t, cfg.File)
}

func TestLoadFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("folio.yaml", []byte(`
window:
  title: Tanvir
  show_fps: true
content:
  file: content.yaml
  watch: true
logging:
  level: debug
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Tanvir", cfg.Window.Title)
	assert.True(t, cfg.Window.ShowFPS)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, "content.yaml", cfg.Content.File)
	assert.True(t, cfg.Content.Watch)
	assert.Equal(t, LevelDebug, cfg.Logging.Level)
	assert.NotEmpty(t, cfg.File)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FOLIO_WINDOW_WIDTH", "1024")
	t.Setenv("FOLIO_SIZECHECK_DIR", "dist")
	t.Setenv("FOLIO_DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, "dist", cfg.SizeCheck.Dir)
	assert.True(t, cfg.Debug)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sizecheck:\n  limit: 1024\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.SizeCheck.Limit)
	assert.Equal(t, path, cfg.File)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 0
logging:
  level: loud
sizecheck:
  limit: -1
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "loud")
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		info  bool
	}{
		{level: LevelNone},
		{level: LevelNormal, info: true},
		{level: LevelDebug, debug: true, info: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			conf := LoggingConfig{Level: tt.level}
			log, err := conf.Prepare()
			require.NoError(t, err)
			core := log.Core()
			assert.Equal(t, tt.debug, core.Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.info, core.Enabled(zapcore.InfoLevel))
			assert.Equal(t, tt.level != LevelNone, core.Enabled(zapcore.ErrorLevel))
		})
	}

	_, err := (&LoggingConfig{Level: "verbose"}).Prepare()
	assert.Error(t, err)
}
