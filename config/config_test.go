package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("warehouse.toml")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[physics]
gravity = -20.0

[assets]
root = "/srv/warehouse"
concurrency = 0

[logging]
level = "debug"
format = "json"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, -20, cfg.Physics.Gravity, 1e-9)
	assert.Equal(t, "/srv/warehouse", cfg.Assets.Root)
	assert.Equal(t, 1, cfg.Assets.Concurrency)
	assert.Equal(t, 1280, cfg.Window.Width, "untouched sections keep defaults")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad toml", body: "[window\nwidth = 1"},
		{name: "zero width", body: "[window]\nwidth = 0"},
		{name: "empty root", body: "[assets]\nroot = \"\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg  LoggingConfig
		want zapcore.Level
	}{
		{cfg: LoggingConfig{Level: "debug", Format: "console"}, want: zapcore.DebugLevel},
		{cfg: LoggingConfig{Level: "warn", Format: "json"}, want: zapcore.WarnLevel},
		{cfg: LoggingConfig{Level: "loud"}, want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Level, func(t *testing.T) {
			log, err := NewLogger(tt.cfg)
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			assert.False(t, log.Core().Enabled(tt.want-1))
		})
	}
}
