package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/api", cfg.API.BaseURL)
	assert.Equal(t, "http://localhost:8000", cfg.API.Origin)
	assert.True(t, cfg.Playback.Clamp)
	assert.Equal(t, int64(4), cfg.Schedule.MaxInFlight)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := "api:\n  base_url: https://file.example.com/api\nplayback:\n  seek_step: 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("API_BASE_URL", "")
	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 10.0, cfg.Playback.SeekStep)

	t.Setenv("API_BASE_URL", "https://env.example.com/api")
	cfg, err = loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.API.Origin = "http://media.local:9000"
	cfg.Playback.StartMuted = true

	require.NoError(t, saveConfig(viper.New(), cfg, dir))

	t.Setenv("API_BASE_URL", "")
	loaded, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "http://media.local:9000", loaded.API.Origin)
	assert.True(t, loaded.Playback.StartMuted)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
}

func TestSetupLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reel.log")
	logger, closeLog, err := SetupLogger(&LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)

	logger.Debug("hello")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"pid":`)
}

func TestSetupLoggerWithoutFile(t *testing.T) {
	logger, closeLog, err := SetupLogger(&LoggingConfig{})
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NoError(t, closeLog())
}

func TestLoadConfigPrefixedEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("REEL_PLAYBACK_SEEK_STEP", "20")
	t.Setenv("REEL_PLAYBACK_CLAMP", "false")
	t.Setenv("REEL_API_ORIGIN", "http://env.example:1")
	t.Setenv("REEL_SCHEDULE_MAX_IN_FLIGHT", "9")

	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.Playback.SeekStep)
	assert.False(t, cfg.Playback.Clamp)
	assert.Equal(t, "http://env.example:1", cfg.API.Origin)
	assert.Equal(t, int64(9), cfg.Schedule.MaxInFlight)
	assert.True(t, cfg.Playback.Resume)
}
