package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// APIConfig locates the API server
type APIConfig struct {
	Origin  string `mapstructure:"origin"`   // Scheme and host a path-only base URL is resolved against
	BaseURL string `mapstructure:"base_url"` // "/api" or an absolute URL; API_BASE_URL overrides
	Timeout int    `mapstructure:"timeout"`  // Seconds
}

// ScheduleConfig holds outbound request scheduling limits
type ScheduleConfig struct {
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
	MaxInFlight   int64   `mapstructure:"max_in_flight"`
}

// PlaybackConfig holds player preferences
type PlaybackConfig struct {
	Clamp      bool    `mapstructure:"clamp"`     // Keep seeks within [0, duration]
	SeekStep   float64 `mapstructure:"seek_step"` // Seconds per arrow key press
	Resume     bool    `mapstructure:"resume"`    // Start from the last saved position
	StartMuted bool    `mapstructure:"start_muted"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// CacheConfig holds session store configuration
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // Empty keeps the session in memory only
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Origin:  "http://localhost:8000",
			BaseURL: "/api",
			Timeout: 30,
		},
		Schedule: ScheduleConfig{
			RatePerSecond: 10,
			Burst:         20,
			MaxInFlight:   4,
		},
		Playback: PlaybackConfig{
			Clamp:    true,
			SeekStep: 5,
			Resume:   true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel", "reel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "reel.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reel", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// AutomaticEnv only resolves keys viper already knows about
	for key, value := range configKeys(cfg) {
		v.SetDefault(key, value)
	}

	// Environment variable overrides
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.base_url", "API_BASE_URL", "REEL_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// configKeys flattens cfg into snake_case viper keys
func configKeys(cfg *Config) map[string]any {
	return map[string]any{
		"api.origin":   cfg.API.Origin,
		"api.base_url": cfg.API.BaseURL,
		"api.timeout":  cfg.API.Timeout,

		"schedule.rate_per_second": cfg.Schedule.RatePerSecond,
		"schedule.burst":           cfg.Schedule.Burst,
		"schedule.max_in_flight":   cfg.Schedule.MaxInFlight,

		"playback.clamp":       cfg.Playback.Clamp,
		"playback.seek_step":   cfg.Playback.SeekStep,
		"playback.resume":      cfg.Playback.Resume,
		"playback.start_muted": cfg.Playback.StartMuted,

		"logging.file":  cfg.Logging.File,
		"logging.level": cfg.Logging.Level,

		"cache.dir": cfg.Cache.Dir,
	}
}

// SaveConfig writes cfg to the config file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.New(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	for key, value := range configKeys(cfg) {
		v.Set(key, value)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
