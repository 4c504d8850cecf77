package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jask/avatardeck/internal/avatar"
	"github.com/jask/avatardeck/internal/reqres"
)

// Config holds application configuration.
type Config struct {
	Source SourceConfig
	UI     UIConfig
	Log    LogConfig
}

// SourceConfig describes the remote users endpoint.
type SourceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Page    int           `mapstructure:"page"`
	Limit   int           `mapstructure:"limit"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title             string `mapstructure:"title"`
	Subtitle          string `mapstructure:"subtitle"`
	PlaceholderAvatar string `mapstructure:"placeholder_avatar"`
}

// LogConfig controls the log file. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. A .env file in the working
// directory is applied first; env var overrides use prefix AVATARDECK_.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// default values
	v.SetDefault("source.base_url", reqres.DefaultBaseURL)
	v.SetDefault("source.page", 1)
	v.SetDefault("source.limit", reqres.MaxLimit)
	v.SetDefault("source.timeout", "10s")
	v.SetDefault("ui.title", "Welcome back, Admin!")
	v.SetDefault("ui.subtitle", "Manage your avatars with ease ✨")
	v.SetDefault("ui.placeholder_avatar", avatar.PlaceholderURL)
	v.SetDefault("log.path", defaultLogPath())
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("AVATARDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "avatardeck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("AVATARDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Source.Page < 1 {
		return Config{}, fmt.Errorf("source.page must be >= 1, got %d", c.Source.Page)
	}
	if c.Source.Limit < 1 || c.Source.Limit > reqres.MaxLimit {
		return Config{}, fmt.Errorf("source.limit must be in 1..%d, got %d", reqres.MaxLimit, c.Source.Limit)
	}
	return c, nil
}

func defaultLogPath() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".local", "state", "avatardeck", "avatardeck.log")
}
