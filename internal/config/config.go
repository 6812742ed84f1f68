package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI       UIConfig
	Log      LogConfig
	DevTools DevToolsConfig
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string // classic | neon | mono
	Color string // auto | always | never
}

// LogConfig controls the slog logger. An empty File means stderr for
// one-shot commands and no logging in the TUI.
type LogConfig struct {
	Level string
	File  string
}

// DevToolsConfig controls the dispatch monitor.
type DevToolsConfig struct {
	Enabled bool
	MaxAge  int    `mapstructure:"max_age"`
	Export  string // session dump written on exit when set
}

// Load reads configuration from file and env. Env var overrides use prefix TODO_.
// An explicit path wins over TODO_CONFIG and the default location.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.color", "auto")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("devtools.enabled", true)
	v.SetDefault("devtools.max_age", 50)
	v.SetDefault("devtools.export", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("TODO_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "todo"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TODO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; a file the caller named must exist.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
