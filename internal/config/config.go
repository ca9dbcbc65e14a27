// Package config loads simulator settings from an optional YAML file and
// LUDO_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete simulator configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Match     MatchConfig     `mapstructure:"match"`
	Spectator SpectatorConfig `mapstructure:"spectator"`
}

// LoggingConfig controls the zap logger built by the entry points.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MatchConfig controls how matches are set up.
type MatchConfig struct {
	// Seed for the random source; 0 draws a fresh seed per match.
	Seed         int64 `mapstructure:"seed"`
	MaxRounds    int   `mapstructure:"max_rounds"`
	RecordReplay bool  `mapstructure:"record_replay"`
	// Count is how many matches the CLI plays back to back.
	Count int `mapstructure:"count"`
}

// SpectatorConfig controls the websocket event feed.
type SpectatorConfig struct {
	Address    string        `mapstructure:"address"`
	EventDelay time.Duration `mapstructure:"event_delay"`
	MatchPause time.Duration `mapstructure:"match_pause"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("match.seed", 0)
	v.SetDefault("match.max_rounds", 500)
	v.SetDefault("match.record_replay", true)
	v.SetDefault("match.count", 1)

	v.SetDefault("spectator.address", ":8090")
	v.SetDefault("spectator.event_delay", 150*time.Millisecond)
	v.SetDefault("spectator.match_pause", 3*time.Second)
}

// Load reads the configuration at path. A missing file is not an error;
// defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LUDO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	if c.Match.MaxRounds <= 0 {
		return fmt.Errorf("%w: match.max_rounds must be positive, got %d", ErrInvalidConfig, c.Match.MaxRounds)
	}
	if c.Match.Count <= 0 {
		return fmt.Errorf("%w: match.count must be positive, got %d", ErrInvalidConfig, c.Match.Count)
	}
	if c.Spectator.Address == "" {
		return fmt.Errorf("%w: spectator.address is empty", ErrInvalidConfig)
	}
	if c.Spectator.EventDelay < 0 || c.Spectator.MatchPause < 0 {
		return fmt.Errorf("%w: spectator delays must not be negative", ErrInvalidConfig)
	}
	return nil
}
