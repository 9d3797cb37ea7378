// Package config loads scratchbook settings from .scratchbook.yaml,
// SCRATCHBOOK_* environment variables and CLI flags.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/blackwell-systems/scratchbook/catalog"
	"github.com/blackwell-systems/scratchbook/codebook"
	"github.com/blackwell-systems/scratchbook/logs"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "SCRATCHBOOK"

// Formats lists the accepted output formats.
var Formats = []string{"text", "yaml", "json"}

// Config holds all runtime configuration.
type Config struct {
	Codebook      string         `mapstructure:"codebook"`
	LogLevel      string         `mapstructure:"log_level"`
	Journal       bool           `mapstructure:"journal"`
	Format        string         `mapstructure:"format"`
	MaxLength     float64        `mapstructure:"max_length"`
	Memo          bool           `mapstructure:"memo"`
	WatchDebounce time.Duration  `mapstructure:"watch_debounce"`
	Catalog       catalog.Limits `mapstructure:"catalog"`
}

// BindEnv maps SCRATCHBOOK_* variables onto config keys; nested keys use
// underscores, as in SCRATCHBOOK_CATALOG_MAX_FLARE.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("codebook", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("journal", false)
	viper.SetDefault("format", "text")
	viper.SetDefault("max_length", 16.0)
	viper.SetDefault("memo", true)
	viper.SetDefault("watch_debounce", codebook.DefaultDebounce)
	viper.SetDefault("catalog.max_flare", catalog.DefaultLimits.MaxFlare)
	viper.SetDefault("catalog.max_transformer", catalog.DefaultLimits.MaxTransformer)
	viper.SetDefault("catalog.max_tear", catalog.DefaultLimits.MaxTear)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command could run with.
func (c Config) Validate() error {
	if _, err := logs.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("config: format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("config: max_length %g is negative", c.MaxLength)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("config: watch_debounce %s is negative", c.WatchDebounce)
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("config: catalog: %w", err)
	}
	return nil
}
