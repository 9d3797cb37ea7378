package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Codebook", cfg.Codebook, ""},
		{"LogLevel", cfg.LogLevel, "info"},
		{"Journal", cfg.Journal, false},
		{"Format", cfg.Format, "text"},
		{"MaxLength", cfg.MaxLength, 16.0},
		{"Memo", cfg.Memo, true},
		{"WatchDebounce", cfg.WatchDebounce, 100 * time.Millisecond},
		{"MaxFlare", cfg.Catalog.MaxFlare, 3},
		{"MaxTransformer", cfg.Catalog.MaxTransformer, 4},
		{"MaxTear", cfg.Catalog.MaxTear, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "codebook",
			envKey: "SCRATCHBOOK_CODEBOOK",
			envVal: "/etc/scratchbook/book.yaml",
			field:  func(c Config) any { return c.Codebook },
			want:   "/etc/scratchbook/book.yaml",
		},
		{
			name:   "max_length",
			envKey: "SCRATCHBOOK_MAX_LENGTH",
			envVal: "32",
			field:  func(c Config) any { return c.MaxLength },
			want:   32.0,
		},
		{
			name:   "format",
			envKey: "SCRATCHBOOK_FORMAT",
			envVal: "json",
			field:  func(c Config) any { return c.Format },
			want:   "json",
		},
		{
			name:   "watch_debounce",
			envKey: "SCRATCHBOOK_WATCH_DEBOUNCE",
			envVal: "250ms",
			field:  func(c Config) any { return c.WatchDebounce },
			want:   250 * time.Millisecond,
		},
		{
			name:   "memo",
			envKey: "SCRATCHBOOK_MEMO",
			envVal: "false",
			field:  func(c Config) any { return c.Memo },
			want:   false,
		},
		{
			name:   "catalog.max_flare",
			envKey: "SCRATCHBOOK_CATALOG_MAX_FLARE",
			envVal: "5",
			field:  func(c Config) any { return c.Catalog.MaxFlare },
			want:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			BindEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestLoad_File(t *testing.T) {
	resetViper()
	path := filepath.Join(t.TempDir(), ".scratchbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("codebook: book.toml\nlog_level: debug\ncatalog:\n  max_transformer: 6\n"), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "book.toml", cfg.Codebook)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 6, cfg.Catalog.MaxTransformer)
	assert.Equal(t, 3, cfg.Catalog.MaxFlare)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key string
		val any
	}{
		{"format", "xml"},
		{"log_level", "loud"},
		{"max_length", -1.0},
		{"catalog.max_flare", 12},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
