// Package config loads application settings from the embedded defaults, an
// optional YAML file and DOTREE_* environment variables, in that order.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. DOTREE_HISTORY_MAX_ENTRIES.
const EnvPrefix = "DOTREE"

//go:embed default_settings.yaml
var defaultSettings []byte

// DefaultYAML returns a copy of the embedded default settings.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultSettings...)
}

// Load merges path over the defaults. When optional is true a missing file
// is not an error.
func Load(path string, optional bool) (Config, error) {
	var cfg Config
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultSettings)); err != nil {
		return cfg, fmt.Errorf("decode default settings: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			if !(optional && errors.Is(err, fs.ErrNotExist)) {
				return cfg, fmt.Errorf("load settings %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode settings: %w", err)
	}
	if cfg.History.MaxEntries < 0 {
		return cfg, fmt.Errorf("history.max_entries must not be negative, got %d", cfg.History.MaxEntries)
	}
	return cfg, nil
}
