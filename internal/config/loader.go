package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/touchboard/pkg/logger"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TOUCHBOARD_"
	// EnvConfigFile points at an optional YAML file.
	EnvConfigFile = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if TOUCHBOARD_CONFIG is set
//  3. env (prefix TOUCHBOARD_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// TOUCHBOARD_DATA_PATH -> data_path. Underscores are kept to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case math.IsNaN(c.DefaultUsageMin) || math.IsInf(c.DefaultUsageMin, 0):
		return fmt.Errorf("%w: default_usage_min must be finite", ErrInvalidConfig)
	case c.MaxResultRows <= 0:
		return fmt.Errorf("%w: max_result_rows must be positive, got %d", ErrInvalidConfig, c.MaxResultRows)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart size must be positive, got %dx%d", ErrInvalidConfig, c.ChartWidth, c.ChartHeight)
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
