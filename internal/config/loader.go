package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if BLOC_CONFIG is set
//  3. env (prefix BLOC_)
func Load(ctx context.Context) (*Config, error) {
	_ = ctx

	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("BLOC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: BLOC_ADDR, BLOC_FACT_STORE, ...
	// Map env keys like BLOC_FACT_STORE -> fact_store (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("BLOC_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "bloc_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot start with.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.FactStore {
	case StoreMemory, StoreSQLite, StorePostgres:
	default:
		return fmt.Errorf("%w: unknown fact_store %q", ErrInvalidConfig, c.FactStore)
	}
	if c.FactStore == StoreSQLite && c.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite_path must not be empty", ErrInvalidConfig)
	}
	if c.FactStore == StorePostgres && c.PostgresDSN == "" {
		return fmt.Errorf("%w: postgres_dsn must not be empty", ErrInvalidConfig)
	}
	if c.DefaultPodiumSize < 1 {
		return fmt.Errorf("%w: default_podium_size must be positive", ErrInvalidConfig)
	}
	if c.MaxPodiumSize < c.DefaultPodiumSize {
		return fmt.Errorf("%w: max_podium_size must be >= default_podium_size", ErrInvalidConfig)
	}
	return nil
}
