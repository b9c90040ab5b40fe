// Package config loads runtime settings from, in increasing precedence,
// flag defaults, a YAML file, FLIPMATCH_* environment variables and
// explicitly set command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is stripped from environment variable names, e.g.
// FLIPMATCH_DB sets "db".
const EnvPrefix = "FLIPMATCH_"

// Config holds the settings of one run.
type Config struct {
	DB         string `koanf:"db" validate:"required"`
	Difficulty string `koanf:"difficulty" validate:"oneof=easy hard"`
	Icons      string `koanf:"icons"`
	LogLevel   string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

// NewFlagSet declares every flag Load understands.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "Path to a YAML config file")
	fs.String("db", "flipmatch.db", `Path to the SQLite database file (":memory:" keeps scores for this run only)`)
	fs.String("difficulty", "easy", "Initial difficulty: easy or hard")
	fs.String("icons", "", "Path to a custom icon pool, one icon per line")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
	return fs
}

// Load parses args with fs and merges every configuration source.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path, _ := fs.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	flags := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if f.Name == "config" {
			return "", nil
		}
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
	})
	if err := k.Load(flags, nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Difficulty = strings.ToLower(strings.TrimSpace(cfg.Difficulty))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// SlogLevel converts LogLevel for a slog handler.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
