package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "carmsdw.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "carmsdw.yml"

// envPrefix is the prefix for environment variable overrides. Double
// underscore nests sections, e.g. CARMSDW_TARGET__TYPE=postgres,
// CARMSDW_API__PORT=9000, CARMSDW_DATA_DIR=/srv/data.
const envPrefix = "CARMSDW_"

func defaults() map[string]any {
	return map[string]any{
		"data_dir":                  "data",
		"sources.programs":          "1503_program_master.xlsx",
		"sources.disciplines":       "1503_discipline.xlsx",
		"sources.descriptions":      "1503_program_descriptions_x_section.csv",
		"target.type":               "sqlite",
		"target.database":           "carmsdw.db",
		"api.port":                  8080,
		"api.rate_limit_requests":   120,
		"api.rate_limit_window_sec": 60,
		"log.level":                 "info",
		"log.format":                "text",
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > carmsdw.yaml > carmsdw.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load loads configuration with precedence (highest to lowest):
// flags > env vars > config file > defaults. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file %s not found", cfgFile)
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
