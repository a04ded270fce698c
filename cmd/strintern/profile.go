package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const defaultConfigFilename = ".strintern.yaml"

type fileConfig struct {
	Profiles map[string]profileSettings `yaml:"profiles"`
}

type profileSettings struct {
	Store       *string `yaml:"store"`
	Name        *string `yaml:"name"`
	Compression *string `yaml:"compression"`
	Codec       *string `yaml:"codec"`
	Hasher      *string `yaml:"hasher"`
	MemoryLimit *string `yaml:"memory_limit"`
	LogLevel    *string `yaml:"log_level"`
	LogFormat   *string `yaml:"log_format"`
	Region      *string `yaml:"region"`
	Endpoint    *string `yaml:"endpoint"`
	DynamoTable *string `yaml:"dynamodb_table"`
	RateLimit   *string `yaml:"rate_limit"`
}

// ApplyProfile loads and applies the requested configuration profile to cfg.
// Command-line flag overrides take precedence over profile values.
func ApplyProfile(cfg *Config, cmd *cobra.Command) error {
	path, err := resolveConfigPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("locating config file: %w", err)
	}

	if path == "" {
		if cfg.Profile != "" {
			return fmt.Errorf("profile %q requested but no %s file was found", cfg.Profile, defaultConfigFilename)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	profileName := cfg.Profile
	if profileName == "" {
		if _, ok := fc.Profiles["default"]; !ok {
			return nil
		}
		profileName = "default"
	}

	profile, ok := fc.Profiles[profileName]
	if !ok {
		return fmt.Errorf("profile %q not found in %s", profileName, path)
	}

	applyProfileSettings(cfg, &profile, cmd.Flags())
	cfg.ConfigPath = path
	return nil
}

func applyProfileSettings(cfg *Config, profile *profileSettings, flags *pflag.FlagSet) {
	set := func(dst *string, value *string, flag string) {
		if value != nil && !flagChanged(flags, flag) {
			*dst = strings.TrimSpace(*value)
		}
	}

	set(&cfg.Store, profile.Store, "store")
	set(&cfg.Name, profile.Name, "name")
	set(&cfg.Compression, profile.Compression, "compression")
	set(&cfg.Codec, profile.Codec, "codec")
	set(&cfg.Hasher, profile.Hasher, "hasher")
	set(&cfg.MemoryLimit, profile.MemoryLimit, "memory-limit")
	set(&cfg.LogLevel, profile.LogLevel, "log-level")
	set(&cfg.LogFormat, profile.LogFormat, "log-format")
	set(&cfg.Region, profile.Region, "region")
	set(&cfg.Endpoint, profile.Endpoint, "endpoint")
	set(&cfg.DynamoTable, profile.DynamoTable, "dynamodb-table")
	set(&cfg.RateLimit, profile.RateLimit, "rate-limit")
}

func resolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		abs := explicit
		if !filepath.IsAbs(abs) {
			if resolved, err := filepath.Abs(explicit); err == nil {
				abs = resolved
			}
		}
		if _, err := os.Stat(abs); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", err
			}
			return "", fmt.Errorf("stat %s: %w", abs, err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	candidate := filepath.Join(cwd, defaultConfigFilename)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, defaultConfigFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", nil
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	flag := flags.Lookup(name)
	if flag == nil {
		return false
	}
	return flag.Changed
}
