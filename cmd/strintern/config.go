package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hupe1980/strintern"
	"github.com/hupe1980/strintern/codec"
	"github.com/hupe1980/strintern/snapshot"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config captures all runtime configuration for the CLI.
type Config struct {
	ConfigPath string
	Profile    string

	Store       string
	Name        string
	Compression string
	Codec       string
	Hasher      string
	MemoryLimit string

	LogLevel  string
	LogFormat string

	Region      string
	Endpoint    string
	DynamoTable string
	RateLimit   string
}

// BindFlags registers the shared command-line flags and returns a Config
// instance whose fields are populated when Cobra parses flag values.
func BindFlags(cmd *cobra.Command) *Config {
	cfg := &Config{}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigPath, "config", "", "config file (default is ./.strintern.yaml or $HOME/.strintern.yaml)")
	flags.StringVar(&cfg.Profile, "profile", "", "configuration profile to apply")
	flags.StringVarP(&cfg.Store, "store", "s", "file://.", "snapshot store URL (file://dir, mem://, s3://bucket/prefix, minio://endpoint/bucket/prefix)")
	flags.StringVarP(&cfg.Name, "name", "n", "", "snapshot name (default: the current snapshot, or a timestamped name for build)")
	flags.StringVar(&cfg.Compression, "compression", "zstd", "snapshot compression (none, lz4, zstd)")
	flags.StringVar(&cfg.Codec, "codec", codec.Default.Name(), fmt.Sprintf("snapshot codec (%s)", strings.Join(codec.Names(), ", ")))
	flags.StringVar(&cfg.Hasher, "hasher", "maphash", fmt.Sprintf("string hasher (%s)", strings.Join(strintern.HasherNames(), ", ")))
	flags.StringVar(&cfg.MemoryLimit, "memory-limit", "", "arena memory limit, e.g. 512MiB (default unlimited)")
	flags.StringVar(&cfg.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFormat, "log-format", FormatText, "log format (text, json)")
	flags.StringVar(&cfg.Region, "region", "", "AWS region for s3:// stores")
	flags.StringVar(&cfg.Endpoint, "endpoint", "", "custom S3 endpoint for s3:// stores")
	flags.StringVar(&cfg.DynamoTable, "dynamodb-table", "", "DynamoDB table tracking the current snapshot of s3:// stores")
	flags.StringVar(&cfg.RateLimit, "rate-limit", "", "upload rate limit per second for s3:// stores, e.g. 10MiB")

	return cfg
}

// Validate ensures the provided configuration values meet the expected
// constraints and normalises their representation where required.
func (c *Config) Validate() error {
	c.Store = strings.TrimSpace(c.Store)
	if c.Store == "" {
		return fmt.Errorf("store must not be empty")
	}

	c.Compression = strings.ToLower(strings.TrimSpace(c.Compression))
	if _, err := snapshot.ParseCompression(c.Compression); err != nil {
		return err
	}

	c.Codec = strings.ToLower(strings.TrimSpace(c.Codec))
	if c.Codec == "" {
		c.Codec = codec.Default.Name()
	}
	if _, ok := codec.ByName(c.Codec); !ok {
		return fmt.Errorf("invalid codec %q: expected one of %s", c.Codec, strings.Join(codec.Names(), ", "))
	}

	c.Hasher = strings.ToLower(strings.TrimSpace(c.Hasher))
	if c.Hasher == "" {
		c.Hasher = "maphash"
	}
	if _, err := strintern.HasherByName(c.Hasher); err != nil {
		return err
	}

	if _, err := parseSize(c.MemoryLimit); err != nil {
		return fmt.Errorf("invalid memory limit: %w", err)
	}
	if _, err := parseSize(c.RateLimit); err != nil {
		return fmt.Errorf("invalid rate limit: %w", err)
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case FormatText, FormatJSON:
	case "":
		c.LogFormat = FormatText
	default:
		return fmt.Errorf("invalid log format %q: expected text or json", c.LogFormat)
	}
	if _, err := c.level(); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(c.Name)
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// Logger builds the interner logger writing to w.
func (c *Config) Logger(w io.Writer) *strintern.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == FormatJSON {
		return strintern.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return strintern.NewLogger(slog.NewTextHandler(w, opts))
}

// SnapshotOptions returns the codec and compression used for writing.
func (c *Config) SnapshotOptions() (snapshot.Options, error) {
	comp, err := snapshot.ParseCompression(c.Compression)
	if err != nil {
		return snapshot.Options{}, err
	}
	cd, ok := codec.ByName(c.Codec)
	if !ok {
		return snapshot.Options{}, fmt.Errorf("invalid codec %q", c.Codec)
	}
	return snapshot.Options{Codec: cd, Compression: comp}, nil
}

// InternerOptions returns the options shared by every interner the CLI
// builds or loads.
func (c *Config) InternerOptions(logger *strintern.Logger, mc strintern.MetricsCollector) ([]strintern.Option, error) {
	h, err := strintern.HasherByName(c.Hasher)
	if err != nil {
		return nil, err
	}
	opts := []strintern.Option{
		strintern.WithHasher(h),
		strintern.WithLogger(logger),
		strintern.WithMetricsCollector(mc),
	}

	limit, err := parseSize(c.MemoryLimit)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		opts = append(opts, strintern.WithMemoryLimit(limit))
	}
	return opts, nil
}

// SnapshotName returns the configured name, or a timestamped one when
// nothing was configured.
func (c *Config) SnapshotName(now time.Time) string {
	if c.Name != "" {
		return c.Name
	}
	return "strings-" + now.UTC().Format("20060102T150405") + ".sint"
}

func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > 1<<62 {
		return 0, fmt.Errorf("%s is too large", s)
	}
	return int64(n), nil
}
