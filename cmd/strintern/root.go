package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/strintern"
	"github.com/hupe1980/strintern/blobstore"
	"github.com/hupe1980/strintern/symbol"
)

// Symbol is the encoding every CLI interner uses.
type Symbol = symbol.Sym32

// app carries what every subcommand needs after flags and profiles are
// resolved.
type app struct {
	cfg     *Config
	logger  *strintern.Logger
	metrics *strintern.BasicMetricsCollector
	store   blobstore.Store
}

func newRootCmd() *cobra.Command {
	a := &app{metrics: &strintern.BasicMetricsCollector{}}

	rootCmd := &cobra.Command{
		Use:           "strintern",
		Short:         "Build and inspect string interner snapshots",
		Long:          `strintern interns newline-separated tokens into compact symbols and stores them as snapshots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	a.cfg = BindFlags(rootCmd)

	rootCmd.AddCommand(buildCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(resolveCmd(a))
	rootCmd.AddCommand(lookupCmd(a))
	rootCmd.AddCommand(dumpCmd(a))

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	if err := ApplyProfile(a.cfg, cmd); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.logger = a.cfg.Logger(cmd.ErrOrStderr())

	store, err := openStore(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

func (a *app) internerOptions() ([]strintern.Option, error) {
	return a.cfg.InternerOptions(a.logger, a.metrics)
}

// load reads the configured snapshot, or the current one when no name is
// set.
func (a *app) load(ctx context.Context) (*strintern.Interner[Symbol], error) {
	opts, err := a.internerOptions()
	if err != nil {
		return nil, err
	}
	return strintern.Load[Symbol](ctx, a.store, a.cfg.Name, opts...)
}

// readTokens yields the trimmed, non-empty lines of r.
func readTokens(r io.Reader, fn func(token string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if token := strings.TrimSpace(sc.Text()); token != "" {
			fn(token)
		}
	}
	return sc.Err()
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
