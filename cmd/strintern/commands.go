package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/hupe1980/strintern"
	"github.com/hupe1980/strintern/blobstore"
	"github.com/hupe1980/strintern/snapshot"
	"github.com/hupe1980/strintern/symbol"
	"github.com/hupe1980/strintern/symset"
)

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	return tbl
}

func buildCmd(a *app) *cobra.Command {
	var (
		appendTo bool
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Intern newline-separated tokens and save a snapshot",
		Long: `Read one token per line from each file (or stdin when no file or "-" is
given), intern them and save the result as a new snapshot that becomes the
store's current snapshot.

Examples:
  strintern build words.txt
  cat words.txt | strintern build --store s3://bucket/snapshots
  strintern build --append --name v2.sint more.txt
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd, args, appendTo, quiet)
		},
	}

	cmd.Flags().BoolVar(&appendTo, "append", false, "start from the current snapshot instead of an empty interner")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the per-source summary")

	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, sources []string, appendTo, quiet bool) error {
	ctx := cmd.Context()

	opts, err := a.internerOptions()
	if err != nil {
		return err
	}

	in := strintern.New[Symbol](opts...)
	if appendTo {
		current, err := strintern.Load[Symbol](ctx, a.store, "", opts...)
		switch {
		case err == nil:
			in = current
		case errors.Is(err, strintern.ErrSnapshotNotFound):
			a.logger.Info("no current snapshot, starting empty")
		default:
			return err
		}
	}

	if len(sources) == 0 {
		sources = []string{"-"}
	}

	tbl := newTable(cmd.OutOrStdout())
	tbl.AppendHeader(table.Row{"Source", "Tokens", "Distinct", "New"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	var totalTokens int
	initial := in.Len()
	for _, source := range sources {
		tokens, distinct, added, err := internSource(cmd, in, source)
		if err != nil {
			return err
		}
		totalTokens += tokens
		tbl.AppendRow(table.Row{source, humanize.Comma(int64(tokens)), humanize.Comma(int64(distinct)), humanize.Comma(int64(added))})
	}
	tbl.AppendFooter(table.Row{"Total", humanize.Comma(int64(totalTokens)), humanize.Comma(int64(in.Len())), humanize.Comma(int64(in.Len() - initial))})

	snapOpts, err := a.cfg.SnapshotOptions()
	if err != nil {
		return err
	}
	name := a.cfg.SnapshotName(time.Now())
	before := a.metrics.SnapshotBytes.Load()
	if err := in.Save(ctx, a.store, name, snapOpts); err != nil {
		return err
	}
	size := a.metrics.SnapshotBytes.Load() - before

	if !quiet {
		tbl.Render()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %s strings, %s\n", name, humanize.Comma(int64(in.Len())), humanize.Bytes(uint64(size)))
	return nil
}

func internSource(cmd *cobra.Command, in *strintern.Interner[Symbol], source string) (tokens, distinct, added int, err error) {
	r, err := openInput(cmd, source)
	if err != nil {
		return 0, 0, 0, err
	}
	defer r.Close()

	seen := symset.New[Symbol]()
	before := in.Len()
	err = readTokens(r, func(token string) {
		seen.Add(in.GetOrIntern(token))
		tokens++
	})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("read %s: %w", source, err)
	}
	return tokens, seen.Len(), in.Len() - before, nil
}

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics about a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runStats(cmd)
		},
	}
}

func (a *app) runStats(cmd *cobra.Command) error {
	ctx := cmd.Context()

	name := a.cfg.Name
	if name == "" {
		current, err := blobstore.Current(ctx, a.store)
		if err != nil {
			return fmt.Errorf("%w: %w", strintern.ErrSnapshotNotFound, err)
		}
		name = current
	}
	data, err := a.store.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("%w: %w", strintern.ErrSnapshotNotFound, err)
	}

	h, err := snapshot.ReadHeader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	opts, err := a.internerOptions()
	if err != nil {
		return err
	}
	in, err := strintern.ReadFrom[Symbol](bytes.NewReader(data), opts...)
	if err != nil {
		return err
	}
	st := in.Stats()

	tbl := newTable(cmd.OutOrStdout())
	tbl.SetTitle(name)
	tbl.AppendRows([]table.Row{
		{"Strings", humanize.Comma(int64(st.Len))},
		{"Text", humanize.Bytes(st.BytesUsed)},
		{"Arena reserved", humanize.Bytes(st.BytesReserved)},
		{"Arena chunks", st.Chunks},
		{"Index buckets", humanize.Comma(int64(st.IndexBuckets))},
		{"Load factor", fmt.Sprintf("%.2f", st.LoadFactor)},
	})
	tbl.AppendSeparator()
	tbl.AppendRows([]table.Row{
		{"Codec", h.Codec},
		{"Compression", h.Compression},
		{"Encoded", humanize.Bytes(uint64(len(data)))},
		{"Raw payload", humanize.Bytes(h.RawSize)},
		{"Ratio", fmt.Sprintf("%.2f", h.Ratio())},
	})
	tbl.Render()
	return nil
}

func resolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <index>...",
		Short: "Print the text of symbol indices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			missing := 0
			for _, arg := range args {
				idx, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid index %q: %w", arg, err)
				}
				sym, ok := symbol.FromIndex[Symbol](idx)
				if ok {
					if s, found := in.Resolve(sym); found {
						fmt.Fprintf(out, "%d\t%s\n", idx, s)
						continue
					}
				}
				fmt.Fprintf(out, "%d\tnot found\n", idx)
				missing++
			}
			if missing > 0 {
				return fmt.Errorf("%d of %d indices not found", missing, len(args))
			}
			return nil
		},
	}
}

func lookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <text>...",
		Short: "Print the symbol index of each text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				if sym, ok := in.Get(arg); ok {
					fmt.Fprintf(out, "%s\t%d\n", arg, sym.Index())
				} else {
					fmt.Fprintf(out, "%s\tnot found\n", arg)
				}
			}
			return nil
		},
	}
}

func dumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every index and text of a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for sym, s := range in.All() {
				if _, err := fmt.Fprintf(out, "%d\t%s\n", sym.Index(), s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
