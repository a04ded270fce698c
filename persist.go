package strintern

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/strintern/blobstore"
	"github.com/hupe1980/strintern/snapshot"
	"github.com/hupe1980/strintern/symbol"
)

// WriteTo writes the interner to w as a snapshot with the default codec and
// no compression. It implements io.WriterTo.
func (in *Interner[S]) WriteTo(w io.Writer) (int64, error) {
	return in.WriteSnapshot(w, snapshot.Options{})
}

// WriteSnapshot writes the interner to w as a snapshot.
func (in *Interner[S]) WriteSnapshot(w io.Writer, opts snapshot.Options) (int64, error) {
	return snapshot.Encode(w, in.Strings(), opts)
}

// ReadFrom reads a snapshot from r and returns a new interner holding its
// strings under the same symbols they had when it was written.
func ReadFrom[S symbol.Symbol[S]](r io.Reader, optFns ...Option) (*Interner[S], error) {
	items, _, err := snapshot.Decode(r)
	if err != nil {
		return nil, err
	}
	return fromSnapshot[S](items, optFns)
}

func fromSnapshot[S symbol.Symbol[S]](items []string, optFns []Option) (in *Interner[S], err error) {
	if len(items) > 0 && len(items)-1 > symbol.MaxIndex[S]() {
		var zero S
		return nil, &symbol.CapacityError{Symbol: fmt.Sprintf("%T", zero), Index: len(items) - 1, Max: symbol.MaxIndex[S]()}
	}

	in = New[S](append([]Option{WithCapacity(len(items))}, optFns...)...)
	if limit := in.opts.memoryLimit; limit > 0 {
		var total int64
		for _, s := range items {
			total += int64(len(s))
		}
		if total > limit {
			return nil, fmt.Errorf("%w: snapshot holds %d bytes, limit is %d", ErrMemoryLimitExceeded, total, limit)
		}
	}

	// Chunk granularity can still exceed the limit after the check above.
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if !ok || !errors.Is(rerr, ErrMemoryLimitExceeded) {
				panic(r)
			}
			in, err = nil, rerr
		}
	}()
	in.ExtendStrings(items)
	if in.Len() != len(items) {
		return nil, fmt.Errorf("%w: %w: %d of %d strings are repeats",
			snapshot.ErrCorruptSnapshot, ErrDuplicateEntry, len(items)-in.Len(), len(items))
	}
	return in, nil
}

// Save writes the interner to store under name and commits name as the
// store's current snapshot.
func (in *Interner[S]) Save(ctx context.Context, store blobstore.Store, name string, opts snapshot.Options) error {
	start := time.Now()
	size, err := in.save(ctx, store, name, opts)
	in.opts.metricsCollector.RecordSnapshot("save", size, time.Since(start), err)
	in.opts.logger.LogSnapshot(ctx, "save", name, in.Len(), size, err)
	return err
}

func (in *Interner[S]) save(ctx context.Context, store blobstore.Store, name string, opts snapshot.Options) (int64, error) {
	var buf bytes.Buffer
	size, err := in.WriteSnapshot(&buf, opts)
	if err != nil {
		return 0, err
	}
	if err := store.Put(ctx, name, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("put snapshot %q: %w", name, err)
	}
	if err := blobstore.Commit(ctx, store, name); err != nil {
		return size, fmt.Errorf("commit snapshot %q: %w", name, err)
	}
	return size, nil
}

// Load reads the snapshot called name from store. An empty name loads the
// store's current snapshot.
func Load[S symbol.Symbol[S]](ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Interner[S], error) {
	start := time.Now()
	in, size, err := load[S](ctx, store, name, optFns)

	var (
		mc     MetricsCollector
		logger *Logger
		count  int
	)
	if in != nil {
		mc, logger, count = in.opts.metricsCollector, in.opts.logger, in.Len()
	} else {
		mc, logger = observers(optFns)
	}
	mc.RecordSnapshot("load", size, time.Since(start), err)
	if name == "" {
		name = blobstore.CurrentName
	}
	logger.LogSnapshot(ctx, "load", name, count, size, err)
	return in, err
}

// observers returns the metrics collector and logger configured by optFns
// without building the rest of the options.
func observers(optFns []Option) (MetricsCollector, *Logger) {
	var o options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o.metricsCollector, o.logger
}

func load[S symbol.Symbol[S]](ctx context.Context, store blobstore.Store, name string, optFns []Option) (*Interner[S], int64, error) {
	if name == "" {
		current, err := blobstore.Current(ctx, store)
		if err != nil {
			return nil, 0, translateError(blobstore.CurrentName, err)
		}
		name = current
	}

	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, 0, translateError(name, err)
	}

	items, _, err := snapshot.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, int64(len(data)), translateError(name, err)
	}
	in, err := fromSnapshot[S](items, optFns)
	if err != nil {
		return nil, int64(len(data)), translateError(name, err)
	}
	return in, int64(len(data)), nil
}
