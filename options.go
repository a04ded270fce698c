package strintern

import (
	"log/slog"

	"github.com/hupe1980/strintern/internal/arena"
)

const (
	// DefaultChunkSize is the arena chunk size used when none is configured.
	DefaultChunkSize = arena.DefaultChunkSize

	// parallelThreshold is the minimum batch size for concurrent hashing.
	parallelThreshold = 4096
)

type options struct {
	capacity         int
	hasher           Hasher
	chunkSize        int
	memoryLimit      int64
	parallelism      int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Interner.
type Option func(*options)

// WithCapacity pre-sizes the interner for n strings.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithHasher configures the hashing strategy.
//
// If nil is passed, a MapHasher with a fresh random seed is used.
// The hasher must be safe for concurrent use when ExtendStrings hashes in
// parallel or the interner is shared through Synced.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// WithChunkSize configures the size of the arena chunks that hold the text.
// Strings larger than a quarter chunk are stored in a dedicated chunk.
func WithChunkSize(bytes int) Option {
	return func(o *options) {
		o.chunkSize = bytes
	}
}

// WithMemoryLimit caps the bytes reserved for arena chunks.
// Exceeding the limit panics with an error wrapping ErrMemoryLimitExceeded.
// A limit <= 0 disables the check.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithParallelism sets the number of goroutines ExtendStrings and
// FromStrings use to hash large batches. Values <= 1 hash sequentially.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &strintern.BasicMetricsCollector{}
//	in := strintern.NewDefault(strintern.WithMetricsCollector(metrics))
//	// ... use in ...
//	stats := metrics.GetStats()
//	fmt.Printf("Hits: %d, Misses: %d\n", stats.InternHits, stats.InternMisses)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := strintern.NewJSONLogger(slog.LevelDebug)
//	in := strintern.NewDefault(strintern.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		chunkSize:        DefaultChunkSize,
		parallelism:      1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.hasher == nil {
		o.hasher = NewMapHasher()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	o.capacity = max(o.capacity, 0)
	o.parallelism = max(o.parallelism, 1)
	return o
}
