package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/hupe1980/strintern/internal/conv"
)

const (
	// DefaultChunkSize is the default size of a chunk (64 KiB).
	DefaultChunkSize = 64 * 1024
	// MinChunkSize bounds tiny chunk sizes that would fragment the arena.
	MinChunkSize = 64
)

var (
	// ErrTooLarge is returned when a value exceeds the Ref length range.
	ErrTooLarge = errors.New("arena: value too large")
	// ErrAllocationFailed is returned when the memory budget refuses a chunk.
	ErrAllocationFailed = errors.New("arena: allocation failed")
)

// MemoryAcquirer accounts for chunk memory.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

// Ref locates a value inside the arena.
// The zero Ref is the empty value.
type Ref struct {
	Chunk  uint32
	Offset uint32
	Len    uint32
}

// Stats tracks arena memory usage.
type Stats struct {
	ChunksAllocated uint64 // Historical: total chunks ever created
	BytesReserved   uint64 // Current: chunk capacity held
	BytesUsed       uint64 // Current: bytes written
	ActiveChunks    uint64 // Current: active chunk count
	TotalAllocs     uint64 // Historical: total non-empty allocations
}

// Arena is an append-only chunked byte arena.
type Arena struct {
	chunkSize int
	chunks    [][]byte
	current   int // index of the chunk receiving small values, -1 if none
	stats     Stats
	acquirer  MemoryAcquirer
	onChunk   func(size int)
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithMemoryAcquirer sets the memory acquirer for the arena.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Arena) {
		a.acquirer = acquirer
	}
}

// WithChunkHook registers a callback invoked after every chunk allocation.
func WithChunkHook(fn func(size int)) Option {
	return func(a *Arena) {
		a.onChunk = fn
	}
}

// New creates an empty Arena. Chunks are allocated lazily.
func New(chunkSize int, opts ...Option) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	chunkSize = max(chunkSize, MinChunkSize)

	a := &Arena{
		chunkSize: chunkSize,
		current:   -1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ChunkSize returns the configured chunk size.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// AllocString copies s into the arena.
func (a *Arena) AllocString(s string) (Ref, error) {
	if len(s) == 0 {
		return Ref{}, nil
	}
	return a.alloc(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// AllocBytes copies b into the arena.
func (a *Arena) AllocBytes(b []byte) (Ref, error) {
	if len(b) == 0 {
		return Ref{}, nil
	}
	return a.alloc(b)
}

func (a *Arena) alloc(src []byte) (Ref, error) {
	n := len(src)
	length, err := conv.IntToUint32(n)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}

	// Values larger than a quarter chunk get their own chunk so the
	// current chunk is not abandoned half empty.
	if n > a.chunkSize/4 {
		idx, err := a.newChunk(n)
		if err != nil {
			return Ref{}, err
		}
		return a.write(idx, src, length)
	}

	if a.current < 0 || cap(a.chunks[a.current])-len(a.chunks[a.current]) < n {
		idx, err := a.newChunk(a.chunkSize)
		if err != nil {
			return Ref{}, err
		}
		a.current = idx
	}
	return a.write(a.current, src, length)
}

func (a *Arena) write(idx int, src []byte, length uint32) (Ref, error) {
	c := a.chunks[idx]
	off := len(c)
	// Appending within capacity never reallocates the backing array.
	a.chunks[idx] = append(c, src...)

	chunk, err := conv.IntToUint32(idx)
	if err != nil {
		return Ref{}, err
	}
	offset, err := conv.IntToUint32(off)
	if err != nil {
		return Ref{}, err
	}

	a.stats.BytesUsed += uint64(length)
	a.stats.TotalAllocs++
	return Ref{Chunk: chunk, Offset: offset, Len: length}, nil
}

func (a *Arena) newChunk(size int) (int, error) {
	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(int64(size)); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
		}
	}
	a.chunks = append(a.chunks, make([]byte, 0, size))

	a.stats.ChunksAllocated++
	a.stats.ActiveChunks++
	a.stats.BytesReserved += uint64(size)

	if a.onChunk != nil {
		a.onChunk(size)
	}
	return len(a.chunks) - 1, nil
}

// String returns a view of the value at ref without copying.
// The ref must have been returned by this arena; it panics otherwise.
func (a *Arena) String(ref Ref) string {
	if ref.Len == 0 {
		return ""
	}
	c := a.chunks[ref.Chunk]
	return unsafe.String(&c[ref.Offset], int(ref.Len))
}

// Bytes returns the value at ref. The slice must not be modified.
func (a *Arena) Bytes(ref Ref) []byte {
	if ref.Len == 0 {
		return nil
	}
	c := a.chunks[ref.Chunk]
	end := ref.Offset + ref.Len
	return c[ref.Offset:end:end]
}

// Clone returns a deep copy of the arena. Refs issued by a stay valid for
// the clone, and the clone shares no memory with a. opts override the
// acquirer and chunk hook inherited from a.
func (a *Arena) Clone(opts ...Option) (*Arena, error) {
	b := &Arena{
		chunkSize: a.chunkSize,
		current:   a.current,
		acquirer:  a.acquirer,
		onChunk:   a.onChunk,
		chunks:    make([][]byte, len(a.chunks)),
	}
	for _, opt := range opts {
		opt(b)
	}
	for i, c := range a.chunks {
		if b.acquirer != nil {
			if err := b.acquirer.AcquireMemory(int64(cap(c))); err != nil {
				b.Release()
				return nil, fmt.Errorf("%w: %w", ErrAllocationFailed, err)
			}
		}
		nc := make([]byte, len(c), cap(c))
		copy(nc, c)
		b.chunks[i] = nc
		b.stats.BytesReserved += uint64(cap(c))
		b.stats.ActiveChunks++
	}
	b.stats.ChunksAllocated = b.stats.ActiveChunks
	b.stats.BytesUsed = a.stats.BytesUsed
	b.stats.TotalAllocs = a.stats.TotalAllocs
	return b, nil
}

// Detach moves the chunks of a into a new arena that has no memory budget,
// then resets a. Refs issued by a resolve against the returned arena.
func (a *Arena) Detach() *Arena {
	d := &Arena{
		chunkSize: a.chunkSize,
		chunks:    a.chunks,
		current:   -1,
		stats:     a.stats,
	}
	a.Release()
	return d
}

// Release drops the arena's chunks and returns their budget.
// Strings previously obtained through String remain valid; the garbage
// collector keeps their chunks alive.
func (a *Arena) Release() {
	if a.acquirer != nil {
		for _, c := range a.chunks {
			if c != nil {
				a.acquirer.ReleaseMemory(int64(cap(c)))
			}
		}
	}
	a.chunks = nil
	a.current = -1
	a.stats.BytesReserved = 0
	a.stats.BytesUsed = 0
	a.stats.ActiveChunks = 0
}

// Stats returns current usage statistics.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Usage returns the fraction of reserved bytes in use.
func (a *Arena) Usage() float64 {
	if a.stats.BytesReserved == 0 {
		return 0
	}
	return float64(a.stats.BytesUsed) / float64(a.stats.BytesReserved)
}

// Describe returns a human-readable summary of the arena.
func (a *Arena) Describe() string {
	return fmt.Sprintf("arena{chunks=%d reserved=%d used=%d usage=%.2f}",
		a.stats.ActiveChunks, a.stats.BytesReserved, a.stats.BytesUsed, a.Usage())
}
