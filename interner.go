package strintern

import (
	"unsafe"

	"github.com/hupe1980/strintern/internal/arena"
	"github.com/hupe1980/strintern/internal/container"
	"github.com/hupe1980/strintern/internal/hashindex"
	"github.com/hupe1980/strintern/internal/resource"
	"github.com/hupe1980/strintern/symbol"
)

// Interner deduplicates strings and maps each distinct string to a symbol
// of type S.
//
// Symbols are assigned 0, 1, 2, ... in first-seen order. Text is copied into
// an append-only arena whose chunks never move, so strings returned by
// Resolve stay valid for as long as they are referenced, regardless of
// later interning, ShrinkToFit, Clone or Drain.
//
// An Interner is not safe for concurrent use when one of the goroutines
// mutates it. Use Synced to share one between goroutines.
type Interner[S symbol.Symbol[S]] struct {
	arena  *arena.Arena
	spans  *container.SegmentedArray[arena.Ref]
	index  *hashindex.Index
	hasher Hasher
	mem    *resource.Controller
	opts   options
}

// DefaultInterner is an Interner using the default symbol encoding.
type DefaultInterner = Interner[symbol.Default]

// Stats describes the memory held by an Interner.
type Stats struct {
	Len           int     // Number of interned strings
	Cap           int     // Strings that fit without reallocating
	Chunks        int     // Arena chunks holding text
	BytesUsed     uint64  // Text bytes stored
	BytesReserved uint64  // Arena bytes reserved
	IndexBuckets  int     // Hash index table size
	LoadFactor    float64 // Hash index occupancy
	MemoryUsed    int64   // Bytes charged against WithMemoryLimit
}

// New creates an empty Interner.
func New[S symbol.Symbol[S]](optFns ...Option) *Interner[S] {
	o := applyOptions(optFns)
	in := &Interner[S]{
		hasher: o.hasher,
		opts:   o,
	}
	if o.memoryLimit > 0 {
		in.mem = resource.NewController(resource.Config{MemoryLimitBytes: o.memoryLimit})
	}
	in.arena = in.newArena()
	in.spans = container.NewSegmentedArray[arena.Ref](container.DefaultSegmentBits)
	in.index = hashindex.New(o.capacity)
	in.spans.Reserve(o.capacity)
	return in
}

// NewDefault creates an empty DefaultInterner.
func NewDefault(optFns ...Option) *DefaultInterner {
	return New[symbol.Default](optFns...)
}

func (in *Interner[S]) newArena() *arena.Arena {
	return arena.New(in.opts.chunkSize, in.arenaOptions(in.mem)...)
}

func (in *Interner[S]) arenaOptions(mem *resource.Controller) []arena.Option {
	opts := []arena.Option{
		arena.WithChunkHook(func(size int) {
			in.opts.logger.LogChunk(size, in.arena.Stats().ActiveChunks)
		}),
	}
	if mem != nil {
		opts = append(opts, arena.WithMemoryAcquirer(mem))
	}
	return opts
}

// GetOrIntern returns the symbol for s, interning a copy of s if it is not
// present yet.
//
// It panics if the symbol type cannot encode another index or the memory
// limit is exceeded.
func (in *Interner[S]) GetOrIntern(s string) S {
	return in.getOrIntern(s, in.hasher.Hash(s))
}

// GetOrInternBytes is like GetOrIntern for a byte slice. The lookup does not
// allocate; b is copied only when it is new.
func (in *Interner[S]) GetOrInternBytes(b []byte) S {
	s := bytesView(b)
	return in.getOrIntern(s, in.hasher.Hash(s))
}

func (in *Interner[S]) getOrIntern(s string, h uint64) S {
	if idx, ok := in.find(s, h); ok {
		in.opts.metricsCollector.RecordIntern(true)
		return symbol.Expect[S](idx)
	}

	idx := in.spans.Len()
	sym := symbol.Expect[S](idx)

	ref, err := in.arena.AllocString(s)
	if err != nil {
		panic(err)
	}

	spanCap := in.spans.Cap()
	in.spans.Append(ref)
	if c := in.spans.Cap(); c != spanCap {
		in.grew("spans", c)
	}
	if in.index.Insert(h, idx) {
		in.grew("index", in.index.Cap())
	}

	in.opts.metricsCollector.RecordIntern(false)
	return sym
}

func (in *Interner[S]) find(s string, h uint64) (int, bool) {
	return in.index.Find(h, func(idx int) bool {
		return in.arena.String(in.spans.At(idx)) == s
	})
}

func (in *Interner[S]) grew(component string, capacity int) {
	in.opts.logger.LogGrow(component, in.Len(), capacity)
	in.opts.metricsCollector.RecordGrow(component, capacity)
}

// Get returns the symbol for s without interning it.
func (in *Interner[S]) Get(s string) (S, bool) {
	idx, ok := in.find(s, in.hasher.Hash(s))
	if !ok {
		var zero S
		return zero, false
	}
	return symbol.Expect[S](idx), true
}

// GetBytes is like Get for a byte slice.
func (in *Interner[S]) GetBytes(b []byte) (S, bool) {
	return in.Get(bytesView(b))
}

// Contains reports whether s has been interned.
func (in *Interner[S]) Contains(s string) bool {
	_, ok := in.find(s, in.hasher.Hash(s))
	return ok
}

// Resolve returns the string for sym. It reports false for the zero symbol
// and for symbols this interner has not issued.
func (in *Interner[S]) Resolve(sym S) (string, bool) {
	if !sym.IsValid() {
		return "", false
	}
	ref, ok := in.spans.Get(sym.Index())
	if !ok {
		return "", false
	}
	return in.arena.String(ref), true
}

// MustResolve is like Resolve but panics with ErrUnknownSymbol if sym does
// not belong to the interner.
func (in *Interner[S]) MustResolve(sym S) string {
	s, ok := in.Resolve(sym)
	if !ok {
		panic(ErrUnknownSymbol)
	}
	return s
}

// ResolveUnchecked returns the string for sym without validating it.
//
// sym must have been returned by this interner. Passing any other symbol
// (including the zero symbol) returns garbage or panics.
func (in *Interner[S]) ResolveUnchecked(sym S) string {
	return in.arena.String(in.spans.At(sym.Index()))
}

// Len returns the number of interned strings.
func (in *Interner[S]) Len() int {
	return in.spans.Len()
}

// IsEmpty reports whether no string has been interned.
func (in *Interner[S]) IsEmpty() bool {
	return in.spans.Len() == 0
}

// Cap returns the number of strings the interner holds before its span
// sequence or hash index must reallocate.
func (in *Interner[S]) Cap() int {
	return min(in.spans.Cap(), in.index.Cap())
}

// Reserve makes room for at least additional more strings. Non-positive
// values are a no-op.
func (in *Interner[S]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	before := in.spans.Cap()
	in.spans.Reserve(additional)
	if c := in.spans.Cap(); c != before {
		in.grew("spans", c)
	}
	if in.index.Reserve(additional) {
		in.grew("index", in.index.Cap())
	}
}

// ShrinkToFit releases spare span capacity and shrinks the hash index to
// the smallest table holding Len strings. Interned text is kept.
func (in *Interner[S]) ShrinkToFit() {
	before := in.Cap()
	in.spans.Shrink()
	in.index.Shrink(in.spans.Len())
	in.opts.logger.LogShrink(in.Len(), before, in.Cap())
}

// Equal reports whether in and other hold the same strings under the same
// symbols. Hashers and capacities are ignored.
func (in *Interner[S]) Equal(other *Interner[S]) bool {
	if in == other {
		return true
	}
	if other == nil || in.Len() != other.Len() {
		return false
	}
	equal := true
	in.spans.Range(func(i int, ref arena.Ref) bool {
		equal = in.arena.String(ref) == other.arena.String(other.spans.At(i))
		return equal
	})
	return equal
}

// Clone returns a deep copy of the interner. The copy gets its own arena,
// span sequence and hash index, rebuilt by hashing the copied text, and
// its own memory budget with the same limit.
//
// It panics if the copy would exceed the memory limit.
func (in *Interner[S]) Clone() *Interner[S] {
	c := &Interner[S]{
		hasher: in.hasher,
		opts:   in.opts,
	}
	if in.mem != nil {
		c.mem = resource.NewController(resource.Config{MemoryLimitBytes: in.opts.memoryLimit})
	}

	a, err := in.arena.Clone(c.arenaOptions(c.mem)...)
	in.opts.logger.LogClone(in.Len(), err)
	if err != nil {
		panic(err)
	}
	c.arena = a
	c.spans = in.spans.Clone()
	c.index = hashindex.New(c.spans.Len())
	c.spans.Range(func(i int, ref arena.Ref) bool {
		c.index.Insert(c.hasher.Hash(c.arena.String(ref)), i)
		return true
	})
	return c
}

// Strings returns the interned strings in symbol order. This is the
// persisted form of the interner.
func (in *Interner[S]) Strings() []string {
	out := make([]string, 0, in.Len())
	in.spans.Range(func(_ int, ref arena.Ref) bool {
		out = append(out, in.arena.String(ref))
		return true
	})
	return out
}

// Hasher returns the hasher the interner uses.
func (in *Interner[S]) Hasher() Hasher {
	return in.hasher
}

// Stats returns memory statistics.
func (in *Interner[S]) Stats() Stats {
	as := in.arena.Stats()
	return Stats{
		Len:           in.Len(),
		Cap:           in.Cap(),
		Chunks:        int(as.ActiveChunks),
		BytesUsed:     as.BytesUsed,
		BytesReserved: as.BytesReserved,
		IndexBuckets:  in.index.Buckets(),
		LoadFactor:    in.index.LoadFactor(),
		MemoryUsed:    in.mem.MemoryUsage(),
	}
}

// reset empties the interner and returns the arena and spans it held.
func (in *Interner[S]) reset() (*arena.Arena, *container.SegmentedArray[arena.Ref]) {
	a := in.arena.Detach()
	spans := in.spans
	in.spans = container.NewSegmentedArray[arena.Ref](container.DefaultSegmentBits)
	in.index.Reset()
	return a, spans
}

func bytesView(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
