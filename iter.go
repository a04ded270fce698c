package strintern

import (
	"iter"

	"github.com/hupe1980/strintern/internal/arena"
	"github.com/hupe1980/strintern/internal/container"
	"github.com/hupe1980/strintern/symbol"
)

// All returns an iterator over (symbol, string) pairs in ascending symbol
// order. The iterator may be ranged over more than once.
func (in *Interner[S]) All() iter.Seq2[S, string] {
	return func(yield func(S, string) bool) {
		in.spans.Range(func(i int, ref arena.Ref) bool {
			return yield(symbol.Expect[S](i), in.arena.String(ref))
		})
	}
}

// Values returns an iterator over the interned strings in symbol order.
func (in *Interner[S]) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		in.spans.Range(func(_ int, ref arena.Ref) bool {
			return yield(in.arena.String(ref))
		})
	}
}

// Symbols returns an iterator over the issued symbols in ascending order.
func (in *Interner[S]) Symbols() iter.Seq[S] {
	return func(yield func(S) bool) {
		n := in.Len()
		for i := 0; i < n; i++ {
			if !yield(symbol.Expect[S](i)) {
				return
			}
		}
	}
}

// Iter is a cursor over the entries present when it was created.
// Entries interned later are not visited. A cursor must not be used after
// Drain.
type Iter[S symbol.Symbol[S]] struct {
	arena *arena.Arena
	spans *container.SegmentedArray[arena.Ref]
	next  int
	end   int
}

// Iter returns a cursor positioned at the first symbol.
func (in *Interner[S]) Iter() *Iter[S] {
	return &Iter[S]{
		arena: in.arena,
		spans: in.spans,
		end:   in.spans.Len(),
	}
}

// Next returns the next entry, or false when the cursor is exhausted.
func (it *Iter[S]) Next() (S, string, bool) {
	if it.next >= it.end {
		var zero S
		return zero, "", false
	}
	i := it.next
	it.next++
	return symbol.Expect[S](i), it.arena.String(it.spans.At(i)), true
}

// Remaining returns the number of entries Next has yet to return.
func (it *Iter[S]) Remaining() int {
	return it.end - it.next
}

// Drain empties the interner and returns an iterator over the entries it
// held. The interner is reset when Drain is called, not when the iterator
// runs; it can be reused right away and its symbols start again at zero.
// The yielded strings belong to the caller.
func (in *Interner[S]) Drain() iter.Seq2[S, string] {
	a, spans := in.reset()
	return func(yield func(S, string) bool) {
		spans.Range(func(i int, ref arena.Ref) bool {
			return yield(symbol.Expect[S](i), a.String(ref))
		})
	}
}
