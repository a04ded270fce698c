package strintern

import (
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/strintern/symbol"
)

// FromStrings creates an Interner holding items. Symbols follow first-seen
// order, exactly as if each item had been passed to GetOrIntern.
func FromStrings[S symbol.Symbol[S]](items []string, optFns ...Option) *Interner[S] {
	in := New[S](optFns...)
	in.ExtendStrings(items)
	return in
}

// FromSeq creates an Interner holding the strings produced by seq.
func FromSeq[S symbol.Symbol[S]](seq iter.Seq[string], optFns ...Option) *Interner[S] {
	in := New[S](optFns...)
	in.Extend(seq)
	return in
}

// Extend interns every string produced by seq.
func (in *Interner[S]) Extend(seq iter.Seq[string]) {
	for s := range seq {
		in.GetOrIntern(s)
	}
}

// ExtendStrings interns every item in order.
//
// With WithParallelism(n > 1) and large batches, hashes are computed by n
// goroutines before the items are inserted sequentially, so symbols are the
// same as with sequential interning.
func (in *Interner[S]) ExtendStrings(items []string) {
	if in.opts.parallelism <= 1 || len(items) < parallelThreshold {
		for _, s := range items {
			in.GetOrIntern(s)
		}
		return
	}

	hashes := in.hashAll(items)
	for i, s := range items {
		in.getOrIntern(s, hashes[i])
	}
}

func (in *Interner[S]) hashAll(items []string) []uint64 {
	hashes := make([]uint64, len(items))
	workers := in.opts.parallelism
	batch := (len(items) + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < len(items); lo += batch {
		hi := min(lo+batch, len(items))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				hashes[i] = in.hasher.Hash(items[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return hashes
}
