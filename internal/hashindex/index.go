package hashindex

import (
	"math/bits"
)

const minBuckets = 8

type slot struct {
	hash uint64
	ref  uint64 // entry index + 1; 0 marks an empty slot
}

// Index is an open-addressing hash index of entry indexes.
type Index struct {
	slots  []slot
	mask   uint64
	count  int
	growth int // inserts left before the table must grow
}

// New returns an index able to hold capacity entries without growing.
func New(capacity int) *Index {
	ix := &Index{}
	if capacity > 0 {
		ix.resize(bucketsFor(capacity))
	}
	return ix
}

// bucketsFor returns the smallest power of two bucket count whose usable
// capacity (7/8 of the buckets) is at least n.
func bucketsFor(n int) int {
	if n <= 0 {
		return 0
	}
	need := (n*8 + 6) / 7
	if need < minBuckets {
		return minBuckets
	}
	return 1 << bits.Len(uint(need-1))
}

func usable(buckets int) int {
	return buckets - buckets/8
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return ix.count
}

// Cap returns the number of entries the index holds without growing.
func (ix *Index) Cap() int {
	return usable(len(ix.slots))
}

// Buckets returns the number of slots in the table.
func (ix *Index) Buckets() int {
	return len(ix.slots)
}

// LoadFactor returns Len divided by Buckets.
func (ix *Index) LoadFactor() float64 {
	if len(ix.slots) == 0 {
		return 0
	}
	return float64(ix.count) / float64(len(ix.slots))
}

// Find returns the entry whose hash matches and for which eq reports true.
func (ix *Index) Find(hash uint64, eq func(index int) bool) (int, bool) {
	if ix.count == 0 {
		return 0, false
	}
	for pos := hash & ix.mask; ; pos = (pos + 1) & ix.mask {
		s := &ix.slots[pos]
		if s.ref == 0 {
			return 0, false
		}
		if s.hash == hash && eq(int(s.ref-1)) {
			return int(s.ref - 1), true
		}
	}
}

// Insert adds an entry. The caller guarantees no equal entry is present.
// It reports whether the table grew.
func (ix *Index) Insert(hash uint64, index int) bool {
	grew := false
	if ix.growth == 0 {
		ix.resize(bucketsFor(max(ix.count+1, 2*ix.Cap())))
		grew = true
	}
	ix.place(hash, uint64(index)+1)
	ix.count++
	ix.growth--
	return grew
}

func (ix *Index) place(hash, ref uint64) {
	for pos := hash & ix.mask; ; pos = (pos + 1) & ix.mask {
		if ix.slots[pos].ref == 0 {
			ix.slots[pos] = slot{hash: hash, ref: ref}
			return
		}
	}
}

func (ix *Index) resize(buckets int) {
	old := ix.slots
	if buckets == 0 {
		ix.slots = nil
		ix.mask = 0
		ix.growth = 0
		return
	}
	ix.slots = make([]slot, buckets)
	ix.mask = uint64(buckets - 1)
	ix.growth = usable(buckets) - ix.count
	for _, s := range old {
		if s.ref != 0 {
			ix.place(s.hash, s.ref)
		}
	}
}

// Reserve grows the table so that at least additional more entries fit
// without further growth. It reports whether the table was resized.
func (ix *Index) Reserve(additional int) bool {
	if additional <= 0 || additional <= ix.growth {
		return false
	}
	ix.resize(bucketsFor(ix.count + additional))
	return true
}

// Shrink resizes the table to the smallest size that holds minCap entries
// (never fewer than Len). It reports whether the table was resized.
func (ix *Index) Shrink(minCap int) bool {
	target := bucketsFor(max(ix.count, minCap))
	if target >= len(ix.slots) {
		return false
	}
	ix.resize(target)
	return true
}

// Reset removes all entries and releases the table.
func (ix *Index) Reset() {
	ix.slots = nil
	ix.mask = 0
	ix.count = 0
	ix.growth = 0
}
