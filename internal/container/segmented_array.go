// Package container implements container data structures.
package container

const (
	// DefaultSegmentBits determines the size of each segment.
	// 10 bits = 1024 items per segment.
	DefaultSegmentBits = 10
	maxSegmentBits     = 24
)

// SegmentedArray is an append-only array split into fixed-size segments.
// Growing never moves existing segments, so items are address-stable.
// It has a single writer; readers may run concurrently with each other.
type SegmentedArray[T any] struct {
	segments [][]T
	bits     uint
	mask     int
	length   int
}

// NewSegmentedArray creates a new SegmentedArray with 1<<segmentBits items
// per segment. Non-positive segmentBits selects DefaultSegmentBits.
func NewSegmentedArray[T any](segmentBits int) *SegmentedArray[T] {
	if segmentBits <= 0 {
		segmentBits = DefaultSegmentBits
	}
	segmentBits = min(segmentBits, maxSegmentBits)
	return &SegmentedArray[T]{
		bits: uint(segmentBits),
		mask: 1<<segmentBits - 1,
	}
}

// SegmentSize returns the number of items per segment.
func (sa *SegmentedArray[T]) SegmentSize() int {
	return sa.mask + 1
}

// Len returns the number of items.
func (sa *SegmentedArray[T]) Len() int {
	return sa.length
}

// Cap returns the number of items the array holds without allocating.
func (sa *SegmentedArray[T]) Cap() int {
	return len(sa.segments) << sa.bits
}

// Append adds v and returns its index.
func (sa *SegmentedArray[T]) Append(v T) int {
	idx := sa.length
	seg := idx >> sa.bits
	if seg == len(sa.segments) {
		sa.segments = append(sa.segments, make([]T, sa.mask+1))
	}
	sa.segments[seg][idx&sa.mask] = v
	sa.length++
	return idx
}

// Get returns the item at index.
// Returns zero value and false if index is out of bounds.
func (sa *SegmentedArray[T]) Get(index int) (T, bool) {
	if index < 0 || index >= sa.length {
		var zero T
		return zero, false
	}
	return sa.segments[index>>sa.bits][index&sa.mask], true
}

// At returns the item at index without checking it against Len.
// Indexes past the allocated segments panic; indexes inside them but past
// Len return zero values.
func (sa *SegmentedArray[T]) At(index int) T {
	return sa.segments[index>>sa.bits][index&sa.mask]
}

// Reserve ensures capacity for at least additional more items.
func (sa *SegmentedArray[T]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	need := sa.length + additional
	for sa.Cap() < need {
		sa.segments = append(sa.segments, make([]T, sa.mask+1))
	}
}

// Shrink releases segments that hold no items.
func (sa *SegmentedArray[T]) Shrink() {
	used := (sa.length + sa.mask) >> sa.bits
	if used == len(sa.segments) {
		return
	}
	for i := used; i < len(sa.segments); i++ {
		sa.segments[i] = nil
	}
	segments := make([][]T, used)
	copy(segments, sa.segments)
	sa.segments = segments
}

// Range calls fn for every item in index order until fn returns false.
func (sa *SegmentedArray[T]) Range(fn func(index int, v T) bool) {
	for i := 0; i < sa.length; i++ {
		if !fn(i, sa.segments[i>>sa.bits][i&sa.mask]) {
			return
		}
	}
}

// Clone returns a copy with the same length and capacity that shares no
// segments with sa.
func (sa *SegmentedArray[T]) Clone() *SegmentedArray[T] {
	c := &SegmentedArray[T]{
		bits:     sa.bits,
		mask:     sa.mask,
		length:   sa.length,
		segments: make([][]T, len(sa.segments)),
	}
	for i, seg := range sa.segments {
		ns := make([]T, len(seg))
		copy(ns, seg)
		c.segments[i] = ns
	}
	return c
}

// Reset drops all items and segments.
func (sa *SegmentedArray[T]) Reset() {
	sa.segments = nil
	sa.length = 0
}
