// Package symset provides compressed sets of interned symbols backed by
// roaring bitmaps.
//
// A Set stores symbol indices, so it only makes sense together with the
// interner that issued the symbols.
package symset

import (
	"fmt"
	"io"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/strintern/internal/conv"
	"github.com/hupe1980/strintern/symbol"
)

// Set is a set of symbols of type S.
//
// Symbol indices must fit in 32 bits. The zero symbol is never a member.
// A Set is not safe for concurrent mutation.
type Set[S symbol.Symbol[S]] struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New[S symbol.Symbol[S]]() *Set[S] {
	return &Set[S]{rb: roaring.New()}
}

// Of creates a set holding syms.
func Of[S symbol.Symbol[S]](syms ...S) *Set[S] {
	s := New[S]()
	for _, sym := range syms {
		s.Add(sym)
	}
	return s
}

// Collect creates a set from the symbols yielded by seq.
func Collect[S symbol.Symbol[S]](seq iter.Seq[S]) *Set[S] {
	s := New[S]()
	for sym := range seq {
		s.Add(sym)
	}
	return s
}

func key[S symbol.Symbol[S]](sym S) (uint32, bool) {
	if !sym.IsValid() {
		return 0, false
	}
	k, err := conv.IntToUint32(sym.Index())
	if err != nil {
		panic(fmt.Errorf("symset: %v: %w", sym, err))
	}
	return k, true
}

// Add adds sym to the set. Adding the zero symbol is a no-op.
func (s *Set[S]) Add(sym S) {
	if k, ok := key(sym); ok {
		s.rb.Add(k)
	}
}

// Remove removes sym from the set.
func (s *Set[S]) Remove(sym S) {
	if k, ok := key(sym); ok {
		s.rb.Remove(k)
	}
}

// Contains reports whether sym is in the set.
func (s *Set[S]) Contains(sym S) bool {
	k, ok := key(sym)
	return ok && s.rb.Contains(k)
}

// Len returns the number of symbols in the set.
func (s *Set[S]) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set is empty.
func (s *Set[S]) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clear removes all symbols.
func (s *Set[S]) Clear() {
	s.rb.Clear()
}

// Clone returns a deep copy of the set.
func (s *Set[S]) Clone() *Set[S] {
	return &Set[S]{rb: s.rb.Clone()}
}

// Equal reports whether both sets hold the same symbols.
func (s *Set[S]) Equal(other *Set[S]) bool {
	return s.rb.Equals(other.rb)
}

// All yields the symbols in ascending index order.
func (s *Set[S]) All() iter.Seq[S] {
	return func(yield func(S) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			sym, _ := symbol.FromIndex[S](int(it.Next()))
			if !yield(sym) {
				return
			}
		}
	}
}

// And keeps only the symbols also in other.
func (s *Set[S]) And(other *Set[S]) {
	s.rb.And(other.rb)
}

// Or adds the symbols of other.
func (s *Set[S]) Or(other *Set[S]) {
	s.rb.Or(other.rb)
}

// AndNot removes the symbols of other.
func (s *Set[S]) AndNot(other *Set[S]) {
	s.rb.AndNot(other.rb)
}

// Union returns a new set with the symbols of a and b.
func Union[S symbol.Symbol[S]](a, b *Set[S]) *Set[S] {
	return &Set[S]{rb: roaring.Or(a.rb, b.rb)}
}

// Intersect returns a new set with the symbols in both a and b.
func Intersect[S symbol.Symbol[S]](a, b *Set[S]) *Set[S] {
	return &Set[S]{rb: roaring.And(a.rb, b.rb)}
}

// Difference returns a new set with the symbols of a that are not in b.
func Difference[S symbol.Symbol[S]](a, b *Set[S]) *Set[S] {
	return &Set[S]{rb: roaring.AndNot(a.rb, b.rb)}
}

// SizeInBytes returns the serialized size of the set.
func (s *Set[S]) SizeInBytes() uint64 {
	return s.rb.GetSerializedSizeInBytes()
}

// WriteTo writes the set in the portable roaring format.
func (s *Set[S]) WriteTo(w io.Writer) (int64, error) {
	s.rb.RunOptimize()
	return s.rb.WriteTo(w)
}

// ReadFrom replaces the set with one read from r.
func (s *Set[S]) ReadFrom(r io.Reader) (int64, error) {
	return s.rb.ReadFrom(r)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Set[S]) MarshalBinary() ([]byte, error) {
	s.rb.RunOptimize()
	return s.rb.ToBytes()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Set[S]) UnmarshalBinary(data []byte) error {
	if s.rb == nil {
		s.rb = roaring.New()
	}
	return s.rb.UnmarshalBinary(data)
}

// Resolve yields the text of each member using resolve, typically an
// interner's Resolve method. Members resolve does not know are skipped.
func (s *Set[S]) Resolve(resolve func(S) (string, bool)) iter.Seq2[S, string] {
	return func(yield func(S, string) bool) {
		for sym := range s.All() {
			str, ok := resolve(sym)
			if !ok {
				continue
			}
			if !yield(sym, str) {
				return
			}
		}
	}
}
