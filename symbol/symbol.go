package symbol

import (
	"errors"
	"fmt"
	"math"
)

// Symbol is the contract between a handle type and the interner.
type Symbol[S any] interface {
	comparable
	// FromIndex converts index into a symbol. It reports false if index is
	// negative or not representable by the encoding.
	FromIndex(index int) (S, bool)
	// Index returns the index the symbol encodes, or -1 for the zero value.
	Index() int
	// IsValid reports whether the symbol is not the zero sentinel.
	IsValid() bool
}

// Bounded is implemented by encodings with a maximum index below math.MaxInt.
type Bounded interface {
	MaxIndex() int
}

// Default is the symbol type used by the default interner.
type Default = Sym32

// ErrCapacityExceeded indicates an index beyond the range of an encoding.
var ErrCapacityExceeded = errors.New("symbol: capacity exceeded")

// CapacityError reports the encoding and index that overflowed.
type CapacityError struct {
	Symbol string
	Index  int
	Max    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("symbol: index %d exceeds %s capacity (max index %d)", e.Index, e.Symbol, e.Max)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// FromIndex converts index into a symbol of type S.
func FromIndex[S Symbol[S]](index int) (S, bool) {
	var zero S
	return zero.FromIndex(index)
}

// Expect converts index into a symbol of type S and panics with a
// *CapacityError if the encoding cannot represent it. Running out of symbol
// space is not recoverable for an interner: its storage and index would no
// longer correspond.
func Expect[S Symbol[S]](index int) S {
	s, ok := FromIndex[S](index)
	if !ok {
		var zero S
		panic(&CapacityError{Symbol: fmt.Sprintf("%T", zero), Index: index, Max: MaxIndex[S]()})
	}
	return s
}

// MaxIndex returns the largest index S can encode.
func MaxIndex[S Symbol[S]]() int {
	var zero S
	if b, ok := any(zero).(Bounded); ok {
		return b.MaxIndex()
	}
	return math.MaxInt - 1
}

// Compare orders two symbols by index.
func Compare[S Symbol[S]](a, b S) int {
	ai, bi := a.Index(), b.Index()
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	default:
		return 0
	}
}
