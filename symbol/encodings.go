package symbol

import (
	"fmt"
	"math"
	"strconv"

	"github.com/hupe1980/strintern/internal/conv"
)

// Sym16 is a 2-byte symbol.
type Sym16 struct {
	v uint16
}

// Sym32 is a 4-byte symbol.
type Sym32 struct {
	v uint32
}

// SymUint is a word-sized symbol.
type SymUint struct {
	v uint
}

var (
	_ Bounded = Sym16{}
	_ Bounded = Sym32{}
	_ Bounded = SymUint{}

	_ = FromIndex[Sym16]
	_ = FromIndex[Sym32]
	_ = FromIndex[SymUint]
)

// FromIndex implements Symbol.
func (Sym16) FromIndex(index int) (Sym16, bool) {
	if index < 0 {
		return Sym16{}, false
	}
	v, err := conv.IntToUint16(index + 1)
	if err != nil {
		return Sym16{}, false
	}
	return Sym16{v: v}, true
}

// Index implements Symbol.
func (s Sym16) Index() int { return int(s.v) - 1 }

// IsValid reports whether s is not the zero value.
func (s Sym16) IsValid() bool { return s.v != 0 }

// MaxIndex implements Bounded.
func (Sym16) MaxIndex() int { return math.MaxUint16 - 1 }

// Less reports whether s orders before o.
func (s Sym16) Less(o Sym16) bool { return s.v < o.v }

// Compare returns -1, 0 or +1 comparing s with o.
func (s Sym16) Compare(o Sym16) int { return cmp3(uint64(s.v), uint64(o.v)) }

func (s Sym16) String() string { return format("Sym16", s.Index(), s.IsValid()) }

// MarshalText encodes the index in decimal; the zero symbol encodes as "".
func (s Sym16) MarshalText() ([]byte, error) { return marshal(s.Index(), s.IsValid()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sym16) UnmarshalText(text []byte) error { return unmarshal(text, s) }

// FromIndex implements Symbol.
func (Sym32) FromIndex(index int) (Sym32, bool) {
	if index < 0 {
		return Sym32{}, false
	}
	v, err := conv.IntToUint32(index + 1)
	if err != nil {
		return Sym32{}, false
	}
	return Sym32{v: v}, true
}

// Index implements Symbol.
func (s Sym32) Index() int { return int(s.v) - 1 }

// IsValid reports whether s is not the zero value.
func (s Sym32) IsValid() bool { return s.v != 0 }

// MaxIndex implements Bounded.
func (Sym32) MaxIndex() int {
	if uint64(math.MaxInt) < math.MaxUint32 {
		return math.MaxInt - 1
	}
	limit := uint64(math.MaxUint32 - 1)
	return int(limit)
}

// Less reports whether s orders before o.
func (s Sym32) Less(o Sym32) bool { return s.v < o.v }

// Compare returns -1, 0 or +1 comparing s with o.
func (s Sym32) Compare(o Sym32) int { return cmp3(uint64(s.v), uint64(o.v)) }

func (s Sym32) String() string { return format("Sym32", s.Index(), s.IsValid()) }

// MarshalText encodes the index in decimal; the zero symbol encodes as "".
func (s Sym32) MarshalText() ([]byte, error) { return marshal(s.Index(), s.IsValid()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sym32) UnmarshalText(text []byte) error { return unmarshal(text, s) }

// FromIndex implements Symbol.
func (SymUint) FromIndex(index int) (SymUint, bool) {
	if index < 0 {
		return SymUint{}, false
	}
	v, err := conv.IntToUint(index + 1)
	if err != nil {
		return SymUint{}, false
	}
	return SymUint{v: v}, true
}

// Index implements Symbol.
func (s SymUint) Index() int { return int(s.v) - 1 }

// IsValid reports whether s is not the zero value.
func (s SymUint) IsValid() bool { return s.v != 0 }

// MaxIndex implements Bounded.
func (SymUint) MaxIndex() int { return math.MaxInt - 1 }

// Less reports whether s orders before o.
func (s SymUint) Less(o SymUint) bool { return s.v < o.v }

// Compare returns -1, 0 or +1 comparing s with o.
func (s SymUint) Compare(o SymUint) int { return cmp3(uint64(s.v), uint64(o.v)) }

func (s SymUint) String() string { return format("SymUint", s.Index(), s.IsValid()) }

// MarshalText encodes the index in decimal; the zero symbol encodes as "".
func (s SymUint) MarshalText() ([]byte, error) { return marshal(s.Index(), s.IsValid()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SymUint) UnmarshalText(text []byte) error { return unmarshal(text, s) }

func cmp3(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func format(name string, index int, valid bool) string {
	if !valid {
		return name + "(none)"
	}
	return name + "(" + strconv.Itoa(index) + ")"
}

func marshal(index int, valid bool) []byte {
	if !valid {
		return []byte{}
	}
	return strconv.AppendInt(nil, int64(index), 10)
}

func unmarshal[S Symbol[S]](text []byte, dst *S) error {
	if len(text) == 0 {
		var zero S
		*dst = zero
		return nil
	}
	index, err := strconv.Atoi(string(text))
	if err != nil {
		return fmt.Errorf("symbol: invalid text %q: %w", text, err)
	}
	s, ok := FromIndex[S](index)
	if !ok {
		var zero S
		return &CapacityError{Symbol: fmt.Sprintf("%T", zero), Index: index, Max: MaxIndex[S]()}
	}
	*dst = s
	return nil
}
