package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is the sentinel wrapped by every OverflowError.
var ErrOverflow = errors.New("integer overflow")

// OverflowError reports a value that does not fit the target type.
type OverflowError struct {
	Value  string
	Target string
	Reason string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("integer overflow: %s cannot be converted to %s (%s)", e.Value, e.Target, e.Reason)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

func negative(v int, target string) error {
	return &OverflowError{Value: fmt.Sprint(v), Target: target, Reason: "negative"}
}

func tooLarge[T ~int | ~uint | ~uint64 | ~uint32](v T, target string) error {
	return &OverflowError{Value: fmt.Sprint(v), Target: target, Reason: "too large"}
}

// IntToUint16 converts int to uint16 safely.
func IntToUint16(v int) (uint16, error) {
	if v < 0 {
		return 0, negative(v, "uint16")
	}
	if v > math.MaxUint16 {
		return 0, tooLarge(v, "uint16")
	}
	return uint16(v), nil
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, negative(v, "uint32")
	}
	// Always false on 32-bit platforms.
	if uint64(v) > math.MaxUint32 {
		return 0, tooLarge(v, "uint32")
	}
	return uint32(v), nil
}

// IntToUint converts int to uint safely.
func IntToUint(v int) (uint, error) {
	if v < 0 {
		return 0, negative(v, "uint")
	}
	return uint(v), nil
}

// IntToUint64 converts int to uint64 safely.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, negative(v, "uint64")
	}
	return uint64(v), nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, tooLarge(v, "int")
	}
	return int(v), nil
}

// UintToInt converts uint to int safely.
func UintToInt(v uint) (int, error) {
	if v > uint(math.MaxInt) {
		return 0, tooLarge(v, "int")
	}
	return int(v), nil
}
