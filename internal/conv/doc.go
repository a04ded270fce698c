// Package conv provides checked integer conversions.
//
// The conversions guard the boundaries where a Go int meets a fixed-width
// encoding:
//   - symbol encodings (index+1 packed into uint16/uint32/uint)
//   - counts and lengths read from untrusted snapshot headers
//
// Conversions that are provably safe by construction (loop indices, values
// already range-checked) should use direct casts instead.
package conv
