// Package symbol defines the handles returned by the interner.
//
// A symbol packs a dense index (0, 1, 2, ...) into a fixed-width unsigned
// integer as index+1. The zero value is never a valid symbol, so a symbol
// field can double as its own "absent" marker without an extra flag:
//
//	var s symbol.Sym32 // zero: no symbol
//	s.IsValid()        // false
//
// Three widths trade handle size against table size:
//
//	Sym16    2 bytes   up to 65,535 strings
//	Sym32    4 bytes   up to 4,294,967,295 strings (Default)
//	SymUint  word      up to math.MaxInt strings
//
// Custom encodings implement Symbol. The interner calls FromIndex on the
// zero value of the symbol type, so the method must not depend on the
// receiver.
package symbol
