// Package strintern provides a string interner for Go.
//
// An interner stores each distinct string once and hands out a small,
// comparable symbol for it. Equal strings always get the same symbol, and
// resolving a symbol back to its text is a constant-time slice lookup.
// Symbols make good map keys and struct fields: they are two, four or eight
// bytes wide, compare with ==, and order by first appearance.
//
// # Quick Start
//
//	in := strintern.NewDefault()
//	elephant := in.GetOrIntern("Elephant") // Sym32(0)
//	tiger := in.GetOrIntern("Tiger")       // Sym32(1)
//	again := in.GetOrIntern("Elephant")    // Sym32(0), no allocation
//
//	s, ok := in.Resolve(tiger) // "Tiger", true
//
// # Symbol Widths
//
// Pick the narrowest encoding that fits the expected number of distinct
// strings:
//
//	strintern.New[symbol.Sym16]()   // up to 65,535 strings
//	strintern.New[symbol.Sym32]()   // up to 4,294,967,295 strings
//	strintern.New[symbol.SymUint]() // limited only by memory
//
// Interning a string the encoding cannot represent panics with an error
// wrapping ErrCapacityExceeded.
//
// # Memory Layout
//
// Text is copied into an append-only arena of fixed-size chunks. Chunks are
// never reallocated, so strings returned by Resolve are views that stay
// valid for as long as they are referenced, even while the interner keeps
// growing. A separate open-addressing hash index maps hashes to symbol
// indices and compares candidates against the arena; it holds no text.
//
// # Concurrency
//
// An Interner has a single writer. Concurrent readers are safe as long as no
// goroutine is interning. Synced wraps an Interner with a read-write mutex.
//
// # Persistence
//
// The persisted form is the ordered list of strings. WriteTo and ReadFrom
// use the snapshot format from package snapshot; Save and Load put
// snapshots in any blobstore.Store:
//
//	store := blobstore.NewLocalStore("./data")
//	err := in.Save(ctx, store, "tokens.sint", snapshot.Options{
//	    Compression: snapshot.CompressionZSTD,
//	})
//	loaded, err := strintern.Load[symbol.Sym32](ctx, store, "tokens.sint")
package strintern
