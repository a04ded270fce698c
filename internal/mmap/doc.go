// Package mmap maps snapshot files into memory read-only.
//
//	m, err := mmap.Open("symbols.snap")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2). Elsewhere the file is read
// into the heap and Advise is a no-op.
//
// Bytes must not be used after Close returns. Callers that keep data (the
// interner copies every string into its arena) are unaffected.
package mmap
