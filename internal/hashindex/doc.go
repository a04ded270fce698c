// Package hashindex implements the deduplication index of the interner.
//
// The index maps a 64-bit content hash to a dense entry index. It never
// stores keys: callers confirm a candidate through an equality callback that
// reads the key from their own storage. Keeping keys out of the index means
// there are no references from the index into storage, so storage layout
// can change without ever leaving the index with a dangling view.
//
// The table uses open addressing with linear probing and a maximum load
// factor of 7/8. Entries are never deleted, which keeps probing simple.
// Growth rehashes from the stored hashes; the hasher is never consulted.
package hashindex
