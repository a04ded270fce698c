// Package arena provides an append-only byte arena for interned text.
//
// Bytes are copied into fixed-capacity chunks. A chunk's backing array is
// never reallocated, moved, or overwritten once bytes have been written to
// it, so strings viewed through String stay valid for as long as they are
// referenced, no matter how many allocations follow.
//
// # Features
//
//   - 64 KiB default chunks; oversized values get a dedicated chunk
//   - Compact Ref handles (chunk, offset, length) instead of pointers
//   - Optional memory budget via MemoryAcquirer
//
// # Concurrency
//
// An Arena has a single writer. String may run concurrently with other
// String calls, but not with Alloc.
package arena
