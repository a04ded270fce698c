// Package hash provides CRC32-Castagnoli helpers.
//
// CRC32C is used in two places:
//
//   - snapshot payload checksums (detects accidental corruption, not tampering)
//   - the CRC32C interner hasher, a deterministic hashing strategy that is
//     stable across processes
//
// Go's hash/crc32 uses SSE4.2 / ARM CRC instructions when available.
//
//	checksum := hash.CRC32C(data)
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
package hash
