package hash

import (
	"hash"
	"hash/crc32"
	"unsafe"
)

// crc32cTable is pre-computed for CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// CRC32CString computes the CRC32-Castagnoli checksum of s without copying it.
func CRC32CString(s string) uint32 {
	if len(s) == 0 {
		return 0
	}
	return crc32.Checksum(unsafe.Slice(unsafe.StringData(s), len(s)), crc32cTable)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// Mix64 spreads the bits of a 32-bit checksum over a 64-bit word
// (murmur3 finalizer), so it can drive power-of-two table probing.
func Mix64(v uint32) uint64 {
	h := uint64(v)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
