// Package snapshot implements the self-describing binary container used to
// persist an interner.
//
// A snapshot stores the interned strings in symbol order. Layout
// (little-endian):
//
//	magic "SINT"        4 bytes
//	version             u16
//	compression         u8   (0 none, 1 lz4, 2 zstd)
//	reserved            u8
//	codec name length   u8
//	codec name          n bytes
//	count               u64  number of strings
//	raw length          u64  codec output size
//	payload length      u64  stored size
//	checksum            u32  CRC32C of the payload
//	payload             compression(codec.Marshal([]string))
//
// Decoding validates every header field and the checksum before handing
// the payload to the codec named in the header.
package snapshot
