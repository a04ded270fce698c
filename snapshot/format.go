package snapshot

import (
	"errors"
	"fmt"
)

const (
	// Magic identifies snapshot files.
	Magic = "SINT"
	// Version is the current format version.
	Version uint16 = 1

	prefixSize = len(Magic) + 2 + 1 + 1 + 1
	fieldsSize = 8 + 8 + 8 + 4

	// maxSize bounds the raw and payload lengths accepted by Decode.
	maxSize = 1 << 36
)

var (
	ErrInvalidMagic       = errors.New("snapshot: invalid magic number")
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	ErrChecksumMismatch   = errors.New("snapshot: checksum mismatch")
	ErrUnknownCodec       = errors.New("snapshot: unknown codec")
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
	ErrCorruptSnapshot    = errors.New("snapshot: corrupt snapshot")
)

// Header describes an encoded snapshot.
type Header struct {
	Version     uint16
	Compression Compression
	Codec       string
	Count       uint64 // Number of strings
	RawSize     uint64 // Codec output size
	PayloadSize uint64 // Stored payload size
	Checksum    uint32 // CRC32C of the payload
}

// Size returns the encoded size of the header.
func (h Header) Size() int {
	return prefixSize + len(h.Codec) + fieldsSize
}

// Ratio returns PayloadSize divided by RawSize.
func (h Header) Ratio() float64 {
	if h.RawSize == 0 {
		return 1
	}
	return float64(h.PayloadSize) / float64(h.RawSize)
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("snapshot: checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Unwrap() error { return ErrChecksumMismatch }
