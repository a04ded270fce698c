package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/strintern/codec"
	"github.com/hupe1980/strintern/internal/conv"
	"github.com/hupe1980/strintern/internal/hash"
)

// Options configures Encode.
type Options struct {
	// Codec encodes the string list. If nil, codec.Default is used.
	Codec codec.Codec
	// Compression applied to the codec output.
	Compression Compression
}

// Encode writes items as a snapshot to w and returns the number of bytes
// written.
func Encode(w io.Writer, items []string, opts Options) (int64, error) {
	c := opts.Codec
	if c == nil {
		c = codec.Default
	}
	if !opts.Compression.valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(opts.Compression))
	}
	name := c.Name()
	if name == "" || len(name) > 255 {
		return 0, fmt.Errorf("%w: invalid codec name %q", ErrUnknownCodec, name)
	}

	raw, err := c.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("snapshot: marshal with %s: %w", name, err)
	}
	payload, used, err := compress(raw, opts.Compression)
	if err != nil {
		return 0, fmt.Errorf("snapshot: compress with %s: %w", opts.Compression, err)
	}

	count, err := conv.IntToUint64(len(items))
	if err != nil {
		return 0, err
	}
	h := Header{
		Version:     Version,
		Compression: used,
		Codec:       name,
		Count:       count,
		RawSize:     uint64(len(raw)),
		PayloadSize: uint64(len(payload)),
		Checksum:    hash.CRC32C(payload),
	}

	n, err := w.Write(appendHeader(make([]byte, 0, h.Size()), h))
	written := int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(payload)
	written += int64(n)
	return written, err
}

func appendHeader(buf []byte, h Header) []byte {
	buf = append(buf, Magic...)
	buf = binary.LittleEndian.AppendUint16(buf, h.Version)
	buf = append(buf, byte(h.Compression), 0, byte(len(h.Codec)))
	buf = append(buf, h.Codec...)
	buf = binary.LittleEndian.AppendUint64(buf, h.Count)
	buf = binary.LittleEndian.AppendUint64(buf, h.RawSize)
	buf = binary.LittleEndian.AppendUint64(buf, h.PayloadSize)
	buf = binary.LittleEndian.AppendUint32(buf, h.Checksum)
	return buf
}

// ReadHeader reads and validates a snapshot header, leaving r positioned at
// the payload.
func ReadHeader(r io.Reader) (Header, error) {
	var prefix [prefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Header{}, fmt.Errorf("%w: read header: %w", ErrCorruptSnapshot, err)
	}
	if string(prefix[:len(Magic)]) != Magic {
		return Header{}, ErrInvalidMagic
	}

	var h Header
	h.Version = binary.LittleEndian.Uint16(prefix[4:])
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	h.Compression = Compression(prefix[6])
	if !h.Compression.valid() {
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownCompression, prefix[6])
	}

	name := make([]byte, prefix[8])
	if _, err := io.ReadFull(r, name); err != nil {
		return Header{}, fmt.Errorf("%w: read codec name: %w", ErrCorruptSnapshot, err)
	}
	h.Codec = string(name)

	var fields [fieldsSize]byte
	if _, err := io.ReadFull(r, fields[:]); err != nil {
		return Header{}, fmt.Errorf("%w: read header: %w", ErrCorruptSnapshot, err)
	}
	h.Count = binary.LittleEndian.Uint64(fields[0:])
	h.RawSize = binary.LittleEndian.Uint64(fields[8:])
	h.PayloadSize = binary.LittleEndian.Uint64(fields[16:])
	h.Checksum = binary.LittleEndian.Uint32(fields[24:])

	if h.RawSize > maxSize || h.PayloadSize > maxSize {
		return Header{}, fmt.Errorf("%w: size exceeds limit", ErrCorruptSnapshot)
	}
	return h, nil
}

// Decode reads a snapshot from r and returns the strings it holds in
// symbol order.
func Decode(r io.Reader) ([]string, Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, Header{}, err
	}

	c, ok := codec.ByName(h.Codec)
	if !ok {
		return nil, h, fmt.Errorf("%w: %q", ErrUnknownCodec, h.Codec)
	}

	payloadSize, err := conv.Uint64ToInt(h.PayloadSize)
	if err != nil {
		return nil, h, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	rawSize, err := conv.Uint64ToInt(h.RawSize)
	if err != nil {
		return nil, h, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(payloadSize)); err != nil {
		return nil, h, fmt.Errorf("%w: read payload: %w", ErrCorruptSnapshot, err)
	}
	payload := buf.Bytes()

	if sum := hash.CRC32C(payload); sum != h.Checksum {
		return nil, h, &ChecksumMismatchError{Expected: h.Checksum, Actual: sum}
	}

	raw, err := decompress(payload, h.Compression, rawSize)
	if err != nil {
		return nil, h, err
	}

	var items []string
	if err := c.Unmarshal(raw, &items); err != nil {
		return nil, h, fmt.Errorf("%w: unmarshal with %s: %w", ErrCorruptSnapshot, h.Codec, err)
	}
	if uint64(len(items)) != h.Count {
		return nil, h, fmt.Errorf("%w: header lists %d strings, payload has %d", ErrCorruptSnapshot, h.Count, len(items))
	}
	return items, h, nil
}
