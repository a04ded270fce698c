package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned when a codec cannot handle a value's type.
var ErrUnsupportedType = errors.New("codec: unsupported type")

// Binary encodes a []string as a uvarint count followed by uvarint-length
// prefixed bytes. It is the most compact codec and the only one that
// preserves strings that are not valid UTF-8.
type Binary struct{}

// Marshal encodes v, which must be a []string or *[]string.
func (Binary) Marshal(v any) ([]byte, error) {
	var items []string
	switch t := v.(type) {
	case []string:
		items = t
	case *[]string:
		items = *t
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	size := binary.MaxVarintLen64
	for _, s := range items {
		size += binary.MaxVarintLen64 + len(s)
	}
	buf := make([]byte, 0, size)
	buf = binary.AppendUvarint(buf, uint64(len(items)))
	for _, s := range items {
		buf = binary.AppendUvarint(buf, uint64(len(s)))
		buf = append(buf, s...)
	}
	return buf, nil
}

// Unmarshal decodes data into v, which must be a *[]string.
func (Binary) Unmarshal(data []byte, v any) error {
	dst, ok := v.(*[]string)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	count, n := binary.Uvarint(data)
	if n <= 0 {
		return errors.New("codec: binary: invalid count")
	}
	data = data[n:]
	// Every entry takes at least one byte, which bounds the allocation.
	if count > uint64(len(data)) {
		return fmt.Errorf("codec: binary: count %d exceeds payload", count)
	}

	items := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		l, n := binary.Uvarint(data)
		if n <= 0 {
			return fmt.Errorf("codec: binary: invalid length at entry %d", i)
		}
		data = data[n:]
		if l > uint64(len(data)) {
			return fmt.Errorf("codec: binary: entry %d truncated", i)
		}
		items = append(items, string(data[:l]))
		data = data[l:]
	}
	if len(data) != 0 {
		return fmt.Errorf("codec: binary: %d trailing bytes", len(data))
	}
	*dst = items
	return nil
}

// Name returns the unique name of the codec ("binary").
func (Binary) Name() string { return "binary" }
