// Package codec encodes the ordered string list that makes up a snapshot.
//
// Changing codecs is a breaking-change boundary for persisted bytes, so
// snapshots record the codec name in their header and select the codec by
// name when decoding.
package codec

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned by the JSON codecs for strings that are not
// valid UTF-8. JSON would silently replace the invalid bytes with U+FFFD.
var ErrInvalidUTF8 = errors.New("codec: string is not valid UTF-8")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// Snapshots store the codec name in their header and resolve it here.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "binary":
		return Binary{}, true
	default:
		return nil, false
	}
}

// Names returns the names of the built-in codecs, sorted.
func Names() []string {
	names := []string{JSON{}.Name(), GoJSON{}.Name(), Binary{}.Name()}
	sort.Strings(names)
	return names
}

// MustMarshal is a helper for tests and benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

func checkUTF8(v any) error {
	var items []string
	switch t := v.(type) {
	case []string:
		items = t
	case *[]string:
		if t == nil {
			return nil
		}
		items = *t
	case string:
		items = []string{t}
	default:
		return nil
	}
	for i, s := range items {
		if !utf8.ValidString(s) {
			return fmt.Errorf("%w: entry %d", ErrInvalidUTF8, i)
		}
	}
	return nil
}
