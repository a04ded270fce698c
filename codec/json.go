package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Use it when the snapshot payload must be readable by tools that know
// nothing about this package; any JSON decoder can read a []string.
// Strings that are not valid UTF-8 are rejected with ErrInvalidUTF8.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) {
	if err := checkUTF8(v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used for new snapshots. It is Binary because
// the JSON codecs cannot represent arbitrary bytes.
//
// Existing snapshots are self-describing and decode with the codec named in
// their header.
var Default Codec = Binary{}
