package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/strintern/codec"
	"github.com/hupe1980/strintern/internal/hash"
)

func sampleItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("token-%04d-%s", i, strings.Repeat("x", i%7))
	}
	return items
}

func TestRoundTrip(t *testing.T) {
	items := sampleItems(500)

	for _, name := range codec.Names() {
		for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
			t.Run(name+"/"+comp.String(), func(t *testing.T) {
				c, _ := codec.ByName(name)

				var buf bytes.Buffer
				n, err := Encode(&buf, items, Options{Codec: c, Compression: comp})
				require.NoError(t, err)
				assert.Equal(t, int64(buf.Len()), n)

				out, h, err := Decode(&buf)
				require.NoError(t, err)
				assert.Equal(t, items, out)
				assert.Equal(t, name, h.Codec)
				assert.Equal(t, comp, h.Compression)
				assert.Equal(t, uint64(len(items)), h.Count)
				if comp != CompressionNone {
					assert.Less(t, h.PayloadSize, h.RawSize)
				}
			})
		}
	}
}

func TestEmpty(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, nil, Options{Compression: CompressionZSTD})
	require.NoError(t, err)

	out, h, err := Decode(&buf)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, codec.Default.Name(), h.Codec)
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, []string{"a"}, Options{Codec: codec.Binary{}, Compression: CompressionLZ4})
	require.NoError(t, err)

	h, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, h.Compression)
	assert.Equal(t, h.Size()+int(h.PayloadSize), buf.Len())
}

func encoded(t *testing.T, opts Options) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := Encode(&buf, sampleItems(50), opts)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeErrors(t *testing.T) {
	codecOffset := prefixSize
	fieldsOffset := codecOffset + len("go-json")

	tests := []struct {
		name    string
		mutate  func(b []byte) []byte
		wantErr error
	}{
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrInvalidMagic},
		{"bad version", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[4:], 99); return b }, ErrUnsupportedVersion},
		{"bad compression", func(b []byte) []byte { b[6] = 9; return b }, ErrUnknownCompression},
		{"unknown codec", func(b []byte) []byte { copy(b[codecOffset:], "no-json"); return b }, ErrUnknownCodec},
		{"flipped payload bit", func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }, ErrChecksumMismatch},
		{"truncated payload", func(b []byte) []byte { return b[:len(b)-3] }, ErrCorruptSnapshot},
		{"truncated header", func(b []byte) []byte { return b[:5] }, ErrCorruptSnapshot},
		{"count mismatch", func(b []byte) []byte { binary.LittleEndian.PutUint64(b[fieldsOffset:], 49); return b }, ErrCorruptSnapshot},
		{"oversized payload", func(b []byte) []byte { binary.LittleEndian.PutUint64(b[fieldsOffset+16:], maxSize+1); return b }, ErrCorruptSnapshot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(encoded(t, Options{Codec: codec.GoJSON{}}))
			_, _, err := Decode(bytes.NewReader(data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestChecksumMismatchError(t *testing.T) {
	data := encoded(t, Options{Codec: codec.JSON{}, Compression: CompressionZSTD})
	data[len(data)-2] ^= 0xff

	_, _, err := Decode(bytes.NewReader(data))
	var cm *ChecksumMismatchError
	require.ErrorAs(t, err, &cm)
	assert.NotEqual(t, cm.Expected, cm.Actual)
}

func TestEncodeErrors(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, nil, Options{Compression: Compression(7)})
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "Compression(9)", Compression(9).String())
}

func TestDecode_ForgedRawSize(t *testing.T) {
	raw := codec.MustMarshal(codec.Binary{}, []string{strings.Repeat("a", 1000)})

	forge := func(t *testing.T, comp Compression, rawSize uint64) []byte {
		t.Helper()
		payload, used, err := compress(raw, comp)
		require.NoError(t, err)
		require.Equal(t, comp, used)

		h := Header{
			Version:     Version,
			Compression: comp,
			Codec:       codec.Binary{}.Name(),
			Count:       1,
			RawSize:     rawSize,
			PayloadSize: uint64(len(payload)),
			Checksum:    hash.CRC32C(payload),
		}
		return append(appendHeader(nil, h), payload...)
	}

	tests := []struct {
		name    string
		comp    Compression
		rawSize uint64
	}{
		{"lz4 claims max size", CompressionLZ4, maxSize},
		{"lz4 claims more", CompressionLZ4, uint64(len(raw)) + 1},
		{"zstd claims max size", CompressionZSTD, maxSize},
		{"zstd claims less", CompressionZSTD, uint64(len(raw)) - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(bytes.NewReader(forge(t, tt.comp, tt.rawSize)))
			assert.ErrorIs(t, err, ErrCorruptSnapshot)
		})
	}

	t.Run("honest header", func(t *testing.T) {
		for _, comp := range []Compression{CompressionLZ4, CompressionZSTD} {
			out, _, err := Decode(bytes.NewReader(forge(t, comp, uint64(len(raw)))))
			require.NoError(t, err)
			assert.Equal(t, []string{strings.Repeat("a", 1000)}, out)
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	items := sampleItems(10000)
	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		b.Run(comp.String(), func(b *testing.B) {
			var buf bytes.Buffer
			b.ReportAllocs()
			for b.Loop() {
				buf.Reset()
				_, _ = Encode(&buf, items, Options{Compression: comp})
			}
		})
	}
}
