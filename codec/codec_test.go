package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
	assert.Equal(t, []string{"binary", "go-json", "json"}, Names())
}

func TestCodecs_Strings(t *testing.T) {
	items := []string{"Elephant", "", "Tiger", "ünïcödé", "with\nnewline"}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, _ := ByName(name)
			data, err := c.Marshal(items)
			require.NoError(t, err)

			var out []string
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, items, out)
		})
	}
}

func TestBinary_RawBytes(t *testing.T) {
	items := []string{string([]byte{0xff, 0xfe, 0x00})}
	data, err := Binary{}.Marshal(&items)
	require.NoError(t, err)

	var out []string
	require.NoError(t, Binary{}.Unmarshal(data, &out))
	assert.Equal(t, items, out)
}

func TestBinary_Errors(t *testing.T) {
	_, err := Binary{}.Marshal(42)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	var out []string
	assert.ErrorIs(t, Binary{}.Unmarshal([]byte{0}, out), ErrUnsupportedType)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"count exceeds payload", []byte{5, 1}},
		{"truncated entry", []byte{1, 4, 'a', 'b'}},
		{"trailing bytes", []byte{1, 1, 'a', 'z'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Binary{}.Unmarshal(tt.data, &out))
		})
	}
}

func TestJSON_RejectsInvalidUTF8(t *testing.T) {
	items := []string{"ok", "\xffx"}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			_, err := c.Marshal(items)
			require.ErrorIs(t, err, ErrInvalidUTF8)
			assert.Contains(t, err.Error(), "entry 1")

			_, err = c.Marshal(&items)
			assert.ErrorIs(t, err, ErrInvalidUTF8)
		})
	}
}

func TestDefault_PreservesRawBytes(t *testing.T) {
	assert.Equal(t, Binary{}.Name(), Default.Name())

	items := []string{"\xff", "\xfe", "\xffx"}
	var out []string
	require.NoError(t, Default.Unmarshal(MustMarshal(Default, items), &out))
	assert.Equal(t, items, out)
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, []byte{1, 1, 'a'}, MustMarshal(nil, []string{"a"}))
	assert.Panics(t, func() { MustMarshal(Binary{}, 1) })
}

func BenchmarkCodec_Marshal(b *testing.B) {
	items := make([]string, 1000)
	for i := range items {
		items[i] = "token-" + string(rune('a'+i%26))
	}
	for _, name := range Names() {
		c, _ := ByName(name)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = MustMarshal(c, items)
			}
		})
	}
}
