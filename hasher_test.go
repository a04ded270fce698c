package strintern

import (
	"hash/maphash"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/strintern/symbol"
)

func TestHashers_Deterministic(t *testing.T) {
	for _, name := range HasherNames() {
		t.Run(name, func(t *testing.T) {
			h, err := HasherByName(name)
			require.NoError(t, err)

			assert.Equal(t, h.Hash("Elephant"), h.Hash("Elephant"))
			assert.NotEqual(t, h.Hash("Elephant"), h.Hash("Tiger"))
			assert.Equal(t, h.Hash(""), h.Hash(""))
		})
	}
}

func TestHasherByName_Unknown(t *testing.T) {
	_, err := HasherByName("md5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xxhash")
}

func TestHasherNames(t *testing.T) {
	assert.Equal(t, []string{"crc32c", "fnv", "maphash", "xxhash"}, HasherNames())
}

func TestSeededMapHasher(t *testing.T) {
	seed := maphash.MakeSeed()
	a, b := NewSeededMapHasher(seed), NewSeededMapHasher(seed)
	assert.Equal(t, a.Hash("Horse"), b.Hash("Horse"))
}

func TestFNVHasher_KnownValue(t *testing.T) {
	// FNV-1a 64 of the empty string is the offset basis.
	assert.Equal(t, uint64(14695981039346656037), FNVHasher{}.Hash(""))
	assert.Equal(t, uint64(0xaf63dc4c8601ec8c), FNVHasher{}.Hash("a"))
}

func TestHashers_SameSymbols(t *testing.T) {
	words := []string{"Elephant", "Tiger", "Horse", "Tiger", "Zebra", "Elephant"}

	var want []int
	for _, name := range HasherNames() {
		h, err := HasherByName(name)
		require.NoError(t, err)

		in := New[symbol.Sym32](WithHasher(h))
		var got []int
		for _, w := range words {
			got = append(got, in.GetOrIntern(w).Index())
		}
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, name)
	}
	assert.Equal(t, []int{0, 1, 2, 1, 3, 0}, want)
}
