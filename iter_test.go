package strintern

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/strintern/symbol"
)

func TestIteration(t *testing.T) {
	in := FromStrings[symbol.Sym32]([]string{"Elephant", "Tiger", "Horse", "Tiger"})

	var syms []int
	var texts []string
	for sym, s := range in.All() {
		syms = append(syms, sym.Index())
		texts = append(texts, s)
	}
	assert.Equal(t, []int{0, 1, 2}, syms)
	assert.Equal(t, []string{"Elephant", "Tiger", "Horse"}, texts)

	// Restartable.
	assert.Equal(t, texts, slices.Collect(in.Values()))
	assert.Equal(t, texts, slices.Collect(in.Values()))

	var fromSymbols []string
	for sym := range in.Symbols() {
		fromSymbols = append(fromSymbols, in.MustResolve(sym))
	}
	assert.Equal(t, texts, fromSymbols)
}

func TestIteration_EarlyExit(t *testing.T) {
	in := FromStrings[symbol.Sym32]([]string{"a", "b", "c"})
	n := 0
	for range in.All() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)

	for range in.Symbols() {
		break
	}
}

func TestIter(t *testing.T) {
	in := FromStrings[symbol.Sym16]([]string{"x", "y"})
	it := in.Iter()
	assert.Equal(t, 2, it.Remaining())

	sym, s, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 0, sym.Index())
	assert.Equal(t, "x", s)
	assert.Equal(t, 1, it.Remaining())

	// Entries added after the cursor was created are not visited.
	in.GetOrIntern("z")

	_, s, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, "y", s)
	assert.Equal(t, 0, it.Remaining())

	_, _, ok = it.Next()
	assert.False(t, ok)
}

func TestDrain(t *testing.T) {
	in := FromStrings[symbol.Sym32]([]string{"Elephant", "Tiger", "Horse"}, WithMemoryLimit(1<<20))
	before := in.MustResolve(sym32(1))

	seq := in.Drain()

	// The interner is empty as soon as Drain returns.
	assert.Equal(t, 0, in.Len())
	assert.True(t, in.IsEmpty())
	assert.False(t, in.Contains("Tiger"))
	assert.Equal(t, int64(0), in.Stats().MemoryUsed)

	var got []string
	for sym, s := range seq {
		assert.Equal(t, len(got), sym.Index())
		got = append(got, s)
	}
	assert.Equal(t, []string{"Elephant", "Tiger", "Horse"}, got)
	assert.Equal(t, "Tiger", before)

	// The interner is reusable and restarts at zero.
	assert.Equal(t, 0, in.GetOrIntern("Zebra").Index())
	assert.Equal(t, "Tiger", got[1])
}
