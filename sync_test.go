package strintern

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/strintern/symbol"
)

func TestSynced_Concurrent(t *testing.T) {
	s := NewSynced[symbol.Sym32](WithMetricsCollector(&BasicMetricsCollector{}))

	const (
		workers = 8
		words   = 500
	)
	results := make([][]symbol.Sym32, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]symbol.Sym32, words)
			for i := 0; i < words; i++ {
				out[i] = s.GetOrIntern(fmt.Sprintf("w%d", i))
				str, ok := s.Resolve(out[i])
				if assert.True(t, ok) {
					assert.Equal(t, fmt.Sprintf("w%d", i), str)
				}
			}
			results[w] = out
		}()
	}
	wg.Wait()

	require.Equal(t, words, s.Len())
	for w := 1; w < workers; w++ {
		assert.Equal(t, results[0], results[w])
	}
	for i := 0; i < words; i++ {
		assert.True(t, s.Contains(fmt.Sprintf("w%d", i)))
	}
}

func TestSynced_Wrappers(t *testing.T) {
	in := FromStrings[symbol.Sym32]([]string{"a", "b"})
	s := Synchronize(in)

	sym, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, 1, sym.Index())
	assert.Equal(t, []string{"a", "b"}, s.Strings())
	assert.Equal(t, 2, s.Stats().Len)

	c := s.Clone()
	assert.True(t, c.Equal(in))

	s.Update(func(in *Interner[symbol.Sym32]) {
		in.ExtendStrings([]string{"c", "d"})
	})
	s.View(func(in *Interner[symbol.Sym32]) {
		assert.Equal(t, 4, in.Len())
	})
	assert.Equal(t, 2, c.Len())
}
