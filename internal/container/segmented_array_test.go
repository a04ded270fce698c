package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentedArray_AppendGet(t *testing.T) {
	sa := NewSegmentedArray[int](2) // 4 items per segment

	for i := 0; i < 10; i++ {
		assert.Equal(t, i, sa.Append(i*10))
	}

	assert.Equal(t, 10, sa.Len())
	assert.Equal(t, 12, sa.Cap())

	for i := 0; i < 10; i++ {
		v, ok := sa.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*10, v)
		assert.Equal(t, i*10, sa.At(i))
	}

	_, ok := sa.Get(10)
	assert.False(t, ok)
	_, ok = sa.Get(-1)
	assert.False(t, ok)
}

func TestSegmentedArray_Defaults(t *testing.T) {
	sa := NewSegmentedArray[byte](0)
	assert.Equal(t, 1<<DefaultSegmentBits, sa.SegmentSize())
	assert.Equal(t, 0, sa.Cap())

	sa = NewSegmentedArray[byte](64)
	assert.Equal(t, 1<<maxSegmentBits, sa.SegmentSize())
}

func TestSegmentedArray_AddressStability(t *testing.T) {
	sa := NewSegmentedArray[string](1)
	sa.Append("first")
	p := &sa.segments[0][0]

	for i := 0; i < 100; i++ {
		sa.Append("more")
	}
	assert.Same(t, p, &sa.segments[0][0])
	assert.Equal(t, "first", *p)
}

func TestSegmentedArray_ReserveShrink(t *testing.T) {
	sa := NewSegmentedArray[int](3) // 8 per segment

	sa.Reserve(0)
	assert.Equal(t, 0, sa.Cap())

	sa.Reserve(20)
	assert.Equal(t, 24, sa.Cap())
	assert.Equal(t, 0, sa.Len())

	for i := 0; i < 9; i++ {
		sa.Append(i)
	}
	sa.Shrink()
	assert.Equal(t, 16, sa.Cap())
	for i := 0; i < 9; i++ {
		assert.Equal(t, i, sa.At(i))
	}

	sa.Shrink()
	assert.Equal(t, 16, sa.Cap())
}

func TestSegmentedArray_Range(t *testing.T) {
	sa := NewSegmentedArray[int](1)
	for i := 0; i < 5; i++ {
		sa.Append(i)
	}

	var seen []int
	sa.Range(func(i, v int) bool {
		seen = append(seen, v)
		return i < 2
	})
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestSegmentedArray_Clone(t *testing.T) {
	sa := NewSegmentedArray[int](2)
	for i := 0; i < 6; i++ {
		sa.Append(i)
	}

	c := sa.Clone()
	c.Append(99)
	assert.Equal(t, 6, sa.Len())
	assert.Equal(t, 7, c.Len())
	assert.Equal(t, sa.Cap(), c.Cap())

	c.segments[0][0] = -1
	assert.Equal(t, 0, sa.At(0))
}

func TestSegmentedArray_Reset(t *testing.T) {
	sa := NewSegmentedArray[int](2)
	sa.Append(1)
	sa.Reset()
	assert.Equal(t, 0, sa.Len())
	assert.Equal(t, 0, sa.Cap())
	assert.Equal(t, 0, sa.Append(5))
}
