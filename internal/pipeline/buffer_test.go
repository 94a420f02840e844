package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain reads everything left in b through a small destination.
func drain[T any](b *RingBuffer[T]) []T {
	dst := make([]T, 3)
	var got []T
	for {
		n := b.ReadInto(dst)
		if n == 0 {
			return got
		}
		got = append(got, dst[:n]...)
	}
}

func TestRingBuffer_FIFOOrder(t *testing.T) {
	b := NewRingBuffer[int16](4)
	b.Write([]int16{1, 2, 3})
	assert.Equal(t, 3, b.Available())

	dst := make([]int16, 2)
	require.Equal(t, 2, b.ReadInto(dst))
	assert.Equal(t, []int16{1, 2}, dst)

	b.Write([]int16{4, 5, 6}) // wraps around the backing slice
	assert.Equal(t, 4, b.capacity, "wrapped write must not grow")
	assert.Equal(t, []int16{3, 4, 5, 6}, drain(b))
	assert.Equal(t, 0, b.Available())
}

func TestRingBuffer_GrowsPreservingOrder(t *testing.T) {
	b := NewRingBuffer[int16](2)
	b.Write([]int16{1, 2})
	require.Equal(t, 1, b.ReadInto(make([]int16, 1)))
	b.Write([]int16{3}) // data now wraps: [3, 2] with readPos=1
	b.Write([]int16{4, 5, 6, 7})

	assert.GreaterOrEqual(t, b.capacity, 6)
	assert.Equal(t, []int16{2, 3, 4, 5, 6, 7}, drain(b))
}

func TestRingBuffer_ReadInto(t *testing.T) {
	b := NewRingBuffer[int16](8)
	for i := range 20 {
		b.Write([]int16{int16(i)})
	}

	got := drain(b)
	require.Len(t, got, 20)
	for i, v := range got {
		assert.Equal(t, int16(i), v)
	}
}

func TestRingBuffer_EmptyAndClear(t *testing.T) {
	b := NewRingBuffer[float64](0)
	assert.Equal(t, 1, b.capacity)
	assert.Equal(t, 0, b.ReadInto(make([]float64, 3)))

	b.Write([]float64{1, 2, 3})
	b.Clear()
	assert.Equal(t, 0, b.Available())
	b.Write(nil)
	assert.Equal(t, 0, b.Available())
	assert.Empty(t, drain(b))
}
