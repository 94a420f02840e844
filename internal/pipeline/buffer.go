// Package pipeline holds the buffering primitives shared by the streaming
// time-scale engine.
package pipeline

// RingBuffer implements a growable circular FIFO.
// The engine uses it to queue produced frames between Write and Read calls.
//
// RingBuffer is not safe for concurrent use; a stream owns its buffers.
type RingBuffer[T any] struct {
	data     []T
	capacity int
	size     int
	readPos  int
	writePos int
}

// NewRingBuffer creates a new ring buffer with the specified capacity.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &RingBuffer[T]{
		data:     make([]T, capacity),
		capacity: capacity,
	}
}

// Write appends values to the buffer, growing it when needed.
func (b *RingBuffer[T]) Write(values []T) {
	needed := len(values)
	if needed == 0 {
		return
	}

	if b.size+needed > b.capacity {
		b.grow(b.size + needed)
	}

	// First run up to the end of the backing slice, then wrap.
	n := copy(b.data[b.writePos:], values)
	if n < needed {
		copy(b.data, values[n:])
	}
	b.writePos = (b.writePos + needed) % b.capacity
	b.size += needed
}

// ReadInto moves up to len(dst) values into dst and returns how many were moved.
func (b *RingBuffer[T]) ReadInto(dst []T) int {
	n := min(len(dst), b.size)
	if n == 0 {
		return 0
	}

	first := copy(dst[:n], b.data[b.readPos:])
	if first < n {
		copy(dst[first:n], b.data)
	}
	b.readPos = (b.readPos + n) % b.capacity
	b.size -= n
	return n
}

// Available returns the number of values available for reading.
func (b *RingBuffer[T]) Available() int {
	return b.size
}

// Clear removes all values from the buffer.
func (b *RingBuffer[T]) Clear() {
	b.size = 0
	b.readPos = 0
	b.writePos = 0
}

// grow increases the buffer capacity to at least minCapacity.
func (b *RingBuffer[T]) grow(minCapacity int) {
	newCapacity := b.capacity
	for newCapacity < minCapacity {
		newCapacity *= bufferGrowthFactor
	}

	newData := make([]T, newCapacity)

	// Copy existing data to maintain order
	if b.size > 0 {
		if b.readPos < b.writePos {
			copy(newData, b.data[b.readPos:b.writePos])
		} else {
			n1 := copy(newData, b.data[b.readPos:])
			copy(newData[n1:], b.data[:b.writePos])
		}
	}

	b.data = newData
	b.capacity = newCapacity
	b.readPos = 0
	b.writePos = b.size
}
