// Package ringbuffer implements a fixed-capacity circular buffer of bytes.
//
// It backs both the 32 KiB LZ77 sliding window and the 258-byte lookahead
// buffer used by internal/lz77: a single indexed, front/back-mutable type
// covers both roles.
package ringbuffer

// Buffer is a fixed-capacity ring of bytes. The zero value is not usable;
// construct with New.
type Buffer struct {
	data  []byte
	start int
	n     int
}

// New returns an empty buffer with the given fixed capacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		panic("ringbuffer: non-positive capacity")
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Len reports the number of elements currently stored.
func (b *Buffer) Len() int { return b.n }

// Cap reports the fixed capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// IsFull reports whether Len() == Cap().
func (b *Buffer) IsFull() bool { return b.n == len(b.data) }

// IsEmpty reports whether Len() == 0.
func (b *Buffer) IsEmpty() bool { return b.n == 0 }

// Clear empties the buffer without releasing its backing array.
func (b *Buffer) Clear() {
	b.start = 0
	b.n = 0
}

// At returns the logical index i (0-based from the front). It panics if
// i is out of [0, Len()).
func (b *Buffer) At(i int) byte {
	if i < 0 || i >= b.n {
		panic("ringbuffer: index out of range")
	}
	return b.data[(b.start+i)%len(b.data)]
}

// PushBack appends x. If the buffer was full, the front element is
// evicted first; PushBack reports the evicted value and true, or
// (0, false) if nothing was evicted.
func (b *Buffer) PushBack(x byte) (evicted byte, ok bool) {
	cap := len(b.data)
	if b.n == cap {
		evicted, ok = b.data[b.start], true
		b.data[b.start] = x
		b.start = (b.start + 1) % cap
		return evicted, ok
	}
	b.data[(b.start+b.n)%cap] = x
	b.n++
	return 0, false
}

// PopFront removes and returns logical index 0, or (0, false) if empty.
func (b *Buffer) PopFront() (byte, bool) {
	if b.n == 0 {
		return 0, false
	}
	x := b.data[b.start]
	b.start = (b.start + 1) % len(b.data)
	b.n--
	return x, true
}
