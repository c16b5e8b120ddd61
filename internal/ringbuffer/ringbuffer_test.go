package ringbuffer

import "testing"

func TestPushBackEvicts(t *testing.T) {
	b := New(3)
	for _, x := range []byte{1, 2, 3} {
		if _, ok := b.PushBack(x); ok {
			t.Fatalf("unexpected eviction while filling")
		}
	}
	if !b.IsFull() {
		t.Fatalf("expected full buffer")
	}
	evicted, ok := b.PushBack(4)
	if !ok || evicted != 1 {
		t.Fatalf("PushBack(4) = %d, %v; want 1, true", evicted, ok)
	}
	want := []byte{2, 3, 4}
	for i, w := range want {
		if got := b.At(i); got != w {
			t.Fatalf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestPopFront(t *testing.T) {
	b := New(4)
	b.PushBack(10)
	b.PushBack(20)
	x, ok := b.PopFront()
	if !ok || x != 10 {
		t.Fatalf("PopFront = %d, %v; want 10, true", x, ok)
	}
	if b.At(0) != 20 {
		t.Fatalf("At(0) = %d, want 20", b.At(0))
	}
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", b.Len())
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	b := New(2)
	b.At(0)
}

func TestClear(t *testing.T) {
	b := New(2)
	b.PushBack(1)
	b.PushBack(2)
	b.Clear()
	if !b.IsEmpty() {
		t.Fatalf("expected empty after Clear")
	}
	if b.Cap() != 2 {
		t.Fatalf("Cap() changed after Clear")
	}
}

func TestWrapAround(t *testing.T) {
	b := New(3)
	for i := 0; i < 10; i++ {
		b.PushBack(byte(i))
	}
	// Last 3 values pushed: 7, 8, 9
	want := []byte{7, 8, 9}
	for i, w := range want {
		if got := b.At(i); got != w {
			t.Fatalf("At(%d) = %d, want %d", i, got, w)
		}
	}
}
