package bitwriter

import (
	"bytes"
	"testing"
)

// The 18-bit pattern 0b0011_0011_1100_1100_10 packed LSB-first spans two
// bytes with two bits left over; worked by hand against RFC 1951's bit
// order and cross-checked against the original Rust implementation's
// bitstream test.
func TestWriteBitsLSBSpansBytes(t *testing.T) {
	w := New()
	w.WriteBitsLSB(18, 0b0011_0011_1100_1100_10)

	want := []byte{0b00110010, 0b11001111}
	if got := w.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("Bytes() = %08b, want %08b", got, want)
	}

	n, v := w.Trailing()
	if n != 2 || v != 0 {
		t.Fatalf("Trailing() = (%d, %d), want (2, 0)", n, v)
	}
}

func TestWriteBitsMSBForHuffmanCodes(t *testing.T) {
	w := New()
	// A 4-bit code 0b1011 written MSB-first should emit bits 1,0,1,1 in
	// that order, landing in the low nibble of the first byte.
	w.WriteBitsMSB(4, 0b1011)
	w.ByteAlign()
	want := byte(0b1101) // bit0=1,bit1=0,bit2=1,bit3=1 packed LSB-first
	if got := w.Bytes()[0]; got != want {
		t.Fatalf("byte = %04b, want %04b", got, want)
	}
}

func TestByteAlignPadsWithZero(t *testing.T) {
	w := New()
	w.WriteBitsLSB(3, 0b101)
	w.ByteAlign()
	if n, _ := w.Trailing(); n != 0 {
		t.Fatalf("expected byte alignment, trailing bits = %d", n)
	}
	if len(w.Bytes()) != 1 {
		t.Fatalf("expected exactly one byte, got %d", len(w.Bytes()))
	}
}

func TestWriteBytesRequiresAlignment(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when unaligned")
		}
	}()
	w := New()
	w.WriteBitsLSB(3, 0b101)
	w.WriteBytes([]byte{0xFF})
}

func TestResumeContinuesTrailingBits(t *testing.T) {
	w1 := New()
	w1.WriteBitsLSB(3, 0b101)
	n, v := w1.Trailing()

	w2 := Resume(n, v)
	w2.WriteBitsLSB(5, 0b10110)
	w2.ByteAlign()

	want := byte(0b10110101)
	if got := w2.Bytes()[0]; got != want {
		t.Fatalf("resumed byte = %08b, want %08b", got, want)
	}
}
