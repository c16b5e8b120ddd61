package deflate

import (
	"bytes"
	"compress/flate"
	"io"
	"strings"
	"testing"
)

func mustInflate(t *testing.T, compressed []byte) []byte {
	t.Helper()
	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("compress/flate rejected our stream: %v", err)
	}
	return got
}

func TestEncodeRoundTripsThroughStandardLibrary(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		blk  int
	}{
		{"empty", nil, DefaultBlockSize},
		{"single-byte", []byte("a"), DefaultBlockSize},
		{"short-text", []byte("Hello, world!\nHello, Rust!\nRust is the best language!\n"), DefaultBlockSize},
		{"highly-compressible", bytes.Repeat([]byte("abcabc"), 5000), DefaultBlockSize},
		{"small-blocks", []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 200)), 16},
		{"incompressible-ish", pseudoRandom(8192), DefaultBlockSize},
		{"long-zero-run", bytes.Repeat([]byte{0}, 100000), DefaultBlockSize},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := Encode(bytes.NewReader(c.in), c.blk)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got := mustInflate(t, out)
			if !bytes.Equal(got, c.in) {
				t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(c.in))
			}
		})
	}
}

func TestEncodeCompressesRepetitiveInput(t *testing.T) {
	in := bytes.Repeat([]byte("abcabc"), 5000)
	out, err := Encode(bytes.NewReader(in), DefaultBlockSize)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) >= len(in) {
		t.Fatalf("expected compression: output %d bytes, input %d bytes", len(out), len(in))
	}
}

func TestEncodeEmptyInputProducesOneFinalBlock(t *testing.T) {
	out, err := Encode(bytes.NewReader(nil), DefaultBlockSize)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected at least one block's worth of bytes for empty input")
	}
	got := mustInflate(t, out)
	if len(got) != 0 {
		t.Fatalf("expected zero decoded bytes, got %d", len(got))
	}
}

func pseudoRandom(n int) []byte {
	out := make([]byte, n)
	var state uint32 = 0x2545F491
	for i := range out {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		out[i] = byte(state)
	}
	return out
}
