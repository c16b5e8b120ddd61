// Package huffman builds canonical Huffman code tables the way RFC 1951
// §3.2.2 describes, and derives length-limited code lengths from symbol
// frequencies via the package-merge algorithm (§3.2.2's "additional rule"
// that no code exceeds a maximum bit length).
//
// A Table only ever maps symbol -> (bit length, code value); decoding is
// out of scope here (spec.md treats a conforming decoder as an external
// test oracle), so no tree or fast-lookup structure is built.
package huffman

import (
	"errors"
	"sort"
)

// ErrOverfull is returned by BuildCanonical when the code length vector
// cannot form a valid prefix code (RFC 1951 §3.2.2's Kraft inequality is
// violated on the high side).
var ErrOverfull = errors.New("huffman: code length vector is over-full")

// Table is an immutable canonical Huffman code table: symbol -> (bits,
// code). A zero entry (Bits == 0) means the symbol is absent from the
// alphabet.
type Table struct {
	Bits []int
	Code []uint32
}

// BuildCanonical assigns canonical codes to a vector of per-symbol code
// lengths (0 meaning absent), following RFC 1951 §3.2.2 exactly:
//
//  1. bl_count[L] = number of symbols with length L
//  2. next_code[1] = 0; next_code[L+1] = (next_code[L]+bl_count[L]) << 1
//  3. each symbol, visited in ascending symbol order, gets the next
//     code of its own length
func BuildCanonical(lens []int, maxBits int) (*Table, error) {
	blCount := make([]int, maxBits+1)
	maxLen := 0
	for _, l := range lens {
		if l == 0 {
			continue
		}
		if l < 0 || l > maxBits {
			return nil, errors.New("huffman: code length exceeds max_bits")
		}
		blCount[l]++
		if l > maxLen {
			maxLen = l
		}
	}

	// Kraft inequality, scaled by 2^maxBits to stay in integers:
	// sum(blCount[L] * 2^(maxBits-L)) must not exceed 2^maxBits.
	var sum int64
	for l := 1; l <= maxBits; l++ {
		sum += int64(blCount[l]) << uint(maxBits-l)
	}
	if sum > int64(1)<<uint(maxBits) {
		return nil, ErrOverfull
	}

	nextCode := make([]int, maxBits+2)
	code := 0
	for l := 1; l <= maxBits; l++ {
		nextCode[l] = code
		code = (code + blCount[l]) << 1
	}

	t := &Table{Bits: make([]int, len(lens)), Code: make([]uint32, len(lens))}
	for sym, l := range lens {
		if l == 0 {
			continue
		}
		t.Bits[sym] = l
		t.Code[sym] = uint32(nextCode[l])
		nextCode[l]++
	}
	return t, nil
}

// coin is a package-merge work item: a weight and the set of original
// symbols it was built from (a leaf has exactly one).
type coin struct {
	weight int64
	syms   []int
}

// BuildLengthLimited computes, for each symbol with freq[i] > 0, a code
// length in [1, maxBits] minimizing sum(freq_i * len_i), via
// package-merge. Symbols with freq[i] == 0 get length 0. maxBits is 15
// for the literal/length and distance alphabets, 7 for the code-length
// alphabet (RFC 1951 §3.2.7).
func BuildLengthLimited(freq []int, maxBits int) []int {
	lens := make([]int, len(freq))

	type leafT struct {
		sym  int
		freq int
	}
	var leaves []leafT
	for sym, f := range freq {
		if f > 0 {
			leaves = append(leaves, leafT{sym, f})
		}
	}
	if len(leaves) == 0 {
		return lens
	}
	if len(leaves) == 1 {
		lens[leaves[0].sym] = 1
		return lens
	}

	sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].freq < leaves[j].freq })
	baseCoins := make([]coin, len(leaves))
	for i, lf := range leaves {
		baseCoins[i] = coin{weight: int64(lf.freq), syms: []int{lf.sym}}
	}

	n := len(leaves)
	var prevPackages []coin
	for level := maxBits; level >= 1; level-- {
		merged := mergeByWeight(baseCoins, prevPackages)

		if level == 1 {
			limit := 2*n - 2
			if limit > len(merged) {
				limit = len(merged)
			}
			if limit < 0 {
				limit = 0
			}
			for _, c := range merged[:limit] {
				for _, s := range c.syms {
					lens[s]++
				}
			}
			return lens
		}

		npairs := len(merged) / 2
		packages := make([]coin, npairs)
		for i := 0; i < npairs; i++ {
			a, b := merged[2*i], merged[2*i+1]
			syms := make([]int, 0, len(a.syms)+len(b.syms))
			syms = append(syms, a.syms...)
			syms = append(syms, b.syms...)
			packages[i] = coin{weight: a.weight + b.weight, syms: syms}
		}
		prevPackages = packages
	}
	return lens
}

// mergeByWeight merges two weight-ascending coin slices into one
// weight-ascending slice (a standard merge step; both inputs are kept
// sorted by construction).
func mergeByWeight(a, b []coin) []coin {
	out := make([]coin, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].weight <= b[j].weight {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
