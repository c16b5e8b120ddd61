package deflate

import (
	"github.com/gzipkit/gzipkit/internal/bitwriter"
	"github.com/gzipkit/gzipkit/internal/huffman"
	"github.com/gzipkit/gzipkit/internal/lz77"
	"github.com/gzipkit/gzipkit/internal/rfctables"
)

// rleItem is one symbol of the code-length alphabet (RFC 1951 §3.2.7)
// used to transmit a dynamic block's literal/length and distance code
// lengths compactly.
type rleItem struct {
	symbol     int
	extraBits  int
	extraValue uint32
}

// dynamicHeader is everything writeDynamicHeader needs to emit HLIT,
// HDIST, HCLEN, the reordered code-length lengths, and the RLE-encoded
// literal/length+distance length vectors.
type dynamicHeader struct {
	hlit, hdist, hclen int
	reorderedClenLens  []int
	clenTable          *huffman.Table
	rle                []rleItem
}

func (h *dynamicHeader) bitLen() int {
	bits := 5 + 5 + 4 + len(h.reorderedClenLens)*3
	for _, it := range h.rle {
		bits += h.clenTable.Bits[it.symbol] + it.extraBits
	}
	return bits
}

// buildDynamicTables runs length-limited Huffman over this block's
// symbol frequencies (spec.md §4.6 steps 1-6) and returns the resulting
// literal/length table, distance table, and dynamic header.
func buildDynamicTables(symbols []lz77.Symbol) (litLen, dist *huffman.Table, header dynamicHeader) {
	litFreq := make([]int, numLitLenSymbols)
	distFreq := make([]int, numDistSymbols)
	litFreq[rfctables.EndOfBlock] = 1

	for _, s := range symbols {
		if s.Kind == lz77.Literal {
			litFreq[s.Lit]++
			continue
		}
		litFreq[rfctables.LengthRepr(s.Length).Code]++
		distFreq[rfctables.DistRepr(s.Distance).Code]++
	}

	litLens := huffman.BuildLengthLimited(litFreq, maxLitLenBits)
	distLens := huffman.BuildLengthLimited(distFreq, maxLitLenBits)

	distUsed := false
	for _, f := range distFreq {
		if f != 0 {
			distUsed = true
			break
		}
	}
	if !distUsed {
		// DEFLATE still requires a non-empty distance alphabet; give
		// symbol 0 a placeholder one-bit code, as real encoders do.
		distLens[0] = 1
	}

	lastLit := lastNonZeroIndex(litLens, rfctables.EndOfBlock)
	hlit := lastLit - 256
	lastDist := lastNonZeroIndex(distLens, 0)
	hdist := lastDist

	lens := make([]int, 0, hlit+257+hdist+1)
	lens = append(lens, litLens[:hlit+257]...)
	lens = append(lens, distLens[:hdist+1]...)

	rle, clenFreq := buildCodeLengthRLE(lens)
	clenLens := huffman.BuildLengthLimited(clenFreq, maxClenBits)
	clenTable, err := huffman.BuildCanonical(clenLens, maxClenBits)
	if err != nil {
		panic("deflate: code-length table: " + err.Error())
	}

	reordered := make([]int, numClenSymbols)
	for i, sym := range rfctables.CodeLengthOrder {
		reordered[i] = clenLens[sym]
	}
	n := numClenSymbols
	for n > 4 && reordered[n-1] == 0 {
		n--
	}

	litLenTable, err := huffman.BuildCanonical(litLens, maxLitLenBits)
	if err != nil {
		panic("deflate: dynamic literal/length table: " + err.Error())
	}
	distTable, err := huffman.BuildCanonical(distLens, maxLitLenBits)
	if err != nil {
		panic("deflate: dynamic distance table: " + err.Error())
	}

	header = dynamicHeader{
		hlit:              hlit,
		hdist:             hdist,
		hclen:             n - 4,
		reorderedClenLens: reordered[:n],
		clenTable:         clenTable,
		rle:               rle,
	}
	return litLenTable, distTable, header
}

func lastNonZeroIndex(lens []int, floor int) int {
	last := floor
	for i, l := range lens {
		if l != 0 && i > last {
			last = i
		}
	}
	return last
}

// buildCodeLengthRLE runs RFC 1951 §3.2.7's greedy longest-run-first
// encoding of a code length vector into code-length-alphabet symbols
// (0..18).
func buildCodeLengthRLE(lens []int) ([]rleItem, []int) {
	clenFreq := make([]int, numClenSymbols)
	var items []rleItem

	addLiteral := func(v int) {
		items = append(items, rleItem{symbol: v})
		clenFreq[v]++
	}
	addRun := func(symbol, extraBits, base, count int) {
		items = append(items, rleItem{symbol: symbol, extraBits: extraBits, extraValue: uint32(count - base)})
		clenFreq[symbol]++
	}

	i := 0
	for i < len(lens) {
		value := lens[i]
		run := 1
		for i+run < len(lens) && lens[i+run] == value {
			run++
		}

		if value == 0 {
			remaining := run
			for remaining > 0 {
				switch {
				case remaining >= 11:
					n := min(remaining, 138)
					addRun(18, 7, 11, n)
					remaining -= n
				case remaining >= 3:
					n := min(remaining, 10)
					addRun(17, 3, 3, n)
					remaining -= n
				default:
					addLiteral(0)
					remaining--
				}
			}
		} else {
			addLiteral(value)
			remaining := run - 1
			for remaining > 0 {
				if remaining >= 3 {
					n := min(remaining, 6)
					addRun(16, 2, 3, n)
					remaining -= n
				} else {
					addLiteral(value)
					remaining--
				}
			}
		}
		i += run
	}
	return items, clenFreq
}

func writeDynamicHeader(w *bitwriter.Writer, h dynamicHeader) {
	w.WriteBitsLSB(5, uint32(h.hlit))
	w.WriteBitsLSB(5, uint32(h.hdist))
	w.WriteBitsLSB(4, uint32(h.hclen))
	for _, l := range h.reorderedClenLens {
		w.WriteBitsLSB(3, uint32(l))
	}
	for _, it := range h.rle {
		emit(w, h.clenTable, it.symbol)
		if it.extraBits > 0 {
			w.WriteBitsLSB(it.extraBits, it.extraValue)
		}
	}
}
