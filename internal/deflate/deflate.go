// Package deflate converts a stream of internal/lz77 symbols into a
// bit-packed RFC 1951 DEFLATE stream: it picks between a fixed, a
// dynamic, and (when even that is not a win) a stored block encoding
// per block, and drives the BFINAL bookkeeping across the whole input.
package deflate

import (
	"github.com/gzipkit/gzipkit/internal/bitwriter"
	"github.com/gzipkit/gzipkit/internal/huffman"
	"github.com/gzipkit/gzipkit/internal/lz77"
	"github.com/gzipkit/gzipkit/internal/rfctables"
)

const (
	numLitLenSymbols = 286 // 0..255 literals, 256 EOB, 257..285 length codes
	numDistSymbols   = 30
	numClenSymbols   = 19

	maxLitLenBits = 15
	maxClenBits   = 7

	btypeFixed   = 1
	btypeDynamic = 2
	btypeStored  = 0
)

var (
	fixedLitLen *huffman.Table
	fixedDist   *huffman.Table
)

func init() {
	litLens := rfctables.FixedLitLenLengths()
	distLens := rfctables.FixedDistLengths()

	var err error
	fixedLitLen, err = huffman.BuildCanonical(litLens[:], maxLitLenBits)
	if err != nil {
		panic("deflate: fixed literal/length table: " + err.Error())
	}
	fixedDist, err = huffman.BuildCanonical(distLens[:], maxLitLenBits)
	if err != nil {
		panic("deflate: fixed distance table: " + err.Error())
	}
}

// symbolCost is the (code, extra) cost of one lz77.Symbol under a given
// literal/length and distance table, in bits.
func symbolCost(s lz77.Symbol, litLen, dist *huffman.Table) int {
	if s.Kind == lz77.Literal {
		return litLen.Bits[s.Lit]
	}
	lr := rfctables.LengthRepr(s.Length)
	dr := rfctables.DistRepr(s.Distance)
	return litLen.Bits[lr.Code] + lr.ExtraBits + dist.Bits[dr.Code] + dr.ExtraBits
}

func writeSymbol(w *bitwriter.Writer, s lz77.Symbol, litLen, dist *huffman.Table) {
	if s.Kind == lz77.Literal {
		emit(w, litLen, int(s.Lit))
		return
	}
	lr := rfctables.LengthRepr(s.Length)
	emit(w, litLen, lr.Code)
	if lr.ExtraBits > 0 {
		w.WriteBitsLSB(lr.ExtraBits, lr.ExtraValue)
	}
	dr := rfctables.DistRepr(s.Distance)
	emit(w, dist, dr.Code)
	if dr.ExtraBits > 0 {
		w.WriteBitsLSB(dr.ExtraBits, dr.ExtraValue)
	}
}

func emit(w *bitwriter.Writer, t *huffman.Table, symbol int) {
	w.WriteBitsMSB(t.Bits[symbol], t.Code[symbol])
}

// replay reconstructs the raw bytes a symbol block decodes to; used
// only to cost and emit the optional stored-block fallback.
func replay(symbols []lz77.Symbol) []byte {
	var out []byte
	for _, s := range symbols {
		if s.Kind == lz77.Literal {
			out = append(out, s.Lit)
			continue
		}
		start := len(out) - s.Distance
		for i := 0; i < s.Length; i++ {
			out = append(out, out[start+i])
		}
	}
	return out
}

// EncodedBlock is spec.md §4.3's "(bytes, trailing)" pair: the bytes
// completed so far and the fewer-than-8 trailing bits the next block
// continues from.
type EncodedBlock struct {
	Bytes         []byte
	TrailingBits  int
	TrailingValue byte
}

// EncodeBlock packs one block of symbols, choosing the cheapest of
// fixed, dynamic, and stored encodings (ties favor fixed, the simpler
// choice). resumeBits/resumeValue carry over the previous block's
// unaligned tail so blocks concatenate bit-for-bit.
func EncodeBlock(symbols []lz77.Symbol, bfinal bool, resumeBits int, resumeValue byte) EncodedBlock {
	dynLitLen, dynDist, dynHeader := buildDynamicTables(symbols)

	fixedCost := 3 + fixedLitLen.Bits[rfctables.EndOfBlock]
	for _, s := range symbols {
		fixedCost += symbolCost(s, fixedLitLen, fixedDist)
	}

	dynamicCost := 3 + dynHeader.bitLen() + dynLitLen.Bits[rfctables.EndOfBlock]
	for _, s := range symbols {
		dynamicCost += symbolCost(s, dynLitLen, dynDist)
	}

	raw := replay(symbols)
	storedCost := 3 + 7 + 32 + len(raw)*8 // header + align-to-byte + LEN/NLEN + payload
	storedEligible := len(raw) <= 65535

	w := bitwriter.Resume(resumeBits, resumeValue)
	bfinalBit := uint32(0)
	if bfinal {
		bfinalBit = 1
	}

	switch {
	case len(symbols) > 0 && storedEligible && storedCost < fixedCost && storedCost < dynamicCost:
		w.WriteBitsLSB(1, bfinalBit)
		w.WriteBitsLSB(2, btypeStored)
		w.ByteAlign()
		writeStoredPayload(w, raw)
	case dynamicCost < fixedCost:
		w.WriteBitsLSB(1, bfinalBit)
		w.WriteBitsLSB(2, btypeDynamic)
		writeDynamicHeader(w, dynHeader)
		for _, s := range symbols {
			writeSymbol(w, s, dynLitLen, dynDist)
		}
		emit(w, dynLitLen, rfctables.EndOfBlock)
	default:
		w.WriteBitsLSB(1, bfinalBit)
		w.WriteBitsLSB(2, btypeFixed)
		for _, s := range symbols {
			writeSymbol(w, s, fixedLitLen, fixedDist)
		}
		emit(w, fixedLitLen, rfctables.EndOfBlock)
	}

	if bfinal {
		// spec.md §4.7: "finally byte-align and return the buffer" — flush
		// the last partial byte now, since there is no further block to
		// carry it into.
		w.ByteAlign()
	}

	n, v := w.Trailing()
	return EncodedBlock{Bytes: w.Bytes(), TrailingBits: n, TrailingValue: v}
}

func writeStoredPayload(w *bitwriter.Writer, raw []byte) {
	length := uint32(len(raw))
	w.WriteBitsLSB(16, length&0xFFFF)
	w.WriteBitsLSB(16, (^length)&0xFFFF)
	w.WriteBytes(raw)
}
