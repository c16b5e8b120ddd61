// Package rfctables holds the static, process-wide tables RFC 1951 §3.2.5
// defines for mapping LZ77 match lengths and distances onto DEFLATE codes
// and extra bits, plus the fixed (BTYPE=01) Huffman code lengths from
// §3.2.6. The base/extra layout mirrors the lBases/lExtras/dBases/dExtras
// tables in google-wuffs's lib/flatecut package, which decodes the same
// RFC 1951 alphabet from the other direction.
package rfctables

// Repr is a (code, extra-bit count, extra-bit value) triple: the DEFLATE
// encoding of one length or distance value.
type Repr struct {
	Code       int
	ExtraBits  int
	ExtraValue uint32
}

const (
	minLength = 3
	maxLength = 258
	minDist   = 1
	maxDist   = 32768
)

// lengthBases[code-257] is the smallest length that code represents;
// lengthExtraBits[code-257] is how many extra bits follow it.
var (
	lengthBases = [29]int{
		3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31,
		35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258,
	}
	lengthExtraBits = [29]int{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0,
	}

	distBases = [30]int{
		1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193,
		257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
	}
	distExtraBits = [30]int{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
		7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	}
)

// lengthRepr and distRepr are built once at init from the base tables
// above; LengthRepr/DistRepr index straight into them.
var (
	lengthRepr [maxLength + 1]Repr // index by length, 3..258
	distRepr   [maxDist + 1]Repr   // index by distance, 1..32768
)

func init() {
	for code, base := range lengthBases {
		extra := lengthExtraBits[code]
		lo := base
		hi := lo + (1 << uint(extra)) - 1
		if code == len(lengthBases)-1 {
			hi = maxLength // code 285 covers exactly length 258, 0 extra bits
		}
		for length := lo; length <= hi && length <= maxLength; length++ {
			lengthRepr[length] = Repr{Code: 257 + code, ExtraBits: extra, ExtraValue: uint32(length - base)}
		}
	}

	for code, base := range distBases {
		extra := distExtraBits[code]
		lo := base
		hi := lo + (1 << uint(extra)) - 1
		for dist := lo; dist <= hi && dist <= maxDist; dist++ {
			distRepr[dist] = Repr{Code: code, ExtraBits: extra, ExtraValue: uint32(dist - base)}
		}
	}
}

// LengthRepr returns the DEFLATE representation of match length (in
// [3, 258]). It panics if length is out of range.
func LengthRepr(length int) Repr {
	if length < minLength || length > maxLength {
		panic("rfctables: length out of range")
	}
	return lengthRepr[length]
}

// DistRepr returns the DEFLATE representation of match distance (in
// [1, 32768]). It panics if dist is out of range.
func DistRepr(dist int) Repr {
	if dist < minDist || dist > maxDist {
		panic("rfctables: distance out of range")
	}
	return distRepr[dist]
}

// NumLengthCodes and NumDistCodes are the sizes of the length and
// distance code alphabets (257..285 and 0..29 respectively).
const (
	NumLengthCodes = len(lengthBases)
	NumDistCodes   = len(distBases)
)

// FixedLitLenLengths returns the RFC 1951 §3.2.6 fixed code lengths for
// the 288-symbol literal/length alphabet: 0..143 -> 8 bits, 144..255 ->
// 9 bits, 256..279 -> 7 bits, 280..287 -> 8 bits.
func FixedLitLenLengths() [288]int {
	var lens [288]int
	for i := 0; i <= 143; i++ {
		lens[i] = 8
	}
	for i := 144; i <= 255; i++ {
		lens[i] = 9
	}
	for i := 256; i <= 279; i++ {
		lens[i] = 7
	}
	for i := 280; i <= 287; i++ {
		lens[i] = 8
	}
	return lens
}

// FixedDistLengths returns the fixed 5-bit code length for all 30
// distance codes (RFC 1951 §3.2.6: "Distance codes 0-31 are represented
// by (fixed-length) 5-bit codes").
func FixedDistLengths() [30]int {
	var lens [30]int
	for i := range lens {
		lens[i] = 5
	}
	return lens
}

// CodeLengthOrder is the RFC 1951 §3.2.7 order in which code-length
// alphabet lengths are transmitted in a dynamic block header.
var CodeLengthOrder = [19]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

const (
	// EndOfBlock is literal/length symbol 256, DEFLATE's block terminator.
	EndOfBlock = 256
)
