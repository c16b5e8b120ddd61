package deflate

import (
	"io"

	"github.com/gzipkit/gzipkit/internal/lz77"
)

// DefaultBlockSize is how many lz77 symbols EncodeBlock's caller asks
// for per block when none is specified; it is a compression/latency
// tradeoff, not a protocol limit.
const DefaultBlockSize = 1 << 15

// Encode drains r, LZ77-matching it into blksize-symbol chunks and
// packing each chunk into the cheapest of a stored, fixed, or dynamic
// DEFLATE block (spec.md §4.6-4.7), setting BFINAL on exactly the last
// block. A zero-length input still produces a single empty final
// block, since RFC 1951 requires at least one block per stream.
func Encode(r io.Reader, blksize int) ([]byte, error) {
	if blksize <= 0 {
		blksize = DefaultBlockSize
	}
	enc := lz77.NewEncoder(r)

	var out []byte
	resumeBits, resumeValue := 0, byte(0)
	for {
		res, err := enc.EncodeBlock(blksize)
		if err != nil {
			return nil, err
		}
		block := EncodeBlock(res.Symbols, res.Last, resumeBits, resumeValue)
		out = append(out, block.Bytes...)
		resumeBits, resumeValue = block.TrailingBits, block.TrailingValue
		if res.Last {
			break
		}
	}
	return out, nil
}
