// Package lz77 implements the sliding-window LZ77 matcher that drives
// DEFLATE's back-reference search (RFC 1951 §4, "Compression with
// dynamic Huffman codes" discusses the companion Huffman stage; the
// LZ77 stage itself is unspecified by the RFC beyond the symbol
// alphabet it must produce).
//
// The matcher keeps a hash-chain index of 3-byte window prefixes, the
// classic trick noted in spec.md §4.4 and §9: hashing into
// github.com/cespare/xxhash/v2 buckets instead of scanning the whole
// window turns the average case from O(window·lookahead) to close to
// O(n). Because a pathological input (e.g. a huge run of one byte) can
// make most 3-byte prefixes collide into a handful of hash buckets, the
// bucket table itself is capacity-bounded with a
// github.com/dgryski/go-tinylfu admission cache rather than a plain
// unbounded map, so memory stays O(window) as spec.md §5 requires
// instead of O(distinct prefixes).
package lz77

import (
	"encoding/binary"
	"errors"
	"hash/maphash"
	"io"

	"github.com/cespare/xxhash/v2"
	tinylfu "github.com/dgryski/go-tinylfu"

	"github.com/gzipkit/gzipkit/internal/ringbuffer"
)

const (
	// WindowSize is the sliding window capacity (RFC 1951 §2.2: "32K
	// byte history buffer").
	WindowSize = 32768
	// MaxLookahead is the longest match DEFLATE can encode.
	MaxLookahead = 258
	// MinMatch is the shortest back-reference worth emitting.
	MinMatch = 3

	maxChainDepth  = 48
	chainCacheSize = 1 << 14
)

// Kind distinguishes a Literal symbol from a Pointer (back-reference).
type Kind int

const (
	Literal Kind = iota
	Pointer
)

// Symbol is either a literal byte or a length/distance back-reference.
// Distance is measured in bytes from the symbol's own position back
// into already-emitted output; Length is the logical match length
// (3..258), not the length_raw-minus-3 encoding spec.md §3 mentions as
// an optional storage trick.
type Symbol struct {
	Kind     Kind
	Lit      byte
	Length   int
	Distance int
}

// Result is what one EncodeBlock call returns: the symbols produced and
// whether the input reader is now fully exhausted.
type Result struct {
	Symbols []Symbol
	Last    bool
}

// Encoder owns the window/lookahead ring buffers and hash-chain index;
// it is reused across EncodeBlock calls for one input stream, matching
// spec.md §4.4's "shared across calls" state.
type Encoder struct {
	r         io.Reader
	window    *ringbuffer.Buffer
	lookahead *ringbuffer.Buffer
	absPos    int64 // total bytes ever pushed into window

	chains *tinylfu.T[string, []int64]
	eof    bool
}

// NewEncoder returns an Encoder that reads from r.
func NewEncoder(r io.Reader) *Encoder {
	return &Encoder{
		r:         r,
		window:    ringbuffer.New(WindowSize),
		lookahead: ringbuffer.New(MaxLookahead),
		chains:    tinylfu.New[string, []int64](chainCacheSize, chainCacheSize*10, chainKeyHash),
	}
}

// chainKeyHash hashes a hash-chain bucket key for tinylfu's internal
// sketch with hash/maphash under a per-process seed.
var chainKeySeed = maphash.MakeSeed()

func chainKeyHash(k string) uint64 {
	return maphash.String(chainKeySeed, k)
}

// refillLookahead tops the lookahead buffer up from the reader until it
// is full or the reader reports EOF. A non-EOF read error propagates.
func (e *Encoder) refillLookahead() error {
	if e.eof {
		return nil
	}
	buf := make([]byte, 1)
	for e.lookahead.Len() < MaxLookahead {
		n, err := e.r.Read(buf)
		if n == 1 {
			e.lookahead.PushBack(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				e.eof = true
				return nil
			}
			return err
		}
		if n == 0 {
			// Reader returned (0, nil): per io.Reader's contract, treat
			// as "try again" rather than spinning forever on a buggy
			// implementation; bail to avoid an infinite loop.
			break
		}
	}
	return nil
}

func hash3(a, b, c byte) uint64 {
	var buf [3]byte
	buf[0], buf[1], buf[2] = a, b, c
	return xxhash.Sum64(buf[:])
}

func hashKey(h uint64) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], h)
	return string(buf[:])
}

// recordPosition registers the current absolute position as the start
// of a 3-byte sequence, prepending it to that sequence's hash-chain
// (bounded to maxChainDepth entries, newest first).
func (e *Encoder) recordPosition() {
	if e.lookahead.Len() < MinMatch {
		return
	}
	h := hash3(e.lookahead.At(0), e.lookahead.At(1), e.lookahead.At(2))
	key := hashKey(h)

	chain, _ := e.chains.Get(key)
	chain = append(chain, 0) // placeholder, shifted below
	copy(chain[1:], chain)
	chain[0] = e.absPos
	if len(chain) > maxChainDepth {
		chain = chain[:maxChainDepth]
	}
	e.chains.Add(key, chain)
}

// bestMatch returns the longest match of the lookahead's current prefix
// against the window, preferring the smallest distance on ties (RFC
// 1951 does not require this, but spec.md §4.4 does: it improves the
// entropy of the resulting distance symbol stream).
func (e *Encoder) bestMatch() (length, distance int) {
	if e.lookahead.Len() < MinMatch {
		return 0, 0
	}
	h := hash3(e.lookahead.At(0), e.lookahead.At(1), e.lookahead.At(2))
	chain, ok := e.chains.Get(hashKey(h))
	if !ok {
		return 0, 0
	}

	windowLen := e.window.Len()
	maxLen := MaxLookahead
	if e.lookahead.Len() < maxLen {
		maxLen = e.lookahead.Len()
	}

	bestLen, bestDist := 0, 0
	for _, p := range chain {
		dist := int(e.absPos - p)
		if dist < 1 || dist > windowLen {
			break // chain is newest-first; older entries are even staler
		}
		l := matchLenAt(e.window, e.lookahead, windowLen-dist, maxLen)
		if l > bestLen {
			bestLen = l
			bestDist = dist
			if bestLen >= maxLen {
				break
			}
		}
	}
	if bestLen < MinMatch {
		return 0, 0
	}
	return bestLen, bestDist
}

// matchLenAt counts how many leading bytes of lookahead agree with the
// combined window+lookahead stream starting at srcStart. Because
// lookahead already holds the real upcoming bytes, this also correctly
// measures "overlapping" matches whose distance is shorter than their
// length (e.g. a long run of one repeated byte): once srcStart+k walks
// past the window into the lookahead region, it reads the very bytes
// being matched, which is exactly DEFLATE's defined semantics for such
// back-references.
func matchLenAt(window, lookahead *ringbuffer.Buffer, srcStart, maxLen int) int {
	windowLen := window.Len()
	length := 0
	for length < maxLen {
		srcIdx := srcStart + length
		var srcByte byte
		if srcIdx < windowLen {
			srcByte = window.At(srcIdx)
		} else {
			srcByte = lookahead.At(srcIdx - windowLen)
		}
		if srcByte != lookahead.At(length) {
			break
		}
		length++
	}
	return length
}

// shift moves n bytes from the front of the lookahead into the back of
// the window, recording a hash-chain entry for each position that
// still has at least MinMatch bytes of context ahead of it.
func (e *Encoder) shift(n int) {
	for i := 0; i < n; i++ {
		e.recordPosition()
		b, _ := e.lookahead.PopFront()
		e.window.PushBack(b)
		e.absPos++
	}
}

// EncodeBlock implements spec.md §4.4's per-call loop: refill the
// lookahead, then greedily emit literals and back-references until
// either blksize symbols have been produced or the input is exhausted.
func (e *Encoder) EncodeBlock(blksize int) (Result, error) {
	if blksize <= 0 {
		panic("lz77: blksize must be positive")
	}
	if err := e.refillLookahead(); err != nil {
		return Result{}, err
	}

	var symbols []Symbol
	for len(symbols) < blksize && e.lookahead.Len() > 0 {
		if length, distance := e.bestMatch(); length >= MinMatch {
			symbols = append(symbols, Symbol{Kind: Pointer, Length: length, Distance: distance})
			e.shift(length)
		} else {
			symbols = append(symbols, Symbol{Kind: Literal, Lit: e.lookahead.At(0)})
			e.shift(1)
		}

		if e.lookahead.Len() < MaxLookahead && !e.eof {
			if err := e.refillLookahead(); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{Symbols: symbols, Last: e.eof && e.lookahead.Len() == 0}, nil
}
