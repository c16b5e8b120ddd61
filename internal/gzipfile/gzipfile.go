// Package gzipfile wraps an internal/deflate stream in a single RFC
// 1952 gzip member: the ten-byte header (magic, CM, FLG, MTIME, XFL,
// OS), an optional FNAME, the DEFLATE payload, and the CRC32/ISIZE
// trailer.
package gzipfile

import (
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"
	"time"

	"github.com/gzipkit/gzipkit/internal/deflate"
)

const (
	magic1 = 0x1f
	magic2 = 0x8b

	cmDeflate = 8

	flgFName = 1 << 3

	osUnix = 3
)

// hashingCounter feeds every byte it sees into a CRC32 hash while
// tallying the total byte count, so the trailer's CRC32 and ISIZE are
// accumulated as the stream passes through.
type hashingCounter struct {
	h hash.Hash32
	n uint32
}

func (c *hashingCounter) Write(p []byte) (int, error) {
	c.h.Write(p)
	c.n += uint32(len(p))
	return len(p), nil
}

// WriteMember compresses r with internal/deflate and writes it to w as
// one complete gzip member. name is stored in the optional FNAME field
// when non-empty; modTime becomes the header's MTIME (truncated to
// whole seconds, as RFC 1952 §2.3.1 requires, 0 meaning "not
// available" when the zero time.Time is passed).
func WriteMember(w io.Writer, name string, modTime time.Time, r io.Reader) error {
	hc := &hashingCounter{h: crc32.NewIEEE()}
	payload, err := deflate.Encode(io.TeeReader(r, hc), deflate.DefaultBlockSize)
	if err != nil {
		return err
	}

	flg := byte(0)
	if name != "" {
		flg |= flgFName
	}
	var mtime uint32
	if !modTime.IsZero() {
		mtime = uint32(modTime.Unix())
	}

	header := make([]byte, 10)
	header[0] = magic1
	header[1] = magic2
	header[2] = cmDeflate
	header[3] = flg
	binary.LittleEndian.PutUint32(header[4:8], mtime)
	header[8] = 0 // XFL: no compression-level hint
	header[9] = osUnix
	if _, err := w.Write(header); err != nil {
		return err
	}

	if name != "" {
		if _, err := io.WriteString(w, name); err != nil {
			return err
		}
		if _, err := w.Write([]byte{0}); err != nil {
			return err
		}
	}

	if _, err := w.Write(payload); err != nil {
		return err
	}

	trailer := make([]byte, 8)
	binary.LittleEndian.PutUint32(trailer[0:4], hc.h.Sum32())
	binary.LittleEndian.PutUint32(trailer[4:8], hc.n)
	_, err = w.Write(trailer)
	return err
}
