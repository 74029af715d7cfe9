// Package zwrap takes an open file and, if it is gzipped, wraps it so
// Read goes through the decompressor and Close shuts both the
// decompressor and the file.

package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
)

var gzMagic = []byte{0x1f, 0x8b}

// Rdr is what we hand back
type Rdr struct {
	src  io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying source.
func (r *Rdr) Close() error {
	if r.zrdr == nil {
		return r.src.Close()
	}
	var s string
	if e := r.zrdr.Close(); e != nil {
		s = e.Error()
	}
	if e := r.src.Close(); e != nil {
		s = s + " " + e.Error()
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}

// Read goes to the decompressor if there is one.
func (r *Rdr) Read(p []byte) (int, error) {
	if r.zrdr != nil {
		return r.zrdr.Read(p)
	}
	return r.src.Read(p)
}

// Gzipped says if the wrapped source is being decompressed
func (r *Rdr) Gzipped() bool { return r.zrdr != nil }

// Wrap puts a gzip reader around src. The error from gzip is passed back.
func Wrap(src io.ReadCloser) (*Rdr, error) {
	z, err := gzip.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &Rdr{src: src, zrdr: z}, nil
}

// Sniff looks at the first two bytes and rewinds.
func Sniff(rs io.ReadSeeker) (bool, error) {
	var magic [2]byte
	n, err := io.ReadFull(rs, magic[:])
	if _, e2 := rs.Seek(0, io.SeekStart); e2 != nil {
		return false, e2
	}
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return n == 2 && bytes.Equal(magic[:], gzMagic), nil
}

// ReadSeekCloser is what a file gives us
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe decompresses if the source looks gzipped and otherwise passes
// reads straight through. You lose the ability to seek.
func WrapMaybe(src ReadSeekCloser) (*Rdr, error) {
	gz, err := Sniff(src)
	if err != nil {
		return nil, err
	}
	if gz {
		return Wrap(src)
	}
	return &Rdr{src: src}, nil
}
