// brokenio wraps an io.ReadCloser and makes reads fail on purpose.
// Typical use in a test:
//   rdr := brokenio.NewReader(io.NopCloser(strings.NewReader(s)))
//   rdr.SetFailAfter(100)
// and then check the code reading from rdr passes the error back.
// Probabilities are fractions, so 0.05 means 5 % of calls.

package brokenio

import (
	"errors"
	"io"
	"math/rand"
)

// ErrBroken is what a deliberately failed read returns
var ErrBroken = errors.New("brokenio: deliberate read failure")

// Rdr is the wrapping reader
type Rdr struct {
	orig      io.ReadCloser
	probFail  float32 // chance of a failure on any read
	probEmpty float32 // chance of looking like a zero length file
	failAfter int     // fail once this many bytes went through, if > 0
	rnd       *rand.Rand
	nCalled   int
	nByte     int
}

// NewReader returns a reader which behaves like rIn until told otherwise.
// The seed makes failures reproducible.
func NewReader(rIn io.ReadCloser) *Rdr {
	return &Rdr{orig: rIn, rnd: rand.New(rand.NewSource(1))}
}

// SetProbFail sets the probability of a failed read. Not checked.
func (r *Rdr) SetProbFail(p float32) { r.probFail = p }

// SetProbEmpty sets the probability that the first read returns EOF.
func (r *Rdr) SetProbEmpty(p float32) { r.probEmpty = p }

// SetFailAfter makes every read fail once n bytes have been passed on.
func (r *Rdr) SetFailAfter(n int) { r.failAfter = n }

// NByte is how much data has gone through
func (r *Rdr) NByte() int { return r.nByte }

// Read passes on the original read, then maybe breaks it.
func (r *Rdr) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probEmpty > 0 && r.rnd.Float32() < r.probEmpty {
		r.nCalled++
		return 0, io.EOF
	}
	r.nCalled++
	if r.failAfter > 0 && r.nByte >= r.failAfter {
		return 0, ErrBroken
	}
	if r.failAfter > 0 && len(p) > r.failAfter-r.nByte {
		p = p[:r.failAfter-r.nByte] // stop exactly at the limit
	}
	n, err := r.orig.Read(p)
	r.nByte += n
	if r.probFail > 0 && r.rnd.Float32() < r.probFail {
		return n / 2, ErrBroken
	}
	return n, err
}

// Close closes the original
func (r *Rdr) Close() error { return r.orig.Close() }
