// 19 Oct 2026

package layer

import (
	"math/bits"
	"strings"
)

// set of stem indices as a bitmap. Values are never shared, every
// operation returns a fresh copy.
type set []uint64

func newSet(n int) set { return make(set, (n+63)/64) }

// fullSet has 0..n-1
func fullSet(n int) set {
	s := newSet(n)
	for i := 0; i < n; i++ {
		s[i/64] |= 1 << (i % 64)
	}
	return s
}

func (s set) has(i int) bool { return s[i/64]&(1<<(i%64)) != 0 }

func (s set) with(i int) set {
	r := append(set(nil), s...)
	r[i/64] |= 1 << (i % 64)
	return r
}

func (s set) without(i int) set {
	r := append(set(nil), s...)
	r[i/64] &^= 1 << (i % 64)
	return r
}

// minus removes everything in o
func (s set) minus(o set) set {
	r := append(set(nil), s...)
	for i := range r {
		r[i] &^= o[i]
	}
	return r
}

func (s set) count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s set) empty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// first is the smallest member, -1 if empty
func (s set) first() int {
	for i, w := range s {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// list of members, ascending
func (s set) list() []int {
	var ret []int
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			ret = append(ret, i*64+b)
			w &^= 1 << b
		}
	}
	return ret
}

// key for the memo map
func (s set) key() string {
	var b strings.Builder
	for _, w := range s {
		for k := 0; k < 8; k++ {
			b.WriteByte(byte(w >> (8 * k)))
		}
	}
	return b.String()
}
