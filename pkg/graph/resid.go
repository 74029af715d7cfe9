// 19 Oct 2026

package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// ResID identifies a residue by chain, sequence number and an optional
// insertion code. A zero insertion code means there is none and sorts
// before any letter.
type ResID struct {
	Chain string
	Num   int
	Ins   byte
}

// Compare returns -1, 0 or 1. Chain first, then number, then insertion code.
func (r ResID) Compare(o ResID) int {
	switch {
	case r.Chain < o.Chain:
		return -1
	case r.Chain > o.Chain:
		return 1
	case r.Num < o.Num:
		return -1
	case r.Num > o.Num:
		return 1
	case r.Ins < o.Ins:
		return -1
	case r.Ins > o.Ins:
		return 1
	}
	return 0
}

// Less is Compare for sort functions
func (r ResID) Less(o ResID) bool { return r.Compare(o) < 0 }

// nextIns gives the insertion code that follows c. No code is followed by 'A'.
func nextIns(c byte) byte {
	if c == 0 || c == ' ' {
		return 'A'
	}
	return c + 1
}

// Contiguous says if o directly follows r in the same chain.
// 12 is followed by 13 or by 12A. 12A is followed by 12B or 13.
func (r ResID) Contiguous(o ResID) bool {
	if r.Chain != o.Chain {
		return false
	}
	if o.Num == r.Num+1 && (o.Ins == 0 || o.Ins == ' ') {
		return true
	}
	return o.Num == r.Num && o.Ins == nextIns(r.Ins)
}

// String gives the short form, like A12 or A12B.
func (r ResID) String() string {
	s := r.Chain + strconv.Itoa(r.Num)
	if r.Ins != 0 && r.Ins != ' ' {
		s += string(r.Ins)
	}
	return s
}

// Text gives the form used in graph files, like A:12 or A:12B.
func (r ResID) Text() string {
	s := r.Chain + ":" + strconv.Itoa(r.Num)
	if r.Ins != 0 && r.Ins != ' ' {
		s += string(r.Ins)
	}
	return s
}

// ParseResID reads the chain:number[insertion] form.
func ParseResID(s string) (ResID, error) {
	var r ResID
	i := strings.LastIndexByte(s, ':')
	if i == -1 {
		return r, fmt.Errorf("residue %q: no chain separator", s)
	}
	r.Chain = s[:i]
	num := s[i+1:]
	j := len(num)
	if j > 0 && (num[j-1] < '0' || num[j-1] > '9') {
		r.Ins = num[j-1]
		num = num[:j-1]
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return r, fmt.Errorf("residue %q: %w", s, err)
	}
	r.Num = n
	return r, nil
}
