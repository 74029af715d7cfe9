// 19 Oct 2026

package loop

import (
	"sort"

	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// Loop is one or more linkers joined at stem ends.
type Loop struct {
	Linkers []Linker
	Desc    string // hairpin, bulge, internal, multibranch or open
}

const (
	Hairpin     = "hairpin"
	Bulge       = "bulge"
	Internal    = "internal"
	Multibranch = "multibranch"
	Opened      = "open"
)

// Connects is true if any linker of one connects to any linker of the other
func (l *Loop) Connects(o *Loop) bool {
	for i := range l.Linkers {
		for j := range o.Linkers {
			if l.Linkers[i].Connects(&o.Linkers[j]) {
				return true
			}
		}
	}
	return false
}

type stemSide struct {
	stem int
	side stem.Side
}

// Closed is true if the linkers make a ring. Every stem pair we touch
// must be touched exactly twice and nothing runs off a chain end.
func (l *Loop) Closed() bool {
	n := make(map[stemSide]int)
	for _, lk := range l.Linkers {
		if lk.Open() {
			return false
		}
		n[stemSide{lk.Start.Stem, lk.Start.Side}]++
		n[stemSide{lk.End.Stem, lk.End.Side}]++
	}
	for _, c := range n {
		if c != 2 {
			return false
		}
	}
	return len(n) > 0
}

// Len is the number of residues in all linkers
func (l *Loop) Len() int {
	n := 0
	for i := range l.Linkers {
		n += l.Linkers[i].Len()
	}
	return n
}

// Residues of all linkers, sorted
func (l *Loop) Residues() []int {
	var ret []int
	for _, lk := range l.Linkers {
		ret = append(ret, lk.Residues...)
	}
	sort.Ints(ret)
	return ret
}

// Connections lists the stem ends closing the loop. Chain ends are left out.
func (l *Loop) Connections() []StemConnection {
	var ret []StemConnection
	for _, lk := range l.Linkers {
		for _, c := range [2]StemConnection{lk.Start, lk.End} {
			if !c.IsNone() {
				ret = append(ret, c)
			}
		}
	}
	return ret
}

// describe the shape from the number of linkers
func describe(l *Loop) string {
	if !l.Closed() {
		return Opened
	}
	switch len(l.Linkers) {
	case 1:
		return Hairpin
	case 2:
		if l.Linkers[0].Len() == 0 || l.Linkers[1].Len() == 0 {
			return Bulge
		}
		return Internal
	}
	return Multibranch
}

// mergeOnce joins the first pair of loops that connect. It says if
// anything happened.
func mergeOnce(loops []Loop) ([]Loop, bool) {
	for i := range loops {
		for j := i + 1; j < len(loops); j++ {
			if loops[i].Connects(&loops[j]) {
				loops[i].Linkers = append(loops[i].Linkers, loops[j].Linkers...)
				return append(loops[:j], loops[j+1:]...), true
			}
		}
	}
	return loops, false
}

// Merge starts with one loop per linker and joins loops until no two
// connect. Linkers within a loop keep their sorted order.
func Merge(linkers []Linker) []Loop {
	loops := make([]Loop, len(linkers))
	for i := range linkers {
		loops[i].Linkers = []Linker{linkers[i]}
	}
	for merged := true; merged; {
		loops, merged = mergeOnce(loops)
	}
	return Settle(loops)
}

// Settle sorts the linkers of each loop and sets the description. Running
// the merge again on settled loops changes nothing.
func Settle(loops []Loop) []Loop {
	for i := range loops {
		lk := loops[i].Linkers
		sort.SliceStable(lk, func(a, b int) bool { return lk[a].Compare(&lk[b]) < 0 })
		loops[i].Desc = describe(&loops[i])
	}
	return loops
}

// Remerge runs the merge again on finished loops.
func Remerge(loops []Loop) []Loop {
	ret := make([]Loop, len(loops))
	for i := range loops {
		ret[i].Linkers = append([]Linker(nil), loops[i].Linkers...)
	}
	for merged := true; merged; {
		ret, merged = mergeOnce(ret)
	}
	return Settle(ret)
}
