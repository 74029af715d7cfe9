// 19 Oct 2026

// Package loop finds linkers, the single stranded runs between stem
// ends, and merges them into loops.
// A linker is found by walking from a stem end along the chain until we
// hit another stem or run off the end of the chain. Stems which are
// pseudoknotted relative to where we started are walked over, so their
// residues end up in the linker too.
package loop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// StemConnection says where a linker touches a stem. It is only a
// reference, the stem lives in the Stems module.
type StemConnection struct {
	Stem int // index into the stem slice, -1 for a chain end
	End  stem.End
	Side stem.Side
}

// None is the connection of a linker running off the end of a chain
var None = StemConnection{Stem: -1}

// IsNone is true for a chain end
func (c StemConnection) IsNone() bool { return c.Stem < 0 }

// Connects is true if both touch the same pair of the same stem. Chain
// ends never connect.
func (c StemConnection) Connects(o StemConnection) bool {
	return !c.IsNone() && c.Stem == o.Stem && c.Side == o.Side
}

// compare gives -1, 0, 1 for ordering
func (c StemConnection) compare(o StemConnection) int {
	switch {
	case c.Stem != o.Stem:
		return cmpInt(c.Stem, o.Stem)
	case c.End != o.End:
		return cmpInt(int(c.End), int(o.End))
	}
	return 0
}

func (c StemConnection) String() string {
	if c.IsNone() {
		return "chain end"
	}
	return fmt.Sprintf("stem %d %v (%v)", c.Stem, c.End, c.Side)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// connect makes the connection for stem si at end e
func connect(stems []stem.Stem, si int, e stem.End) StemConnection {
	return StemConnection{Stem: si, End: e, Side: stems[si].Side(e)}
}

// Linker is a run of residues, 5' to 3'. Start is the connection on the
// 5' side. A linker between two stems may be empty.
type Linker struct {
	Residues []int
	Start    StemConnection
	End      StemConnection
}

// Len is the number of residues
func (l *Linker) Len() int { return len(l.Residues) }

// Open is true if one side is a chain end
func (l *Linker) Open() bool { return l.Start.IsNone() || l.End.IsNone() }

// Connects is true if the linkers share a connection
func (l *Linker) Connects(o *Linker) bool {
	for _, a := range [2]StemConnection{l.Start, l.End} {
		for _, b := range [2]StemConnection{o.Start, o.End} {
			if a.Connects(b) {
				return true
			}
		}
	}
	return false
}

// Compare orders by connections then residues.
func (l *Linker) Compare(o *Linker) int {
	if c := l.Start.compare(o.Start); c != 0 {
		return c
	}
	if c := l.End.compare(o.End); c != 0 {
		return c
	}
	for i := 0; i < len(l.Residues) && i < len(o.Residues); i++ {
		if c := cmpInt(l.Residues[i], o.Residues[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(l.Residues), len(o.Residues))
}

// Text gives the residue range using residue names
func (l *Linker) Text(g *graph.Graph) string {
	var b strings.Builder
	switch len(l.Residues) {
	case 0:
		b.WriteString("empty")
	case 1:
		b.WriteString(g.ID(l.Residues[0]).String())
	default:
		fmt.Fprintf(&b, "%v-%v", g.ID(l.Residues[0]), g.ID(l.Residues[len(l.Residues)-1]))
	}
	fmt.Fprintf(&b, " (%d) from %v to %v", len(l.Residues), l.Start, l.End)
	return b.String()
}

// owners maps each residue to the stems it belongs to, in stem order
func owners(stems []stem.Stem) map[int][]int {
	ret := make(map[int][]int)
	for si := range stems {
		for _, r := range stems[si].Residues() {
			ret[r] = append(ret[r], si)
		}
	}
	return ret
}

// walk from end e of stem si. Front ends walk 5', back ends walk 3'.
func walk(g *graph.Graph, stems []stem.Stem, own map[int][]int, si int, e stem.End) Linker {
	origin := connect(stems, si, e)
	walk3p := !e.Front()
	s := &stems[si]
	var res []int
	other := None
	for cur := s.Residue(e); ; {
		var nxt int
		var ok bool
		if walk3p {
			nxt, ok = g.Next(cur)
		} else {
			nxt, ok = g.Prev(cur)
		}
		if !ok {
			break
		}
		stop := false
		for _, sj := range own[nxt] {
			if sj != si && stem.Pseudoknotted(s, &stems[sj]) {
				continue
			}
			end, _ := stems[sj].EndAt(nxt, walk3p)
			other = connect(stems, sj, end)
			stop = true
			break
		}
		if stop {
			break
		}
		res = append(res, nxt)
		cur = nxt
	}
	if walk3p {
		return Linker{Residues: res, Start: origin, End: other}
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return Linker{Residues: res, Start: other, End: origin}
}

// Find walks from all four ends of every stem. The result is sorted and
// has no duplicates. Empty linkers running into a chain end are dropped,
// empty linkers between two stems are kept.
func Find(g *graph.Graph, stems []stem.Stem) []Linker {
	own := owners(stems)
	var all []Linker
	for si := range stems {
		for _, e := range stem.Ends {
			l := walk(g, stems, own, si, e)
			if l.Open() && l.Len() == 0 {
				continue
			}
			all = append(all, l)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Compare(&all[j]) < 0 })
	ret := all[:0]
	for i := range all {
		if len(ret) > 0 && ret[len(ret)-1].Compare(&all[i]) == 0 {
			continue
		}
		ret = append(ret, all[i])
	}
	return ret
}
