// 19 Oct 2026

package loop

import (
	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// What is the kind of structure in a Ref
type What byte

const (
	InStem What = iota
	InLoop
)

// Ref names a stem or loop by its index
type Ref struct {
	What  What
	Index int
}

// Membership maps residues to the structures they belong to. A loop
// also owns the stem end residues that close it.
type Membership map[int][]Ref

func (m Membership) add(i int, r Ref) {
	for _, old := range m[i] {
		if old == r {
			return
		}
	}
	m[i] = append(m[i], r)
}

// NewMembership fills the map from stems and loops
func NewMembership(stems []stem.Stem, loops []Loop) Membership {
	m := make(Membership)
	for si := range stems {
		for _, r := range stems[si].Residues() {
			m.add(r, Ref{InStem, si})
		}
	}
	for li := range loops {
		ref := Ref{InLoop, li}
		for _, r := range loops[li].Residues() {
			m.add(r, ref)
		}
		for _, c := range loops[li].Connections() {
			m.add(stems[c.Stem].Residue(c.End), ref)
		}
	}
	return m
}

// Share is true if residues i and j have a stem or loop in common
func (m Membership) Share(i, j int) bool {
	for _, a := range m[i] {
		for _, b := range m[j] {
			if a == b {
				return true
			}
		}
	}
	return false
}

// Check counts the primary elements each residue belongs to. That is
// stem strands and linker residues. Every residue in a chain with a stem
// should have exactly one. Chains without stems are not checked.
func Check(g *graph.Graph, stems []stem.Stem, linkers []Linker) []error {
	count := make(map[int]int)
	for si := range stems {
		for _, r := range stems[si].Residues() {
			count[r]++
		}
	}
	for _, lk := range linkers {
		for _, r := range lk.Residues {
			count[r]++
		}
	}
	var ret []error
	for _, ch := range g.Chains() {
		hasStem := false
		for i := ch.Lo; i < ch.Hi && !hasStem; i++ {
			for si := range stems {
				if stems[si].Contains(i) {
					hasStem = true
					break
				}
			}
		}
		if !hasStem {
			continue
		}
		for i := ch.Lo; i < ch.Hi; i++ {
			if count[i] != 1 {
				ret = append(ret, &annot.StructureInconsistency{Res: g.ID(i), N: count[i]})
			}
		}
	}
	return ret
}
