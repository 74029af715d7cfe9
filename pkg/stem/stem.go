// 19 Oct 2026

// Package stem groups Watson-Crick pairs into helices.
// A stem is a run of pairs where each pair continues the one before.
// Antiparallel: the first residue moves one step 3' while the second
// moves one step 5'. Parallel: both move 3'.
//
// Overlaps: two stems may share a residue. The base annotation does not
// resolve this. It is left to the conflict graph in package layer, which
// never puts two stems sharing a residue in the same layer. RemoveOverlaps
// is the looser variant for callers which want stems that do not
// share residues.
package stem

import (
	"fmt"
	"sort"

	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
)

// End names the four places a stem connects to the rest of the chain.
type End byte

const (
	FirstFront  End = iota // 5' end of the first strand
	FirstBack              // 3' end of the first strand
	SecondFront            // 5' end of the second strand
	SecondBack             // 3' end of the second strand
)

var endNames = [...]string{"first-front", "first-back", "second-front", "second-back"}

func (e End) String() string { return endNames[e] }

// Ends lists all four, handy for loops
var Ends = [4]End{FirstFront, FirstBack, SecondFront, SecondBack}

// Front says if walking away from this end goes 5'
func (e End) Front() bool { return e == FirstFront || e == SecondFront }

// Side says which terminal pair an end belongs to.
type Side byte

const (
	Outer Side = iota // the first pair
	Inner             // the last pair
)

func (s Side) String() string {
	if s == Outer {
		return "outer"
	}
	return "inner"
}

// Stem is a helix. Pairs are sorted by the first residue.
type Stem struct {
	Pairs    []interact.BasePair
	Parallel bool
}

// Len is the number of pairs
func (s *Stem) Len() int { return len(s.Pairs) }

// Residue gives the node index at an end.
func (s *Stem) Residue(e End) int {
	first, last := s.Pairs[0], s.Pairs[len(s.Pairs)-1]
	switch e {
	case FirstFront:
		return first.A.Index
	case FirstBack:
		return last.A.Index
	case SecondFront:
		if s.Parallel {
			return first.B.Index
		}
		return last.B.Index
	}
	if s.Parallel {
		return last.B.Index
	}
	return first.B.Index
}

// Side of an end. For an antiparallel stem the first strand's back and
// the second strand's front are closed by the last pair.
func (s *Stem) Side(e End) Side {
	switch e {
	case FirstFront:
		return Outer
	case FirstBack:
		return Inner
	case SecondFront:
		if s.Parallel {
			return Outer
		}
		return Inner
	}
	if s.Parallel {
		return Inner
	}
	return Outer
}

// Contains says if residue i is in one of the stem's strands
func (s *Stem) Contains(i int) bool {
	for _, p := range s.Pairs {
		if p.A.Index == i || p.B.Index == i {
			return true
		}
	}
	return false
}

// Residues returns all node indices, sorted
func (s *Stem) Residues() []int {
	ret := make([]int, 0, 2*len(s.Pairs))
	for _, p := range s.Pairs {
		ret = append(ret, p.A.Index, p.B.Index)
	}
	sort.Ints(ret)
	return ret
}

// Span is the smallest and largest residue index
func (s *Stem) Span() (lo, hi int) {
	lo, hi = s.Pairs[0].A.Index, s.Pairs[0].B.Index
	for _, p := range s.Pairs {
		if p.A.Index < lo {
			lo = p.A.Index
		}
		if p.B.Index > hi {
			hi = p.B.Index
		}
	}
	return lo, hi
}

// Strand says if residue i is on the first strand (true) or second.
func (s *Stem) Strand(i int) (first bool, ok bool) {
	for _, p := range s.Pairs {
		switch i {
		case p.A.Index:
			return true, true
		case p.B.Index:
			return false, true
		}
	}
	return false, false
}

// EndAt says which end we arrive at when walking into residue i. Walking
// 3' we meet a strand at its front, walking 5' at its back. If i is in
// the middle of a strand (overlapping stems) we still name the end of
// that strand we are heading in from.
func (s *Stem) EndAt(i int, walk3p bool) (End, bool) {
	first, ok := s.Strand(i)
	if !ok {
		return 0, false
	}
	switch {
	case first && walk3p:
		return FirstFront, true
	case first:
		return FirstBack, true
	case walk3p:
		return SecondFront, true
	}
	return SecondBack, true
}

func (s *Stem) String() string {
	dir := "antiparallel"
	if s.Parallel {
		dir = "parallel"
	}
	return fmt.Sprintf("%v-%v / %v-%v, %d pairs, %s",
		s.Pairs[0].A, s.Pairs[len(s.Pairs)-1].A,
		s.Pairs[0].B, s.Pairs[len(s.Pairs)-1].B, len(s.Pairs), dir)
}

// Continues says if next directly follows last in a stem of the given
// orientation.
func Continues(g *graph.Graph, last, next interact.BasePair, parallel bool) bool {
	a, ok := g.Next(last.A.Index)
	if !ok || a != next.A.Index {
		return false
	}
	var b int
	if parallel {
		b, ok = g.Next(last.B.Index)
	} else {
		b, ok = g.Prev(last.B.Index)
	}
	return ok && b == next.B.Index
}

// group walks the sorted pairs and appends each to the first stem it
// continues. A stem of one pair takes whichever orientation matches
// first, antiparallel before parallel.
func group(g *graph.Graph, pairs []interact.BasePair) []Stem {
	var stems []Stem
	for _, p := range pairs {
		placed := false
		for i := range stems {
			s := &stems[i]
			last := s.Pairs[len(s.Pairs)-1]
			if len(s.Pairs) == 1 {
				if Continues(g, last, p, false) {
					s.Parallel = false
				} else if Continues(g, last, p, true) {
					s.Parallel = true
				} else {
					continue
				}
			} else if !Continues(g, last, p, s.Parallel) {
				continue
			}
			s.Pairs = append(s.Pairs, p)
			placed = true
			break
		}
		if !placed {
			stems = append(stems, Stem{Pairs: []interact.BasePair{p}})
		}
	}
	return stems
}

// Build makes stems of at least two pairs. pairs must be sorted.
// Stems may share residues here. Nothing removes the overlap; layering
// treats it as a conflict. BuildLoose resolves it instead.
func Build(g *graph.Graph, pairs []interact.BasePair) []Stem {
	all := group(g, pairs)
	ret := all[:0]
	for _, s := range all {
		if s.Len() >= 2 {
			ret = append(ret, s)
		}
	}
	return ret
}

// BuildLoose keeps lone pairs as stems of one and then removes overlaps.
func BuildLoose(g *graph.Graph, pairs []interact.BasePair) []Stem {
	return RemoveOverlaps(g, group(g, pairs), 1)
}

// Pseudoknotted says if the arcs of two stems cross.
func Pseudoknotted(a, b *Stem) bool {
	alo, ahi := a.Span()
	blo, bhi := b.Span()
	return (alo < blo && blo < ahi && ahi < bhi) || (blo < alo && alo < bhi && bhi < ahi)
}

// Overlaps says if two stems share a residue
func Overlaps(a, b *Stem) bool {
	for _, p := range a.Pairs {
		if b.Contains(p.A.Index) || b.Contains(p.B.Index) {
			return true
		}
	}
	return false
}

// RemoveOverlaps gives residues to bigger stems first. A smaller stem
// loses the pairs that touch residues already taken and what is left is
// split into runs. Runs shorter than minLen are dropped.
func RemoveOverlaps(g *graph.Graph, stems []Stem, minLen int) []Stem {
	order := make([]int, len(stems))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return stems[order[i]].Len() > stems[order[j]].Len() })
	used := make(map[int]bool)
	var ret []Stem
	for _, i := range order {
		s := stems[i]
		var run []interact.BasePair
		flush := func() {
			if len(run) >= minLen {
				ret = append(ret, Stem{Pairs: run, Parallel: s.Parallel})
				for _, q := range run {
					used[q.A.Index], used[q.B.Index] = true, true
				}
			}
			run = nil
		}
		for _, p := range s.Pairs {
			if used[p.A.Index] || used[p.B.Index] {
				flush()
				continue
			}
			if len(run) > 0 && !Continues(g, run[len(run)-1], p, s.Parallel) {
				flush()
			}
			run = append(run, p)
		}
		flush()
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Pairs[0].Less(ret[j].Pairs[0]) })
	return ret
}
