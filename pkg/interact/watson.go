// 19 Oct 2026
// Pick the Watson-Crick pairs. This is a local choice, made while walking
// over pairs in sorted order. It is not a global optimum and a different
// order could give a different answer.

package interact

import (
	"github.com/andrew-torda/rnaannot/pkg/graph"
)

// strength of a Watson-Crick candidate
type strength byte

const (
	notWC strength = iota
	relaxed
	strict
)

// compatible is G-C, A-U or G-U in either order
func compatible(a, b byte) bool {
	switch string([]byte{a, b}) {
	case "GC", "CG", "AU", "UA", "GU", "UG":
		return true
	}
	return false
}

// classify decides if a pair is a Watson-Crick candidate and how good.
// Both need cis and antiparallel. Strict wants both faces pure Watson
// and a compatible base combination. Relaxed is happy with one face on
// the Watson edge and also lets identical bases through.
func classify(g *graph.Graph, p BasePair) strength {
	e := p.Edge(g)
	if e == nil || !e.Cis || e.Parallel {
		return notWC
	}
	ta, tb := g.Res(p.A.Index).Type, g.Res(p.B.Index).Type
	comp := compatible(ta, tb)
	if comp && e.Face1.StrictWatson() && e.Face2.StrictWatson() {
		return strict
	}
	same := ta == tb && ta != 'N'
	if (comp || same) && (e.Face1.Watson() || e.Face2.Watson()) {
		return relaxed
	}
	return notWC
}

type candidate struct {
	p BasePair
	s strength
}

// WatsonCrick returns the canonical pairs, sorted. pairs must be sorted.
// A residue keeps one partner. A strict candidate replaces relaxed
// partners of either of its residues. Otherwise whoever came first stays.
func WatsonCrick(g *graph.Graph, pairs []BasePair) []BasePair {
	var cands []candidate
	for _, p := range pairs {
		if s := classify(g, p); s != notWC {
			cands = append(cands, candidate{p, s})
		}
	}
	alive := make([]bool, len(cands))
	chosen := make(map[int]int) // residue to slot in cands
	for ci, c := range cands {
		ok := true
		var rivals []int
		for _, r := range []int{c.p.A.Index, c.p.B.Index} {
			oi, taken := chosen[r]
			if !taken {
				continue
			}
			if cands[oi].s == strict || c.s != strict {
				ok = false
				break
			}
			rivals = append(rivals, oi)
		}
		if !ok {
			continue
		}
		for _, oi := range rivals {
			alive[oi] = false
			delete(chosen, cands[oi].p.A.Index)
			delete(chosen, cands[oi].p.B.Index)
		}
		alive[ci] = true
		chosen[c.p.A.Index] = ci
		chosen[c.p.B.Index] = ci
	}
	var ret []BasePair
	for ci, c := range cands {
		if alive[ci] {
			ret = append(ret, c.p)
		}
	}
	return ret
}
