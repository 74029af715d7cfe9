// 19 Oct 2026

// Package interact turns graph edges into interaction records: base
// pairs, stacks and links along the backbone. Records are small values
// kept in sorted slices with a map from the residue pair to the slot,
// so nobody owns them and nothing has to be freed.
package interact

import (
	"sort"

	"github.com/andrew-torda/rnaannot/pkg/graph"
)

// Node is a graph node label together with its residue identifier
type Node struct {
	Index int
	ID    graph.ResID
}

func (n Node) String() string { return n.ID.String() }

// Key is a pair of node indices, smaller first. Since graph indices
// follow residue order, sorting keys sorts by residue identifiers.
type Key struct{ A, B int }

// MakeKey puts i and j in order
func MakeKey(i, j int) Key {
	if i > j {
		i, j = j, i
	}
	return Key{i, j}
}

// Less orders keys by first then second residue
func (k Key) Less(o Key) bool {
	if k.A != o.A {
		return k.A < o.A
	}
	return k.B < o.B
}

func node(g *graph.Graph, i int) Node { return Node{Index: i, ID: g.ID(i)} }

// BasePair has the smaller residue in A. Faces and orientation live on
// the graph edge, see Edge().
type BasePair struct{ A, B Node }

// BaseStack has the smaller residue in A
type BaseStack struct{ A, B Node }

// BaseLink runs 5' (A) to 3' (B)
type BaseLink struct{ A, B Node }

// Key of the pair, which only depends on the residues
func (p BasePair) Key() Key             { return Key{p.A.Index, p.B.Index} }
func (s BaseStack) Key() Key            { return Key{s.A.Index, s.B.Index} }
func (l BaseLink) Key() Key             { return MakeKey(l.A.Index, l.B.Index) }
func (p BasePair) Less(o BasePair) bool { return p.Key().Less(o.Key()) }

// Edge returns the graph edge holding faces and orientation
func (p BasePair) Edge(g *graph.Graph) *graph.Edge {
	e, _ := g.Edge(p.A.Index, p.B.Index)
	return e
}

func (p BasePair) String() string  { return p.A.String() + "-" + p.B.String() }
func (s BaseStack) String() string { return s.A.String() + "-" + s.B.String() }
func (l BaseLink) String() string  { return l.A.String() + "->" + l.B.String() }

// Records is the arena of all interactions of one graph.
type Records struct {
	Pairs    []BasePair
	Stacks   []BaseStack
	Links    []BaseLink
	pairNdx  map[Key]int
	stackNdx map[Key]int
	linkNdx  map[Key]int
}

// Build walks the graph edges in canonical order and makes a record for
// each kind of interaction an edge carries.
func Build(g *graph.Graph) *Records {
	r := &Records{
		pairNdx:  make(map[Key]int),
		stackNdx: make(map[Key]int),
		linkNdx:  make(map[Key]int),
	}
	for _, k := range g.Edges() {
		e, _ := g.Edge(k[0], k[1])
		a, b := node(g, k[0]), node(g, k[1])
		key := Key{k[0], k[1]}
		if e.Is(graph.Pairing) {
			r.pairNdx[key] = len(r.Pairs)
			r.Pairs = append(r.Pairs, BasePair{a, b})
		}
		if e.Is(graph.Stacking) {
			r.stackNdx[key] = len(r.Stacks)
			r.Stacks = append(r.Stacks, BaseStack{a, b})
		}
		if e.Is(graph.Adjacent) {
			if e.Rev {
				a, b = b, a
			}
			r.linkNdx[key] = len(r.Links)
			r.Links = append(r.Links, BaseLink{a, b})
		}
	}
	return r
}

// Pair looks up a base pair in either order
func (r *Records) Pair(i, j int) (BasePair, bool) {
	if n, ok := r.pairNdx[MakeKey(i, j)]; ok {
		return r.Pairs[n], true
	}
	return BasePair{}, false
}

// Stack looks up a stack in either order
func (r *Records) Stack(i, j int) (BaseStack, bool) {
	if n, ok := r.stackNdx[MakeKey(i, j)]; ok {
		return r.Stacks[n], true
	}
	return BaseStack{}, false
}

// Link looks up a link in either order
func (r *Records) Link(i, j int) (BaseLink, bool) {
	if n, ok := r.linkNdx[MakeKey(i, j)]; ok {
		return r.Links[n], true
	}
	return BaseLink{}, false
}

// HasInteraction is true if i and j pair, stack or are linked
func (r *Records) HasInteraction(k Key) bool {
	if _, ok := r.pairNdx[k]; ok {
		return true
	}
	if _, ok := r.stackNdx[k]; ok {
		return true
	}
	_, ok := r.linkNdx[k]
	return ok
}

// SortPairs sorts by residue identifiers
func SortPairs(p []BasePair) {
	sort.Slice(p, func(i, j int) bool { return p[i].Less(p[j]) })
}
