// 19 Oct 2026

// Package graph holds residues and their classified pairwise interactions.
// The classification (pairing, stacking, adjacency, faces) is done
// elsewhere, from coordinates. Here we only store the results and give
// the annotation code a way to walk over them.
// A graph is built with AddResidue, AddEdge and AddCycle, then Finish()
// puts the residues in order. Indices handed out after Finish() follow
// residue order, so a smaller index always means a smaller ResID.
package graph

import (
	"errors"
	"fmt"
	"sort"
)

// Flag says what kind of interaction an edge carries. An edge can carry
// more than one.
type Flag uint8

const (
	Pairing Flag = 1 << iota
	Stacking
	Adjacent
	Backbone
)

// AllFlags is every interaction type
const AllFlags = Pairing | Stacking | Adjacent | Backbone

// Face is a nucleotide edge name like W, Ww, Ws, Hh, S, Bs ...
type Face string

// Watson is true for any face on the Watson-Crick edge.
func (f Face) Watson() bool { return len(f) > 0 && f[0] == 'W' }

// StrictWatson is true for the pure Watson-Crick face.
func (f Face) StrictWatson() bool { return f == "W" || f == "Ww" }

// Edge holds the interactions between two residues. Face1 belongs to
// the residue with the smaller ResID.
type Edge struct {
	Flags    Flag
	Face1    Face
	Face2    Face
	Cis      bool // base pair orientation, cis or trans
	Parallel bool // strand direction of the pair
	Rev      bool // adjacency runs from the higher residue to the lower
}

// Is says if an edge carries all of flags f
func (e *Edge) Is(f Flag) bool { return e.Flags&f == f }

// Residue is a node of the graph
type Residue struct {
	ID   ResID
	Type byte // A, C, G, U or N
}

type pending struct {
	a, b ResID
	e    Edge
}

// Graph is the interaction graph of one model.
type Graph struct {
	Name    string
	Model   int
	res     []Residue
	index   map[ResID]int
	edges   map[[2]int]*Edge
	keys    [][2]int
	cycles  [][]int
	pend    []pending
	pendCyc [][]ResID
	done    bool
}

// New returns an empty graph ready for building.
func New(name string, model int) *Graph {
	return &Graph{
		Name:  name,
		Model: model,
		index: make(map[ResID]int),
		edges: make(map[[2]int]*Edge),
	}
}

// normType maps residue names to one letter. Modified bases become N.
func normType(c byte) byte {
	switch c {
	case 'A', 'C', 'G', 'U':
		return c
	case 'a', 'c', 'g', 'u':
		return c - ('a' - 'A')
	case 'T', 't':
		return 'U'
	}
	return 'N'
}

// AddResidue adds a residue. Adding the same one twice is an error.
func (g *Graph) AddResidue(id ResID, typ byte) error {
	if g.done {
		return errors.New("graph already finished")
	}
	if _, ok := g.index[id]; ok {
		return fmt.Errorf("residue %v added twice", id)
	}
	g.index[id] = len(g.res)
	g.res = append(g.res, Residue{ID: id, Type: normType(typ)})
	return nil
}

// AddEdge adds interactions between two known residues. Faces are given
// in the order of the arguments and swapped if necessary. Calling it
// again for the same residues merges the flags.
func (g *Graph) AddEdge(a, b ResID, e Edge) error {
	if g.done {
		return errors.New("graph already finished")
	}
	for _, id := range []ResID{a, b} {
		if _, ok := g.index[id]; !ok {
			return fmt.Errorf("edge uses unknown residue %v", id)
		}
	}
	switch c := a.Compare(b); {
	case c == 0:
		return fmt.Errorf("edge from %v to itself", a)
	case c > 0:
		a, b = b, a
		e.Face1, e.Face2 = e.Face2, e.Face1
		if e.Flags&Adjacent != 0 {
			e.Rev = !e.Rev
		}
	}
	g.pend = append(g.pend, pending{a, b, e})
	return nil
}

// AddCycle stores one cycle of the minimum cycle basis, residues in
// ring order.
func (g *Graph) AddCycle(ids ...ResID) error {
	if g.done {
		return errors.New("graph already finished")
	}
	if len(ids) < 3 {
		return fmt.Errorf("cycle of %d residues", len(ids))
	}
	for _, id := range ids {
		if _, ok := g.index[id]; !ok {
			return fmt.Errorf("cycle uses unknown residue %v", id)
		}
	}
	g.pendCyc = append(g.pendCyc, ids)
	return nil
}

// merge puts the interactions of e into old
func merge(old *Edge, e Edge) {
	if e.Flags&Pairing != 0 {
		old.Face1, old.Face2 = e.Face1, e.Face2
		old.Cis, old.Parallel = e.Cis, e.Parallel
	}
	if e.Flags&Adjacent != 0 {
		old.Rev = e.Rev
	}
	old.Flags |= e.Flags
}

// Finish sorts residues, assigns final indices and builds the edge table.
func (g *Graph) Finish() error {
	if g.done {
		return nil
	}
	sort.SliceStable(g.res, func(i, j int) bool { return g.res[i].ID.Less(g.res[j].ID) })
	for i, r := range g.res {
		g.index[r.ID] = i
	}
	for _, p := range g.pend {
		k := [2]int{g.index[p.a], g.index[p.b]}
		if old, ok := g.edges[k]; ok {
			merge(old, p.e)
			continue
		}
		e := p.e
		g.edges[k] = &e
	}
	g.keys = make([][2]int, 0, len(g.edges))
	for k := range g.edges {
		g.keys = append(g.keys, k)
	}
	sort.Slice(g.keys, func(i, j int) bool {
		if g.keys[i][0] != g.keys[j][0] {
			return g.keys[i][0] < g.keys[j][0]
		}
		return g.keys[i][1] < g.keys[j][1]
	})
	for _, ids := range g.pendCyc {
		c := make([]int, len(ids))
		for i, id := range ids {
			c[i] = g.index[id]
		}
		g.cycles = append(g.cycles, c)
	}
	g.pend, g.pendCyc = nil, nil
	g.done = true
	return nil
}

// Len is the number of residues
func (g *Graph) Len() int { return len(g.res) }

// Res returns residue i
func (g *Graph) Res(i int) Residue { return g.res[i] }

// ID returns the ResID of residue i
func (g *Graph) ID(i int) ResID { return g.res[i].ID }

// Index finds a residue
func (g *Graph) Index(id ResID) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Edge looks up the edge between i and j in either order.
func (g *Graph) Edge(i, j int) (*Edge, bool) {
	if i > j {
		i, j = j, i
	}
	e, ok := g.edges[[2]int{i, j}]
	return e, ok
}

// Edges returns node pairs with lower index first, sorted.
func (g *Graph) Edges() [][2]int { return g.keys }

// Cycles returns the minimum cycle basis
func (g *Graph) Cycles() [][]int { return g.cycles }

// Next is the following residue in the same chain.
func (g *Graph) Next(i int) (int, bool) {
	if i+1 < len(g.res) && g.res[i+1].ID.Chain == g.res[i].ID.Chain {
		return i + 1, true
	}
	return -1, false
}

// Prev is the preceding residue in the same chain.
func (g *Graph) Prev(i int) (int, bool) {
	if i > 0 && g.res[i-1].ID.Chain == g.res[i].ID.Chain {
		return i - 1, true
	}
	return -1, false
}

// Chain is a run of residues [Lo, Hi) with the same chain name
type Chain struct {
	Name   string
	Lo, Hi int
}

// Chains returns the chains in residue order
func (g *Graph) Chains() []Chain {
	var ret []Chain
	for i, r := range g.res {
		if i == 0 || r.ID.Chain != g.res[i-1].ID.Chain {
			ret = append(ret, Chain{Name: r.ID.Chain, Lo: i})
		}
		ret[len(ret)-1].Hi = i + 1
	}
	return ret
}

// SameChain says if residues i and j are in one chain
func (g *Graph) SameChain(i, j int) bool { return g.res[i].ID.Chain == g.res[j].ID.Chain }
