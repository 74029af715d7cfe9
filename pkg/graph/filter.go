// 19 Oct 2026

package graph

import (
	"fmt"
	"strings"
)

// ParseMask turns interaction letters into flags.
// a adjacency, s stacking, p pairing, b backbone. An empty string
// means everything.
func ParseMask(s string) (Flag, error) {
	if s == "" {
		return AllFlags, nil
	}
	var f Flag
	for _, c := range strings.ToLower(s) {
		switch c {
		case 'a':
			f |= Adjacent
		case 's':
			f |= Stacking
		case 'p':
			f |= Pairing
		case 'b':
			f |= Backbone
		default:
			return 0, fmt.Errorf("interaction mask %q: unknown letter %c", s, c)
		}
	}
	return f, nil
}

// Filter returns a new finished graph with only the residues in chains
// (all of them if chains is empty) and only the interactions in mask.
// A cycle survives if all its residues do.
func (g *Graph) Filter(chains []string, mask Flag) (*Graph, error) {
	keep := func(r Residue) bool {
		if len(chains) == 0 {
			return true
		}
		for _, c := range chains {
			if r.ID.Chain == c {
				return true
			}
		}
		return false
	}
	h := New(g.Name, g.Model)
	for _, r := range g.res {
		if keep(r) {
			if err := h.AddResidue(r.ID, r.Type); err != nil {
				return nil, err
			}
		}
	}
	for _, k := range g.keys {
		e := *g.edges[k]
		e.Flags &= mask
		if e.Flags == 0 {
			continue
		}
		a, b := g.res[k[0]], g.res[k[1]]
		if !keep(a) || !keep(b) {
			continue
		}
		if err := h.AddEdge(a.ID, b.ID, e); err != nil {
			return nil, err
		}
	}
outer:
	for _, c := range g.cycles {
		ids := make([]ResID, len(c))
		for i, n := range c {
			if !keep(g.res[n]) {
				continue outer
			}
			ids[i] = g.res[n].ID
		}
		if err := h.AddCycle(ids...); err != nil {
			return nil, err
		}
	}
	return h, h.Finish()
}
