// 19 Oct 2026

package cycle

import (
	"fmt"
	"strings"

	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
)

// Cycle is one element of the minimum cycle basis. Residues are in
// ring order.
type Cycle struct {
	Residues    []int
	SingleChain bool
	Tertiary    bool
}

// Len is the number of residues
func (c *Cycle) Len() int { return len(c.Residues) }

// Keys are the pairs of residues next to each other around the ring,
// including last to first.
func (c *Cycle) Keys() []interact.Key {
	n := len(c.Residues)
	ret := make([]interact.Key, n)
	for i, r := range c.Residues {
		ret[i] = interact.MakeKey(r, c.Residues[(i+1)%n])
	}
	return ret
}

// Hits is true if any key of the cycle is in one of the sets
func (c *Cycle) Hits(sets ...KeySet) bool {
	for _, k := range c.Keys() {
		for _, s := range sets {
			if s[k] {
				return true
			}
		}
	}
	return false
}

// Text lists residue names around the ring
func (c *Cycle) Text(g *graph.Graph) string {
	s := make([]string, len(c.Residues))
	for i, r := range c.Residues {
		s[i] = g.ID(r).String()
	}
	return strings.Join(s, "-")
}

// Options for selecting cycles
type Options struct {
	MaxSize     int  // larger cycles are ignored, <= 0 means no limit
	SingleChain bool // ignore cycles spanning chains
}

// DefaultOptions are what the command line starts from
var DefaultOptions = Options{MaxSize: 10, SingleChain: true}

// singleChain is true if all residues are in one chain
func singleChain(g *graph.Graph, r []int) bool {
	for _, i := range r[1:] {
		if !g.SameChain(r[0], i) {
			return false
		}
	}
	return true
}

// Select builds cycles from the graph's cycle basis, dropping those the
// options exclude, and marks the tertiary ones.
func Select(g *graph.Graph, opts Options, tert ...KeySet) []Cycle {
	var ret []Cycle
	for _, r := range g.Cycles() {
		if len(r) == 0 {
			continue
		}
		if opts.MaxSize > 0 && len(r) > opts.MaxSize {
			continue
		}
		c := Cycle{Residues: r, SingleChain: singleChain(g, r)}
		if opts.SingleChain && !c.SingleChain {
			continue
		}
		c.Tertiary = c.Hits(tert...)
		ret = append(ret, c)
	}
	return ret
}

func (c *Cycle) String() string {
	s := "secondary"
	if c.Tertiary {
		s = "tertiary"
	}
	return fmt.Sprintf("%d residues, %s", len(c.Residues), s)
}
