// 19 Oct 2026

package cycle

import (
	"sort"

	"github.com/andrew-torda/rnaannot/pkg/interact"
)

// Structure is a set of tertiary cycles joined by shared interactions,
// with the tertiary pairs and stacks lying on them. A lone pair or stack
// not on any tertiary cycle makes a structure of its own with no cycles.
type Structure struct {
	Cycles []int // indices into the cycle slice
	Pairs  []interact.BasePair
	Stacks []interact.BaseStack
}

// Residues in the structure, sorted
func (s *Structure) Residues(cycles []Cycle) []int {
	seen := make(map[int]bool)
	for _, ci := range s.Cycles {
		for _, r := range cycles[ci].Residues {
			seen[r] = true
		}
	}
	for _, p := range s.Pairs {
		seen[p.A.Index], seen[p.B.Index] = true, true
	}
	for _, x := range s.Stacks {
		seen[x.A.Index], seen[x.B.Index] = true, true
	}
	ret := make([]int, 0, len(seen))
	for r := range seen {
		ret = append(ret, r)
	}
	sort.Ints(ret)
	return ret
}

// find with path halving
func find(parent []int, i int) int {
	for parent[i] != i {
		parent[i] = parent[parent[i]]
		i = parent[i]
	}
	return i
}

// Aggregate joins tertiary cycles sharing a key. Structures come out in
// the order of their first cycle, then the singletons for pairs, then
// for stacks.
func Aggregate(cycles []Cycle, pairs []interact.BasePair, stacks []interact.BaseStack) []Structure {
	parent := make([]int, len(cycles))
	for i := range parent {
		parent[i] = i
	}
	owner := make(map[interact.Key]int) // key to first tertiary cycle
	for ci := range cycles {
		if !cycles[ci].Tertiary {
			continue
		}
		for _, k := range cycles[ci].Keys() {
			if o, ok := owner[k]; ok {
				a, b := find(parent, o), find(parent, ci)
				if a > b {
					a, b = b, a
				}
				parent[b] = a
			} else {
				owner[k] = ci
			}
		}
	}
	var ret []Structure
	slot := make(map[int]int) // root to index in ret
	for ci := range cycles {
		if !cycles[ci].Tertiary {
			continue
		}
		root := find(parent, ci)
		n, ok := slot[root]
		if !ok {
			n = len(ret)
			slot[root] = n
			ret = append(ret, Structure{})
		}
		ret[n].Cycles = append(ret[n].Cycles, ci)
	}
	for _, p := range pairs {
		if o, ok := owner[p.Key()]; ok {
			n := slot[find(parent, o)]
			ret[n].Pairs = append(ret[n].Pairs, p)
			continue
		}
		ret = append(ret, Structure{Pairs: []interact.BasePair{p}})
	}
	for _, s := range stacks {
		if o, ok := owner[s.Key()]; ok {
			n := slot[find(parent, o)]
			ret[n].Stacks = append(ret[n].Stacks, s)
			continue
		}
		ret = append(ret, Structure{Stacks: []interact.BaseStack{s}})
	}
	return ret
}
