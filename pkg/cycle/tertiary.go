// 19 Oct 2026

// Package cycle decides which interactions and which minimum cycle basis
// cycles are tertiary, ie not explained by stems and loops, and collects
// the tertiary cycles into connected structures.
package cycle

import (
	"github.com/andrew-torda/rnaannot/pkg/interact"
	"github.com/andrew-torda/rnaannot/pkg/loop"
)

// TertiaryPairs keeps every base pair whose two residues do not share a
// stem or a loop.
func TertiaryPairs(pairs []interact.BasePair, mem loop.Membership) []interact.BasePair {
	var ret []interact.BasePair
	for _, p := range pairs {
		if !mem.Share(p.A.Index, p.B.Index) {
			ret = append(ret, p)
		}
	}
	return ret
}

// TertiaryStacks is the same test for stacks
func TertiaryStacks(stacks []interact.BaseStack, mem loop.Membership) []interact.BaseStack {
	var ret []interact.BaseStack
	for _, s := range stacks {
		if !mem.Share(s.A.Index, s.B.Index) {
			ret = append(ret, s)
		}
	}
	return ret
}

// KeySet is a set of residue pairs
type KeySet map[interact.Key]bool

func pairKeys(p []interact.BasePair) KeySet {
	ret := make(KeySet, len(p))
	for _, x := range p {
		ret[x.Key()] = true
	}
	return ret
}

func stackKeys(s []interact.BaseStack) KeySet {
	ret := make(KeySet, len(s))
	for _, x := range s {
		ret[x.Key()] = true
	}
	return ret
}
