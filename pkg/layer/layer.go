// 19 Oct 2026

package layer

import (
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// Options for layering and rendering
type Options struct {
	ExactMax  int  // with this many stems or more, use the greedy search
	MaxLayers int  // <= 0 means go on until every stem is placed
	NCombined int  // layers drawn together on the first structure line
	NSplit    int  // layers drawn one per line after that
	MaxGap    int  // longest gap in numbering we fill
	GapFill   bool // fill gaps in residue numbering
	SeqGap    byte // sequence character in a gap
	StructGap byte // structure character in a gap
	Loose     bool // lone pairs become stems, overlaps removed first
}

// DefaultOptions is what the command line starts from
var DefaultOptions = Options{
	ExactMax:  24,
	MaxLayers: 10,
	NCombined: 1,
	NSplit:    0,
	MaxGap:    20,
	GapFill:   true,
	SeqGap:    'X',
	StructGap: '.',
}

// Decompose returns layers as lists of indices into stems. The first
// layer has the most pairs.
func Decompose(stems []stem.Stem, opts Options) [][]int {
	c := newConflicts(stems)
	rem := fullSet(len(stems))
	var ret [][]int
	for k := 0; !rem.empty() && (opts.MaxLayers <= 0 || k < opts.MaxLayers); k++ {
		var pick set
		if rem.count() < opts.ExactMax {
			pick = c.exact(rem).sets[0]
		} else {
			pick = c.greedy(rem)
		}
		ret = append(ret, pick.list())
		rem = rem.minus(pick)
	}
	return ret
}

// Select is one conflict free subset of the stems with the most pairs,
// found exactly. It returns every equally good subset we kept.
func Select(stems []stem.Stem) (best int, picks [][]int) {
	c := newConflicts(stems)
	r := c.exact(fullSet(len(stems)))
	for _, s := range r.sets {
		picks = append(picks, s.list())
	}
	return r.score, picks
}
