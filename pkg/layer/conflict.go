// 19 Oct 2026

// Package layer splits the stems of a chain into pseudoknot free
// layers and writes them as dot-bracket text.
// Two stems conflict if their arcs cross or they share a residue. Each
// layer is a conflict free set of stems with the largest number of pairs
// we can find. Small problems are solved exactly, larger ones greedily.
package layer

import (
	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// conflicts between n stems
type conflicts struct {
	n    int
	c    *matrix.BMatrix2d // 1 if i and j may not be in one layer
	wt   []int             // number of pairs in each stem
	wmat *matrix.FMatrix2d // wmat[i][j] is the weight of j if i and j conflict
}

// Conflict says if two stems cannot share a layer
func Conflict(a, b *stem.Stem) bool {
	return stem.Pseudoknotted(a, b) || stem.Overlaps(a, b)
}

func newConflicts(stems []stem.Stem) *conflicts {
	n := len(stems)
	c := &conflicts{n: n, wt: make([]int, n)}
	if n == 0 {
		return c
	}
	c.c = matrix.NewBMatrix2d(n, n)
	c.wmat = matrix.NewFMatrix2d(n, n)
	for i := range stems {
		c.wt[i] = stems[i].Len()
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if Conflict(&stems[i], &stems[j]) {
				c.c.Mat[i][j], c.c.Mat[j][i] = 1, 1
				c.wmat.Mat[i][j] = float32(c.wt[j])
				c.wmat.Mat[j][i] = float32(c.wt[i])
			}
		}
	}
	return c
}

func (c *conflicts) has(i, j int) bool { return c.c.Mat[i][j] != 0 }

// of returns the members of s that conflict with i
func (c *conflicts) of(i int, s set) set {
	r := newSet(c.n)
	for _, j := range s.list() {
		if c.has(i, j) {
			r = r.with(j)
		}
	}
	return r
}

// free says if no two members of s conflict
func (c *conflicts) free(s set) bool {
	l := s.list()
	for a, i := range l {
		for _, j := range l[a+1:] {
			if c.has(i, j) {
				return false
			}
		}
	}
	return true
}

// weight sums the pairs in s
func (c *conflicts) weight(s set) int {
	n := 0
	for _, i := range s.list() {
		n += c.wt[i]
	}
	return n
}

// greedy drops the stem with the most conflicting weight until nothing
// conflicts. On ties the lower index goes.
func (c *conflicts) greedy(rem set) set {
	for {
		worst, most := -1, float32(0)
		l := rem.list()
		for _, i := range l {
			var w float32
			for _, j := range l {
				w += c.wmat.Mat[i][j]
			}
			if w > most {
				worst, most = i, w
			}
		}
		if worst < 0 {
			return rem
		}
		rem = rem.without(worst)
	}
}
