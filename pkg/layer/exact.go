// 19 Oct 2026

package layer

// maxTies is how many equal best answers we carry per sub-problem
const maxTies = 4

// result of a sub-problem. All sets have the same score, the first is
// the one we use.
type result struct {
	score int
	sets  []set
}

func addTo(r result, i, w int) result {
	ret := result{score: r.score + w, sets: make([]set, len(r.sets))}
	for k, s := range r.sets {
		ret.sets[k] = s.with(i)
	}
	return ret
}

// exact finds the conflict free subset of rem with the most pairs. Take
// the first stem left. If nothing conflicts with it, keep it. Otherwise
// try taking it (and dropping what conflicts) and skipping it. The
// better wins and on a tie we keep the "take" answers first.
// Sub-problems are remembered by the set of stems left.
func (c *conflicts) exact(rem set) result {
	memo := make(map[string]result)
	var solve func(s set) result
	solve = func(s set) result {
		if s.empty() {
			return result{sets: []set{newSet(c.n)}}
		}
		k := s.key()
		if r, ok := memo[k]; ok {
			return r
		}
		i := s.first()
		rest := s.without(i)
		cs := c.of(i, rest)
		var r result
		if cs.empty() {
			r = addTo(solve(rest), i, c.wt[i])
		} else {
			take := addTo(solve(rest.minus(cs)), i, c.wt[i])
			skip := solve(rest)
			switch {
			case take.score > skip.score:
				r = take
			case take.score < skip.score:
				r = skip
			default:
				r = result{score: take.score}
				r.sets = append(r.sets, take.sets...)
				r.sets = append(r.sets, skip.sets...)
				if len(r.sets) > maxTies {
					r.sets = r.sets[:maxTies]
				}
			}
		}
		memo[k] = r
		return r
	}
	return solve(rem)
}
