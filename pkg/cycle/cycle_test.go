// 19 Oct 2026

package cycle_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	. "github.com/andrew-torda/rnaannot/pkg/cycle"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
	"github.com/andrew-torda/rnaannot/pkg/loop"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// A hairpin with tails. A1 reaches into the loop, A16 stacks on A9.
// The last two cycles are too big or span chains.
const tertGraph = `name TERT
res A:1 A
res A:2 G
res A:3 G
res A:4 G
res A:5 A
res A:6 A
res A:7 A
res A:8 A
res A:9 A
res A:10 A
res A:11 A
res A:12 A
res A:13 C
res A:14 C
res A:15 C
res A:16 A
res B:1 G
edge A:2 A:15 pair Ww Ww cis anti
edge A:3 A:14 pair Ww Ww cis anti
edge A:4 A:13 pair Ww Ww cis anti
edge A:1 A:8 pair Hh Ss trans anti
edge A:1 A:10 pair Ss Hh trans anti
edge A:2 A:3 stack
edge A:5 A:6 stack
edge A:9 A:16 stack
cycle A:2 A:3 A:14 A:15
cycle A:1 A:8 A:7
cycle A:7 A:8 A:9
cycle A:8 A:9 A:16 A:1
cycle A:1 A:2 A:3 A:4 A:5 A:6 A:7 A:8 A:9 A:10 A:11
cycle A:1 A:2 B:1
`

func mustRead(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Read(strings.NewReader(tertGraph))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// secondary gets the membership the way the modules would
func secondary(g *graph.Graph) (*interact.Records, loop.Membership) {
	r := interact.Build(g)
	st := stem.Build(g, interact.WatsonCrick(g, r.Pairs))
	loops := loop.Merge(loop.Find(g, st))
	return r, loop.NewMembership(st, loops)
}

func pairNames(p []interact.BasePair) []string {
	ret := []string{}
	for _, x := range p {
		ret = append(ret, x.String())
	}
	return ret
}

func TestTertiaryPairs(t *testing.T) {
	g := mustRead(t)
	r, mem := secondary(g)
	got := pairNames(TertiaryPairs(r.Pairs, mem))
	if diff := cmp.Diff([]string{"A1-A8", "A1-A10"}, got); diff != "" {
		t.Error("tertiary pairs (-want +got)\n", diff)
	}
	st := TertiaryStacks(r.Stacks, mem)
	if len(st) != 1 || st[0].String() != "A9-A16" {
		t.Error("tertiary stacks wrong", st)
	}
}

// A Watson-Crick pair is tertiary until something covers both ends
func TestCovered(t *testing.T) {
	s := `res A:1 G
res A:2 A
res A:3 A
res A:4 C
edge A:1 A:4 pair Ww Ww cis anti
`
	g, err := graph.Read(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	r := interact.Build(g)
	if n := len(TertiaryPairs(r.Pairs, loop.Membership{})); n != 1 {
		t.Error("uncovered pair should be tertiary, got", n)
	}
	mem := loop.Membership{0: {{What: loop.InStem, Index: 0}}, 3: {{What: loop.InStem, Index: 0}}}
	if n := len(TertiaryPairs(r.Pairs, mem)); n != 0 {
		t.Error("pair inside one stem is not tertiary, got", n)
	}
}

func TestSelect(t *testing.T) {
	g := mustRead(t)
	r, mem := secondary(g)
	pk := KeySet{}
	for _, p := range TertiaryPairs(r.Pairs, mem) {
		pk[p.Key()] = true
	}
	sk := KeySet{}
	for _, s := range TertiaryStacks(r.Stacks, mem) {
		sk[s.Key()] = true
	}
	cycles := Select(g, DefaultOptions, pk, sk)
	var tert []bool
	for _, c := range cycles {
		tert = append(tert, c.Tertiary)
	}
	if diff := cmp.Diff([]bool{false, true, false, true}, tert); diff != "" {
		t.Error("tertiary flags (-want +got)\n", diff)
	}
	if n := len(Select(g, Options{SingleChain: false}, pk, sk)); n != 6 {
		t.Error("without limits all 6 cycles should be kept, got", n)
	}
	keys := cycles[1].Keys()
	want := []interact.Key{interact.MakeKey(0, 7), interact.MakeKey(7, 6), interact.MakeKey(6, 0)}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Error("keys wrap around (-want +got)\n", diff)
	}
}

func TestAggregate(t *testing.T) {
	g := mustRead(t)
	r, mem := secondary(g)
	pairs := TertiaryPairs(r.Pairs, mem)
	stacks := TertiaryStacks(r.Stacks, mem)
	pk, sk := KeySet{}, KeySet{}
	for _, p := range pairs {
		pk[p.Key()] = true
	}
	for _, s := range stacks {
		sk[s.Key()] = true
	}
	cycles := Select(g, DefaultOptions, pk, sk)
	st := Aggregate(cycles, pairs, stacks)
	if len(st) != 2 {
		t.Fatal("wanted 2 structures, got", len(st))
	}
	if diff := cmp.Diff([]int{1, 3}, st[0].Cycles); diff != "" {
		t.Error("cycles sharing A1-A8 should join (-want +got)\n", diff)
	}
	if diff := cmp.Diff([]string{"A1-A8"}, pairNames(st[0].Pairs)); diff != "" {
		t.Error("(-want +got)\n", diff)
	}
	if len(st[0].Stacks) != 1 {
		t.Error("stack A9-A16 is on a cycle of the first structure")
	}
	if len(st[1].Cycles) != 0 || pairNames(st[1].Pairs)[0] != "A1-A10" {
		t.Error("A1-A10 should be on its own", st[1])
	}
	var res []int
	for _, i := range st[0].Residues(cycles) {
		res = append(res, g.ID(i).Num)
	}
	if diff := cmp.Diff([]int{1, 7, 8, 9, 16}, res); diff != "" {
		t.Error("residues (-want +got)\n", diff)
	}
}

func allModules() []annot.Annotation {
	return []annot.Annotation{
		NewStructures(), NewCycles(), NewPairs(), NewStacks(),
		loop.NewLoops(), loop.NewLinkers(), stem.New(), interact.New(),
	}
}

func TestModules(t *testing.T) {
	g := mustRead(t)
	m := annot.NewModel(g, nil)
	if err := m.RegisterAll(allModules()...); err != nil {
		t.Fatal(err)
	}
	if err := m.Annotate(); err != nil {
		t.Fatal(err)
	}
	ca, err := CyclesFrom(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(ca.Cycles) != 4 {
		t.Error("wanted 4 cycles, got", len(ca.Cycles))
	}
	a, _ := m.Lookup(annot.TertiaryStructures)
	sa := a.(*Structures)
	if len(sa.Structures) != 2 {
		t.Error("wanted 2 tertiary structures, got", len(sa.Structures))
	}
	var b strings.Builder
	m.Output(&b, annot.TertiaryStructures)
	if !strings.Contains(b.String(), "2 cycles, 1 pairs, 1 stacks, residues A1 A7 A8 A9 A16") {
		t.Error("output wrong:\n", b.String())
	}
}

// Without loops there is no membership. Nothing is tertiary and no
// cycle is either, but nothing breaks.
func TestMissingLoops(t *testing.T) {
	g := mustRead(t)
	m := annot.NewModel(g, nil)
	p, c, s := NewPairs(), NewCycles(), NewStructures()
	for _, a := range []annot.Annotation{p, c, s} {
		if err := a.Update(m); err != nil {
			t.Fatal(err)
		}
	}
	if len(p.Pairs) != 0 || len(s.Structures) != 0 {
		t.Error("nothing should be found without loops")
	}
	if len(c.Cycles) != 4 {
		t.Error("cycles are still selected, got", len(c.Cycles))
	}
}
