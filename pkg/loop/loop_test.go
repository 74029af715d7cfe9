// 19 Oct 2026

package loop_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
	. "github.com/andrew-torda/rnaannot/pkg/loop"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// chain makes chain A with residues 1..len(seq) and cis Watson-Crick
// pairs between the given residue numbers.
func chain(t *testing.T, seq string, pairs [][2]int) *graph.Graph {
	t.Helper()
	g := graph.New("T", 1)
	for i := range seq {
		if err := g.AddResidue(graph.ResID{Chain: "A", Num: i + 1}, seq[i]); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range pairs {
		a, b := graph.ResID{Chain: "A", Num: p[0]}, graph.ResID{Chain: "A", Num: p[1]}
		e := graph.Edge{Flags: graph.Pairing, Face1: "Ww", Face2: "Ww", Cis: true}
		if err := g.AddEdge(a, b, e); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Finish(); err != nil {
		t.Fatal(err)
	}
	return g
}

func stems(g *graph.Graph) []stem.Stem { return stem.Build(g, interact.Build(g).Pairs) }

// nums gives residue numbers
func nums(g *graph.Graph, r []int) []int {
	ret := []int{}
	for _, i := range r {
		ret = append(ret, g.ID(i).Num)
	}
	return ret
}

func descs(loops []Loop) []string {
	var ret []string
	for _, l := range loops {
		ret = append(ret, l.Desc)
	}
	return ret
}

// One stem with a tail at each end
const hairpinSeq = "AGGGAAAAAAAACCCA"

var hairpinPairs = [][2]int{{2, 15}, {3, 14}, {4, 13}}

func TestHairpin(t *testing.T) {
	g := chain(t, hairpinSeq, hairpinPairs)
	st := stems(g)
	lk := Find(g, st)
	if len(lk) != 3 {
		t.Fatal("wanted 3 linkers, got", len(lk))
	}
	var got [][]int
	for _, l := range lk {
		got = append(got, nums(g, l.Residues))
	}
	want := [][]int{{1}, {5, 6, 7, 8, 9, 10, 11, 12}, {16}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error("linkers (-want +got)\n", diff)
	}
	if !lk[0].Start.IsNone() || lk[0].End != (StemConnection{0, stem.FirstFront, stem.Outer}) {
		t.Error("5' tail connections wrong", lk[0].Start, lk[0].End)
	}
	if lk[1].Start != (StemConnection{0, stem.FirstBack, stem.Inner}) ||
		lk[1].End != (StemConnection{0, stem.SecondFront, stem.Inner}) {
		t.Error("hairpin connections wrong", lk[1].Start, lk[1].End)
	}
	loops := Merge(lk)
	if diff := cmp.Diff([]string{Opened, Hairpin}, descs(loops)); diff != "" {
		t.Error("loops (-want +got)\n", diff)
	}
	if loops[1].Len() != 8 || !loops[1].Closed() || loops[0].Closed() {
		t.Error("hairpin should be closed with 8 residues, tails open")
	}
	if errs := Check(g, st, lk); len(errs) != 0 {
		t.Error("unexpected warnings", errs)
	}
}

// Two linkers touching the inner pair of the outer stem and the outer
// pair of the inner stem become one loop.
func TestMergeTwo(t *testing.T) {
	var tdata = []struct {
		seq   string
		pairs [][2]int
		desc  string
		n     int
	}{
		{"GGAAGGAAAAAAAACCAAAACC", [][2]int{{1, 22}, {2, 21}, {5, 16}, {6, 15}}, Internal, 6},
		{"GGGGAAAAAAAAAACCAAAACC", [][2]int{{1, 22}, {2, 21}, {3, 16}, {4, 15}}, Bulge, 4},
	}
	for _, x := range tdata {
		g := chain(t, x.seq, x.pairs)
		st := stems(g)
		if len(st) != 2 {
			t.Fatal("wanted 2 stems got", len(st))
		}
		lk := Find(g, st)
		shared := StemConnection{Stem: 0, End: stem.FirstBack, Side: stem.Inner}
		var parts []Linker
		for _, l := range lk {
			if l.Start == shared || l.End == shared || l.Start.Connects(shared) || l.End.Connects(shared) {
				parts = append(parts, l)
			}
		}
		if len(parts) != 2 {
			t.Fatal(x.desc, ": wanted two linkers at the inner pair of stem 0, got", len(parts))
		}
		loops := Merge(lk)
		var found *Loop
		for i := range loops {
			if loops[i].Desc == x.desc {
				found = &loops[i]
			}
		}
		if found == nil {
			t.Fatal("no", x.desc, "loop in", descs(loops))
		}
		if sum := parts[0].Len() + parts[1].Len(); found.Len() != sum || sum != x.n {
			t.Errorf("%s: loop has %d residues, linkers %d, wanted %d", x.desc, found.Len(), sum, x.n)
		}
		if len(found.Residues()) != x.n {
			t.Error(x.desc, "residues counted twice")
		}
		if !found.Closed() {
			t.Error(x.desc, "loop should be closed")
		}
	}
}

func TestMultibranch(t *testing.T) {
	seq := strings.Repeat("G", 30)
	pairs := [][2]int{{1, 30}, {2, 29}, {4, 10}, {5, 9}, {13, 20}, {14, 19}}
	g := chain(t, seq, pairs)
	loops := Merge(Find(g, stems(g)))
	want := []string{Multibranch, Hairpin, Hairpin}
	if diff := cmp.Diff(want, descs(loops)); diff != "" {
		t.Error("(-want +got)\n", diff)
	}
	if n := loops[0].Len(); n != 1+2+8 {
		t.Error("multibranch loop has 11 residues, got", n)
	}
}

func TestIdempotent(t *testing.T) {
	seq := strings.Repeat("G", 30)
	pairs := [][2]int{{1, 30}, {2, 29}, {4, 10}, {5, 9}, {13, 20}, {14, 19}}
	g := chain(t, seq, pairs)
	loops := Merge(Find(g, stems(g)))
	again := Remerge(loops)
	if diff := cmp.Diff(loops, again); diff != "" {
		t.Error("second merge changed loops (-first +second)\n", diff)
	}
}

// Linkers walk over a stem pseudoknotted with where they started
func TestPseudoknot(t *testing.T) {
	g := chain(t, "GGAAGGAACCAACC", [][2]int{{1, 10}, {2, 9}, {5, 14}, {6, 13}})
	st := stems(g)
	lk := Find(g, st)
	var found bool
	for _, l := range lk {
		if l.Start == (StemConnection{0, stem.FirstBack, stem.Inner}) {
			found = true
			if diff := cmp.Diff([]int{3, 4, 5, 6, 7, 8}, nums(g, l.Residues)); diff != "" {
				t.Error("(-want +got)\n", diff)
			}
		}
	}
	if !found {
		t.Fatal("no linker from the inner end of stem 0")
	}
	var bad []int
	for _, err := range Check(g, st, lk) {
		var si *annot.StructureInconsistency
		if !errors.As(err, &si) {
			t.Fatal("wanted StructureInconsistency, got", err)
		}
		bad = append(bad, si.Res.Num)
	}
	if len(bad) == 0 || bad[0] > 5 {
		t.Error("residues in a crossing stem and a linker should be reported, got", bad)
	}
}

func TestMembership(t *testing.T) {
	g := chain(t, hairpinSeq, hairpinPairs)
	st := stems(g)
	loops := Merge(Find(g, st))
	mem := NewMembership(st, loops)
	ndx := func(n int) int { return n - 1 }
	var tdata = []struct {
		a, b  int
		share bool
	}{
		{1, 16, true},  // exterior loop
		{2, 15, true},  // stem
		{4, 8, true},   // hairpin and its closing residue
		{1, 8, false},  // exterior and hairpin
		{5, 16, false}, // hairpin and exterior
	}
	for _, x := range tdata {
		if s := mem.Share(ndx(x.a), ndx(x.b)); s != x.share {
			t.Errorf("%d %d share %v wanted %v", x.a, x.b, s, x.share)
		}
	}
}

func TestModules(t *testing.T) {
	g := chain(t, hairpinSeq, hairpinPairs)
	m := annot.NewModel(g, nil)
	err := m.RegisterAll(NewLoops(), NewLinkers(), stem.New(), interact.New())
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Annotate(); err != nil {
		t.Fatal(err)
	}
	la, err := LoopsFrom(m)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{Opened, Hairpin}, descs(la.Loops)); diff != "" {
		t.Error("(-want +got)\n", diff)
	}
	if len(m.Warnings()) != 0 {
		t.Error("no warnings expected, got", m.Warnings())
	}
	var b strings.Builder
	m.Output(&b, annot.Linkers, annot.Loops)
	if !strings.Contains(b.String(), "hairpin, 1 linkers, 8 residues") {
		t.Error("loop output wrong:\n", b.String())
	}
}
