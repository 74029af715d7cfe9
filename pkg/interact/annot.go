// 19 Oct 2026

package interact

import (
	"fmt"
	"io"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/graph"
)

// Interactions is the annotation module holding all records and the
// Watson-Crick subset.
type Interactions struct {
	Recs  *Records
	WC    []BasePair
	wcNdx map[Key]bool
	g     *graph.Graph
}

// New returns an empty module for registering
func New() *Interactions { return &Interactions{} }

func (a *Interactions) Provides() annot.Kind   { return annot.Interactions }
func (a *Interactions) Requires() []annot.Kind { return nil }

// Update rebuilds the records from the model's graph
func (a *Interactions) Update(m *annot.Model) error {
	a.g = m.Graph()
	a.Recs = Build(a.g)
	a.WC = WatsonCrick(a.g, a.Recs.Pairs)
	a.wcNdx = make(map[Key]bool, len(a.WC))
	for _, p := range a.WC {
		a.wcNdx[p.Key()] = true
	}
	m.Logger().Println(len(a.Recs.Pairs), "pairs,", len(a.Recs.Stacks), "stacks,",
		len(a.Recs.Links), "links,", len(a.WC), "Watson-Crick")
	return nil
}

// IsWC says if a pair was selected as Watson-Crick
func (a *Interactions) IsWC(k Key) bool { return a.wcNdx[k] }

func pairString(g *graph.Graph, p BasePair) string {
	e := p.Edge(g)
	orient := "trans"
	if e.Cis {
		orient = "cis"
	}
	dir := "antiparallel"
	if e.Parallel {
		dir = "parallel"
	}
	return fmt.Sprintf("%s : %c-%c %s/%s %s %s", p, g.Res(p.A.Index).Type,
		g.Res(p.B.Index).Type, e.Face1, e.Face2, orient, dir)
}

// Output lists everything
func (a *Interactions) Output(w io.Writer) {
	if a.Recs == nil {
		return
	}
	fmt.Fprintln(w, "Base pairs:", len(a.Recs.Pairs))
	for _, p := range a.Recs.Pairs {
		fmt.Fprintln(w, "  ", pairString(a.g, p))
	}
	fmt.Fprintln(w, "Stacks:", len(a.Recs.Stacks))
	for _, s := range a.Recs.Stacks {
		fmt.Fprintln(w, "  ", s)
	}
	fmt.Fprintln(w, "Links:", len(a.Recs.Links))
	for _, l := range a.Recs.Links {
		fmt.Fprintln(w, "  ", l)
	}
	fmt.Fprintln(w, "Watson-Crick pairs:", len(a.WC))
	for _, p := range a.WC {
		fmt.Fprintln(w, "  ", p)
	}
}

// From finds the module in a model
func From(m *annot.Model) (*Interactions, error) {
	return annot.Get[*Interactions](m, annot.Interactions)
}
