// 19 Oct 2026

package loop

import (
	"fmt"
	"io"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// Linkers is the annotation module
type Linkers struct {
	Linkers []Linker
	g       *graph.Graph
}

func NewLinkers() *Linkers { return &Linkers{} }

func (a *Linkers) Provides() annot.Kind   { return annot.Linkers }
func (a *Linkers) Requires() []annot.Kind { return []annot.Kind{annot.Stems} }

// Update walks from the stems
func (a *Linkers) Update(m *annot.Model) error {
	a.g = m.Graph()
	a.Linkers = nil
	sa, err := stem.From(m)
	if err != nil {
		m.Logger().Println("linkers skipped:", err)
		return nil
	}
	a.Linkers = Find(a.g, sa.Stems)
	m.Logger().Println(len(a.Linkers), "linkers")
	return nil
}

func (a *Linkers) Output(w io.Writer) {
	for i := range a.Linkers {
		fmt.Fprintf(w, "  %3d %s\n", i, a.Linkers[i].Text(a.g))
	}
}

// LinkersFrom finds the module in a model
func LinkersFrom(m *annot.Model) (*Linkers, error) {
	return annot.Get[*Linkers](m, annot.Linkers)
}

// Loops is the annotation module. It also keeps the residue membership
// used to decide what is tertiary.
type Loops struct {
	Loops  []Loop
	Member Membership
	g      *graph.Graph
}

func NewLoops() *Loops { return &Loops{} }

func (a *Loops) Provides() annot.Kind   { return annot.Loops }
func (a *Loops) Requires() []annot.Kind { return []annot.Kind{annot.Stems, annot.Linkers} }

// Update merges linkers into loops and checks every residue has one home
func (a *Loops) Update(m *annot.Model) error {
	a.g = m.Graph()
	a.Loops, a.Member = nil, nil
	sa, err := stem.From(m)
	if err != nil {
		m.Logger().Println("loops skipped:", err)
		return nil
	}
	la, err := LinkersFrom(m)
	if err != nil {
		m.Logger().Println("loops skipped:", err)
		return nil
	}
	a.Loops = Merge(la.Linkers)
	a.Member = NewMembership(sa.Stems, a.Loops)
	for _, w := range Check(a.g, sa.Stems, la.Linkers) {
		m.Warn(w)
	}
	m.Logger().Println(len(a.Loops), "loops")
	return nil
}

func (a *Loops) Output(w io.Writer) {
	for i := range a.Loops {
		l := &a.Loops[i]
		fmt.Fprintf(w, "  %3d %s, %d linkers, %d residues\n", i, l.Desc, len(l.Linkers), l.Len())
		for j := range l.Linkers {
			fmt.Fprintln(w, "       ", l.Linkers[j].Text(a.g))
		}
	}
}

// LoopsFrom finds the module in a model
func LoopsFrom(m *annot.Model) (*Loops, error) {
	return annot.Get[*Loops](m, annot.Loops)
}
