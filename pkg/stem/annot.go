// 19 Oct 2026

package stem

import (
	"fmt"
	"io"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
)

// Stems is the annotation module
type Stems struct {
	Stems []Stem
	byRes map[int][]int // residue to stems it is in
	g     *graph.Graph
}

func New() *Stems { return &Stems{} }

func (a *Stems) Provides() annot.Kind   { return annot.Stems }
func (a *Stems) Requires() []annot.Kind { return []annot.Kind{annot.Interactions} }

// Update groups the Watson-Crick pairs
func (a *Stems) Update(m *annot.Model) error {
	a.g = m.Graph()
	a.Stems = nil
	a.byRes = make(map[int][]int)
	ia, err := interact.From(m)
	if err != nil {
		m.Logger().Println("stems skipped:", err)
		return nil
	}
	a.Stems = Build(a.g, ia.WC)
	for i := range a.Stems {
		for _, r := range a.Stems[i].Residues() {
			a.byRes[r] = append(a.byRes[r], i)
		}
	}
	m.Logger().Println(len(a.Stems), "stems")
	return nil
}

// Of returns the stems containing residue i
func (a *Stems) Of(i int) []int { return a.byRes[i] }

// Output writes one line per stem
func (a *Stems) Output(w io.Writer) {
	for i := range a.Stems {
		fmt.Fprintf(w, "  %3d %v\n", i, &a.Stems[i])
	}
}

// From finds the module in a model
func From(m *annot.Model) (*Stems, error) {
	return annot.Get[*Stems](m, annot.Stems)
}
