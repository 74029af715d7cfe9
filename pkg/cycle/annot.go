// 19 Oct 2026

package cycle

import (
	"fmt"
	"io"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
	"github.com/andrew-torda/rnaannot/pkg/loop"
)

// PairsModule provides the tertiary base pairs
type PairsModule struct {
	Pairs []interact.BasePair
	Keys  KeySet
}

func NewPairs() *PairsModule { return &PairsModule{} }

func (a *PairsModule) Provides() annot.Kind { return annot.TertiaryPairs }
func (a *PairsModule) Requires() []annot.Kind {
	return []annot.Kind{annot.Interactions, annot.Loops}
}

// lookup gets what both tertiary modules need
func lookup(m *annot.Model) (*interact.Interactions, *loop.Loops, error) {
	ia, err := interact.From(m)
	if err != nil {
		return nil, nil, err
	}
	la, err := loop.LoopsFrom(m)
	if err != nil {
		return nil, nil, err
	}
	return ia, la, nil
}

func (a *PairsModule) Update(m *annot.Model) error {
	a.Pairs, a.Keys = nil, KeySet{}
	ia, la, err := lookup(m)
	if err != nil {
		m.Logger().Println("tertiary pairs skipped:", err)
		return nil
	}
	a.Pairs = TertiaryPairs(ia.Recs.Pairs, la.Member)
	a.Keys = pairKeys(a.Pairs)
	m.Logger().Println(len(a.Pairs), "tertiary pairs")
	return nil
}

func (a *PairsModule) Output(w io.Writer) {
	for _, p := range a.Pairs {
		fmt.Fprintln(w, "  ", p)
	}
}

// StacksModule provides the tertiary stacks
type StacksModule struct {
	Stacks []interact.BaseStack
	Keys   KeySet
}

func NewStacks() *StacksModule { return &StacksModule{} }

func (a *StacksModule) Provides() annot.Kind { return annot.TertiaryStacks }
func (a *StacksModule) Requires() []annot.Kind {
	return []annot.Kind{annot.Interactions, annot.Loops}
}

func (a *StacksModule) Update(m *annot.Model) error {
	a.Stacks, a.Keys = nil, KeySet{}
	ia, la, err := lookup(m)
	if err != nil {
		m.Logger().Println("tertiary stacks skipped:", err)
		return nil
	}
	a.Stacks = TertiaryStacks(ia.Recs.Stacks, la.Member)
	a.Keys = stackKeys(a.Stacks)
	m.Logger().Println(len(a.Stacks), "tertiary stacks")
	return nil
}

func (a *StacksModule) Output(w io.Writer) {
	for _, s := range a.Stacks {
		fmt.Fprintln(w, "  ", s)
	}
}

// tertiary gets both sets, empty if missing
func tertiary(m *annot.Model) (*PairsModule, *StacksModule) {
	pm, err := annot.Get[*PairsModule](m, annot.TertiaryPairs)
	if err != nil {
		m.Logger().Println(err)
		pm = &PairsModule{}
	}
	sm, err := annot.Get[*StacksModule](m, annot.TertiaryStacks)
	if err != nil {
		m.Logger().Println(err)
		sm = &StacksModule{}
	}
	return pm, sm
}

// Cycles is the annotation module for the cycle basis
type Cycles struct {
	Opts   Options
	Cycles []Cycle
	g      *graph.Graph
}

// NewCycles with the default options
func NewCycles() *Cycles { return &Cycles{Opts: DefaultOptions} }

func (a *Cycles) Provides() annot.Kind { return annot.Cycles }
func (a *Cycles) Requires() []annot.Kind {
	return []annot.Kind{annot.TertiaryPairs, annot.TertiaryStacks}
}

func (a *Cycles) Update(m *annot.Model) error {
	a.g = m.Graph()
	pm, sm := tertiary(m)
	a.Cycles = Select(a.g, a.Opts, pm.Keys, sm.Keys)
	n := 0
	for i := range a.Cycles {
		if a.Cycles[i].Tertiary {
			n++
		}
	}
	m.Logger().Println(len(a.Cycles), "cycles,", n, "tertiary")
	return nil
}

func (a *Cycles) Output(w io.Writer) {
	for i := range a.Cycles {
		c := &a.Cycles[i]
		fmt.Fprintf(w, "  %3d %v: %s\n", i, c, c.Text(a.g))
	}
}

// CyclesFrom finds the module in a model
func CyclesFrom(m *annot.Model) (*Cycles, error) {
	return annot.Get[*Cycles](m, annot.Cycles)
}

// Structures is the annotation module for tertiary structures
type Structures struct {
	Structures []Structure
	cycles     []Cycle
	g          *graph.Graph
}

func NewStructures() *Structures { return &Structures{} }

func (a *Structures) Provides() annot.Kind { return annot.TertiaryStructures }
func (a *Structures) Requires() []annot.Kind {
	return []annot.Kind{annot.Cycles, annot.TertiaryPairs, annot.TertiaryStacks}
}

func (a *Structures) Update(m *annot.Model) error {
	a.g = m.Graph()
	a.Structures, a.cycles = nil, nil
	ca, err := CyclesFrom(m)
	if err != nil {
		m.Logger().Println("tertiary structures skipped:", err)
		return nil
	}
	pm, sm := tertiary(m)
	a.cycles = ca.Cycles
	a.Structures = Aggregate(ca.Cycles, pm.Pairs, sm.Stacks)
	m.Logger().Println(len(a.Structures), "tertiary structures")
	return nil
}

func (a *Structures) Output(w io.Writer) {
	for i := range a.Structures {
		s := &a.Structures[i]
		fmt.Fprintf(w, "  %3d %d cycles, %d pairs, %d stacks, residues", i,
			len(s.Cycles), len(s.Pairs), len(s.Stacks))
		for _, r := range s.Residues(a.cycles) {
			fmt.Fprint(w, " ", a.g.ID(r))
		}
		fmt.Fprintln(w)
	}
}
