// 19 Oct 2026

package layer

import (
	"fmt"
	"io"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// ChainLayers is the result for one chain
type ChainLayers struct {
	Chain  graph.Chain
	Stems  []stem.Stem // stems with both strands in the chain
	Layers [][]int     // indices into Stems
	DB     *DotBracket
}

// Layers is the annotation module
type Layers struct {
	Opts   Options
	Chains []ChainLayers
}

// New with default options
func New() *Layers { return &Layers{Opts: DefaultOptions} }

func (a *Layers) Provides() annot.Kind { return annot.Layers }
func (a *Layers) Requires() []annot.Kind {
	return []annot.Kind{annot.Interactions, annot.Stems}
}

// inChain picks stems whose pairs all lie in ch
func inChain(stems []stem.Stem, ch graph.Chain) []stem.Stem {
	in := func(i int) bool { return i >= ch.Lo && i < ch.Hi }
	var ret []stem.Stem
	for _, s := range stems {
		ok := true
		for _, p := range s.Pairs {
			if !in(p.A.Index) || !in(p.B.Index) {
				ok = false
				break
			}
		}
		if ok {
			ret = append(ret, s)
		}
	}
	return ret
}

// source gives the stems to work on, the loose ones if asked for
func (a *Layers) source(m *annot.Model) ([]stem.Stem, error) {
	if a.Opts.Loose {
		ia, err := interact.From(m)
		if err != nil {
			return nil, err
		}
		return stem.BuildLoose(m.Graph(), ia.WC), nil
	}
	sa, err := stem.From(m)
	if err != nil {
		return nil, err
	}
	return sa.Stems, nil
}

// Update layers each chain and renders it
func (a *Layers) Update(m *annot.Model) error {
	g := m.Graph()
	a.Chains = nil
	stems, err := a.source(m)
	if err != nil {
		m.Logger().Println("layers skipped:", err)
		return nil
	}
	for _, ch := range g.Chains() {
		cl := ChainLayers{Chain: ch, Stems: inChain(stems, ch)}
		cl.Layers = Decompose(cl.Stems, a.Opts)
		db, warn := Render(g, ch, cl.Stems, cl.Layers, a.Opts)
		if warn != nil {
			m.Warn(warn)
		}
		cl.DB = db
		m.Logger().Printf("chain %s: %d stems in %d layers", ch.Name, len(cl.Stems), len(cl.Layers))
		a.Chains = append(a.Chains, cl)
	}
	return nil
}

// WriteDotBracket writes every chain
func (a *Layers) WriteDotBracket(w io.Writer) error {
	for _, cl := range a.Chains {
		if err := cl.DB.Write(w, a.Opts); err != nil {
			return err
		}
	}
	return nil
}

// Output lists the stems of each layer and then the dot-bracket text
func (a *Layers) Output(w io.Writer) {
	for _, cl := range a.Chains {
		fmt.Fprintf(w, "chain %s\n", cl.Chain.Name)
		for k, l := range cl.Layers {
			fmt.Fprintf(w, "  layer %d %c%c\n", k, Alphabet[k%len(Alphabet)][0], Alphabet[k%len(Alphabet)][1])
			for _, si := range l {
				fmt.Fprintln(w, "    ", &cl.Stems[si])
			}
		}
	}
	a.WriteDotBracket(w)
}

// From finds the module in a model
func From(m *annot.Model) (*Layers, error) {
	return annot.Get[*Layers](m, annot.Layers)
}
