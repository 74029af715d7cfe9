// 19 Oct 2026

package layer

import (
	"fmt"
	"io"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// Alphabet has the bracket pair for each layer
var Alphabet = [...][2]byte{
	{'(', ')'}, {'[', ']'}, {'<', '>'}, {'{', '}'}, {'+', '-'},
	{'A', 'a'}, {'B', 'b'}, {'C', 'c'}, {'D', 'd'}, {'E', 'e'},
}

const unpaired = '.'

// Arc is one base pair drawn in a layer, given by columns
type Arc struct {
	I, J  int
	Layer int
}

// DotBracket is one chain. Every line has the same length, which is the
// number of residues plus any gaps we filled.
type DotBracket struct {
	Name   string
	Model  int
	Chain  string
	Seq    []byte
	Layers [][]byte // one line per layer
	Arcs   []Arc
	Col    []int         // column of each residue in the chain
	IDs    []graph.ResID // and its name
	gapc   byte
}

// Len is the number of columns
func (d *DotBracket) Len() int { return len(d.Seq) }

// Header is the first line of the output
func (d *DotBracket) Header() string {
	return fmt.Sprintf(">%s:%d:%s|PDBID|MODEL|CHAIN|SEQUENCE", d.Name, d.Model, d.Chain)
}

// gaps gives the number of missing residues after each residue of the
// chain, all zero if we are not filling gaps. A gap that is too long
// gives a warning and no filling at all.
func gaps(g *graph.Graph, ch graph.Chain, opts Options) ([]int, error) {
	ret := make([]int, ch.Hi-ch.Lo)
	if !opts.GapFill {
		return ret, nil
	}
	for i := ch.Lo; i+1 < ch.Hi; i++ {
		a, b := g.ID(i), g.ID(i+1)
		if a.Contiguous(b) {
			continue
		}
		n := b.Num - a.Num - 1
		if n <= 0 {
			continue
		}
		if n > opts.MaxGap {
			for k := range ret {
				ret[k] = 0
			}
			return ret, &annot.GapTooLong{Chain: ch.Name, After: a, Len: n, Max: opts.MaxGap}
		}
		ret[i-ch.Lo] = n
	}
	return ret, nil
}

// merge writes src over blank columns of dst
func merge(dst, src []byte) {
	for i, c := range src {
		if dst[i] == unpaired && c != unpaired {
			dst[i] = c
		}
	}
}

// Render draws the layers of one chain. stems must lie in the chain.
// The error, if not nil, is a *annot.GapTooLong warning and the result
// is still good, just without gap filling.
func Render(g *graph.Graph, ch graph.Chain, stems []stem.Stem, layers [][]int, opts Options) (*DotBracket, error) {
	gp, warn := gaps(g, ch, opts)
	d := &DotBracket{Name: g.Name, Model: g.Model, Chain: ch.Name, gapc: opts.StructGap}
	d.Col = make([]int, ch.Hi-ch.Lo)
	d.IDs = make([]graph.ResID, ch.Hi-ch.Lo)
	ncol := 0
	for k := range d.Col {
		d.Col[k] = ncol
		d.IDs[k] = g.ID(ch.Lo + k)
		ncol += 1 + gp[k]
	}
	d.Seq = make([]byte, ncol)
	for k := range d.Seq {
		d.Seq[k] = opts.SeqGap
	}
	for i := ch.Lo; i < ch.Hi; i++ {
		d.Seq[d.Col[i-ch.Lo]] = g.Res(i).Type
	}
	for k, l := range layers {
		line := d.blank()
		br := Alphabet[k%len(Alphabet)]
		for _, si := range l {
			for _, p := range stems[si].Pairs {
				i, j := d.Col[p.A.Index-ch.Lo], d.Col[p.B.Index-ch.Lo]
				line[i], line[j] = br[0], br[1]
				d.Arcs = append(d.Arcs, Arc{I: i, J: j, Layer: k})
			}
		}
		d.Layers = append(d.Layers, line)
	}
	return d, warn
}

// blank is a structure line with nothing paired
func (d *DotBracket) blank() []byte {
	b := make([]byte, len(d.Seq))
	for k := range b {
		b[k] = d.gapc
	}
	for _, c := range d.Col {
		b[c] = unpaired
	}
	return b
}

// Combined overlays the first n layers. Where layers share a residue the
// earlier layer wins.
func (d *DotBracket) Combined(n int) []byte {
	ret := d.blank()
	for k := 0; k < n && k < len(d.Layers); k++ {
		merge(ret, d.Layers[k])
	}
	return ret
}

// Lines are the header, sequence, the combined layers and the split ones
func (d *DotBracket) Lines(opts Options) []string {
	ret := []string{d.Header(), string(d.Seq)}
	if opts.NCombined > 0 {
		ret = append(ret, string(d.Combined(opts.NCombined)))
	}
	for k := 0; k < opts.NSplit; k++ {
		if k < len(d.Layers) {
			ret = append(ret, string(d.Layers[k]))
		} else {
			ret = append(ret, string(d.Combined(0)))
		}
	}
	return ret
}

// Write the lines
func (d *DotBracket) Write(w io.Writer, opts Options) error {
	for _, s := range d.Lines(opts) {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
