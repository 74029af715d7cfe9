// 19 Oct 2026

package arcplot

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
	"github.com/andrew-torda/rnaannot/pkg/layer"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// Two crossing stems, so two layers and two colours
const crossing = `name ARC
res A:1 G
res A:2 G
res A:3 G
res A:4 G
res A:5 C
res A:6 C
res A:7 A
res A:8 A
res A:9 C
res A:10 C
edge A:1 A:6 pair Ww Ww cis anti
edge A:2 A:5 pair Ww Ww cis anti
edge A:3 A:10 pair Ww Ww cis anti
edge A:4 A:9 pair Ww Ww cis anti
`

func dotBracket(t *testing.T) *layer.DotBracket {
	t.Helper()
	g, err := graph.Read(strings.NewReader(crossing))
	if err != nil {
		t.Fatal(err)
	}
	s := stem.Build(g, interact.WatsonCrick(g, interact.Build(g).Pairs))
	opts := layer.DefaultOptions
	db, err := layer.Render(g, g.Chains()[0], s, layer.Decompose(s, opts), opts)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

// count pixels of colour c
func count(img image.Image, c [4]uint32) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if [4]uint32{r, g, bl, a} == c {
				n++
			}
		}
	}
	return n
}

func TestDraw(t *testing.T) {
	db := dotBracket(t)
	var buf bytes.Buffer
	if err := Draw(&buf, db, DefaultOptions); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal("output is not a png:", err)
	}
	o := DefaultOptions
	if w := img.Bounds().Dx(); w != 2*o.Margin+db.Len()*o.Step {
		t.Error("width", w)
	}
	for k := 0; k < 2; k++ {
		r, g, b, a := palette[k].RGBA()
		if count(img, [4]uint32{r, g, b, a}) == 0 {
			t.Error("no arcs drawn for layer", k)
		}
	}
	r, g, b, a := palette[2].RGBA()
	if count(img, [4]uint32{r, g, b, a}) != 0 {
		t.Error("there is no third layer")
	}
}

func TestEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Draw(&buf, &layer.DotBracket{}, DefaultOptions); err != errEmpty {
		t.Error("wanted errEmpty, got", err)
	}
}
