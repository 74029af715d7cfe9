// 19 Oct 2026

// Package arcplot draws a chain's layers as an arc diagram. Residues sit
// along a baseline, each base pair is a half circle above it, coloured by
// its layer.
package arcplot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/rnaannot/pkg/layer"
)

// Options for drawing
type Options struct {
	Step     int     // pixels per residue
	Margin   int     // pixels around everything
	FontSize float64 // points
	Title    string  // if empty, use the dot-bracket header
}

// DefaultOptions look reasonable for a few hundred residues
var DefaultOptions = Options{Step: 6, Margin: 30, FontSize: 10}

// palette has one colour per layer, used round robin
var palette = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff}, {0xd6, 0x27, 0x28, 0xff}, {0x2c, 0xa0, 0x2c, 0xff},
	{0xff, 0x7f, 0x0e, 0xff}, {0x94, 0x67, 0xbd, 0xff}, {0x8c, 0x56, 0x4b, 0xff},
	{0xe3, 0x77, 0xc2, 0xff}, {0x7f, 0x7f, 0x7f, 0xff}, {0xbc, 0xbd, 0x22, 0xff},
	{0x17, 0xbe, 0xcf, 0xff},
}

var errEmpty = errors.New("arcplot: nothing to draw")

// halfCircle above the baseline y from x0 to x1
func halfCircle(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	r := float64(x1-x0) / 2
	cx := float64(x0) + r
	n := int(math.Ceil(math.Pi*r)) + 2 // about one point per pixel
	for k := 0; k <= n; k++ {
		t := math.Pi * float64(k) / float64(n)
		x := cx - r*math.Cos(t)
		yy := float64(y) - r*math.Sin(t)
		img.SetRGBA(int(math.Round(x)), int(math.Round(yy)), c)
	}
}

// Draw writes a PNG
func Draw(w io.Writer, db *layer.DotBracket, opts Options) error {
	n := db.Len()
	if n == 0 {
		return errEmpty
	}
	maxSpan := 0
	for _, a := range db.Arcs {
		if s := a.J - a.I; s > maxSpan {
			maxSpan = s
		}
	}
	textH := int(3 * opts.FontSize)
	width := 2*opts.Margin + n*opts.Step
	base := opts.Margin + textH + maxSpan*opts.Step/2
	height := base + opts.Margin + textH
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	xOf := func(col int) int { return opts.Margin + col*opts.Step + opts.Step/2 }
	grey := color.RGBA{0x60, 0x60, 0x60, 0xff}
	for x := xOf(0); x <= xOf(n-1); x++ {
		img.SetRGBA(x, base, grey)
	}
	for _, a := range db.Arcs {
		halfCircle(img, xOf(a.I), xOf(a.J), base, palette[a.Layer%len(palette)])
	}

	font, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return fmt.Errorf("arcplot font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(font)
	ctx.SetFontSize(opts.FontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.Black)
	title := opts.Title
	if title == "" {
		title = db.Header()
	}
	if _, err := ctx.DrawString(title, freetype.Pt(opts.Margin, opts.Margin)); err != nil {
		return fmt.Errorf("arcplot title: %w", err)
	}
	labelY := base + int(1.5*opts.FontSize)
	for k, col := range db.Col {
		if k%10 != 0 {
			continue
		}
		if _, err := ctx.DrawString(db.IDs[k].String(), freetype.Pt(xOf(col), labelY)); err != nil {
			return fmt.Errorf("arcplot label: %w", err)
		}
	}
	return png.Encode(w, img)
}
