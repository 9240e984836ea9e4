package mathtext

import (
	"math"

	"github.com/benoitkugler/figtemplate/figfont"
)

// Fonts gives the glyph measures required by the layout.
// Extents are ink extents relative to the baseline, both positive
// when the glyph goes above (ascent) or below (descent) it.
type Fonts interface {
	Advance(r rune, slant figfont.Slant, size float64) float64
	InkExtent(r rune, slant figfont.Slant, size float64) (ascent, descent float64)
}

// Glyph is a positioned symbol. X is the pen position,
// Y the baseline offset in a y-down frame (negative is up).
type Glyph struct {
	R     rune
	Slant figfont.Slant
	Size  float64
	X, Y  float64
}

// Rule is a filled rectangle; (X, Y) is its top left corner,
// in a y-down frame.
type Rule struct {
	X, Y, W, H float64
}

// Box is the result of a layout, with its origin on the
// baseline, at the left of the first glyph.
type Box struct {
	Glyphs          []Glyph
	Rules           []Rule
	Width           float64
	Ascent, Descent float64 // ink extents, positive
}

const (
	scriptScale  = 0.7
	supRaise     = 0.38 // minimum superscript shift, in em of the base size
	subDrop      = 0.17 // minimum subscript shift
	scriptSpace  = 0.05 // after scripts, in em
	barGap       = 0.08 // between the body and the bar, in em
	ruleThick    = 0.045
	punctSpacing = 3. / 18 // after math punctuation
)

// place adds the elements of other to b, moved by (dx, dy)
func (b *Box) place(other Box, dx, dy float64) {
	for _, g := range other.Glyphs {
		g.X += dx
		g.Y += dy
		b.Glyphs = append(b.Glyphs, g)
	}
	for _, r := range other.Rules {
		r.X += dx
		r.Y += dy
		b.Rules = append(b.Rules, r)
	}
	b.Ascent = math.Max(b.Ascent, other.Ascent-dy)
	b.Descent = math.Max(b.Descent, other.Descent+dy)
}

// Layout positions the nodes of n for the font size.
func Layout(n Node, size float64, fonts Fonts) Box {
	return layout(n, size, fonts)
}

func layout(n Node, size float64, fonts Fonts) Box {
	switch n := n.(type) {
	case Symbol:
		asc, desc := fonts.InkExtent(n.R, n.Slant, size)
		w := fonts.Advance(n.R, n.Slant, size)
		if n.Punct {
			w += punctSpacing * size
		}
		return Box{
			Glyphs:  []Glyph{{R: n.R, Slant: n.Slant, Size: size}},
			Width:   w,
			Ascent:  asc,
			Descent: desc,
		}
	case Space:
		return Box{Width: float64(n) * size}
	case List:
		var out Box
		for _, child := range n {
			b := layout(child, size, fonts)
			out.place(b, out.Width, 0)
			out.Width += b.Width
		}
		return out
	case Scripts:
		return layoutScripts(n, size, fonts)
	case Bar:
		body := layout(n.Body, size, fonts)
		thick := ruleThick * size
		top := body.Ascent + barGap*size
		out := body
		out.Rules = append(append([]Rule(nil), body.Rules...), Rule{
			X: 0.05 * size, Y: -top - thick,
			W: math.Max(body.Width-0.1*size, thick), H: thick,
		})
		out.Ascent = top + thick
		return out
	}
	return Box{}
}

func layoutScripts(n Scripts, size float64, fonts Fonts) Box {
	out := layout(n.Base, size, fonts)
	base := out
	scriptSize := size * scriptScale
	var width float64
	if n.Sup != nil {
		sup := layout(n.Sup, scriptSize, fonts)
		shift := math.Max(supRaise*size, base.Ascent-0.3*size)
		out.place(sup, base.Width, -shift)
		width = sup.Width
	}
	if n.Sub != nil {
		sub := layout(n.Sub, scriptSize, fonts)
		shift := math.Max(subDrop*size, base.Descent+0.05*size)
		if n.Sup != nil {
			// keep the two scripts apart
			shift = math.Max(shift, 0.25*size)
		}
		out.place(sub, base.Width, shift)
		width = math.Max(width, sub.Width)
	}
	out.Width = base.Width + width + scriptSpace*size
	return out
}
