package figure

import (
	"fmt"
	"math"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figfont"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/benoitkugler/figtemplate/figstyle"
	"github.com/benoitkugler/figtemplate/mathtext"
)

// HAlign is the horizontal alignment of a text relative to its anchor.
type HAlign uint8

const (
	Left HAlign = iota
	Center
	Right
)

// VAlign is the vertical alignment of a text relative to its anchor.
type VAlign uint8

const (
	Baseline VAlign = iota
	Top
	Middle
	Bottom
)

// typesetter turns labels into filled glyph outlines.
type typesetter struct {
	family *figfont.Family
	useTeX bool
	mode   mathtext.ErrorMode
}

// block is a laid out label, ready to be placed.
type block struct {
	source string
	box    mathtext.Box
}

func (ts *typesetter) layout(s string, size float64) (block, error) {
	var l mathtext.List
	if ts.useTeX {
		var err error
		l, err = mathtext.Parse(s, ts.mode)
		if err != nil {
			return block{}, fmt.Errorf("label %q: %w", s, err)
		}
	} else {
		l = mathtext.PlainText(s)
	}
	return block{source: s, box: mathtext.Layout(l, size, ts.family)}, nil
}

// origin returns the position of the baseline start for a block
// anchored at (x, y) in page coordinates.
func (b block) origin(x, y float64, ha HAlign, va VAlign) (float64, float64) {
	switch ha {
	case Center:
		x -= b.box.Width / 2
	case Right:
		x -= b.box.Width
	}
	switch va {
	case Top:
		y += b.box.Ascent
	case Bottom:
		y -= b.box.Descent
	case Middle:
		y += (b.box.Ascent - b.box.Descent) / 2
	}
	return x, y
}

// extent returns the page box of a block placed at (x, y).
func (b block) extent(x, y float64, ha HAlign, va VAlign) figpath.Rect {
	ox, oy := b.origin(x, y, ha, va)
	return figpath.Rect{X0: ox, Y0: oy - b.box.Ascent, X1: ox + b.box.Width, Y1: oy + b.box.Descent}
}

// outline returns the glyphs and rules of b as one path, with
// its origin at (x, y) and rotated by `angle` (in degrees, counter clockwise)
// around the origin.
func (ts *typesetter) outline(b block, x, y, angle float64) (figpath.Path, error) {
	var out figpath.Path
	for _, g := range b.box.Glyphs {
		p, err := ts.family.Outline(g.R, g.Slant, g.Size, x+g.X, y+g.Y)
		if err != nil {
			return nil, err
		}
		out.Append(p)
	}
	for _, r := range b.box.Rules {
		out.AddRect(x+r.X, y+r.Y, x+r.X+r.W, y+r.Y+r.H)
	}
	if angle != 0 {
		// y axis is going down: a counter clockwise rotation is negative
		m := figpath.Identity.Translate(x, y).Rotate(-angle * math.Pi / 180).Translate(-x, -y)
		out = out.Transform(m)
	}
	return out, nil
}

// text adds the label s anchored at (x, y) to the scene.
func (r *renderer) text(s string, size float64, c figstyle.Color, x, y float64, ha HAlign, va VAlign, angle float64) error {
	if s == "" || c == nil {
		return nil
	}
	b, err := r.ts.layout(s, size)
	if err != nil {
		return err
	}
	var ox, oy float64
	if angle == 0 {
		ox, oy = b.origin(x, y, ha, va)
	} else {
		// rotated labels are only used for vertical axis labels:
		// alignment applies to the rotated box
		ox, oy = x, y
		switch ha {
		case Center:
			oy += b.box.Width / 2
		case Right:
			oy += b.box.Width
		}
		switch va {
		case Top:
			ox += b.box.Ascent
		case Bottom:
			ox -= b.box.Descent
		case Middle:
			ox += (b.box.Ascent - b.box.Descent) / 2
		}
	}
	path, err := r.ts.outline(b, ox, oy, angle)
	if err != nil {
		return err
	}
	r.scene.Add(figdraw.Shape{
		Path:  path,
		Fill:  paint(c, -1),
		Title: s,
	})
	return nil
}
