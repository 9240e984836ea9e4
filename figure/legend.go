package figure

import (
	"math"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/benoitkugler/figtemplate/figstyle"
)

// legend layout, in font size units
const (
	legendBorderPad  = 0.4
	legendAxesPad    = 0.5
	legendHandleLen  = 2.0
	legendHandleText = 0.8
	legendSpacing    = 0.5
)

// legend lists the labeled artists of an axes, in its upper right corner.
type legend struct {
	ax      *Axes
	entries []Artist
}

// Legend adds a legend for the lines, patches and scatters with a label.
// It returns false if there is nothing to show.
func (ax *Axes) Legend() bool {
	var entries []Artist
	for _, a := range ax.artists {
		// labels starting with an underscore are hidden
		if label := entryLabel(a); label != "" && label[0] != '_' {
			entries = append(entries, a)
		}
	}
	if len(entries) == 0 {
		ax.legend = nil
		return false
	}
	ax.legend = &legend{ax: ax, entries: entries}
	return true
}

func (*legend) ZOrder() float64 { return zLegend }

func (*legend) dataLimits() (figpath.Rect, bool) { return figpath.Rect{}, false }

func entryLabel(a Artist) string {
	switch a := a.(type) {
	case *Line:
		return a.label
	case *Patch:
		return a.label
	case *Scatter:
		return a.label
	}
	return ""
}

func (l *legend) draw(r *renderer, t transform) error {
	fs := r.params.LegendFontSize
	blocks := make([]block, len(l.entries))
	textW, rowH := 0., 0.
	for i, a := range l.entries {
		b, err := r.ts.layout(entryLabel(a), fs)
		if err != nil {
			return err
		}
		blocks[i] = b
		textW = math.Max(textW, b.box.Width)
		rowH = math.Max(rowH, b.box.Ascent+b.box.Descent)
	}
	rowH = math.Max(rowH, 0.7*fs)

	pad := legendBorderPad * fs
	w := 2*pad + legendHandleLen*fs + legendHandleText*fs + textW
	h := 2*pad + float64(len(blocks))*rowH + float64(len(blocks)-1)*legendSpacing*fs
	x1 := t.box.X1 - legendAxesPad*fs
	y0 := t.box.Y0 + legendAxesPad*fs
	x0 := x1 - w

	var frame figpath.Path
	frame.AddRect(x0, y0, x1, y0+h)
	r.scene.Add(figdraw.Shape{
		Path:   frame,
		Fill:   paint(figstyle.MustColor("white"), 0.8),
		Stroke: stroke(figstyle.MustColor("#cccccc"), 0.8, 0.8, figstyle.Solid),
	})

	black := figstyle.MustColor("black")
	for i, a := range l.entries {
		mid := y0 + pad + float64(i)*(rowH+legendSpacing*fs) + rowH/2
		hx0, hx1 := x0+pad, x0+pad+legendHandleLen*fs
		l.drawHandle(r, a, hx0, hx1, mid, fs)
		tx := hx1 + legendHandleText*fs
		if err := r.text(blocks[i].source, fs, black, tx, mid, Left, Middle, 0); err != nil {
			return err
		}
	}
	return nil
}

func (l *legend) drawHandle(r *renderer, a Artist, x0, x1, y, fs float64) {
	var p figpath.Path
	switch a := a.(type) {
	case *Line:
		p.AddPolyline([]float64{x0, y, x1, y}, false)
		lw := a.LineWidth
		if lw == 0 {
			lw = r.params.LineWidth
		}
		r.scene.Add(figdraw.Shape{Path: p, Stroke: stroke(a.Color, a.alpha, lw, a.LineStyle)})
	case *Patch:
		p.AddRect(x0, y-0.35*fs, x1, y+0.35*fs)
		lw := a.LineWidth
		if lw == 0 {
			lw = r.params.LineWidth
		}
		r.scene.Add(figdraw.Shape{
			Path:   p,
			Fill:   paint(a.FaceColor, a.alpha),
			Stroke: stroke(a.EdgeColor, a.alpha, lw, a.LineStyle),
		})
	case *Scatter:
		size := a.Size
		if size <= 0 {
			size = 36
		}
		markerPath(&p, a.Marker, (x0+x1)/2, y, math.Min(math.Sqrt(size), 0.7*fs))
		lw := a.LineWidth
		if lw == 0 {
			lw = r.params.LineWidth
		}
		r.scene.Add(figdraw.Shape{
			Path:   p,
			Fill:   paint(a.FaceColor, a.alpha),
			Stroke: stroke(a.EdgeColor, a.alpha, lw, figstyle.Solid),
		})
	}
}
