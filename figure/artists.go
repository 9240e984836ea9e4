package figure

import (
	"fmt"
	"math"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/benoitkugler/figtemplate/figstyle"
)

// Artist is an element drawn on axes.
type Artist interface {
	// ZOrder gives the drawing order: lower values are drawn first.
	ZOrder() float64

	// dataLimits returns the data extent used for autoscaling.
	dataLimits() (figpath.Rect, bool)
	draw(r *renderer, t transform) error
}

// default z-orders
const (
	zPatch      = 1
	zCollection = 1
	zLine       = 2
	zAxis       = 2.5
	zText       = 3
	zLegend     = 5
)

// base stores the properties common to all artists.
type base struct {
	zorder float64
	alpha  float64 // negative for unset
	label  string
}

func newBase(z float64) base { return base{zorder: z, alpha: -1} }

func (b *base) ZOrder() float64 { return b.zorder }

// SetZOrder changes the drawing order.
func (b *base) SetZOrder(z float64) { b.zorder = z }

// SetAlpha sets an opacity in [0, 1] overriding the opacity of the colors.
func (b *base) SetAlpha(alpha float64) { b.alpha = math.Max(0, math.Min(1, alpha)) }

// SetLabel sets the text used by the legend.
func (b *base) SetLabel(s string) { b.label = s }

// Label returns the legend text.
func (b *base) Label() string { return b.label }

// PatchProps style patches. Nil colors are not painted;
// a zero LineWidth selects the default width.
type PatchProps struct {
	FaceColor, EdgeColor figstyle.Color
	LineStyle            figstyle.LineStyle
	LineWidth            float64
}

type patchKind uint8

const (
	circlePatch patchKind = iota
	rectanglePatch
)

// Patch is a filled shape, in data coordinates.
type Patch struct {
	base
	PatchProps

	kind patchKind
	x, y float64 // center (circle) or bottom left corner (rectangle)
	w, h float64 // radius is stored in w
}

// NewCircle returns a circle centered at `center`.
func NewCircle(center [2]float64, radius float64, props PatchProps) *Patch {
	return &Patch{base: newBase(zPatch), PatchProps: props, kind: circlePatch, x: center[0], y: center[1], w: radius}
}

// NewRectangle returns a rectangle with bottom left corner `xy`.
func NewRectangle(xy [2]float64, width, height float64, props PatchProps) *Patch {
	return &Patch{base: newBase(zPatch), PatchProps: props, kind: rectanglePatch, x: xy[0], y: xy[1], w: width, h: height}
}

// AddPatch adds p to the axes and returns it.
func (ax *Axes) AddPatch(p *Patch) *Patch {
	ax.add(p)
	return p
}

func (p *Patch) dataLimits() (figpath.Rect, bool) {
	if p.kind == circlePatch {
		return figpath.Rect{X0: p.x - p.w, Y0: p.y - p.w, X1: p.x + p.w, Y1: p.y + p.w}, true
	}
	return figpath.Rect{
		X0: math.Min(p.x, p.x+p.w), Y0: math.Min(p.y, p.y+p.h),
		X1: math.Max(p.x, p.x+p.w), Y1: math.Max(p.y, p.y+p.h),
	}, true
}

func (p *Patch) path(t transform) figpath.Path {
	var out figpath.Path
	switch p.kind {
	case circlePatch:
		cx, cy := t.apply(p.x, p.y)
		sx, sy := t.scale()
		out.AddEllipse(cx, cy, p.w*sx, p.w*sy)
	case rectanglePatch:
		x0, y0 := t.apply(p.x, p.y)
		x1, y1 := t.apply(p.x+p.w, p.y+p.h)
		out.AddRect(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1))
	}
	return out
}

func (p *Patch) draw(r *renderer, t transform) error {
	lw := p.LineWidth
	if lw == 0 {
		lw = r.params.LineWidth
	}
	sh := figdraw.Shape{
		Path:   p.path(t),
		Fill:   paint(p.FaceColor, p.alpha),
		Stroke: stroke(p.EdgeColor, p.alpha, lw, p.LineStyle),
	}
	r.scene.Add(sh)
	return nil
}

// ArrowStyle selects the heads drawn at the ends of an arrow.
type ArrowStyle uint8

const (
	ArrowNone  ArrowStyle = iota // "-"
	ArrowEnd                     // "->"
	ArrowStart                   // "<-"
	ArrowBoth                    // "<->"
)

// ParseArrowStyle reads the usual "-", "->", "<-" and "<->" notations.
func ParseArrowStyle(s string) (ArrowStyle, error) {
	switch s {
	case "-":
		return ArrowNone, nil
	case "->":
		return ArrowEnd, nil
	case "<-":
		return ArrowStart, nil
	case "<->":
		return ArrowBoth, nil
	}
	return 0, fmt.Errorf("unknown arrow style %q", s)
}

func (s ArrowStyle) String() string {
	switch s {
	case ArrowNone:
		return "-"
	case ArrowEnd:
		return "->"
	case ArrowStart:
		return "<-"
	case ArrowBoth:
		return "<->"
	default:
		return "<unknown ArrowStyle>"
	}
}

// ArrowProps style the arrow of an annotation.
type ArrowProps struct {
	Style     ArrowStyle
	Color     figstyle.Color
	LineWidth float64
}

const (
	arrowShrink     = 2   // points removed at both ends
	arrowHeadLength = 0.4 // in font size
	arrowHeadWidth  = 0.2
)

// Annotation is a text at `xytext` with an optional arrow
// pointing to `xy`, both in data coordinates.
type Annotation struct {
	base

	Text     string
	XY       [2]float64
	XYText   [2]float64
	Arrow    *ArrowProps
	FontSize float64 // also scales the arrow heads; 0 for the default
	Color    figstyle.Color
}

// Annotate adds an annotation. `arrow` may be nil.
func (ax *Axes) Annotate(text string, xy, xytext [2]float64, arrow *ArrowProps) *Annotation {
	a := &Annotation{
		base: newBase(zText), Text: text, XY: xy, XYText: xytext,
		Arrow: arrow, Color: figstyle.MustColor("black"),
	}
	ax.add(a)
	return a
}

func (a *Annotation) dataLimits() (figpath.Rect, bool) { return figpath.Rect{}, false }

func (a *Annotation) draw(r *renderer, t transform) error {
	size := a.FontSize
	if size <= 0 {
		size = r.params.FontSize
	}
	if a.Arrow != nil {
		lw := a.Arrow.LineWidth
		if lw == 0 {
			lw = r.params.LineWidth
		}
		path := arrowPath(t, a.XYText, a.XY, a.Arrow.Style, size, lw)
		if s := stroke(a.Arrow.Color, a.alpha, lw, figstyle.Solid); s != nil && len(path) != 0 {
			s.Join, s.Cap = figdraw.Round, figdraw.RoundCap
			r.scene.Add(figdraw.Shape{Path: path, Stroke: s})
		}
	}
	x, y := t.apply(a.XYText[0], a.XYText[1])
	return r.text(a.Text, size, a.Color, x, y, Left, Baseline, 0)
}

// arrowPath returns the open path of an arrow from `from` to `to`, in page coordinates.
// Heads are scaled by `mutation` (usually the font size).
func arrowPath(t transform, from, to [2]float64, style ArrowStyle, mutation, lineWidth float64) figpath.Path {
	x0, y0 := t.apply(from[0], from[1])
	x1, y1 := t.apply(to[0], to[1])
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length <= 2*arrowShrink {
		return nil
	}
	ux, uy := dx/length, dy/length
	x0, y0 = x0+arrowShrink*ux, y0+arrowShrink*uy
	x1, y1 = x1-arrowShrink*ux, y1-arrowShrink*uy

	hl, hw := arrowHeadLength*mutation, arrowHeadWidth*mutation
	// move the tips back so that the stroked heads end on the target points
	pad := 0.5 * lineWidth * math.Hypot(hl, hw) / hw
	endHead := style == ArrowEnd || style == ArrowBoth
	startHead := style == ArrowStart || style == ArrowBoth
	if endHead {
		x1, y1 = x1-pad*ux, y1-pad*uy
	}
	if startHead {
		x0, y0 = x0+pad*ux, y0+pad*uy
	}

	var out figpath.Path
	out.AddPolyline([]float64{x0, y0, x1, y1}, false)
	head := func(tx, ty, dx, dy float64) {
		bx, by := tx-hl*dx, ty-hl*dy
		out.AddPolyline([]float64{bx - hw*dy, by + hw*dx, tx, ty, bx + hw*dy, by - hw*dx}, false)
	}
	if endHead {
		head(x1, y1, ux, uy)
	}
	if startHead {
		head(x0, y0, -ux, -uy)
	}
	return out
}

// Marker is the shape of scatter points.
type Marker uint8

const (
	MarkerCircle Marker = iota
	MarkerSquare
	MarkerTriangle
)

// ScatterProps style scatter markers. Size is the marker area in points².
// A zero Size or LineWidth selects the defaults.
type ScatterProps struct {
	Marker               Marker
	Size                 float64
	FaceColor, EdgeColor figstyle.Color
	LineWidth            float64
}

// Scatter is a collection of markers.
type Scatter struct {
	base
	ScatterProps
	xs, ys []float64
}

// Scatter adds markers at the given data points.
// Extra coordinates of the longer slice are ignored.
func (ax *Axes) Scatter(xs, ys []float64, props ScatterProps) *Scatter {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if props.FaceColor == nil && props.EdgeColor == nil {
		props.FaceColor = ax.nextColor()
	}
	s := &Scatter{base: newBase(zCollection), ScatterProps: props, xs: xs[:n], ys: ys[:n]}
	ax.add(s)
	return s
}

func (s *Scatter) dataLimits() (figpath.Rect, bool) {
	if len(s.xs) == 0 {
		return figpath.Rect{}, false
	}
	out := figpath.EmptyRect()
	for i := range s.xs {
		out = out.Union(figpath.Rect{X0: s.xs[i], Y0: s.ys[i], X1: s.xs[i], Y1: s.ys[i]})
	}
	return out, true
}

// markerPath adds a marker of diameter d centered at (x, y)
func markerPath(out *figpath.Path, m Marker, x, y, d float64) {
	r := d / 2
	switch m {
	case MarkerSquare:
		out.AddRect(x-r, y-r, x+r, y+r)
	case MarkerTriangle:
		out.AddPolyline([]float64{x, y - r, x - r, y + r, x + r, y + r}, true)
	default:
		out.AddCircle(x, y, r)
	}
}

func (s *Scatter) draw(r *renderer, t transform) error {
	size := s.Size
	if size <= 0 {
		size = 36 // default marker size is 6 points
	}
	lw := s.LineWidth
	if lw == 0 {
		lw = r.params.LineWidth
	}
	d := math.Sqrt(size)
	for i := range s.xs {
		var p figpath.Path
		x, y := t.apply(s.xs[i], s.ys[i])
		markerPath(&p, s.Marker, x, y, d)
		r.scene.Add(figdraw.Shape{
			Path:   p,
			Fill:   paint(s.FaceColor, s.alpha),
			Stroke: stroke(s.EdgeColor, s.alpha, lw, figstyle.Solid),
		})
	}
	return nil
}

// TextProps style free texts. A zero FontSize selects the default size,
// a nil Color draws in black.
type TextProps struct {
	HA       HAlign
	VA       VAlign
	FontSize float64
	Color    figstyle.Color
	Rotation float64 // in degrees
}

// Text is a label placed in data coordinates.
type Text struct {
	base
	TextProps
	X, Y float64
	S    string
}

// Text adds the label s, anchored at (x, y).
func (ax *Axes) Text(x, y float64, s string, props TextProps) *Text {
	if props.Color == nil {
		props.Color = figstyle.MustColor("black")
	}
	txt := &Text{base: newBase(zText), TextProps: props, X: x, Y: y, S: s}
	ax.add(txt)
	return txt
}

func (txt *Text) dataLimits() (figpath.Rect, bool) { return figpath.Rect{}, false }

func (txt *Text) draw(r *renderer, t transform) error {
	size := txt.FontSize
	if size <= 0 {
		size = r.params.FontSize
	}
	c := txt.Color
	if txt.alpha >= 0 {
		cp := *c
		cp.A = uint8(txt.alpha * 255)
		c = &cp
	}
	x, y := t.apply(txt.X, txt.Y)
	return r.text(txt.S, size, c, x, y, txt.HA, txt.VA, txt.Rotation)
}

// LineProps style lines. A nil Color selects the next color of the cycle,
// a zero LineWidth the default width.
type LineProps struct {
	Color     figstyle.Color
	LineWidth float64
	LineStyle figstyle.LineStyle
}

// Line is a polyline in data coordinates.
type Line struct {
	base
	LineProps
	xs, ys []float64
}

// Plot adds the polyline through (xs[i], ys[i]).
func (ax *Axes) Plot(xs, ys []float64, props LineProps) *Line {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if props.Color == nil {
		props.Color = ax.nextColor()
	}
	l := &Line{base: newBase(zLine), LineProps: props, xs: xs[:n], ys: ys[:n]}
	ax.add(l)
	return l
}

func (l *Line) dataLimits() (figpath.Rect, bool) {
	if len(l.xs) == 0 {
		return figpath.Rect{}, false
	}
	out := figpath.EmptyRect()
	for i := range l.xs {
		out = out.Union(figpath.Rect{X0: l.xs[i], Y0: l.ys[i], X1: l.xs[i], Y1: l.ys[i]})
	}
	return out, true
}

func (l *Line) draw(r *renderer, t transform) error {
	if len(l.xs) < 2 {
		return nil
	}
	lw := l.LineWidth
	if lw == 0 {
		lw = r.params.LineWidth
	}
	points := make([]float64, 0, 2*len(l.xs))
	for i := range l.xs {
		x, y := t.apply(l.xs[i], l.ys[i])
		points = append(points, x, y)
	}
	var p figpath.Path
	p.AddPolyline(points, false)
	s := stroke(l.Color, l.alpha, lw, l.LineStyle)
	if s != nil {
		s.Join, s.Cap = figdraw.Round, figdraw.SquareCap
	}
	r.scene.Add(figdraw.Shape{Path: p, Stroke: s})
	return nil
}
