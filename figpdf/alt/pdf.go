// Alternative implementation of PDF rendering, writing
// content streams with github.com/benoitkugler/pdf.
package alt

import (
	"image/color"
	"io"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ figdraw.Driver  = Renderer{}
	_ figdraw.Filler  = (*filler)(nil)
	_ figdraw.Stroker = (*stroker)(nil)
	_ figdraw.Stroker = (*patherStroker)(nil)
)

type Renderer struct {
	pdf                 *contentstream.Appearance
	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState
}

// implements the common path commands,
// shared by the filler and the stroker.
// Operations are buffered until the painting operator,
// since the graphic state may not change inside a path object.
type pather struct {
	pdf  *contentstream.Appearance
	ops  []contentstream.Operation
	last fixed.Point26_6 // current point, to convert quadratic curves
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
	fillOpacityStates map[float64]*model.GraphicState

	state []contentstream.Operation // color and opacity

	// if true, the painting is done by the stroker
	deferred bool
}

// implements the stroking operation, while
// also writing the path
type patherStroker struct {
	pather
	strokeOpacityStates map[float64]*model.GraphicState

	state []contentstream.Operation // options, color and opacity
}

// only stroke the current path, established by
// the filler
type stroker struct {
	patherStroker
	fill *filler
}

// Write renders the scene as a one page PDF document.
func Write(w io.Writer, scene *figdraw.Scene) error {
	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, NewPage(scene))
	return doc.Write(w, nil)
}

// NewPage renders the scene on a page of the same size.
func NewPage(scene *figdraw.Scene) *model.PageObject {
	pdf := contentstream.NewAppearance(scene.Width, scene.Height)
	renderer := NewRenderer(&pdf)
	pdf.Ops(
		contentstream.OpSave{},
		// scenes use a y-down frame
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, scene.Height}},
	)
	scene.Draw(renderer)
	pdf.Ops(contentstream.OpRestore{})

	page := &model.PageObject{}
	pdf.ApplyToPageObject(page, true)
	return page
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(cs *contentstream.Appearance) Renderer {
	return Renderer{
		pdf:                 cs,
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
}

func (r Renderer) SetupDrawers(willFill, willDraw bool) (f figdraw.Filler, s figdraw.Stroker) {
	if willFill {
		fi := &filler{pather: pather{pdf: r.pdf}, fillOpacityStates: r.fillOpacityStates, deferred: willDraw}
		f = fi
		if willDraw { // dont write the same path twice
			s = &stroker{patherStroker: patherStroker{pather: pather{pdf: r.pdf}, strokeOpacityStates: r.strokeOpacityStates}, fill: fi}
		} // else s = nil
	} else if willDraw { // write the path
		s = &patherStroker{pather: pather{pdf: r.pdf}, strokeOpacityStates: r.strokeOpacityStates}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() {
	p.ops = p.ops[:0]
}

func (p *pather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	p.ops = append(p.ops, contentstream.OpMoveTo{X: x, Y: y})
	p.last = a
}

func (p *pather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	p.ops = append(p.ops, contentstream.OpLineTo{X: x, Y: y})
	p.last = b
}

// PDF has no quadratic curves: the control points
// are elevated to a cubic one.
func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	x0, y0 := fixedTof(p.last)
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.ops = append(p.ops, contentstream.OpCubicTo{
		X1: x0 + 2./3*(cx-x0), Y1: y0 + 2./3*(cy-y0),
		X2: x + 2./3*(cx-x), Y2: y + 2./3*(cy-y),
		X3: x, Y3: y,
	})
	p.last = c
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.ops = append(p.ops, contentstream.OpCubicTo{X1: cx0, Y1: cy0, X2: cx1, Y2: cy1, X3: x, Y3: y})
	p.last = d
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.ops = append(p.ops, contentstream.OpClosePath{})
	}
}

func (f *filler) SetColor(c color.NRGBA, opacity float64) {
	f.pdf.SetColorFill(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	opacity *= float64(c.A) / 255.
	// cache the opacity states
	gs, ok := f.fillOpacityStates[opacity]
	if !ok {
		gs = &model.GraphicState{Ca: model.ObjFloat(opacity), BM: []model.Name{"Normal"}}
		f.fillOpacityStates[opacity] = gs
	}
	name := f.pdf.AddExtGState(gs)
	f.state = []contentstream.Operation{contentstream.OpSetExtGState{Dict: name}}
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	if f.deferred {
		return
	}
	f.pdf.Ops(f.state...)
	f.pdf.Ops(f.ops...)
	if f.useNonZeroWinding {
		f.pdf.Ops(contentstream.OpFill{})
	} else {
		f.pdf.Ops(contentstream.OpEOFill{})
	}
}

func (f *patherStroker) SetStrokeOptions(options figdraw.StrokeOptions) {
	var capStyle, joinStyle uint8
	switch options.Cap {
	case figdraw.ButtCap:
		capStyle = 0
	case figdraw.RoundCap:
		capStyle = 1
	case figdraw.SquareCap:
		capStyle = 2
	}
	switch options.Join {
	case figdraw.Bevel:
		joinStyle = 2
	case figdraw.Miter:
		joinStyle = 0
	case figdraw.Round:
		joinStyle = 1
	}
	miter := options.MiterLimit
	if miter < 1 {
		miter = 10
	}

	f.state = append(f.state,
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: options.Dash,
			Phase: options.DashOffset,
		}},
		contentstream.OpSetLineWidth{W: options.LineWidth},
		contentstream.OpSetLineCap{Style: capStyle},
		contentstream.OpSetLineJoin{Style: joinStyle},
		contentstream.OpSetMiterLimit{Limit: miter},
	)
}

func (f *patherStroker) SetColor(c color.NRGBA, opacity float64) {
	f.pdf.SetColorStroke(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	opacity *= float64(c.A) / 255.
	// cache the opacity states
	gs, ok := f.strokeOpacityStates[opacity]
	if !ok {
		gs = &model.GraphicState{CA: model.ObjFloat(opacity), BM: []model.Name{"Normal"}}
		f.strokeOpacityStates[opacity] = gs
	}
	name := f.pdf.AddExtGState(gs)
	f.state = append(f.state, contentstream.OpSetExtGState{Dict: name})
}

func (f *patherStroker) Draw() {
	f.pdf.Ops(f.state...)
	f.pdf.Ops(f.ops...)
	f.pdf.Ops(contentstream.OpStroke{})
	f.state = f.state[:0]
}

// the stroker doesnt write the path again

func (p *stroker) Clear() {}

func (p *stroker) Start(a fixed.Point26_6) {}

func (p *stroker) Line(b fixed.Point26_6) {}

func (p *stroker) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {}

func (p *stroker) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {}

func (p *stroker) Stop(closeLoop bool) {}

func (p *stroker) Draw() {
	p.pdf.Ops(p.fill.state...)
	p.pdf.Ops(p.state...)
	p.pdf.Ops(p.fill.ops...)
	if p.fill.useNonZeroWinding {
		p.pdf.Ops(contentstream.OpFillStroke{})
	} else {
		p.pdf.Ops(contentstream.OpEOFillStroke{})
	}
	p.state = p.state[:0]
}
