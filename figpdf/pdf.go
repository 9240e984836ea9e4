// Implements a PDF backend to render figures,
// by wrapping github.com/jung-kurt/gofpdf.
package figpdf

import (
	"image/color"
	"io"
	"time"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ figdraw.Driver  = Renderer{}
	_ figdraw.Filler  = (*filler)(nil)
	_ figdraw.Stroker = (*stroker)(nil)
	_ figdraw.Stroker = (*patherStroker)(nil)
)

// creationDate is written in every document, so that
// rendering the same scene always produces the same bytes.
var creationDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker.
// Commands are buffered since the graphic state
// may not be changed while building a path.
type pather struct {
	pdf  *gofpdf.Fpdf
	path figpath.Path
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
	color             color.NRGBA
	opacity           float64

	// if true, the painting is done by the stroker
	deferred bool
}

// implements the stroking operation, while
// also writing the path
type patherStroker struct {
	pather
	options figdraw.StrokeOptions
	color   color.NRGBA
	opacity float64
}

// strokes the path accumulated by the filler
type stroker struct {
	patherStroker
	fill *filler
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// NewDocument returns an empty document with one page
// of the scene size, in points.
func NewDocument(width, height float64) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCreationDate(creationDate)
	pdf.SetModificationDate(creationDate)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

// Write renders the scene as a one page PDF document.
func Write(w io.Writer, scene *figdraw.Scene) error {
	pdf := NewDocument(scene.Width, scene.Height)
	scene.Draw(NewRenderer(pdf))
	return pdf.Output(w)
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f figdraw.Filler, s figdraw.Stroker) {
	if willFill {
		fi := &filler{pather: pather{pdf: r.pdf}, deferred: willStroke}
		f = fi
		if willStroke { // dont write the same path twice
			s = &stroker{patherStroker: patherStroker{pather: pather{pdf: r.pdf}}, fill: fi}
		}
	} else if willStroke {
		s = &patherStroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

func (p *pather) Clear() { p.path.Clear() }

func (p *pather) Start(a fixed.Point26_6) { p.path.Start(a) }

func (p *pather) Line(b fixed.Point26_6) { p.path.Line(b) }

func (p *pather) QuadBezier(b, c fixed.Point26_6) { p.path.QuadBezier(b, c) }

func (p *pather) CubeBezier(b, c, d fixed.Point26_6) { p.path.CubeBezier(b, c, d) }

func (p *pather) Stop(closeLoop bool) { p.path.Stop(closeLoop) }

// write sends the buffered path to the document
func (p *pather) write() {
	for _, op := range p.path {
		switch op := op.(type) {
		case figpath.MoveTo:
			p.pdf.MoveTo(figpath.FromFixedP(fixed.Point26_6(op)))
		case figpath.LineTo:
			p.pdf.LineTo(figpath.FromFixedP(fixed.Point26_6(op)))
		case figpath.QuadTo:
			cx, cy := figpath.FromFixedP(op[0])
			x, y := figpath.FromFixedP(op[1])
			p.pdf.CurveTo(cx, cy, x, y)
		case figpath.CubicTo:
			cx0, cy0 := figpath.FromFixedP(op[0])
			cx1, cy1 := figpath.FromFixedP(op[1])
			x, y := figpath.FromFixedP(op[2])
			p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
		case figpath.Close:
			p.pdf.ClosePath()
		}
	}
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) SetColor(color color.NRGBA, opacity float64) {
	f.color = color
	f.opacity = opacity * float64(color.A) / 255.
}

func (f *filler) setFillState() {
	f.pdf.SetFillColor(int(f.color.R), int(f.color.G), int(f.color.B))
}

func (f *filler) styleStr(stroke bool) string {
	s := "F"
	if stroke {
		s = "DF"
	}
	if !f.useNonZeroWinding {
		s += "*"
	}
	return s
}

func (f *filler) Draw() {
	if f.deferred {
		return
	}
	f.paint()
}

func (f *filler) paint() {
	f.setFillState()
	f.pdf.SetAlpha(f.opacity, "Normal")
	f.write()
	f.pdf.DrawPath(f.styleStr(false))
}

func (s *patherStroker) SetStrokeOptions(options figdraw.StrokeOptions) {
	s.options = options
}

func (s *patherStroker) SetColor(color color.NRGBA, opacity float64) {
	s.color = color
	s.opacity = opacity * float64(color.A) / 255.
}

func (s *patherStroker) setStrokeState() {
	o := s.options
	s.pdf.SetDrawColor(int(s.color.R), int(s.color.G), int(s.color.B))
	s.pdf.SetLineWidth(o.LineWidth)
	s.pdf.SetLineCapStyle(o.Cap.String())
	s.pdf.SetLineJoinStyle(o.Join.String())
	s.pdf.SetDashPattern(o.Dash, o.DashOffset)
}

func (s *patherStroker) Draw() {
	s.setStrokeState()
	s.pdf.SetAlpha(s.opacity, "Normal")
	s.write()
	s.pdf.DrawPath("D")
}

// the stroker doesnt record the path again

func (s *stroker) Clear() {}

func (s *stroker) Start(a fixed.Point26_6) {}

func (s *stroker) Line(b fixed.Point26_6) {}

func (s *stroker) QuadBezier(b, c fixed.Point26_6) {}

func (s *stroker) CubeBezier(b, c, d fixed.Point26_6) {}

func (s *stroker) Stop(closeLoop bool) {}

func (s *stroker) Draw() {
	f := s.fill
	if f.opacity == s.opacity {
		// one operation for both painting
		f.setFillState()
		s.setStrokeState()
		s.pdf.SetAlpha(s.opacity, "Normal")
		f.write()
		s.pdf.DrawPath(f.styleStr(true))
		return
	}
	f.paint()
	s.path = f.path
	s.patherStroker.Draw()
}
