// Implements a raster backend to render figures,
// by wrapping rasterx.
package figraster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ figdraw.Driver = (*Renderer)(nil) // assert interface conformance

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
	scale  float64         // from points to pixels
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used.
// Scene coordinates are multiplied by `scale`.
func NewRenderer(width, height int, scanner rasterx.Scanner, scale float64) *Renderer {
	return &Renderer{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
		scale:  scale,
	}
}

// Rasterize draws the scene at the given resolution (in dots per inch)
// on a white background.
func Rasterize(scene *figdraw.Scene, dpi float64) *image.RGBA {
	scale := dpi / 72
	w, h := int(math.Ceil(scene.Width*scale)), int(math.Ceil(scene.Height*scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	scene.Draw(NewRenderer(w, h, scanner, scale))
	return img
}

// WritePNG rasterizes the scene and encodes it as PNG.
func WritePNG(w io.Writer, scene *figdraw.Scene, dpi float64) error {
	return png.Encode(w, Rasterize(scene, dpi))
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (figdraw.Filler, figdraw.Stroker) {
	var (
		f figdraw.Filler
		s figdraw.Stroker
	)
	if willFill {
		f = &filler{rd}
	}
	if willStroke {
		s = &stroker{rd}
	}
	return f, s
}

// scaled path commands, shared by the filler and the stroker
type adder struct {
	a     rasterx.Adder
	scale float64
}

func (ad adder) tr(p fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(float64(p.X) * ad.scale),
		Y: fixed.Int26_6(float64(p.Y) * ad.scale),
	}
}

func (ad adder) Start(a fixed.Point26_6) { ad.a.Start(ad.tr(a)) }

func (ad adder) Line(b fixed.Point26_6) { ad.a.Line(ad.tr(b)) }

func (ad adder) QuadBezier(b, c fixed.Point26_6) { ad.a.QuadBezier(ad.tr(b), ad.tr(c)) }

func (ad adder) CubeBezier(b, c, d fixed.Point26_6) {
	ad.a.CubeBezier(ad.tr(b), ad.tr(c), ad.tr(d))
}

func (ad adder) Stop(closeLoop bool) { ad.a.Stop(closeLoop) }

type filler struct{ rd *Renderer }

func (f *filler) adder() adder { return adder{f.rd.filler, f.rd.scale} }

func (f *filler) Clear() { f.rd.filler.Clear() }

func (f *filler) Start(a fixed.Point26_6) { f.adder().Start(a) }

func (f *filler) Line(b fixed.Point26_6) { f.adder().Line(b) }

func (f *filler) QuadBezier(b, c fixed.Point26_6) { f.adder().QuadBezier(b, c) }

func (f *filler) CubeBezier(b, c, d fixed.Point26_6) { f.adder().CubeBezier(b, c, d) }

func (f *filler) Stop(closeLoop bool) { f.adder().Stop(closeLoop) }

func (f *filler) SetWinding(useNonZeroWinding bool) { f.rd.filler.SetWinding(useNonZeroWinding) }

func (f *filler) SetColor(c color.NRGBA, opacity float64) {
	f.rd.filler.SetColor(rasterx.ApplyOpacity(c, opacity))
}

func (f *filler) Draw() { f.rd.filler.Draw() }

type stroker struct{ rd *Renderer }

func (s *stroker) adder() adder { return adder{s.rd.dasher, s.rd.scale} }

func (s *stroker) Clear() { s.rd.dasher.Clear() }

func (s *stroker) Start(a fixed.Point26_6) { s.adder().Start(a) }

func (s *stroker) Line(b fixed.Point26_6) { s.adder().Line(b) }

func (s *stroker) QuadBezier(b, c fixed.Point26_6) { s.adder().QuadBezier(b, c) }

func (s *stroker) CubeBezier(b, c, d fixed.Point26_6) { s.adder().CubeBezier(b, c, d) }

func (s *stroker) Stop(closeLoop bool) { s.adder().Stop(closeLoop) }

func (s *stroker) SetColor(c color.NRGBA, opacity float64) {
	s.rd.dasher.SetColor(rasterx.ApplyOpacity(c, opacity))
}

func (s *stroker) Draw() { s.rd.dasher.Draw() }

var (
	joinToJoin = [...]rasterx.JoinMode{
		figdraw.Round: rasterx.Round,
		figdraw.Bevel: rasterx.Bevel,
		figdraw.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		figdraw.ButtCap:   rasterx.ButtCap,
		figdraw.SquareCap: rasterx.SquareCap,
		figdraw.RoundCap:  rasterx.RoundCap,
	}

	// gaps of dashed lines follow the caps
	gapToFunc = [...]rasterx.GapFunc{
		figdraw.ButtCap:   rasterx.FlatGap,
		figdraw.SquareCap: rasterx.FlatGap,
		figdraw.RoundCap:  rasterx.RoundGap,
	}
)

func (s *stroker) SetStrokeOptions(options figdraw.StrokeOptions) {
	scale := s.rd.scale
	var dash []float64
	if len(options.Dash) != 0 {
		dash = make([]float64, len(options.Dash))
		for i, v := range options.Dash {
			dash[i] = v * scale
		}
	}
	miter := options.MiterLimit
	if miter < 1 {
		miter = 10
	}
	s.rd.dasher.SetStroke(
		fixed.Int26_6(options.LineWidth*scale*64), fixed.Int26_6(miter*64),
		capToFunc[options.Cap], capToFunc[options.Cap], gapToFunc[options.Cap],
		joinToJoin[options.Join], dash, options.DashOffset*scale,
	)
}
