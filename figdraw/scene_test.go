package figdraw

import (
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// recorder logs every call it receives
type recorder struct {
	calls []string
	kind  string
}

func (r *recorder) log(format string, args ...interface{}) {
	r.calls = append(r.calls, r.kind+fmt.Sprintf(format, args...))
}

func (r *recorder) Clear()                                  {}
func (r *recorder) Start(a fixed.Point26_6)                 { r.log(" M") }
func (r *recorder) Line(b fixed.Point26_6)                  { r.log(" L") }
func (r *recorder) QuadBezier(b, c fixed.Point26_6)         { r.log(" Q") }
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6)      { r.log(" C") }
func (r *recorder) Stop(closeLoop bool)                     {}
func (r *recorder) SetColor(c color.NRGBA, opacity float64) { r.log(" color %v %g", c, opacity) }
func (r *recorder) Draw()                                   { r.log(" draw") }
func (r *recorder) SetWinding(nonZero bool)                 { r.log(" winding %v", nonZero) }
func (r *recorder) SetStrokeOptions(o StrokeOptions)        { r.log(" width %g", o.LineWidth) }

type recordDriver struct {
	recorder
	groups []string
	titles []string
}

func (d *recordDriver) SetupDrawers(willFill, willStroke bool) (Filler, Stroker) {
	var (
		f Filler
		s Stroker
	)
	if willFill {
		f = &fillRecorder{d}
	}
	if willStroke {
		s = &strokeRecorder{d}
	}
	return f, s
}

func (d *recordDriver) BeginGroup(g Group)    { d.groups = append(d.groups, "begin "+g.ID) }
func (d *recordDriver) EndGroup()             { d.groups = append(d.groups, "end") }
func (d *recordDriver) SetTitle(title string) { d.titles = append(d.titles, title) }

type fillRecorder struct{ *recordDriver }

func (f *fillRecorder) Draw() { f.kind = "fill"; f.log(" draw") }

type strokeRecorder struct{ *recordDriver }

func (s *strokeRecorder) Draw() { s.kind = "stroke"; s.log(" draw") }

func square(x, y, side float64) figpath.Path {
	var p figpath.Path
	p.AddRect(x, y, x+side, y+side)
	return p
}

func TestSceneDrawOrder(t *testing.T) {
	s := NewScene(100, 100)
	red := color.NRGBA{R: 0xff, A: 0xff}
	s.Add(Shape{Path: square(0, 0, 100), Fill: &Paint{Color: red, Opacity: 1}, Background: true})
	s.BeginGroup(Group{ID: "axes_1", Class: "axes"})
	s.Add(Shape{
		Path:   square(10, 10, 20),
		Fill:   &Paint{Color: red, Opacity: 0.6},
		Stroke: &Stroke{Paint: Paint{Color: red, Opacity: 0.6}, StrokeOptions: StrokeOptions{LineWidth: 4}},
		Title:  "disk",
	})
	s.Add(Shape{Path: square(40, 40, 5)}) // invisible, dropped
	s.EndGroup()

	require.Len(t, s.Shapes, 2)
	assert.Equal(t, -1, s.Shapes[0].Group)
	assert.Equal(t, 0, s.Shapes[1].Group)

	d := &recordDriver{}
	s.Draw(d)
	assert.Equal(t, []string{"begin axes_1", "end"}, d.groups)
	assert.Equal(t, []string{"disk"}, d.titles)

	joined := strings.Join(d.calls, "\n")
	assert.Contains(t, joined, "width 4")
	assert.Contains(t, joined, "winding true")
	assert.Equal(t, 3, strings.Count(joined, " draw"))
	// the fill of a shape is always drawn before its stroke
	assert.Less(t, strings.LastIndex(joined, "fill draw"), strings.LastIndex(joined, "stroke draw"))
}

func TestSceneBoundsAndCrop(t *testing.T) {
	s := NewScene(200, 100)
	black := color.NRGBA{A: 0xff}
	s.Add(Shape{Path: square(0, 0, 200), Fill: &Paint{Color: black, Opacity: 1}, Background: true})
	s.Add(Shape{Path: square(20, 30, 10), Fill: &Paint{Color: black, Opacity: 1}})
	s.Add(Shape{Path: square(50, 40, 10), Stroke: &Stroke{Paint: Paint{Color: black, Opacity: 1}, StrokeOptions: StrokeOptions{LineWidth: 2}}})

	b := s.Bounds()
	assert.InDelta(t, 20, b.X0, 0.05)
	assert.InDelta(t, 30, b.Y0, 0.05)
	assert.InDelta(t, 61, b.X1, 0.05)
	assert.InDelta(t, 51, b.Y1, 0.05)

	cropped := s.Crop(b)
	assert.InDelta(t, 41, cropped.Width, 0.05)
	assert.InDelta(t, 21, cropped.Height, 0.05)
	assert.Len(t, cropped.Shapes, 3)

	bg := cropped.Shapes[0].Path.Bounds()
	assert.InDelta(t, cropped.Width, bg.W(), 0.05)

	inner := cropped.Shapes[1].Path.Bounds()
	assert.InDelta(t, 0, inner.X0, 0.05)
	assert.InDelta(t, 0, inner.Y0, 0.05)

	// the cropped scene is a copy
	assert.InDelta(t, 20, s.Shapes[1].Path.Bounds().X0, 0.05)
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, "round", Round.String())
	assert.Equal(t, "square", SquareCap.String())
	assert.Equal(t, "<unknown CapMode>", CapMode(10).String())
}
