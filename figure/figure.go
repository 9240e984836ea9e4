// Package figure implements a small figure model, in the spirit
// of the usual scientific plotting libraries: a figure holds a grid of axes,
// on which artists (patches, annotations, markers, texts and lines) are added
// in data coordinates.
//
// A figure is rendered as a figdraw.Scene, in points, which is then
// written by one of the output backends (see Savefig).
package figure

import (
	"fmt"
	"image/color"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figfont"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/benoitkugler/figtemplate/figstyle"
	"github.com/benoitkugler/figtemplate/mathtext"
)

// pointsPerInch converts figure sizes to page units.
const pointsPerInch = 72

// SubplotParams positions the grid of axes, as
// fractions of the figure size. WSpace and HSpace are fractions
// of the average axes width and height.
type SubplotParams struct {
	Left, Right, Bottom, Top float64
	WSpace, HSpace           float64
}

// DefaultSubplotParams returns the usual grid layout.
func DefaultSubplotParams() SubplotParams {
	return SubplotParams{Left: 0.125, Right: 0.9, Bottom: 0.11, Top: 0.88, WSpace: 0.2, HSpace: 0.2}
}

// Figure is the top level container.
type Figure struct {
	Width, Height float64 // in inches
	FaceColor     figstyle.Color

	// ErrorMode is used when parsing TeX labels.
	ErrorMode mathtext.ErrorMode

	params     figstyle.Params
	subplot    SubplotParams
	rows, cols int
	axes       []*Axes
}

// New returns an empty figure using the current style parameters.
// A zero size selects the default figure size.
func New(width, height float64) *Figure {
	params := figstyle.Current()
	if width <= 0 || height <= 0 {
		width, height = params.FigSize[0], params.FigSize[1]
	}
	return &Figure{
		Width:     width,
		Height:    height,
		FaceColor: &color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		ErrorMode: mathtext.WarnErrorMode,
		params:    params,
		subplot:   DefaultSubplotParams(),
	}
}

// Subplots creates a figure and a grid of rows x cols axes,
// returned in row major order.
func Subplots(rows, cols int, figsize [2]float64) (*Figure, []*Axes) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	f := New(figsize[0], figsize[1])
	f.rows, f.cols = rows, cols
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			f.axes = append(f.axes, newAxes(f, i, j))
		}
	}
	return f, f.Axes()
}

// Axes returns the axes of the figure, in row major order.
func (f *Figure) Axes() []*Axes { return append([]*Axes(nil), f.axes...) }

// Params returns the style parameters captured when creating the figure.
func (f *Figure) Params() figstyle.Params { return f.params }

// SubplotParams returns the current grid layout.
func (f *Figure) SubplotParams() SubplotParams { return f.subplot }

// SubplotsAdjust updates the grid layout.
func (f *Figure) SubplotsAdjust(p SubplotParams) error {
	if p.Left >= p.Right {
		return fmt.Errorf("invalid subplot params: left (%g) must be less than right (%g)", p.Left, p.Right)
	}
	if p.Bottom >= p.Top {
		return fmt.Errorf("invalid subplot params: bottom (%g) must be less than top (%g)", p.Bottom, p.Top)
	}
	f.subplot = p
	return nil
}

// cell returns the page box (in points) of the grid cell (row, col).
func (f *Figure) cell(row, col int) figpath.Rect {
	W, H := f.Width*pointsPerInch, f.Height*pointsPerInch
	sp := f.subplot

	totalW := (sp.Right - sp.Left) * W
	cellW := totalW / (float64(f.cols) + sp.WSpace*float64(f.cols-1))
	sepW := sp.WSpace * cellW

	totalH := (sp.Top - sp.Bottom) * H
	cellH := totalH / (float64(f.rows) + sp.HSpace*float64(f.rows-1))
	sepH := sp.HSpace * cellH

	x0 := sp.Left*W + float64(col)*(cellW+sepW)
	y0 := (1-sp.Top)*H + float64(row)*(cellH+sepH) // row 0 is at the top
	return figpath.Rect{X0: x0, Y0: y0, X1: x0 + cellW, Y1: y0 + cellH}
}

// renderer holds the state shared by the artists while rendering.
type renderer struct {
	scene  *figdraw.Scene
	ts     *typesetter
	params figstyle.Params
}

// Render draws the figure, returning a scene in points.
func (f *Figure) Render() (*figdraw.Scene, error) {
	family, err := figfont.ResolveFamily(f.params.Families())
	if err != nil {
		return nil, err
	}
	r := &renderer{
		scene:  figdraw.NewScene(f.Width*pointsPerInch, f.Height*pointsPerInch),
		ts:     &typesetter{family: family, useTeX: f.params.UseTeX, mode: f.ErrorMode},
		params: f.params,
	}
	if f.FaceColor != nil {
		var page figpath.Path
		page.AddRect(0, 0, r.scene.Width, r.scene.Height)
		r.scene.Add(figdraw.Shape{Path: page, Fill: paint(f.FaceColor, -1), Background: true})
	}
	for i, ax := range f.axes {
		r.scene.BeginGroup(figdraw.Group{ID: fmt.Sprintf("axes_%d", i+1), Class: "axes"})
		err := ax.draw(r, f.cell(ax.row, ax.col))
		r.scene.EndGroup()
		if err != nil {
			return nil, err
		}
	}
	return r.scene, nil
}

// paint returns the paint for c, or nil for no color.
// A negative alpha keeps the color opacity.
func paint(c figstyle.Color, alpha float64) *figdraw.Paint {
	if c == nil {
		return nil
	}
	opacity := float64(c.A) / 255
	if alpha >= 0 {
		opacity = alpha
	}
	col := *c
	col.A = 0xff
	return &figdraw.Paint{Color: col, Opacity: opacity}
}

func stroke(c figstyle.Color, alpha, width float64, style figstyle.LineStyle) *figdraw.Stroke {
	p := paint(c, alpha)
	if p == nil || width <= 0 || style == figstyle.NoLine {
		return nil
	}
	return &figdraw.Stroke{
		Paint: *p,
		StrokeOptions: figdraw.StrokeOptions{
			LineWidth:  width,
			Join:       figdraw.Miter,
			Cap:        figdraw.ButtCap,
			MiterLimit: 10,
			Dash:       style.Dashes(width),
		},
	}
}
