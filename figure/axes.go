package figure

import (
	"fmt"
	"math"
	"sort"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/benoitkugler/figtemplate/figstyle"
)

// Aspect controls the ratio between the data units of the two axes.
type Aspect uint8

const (
	// AspectAuto fills the whole grid cell.
	AspectAuto Aspect = iota
	// AspectEqual shrinks the axes box so that one data unit
	// has the same length on both axes. The box stays centered in its cell.
	AspectEqual
)

// relative margins added around the data when autoscaling
const autoMargin = 0.05

// Axes is one plotting area of a figure.
type Axes struct {
	fig      *Figure
	row, col int

	xlim, ylim       [2]float64
	xlimSet, ylimSet bool
	aspect           Aspect
	axisOn           bool

	FaceColor figstyle.Color

	title          label
	xlabel, ylabel label

	artists []Artist
	cycle   int // next color of the property cycle
	legend  *legend
}

type label struct {
	text string
	size float64
	y    float64 // title position, in axes fraction
}

func newAxes(f *Figure, row, col int) *Axes {
	return &Axes{
		fig: f, row: row, col: col,
		axisOn:    true,
		FaceColor: figstyle.MustColor("white"),
		title:     label{y: 1},
	}
}

// SetXLim fixes the horizontal data range.
func (ax *Axes) SetXLim(min, max float64) error {
	if min == max || math.IsNaN(min) || math.IsNaN(max) {
		return fmt.Errorf("invalid x limits [%g, %g]", min, max)
	}
	ax.xlim, ax.xlimSet = [2]float64{min, max}, true
	return nil
}

// SetYLim fixes the vertical data range.
func (ax *Axes) SetYLim(min, max float64) error {
	if min == max || math.IsNaN(min) || math.IsNaN(max) {
		return fmt.Errorf("invalid y limits [%g, %g]", min, max)
	}
	ax.ylim, ax.ylimSet = [2]float64{min, max}, true
	return nil
}

// Limits returns the data ranges, autoscaled from the artists
// when not explicitly set.
func (ax *Axes) Limits() (xlim, ylim [2]float64) {
	data := figpath.EmptyRect()
	for _, a := range ax.artists {
		if r, ok := a.dataLimits(); ok {
			data = data.Union(r)
		}
	}
	xlim, ylim = ax.xlim, ax.ylim
	if !ax.xlimSet {
		xlim = autoscale(data.X0, data.X1, data.IsEmpty())
	}
	if !ax.ylimSet {
		ylim = autoscale(data.Y0, data.Y1, data.IsEmpty())
	}
	return xlim, ylim
}

func autoscale(lo, hi float64, empty bool) [2]float64 {
	if empty {
		return [2]float64{0, 1}
	}
	if lo == hi {
		return [2]float64{lo - 1, hi + 1}
	}
	m := (hi - lo) * autoMargin
	return [2]float64{lo - m, hi + m}
}

// SetAspect selects the data aspect ratio.
func (ax *Axes) SetAspect(a Aspect) { ax.aspect = a }

// AxisOff hides the axes background, spines, ticks and axis labels.
func (ax *Axes) AxisOff() { ax.axisOn = false }

// AxisOn shows the axes decorations (the default).
func (ax *Axes) AxisOn() { ax.axisOn = true }

// SetTitle sets the axes title, with a font size (0 for the default one)
// and a vertical position `y` in axes fraction (1 is the top of the axes).
func (ax *Axes) SetTitle(s string, size, y float64) {
	ax.title = label{text: s, size: size, y: y}
}

// SetXLabel sets the label of the horizontal axis.
func (ax *Axes) SetXLabel(s string) { ax.xlabel = label{text: s} }

// SetYLabel sets the label of the vertical axis.
func (ax *Axes) SetYLabel(s string) { ax.ylabel = label{text: s} }

// Artists returns the artists added to the axes, in insertion order.
func (ax *Axes) Artists() []Artist { return append([]Artist(nil), ax.artists...) }

func (ax *Axes) add(a Artist) { ax.artists = append(ax.artists, a) }

// nextColor returns the next color of the default property cycle.
func (ax *Axes) nextColor() figstyle.Color {
	c := propCycle[ax.cycle%len(propCycle)]
	ax.cycle++
	return figstyle.MustColor(c)
}

var propCycle = [...]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// transform maps data coordinates to page coordinates.
type transform struct {
	xlim, ylim [2]float64
	box        figpath.Rect // in page coordinates
}

func (t transform) apply(x, y float64) (float64, float64) {
	px := t.box.X0 + (x-t.xlim[0])/(t.xlim[1]-t.xlim[0])*t.box.W()
	py := t.box.Y1 - (y-t.ylim[0])/(t.ylim[1]-t.ylim[0])*t.box.H()
	return px, py
}

// scale returns the length in points of one data unit, on each axis.
func (t transform) scale() (sx, sy float64) {
	return math.Abs(t.box.W() / (t.xlim[1] - t.xlim[0])), math.Abs(t.box.H() / (t.ylim[1] - t.ylim[0]))
}

// fraction maps axes fraction coordinates (0,0 bottom left) to the page.
func (t transform) fraction(fx, fy float64) (float64, float64) {
	return t.box.X0 + fx*t.box.W(), t.box.Y1 - fy*t.box.H()
}

// applyAspect shrinks `cell` as required by the aspect ratio.
func (ax *Axes) applyAspect(cell figpath.Rect, xlim, ylim [2]float64) figpath.Rect {
	if ax.aspect != AspectEqual {
		return cell
	}
	dx, dy := math.Abs(xlim[1]-xlim[0]), math.Abs(ylim[1]-ylim[0])
	w, h := cell.W(), cell.H()
	if w*dy/dx <= h {
		h = w * dy / dx
	} else {
		w = h * dx / dy
	}
	cx, cy := (cell.X0+cell.X1)/2, (cell.Y0+cell.Y1)/2
	return figpath.Rect{X0: cx - w/2, Y0: cy - h/2, X1: cx + w/2, Y1: cy + h/2}
}

// Box returns the page box (in points) of the axes, after
// applying the aspect ratio.
func (ax *Axes) Box() figpath.Rect {
	xlim, ylim := ax.Limits()
	return ax.applyAspect(ax.fig.cell(ax.row, ax.col), xlim, ylim)
}

func (ax *Axes) draw(r *renderer, cell figpath.Rect) error {
	xlim, ylim := ax.Limits()
	t := transform{xlim: xlim, ylim: ylim, box: ax.applyAspect(cell, xlim, ylim)}

	if ax.axisOn && ax.FaceColor != nil {
		var bg figpath.Path
		bg.AddRect(t.box.X0, t.box.Y0, t.box.X1, t.box.Y1)
		r.scene.Add(figdraw.Shape{Path: bg, Fill: paint(ax.FaceColor, -1)})
	}

	artists := append([]Artist(nil), ax.artists...)
	if ax.axisOn {
		artists = append(artists, &axisArtist{ax: ax})
	}
	if ax.legend != nil {
		artists = append(artists, ax.legend)
	}
	sort.SliceStable(artists, func(i, j int) bool { return artists[i].ZOrder() < artists[j].ZOrder() })
	for _, a := range artists {
		if err := a.draw(r, t); err != nil {
			return err
		}
	}

	return ax.drawTitle(r, t)
}

func (ax *Axes) drawTitle(r *renderer, t transform) error {
	if ax.title.text == "" {
		return nil
	}
	size := ax.title.size
	if size <= 0 {
		size = r.params.TitleSize
	}
	x, y := t.fraction(0.5, ax.title.y)
	y -= r.params.TitlePad
	return r.text(ax.title.text, size, figstyle.MustColor("black"), x, y, Center, Baseline, 0)
}
