package figure

import (
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/figtemplate/figdraw"
	"github.com/benoitkugler/figtemplate/figpath"
	"github.com/benoitkugler/figtemplate/figstyle"
)

// candidate steps of the tick locator, for one decade
var niceSteps = [...]float64{1, 2, 2.5, 5, 10}

const maxBins = 9

// Ticks returns the major tick positions in [lo, hi], with
// at most `bins` intervals, using "nice" steps (1, 2, 2.5, 5 times a power of ten).
func Ticks(lo, hi float64, bins int) []float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if bins < 1 {
		bins = 1
	}
	if lo == hi || math.IsInf(hi-lo, 0) || math.IsNaN(hi-lo) {
		return []float64{lo}
	}
	step := tickStep(lo, hi, bins)
	eps := step * 1e-9
	var out []float64
	for i := math.Ceil((lo - eps) / step); i*step <= hi+eps; i++ {
		v := i * step
		if math.Abs(v) < eps {
			v = 0
		}
		out = append(out, v)
	}
	return out
}

func tickStep(lo, hi float64, bins int) float64 {
	raw := (hi - lo) / float64(bins)
	scale := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, s := range niceSteps {
		step := s * scale
		// number of intervals covered by ticks on this step
		n := math.Floor(hi/step+1e-9) - math.Ceil(lo/step-1e-9)
		if step >= raw && n <= float64(bins) {
			return step
		}
	}
	return 10 * scale
}

// FormatTick formats v with the precision required by `step`,
// using a proper minus sign.
func FormatTick(v, step float64) string {
	decimals := 0
	if step > 0 {
		for d := 0; d < 10; d++ {
			scaled := step * math.Pow(10, float64(d))
			if math.Abs(scaled-math.Round(scaled)) < 1e-6*scaled {
				decimals = d
				break
			}
		}
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Trim(s, "-0.") == "" {
		s = strings.TrimPrefix(s, "-")
	}
	return strings.Replace(s, "-", "−", 1)
}

// axisArtist draws the spines, ticks, tick labels and axis labels.
type axisArtist struct {
	ax *Axes
}

func (*axisArtist) ZOrder() float64 { return zAxis }

func (*axisArtist) dataLimits() (figpath.Rect, bool) { return figpath.Rect{}, false }

// tickMark returns the extent of a tick relative to its spine:
// how far it goes inside the axes and outside.
func tickMark(d figstyle.TickDirection, length float64) (in, out float64) {
	switch d {
	case figstyle.TickIn:
		return length, 0
	case figstyle.TickInOut:
		return length / 2, length / 2
	default:
		return 0, length
	}
}

func (a *axisArtist) draw(r *renderer, t transform) error {
	p := r.params
	black := figstyle.MustColor("black")
	box := t.box

	var spines figpath.Path
	spines.AddRect(box.X0, box.Y0, box.X1, box.Y1)
	r.scene.Add(figdraw.Shape{Path: spines, Stroke: stroke(black, -1, p.AxesWidth, figstyle.Solid)})

	xbins := clampBins(box.W() / (3 * p.FontSize))
	ybins := clampBins(box.H() / (2 * p.FontSize))
	xticks := visible(Ticks(t.xlim[0], t.xlim[1], xbins), t.xlim)
	yticks := visible(Ticks(t.ylim[0], t.ylim[1], ybins), t.ylim)

	if p.AxesGrid {
		var grid figpath.Path
		for _, v := range xticks {
			x, _ := t.apply(v, 0)
			grid.AddPolyline([]float64{x, box.Y0, x, box.Y1}, false)
		}
		for _, v := range yticks {
			_, y := t.apply(0, v)
			grid.AddPolyline([]float64{box.X0, y, box.X1, y}, false)
		}
		r.scene.Add(figdraw.Shape{Path: grid, Stroke: stroke(figstyle.MustColor("#b0b0b0"), -1, 0.8, figstyle.Solid)})
	}

	// ticks
	var marks figpath.Path
	xin, xout := tickMark(p.XTickDirection, p.TickLength)
	for _, v := range xticks {
		x, _ := t.apply(v, 0)
		marks.AddPolyline([]float64{x, box.Y1 + xout, x, box.Y1 - xin}, false)
		if p.XTickTop {
			marks.AddPolyline([]float64{x, box.Y0 - xout, x, box.Y0 + xin}, false)
		}
	}
	yin, yout := tickMark(p.YTickDirection, p.TickLength)
	for _, v := range yticks {
		_, y := t.apply(0, v)
		marks.AddPolyline([]float64{box.X0 - yout, y, box.X0 + yin, y}, false)
		if p.YTickRight {
			marks.AddPolyline([]float64{box.X1 + yout, y, box.X1 - yin, y}, false)
		}
	}
	r.scene.Add(figdraw.Shape{Path: marks, Stroke: stroke(black, -1, p.TickWidth, figstyle.Solid)})

	// tick labels
	xstep := tickStep(t.xlim[0], t.xlim[1], xbins)
	labelsBottom := box.Y1 + xout + p.TickPad
	for _, v := range xticks {
		x, _ := t.apply(v, 0)
		s := FormatTick(v, xstep)
		b, err := r.ts.layout(s, p.FontSize)
		if err != nil {
			return err
		}
		labelsBottom = math.Max(labelsBottom, b.extent(x, box.Y1+xout+p.TickPad, Center, Top).Y1)
		if err := r.text(s, p.FontSize, black, x, box.Y1+xout+p.TickPad, Center, Top, 0); err != nil {
			return err
		}
	}
	ystep := tickStep(t.ylim[0], t.ylim[1], ybins)
	labelsLeft := box.X0 - yout - p.TickPad
	for _, v := range yticks {
		_, y := t.apply(0, v)
		s := FormatTick(v, ystep)
		b, err := r.ts.layout(s, p.FontSize)
		if err != nil {
			return err
		}
		labelsLeft = math.Min(labelsLeft, b.extent(box.X0-yout-p.TickPad, y, Right, Middle).X0)
		if err := r.text(s, p.FontSize, black, box.X0-yout-p.TickPad, y, Right, Middle, 0); err != nil {
			return err
		}
	}

	// axis labels
	if s := a.ax.xlabel.text; s != "" {
		x := (box.X0 + box.X1) / 2
		if err := r.text(s, p.AxesLabelSize, black, x, labelsBottom+p.LabelPad, Center, Top, 0); err != nil {
			return err
		}
	}
	if s := a.ax.ylabel.text; s != "" {
		y := (box.Y0 + box.Y1) / 2
		if err := r.text(s, p.AxesLabelSize, black, labelsLeft-p.LabelPad, y, Center, Bottom, 90); err != nil {
			return err
		}
	}
	return nil
}

func clampBins(v float64) int {
	n := int(v)
	if n < 1 {
		return 1
	}
	if n > maxBins {
		return maxBins
	}
	return n
}

// visible drops the ticks outside of lim.
func visible(ticks []float64, lim [2]float64) []float64 {
	lo, hi := math.Min(lim[0], lim[1]), math.Max(lim[0], lim[1])
	eps := (hi - lo) * 1e-9
	out := ticks[:0]
	for _, v := range ticks {
		if v >= lo-eps && v <= hi+eps {
			out = append(out, v)
		}
	}
	return out
}
