// Package figstyle holds the global rendering parameters
// used when building figures, and the academic preset
// (serif fonts, inward ticks, TeX text).
package figstyle

import (
	"log/slog"
	"sync"
)

// TickDirection is the side of the spine ticks are drawn on.
type TickDirection uint8

const (
	TickOut TickDirection = iota
	TickIn
	TickInOut
)

func (d TickDirection) String() string {
	switch d {
	case TickOut:
		return "out"
	case TickIn:
		return "in"
	case TickInOut:
		return "inout"
	default:
		return "<unknown TickDirection>"
	}
}

// Params are the process wide defaults consumed by figures.
// Sizes are in points, figure sizes in inches.
type Params struct {
	UseTeX     bool
	FontFamily string   // generic family: "serif" or "sans-serif"
	FontSerif  []string // ordered candidates for the serif family
	FontSans   []string // ordered candidates for the sans-serif family

	XTickDirection, YTickDirection TickDirection
	XTickTop, YTickRight           bool
	TickLength, TickWidth          float64
	TickPad                        float64

	FontSize       float64
	AxesLabelSize  float64
	LegendFontSize float64
	TitleSize      float64
	TitlePad       float64
	LabelPad       float64

	FigSize   [2]float64
	DPI       float64
	AxesGrid  bool
	LineWidth float64 // default for lines and patches
	AxesWidth float64 // spines
}

// Defaults returns the library defaults, before any preset is applied.
func Defaults() Params {
	return Params{
		FontFamily: "sans-serif",
		FontSerif:  []string{"DejaVu Serif", "Times New Roman", "Computer Modern Roman"},
		FontSans:   []string{"DejaVu Sans", "Arial", "Helvetica"},

		XTickDirection: TickOut,
		YTickDirection: TickOut,
		TickLength:     3.5,
		TickWidth:      0.8,
		TickPad:        3.5,

		FontSize:       10,
		AxesLabelSize:  10,
		LegendFontSize: 10,
		TitleSize:      12,
		TitlePad:       6,
		LabelPad:       4,

		FigSize:   [2]float64{6.4, 4.8},
		DPI:       100,
		LineWidth: 1.5,
		AxesWidth: 0.8,
	}
}

// Academic returns the parameters used for report and paper figures.
func Academic() Params {
	p := Defaults()

	p.UseTeX = true
	p.FontFamily = "serif"
	p.FontSerif = []string{"Times New Roman", "Computer Modern Roman"}

	p.XTickDirection = TickIn
	p.YTickDirection = TickIn
	p.XTickTop = true
	p.YTickRight = true

	p.FontSize = 12
	p.AxesLabelSize = 14
	p.LegendFontSize = 12
	p.TitleSize = 14.4 // "large" relative to FontSize

	p.FigSize = [2]float64{6.4, 4.8}
	p.AxesGrid = false
	return p
}

// Families returns the ordered family candidates for the
// configured generic family.
func (p Params) Families() []string {
	if p.FontFamily == "serif" {
		return p.FontSerif
	}
	return p.FontSans
}

var (
	mu      sync.RWMutex
	current = Defaults()
)

// Current returns a copy of the process wide parameters.
func Current() Params {
	mu.RLock()
	defer mu.RUnlock()
	return current.clone()
}

// clone copies the family lists, which are shared otherwise.
func (p Params) clone() Params {
	p.FontSerif = append([]string(nil), p.FontSerif...)
	p.FontSans = append([]string(nil), p.FontSans...)
	return p
}

// Use replaces the process wide parameters with a copy of p.
func Use(p Params) {
	mu.Lock()
	defer mu.Unlock()
	current = p.clone()
}

// Reset restores the library defaults.
func Reset() { Use(Defaults()) }

// SetupAcademic switches the process wide parameters
// to the academic preset.
func SetupAcademic() {
	Use(Academic())
	slog.Info("Loaded academic style settings.")
}
