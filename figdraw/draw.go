// Package figdraw defines how a rendered figure is
// handed to an output backend.
// A figure is first reduced to a Scene of styled paths, in points,
// which is then replayed on a Driver implementing the actual draw
// operations, such as a rasterizer to output .png images or a pdf writer.
package figdraw

import (
	"image/color"

	"github.com/benoitkugler/figtemplate/figpath"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any figure knowledge.
// In particular, transformations are already applied to the points
// before sending them to the Drawer, which receive page coordinates
// (points, y axis going down).
type Drawer interface {
	figpath.Adder

	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// SetColor set the color for the current path
	SetColor(c color.NRGBA, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the drawer kind
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the beginning of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	// This promise may enable the implementation to avoid duplicating filled and stroked paths
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// Annotator is optionally implemented by drivers able to
// keep the structure of the scene (such as the SVG writer).
type Annotator interface {
	BeginGroup(g Group)
	EndGroup()
	// SetTitle attaches a description to the next drawn shape.
	SetTitle(title string)
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "round"
	case Bevel:
		return "bevel"
	case Miter:
		return "miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	RoundCap
	SquareCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case RoundCap:
		return "round"
	case SquareCap:
		return "square"
	default:
		return "<unknown CapMode>"
	}
}

type StrokeOptions struct {
	LineWidth  float64 // in points
	Join       JoinMode
	Cap        CapMode
	MiterLimit float64
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// Paint is a plain color with an opacity in [0, 1]
type Paint struct {
	Color   color.NRGBA
	Opacity float64
}

// Stroke binds the color and the options of a stroked path.
type Stroke struct {
	Paint
	StrokeOptions
}
