// Implements an abstract representation of
// vector paths, which can then be consumed
// by painting drivers.
package figpath

import (
	"fmt"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Matrix2D is the affine transform applied to paths.
type Matrix2D = rasterx.Matrix2D

// Identity is the identity transform.
var Identity = rasterx.Identity

// Adder is implemented by types that can accumulate path commands,
// such as drawing backends.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic operations.
// Higher-level shapes are reduced to a path.
type Path []Operation

func fixedToF(v fixed.Int26_6) float32 { return float32(v) / 64 }

// ToSVGPath returns a string representation of the path,
// suitable for the "d" attribute of an SVG path element.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", fixedToF(op.X), fixedToF(op.Y))
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", fixedToF(op.X), fixedToF(op.Y))
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", fixedToF(op[0].X), fixedToF(op[0].Y),
				fixedToF(op[1].X), fixedToF(op[1].Y))
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", fixedToF(op[0].X), fixedToF(op[0].Y),
				fixedToF(op[1].X), fixedToF(op[1].Y), fixedToF(op[2].X), fixedToF(op[2].Y))
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Append adds all the operations of q to p.
func (p *Path) Append(q Path) {
	*p = append(*p, q...)
}

// AddTo replays the Path p on q.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false) // implicit close if currently in path.
			q.Start(fixed.Point26_6(op))
		case LineTo:
			q.Line(fixed.Point26_6(op))
		case QuadTo:
			q.QuadBezier(op[0], op[1])
		case CubicTo:
			q.CubeBezier(op[0], op[1], op[2])
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}

// Transform returns a new path with every point mapped by m.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(m.TFixed(fixed.Point26_6(op)))
		case LineTo:
			out[i] = LineTo(m.TFixed(fixed.Point26_6(op)))
		case QuadTo:
			out[i] = QuadTo{m.TFixed(op[0]), m.TFixed(op[1])}
		case CubicTo:
			out[i] = CubicTo{m.TFixed(op[0]), m.TFixed(op[1]), m.TFixed(op[2])}
		case Close:
			out[i] = op
		}
	}
	return out
}

// Translate returns a new path shifted by (dx, dy).
func (p Path) Translate(dx, dy float64) Path {
	return p.Transform(Identity.Translate(dx, dy))
}
