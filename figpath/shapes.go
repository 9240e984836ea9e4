package figpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an ellipse.
const maxDx float64 = math.Pi / 8

// ToFixedP converts two floats to a fixed point.
func ToFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(math.Round(x * 64))
	p.Y = fixed.Int26_6(math.Round(y * 64))
	return
}

// FromFixedP converts a fixed point to floats.
func FromFixedP(p fixed.Point26_6) (x, y float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// AddRect adds an axis aligned rectangle.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(ToFixedP(minX, minY))
	p.Line(ToFixedP(maxX, minY))
	p.Line(ToFixedP(maxX, maxY))
	p.Line(ToFixedP(minX, maxY))
	p.Stop(true)
}

// AddPolyline adds the polyline through points, given as
// consecutive (x, y) pairs, optionally closed.
func (p *Path) AddPolyline(points []float64, closed bool) {
	if len(points) < 4 {
		return
	}
	p.Start(ToFixedP(points[0], points[1]))
	for i := 2; i < len(points)-1; i += 2 {
		p.Line(ToFixedP(points[i], points[i+1]))
	}
	p.Stop(closed)
}

// AddEllipse adds a closed ellipse centered at (cx, cy)
// with radii rx and ry.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	p.Start(ToFixedP(cx+rx, cy))
	p.AddArc(cx, cy, rx, ry, 0, 2*math.Pi)
	p.Stop(true)
}

// AddCircle adds a closed circle.
func (p *Path) AddCircle(cx, cy, r float64) { p.AddEllipse(cx, cy, r, r) }

// AddArc continues the current curve with the elliptic arc
// going from angle `start` to angle `end` (radians, counter clockwise
// in a y-up frame). The current point is assumed to be the start of the arc.
func (p *Path) AddArc(cx, cy, rx, ry, start, end float64) {
	delta := end - start
	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(delta)/maxDx) + 1
	dEta := delta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := ellipsePointAt(rx, ry, start, cx, cy)
	ldx, ldy := ellipsePrime(rx, ry, start)
	for i := 1; i <= segs; i++ {
		eta := start + dEta*float64(i)
		px, py := ellipsePointAt(rx, ry, eta, cx, cy)
		dx, dy := ellipsePrime(rx, ry, eta)
		p.CubeBezier(ToFixedP(lx+alpha*ldx, ly+alpha*ldy),
			ToFixedP(px-alpha*dx, py-alpha*dy), ToFixedP(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives tangent vectors for parameterized ellipse; a, b radii, eta parameter
func ellipsePrime(a, b, eta float64) (px, py float64) {
	return -a * math.Sin(eta), b * math.Cos(eta)
}

// ellipsePointAt gives points for parameterized ellipse; a, b radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, eta, cx, cy float64) (px, py float64) {
	return cx + a*math.Cos(eta), cy + b*math.Sin(eta)
}
