package figpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// compute the bounding box of a path, needed to crop a figure to its content

// Rect is an axis aligned rectangle in float coordinates.
type Rect struct{ X0, Y0, X1, Y1 float64 }

// EmptyRect returns a rectangle which is the neutral element of Union.
func EmptyRect() Rect {
	return Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

// IsEmpty is true when r contains no point.
func (r Rect) IsEmpty() bool { return r.X0 > r.X1 || r.Y0 > r.Y1 }

func (r Rect) W() float64 { return r.X1 - r.X0 }

func (r Rect) H() float64 { return r.Y1 - r.Y0 }

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	if s.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return s
	}
	return Rect{math.Min(r.X0, s.X0), math.Min(r.Y0, s.Y0), math.Max(r.X1, s.X1), math.Max(r.Y1, s.Y1)}
}

// Outset grows r by d on every side.
func (r Rect) Outset(d float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{r.X0 - d, r.Y0 - d, r.X1 + d, r.Y1 + d}
}

func (r Rect) addPoint(x, y float64) Rect {
	return Rect{math.Min(r.X0, x), math.Min(r.Y0, y), math.Max(r.X1, x), math.Max(r.Y1, y)}
}

// Bounds returns the exact extent of the path (control points
// outside the curves are not included).
func (p Path) Bounds() Rect {
	box := EmptyRect()
	var current, first fixed.Point26_6
	for _, op := range p {
		var curve bezier
		switch op := op.(type) {
		case MoveTo:
			current = fixed.Point26_6(op)
			first = current
			box = box.addPoint(FromFixedP(current))
			continue
		case LineTo:
			curve = line{current, fixed.Point26_6(op)}
			current = fixed.Point26_6(op)
		case QuadTo:
			curve = quadBezier{current, op[0], op[1]}
			current = op[1]
		case CubicTo:
			curve = cubicBezier{current, op[0], op[1], op[2]}
			current = op[2]
		case Close:
			current = first
			continue
		}
		box = box.Union(computeBoundingBox(curve))
	}
	return box
}

type line [2]fixed.Point26_6

func (l line) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l line) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := FromFixedP(l[0])
	p1x, p1y := FromFixedP(l[1])
	return bezierLine(p0x, p1x, t), bezierLine(p0y, p1y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type quadBezier [3]fixed.Point26_6

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	p0x, p0y := FromFixedP(cu[0])
	p1x, p1y := FromFixedP(cu[1])
	p2x, p2y := FromFixedP(cu[2])

	aX, bX := quadraticDerivative(p0x, p1x, p2x)
	aY, bY := quadraticDerivative(p0y, p1y, p2y)

	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := FromFixedP(cu[0])
	p1x, p1y := FromFixedP(cu[1])
	p2x, p2y := FromFixedP(cu[2])
	return bezierQuad(p0x, p1x, p2x, t), bezierQuad(p0y, p1y, p2y, t)
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p1x, p1y := FromFixedP(cu[0])
	c1x, c1y := FromFixedP(cu[1])
	c2x, c2y := FromFixedP(cu[2])
	p2x, p2y := FromFixedP(cu[3])

	aX, bX, cX := cubicDerivative(p1x, c1x, c2x, p2x)
	aY, bY, cY := cubicDerivative(p1y, c1y, c2y, p2y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := FromFixedP(cu[0])
	p1x, p1y := FromFixedP(cu[1])
	p2x, p2y := FromFixedP(cu[2])
	p3x, p3y := FromFixedP(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

// b^2 - 4ac
func determinant(a, b, c float64) float64 { return b*b - 4*a*c }

func solve(a, b, c float64, s bool) float64 {
	sign := 1.
	if !s {
		sign = -1.
	}
	return (-b + (math.Sqrt(determinant(a, b, c)) * sign)) / (2 * a)
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// bX + c, a simple line
		return linearRoots(b, c)
	}
	d := determinant(a, b, c)
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{solve(a, b, c, true)}
	}
	return []float64{solve(a, b, c, true), solve(a, b, c, false)}
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

func computeBoundingBox(curve bezier) Rect {
	resX, resY := curve.criticalPoints()

	box := EmptyRect()
	// add begin and end point
	for _, t := range append(append(resX, 0, 1), resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		box = box.addPoint(curve.evaluateCurve(t))
	}
	return box
}
