// Package geometry provides the primitives the shape pipeline is built on:
// cubic bezier evaluation, bezier-chain splitting, and recovery of ideal
// ellipse/arc parameters from chains that approximate them.
package geometry

import "math"

// closeTol is the coincidence tolerance for treating two path points as the
// same point (closed-path detection).
const closeTol = 1e-6

// Point represents a 2D point in Mathcha's y-down coordinate system.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Norm returns the Euclidean length of p taken as a vector.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Segment is one cubic bezier segment: start, two control points, end.
type Segment struct {
	P0, C1, C2, P1 Point
}

// EvalCubic evaluates the segment at parameter t using the Bernstein form.
func EvalCubic(seg Segment, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*seg.P0.X + b*seg.C1.X + c*seg.C2.X + d*seg.P1.X,
		Y: a*seg.P0.Y + b*seg.C1.Y + c*seg.C2.Y + d*seg.P1.Y,
	}
}

// CubicDerivative returns the tangent vector of the segment at t.
func CubicDerivative(seg Segment, t float64) Point {
	mt := 1 - t
	a := 3 * mt * mt
	b := 6 * mt * t
	c := 3 * t * t
	return Point{
		X: a*(seg.C1.X-seg.P0.X) + b*(seg.C2.X-seg.C1.X) + c*(seg.P1.X-seg.C2.X),
		Y: a*(seg.C1.Y-seg.P0.Y) + b*(seg.C2.Y-seg.C1.Y) + c*(seg.P1.Y-seg.C2.Y),
	}
}

// Gauss-Legendre nodes and weights on [0, 1], 5 points.
var (
	gaussNodes   = [5]float64{0.046910077, 0.230765345, 0.5, 0.769234655, 0.953089923}
	gaussWeights = [5]float64{0.1184634425, 0.2393143352, 0.2844444444, 0.2393143352, 0.1184634425}
)

// CubicLength approximates the arclength of the segment by 5-point
// Gauss-Legendre quadrature of the speed.
func CubicLength(seg Segment) float64 {
	var length float64
	for i, t := range gaussNodes {
		length += gaussWeights[i] * CubicDerivative(seg, t).Norm()
	}
	return length
}

// SplitPath groups an ordered coordinate list into cubic segments. Mathcha
// emits chains as p0 c1 c2 p1 c1' c2' p2 ..., so consecutive segments share
// their endpoint. closed reports whether the chain's terminal point coincides
// with its initial point.
func SplitPath(points []Point) (segments []Segment, closed bool) {
	for i := 0; i+3 < len(points); i += 3 {
		segments = append(segments, Segment{
			P0: points[i],
			C1: points[i+1],
			C2: points[i+2],
			P1: points[i+3],
		})
	}
	if len(points) >= 2 {
		closed = points[0].Distance(points[len(points)-1]) < closeTol
	}
	return segments, closed
}

// SamplePath returns the chain endpoints plus seven interior points per
// segment, the sampling density used for conic fitting. Even a single
// segment stays over-determined, so the fit averages a segment's
// approximation error instead of interpolating it exactly.
func SamplePath(segments []Segment) []Point {
	if len(segments) == 0 {
		return nil
	}
	samples := []Point{segments[0].P0}
	for _, seg := range segments {
		for step := 1; step <= 7; step++ {
			samples = append(samples, EvalCubic(seg, float64(step)/8))
		}
		samples = append(samples, seg.P1)
	}
	return samples
}

// NormalizeAngle maps an angle in degrees to [0, 360).
func NormalizeAngle(deg float64) float64 {
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	return n
}

// AngleDifference returns the smallest absolute difference between two
// angles in degrees, in [0, 180].
func AngleDifference(a, b float64) float64 {
	diff := math.Abs(a - b)
	diff = math.Mod(diff, 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
