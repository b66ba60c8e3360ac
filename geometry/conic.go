package geometry

import (
	"errors"
	"fmt"
	"math"
)

// fitResidualTol is the acceptance threshold for a conic fit: the RMS
// algebraic residual of the sampled points, relative to the squared mean
// sample radius, must not exceed it. Chains that fit worse than this are not
// arcs of an ellipse and must be passed through verbatim.
const fitResidualTol = 0.02

// circleAxisTol is the relative semi-axis difference below which an ellipse
// is reported as a circle. Source coordinates are rounded to two decimals,
// so equal axes never recover exactly.
const circleAxisTol = 1e-3

// ErrNotEllipse is returned when sampled points do not lie on an ellipse
// within tolerance.
var ErrNotEllipse = errors.New("geometry: points do not fit an ellipse")

// EllipseFit holds recovered ellipse parameters. RadiusX is the semi-major
// axis, RadiusY the semi-minor axis, RotationDeg the rotation of the major
// axis in degrees.
type EllipseFit struct {
	Center      Point
	RadiusX     float64
	RadiusY     float64
	RotationDeg float64
	Circle      bool
}

// Arc extends an ellipse fit with the angular span travelled by the source
// chain. StartDeg is normalized to (-180, 180]; EndDeg is always >= StartDeg
// and may exceed 360 to preserve the direction and length of travel.
type Arc struct {
	EllipseFit
	StartDeg float64
	EndDeg   float64
}

// FitEllipse fits the general conic x² + By² + Cxy + Dx + Ey + F = 0 to the
// samples by linear least squares and converts it to center/axes/rotation
// form. It fails when the system is degenerate, the conic is not an ellipse,
// or the residual exceeds the acceptance threshold.
func FitEllipse(samples []Point) (EllipseFit, error) {
	if len(samples) < 5 {
		return EllipseFit{}, fmt.Errorf("geometry: need at least 5 samples, got %d", len(samples))
	}

	coeffs, ok := solveConic(samples)
	if !ok {
		return EllipseFit{}, errors.New("geometry: degenerate conic system")
	}
	a, b, c, d, e, f := 1.0, coeffs[0], coeffs[1], coeffs[2], coeffs[3], coeffs[4]

	// Ellipse requires a negative discriminant.
	if c*c-4*a*b >= -1e-10 {
		return EllipseFit{}, ErrNotEllipse
	}

	// Center solves the gradient system [2A C; C 2B] (x0,y0) = (-D,-E).
	det := 4*a*b - c*c
	x0 := (-2*b*d + c*e) / det
	y0 := (-2*a*e + c*d) / det

	fPrime := a*x0*x0 + b*y0*y0 + c*x0*y0 + d*x0 + e*y0 + f
	if fPrime >= 0 {
		return EllipseFit{}, ErrNotEllipse
	}

	var theta float64
	if math.Abs(a-b) >= 1e-5 || math.Abs(c) >= 1e-5 {
		theta = 0.5 * math.Atan2(c, a-b)
	}
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	aDash := a*cosT*cosT + c*cosT*sinT + b*sinT*sinT
	bDash := a*sinT*sinT - c*cosT*sinT + b*cosT*cosT
	if aDash <= 0 || bDash <= 0 {
		return EllipseFit{}, ErrNotEllipse
	}

	major := math.Sqrt(-fPrime / aDash)
	minor := math.Sqrt(-fPrime / bDash)
	if major < minor {
		major, minor = minor, major
		theta += math.Pi / 2
	}
	if !math.IsInf(major, 0) && !math.IsNaN(major) && major > 0 && minor > 0 {
		// An ellipse is symmetric under 180° rotation; fold into (-90, 90].
		rot := math.Mod(theta*180/math.Pi, 180)
		if rot > 90 {
			rot -= 180
		} else if rot <= -90 {
			rot += 180
		}
		fit := EllipseFit{
			Center:      Point{x0, y0},
			RadiusX:     major,
			RadiusY:     minor,
			RotationDeg: rot,
			Circle:      (major-minor)/major < circleAxisTol,
		}
		if fit.Circle {
			fit.RotationDeg = 0
		}
		if residual(samples, fit.Center, b, c, d, e, f) > fitResidualTol {
			return EllipseFit{}, ErrNotEllipse
		}
		return fit, nil
	}
	return EllipseFit{}, ErrNotEllipse
}

// solveConic solves the normal equations of the least-squares system with
// rows [y², xy, x, y, 1] and right-hand side -x².
func solveConic(samples []Point) ([5]float64, bool) {
	var m [5][6]float64
	for _, p := range samples {
		row := [5]float64{p.Y * p.Y, p.X * p.Y, p.X, p.Y, 1}
		rhs := -p.X * p.X
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				m[i][j] += row[i] * row[j]
			}
			m[i][5] += row[i] * rhs
		}
	}

	// Gaussian elimination with partial pivoting.
	for col := 0; col < 5; col++ {
		pivot := col
		for r := col + 1; r < 5; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return [5]float64{}, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		for r := 0; r < 5; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			for j := col; j < 6; j++ {
				m[r][j] -= factor * m[col][j]
			}
		}
	}

	var s [5]float64
	for i := 0; i < 5; i++ {
		s[i] = m[i][5] / m[i][i]
	}
	return s, true
}

// residual is the RMS of the algebraic conic equation over the samples,
// scaled by the squared mean distance to the center so the measure is
// size-independent.
func residual(samples []Point, center Point, b, c, d, e, f float64) float64 {
	var sumSq, sumR float64
	for _, p := range samples {
		v := p.X*p.X + b*p.Y*p.Y + c*p.X*p.Y + d*p.X + e*p.Y + f
		sumSq += v * v
		sumR += p.Distance(center)
	}
	n := float64(len(samples))
	meanR := sumR / n
	if meanR <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(sumSq/n) / (meanR * meanR)
}

// FitArc recovers ideal arc parameters from a bezier chain approximating an
// elliptical arc. The chain's endpoints fix the angular span; the span is
// normalized so the start angle lies in (-180, 180] and the end angle
// follows it, possibly past 360.
func FitArc(segments []Segment) (Arc, error) {
	if len(segments) == 0 {
		return Arc{}, errors.New("geometry: empty segment chain")
	}
	fit, err := FitEllipse(SamplePath(segments))
	if err != nil {
		return Arc{}, err
	}

	start := parametricAngle(segments[0].P0, fit)
	end := parametricAngle(segments[len(segments)-1].P1, fit)

	// A chain closing on itself is a full revolution, not an empty span.
	if segments[0].P0.Distance(segments[len(segments)-1].P1) < closeTol {
		end = start + 360
	}

	arc := Arc{EllipseFit: fit}
	arc.StartDeg, arc.EndDeg, arc.RotationDeg = normalizeArcAngles(start, end, fit.RotationDeg)
	return arc, nil
}

// parametricAngle computes the parametric angle in degrees of a point on the
// fitted ellipse, in the ellipse's rotated frame.
func parametricAngle(p Point, fit EllipseFit) float64 {
	x := p.X - fit.Center.X
	y := p.Y - fit.Center.Y
	rot := -fit.RotationDeg * math.Pi / 180
	cosR, sinR := math.Cos(rot), math.Sin(rot)
	xr := x*cosR - y*sinR
	yr := x*sinR + y*cosR

	if math.Abs(xr) < 1e-10 {
		if yr > 0 {
			return 90
		}
		return 270
	}
	return math.Atan2(yr*fit.RadiusX, xr*fit.RadiusY) * 180 / math.Pi
}

// normalizeArcAngles applies the output conventions for arc spans: keep the
// start angle in (-180, 180] and express direction of travel by letting the
// end angle run past 360.
func normalizeArcAngles(startDeg, endDeg, rotationDeg float64) (start, end, rotation float64) {
	rotation = rotationDeg

	start = NormalizeAngle(startDeg)
	if start > 180 && start < 360 {
		start -= 360
	}

	end = endDeg
	if end < start {
		end += 360
	}
	if math.Abs(end-start-360) < 0.1 {
		end = start + 360
	}
	return start, end, rotation
}
