// Package arrows classifies auxiliary arrowhead fragments against the main
// path of a shape: where each arrowhead sits (start, end, or a fractional
// arclength position) and which way it points relative to travel direction.
package arrows

import (
	"math"
	"sort"

	"github.com/1paulpo1/mathcha2tikz/geometry"
	"github.com/1paulpo1/mathcha2tikz/tikz"
)

const (
	// endpointTol is the pivot-to-endpoint coincidence distance, in source
	// units, below which a fragment is a start/end arrow.
	endpointTol = 10.0
	// projectionTol is the maximum nearest-point distance for a mid-path
	// arrow; fragments further from the path than this are dropped.
	projectionTol = 10.0
	// silhouetteSpan is the largest pivot-to-tip distance an arrowhead
	// glyph may have. Larger fragments are geometry, not arrowheads.
	silhouetteSpan = 40.0
	// projectionSteps is the per-segment sampling density for nearest-point
	// projection.
	projectionSteps = 16
)

// Direction tells which way an arrowhead points relative to the path's
// outward direction at its position: with it (outbound) or against it
// (inbound).
type Direction int

const (
	Outbound Direction = iota
	Inbound
)

func (d Direction) String() string {
	if d == Inbound {
		return "inbound"
	}
	return "outbound"
}

// Fragment is one auxiliary draw statement: a micro-path expressed relative
// to a pivot via a shift/rotate transform.
type Fragment struct {
	Anchor      geometry.Point
	RotationDeg float64
	Local       []geometry.Point
	Raw         string
}

// ParseFragment decodes an auxiliary statement. ok is false when the
// statement carries no transform prefix. Bezier fragments keep only their
// on-curve points; control points say nothing about the glyph's silhouette.
func ParseFragment(stmt string) (Fragment, bool) {
	shift, rotate, ok := tikz.Transform(stmt)
	if !ok {
		return Fragment{}, false
	}
	local := tikz.Points(stmt)
	if tikz.HasBezierControls(stmt) && len(local) > 3 && (len(local)-1)%3 == 0 {
		onCurve := make([]geometry.Point, 0, (len(local)-1)/3+1)
		for i := 0; i < len(local); i += 3 {
			onCurve = append(onCurve, local[i])
		}
		local = onCurve
	}
	return Fragment{
		Anchor:      shift,
		RotationDeg: rotate,
		Local:       local,
		Raw:         stmt,
	}, true
}

// MidArrow is an arrow at a fractional arclength position t in (0, 1).
type MidArrow struct {
	T         float64
	Direction Direction
}

// Set is the classified arrow decoration of one shape. Mid arrows are
// sorted by position so the renderer can emit a single decorated stroke.
type Set struct {
	Start *Direction
	End   *Direction
	Mid   []MidArrow
}

// Empty reports whether the set carries no arrows at all.
func (s Set) Empty() bool {
	return s.Start == nil && s.End == nil && len(s.Mid) == 0
}

// Classify matches fragments against the main path. Fragments that match no
// silhouette or sit too far from the path are returned in dropped; the
// owning shape still renders without them.
func Classify(frags []Fragment, segments []geometry.Segment, closed bool) (Set, []Fragment) {
	var set Set
	var dropped []Fragment
	if len(segments) == 0 {
		return set, frags
	}

	start := segments[0].P0
	end := segments[len(segments)-1].P1
	lengths, total := segmentLengths(segments)

	for _, frag := range frags {
		if !matchSilhouette(frag.Local) {
			dropped = append(dropped, frag)
			continue
		}

		if !closed && frag.Anchor.Distance(start) < endpointTol {
			dir := direction(frag.RotationDeg, geometry.CubicDerivative(segments[0], 0), true)
			if set.Start == nil {
				set.Start = &dir
			}
			continue
		}
		if !closed && frag.Anchor.Distance(end) < endpointTol {
			dir := direction(frag.RotationDeg, geometry.CubicDerivative(segments[len(segments)-1], 1), false)
			if set.End == nil {
				set.End = &dir
			}
			continue
		}

		segIdx, localT, dist := project(segments, frag.Anchor)
		if dist > projectionTol {
			dropped = append(dropped, frag)
			continue
		}
		if total <= 0 {
			dropped = append(dropped, frag)
			continue
		}
		globalT := (lengths[segIdx] + localT*geometry.CubicLength(segments[segIdx])) / total
		dir := direction(frag.RotationDeg, geometry.CubicDerivative(segments[segIdx], localT), false)
		set.Mid = append(set.Mid, MidArrow{T: globalT, Direction: dir})
	}

	sort.Slice(set.Mid, func(i, j int) bool { return set.Mid[i].T < set.Mid[j].T })
	return set, dropped
}

// matchSilhouette accepts wedge glyphs: micro-paths of 2 to 4 points whose
// extent and proportions look like an arrowhead. Comparison is by point
// count and relative proportions since stroke width and size vary.
func matchSilhouette(local []geometry.Point) bool {
	if len(local) < 2 || len(local) > 4 {
		return false
	}
	minDist, maxDist := math.Inf(1), 0.0
	for _, p := range local {
		d := p.Norm()
		if d < 1e-9 {
			continue // the pivot itself
		}
		if d < minDist {
			minDist = d
		}
		if d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 || maxDist > silhouetteSpan {
		return false
	}
	// Wings of a wedge are roughly the same length.
	return maxDist/minDist <= 4
}

// direction compares the arrowhead's tip with the path's outward direction
// at the match point. The wedge glyph opens along the fragment's rotation
// axis with its wings trailing that way, so the tip points the opposite
// direction: a forward-pointing end arrow carries rotate = tangent - 180.
// atStart flips the outward direction, since "outbound" at the start points
// backwards along the path.
func direction(rotationDeg float64, tangent geometry.Point, atStart bool) Direction {
	norm := tangent.Norm()
	if norm < 1e-12 {
		return Outbound
	}
	rad := rotationDeg * math.Pi / 180
	tip := geometry.Point{X: -math.Cos(rad), Y: -math.Sin(rad)}
	dot := (tip.X*tangent.X + tip.Y*tangent.Y) / norm
	if atStart {
		dot = -dot
	}
	if dot >= 0 {
		return Outbound
	}
	return Inbound
}

// project finds the nearest sampled point of the chain to p, returning the
// segment index, the local parameter, and the distance.
func project(segments []geometry.Segment, p geometry.Point) (segIdx int, localT, dist float64) {
	dist = math.Inf(1)
	for i, seg := range segments {
		for step := 0; step <= projectionSteps; step++ {
			t := float64(step) / projectionSteps
			d := geometry.EvalCubic(seg, t).Distance(p)
			if d < dist {
				dist = d
				segIdx = i
				localT = t
			}
		}
	}
	return segIdx, localT, dist
}

// segmentLengths returns cumulative lengths before each segment and the
// chain total.
func segmentLengths(segments []geometry.Segment) (cumulative []float64, total float64) {
	cumulative = make([]float64, len(segments))
	for i, seg := range segments {
		cumulative[i] = total
		total += geometry.CubicLength(seg)
	}
	return cumulative, total
}
