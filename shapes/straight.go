package shapes

import (
	"github.com/1paulpo1/mathcha2tikz/detect"
	"github.com/1paulpo1/mathcha2tikz/geometry"
	"github.com/1paulpo1/mathcha2tikz/style"
	"github.com/1paulpo1/mathcha2tikz/tikz"
)

func processStraight(group detect.Group) Result {
	main, aux, ok := mainStatement(group)
	if !ok {
		return passthrough(group, "no visible line statement")
	}

	points := tikz.Points(main)
	if len(points) < 2 {
		return passthrough(group, "line statement has fewer than two points")
	}
	from, to := points[0], points[len(points)-1]

	// A straight line still needs a segment chain for arrow matching.
	third := geometry.Point{X: (to.X - from.X) / 3, Y: (to.Y - from.Y) / 3}
	segments := []geometry.Segment{{
		P0: from,
		C1: geometry.Point{X: from.X + third.X, Y: from.Y + third.Y},
		C2: geometry.Point{X: from.X + 2*third.X, Y: from.Y + 2*third.Y},
		P1: to,
	}}

	set, dropped := classifyArrows(aux, segments, false)
	shape := &Shape{
		ID:     group.ID,
		Family: detect.Straight,
		Style:  style.Parse(tikz.StyleBlocks(main)...),
		Arrows: set,
		Line:   &Line{From: from, To: to},
	}
	return Result{Shape: shape, DroppedArrows: dropped}
}

func renderStraight(s *Shape) string {
	return s.header() + "\n" + drawPrefix(s) + point(s.Line.From) + " -- " + point(s.Line.To) + " ;"
}
