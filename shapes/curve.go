package shapes

import (
	"strings"

	"github.com/1paulpo1/mathcha2tikz/detect"
	"github.com/1paulpo1/mathcha2tikz/geometry"
	"github.com/1paulpo1/mathcha2tikz/style"
	"github.com/1paulpo1/mathcha2tikz/tikz"
)

func processCurve(group detect.Group) Result {
	main, aux, ok := mainStatement(group)
	if !ok {
		return passthrough(group, "no visible curve statement")
	}

	segments, closed := geometry.SplitPath(tikz.Points(main))
	if len(segments) == 0 {
		return passthrough(group, "curve statement is not a bezier chain")
	}
	if !closed {
		closed = tikz.IsClosed(main)
	}

	set, dropped := classifyArrows(aux, segments, closed)
	shape := &Shape{
		ID:       group.ID,
		Family:   detect.Curve,
		Style:    style.Parse(tikz.StyleBlocks(main)...),
		Arrows:   set,
		Closed:   closed,
		Segments: segments,
	}
	return Result{Shape: shape, DroppedArrows: dropped}
}

func renderCurve(s *Shape) string {
	var b strings.Builder
	b.WriteString(s.header())
	b.WriteString("\n")
	b.WriteString(drawPrefix(s))
	b.WriteString(point(s.Segments[0].P0))
	for _, seg := range s.Segments {
		b.WriteString(" .. controls ")
		b.WriteString(point(seg.C1))
		b.WriteString(" and ")
		b.WriteString(point(seg.C2))
		b.WriteString(" .. ")
		b.WriteString(point(seg.P1))
	}
	if s.Closed {
		b.WriteString(" -- cycle")
	}
	b.WriteString(" ;")
	return b.String()
}
