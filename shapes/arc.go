package shapes

import (
	"fmt"
	"math"

	"github.com/1paulpo1/mathcha2tikz/detect"
	"github.com/1paulpo1/mathcha2tikz/geometry"
	"github.com/1paulpo1/mathcha2tikz/style"
	"github.com/1paulpo1/mathcha2tikz/tikz"
)

func processArc(group detect.Group) Result {
	main, aux, ok := mainStatement(group)
	if !ok {
		return passthrough(group, "no visible arc statement")
	}

	segments, closed := geometry.SplitPath(tikz.Points(main))
	if len(segments) == 0 {
		return passthrough(group, "arc statement is not a bezier chain")
	}

	arc, err := geometry.FitArc(segments)
	if err != nil {
		return passthrough(group, "chain does not fit an elliptical arc")
	}

	set, dropped := classifyArrows(aux, segments, closed)
	shape := &Shape{
		ID:     group.ID,
		Family: detect.Arc,
		Style:  style.Parse(tikz.StyleBlocks(main)...),
		Arrows: set,
		Closed: closed,
		Arc:    &arc,
	}
	return Result{Shape: shape, DroppedArrows: dropped}
}

func renderArc(s *Shape) string {
	arc := s.Arc
	if math.Abs(arc.RotationDeg) >= rotationEmitTol {
		s.Style.Extra = append(s.Style.Extra, style.Attr{
			Key: "rotate around",
			Raw: fmt.Sprintf("rotate around = {%s : %s}",
				style.FormatNum(arc.RotationDeg), point(arc.Center)),
		})
	}

	axes := style.FormatNum(arc.RadiusX) + " and " + style.FormatNum(arc.RadiusY)
	body := fmt.Sprintf("([shift = {%s}] %s : %s) arc (%s : %s : %s)",
		point(arc.Center),
		style.FormatNum(arc.StartDeg), axes,
		style.FormatNum(arc.StartDeg), style.FormatNum(arc.EndDeg), axes)
	return s.header() + "\n" + drawPrefix(s) + body + " ;"
}
