package shapes

import (
	"fmt"
	"math"

	"github.com/1paulpo1/mathcha2tikz/detect"
	"github.com/1paulpo1/mathcha2tikz/geometry"
	"github.com/1paulpo1/mathcha2tikz/style"
	"github.com/1paulpo1/mathcha2tikz/tikz"
)

// rotationEmitTol is the rotation angle, in degrees, below which an ellipse
// renders without a rotate transform.
const rotationEmitTol = 0.5

func processEllipse(group detect.Group) Result {
	main, aux, ok := mainStatement(group)
	if !ok {
		return passthrough(group, "no visible ellipse statement")
	}

	segments, closed := geometry.SplitPath(tikz.Points(main))
	if len(segments) == 0 || !(closed || tikz.IsClosed(main)) {
		return passthrough(group, "ellipse outline is not a closed bezier cycle")
	}

	fit, err := geometry.FitEllipse(geometry.SamplePath(segments))
	if err != nil {
		return passthrough(group, "outline does not fit an ellipse")
	}

	family := detect.Ellipse
	if fit.Circle {
		family = detect.Circle
	}
	set, dropped := classifyArrows(aux, segments, true)
	shape := &Shape{
		ID:      group.ID,
		Family:  family,
		Style:   style.Parse(tikz.StyleBlocks(main)...),
		Arrows:  set,
		Closed:  true,
		Ellipse: &fit,
	}
	return Result{Shape: shape, DroppedArrows: dropped}
}

func renderEllipse(s *Shape) string {
	fit := s.Ellipse
	// RotationDeg is already folded into (-90, 90].
	if math.Abs(fit.RotationDeg) >= rotationEmitTol && !fit.Circle {
		s.Style.Extra = append(s.Style.Extra, style.Attr{
			Key: "rotate around",
			Raw: fmt.Sprintf("rotate around = {%s : %s}",
				style.FormatNum(fit.RotationDeg), point(fit.Center)),
		})
	}

	body := point(fit.Center)
	if fit.Circle {
		body += " circle (" + style.FormatNum(fit.RadiusX) + ")"
	} else {
		body += " ellipse (" + style.FormatNum(fit.RadiusX) + " and " + style.FormatNum(fit.RadiusY) + ")"
	}
	return s.header() + "\n" + drawPrefix(s) + body + " ;"
}
