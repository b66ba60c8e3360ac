// Package shapes turns detected groups into recognized shape models and
// renders them back as compact TikZ. Recognition is conservative: any group
// that cannot be modeled confidently passes through byte for byte.
package shapes

import (
	"fmt"
	"strings"

	"github.com/1paulpo1/mathcha2tikz/arrows"
	"github.com/1paulpo1/mathcha2tikz/detect"
	"github.com/1paulpo1/mathcha2tikz/geometry"
	"github.com/1paulpo1/mathcha2tikz/style"
	"github.com/1paulpo1/mathcha2tikz/tikz"
)

// Shape is a recognized shape ready for rendering. Exactly one of the
// geometry fields is set, matching Family.
type Shape struct {
	ID     string
	Family detect.Family
	Style  style.Style
	Arrows arrows.Set
	Closed bool

	Line     *Line
	Segments []geometry.Segment
	Ellipse  *geometry.EllipseFit
	Arc      *geometry.Arc
}

// Line is a straight segment between two endpoints.
type Line struct {
	From, To geometry.Point
}

// Result is the outcome for one group: either a recognized shape or the
// group's raw source for passthrough. Note carries the reason recognition
// fell back, DroppedArrows the number of arrow fragments that matched
// nothing; both feed warning reporting.
type Result struct {
	Shape         *Shape
	Passthrough   string
	Note          string
	DroppedArrows int
}

// Recognized reports whether the group produced a shape model.
func (r Result) Recognized() bool { return r.Shape != nil }

func passthrough(group detect.Group, reason string) Result {
	return Result{Passthrough: group.Raw, Note: reason}
}

// strategy binds one shape family's recognition and rendering.
type strategy struct {
	process func(detect.Group) Result
	render  func(*Shape) string
}

var strategies = map[detect.Family]strategy{
	detect.Straight: {processStraight, renderStraight},
	detect.Curve:    {processCurve, renderCurve},
	detect.Ellipse:  {processEllipse, renderEllipse},
	detect.Circle:   {processEllipse, renderEllipse},
	detect.Arc:      {processArc, renderArc},
}

// Process recognizes one group. It never fails: groups that defeat
// recognition come back as passthrough results with a note.
func Process(group detect.Group) Result {
	strat, ok := strategies[group.Family]
	if !ok {
		return passthrough(group, "unrecognized shape family")
	}
	return strat.process(group)
}

// Render serializes a recognized shape as its traceability comment plus one
// compact draw statement.
func Render(s *Shape) string {
	return strategies[s.Family].render(s)
}

// mainStatement picks the statement that carries the shape's geometry.
// Invisible statements and transform-carrying fragments are excluded first,
// then the family's path predicate; the first survivor in source order wins.
// ok is false when nothing survives, which forces passthrough.
func mainStatement(group detect.Group) (main string, aux []string, ok bool) {
	var candidates []string
	for _, stmt := range group.Statements {
		if tikz.HasDrawOpacityZero(stmt) {
			continue
		}
		if tikz.IsAux(stmt) {
			aux = append(aux, stmt)
			continue
		}
		candidates = append(candidates, stmt)
	}

	wantControls := group.Family != detect.Straight
	for _, stmt := range candidates {
		if tikz.HasBezierControls(stmt) == wantControls {
			return stmt, aux, true
		}
	}
	return "", nil, false
}

// classifyArrows parses the aux fragments and matches them against the main
// path. Fragments that fail to match are counted but never fail the shape.
func classifyArrows(aux []string, segments []geometry.Segment, closed bool) (arrows.Set, int) {
	var frags []arrows.Fragment
	for _, stmt := range aux {
		if frag, ok := arrows.ParseFragment(stmt); ok {
			frags = append(frags, frag)
		}
	}
	set, dropped := arrows.Classify(frags, segments, closed)
	return set, len(dropped)
}

// Anchors returns the attachment points a text node may snap to.
func (s *Shape) Anchors() []geometry.Point {
	switch {
	case s.Line != nil:
		return []geometry.Point{s.Line.From, s.Line.To}
	case len(s.Segments) > 0:
		return []geometry.Point{s.Segments[0].P0, s.Segments[len(s.Segments)-1].P1}
	case s.Ellipse != nil:
		return []geometry.Point{s.Ellipse.Center}
	case s.Arc != nil:
		return []geometry.Point{s.Arc.Center}
	default:
		return nil
	}
}

// header renders the traceability comment preceding a shape's statement.
func (s *Shape) header() string {
	return fmt.Sprintf("%%%s [id:%s]", s.Family, s.ID)
}

// arrowTip maps a boundary arrow to its tip character. At the start of a
// path an outbound arrow points backwards along it.
func arrowTip(d arrows.Direction, atStart bool) string {
	outbound := d == arrows.Outbound
	if atStart == outbound {
		return "<"
	}
	return ">"
}

// renderAttrs assembles the final attribute block: arrow-tip shorthand
// first, then the style's canonical attributes, then the mid-arrow
// decoration. Returns "" when the block would be empty.
func renderAttrs(s *Shape) string {
	var parts []string

	if s.Arrows.Start != nil || s.Arrows.End != nil {
		tok := "-"
		if s.Arrows.Start != nil {
			tok = arrowTip(*s.Arrows.Start, true) + tok
		}
		if s.Arrows.End != nil {
			tok += arrowTip(*s.Arrows.End, false)
		}
		parts = append(parts, tok)
	}

	if block := s.Style.Render(); block != "" {
		parts = append(parts, block[1:len(block)-1])
	}

	if len(s.Arrows.Mid) > 0 {
		marks := make([]string, len(s.Arrows.Mid))
		for i, mid := range s.Arrows.Mid {
			tip := ">"
			if mid.Direction == arrows.Inbound {
				tip = "<"
			}
			marks[i] = fmt.Sprintf(`mark = at position %.2f with {\arrow{%s}}`, mid.T, tip)
		}
		parts = append(parts,
			"decoration = {markings, "+strings.Join(marks, ", ")+"}",
			"postaction = {decorate}")
	}

	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// point renders a coordinate pair in output notation.
func point(p geometry.Point) string {
	return "(" + style.FormatNum(p.X) + "," + style.FormatNum(p.Y) + ")"
}

// drawPrefix renders the statement opening up to the path body.
func drawPrefix(s *Shape) string {
	if attrs := renderAttrs(s); attrs != "" {
		return `\draw ` + attrs + ` `
	}
	return `\draw `
}
