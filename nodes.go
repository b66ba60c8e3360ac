package mathcha2tikz

import (
	"regexp"
	"strings"

	"github.com/1paulpo1/mathcha2tikz/detect"
	"github.com/1paulpo1/mathcha2tikz/geometry"
	"github.com/1paulpo1/mathcha2tikz/tikz"
)

// textNode is a parsed Mathcha text node: its base position and the literal
// node text, plus the raw group for passthrough when placement is off or
// fails.
type textNode struct {
	id   string
	pos  geometry.Point
	text string
	raw  string
}

var nodeTextRe = regexp.MustCompile(`\snode\b.*?\{(.*)\}\s*;?\s*$`)

// parseTextNode extracts position and text from a node group. ok is false
// when the group has no usable node statement.
func parseTextNode(group detect.Group) (textNode, bool) {
	for _, stmt := range group.Statements {
		m := nodeTextRe.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		points := tikz.Points(stmt)
		if len(points) == 0 {
			continue
		}
		return textNode{
			id:   group.ID,
			pos:  points[0],
			text: m[1],
			raw:  group.Raw,
		}, true
	}
	return textNode{}, false
}

// placeNodes attaches each parsed node to the nearest shape anchor within
// maxDist by appending a node clause to that shape's statement. Nodes with
// no anchor in range pass through unchanged with a warning.
func placeNodes(pieces []*piece, maxDist float64) []Warning {
	var warnings []Warning
	for _, p := range pieces {
		if p.node == nil {
			continue
		}

		var best *piece
		bestDist := maxDist
		for _, candidate := range pieces {
			if candidate.shape == nil {
				continue
			}
			for _, anchor := range candidate.shape.Anchors() {
				if d := p.node.pos.Distance(anchor); d <= bestDist {
					bestDist = d
					best = candidate
				}
			}
		}

		if best == nil {
			p.text = p.node.raw
			warnings = append(warnings, Warning{
				Code:    "unplaced-node",
				GroupID: p.node.id,
				Message: "no shape anchor within snap distance",
			})
			continue
		}
		best.text = injectNode(best.text, p.node.text)
		p.consumed = true
	}
	return warnings
}

// injectNode appends a node clause to the final draw statement of a rendered
// piece, just before the statement terminator.
func injectNode(stmt, text string) string {
	idx := strings.LastIndex(stmt, ";")
	if idx < 0 {
		return stmt
	}
	head := strings.TrimRight(stmt[:idx], " ")
	return head + " node {" + text + "} ;" + stmt[idx+1:]
}
