package mathcha2tikz

import (
	"fmt"
	"strings"

	"github.com/1paulpo1/mathcha2tikz/detect"
	"github.com/1paulpo1/mathcha2tikz/palette"
	"github.com/1paulpo1/mathcha2tikz/postprocess"
	"github.com/1paulpo1/mathcha2tikz/shapes"
)

// Converter provides a fluent interface for converting Mathcha TikZ output.
// Each configuration method returns a new Converter instance, making it safe
// for concurrent use and allowing method chaining.
type Converter struct {
	input   string
	options Options

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a copy of the Converter so each chain method returns a new
// instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		input:    c.input,
		options:  c.options.clone(),
		err:      c.err,
		warnings: append([]Warning(nil), c.warnings...),
	}
}

// PlaceNodes controls whether text nodes are attached to the nearest
// converted shape. Off by default; unplaced nodes pass through unchanged.
func (c *Converter) PlaceNodes(enabled bool) *Converter {
	n := c.clone()
	n.options.placeNodes = enabled
	return n
}

// NodeSnapDistance sets the maximum distance, in source units, at which a
// text node snaps to a shape anchor.
func (c *Converter) NodeSnapDistance(d float64) *Converter {
	n := c.clone()
	if d <= 0 {
		if n.err == nil {
			n.err = fmt.Errorf("node snap distance must be positive, got %v", d)
		}
		return n
	}
	n.options.nodeSnapDistance = d
	return n
}

// piece is one group's contribution to the output, in source order.
type piece struct {
	text     string
	shape    *shapes.Shape
	node     *textNode
	consumed bool
}

// Run executes the full pipeline: group detection, per-family recognition,
// rendering, style post-processing, and optional node placement. The error
// is structural only (input that is not TikZ, or no groups); every local
// degradation is reported as a warning instead.
func (c *Converter) Run() (string, []Warning, error) {
	if c.err != nil {
		return "", c.warnings, c.err
	}

	groups, err := detect.Split(c.input)
	if err != nil {
		return "", c.warnings, err
	}

	ix := palette.New()
	warnings := append([]Warning(nil), c.warnings...)

	var pieces []*piece
	var defs []string
	seenDef := make(map[string]bool)
	seq := 0

	for _, group := range groups {
		if group.ID == "" {
			seq++
			group.ID = fmt.Sprintf("m2t%d", seq)
		}

		if group.Family == detect.Node {
			if node, ok := parseTextNode(group); ok {
				pieces = append(pieces, &piece{node: &node})
			} else {
				pieces = append(pieces, &piece{text: group.Raw})
			}
			continue
		}

		res := shapes.Process(group)
		if res.DroppedArrows > 0 {
			warnings = append(warnings, Warning{
				Code:    "dropped-arrows",
				GroupID: group.ID,
				Message: fmt.Sprintf("%d arrow fragment(s) matched nothing", res.DroppedArrows),
			})
		}
		if !res.Recognized() {
			warnings = append(warnings, Warning{
				Code:    "passthrough",
				GroupID: group.ID,
				Message: res.Note,
			})
			pieces = append(pieces, &piece{text: res.Passthrough})
			continue
		}

		pp, err := postprocess.Run(shapes.Render(res.Shape), ix)
		if err != nil {
			return "", warnings, fmt.Errorf("post-processing group id:%s: %w", group.ID, err)
		}
		for _, def := range pp.Definitions {
			if !seenDef[def] {
				seenDef[def] = true
				defs = append(defs, def)
			}
		}
		pieces = append(pieces, &piece{text: pp.Output, shape: res.Shape})
	}

	if c.options.placeNodes {
		warnings = append(warnings, placeNodes(pieces, c.options.nodeSnapDistance)...)
	} else {
		for _, p := range pieces {
			if p.node != nil {
				p.text = p.node.raw
			}
		}
	}

	var out []string
	if len(defs) > 0 {
		out = append(out, strings.Join(defs, "\n"))
	}
	for _, p := range pieces {
		if p.consumed || p.text == "" {
			continue
		}
		out = append(out, p.text)
	}
	return strings.Join(out, "\n"), warnings, nil
}
