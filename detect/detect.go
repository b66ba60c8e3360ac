// Package detect splits annotated TikZ source into shape groups. Mathcha
// precedes every exported shape with a comment naming the shape family and a
// traceability id; everything between one annotation and the next belongs to
// that shape.
package detect

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/1paulpo1/mathcha2tikz/tikz"
)

var (
	// ErrNotTikz marks input with no TikZ statements or annotations at all.
	ErrNotTikz = errors.New("input does not look like TikZ source")
	// ErrNoShapes marks TikZ input from which no shape group could be
	// extracted.
	ErrNoShapes = errors.New("no shape groups found")
)

// Family is the shape class an annotation declares.
type Family int

const (
	Unknown Family = iota
	Straight
	Curve
	Arc
	Ellipse
	Circle
	Node
)

func (f Family) String() string {
	switch f {
	case Straight:
		return "Straight Lines"
	case Curve:
		return "Curve Lines"
	case Arc:
		return "Shape: Arc"
	case Ellipse:
		return "Shape: Ellipse"
	case Circle:
		return "Shape: Circle"
	case Node:
		return "Text Node"
	default:
		return "Unknown"
	}
}

// Group is one annotated shape: its family, traceability id, and the raw
// statement lines that belong to it. Raw preserves the group's source slice
// byte for byte for passthrough rendering.
type Group struct {
	Family     Family
	ID         string
	Annotation string
	Statements []string
	Raw        string
}

var (
	annotationRe = regexp.MustCompile(`^\s*%\s*(.*?)\s*\[id:([^\]]*)\]\s*$`)
	envRe        = regexp.MustCompile(`^\s*\\(?:begin|end)\s*\{tikzpicture\}`)
)

var fold = cases.Fold()

// familyFor classifies an annotation label. Matching is fold-insensitive and
// tolerant of the label variants different Mathcha versions emit.
func familyFor(label string) Family {
	folded := fold.String(label)
	switch {
	case strings.Contains(folded, "straight"), strings.Contains(folded, "line segment"):
		return Straight
	case strings.Contains(folded, "curve"):
		return Curve
	case strings.Contains(folded, "arc"):
		return Arc
	case strings.Contains(folded, "ellipse"):
		return Ellipse
	case strings.Contains(folded, "circle"):
		return Circle
	case strings.Contains(folded, "node"), strings.Contains(folded, "text"):
		return Node
	default:
		return Unknown
	}
}

// Split walks the input line by line and cuts it into annotated groups.
// Statements preceding any annotation form an Unknown group so nothing in
// the source is lost. ErrNotTikz and ErrNoShapes are the only failures.
func Split(input string) ([]Group, error) {
	lines := strings.Split(input, "\n")

	var groups []Group
	var current *Group
	var rawLines []string
	sawTikz := false

	flush := func() {
		if current == nil {
			return
		}
		current.Raw = strings.Join(rawLines, "\n")
		groups = append(groups, *current)
		current = nil
		rawLines = nil
	}

	for _, line := range lines {
		if m := annotationRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &Group{
				Family:     familyFor(m[1]),
				ID:         m[2],
				Annotation: strings.TrimSpace(m[1]),
			}
			rawLines = append(rawLines, line)
			sawTikz = true
			continue
		}
		if envRe.MatchString(line) {
			flush()
			sawTikz = true
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "%") ||
			(!strings.HasPrefix(trimmed, `\draw`) && !strings.HasPrefix(trimmed, `\node`)) {
			// Interior comments and non-draw lines carry no statements, but
			// an open group keeps them in its raw slice so passthrough
			// re-emits the group untouched.
			if current != nil {
				rawLines = append(rawLines, line)
			}
			continue
		}
		sawTikz = true
		if current == nil {
			current = &Group{Family: Unknown}
		}
		current.Statements = append(current.Statements, tikz.SplitCommands(trimmed)...)
		rawLines = append(rawLines, line)
	}
	flush()

	if !sawTikz {
		return nil, ErrNotTikz
	}
	if len(groups) == 0 {
		return nil, ErrNoShapes
	}
	return groups, nil
}
