// Package style parses and serializes inline TikZ attribute blocks. Parsing
// never fails: recognized attributes are decoded into typed values, anything
// else is preserved verbatim so unmodified attributes round-trip exactly.
package style

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// RGB is a color triple with 0-255 channels. Fractional channel values are
// allowed.
type RGB struct {
	R, G, B float64
}

// Spec renders the color in Mathcha's rgb notation.
func (c RGB) Spec() string {
	return fmt.Sprintf("{rgb, 255:red, %s; green, %s; blue, %s}",
		FormatNum(c.R), FormatNum(c.G), FormatNum(c.B))
}

// Attr is a preserved attribute the codec does not interpret.
type Attr struct {
	Key string
	Raw string // full original token, including the key
}

// Style is the canonical mapping parsed from one or more attribute blocks.
// Zero values mean "attribute absent"; pointer fields distinguish absent
// from explicit defaults.
type Style struct {
	Color       *RGB
	ColorName   string // set when the color is already a name, not a spec
	Fill        *RGB
	FillName    string
	DrawOpacity *float64
	FillOpacity *float64
	DashPattern string // normalized "on Xpt off Ypt ..." content
	LineWidth   *float64
	Extra       []Attr // unknown attributes, first-seen order
}

var (
	rgbSpecRe = regexp.MustCompile(
		`\{?\s*rgb\s*,\s*255\s*:\s*red\s*,\s*([0-9.]+)\s*;\s*green\s*,\s*([0-9.]+)\s*;\s*blue\s*,\s*([0-9.]+)\s*\}?`)
	dashContentRe = regexp.MustCompile(`\bon\s+([0-9.]+)\s*pt\s+off\s+([0-9.]+)\s*pt\b`)
)

// Parse decodes one or more raw attribute-block contents into a Style. Later
// blocks override earlier ones for recognized keys; unknown tokens
// accumulate in order.
func Parse(blocks ...string) Style {
	var s Style
	for _, block := range blocks {
		for _, token := range SplitParts(block) {
			s.parseToken(token)
		}
	}
	return s
}

func (s *Style) parseToken(token string) {
	key, value, hasEq := strings.Cut(token, "=")
	key = strings.TrimSpace(key)
	if hasEq {
		value = strings.TrimSpace(value)
	}

	switch {
	case key == "color" && hasEq:
		if rgb, ok := parseColorValue(value); ok {
			s.Color = &rgb
			s.ColorName = ""
		} else {
			s.ColorName = value
			s.Color = nil
		}
	case key == "fill" && hasEq:
		if rgb, ok := parseColorValue(value); ok {
			s.Fill = &rgb
			s.FillName = ""
		} else {
			s.FillName = value
			s.Fill = nil
		}
	case key == "draw opacity" && hasEq:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			s.DrawOpacity = &v
		}
	case key == "fill opacity" && hasEq:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			s.FillOpacity = &v
		}
	case key == "dash pattern" && hasEq:
		if normalized := NormalizeDash(value); normalized != "" {
			s.DashPattern = normalized
		}
	case key == "line width" && hasEq:
		if v, err := strconv.ParseFloat(strings.TrimSuffix(value, "pt"), 64); err == nil {
			s.LineWidth = &v
		}
	default:
		s.Extra = append(s.Extra, Attr{Key: key, Raw: token})
	}
}

func parseColorValue(value string) (RGB, bool) {
	m := rgbSpecRe.FindStringSubmatch(value)
	if m == nil {
		return RGB{}, false
	}
	r, errR := strconv.ParseFloat(m[1], 64)
	g, errG := strconv.ParseFloat(m[2], 64)
	b, errB := strconv.ParseFloat(m[3], 64)
	if errR != nil || errG != nil || errB != nil {
		return RGB{}, false
	}
	return RGB{R: r, G: g, B: b}, true
}

// Render serializes the style as a bracketed attribute block in canonical
// order: color, fill, opacities, dash, line width, then preserved unknowns.
// Attributes equal to their implicit default (opacity 1) are omitted.
// Returns "" when nothing needs emitting.
func (s Style) Render() string {
	var parts []string
	if s.Color != nil {
		parts = append(parts, "color = "+s.Color.Spec())
	} else if s.ColorName != "" {
		parts = append(parts, "color = "+s.ColorName)
	}
	if s.Fill != nil {
		parts = append(parts, "fill = "+s.Fill.Spec())
	} else if s.FillName != "" {
		parts = append(parts, "fill = "+s.FillName)
	}
	if s.DrawOpacity != nil && math.Abs(*s.DrawOpacity-1) > 1e-9 {
		parts = append(parts, "draw opacity = "+FormatNum(*s.DrawOpacity))
	}
	if s.FillOpacity != nil && math.Abs(*s.FillOpacity-1) > 1e-9 {
		parts = append(parts, "fill opacity = "+FormatNum(*s.FillOpacity))
	}
	if s.DashPattern != "" {
		parts = append(parts, "dash pattern = {"+s.DashPattern+"}")
	}
	if s.LineWidth != nil {
		parts = append(parts, "line width = "+FormatNum(*s.LineWidth))
	}
	for _, attr := range s.Extra {
		parts = append(parts, attr.Raw)
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IsZero reports whether the style carries no attributes at all.
func (s Style) IsZero() bool {
	return s.Color == nil && s.ColorName == "" && s.Fill == nil && s.FillName == "" &&
		s.DrawOpacity == nil && s.FillOpacity == nil && s.DashPattern == "" &&
		s.LineWidth == nil && len(s.Extra) == 0
}

// SplitParts splits attribute-block content on top-level commas, keeping
// brace-nested values like dash patterns and decorations whole.
func SplitParts(content string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	for _, ch := range content {
		switch {
		case ch == '{':
			depth++
			current.WriteRune(ch)
		case ch == '}':
			depth--
			current.WriteRune(ch)
		case ch == ',' && depth == 0:
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}
	return parts
}

// NormalizeDash canonicalizes dash-pattern content to lowercase single-space
// "on Xpt off Ypt" pairs. Returns "" when no valid pair is present.
func NormalizeDash(value string) string {
	var pairs []string
	for _, m := range dashContentRe.FindAllStringSubmatch(value, -1) {
		on, errOn := strconv.ParseFloat(m[1], 64)
		off, errOff := strconv.ParseFloat(m[2], 64)
		if errOn != nil || errOff != nil {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("on %spt off %spt", FormatNum(on), FormatNum(off)))
	}
	return strings.Join(pairs, " ")
}

// DashPairs parses dash-pattern content into (on, off) pairs.
func DashPairs(value string) [][2]float64 {
	var pairs [][2]float64
	for _, m := range dashContentRe.FindAllStringSubmatch(value, -1) {
		on, errOn := strconv.ParseFloat(m[1], 64)
		off, errOff := strconv.ParseFloat(m[2], 64)
		if errOn != nil || errOff != nil {
			continue
		}
		pairs = append(pairs, [2]float64{on, off})
	}
	return pairs
}

// FormatNum renders a number the way the output notation expects: integers
// without a decimal part, everything else at two decimals with trailing
// zeros trimmed.
func FormatNum(v float64) string {
	if math.Abs(v-math.Round(v)) < 1e-9 {
		return strconv.FormatInt(int64(math.Round(v)), 10)
	}
	formatted := strconv.FormatFloat(v, 'f', 2, 64)
	formatted = strings.TrimRight(formatted, "0")
	return strings.TrimRight(formatted, ".")
}
