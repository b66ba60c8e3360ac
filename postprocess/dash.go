package postprocess

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/1paulpo1/mathcha2tikz/style"
)

// namedDashes maps the dash pairs Mathcha emits to the TikZ named styles
// they visually correspond to. Matching allows small numeric drift.
var namedDashes = []struct {
	on, off float64
	name    string
}{
	{4.5, 4.5, "dashed"},
	{0.84, 2.51, "dotted"},
	{0.08, 2.29, "densely dotted"},
	{3.49, 4.5, "densely dashed"},
	{2, 2, "densely dashed"},
	{1, 1, "densely dotted"},
	{6, 6, "loosely dashed"},
	{1, 3, "densely dotted"},
}

const dashMatchTol = 0.05

var styleBlockRe = regexp.MustCompile(`\[([^\[\]]*)\]`)

// Dashes canonicalizes dash patterns inside every style block: duplicate
// dash-pattern attributes collapse to the first, repeated pair sequences
// collapse to their period, and patterns matching a named style are replaced
// by the style name. Named styles and non-dash attributes pass through, so
// a second run changes nothing.
func Dashes(input string) string {
	return styleBlockRe.ReplaceAllStringFunc(input, func(block string) string {
		content := block[1 : len(block)-1]
		attrs := style.SplitParts(content)

		var kept []string
		seenDash := false
		for _, attr := range attrs {
			key, value, hasEq := strings.Cut(attr, "=")
			if strings.TrimSpace(key) != "dash pattern" || !hasEq {
				kept = append(kept, attr)
				continue
			}
			if seenDash {
				continue
			}
			seenDash = true
			kept = append(kept, canonicalDash(value))
		}
		if rewritten := joinAttrs(kept); rewritten != "" {
			return rewritten
		}
		return block
	})
}

// canonicalDash rewrites one dash-pattern value into either a named style
// token or a collapsed dash-pattern attribute.
func canonicalDash(value string) string {
	pairs := collapseRepeats(style.DashPairs(value))
	if len(pairs) == 0 {
		return "dash pattern = " + strings.TrimSpace(value)
	}
	if len(pairs) == 1 {
		for _, named := range namedDashes {
			if math.Abs(pairs[0][0]-named.on) <= dashMatchTol &&
				math.Abs(pairs[0][1]-named.off) <= dashMatchTol {
				return named.name
			}
		}
	}
	rendered := make([]string, len(pairs))
	for i, p := range pairs {
		rendered[i] = fmt.Sprintf("on %spt off %spt", style.FormatNum(p[0]), style.FormatNum(p[1]))
	}
	return "dash pattern = {" + strings.Join(rendered, " ") + "}"
}

// collapseRepeats reduces a pair sequence to its smallest repeating period.
func collapseRepeats(pairs [][2]float64) [][2]float64 {
	for period := 1; period <= len(pairs)/2; period++ {
		if len(pairs)%period != 0 {
			continue
		}
		repeats := true
		for i := period; i < len(pairs) && repeats; i++ {
			if pairs[i] != pairs[i%period] {
				repeats = false
			}
		}
		if repeats {
			return pairs[:period]
		}
	}
	return pairs
}
