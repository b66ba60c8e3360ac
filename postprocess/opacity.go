package postprocess

import (
	"regexp"
	"strings"
)

var (
	midOpacityRe  = regexp.MustCompile(`\b(?:draw|fill)\s+opacity\s*=\s*1(?:\.0*)?\s*,\s*`)
	lastOpacityRe = regexp.MustCompile(`,?\s*\b(?:draw|fill)\s+opacity\s*=\s*1(?:\.0*)?\s*\]`)
	emptyBlockRe  = regexp.MustCompile(`\s*\[\s*\]`)
)

// Opacity removes opacity attributes equal to the implicit default of 1 and
// cleans up the separators they leave behind. Blocks emptied by the removal
// disappear entirely.
func Opacity(input string) string {
	out := midOpacityRe.ReplaceAllString(input, "")
	out = lastOpacityRe.ReplaceAllString(out, "]")
	out = emptyBlockRe.ReplaceAllString(out, "")
	return out
}

// joinAttrs re-renders a cleaned attribute list, dropping empties.
func joinAttrs(attrs []string) string {
	kept := attrs[:0]
	for _, a := range attrs {
		if strings.TrimSpace(a) != "" {
			kept = append(kept, strings.TrimSpace(a))
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "[" + strings.Join(kept, ", ") + "]"
}
