package postprocess

import (
	"regexp"
	"strconv"

	"github.com/1paulpo1/mathcha2tikz/palette"
	"github.com/1paulpo1/mathcha2tikz/style"
)

var rgbSpecRe = regexp.MustCompile(
	`\{\s*rgb\s*,\s*255\s*:\s*red\s*,\s*([0-9.]+)\s*;\s*green\s*,\s*([0-9.]+)\s*;\s*blue\s*,\s*([0-9.]+)\s*\}`)

// Colors replaces every literal rgb color spec with the name of its nearest
// palette color and returns the definitions those names require, in
// first-use order with no duplicates. A document without literal specs comes
// back unchanged with no definitions, which is what makes the pass
// idempotent.
func Colors(input string, ix *palette.Index) (string, []string) {
	var defs []string
	seen := make(map[string]bool)

	out := rgbSpecRe.ReplaceAllStringFunc(input, func(spec string) string {
		m := rgbSpecRe.FindStringSubmatch(spec)
		r, errR := strconv.ParseFloat(m[1], 64)
		g, errG := strconv.ParseFloat(m[2], 64)
		b, errB := strconv.ParseFloat(m[3], 64)
		if errR != nil || errG != nil || errB != nil {
			return spec
		}
		name := ix.Nearest(style.RGB{R: r, G: g, B: b})
		if !seen[name] {
			seen[name] = true
			if def, ok := ix.Definition(name); ok {
				defs = append(defs, def)
			}
		}
		return name
	})
	return out, defs
}
