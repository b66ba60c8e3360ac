// Package tikz scans individual TikZ draw statements: splitting a block into
// statements, extracting coordinate pairs, bracketed style blocks, and the
// shift/rotate transform prefix that marks auxiliary fragments.
package tikz

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/1paulpo1/mathcha2tikz/geometry"
)

var (
	pointRe     = regexp.MustCompile(`\(\s*([-+]?[0-9]*\.?[0-9]+)\s*,\s*([-+]?[0-9]*\.?[0-9]+)\s*\)`)
	styleRe     = regexp.MustCompile(`\[([^\]]+)\]`)
	shiftRe     = regexp.MustCompile(`shift\s*=\s*\{\(\s*([-+0-9.]+)\s*,\s*([-+0-9.]+)\s*\)\}`)
	rotateRe    = regexp.MustCompile(`rotate\s*=\s*([-+0-9.]+)`)
	opacityZero = regexp.MustCompile(`draw\s+opacity\s*=\s*0(?:\.0*)?\s*[,\]]`)
)

// Statements splits a group body into individual draw statements. Mathcha
// keeps one statement per line but occasionally folds several \draw commands
// onto one; both forms are handled. Comment and blank lines are skipped.
func Statements(block string) []string {
	var stmts []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		if !strings.Contains(line, `\draw`) && !strings.Contains(line, `\node`) {
			continue
		}
		stmts = append(stmts, SplitCommands(line)...)
	}
	return stmts
}

// SplitCommands separates multiple backslash commands folded onto one line,
// keeping each command's leading backslash.
func SplitCommands(line string) []string {
	var cmds []string
	start := -1
	for i := 0; i < len(line); i++ {
		if line[i] != '\\' {
			continue
		}
		if i+1 < len(line) && (strings.HasPrefix(line[i:], `\draw`) || strings.HasPrefix(line[i:], `\node`)) {
			if start >= 0 {
				if cmd := strings.TrimSpace(line[start:i]); cmd != "" {
					cmds = append(cmds, cmd)
				}
			}
			start = i
		}
	}
	if start >= 0 {
		if cmd := strings.TrimSpace(line[start:]); cmd != "" {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Points returns every coordinate pair appearing in the statement, in source
// order. Style-block content is masked first so values like rotate angles
// inside brackets are not mistaken for coordinates.
func Points(stmt string) []geometry.Point {
	masked := styleRe.ReplaceAllStringFunc(stmt, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
	var points []geometry.Point
	for _, m := range pointRe.FindAllStringSubmatch(masked, -1) {
		x, errX := strconv.ParseFloat(m[1], 64)
		y, errY := strconv.ParseFloat(m[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, geometry.Point{X: x, Y: y})
	}
	return points
}

// StyleBlocks returns the raw content of each bracketed attribute block in
// the statement, without the brackets.
func StyleBlocks(stmt string) []string {
	var blocks []string
	for _, m := range styleRe.FindAllStringSubmatch(stmt, -1) {
		blocks = append(blocks, m[1])
	}
	return blocks
}

// Transform extracts the shift/rotate prefix of an auxiliary fragment.
// ok is false when the statement carries no shift transform.
func Transform(stmt string) (shift geometry.Point, rotateDeg float64, ok bool) {
	sm := shiftRe.FindStringSubmatch(stmt)
	if sm == nil {
		return geometry.Point{}, 0, false
	}
	x, errX := strconv.ParseFloat(sm[1], 64)
	y, errY := strconv.ParseFloat(sm[2], 64)
	if errX != nil || errY != nil {
		return geometry.Point{}, 0, false
	}
	if rm := rotateRe.FindStringSubmatch(stmt); rm != nil {
		if r, err := strconv.ParseFloat(rm[1], 64); err == nil {
			rotateDeg = r
		}
	}
	return geometry.Point{X: x, Y: y}, rotateDeg, true
}

// IsAux reports whether the statement is an auxiliary fragment, marked by a
// shift or rotate transform.
func IsAux(stmt string) bool {
	return strings.Contains(stmt, "shift") || strings.Contains(stmt, "rotate")
}

// HasBezierControls reports whether the statement draws a bezier chain.
func HasBezierControls(stmt string) bool {
	return strings.Contains(stmt, "..") && strings.Contains(stmt, "controls") && strings.Contains(stmt, "and")
}

// IsClosed reports whether the statement's path closes with a cycle marker.
func IsClosed(stmt string) bool {
	return strings.Contains(stmt, "-- cycle")
}

// HasDrawOpacityZero reports whether the statement is fully invisible.
func HasDrawOpacityZero(stmt string) bool {
	return opacityZero.MatchString(stmt)
}
