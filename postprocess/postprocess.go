// Package postprocess rewrites rendered TikZ output into its final form:
// literal colors become named palette colors with matching definitions,
// redundant opacity attributes disappear, and dash patterns collapse to
// named styles where one exists. Every pass is idempotent, so running the
// chain twice produces the same output.
package postprocess

import (
	"errors"
	"fmt"

	"github.com/1paulpo1/mathcha2tikz/palette"
)

// ErrUnbalanced marks a document whose brace or bracket structure cannot be
// walked by the style passes.
var ErrUnbalanced = errors.New("unbalanced style delimiters")

// Result is the rewritten document plus the color definitions its named
// colors require, in first-use order.
type Result struct {
	Output      string
	Definitions []string
}

// Run applies the full pass chain. Only a structurally broken document
// (unbalanced style brackets) produces an error; cosmetic oddities pass
// through untouched.
func Run(input string, ix *palette.Index) (Result, error) {
	if err := checkBrackets(input); err != nil {
		return Result{}, err
	}
	out, defs := Colors(input, ix)
	out = Opacity(out)
	out = Dashes(out)
	return Result{Output: out, Definitions: defs}, nil
}

// checkBrackets verifies that braces and square brackets nest properly over
// the whole document.
func checkBrackets(input string) error {
	braces, brackets := 0, 0
	for _, ch := range input {
		switch ch {
		case '{':
			braces++
		case '}':
			braces--
		case '[':
			brackets++
		case ']':
			brackets--
		}
		if braces < 0 || brackets < 0 {
			return fmt.Errorf("%w: closing delimiter without opener", ErrUnbalanced)
		}
	}
	if braces != 0 || brackets != 0 {
		return fmt.Errorf("%w: %d braces, %d brackets left open", ErrUnbalanced, braces, brackets)
	}
	return nil
}
