// Package mathcha2tikz provides a fluent API for converting Mathcha-exported
// TikZ into compact, semantically equivalent TikZ.
//
// Basic usage:
//
//	out, warnings, err := mathcha2tikz.Convert(input).Run()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", mathcha2tikz.FormatWarnings(warnings))
//	}
//
// With options:
//
//	out, _, err := mathcha2tikz.Convert(input).
//	    PlaceNodes(true).
//	    Run()
//
// For lower-level access, the detect, shapes, and postprocess packages are
// also available.
package mathcha2tikz

import (
	"fmt"
	"strings"
)

// Convert prepares a conversion of the given TikZ source and returns a
// Converter for fluent configuration.
//
// Example:
//
//	out, warnings, err := mathcha2tikz.Convert(input).Run()
func Convert(input string) *Converter {
	return &Converter{
		input:   input,
		options: defaultOptions(),
	}
}

// Warning describes a non-fatal degradation during conversion: a group that
// passed through unrecognized, or arrow fragments that matched nothing.
type Warning struct {
	Code    string // machine-readable kind, e.g. "passthrough"
	GroupID string // traceability id of the affected group, if any
	Message string
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		if w.GroupID != "" {
			lines[i] = fmt.Sprintf("[%s] id:%s: %s", w.Code, w.GroupID, w.Message)
		} else {
			lines[i] = fmt.Sprintf("[%s] %s", w.Code, w.Message)
		}
	}
	return strings.Join(lines, "\n")
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRun wraps a call to Run() and panics if the error is non-nil. It
// discards warnings and returns just the converted output.
//
// Example:
//
//	out := mathcha2tikz.MustRun(mathcha2tikz.Convert(input).Run())
func MustRun(out string, _ []Warning, err error) string {
	if err != nil {
		panic(err)
	}
	return out
}
