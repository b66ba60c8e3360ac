// Package palette holds the fixed reference color palette and a kd-tree
// index over it for nearest-neighbor resolution of literal RGB values.
// The index is built once per run and read-only afterwards.
package palette

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/1paulpo1/mathcha2tikz/style"
)

// Entry is one named reference color.
type Entry struct {
	Name string
	RGB  style.RGB
}

// Index resolves RGB triples to their nearest named palette color.
type Index struct {
	root    *node
	entries map[string]style.RGB
}

type node struct {
	entry       Entry
	left, right *node
}

// New builds the index over the reference palette: the SVG 1.1 color set,
// with display names capitalized the way color definitions are emitted.
// Palette order (sorted by name) breaks distance ties deterministically.
func New() *Index {
	entries := make([]Entry, 0, len(colornames.Names))
	byName := make(map[string]style.RGB, len(colornames.Names))
	for _, name := range colornames.Names { // colornames.Names is sorted
		c := colornames.Map[name]
		rgb := style.RGB{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
		display := displayName(name)
		entries = append(entries, Entry{Name: display, RGB: rgb})
		byName[display] = rgb
	}
	return &Index{
		root:    build(entries, 0),
		entries: byName,
	}
}

// displayName capitalizes a palette name for use as a color identifier.
func displayName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func build(entries []Entry, depth int) *node {
	if len(entries) == 0 {
		return nil
	}
	axis := depth % 3
	sort.SliceStable(entries, func(i, j int) bool {
		return channel(entries[i].RGB, axis) < channel(entries[j].RGB, axis)
	})
	median := len(entries) / 2
	return &node{
		entry: entries[median],
		left:  build(entries[:median], depth+1),
		right: build(entries[median+1:], depth+1),
	}
}

func channel(c style.RGB, axis int) float64 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// Nearest returns the palette name closest to the target in Euclidean RGB
// distance. Ties break toward the entry earlier in palette order.
func (ix *Index) Nearest(target style.RGB) string {
	best := Entry{}
	bestDist := -1.0
	var search func(n *node, depth int)
	search = func(n *node, depth int) {
		if n == nil {
			return
		}
		d := sqDist(target, n.entry.RGB)
		if bestDist < 0 || d < bestDist || (d == bestDist && n.entry.Name < best.Name) {
			bestDist = d
			best = n.entry
		}
		axis := depth % 3
		diff := channel(target, axis) - channel(n.entry.RGB, axis)
		near, far := n.left, n.right
		if diff > 0 {
			near, far = n.right, n.left
		}
		search(near, depth+1)
		if diff*diff <= bestDist {
			search(far, depth+1)
		}
	}
	search(ix.root, 0)
	return best.Name
}

func sqDist(a, b style.RGB) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return dr*dr + dg*dg + db*db
}

// Definition renders the named-color definition line for a palette entry.
// Channels are emitted in 0-1 space at four decimals.
func (ix *Index) Definition(name string) (string, bool) {
	rgb, ok := ix.entries[name]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(`\definecolor{%s}{rgb}{%.4f, %.4f, %.4f}`,
		name, rgb.R/255, rgb.G/255, rgb.B/255), true
}
