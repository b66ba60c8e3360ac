package palette

import (
	"math"
	"strings"
	"testing"

	"golang.org/x/image/colornames"

	"github.com/1paulpo1/mathcha2tikz/style"
)

func TestNearestExactMatches(t *testing.T) {
	ix := New()
	tests := []struct {
		rgb  style.RGB
		want string
	}{
		{style.RGB{R: 255, G: 0, B: 0}, "Red"},
		{style.RGB{R: 0, G: 0, B: 255}, "Blue"},
		{style.RGB{R: 0, G: 0, B: 0}, "Black"},
		{style.RGB{R: 255, G: 255, B: 255}, "White"},
	}
	for _, tt := range tests {
		if got := ix.Nearest(tt.rgb); got != tt.want {
			t.Errorf("Nearest(%+v) = %q, want %q", tt.rgb, got, tt.want)
		}
	}
}

func TestNearestApproximate(t *testing.T) {
	ix := New()
	// Slightly off pure red still resolves to Red.
	if got := ix.Nearest(style.RGB{R: 250, G: 5, B: 3}); got != "Red" {
		t.Errorf("Nearest(near-red) = %q, want Red", got)
	}
}

// Nearest must agree with a brute-force scan for every palette entry and a
// spread of off-palette probes.
func TestNearestMatchesBruteForce(t *testing.T) {
	ix := New()
	probes := []style.RGB{
		{R: 12, G: 200, B: 99},
		{R: 128, G: 128, B: 128},
		{R: 208, G: 2, B: 27},
		{R: 74.97, G: 144, B: 226},
		{R: 33, G: 66, B: 99},
	}
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		probes = append(probes, style.RGB{R: float64(c.R), G: float64(c.G), B: float64(c.B)})
	}
	for _, probe := range probes {
		want := bruteForceNearest(probe)
		if got := ix.Nearest(probe); got != want {
			t.Errorf("Nearest(%+v) = %q, brute force says %q", probe, got, want)
		}
	}
}

func bruteForceNearest(target style.RGB) string {
	best := ""
	bestDist := math.Inf(1)
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		dr := target.R - float64(c.R)
		dg := target.G - float64(c.G)
		db := target.B - float64(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = name
		}
	}
	return strings.ToUpper(best[:1]) + best[1:]
}

func TestNearestDeterministic(t *testing.T) {
	ix := New()
	probe := style.RGB{R: 100, G: 150, B: 200}
	first := ix.Nearest(probe)
	for i := 0; i < 10; i++ {
		if got := ix.Nearest(probe); got != first {
			t.Fatalf("Nearest not deterministic: %q vs %q", first, got)
		}
	}
}

func TestDefinition(t *testing.T) {
	ix := New()
	got, ok := ix.Definition("Red")
	if !ok {
		t.Fatal("Red should be in the palette")
	}
	want := `\definecolor{Red}{rgb}{1.0000, 0.0000, 0.0000}`
	if got != want {
		t.Errorf("Definition(Red) = %q, want %q", got, want)
	}

	if _, ok := ix.Definition("NoSuchColor"); ok {
		t.Error("unknown name must not produce a definition")
	}
}
