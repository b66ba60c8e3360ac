package style

import (
	"strings"
	"testing"
)

func TestParseRecognizedAttributes(t *testing.T) {
	s := Parse("color={rgb, 255:red, 208; green, 2; blue, 27 }, draw opacity=0.75, dash pattern={on 4.5pt off 4.5pt}, line width=1.5")

	if s.Color == nil || s.Color.R != 208 || s.Color.G != 2 || s.Color.B != 27 {
		t.Errorf("color = %+v, want 208/2/27", s.Color)
	}
	if s.DrawOpacity == nil || *s.DrawOpacity != 0.75 {
		t.Errorf("draw opacity = %v, want 0.75", s.DrawOpacity)
	}
	if s.DashPattern != "on 4.5pt off 4.5pt" {
		t.Errorf("dash pattern = %q", s.DashPattern)
	}
	if s.LineWidth == nil || *s.LineWidth != 1.5 {
		t.Errorf("line width = %v, want 1.5", s.LineWidth)
	}
}

func TestParseFractionalChannels(t *testing.T) {
	s := Parse("fill={rgb, 255:red, 74.97; green, 144; blue, 226 }")
	if s.Fill == nil || s.Fill.R != 74.97 {
		t.Fatalf("fill = %+v, want fractional red channel", s.Fill)
	}
}

func TestUnknownAttributesRoundTrip(t *testing.T) {
	s := Parse("color=red, arrows=->, my custom key = {weird, value}")
	if s.ColorName != "red" {
		t.Errorf("ColorName = %q, want red", s.ColorName)
	}
	if len(s.Extra) != 2 {
		t.Fatalf("extra attrs = %d, want 2", len(s.Extra))
	}
	rendered := s.Render()
	for _, want := range []string{"arrows=->", "my custom key = {weird, value}"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered %q missing %q verbatim", rendered, want)
		}
	}
}

func TestRenderCanonicalOrderAndDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "defaults omitted",
			in:   "draw opacity=1",
			want: "",
		},
		{
			name: "canonical order",
			in:   "line width=0.75, draw opacity=0.5, color={rgb, 255:red, 0; green, 0; blue, 255 }",
			want: "[color = {rgb, 255:red, 0; green, 0; blue, 255}, draw opacity = 0.5, line width = 0.75]",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.in).Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := Parse("color={rgb, 255:red, 1; green, 2; blue, 3 }, draw opacity=0.4")
	first := s.Render()
	for i := 0; i < 5; i++ {
		if got := s.Render(); got != first {
			t.Fatalf("Render not deterministic: %q vs %q", first, got)
		}
	}
}

func TestSplitParts(t *testing.T) {
	parts := SplitParts("a=1, dash pattern={on 1pt off 2pt, on 3pt off 4pt}, b")
	if len(parts) != 3 {
		t.Fatalf("parts = %v, want 3 entries", parts)
	}
	if parts[1] != "dash pattern={on 1pt off 2pt, on 3pt off 4pt}" {
		t.Errorf("braced part split incorrectly: %q", parts[1])
	}
}

func TestFormatNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{1.5, "1.5"},
		{1.25, "1.25"},
		{1.999, "2"},
		{-3.10, "-3.1"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatNum(tt.in); got != tt.want {
			t.Errorf("FormatNum(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
