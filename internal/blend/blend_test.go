package blend

import (
	"testing"

	"github.com/chewxy/math32"
)

func near(a, b Color) bool {
	const eps = 1e-5
	return math32.Abs(a.R-b.R) < eps && math32.Abs(a.G-b.G) < eps &&
		math32.Abs(a.B-b.B) < eps && math32.Abs(a.A-b.A) < eps
}

var (
	red         = Color{R: 1, A: 1}
	blue        = Color{B: 1, A: 1}
	halfRed     = Color{R: 1, A: 0.5}
	transparent = Color{}
)

// =============================================================================
// Porter-Duff Tests
// =============================================================================

func TestPorterDuff(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		src, dst Color
		want     Color
	}{
		{"clear", Clear, red, blue, transparent},
		{"source", Source, halfRed, blue, halfRed},
		{"destination", Destination, red, blue, blue},
		{"source-over opaque", SourceOver, red, blue, red},
		{"source-over half", SourceOver, halfRed, blue, Color{R: 0.5, B: 0.5, A: 1}},
		{"source-over onto transparent", SourceOver, halfRed, transparent, halfRed},
		{"destination-over", DestinationOver, red, blue, blue},
		{"source-in transparent dst", SourceIn, red, transparent, transparent},
		{"destination-out", DestinationOut, red, blue, transparent},
		{"xor both opaque", Xor, red, blue, transparent},
		{"plus", Plus, Color{R: 1, A: 0.5}, Color{B: 1, A: 0.5}, Color{R: 0.5, B: 0.5, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetFunc(tt.mode)(tt.src, tt.dst)
			if !near(got, tt.want) {
				t.Errorf("%v(%v, %v) = %v, want %v", tt.mode, tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestGetFunc_UnknownFallsBackToSourceOver(t *testing.T) {
	got := GetFunc(Mode(200))(halfRed, blue)
	want := GetFunc(SourceOver)(halfRed, blue)
	if !near(got, want) {
		t.Errorf("unknown mode = %v, want source-over %v", got, want)
	}
}

// =============================================================================
// Separable Mode Tests
// =============================================================================

func TestSeparable(t *testing.T) {
	gray := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	white := Color{R: 1, G: 1, B: 1, A: 1}

	tests := []struct {
		name     string
		mode     Mode
		src, dst Color
		want     Color
	}{
		{"multiply by white", Multiply, white, gray, gray},
		{"multiply gray", Multiply, gray, gray, Color{R: 0.25, G: 0.25, B: 0.25, A: 1}},
		{"screen gray", Screen, gray, gray, Color{R: 0.75, G: 0.75, B: 0.75, A: 1}},
		{"darken", Darken, gray, white, gray},
		{"lighten", Lighten, gray, white, white},
		{"difference", Difference, white, gray, gray},
		{"onto transparent", Multiply, gray, transparent, gray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetFunc(tt.mode)(tt.src, tt.dst)
			if !near(got, tt.want) {
				t.Errorf("%v(%v, %v) = %v, want %v", tt.mode, tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for m := Clear; m <= Difference; m++ {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseMode(%q) = %v, %v, want %v, true", m.String(), got, ok, m)
		}
	}
	if _, ok := ParseMode("nope"); ok {
		t.Error("ParseMode(nope) ok = true, want false")
	}
}
