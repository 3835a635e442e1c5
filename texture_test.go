package softrender

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/softrender/interp"
)

// quad is a 2×2 texture holding 0 1 on the first row and 2 3 on the second.
func quad(t *testing.T) *Texture[interp.Float] {
	t.Helper()
	tex, err := NewTexture(2, 2, []interp.Float{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	return tex
}

func nearF(a, b interp.Float) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

// =============================================================================
// Construction
// =============================================================================

func TestNewTexture_Errors(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		texels []interp.Float
	}{
		{"zero width", 0, 1, nil},
		{"negative height", 1, -1, nil},
		{"too few texels", 2, 2, []interp.Float{0, 1, 2}},
		{"too many texels", 1, 1, []interp.Float{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTexture(tt.w, tt.h, tt.texels); !errors.Is(err, ErrTextureSize) {
				t.Errorf("NewTexture(%d, %d) error = %v, want ErrTextureSize", tt.w, tt.h, err)
			}
		})
	}
}

func TestTextureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(2, 1, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	// A sub-image keeps its absolute bounds; texels start at its corner.
	tex, err := TextureFromImage(img.SubImage(image.Rect(1, 0, 3, 2)))
	if err != nil {
		t.Fatalf("TextureFromImage() error = %v", err)
	}
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", tex.Width(), tex.Height())
	}
	if got, want := tex.At(0, 0), (RGBA8{R: 255, A: 255}).Linear(); got != want {
		t.Errorf("At(0, 0) = %v, want %v", got, want)
	}
	if got, want := tex.At(1, 1), (RGBA8{R: 128, G: 128, B: 128, A: 255}).Linear(); got != want {
		t.Errorf("At(1, 1) = %v, want %v", got, want)
	}
}

// =============================================================================
// Sampling
// =============================================================================

func TestTexture_SampleNearest(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name string
		u, v float32
		edge Edge
		want interp.Float
	}{
		{"first texel", 0.25, 0.25, EdgeClamp, 0},
		{"second column", 0.75, 0.25, EdgeClamp, 1},
		{"last texel", 0.75, 0.75, EdgeClamp, 3},
		{"right edge clamps", 1, 1, EdgeClamp, 3},
		{"left of texture clamps", -0.1, 0.25, EdgeClamp, 0},
		{"far outside clamps", 1e30, 0.75, EdgeClamp, 3},
		{"NaN clamps", nan, 0.25, EdgeClamp, 0},
		{"wrap right", 1.25, 0.25, EdgeWrap, 0},
		{"wrap left", -0.25, 0.25, EdgeWrap, 1},
		{"wrap down", 0.25, 1.75, EdgeWrap, 2},
		{"border outside", 1.25, 0.25, EdgeBorder, -1},
		{"border inside", 0.75, 0.75, EdgeBorder, 3},
		{"border NaN", nan, 0.25, EdgeBorder, -1},
	}
	tex := quad(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tex.Sample(tt.u, tt.v, Sampler[interp.Float]{Edge: tt.edge, Border: -1})
			if got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestTexture_SampleBilinear(t *testing.T) {
	tests := []struct {
		name string
		u, v float32
		edge Edge
		want interp.Float
	}{
		{"texel center", 0.25, 0.25, EdgeClamp, 0},
		{"other texel center", 0.75, 0.25, EdgeClamp, 1},
		{"middle of four", 0.5, 0.5, EdgeClamp, 1.5},
		{"between columns", 0.5, 0.25, EdgeClamp, 0.5},
		{"between rows", 0.25, 0.5, EdgeClamp, 1},
		{"clamped edge", 0, 0.25, EdgeClamp, 0},
		{"wrapped edge", 0, 0.25, EdgeWrap, 0.5},
		{"border edge", 0, 0.25, EdgeBorder, -0.5},
	}
	tex := quad(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sampler[interp.Float]{Filter: FilterBilinear, Edge: tt.edge, Border: -1}
			if got := tex.Sample(tt.u, tt.v, s); !nearF(got, tt.want) {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestTexture_SampleBilinearRGBA(t *testing.T) {
	tex, err := NewTexture(2, 1, []RGBA{{R: 1, A: 1}, {B: 1, A: 1}})
	if err != nil {
		t.Fatal(err)
	}
	got := tex.Sample(0.5, 0.5, Sampler[RGBA]{Filter: FilterBilinear})
	if want := (RGBA{R: 0.5, B: 0.5, A: 1}); got != want {
		t.Errorf("Sample(0.5, 0.5) = %v, want %v", got, want)
	}
}

func TestFilterEdge_String(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FilterNearest.String(), "nearest"},
		{FilterBilinear.String(), "bilinear"},
		{Filter(9).String(), "unknown"},
		{EdgeClamp.String(), "clamp"},
		{EdgeWrap.String(), "wrap"},
		{EdgeBorder.String(), "border"},
		{Edge(9).String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
