package softrender

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/colornames"
)

// Compile-time contract checks.
var (
	_ Color[RGBA]    = RGBA{}
	_ Color[RGBA8]   = RGBA8{}
	_ Color[NoColor] = NoColor{}
	_ Depth[Depth32] = Depth32(0)
	_ Depth[NoDepth] = NoDepth{}
	_ color.Color    = RGBA{}
	_ color.Color    = RGBA8{}
)

// Stencil carries comparable, so it can only be checked as a constraint.
func stencilContract[S Stencil[S]]() {}

var (
	_ = stencilContract[Stencil8]
	_ = stencilContract[Stencil16]
	_ = stencilContract[Stencil32]
	_ = stencilContract[NoStencil]
)

// =============================================================================
// Color
// =============================================================================

func TestRGBA_ColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		c                          RGBA
		wantR, wantG, wantB, wantA uint32
	}{
		{"opaque black", RGB(0, 0, 0), 0, 0, 0, 0xffff},
		{"opaque white", RGB(1, 1, 1), 0xffff, 0xffff, 0xffff, 0xffff},
		{"opaque red", RGB(1, 0, 0), 0xffff, 0, 0, 0xffff},
		{"transparent", RGBA{}, 0, 0, 0, 0},
		{"clamped", RGBA{R: 2, G: -1, B: 0, A: 1}, 0xffff, 0, 0, 0xffff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.wantR || g != tt.wantG || b != tt.wantB || a != tt.wantA {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestRGBA_Alpha(t *testing.T) {
	c := RGB(0.2, 0.4, 0.6)
	if got := c.WithAlpha(0.5).Alpha(); got != 0.5 {
		t.Errorf("WithAlpha(0.5).Alpha() = %v, want 0.5", got)
	}
	if got := c.WithAlpha(0.5).MulAlpha(0.5).Alpha(); got != 0.25 {
		t.Errorf("MulAlpha(0.5).Alpha() = %v, want 0.25", got)
	}
	if got := c.MulAlpha(0.5); got.R != c.R || got.G != c.G || got.B != c.B {
		t.Errorf("MulAlpha() changed the color channels: %v", got)
	}
}

func TestRGBA8_RoundTrip(t *testing.T) {
	for _, c := range []RGBA8{{}, {R: 255, A: 255}, {R: 1, G: 128, B: 254, A: 77}} {
		if got := c.Float().RGBA8(); got != c {
			t.Errorf("Float().RGBA8() = %v, want %v", got, c)
		}
	}
}

func TestRGBA8_LinearRoundTrip(t *testing.T) {
	for _, c := range []RGBA8{{}, {R: 255, G: 255, B: 255, A: 255}, {R: 1, G: 128, B: 254, A: 77}} {
		if got := c.Linear().SRGB8(); got != c {
			t.Errorf("Linear().SRGB8() = %v, want %v", got, c)
		}
	}
	// sRGB mid-grey is darker than half intensity in linear light.
	if l := (RGBA8{R: 128, A: 255}).Linear(); l.R > 0.22 || l.R < 0.21 {
		t.Errorf("Linear().R = %v, want about 0.216", l.R)
	}
}

func TestRGBA8_MulAlpha(t *testing.T) {
	tests := []struct {
		a        uint8
		coverage float32
		want     uint8
	}{
		{255, 1, 255},
		{255, 0.5, 128},
		{200, 0.25, 50},
		{255, 0, 0},
	}
	for _, tt := range tests {
		got := RGBA8{R: 9, A: tt.a}.MulAlpha(tt.coverage)
		if got.A != tt.want || got.R != 9 {
			t.Errorf("RGBA8{A: %d}.MulAlpha(%v) = %v, want A = %d", tt.a, tt.coverage, got, tt.want)
		}
	}
}

func TestRGBA8FromColor(t *testing.T) {
	got := RGBA8FromColor(colornames.Cornflowerblue)
	want := RGBA8{R: 100, G: 149, B: 237, A: 255}
	if got != want {
		t.Errorf("RGBA8FromColor(cornflowerblue) = %v, want %v", got, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBA8
		wantErr bool
	}{
		{"red", RGBA8{R: 255, A: 255}, false},
		{"  Navy ", RGBA8{B: 128, A: 255}, false},
		{"#fff", RGBA8{R: 255, G: 255, B: 255, A: 255}, false},
		{"#f008", RGBA8{R: 255, A: 0x88}, false},
		{"#336699", RGBA8{R: 0x33, G: 0x66, B: 0x99, A: 255}, false},
		{"#33669980", RGBA8{R: 0x33, G: 0x66, B: 0x99, A: 0x80}, false},
		{"#12345", RGBA8{}, true},
		{"#gg0000", RGBA8{}, true},
		{"notacolor", RGBA8{}, true},
		{"", RGBA8{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownColor) {
					t.Errorf("ParseColor(%q) error = %v, want ErrUnknownColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Depth
// =============================================================================

func TestDepth32(t *testing.T) {
	var d Depth32
	far := d.Far()
	if !math.IsInf(float64(far), 1) {
		t.Errorf("Far() = %v, want +Inf", far)
	}

	tests := []struct {
		a, b Depth32
		want bool
	}{
		{0.1, 0.2, true},
		{0.2, 0.1, false},
		{0.5, 0.5, false},
		{1, far, true},
	}
	for _, tt := range tests {
		if got := tt.a.Nearer(tt.b); got != tt.want {
			t.Errorf("Depth32(%v).Nearer(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if got := d.FromScalar(0.25); got != 0.25 {
		t.Errorf("FromScalar(0.25) = %v, want 0.25", got)
	}
}

func TestNoDepth_AlwaysNearer(t *testing.T) {
	var d NoDepth
	if !d.FromScalar(1).Nearer(d.Far()) {
		t.Error("NoDepth.Nearer() = false, want true")
	}
}

// =============================================================================
// Stencil
// =============================================================================

func TestStencilPasses(t *testing.T) {
	tests := []struct {
		test               StencilTest
		present, reference Stencil8
		want               bool
	}{
		{StencilAlways, 3, 5, true},
		{StencilNever, 3, 3, false},
		{StencilLess, 5, 3, true},
		{StencilLess, 3, 3, false},
		{StencilGreater, 3, 5, true},
		{StencilGreater, 5, 3, false},
		{StencilLessEqual, 3, 3, true},
		{StencilLessEqual, 2, 3, false},
		{StencilGreaterEqual, 3, 3, true},
		{StencilGreaterEqual, 4, 3, false},
		{StencilEqual, 7, 7, true},
		{StencilEqual, 7, 6, false},
		{StencilNotEqual, 7, 6, true},
		{StencilNotEqual, 7, 7, false},
	}
	for _, tt := range tests {
		if got := StencilPasses(tt.test, tt.present, tt.reference); got != tt.want {
			t.Errorf("StencilPasses(%d, present=%d, ref=%d) = %v, want %v",
				tt.test, tt.present, tt.reference, got, tt.want)
		}
	}
}

func TestStencilOp_Apply(t *testing.T) {
	tests := []struct {
		name    string
		op      StencilOp[Stencil8]
		present Stencil8
		want    Stencil8
	}{
		{"keep", StencilOp[Stencil8]{}, 9, 9},
		{"invert", StencilOp[Stencil8]{Kind: StencilInvert}, 0x0f, 0xf0},
		{"zero", StencilOp[Stencil8]{Kind: StencilZero}, 9, 0},
		{"replace", ReplaceStencil[Stencil8](42), 9, 42},
		{"increment", IncrementStencil[Stencil8](false), 9, 10},
		{"increment saturates", IncrementStencil[Stencil8](false), 255, 255},
		{"increment wraps", IncrementStencil[Stencil8](true), 255, 0},
		{"decrement", DecrementStencil[Stencil8](false), 9, 8},
		{"decrement saturates", DecrementStencil[Stencil8](false), 0, 0},
		{"decrement wraps", DecrementStencil[Stencil8](true), 0, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.Apply(tt.present); got != tt.want {
				t.Errorf("Apply(%d) = %d, want %d", tt.present, got, tt.want)
			}
		})
	}
}

func TestStencil16_Bounds(t *testing.T) {
	if got := Stencil16(math.MaxUint16).Increment(false); got != math.MaxUint16 {
		t.Errorf("Increment(false) at max = %d, want %d", got, math.MaxUint16)
	}
	if got := Stencil32(0).Decrement(true); got != math.MaxUint32 {
		t.Errorf("Stencil32(0).Decrement(true) = %d, want %d", got, uint32(math.MaxUint32))
	}
}

// =============================================================================
// Framebuffer
// =============================================================================

func TestNewFramebuffer(t *testing.T) {
	fb := NewFramebuffer[RGBA8, Depth32, Stencil8](5, 3)

	if fb.Width() != 5 || fb.Height() != 3 || fb.Len() != 15 {
		t.Fatalf("size = %dx%d (%d), want 5x3 (15)", fb.Width(), fb.Height(), fb.Len())
	}
	for i := range fb.Len() {
		if fb.PixelAt(i) != (RGBA8{}) {
			t.Errorf("PixelAt(%d) = %v, want empty", i, fb.PixelAt(i))
		}
		if !math.IsInf(float64(fb.DepthAt(i)), 1) {
			t.Errorf("DepthAt(%d) = %v, want far", i, fb.DepthAt(i))
		}
		if fb.StencilAt(i) != 0 {
			t.Errorf("StencilAt(%d) = %d, want 0", i, fb.StencilAt(i))
		}
	}
}

func TestFramebuffer_CheckedAccess(t *testing.T) {
	fb := NewFramebuffer[RGBA8, Depth32, Stencil8](4, 2)

	if err := fb.SetPixel(3, 1, red); err != nil {
		t.Fatalf("SetPixel(3, 1) error = %v", err)
	}
	if got := fb.PixelAt(3 + 1*4); got != red {
		t.Errorf("PixelAt(7) = %v, want %v (row-major)", got, red)
	}

	coords := [][2]int{{-1, 0}, {4, 0}, {0, 2}, {0, -1}}
	for _, c := range coords {
		if _, err := fb.Pixel(c[0], c[1]); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Pixel(%d, %d) error = %v, want ErrInvalidCoordinate", c[0], c[1], err)
		}
		if err := fb.SetPixel(c[0], c[1], red); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("SetPixel(%d, %d) error = %v, want ErrInvalidCoordinate", c[0], c[1], err)
		}
		if _, err := fb.Depth(c[0], c[1]); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Depth(%d, %d) error = %v, want ErrInvalidCoordinate", c[0], c[1], err)
		}
		if _, err := fb.Stencil(c[0], c[1]); !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Stencil(%d, %d) error = %v, want ErrInvalidCoordinate", c[0], c[1], err)
		}
	}
}

func TestFramebuffer_Clear(t *testing.T) {
	fb := NewFramebuffer[RGBA8, Depth32, Stencil8](3, 3)
	for i := range fb.Len() {
		fb.SetPixelAt(i, red)
		fb.SetDepthAt(i, 0.5)
		fb.SetStencilAt(i, 3)
	}

	fb.Clear(blue)

	for i := range fb.Len() {
		if fb.PixelAt(i) != blue || !math.IsInf(float64(fb.DepthAt(i)), 1) || fb.StencilAt(i) != 0 {
			t.Fatalf("after Clear: %v/%v/%v, want %v/+Inf/0", fb.PixelAt(i), fb.DepthAt(i), fb.StencilAt(i), blue)
		}
	}

	fb.SetStencilAt(4, 2)
	fb.SetDepthAt(4, 0.1)
	fb.ClearStencil()
	fb.ClearDepth()
	if fb.StencilAt(4) != 0 || !math.IsInf(float64(fb.DepthAt(4)), 1) {
		t.Errorf("ClearStencil/ClearDepth left %d/%v", fb.StencilAt(4), fb.DepthAt(4))
	}
}

func TestFramebuffer_Image(t *testing.T) {
	fb := NewFramebuffer[RGBA8, NoDepth, NoStencil](2, 2)
	fb.SetPixelAt(1, RGBA8{R: 10, G: 20, B: 30, A: 255})

	img := fb.NRGBA()
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("NRGBAAt(1, 0) = %v, want {10 20 30 255}", got)
	}
	if got := fb.Image().Bounds(); got.Dx() != 2 || got.Dy() != 2 {
		t.Errorf("Image().Bounds() = %v, want 2x2", got)
	}
	if got := fb.ColorFormat(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("ColorFormat() = %v, want RGBA8Unorm", got)
	}

	noColor := NewFramebuffer[NoColor, Depth32, NoStencil](2, 2)
	if got := noColor.ColorFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("ColorFormat() without color = %v, want Undefined", got)
	}
}

func TestFramebuffer_Region(t *testing.T) {
	fb := NewFramebuffer[RGBA8, Depth32, Stencil8](6, 4)
	reg := fb.Region(image.Rect(2, 1, 10, 3))

	if reg.Rect.Dx() != 4 || reg.Rect.Dy() != 2 {
		t.Fatalf("Region().Rect = %v, want clipped to 4x2", reg.Rect)
	}
	if reg.Contains(1, 1) || !reg.Contains(5, 2) {
		t.Errorf("Contains() wrong for %v", reg.Rect)
	}

	reg.SetPixel(5, 2, green)
	reg.SetDepth(5, 2, 0.3)
	reg.SetStencil(5, 2, 4)

	i := 5 + 2*6
	if fb.PixelAt(i) != green || fb.DepthAt(i) != 0.3 || fb.StencilAt(i) != 4 {
		t.Errorf("region write not visible at index %d: %v/%v/%v", i, fb.PixelAt(i), fb.DepthAt(i), fb.StencilAt(i))
	}

	// Row views are capped at the region's edge.
	if got := cap(reg.color[0]); got != 4 {
		t.Errorf("cap(row) = %d, want 4", got)
	}
}

func TestFramebuffer_DirtyTiles(t *testing.T) {
	fb := NewFramebuffer[RGBA8, NoDepth, NoStencil](70, 40)
	fb.ClearDirty()
	if got := fb.DirtyTiles(); len(got) != 0 {
		t.Fatalf("DirtyTiles() after ClearDirty = %v, want none", got)
	}

	_ = fb.SetPixel(65, 35, red)
	got := fb.DirtyTiles()
	if len(got) != 1 || got[0] != image.Rect(64, 32, 70, 40) {
		t.Errorf("DirtyTiles() = %v, want [(64,32)-(70,40)]", got)
	}

	fb.Clear(RGBA8{})
	if got := fb.DirtyTiles(); len(got) != 6 {
		t.Errorf("len(DirtyTiles()) after Clear = %d, want 6", len(got))
	}
}
