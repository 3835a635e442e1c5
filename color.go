package softrender

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/colornames"

	"github.com/gogpu/softrender/internal/blend"
	srgb "github.com/gogpu/softrender/internal/color"
)

// Color is the contract for color attachment values.
//
// The zero value of C is the "empty" color a cleared buffer starts from.
// Alpha values are straight (not premultiplied) in [0, 1].
type Color[C any] interface {
	// Alpha returns the opacity of the color.
	Alpha() float32

	// WithAlpha returns the color with its opacity replaced.
	WithAlpha(a float32) C

	// MulAlpha returns the color with its opacity scaled by a. Antialiased
	// lines use it to apply pixel coverage.
	MulAlpha(a float32) C
}

// RGBA is a straight-alpha float color with components in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// RGB creates an opaque RGBA.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// RGBAFromVec converts an mgl32.Vec4 (r, g, b, a) to RGBA.
func RGBAFromVec(v mgl32.Vec4) RGBA {
	return RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
}

// Vec returns the color as an mgl32.Vec4.
func (c RGBA) Vec() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// Alpha implements Color.
func (c RGBA) Alpha() float32 { return c.A }

// WithAlpha implements Color.
func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = a
	return c
}

// MulAlpha implements Color.
func (c RGBA) MulAlpha(a float32) RGBA {
	c.A *= a
	return c
}

// RGBA implements image/color.Color.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.RGBA8().RGBA()
}

// RGBA8 quantizes the color to 8 bits per channel.
func (c RGBA) RGBA8() RGBA8 {
	return RGBA8{R: unorm8(c.R), G: unorm8(c.G), B: unorm8(c.B), A: unorm8(c.A)}
}

// SRGB8 treats c as linear light and encodes it to 8-bit sRGB. Alpha is
// quantized linearly.
func (c RGBA) SRGB8() RGBA8 {
	return RGBA8{R: srgb.FromLinear(c.R), G: srgb.FromLinear(c.G), B: srgb.FromLinear(c.B), A: unorm8(c.A)}
}

// Lerp implements interp.Interpolate on every channel.
func (c RGBA) Lerp(t float32, to RGBA) RGBA {
	s := 1 - t
	return RGBA{R: c.R*s + to.R*t, G: c.G*s + to.G*t, B: c.B*s + to.B*t, A: c.A*s + to.A*t}
}

// Barycentric implements interp.Interpolate on every channel.
func (c RGBA) Barycentric(u, v float32, b RGBA, w float32, d RGBA) RGBA {
	return RGBA{
		R: c.R*u + b.R*v + d.R*w,
		G: c.G*u + b.G*v + d.G*w,
		B: c.B*u + b.B*v + d.B*w,
		A: c.A*u + b.A*v + d.A*w,
	}
}

func (c RGBA) blendColor() blend.Color {
	return blend.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA8 is a straight-alpha color with 8 bits per channel, laid out like
// image/color.NRGBA.
type RGBA8 struct {
	R, G, B, A uint8
}

// RGBA8FromColor converts any image/color.Color to RGBA8.
func RGBA8FromColor(c color.Color) RGBA8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Alpha implements Color.
func (c RGBA8) Alpha() float32 { return float32(c.A) / 255 }

// WithAlpha implements Color.
func (c RGBA8) WithAlpha(a float32) RGBA8 {
	c.A = unorm8(a)
	return c
}

// MulAlpha implements Color.
func (c RGBA8) MulAlpha(a float32) RGBA8 {
	c.A = unorm8(float32(c.A) / 255 * a)
	return c
}

// RGBA implements image/color.Color.
func (c RGBA8) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Linear decodes an sRGB color to linear light.
func (c RGBA8) Linear() RGBA {
	return RGBA{
		R: srgb.ToLinear(c.R),
		G: srgb.ToLinear(c.G),
		B: srgb.ToLinear(c.B),
		A: float32(c.A) / 255,
	}
}

// Float converts the color to RGBA.
func (c RGBA8) Float() RGBA {
	return RGBA{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// TextureFormat reports the GPU texture format matching the memory layout of
// a []RGBA8 buffer.
func (RGBA8) TextureFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// NoColor is the color type of a framebuffer without a color attachment.
type NoColor struct{}

// Alpha implements Color.
func (NoColor) Alpha() float32 { return 0 }

// WithAlpha implements Color.
func (NoColor) WithAlpha(float32) NoColor { return NoColor{} }

// MulAlpha implements Color.
func (NoColor) MulAlpha(float32) NoColor { return NoColor{} }

// ParseColor parses an SVG color keyword ("cornflowerblue") or a hex color
// ("#rgb", "#rgba", "#rrggbb", "#rrggbbaa").
func ParseColor(s string) (RGBA8, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGBA8FromColor(c), nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return RGBA8{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	var v [4]uint8
	v[3] = 255
	switch len(hex) {
	case 3, 4:
		for i := range hex {
			d, ok := hexDigit(hex[i])
			if !ok {
				return RGBA8{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
			}
			v[i] = d * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return RGBA8{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return RGBA8{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	return RGBA8{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func unorm8(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
