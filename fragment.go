package softrender

import (
	"github.com/gogpu/softrender/internal/blend"
)

// Fragment is the result of a fragment shader: a color to blend into the
// framebuffer or a discard.
type Fragment[C any] struct {
	color   C
	discard bool
}

// Shade returns a fragment that writes c.
func Shade[C any](c C) Fragment[C] {
	return Fragment[C]{color: c}
}

// Discard returns a fragment that leaves color and depth untouched.
func Discard[C any]() Fragment[C] {
	return Fragment[C]{discard: true}
}

// Color returns the fragment color. ok is false for a discarded fragment.
func (f Fragment[C]) Color() (c C, ok bool) {
	return f.color, !f.discard
}

// Discarded reports whether the fragment was discarded.
func (f Fragment[C]) Discarded() bool { return f.discard }

// BlendFunc combines an incoming fragment color with the color already in
// the framebuffer.
type BlendFunc[C any] func(src, dst C) C

// Replace is the default blend function: the source replaces the
// destination.
func Replace[C any](src, _ C) C { return src }

// BlendMode selects a compositing operator for BlendRGBA and BlendRGBA8.
type BlendMode = blend.Mode

// Compositing operators.
const (
	BlendClear           = blend.Clear
	BlendSource          = blend.Source
	BlendDestination     = blend.Destination
	BlendSourceOver      = blend.SourceOver
	BlendDestinationOver = blend.DestinationOver
	BlendSourceIn        = blend.SourceIn
	BlendDestinationIn   = blend.DestinationIn
	BlendSourceOut       = blend.SourceOut
	BlendDestinationOut  = blend.DestinationOut
	BlendSourceAtop      = blend.SourceAtop
	BlendDestinationAtop = blend.DestinationAtop
	BlendXor             = blend.Xor
	BlendPlus            = blend.Plus
	BlendMultiply        = blend.Multiply
	BlendScreen          = blend.Screen
	BlendDarken          = blend.Darken
	BlendLighten         = blend.Lighten
	BlendDifference      = blend.Difference
)

// ParseBlendMode returns the mode with the given CSS-style name, such as
// "source-over" or "multiply".
func ParseBlendMode(name string) (BlendMode, bool) {
	return blend.ParseMode(name)
}

// BlendRGBA returns a blend function for RGBA colors.
func BlendRGBA(mode BlendMode) BlendFunc[RGBA] {
	f := blend.GetFunc(mode)
	return func(src, dst RGBA) RGBA {
		c := f(src.blendColor(), dst.blendColor())
		return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}
}

// BlendRGBA8 returns a blend function for RGBA8 colors.
func BlendRGBA8(mode BlendMode) BlendFunc[RGBA8] {
	f := BlendRGBA(mode)
	return func(src, dst RGBA8) RGBA8 {
		return f(src.Float(), dst.Float()).RGBA8()
	}
}
