package softrender

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/softrender/interp"
)

// Filter selects how a texture is read between texel centers.
type Filter uint8

const (
	// FilterNearest returns the texel containing the coordinate.
	FilterNearest Filter = iota

	// FilterBilinear blends the four texels around the coordinate.
	FilterBilinear
)

// String implements fmt.Stringer.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	}
	return "unknown"
}

// Edge selects what a read outside the texture returns.
type Edge uint8

const (
	// EdgeClamp repeats the outermost texels.
	EdgeClamp Edge = iota

	// EdgeWrap tiles the texture.
	EdgeWrap

	// EdgeBorder returns the sampler's Border value.
	EdgeBorder
)

// String implements fmt.Stringer.
func (e Edge) String() string {
	switch e {
	case EdgeClamp:
		return "clamp"
	case EdgeWrap:
		return "wrap"
	case EdgeBorder:
		return "border"
	}
	return "unknown"
}

// Sampler is the read state of a texture lookup. The zero value samples
// nearest texels clamped to the edge.
type Sampler[T any] struct {
	Filter Filter
	Edge   Edge
	Border T
}

// Texture is a read-only 2D array of texels that shaders sample with
// normalized coordinates. (0, 0) is the top-left corner of the first texel
// and (1, 1) the bottom-right corner of the last; texel centers sit at
// half-texel offsets.
//
// A Texture is safe for concurrent reads.
type Texture[T interp.Interpolate[T]] struct {
	width, height int
	texels        []T
}

// NewTexture wraps texels, stored row by row, as a width×height texture.
// The slice is not copied.
func NewTexture[T interp.Interpolate[T]](width, height int, texels []T) (*Texture[T], error) {
	if width <= 0 || height <= 0 || len(texels) != width*height {
		return nil, fmt.Errorf("%w: %d texels for %dx%d", ErrTextureSize, len(texels), width, height)
	}
	return &Texture[T]{width: width, height: height, texels: texels}, nil
}

// TextureFromImage decodes img into linear-light texels.
func TextureFromImage(img image.Image) (*Texture[RGBA], error) {
	b := img.Bounds()
	texels := make([]RGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			texels = append(texels, RGBA8FromColor(img.At(x, y)).Linear())
		}
	}
	return NewTexture(b.Dx(), b.Dy(), texels)
}

// Width returns the texture width in texels.
func (t *Texture[T]) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture[T]) Height() int { return t.height }

// At returns the texel at (x, y), which must be inside the texture.
func (t *Texture[T]) At(x, y int) T { return t.texels[x+y*t.width] }

// Sample reads the texture at the normalized coordinate (u, v).
func (t *Texture[T]) Sample(u, v float32, s Sampler[T]) T {
	fx := u * float32(t.width)
	fy := v * float32(t.height)

	if s.Filter != FilterBilinear {
		return t.fetch(texelIndex(fx), texelIndex(fy), &s)
	}

	fx -= 0.5
	fy -= 0.5
	x0, y0 := math32.Floor(fx), math32.Floor(fy)
	tx, ty := fx-x0, fy-y0
	x, y := texelIndex(x0), texelIndex(y0)

	top := t.fetch(x, y, &s).Lerp(tx, t.fetch(x+1, y, &s))
	bottom := t.fetch(x, y+1, &s).Lerp(tx, t.fetch(x+1, y+1, &s))
	return top.Lerp(ty, bottom)
}

// fetch resolves (x, y) with the sampler's edge mode.
func (t *Texture[T]) fetch(x, y int, s *Sampler[T]) T {
	switch s.Edge {
	case EdgeWrap:
		x, y = wrapIndex(x, t.width), wrapIndex(y, t.height)
	case EdgeBorder:
		if x < 0 || x >= t.width || y < 0 || y >= t.height {
			return s.Border
		}
	default:
		x, y = min(max(x, 0), t.width-1), min(max(y, 0), t.height-1)
	}
	return t.texels[x+y*t.width]
}

// maxTexelIndex bounds coordinates before the int conversion. float32 has
// no fractional bits left at this magnitude.
const maxTexelIndex = 1 << 24

// texelIndex floors f to an index. NaN maps to an index outside every
// texture.
func texelIndex(f float32) int {
	if !(f > -maxTexelIndex) {
		return -maxTexelIndex
	}
	if f > maxTexelIndex {
		return maxTexelIndex
	}
	return int(math32.Floor(f))
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
