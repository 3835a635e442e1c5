package softrender

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/softrender/internal/parallel"
)

// Framebuffer holds the color, depth and stencil attachments of a render
// target. Each attachment is a row-major slice indexed by x + y*width.
//
// Missing attachments are expressed with NoColor, NoDepth and NoStencil;
// their slices occupy no memory.
//
// Thread safety: a Framebuffer must not be accessed while a pipeline renders
// into it.
type Framebuffer[C Color[C], D Depth[D], S Stencil[S]] struct {
	width, height int
	color         []C
	depth         []D
	stencil       []S
	dirty         *parallel.DirtyRegion

	// Row views per tile layout, built on first use.
	regions map[image.Point][]Region[C, D, S]
}

// NewFramebuffer allocates a cleared width×height framebuffer: empty color,
// far depth and zero stencil.
func NewFramebuffer[C Color[C], D Depth[D], S Stencil[S]](width, height int) *Framebuffer[C, D, S] {
	width, height = max(width, 0), max(height, 0)
	n := width * height
	fb := &Framebuffer[C, D, S]{
		width:   width,
		height:  height,
		color:   make([]C, n),
		depth:   make([]D, n),
		stencil: make([]S, n),
		dirty:   parallel.NewDirtyRegion(width, height, parallel.DefaultTileWidth, parallel.DefaultTileHeight),
	}
	fb.ClearDepth()
	return fb
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer[C, D, S]) Width() int { return fb.width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer[C, D, S]) Height() int { return fb.height }

// Len returns the number of pixels.
func (fb *Framebuffer[C, D, S]) Len() int { return fb.width * fb.height }

// Bounds returns the framebuffer rectangle.
func (fb *Framebuffer[C, D, S]) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// Viewport returns a viewport covering the whole framebuffer.
func (fb *Framebuffer[C, D, S]) Viewport() Viewport {
	return Viewport{Width: float32(fb.width), Height: float32(fb.height)}
}

// Clear resets every pixel: color to c, depth to far, stencil to zero.
func (fb *Framebuffer[C, D, S]) Clear(c C) {
	var far D
	far = far.Far()
	var zero S
	for i := range fb.color {
		fb.color[i] = c
		fb.depth[i] = far
		fb.stencil[i] = zero
	}
	fb.markAll()
}

// ClearColor resets only the color attachment.
func (fb *Framebuffer[C, D, S]) ClearColor(c C) {
	for i := range fb.color {
		fb.color[i] = c
	}
	fb.markAll()
}

// ClearDepth resets the depth attachment to far.
func (fb *Framebuffer[C, D, S]) ClearDepth() {
	var far D
	far = far.Far()
	for i := range fb.depth {
		fb.depth[i] = far
	}
}

// ClearStencil resets the stencil attachment to zero.
func (fb *Framebuffer[C, D, S]) ClearStencil() {
	clear(fb.stencil)
}

// PixelAt returns the color at a linear index without bounds checks beyond
// the slice's own.
func (fb *Framebuffer[C, D, S]) PixelAt(i int) C { return fb.color[i] }

// SetPixelAt sets the color at a linear index.
func (fb *Framebuffer[C, D, S]) SetPixelAt(i int, c C) { fb.color[i] = c }

// DepthAt returns the depth at a linear index.
func (fb *Framebuffer[C, D, S]) DepthAt(i int) D { return fb.depth[i] }

// SetDepthAt sets the depth at a linear index.
func (fb *Framebuffer[C, D, S]) SetDepthAt(i int, d D) { fb.depth[i] = d }

// StencilAt returns the stencil value at a linear index.
func (fb *Framebuffer[C, D, S]) StencilAt(i int) S { return fb.stencil[i] }

// SetStencilAt sets the stencil value at a linear index.
func (fb *Framebuffer[C, D, S]) SetStencilAt(i int, s S) { fb.stencil[i] = s }

func (fb *Framebuffer[C, D, S]) index(x, y int) (int, error) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrInvalidCoordinate, x, y, fb.width, fb.height)
	}
	return x + y*fb.width, nil
}

// Pixel returns the color at (x, y).
func (fb *Framebuffer[C, D, S]) Pixel(x, y int) (C, error) {
	i, err := fb.index(x, y)
	if err != nil {
		var zero C
		return zero, err
	}
	return fb.color[i], nil
}

// SetPixel sets the color at (x, y).
func (fb *Framebuffer[C, D, S]) SetPixel(x, y int, c C) error {
	i, err := fb.index(x, y)
	if err != nil {
		return err
	}
	fb.color[i] = c
	fb.dirty.MarkRect(image.Rect(x, y, x+1, y+1))
	return nil
}

// Depth returns the depth at (x, y).
func (fb *Framebuffer[C, D, S]) Depth(x, y int) (D, error) {
	i, err := fb.index(x, y)
	if err != nil {
		var zero D
		return zero, err
	}
	return fb.depth[i], nil
}

// Stencil returns the stencil value at (x, y).
func (fb *Framebuffer[C, D, S]) Stencil(x, y int) (S, error) {
	i, err := fb.index(x, y)
	if err != nil {
		var zero S
		return zero, err
	}
	return fb.stencil[i], nil
}

// Colors returns the color attachment in row-major order. The slice aliases
// the framebuffer.
func (fb *Framebuffer[C, D, S]) Colors() []C { return fb.color }

// Depths returns the depth attachment in row-major order.
func (fb *Framebuffer[C, D, S]) Depths() []D { return fb.depth }

// Stencils returns the stencil attachment in row-major order.
func (fb *Framebuffer[C, D, S]) Stencils() []S { return fb.stencil }

// ColorFormat describes the color buffer for upload to a GPU texture.
// It is TextureFormatUndefined unless C declares a texture format, as
// RGBA8 does.
func (fb *Framebuffer[C, D, S]) ColorFormat() gputypes.TextureFormat {
	var c C
	if f, ok := any(c).(interface{ TextureFormat() gputypes.TextureFormat }); ok {
		return f.TextureFormat()
	}
	return gputypes.TextureFormatUndefined
}

// Image returns a read-only image.Image view of the color attachment.
// Pixels whose type does not implement image/color.Color read as
// transparent.
func (fb *Framebuffer[C, D, S]) Image() image.Image {
	return colorImage[C]{w: fb.width, h: fb.height, pix: fb.color}
}

// NRGBA copies the color attachment into a new image.NRGBA.
func (fb *Framebuffer[C, D, S]) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(fb.Bounds())
	src := fb.Image()
	for y := range fb.height {
		for x := range fb.width {
			img.Set(x, y, src.At(x, y))
		}
	}
	return img
}

type colorImage[C any] struct {
	w, h int
	pix  []C
}

func (im colorImage[C]) ColorModel() color.Model { return color.NRGBAModel }

func (im colorImage[C]) Bounds() image.Rectangle { return image.Rect(0, 0, im.w, im.h) }

func (im colorImage[C]) At(x, y int) color.Color {
	if x < 0 || x >= im.w || y < 0 || y >= im.h {
		return color.Transparent
	}
	if c, ok := any(im.pix[x+y*im.w]).(color.Color); ok {
		return c
	}
	return color.Transparent
}

// DirtyTiles returns the pixel rectangles written since the last call to
// ClearDirty, clipped to the framebuffer.
func (fb *Framebuffer[C, D, S]) DirtyTiles() []image.Rectangle {
	if fb.dirty == nil || fb.dirty.IsEmpty() {
		return nil
	}
	rects := fb.dirty.Rects()
	for i := range rects {
		rects[i] = rects[i].Intersect(fb.Bounds())
	}
	return rects
}

// ClearDirty marks every tile clean.
func (fb *Framebuffer[C, D, S]) ClearDirty() {
	if fb.dirty != nil {
		fb.dirty.Clear()
	}
}

func (fb *Framebuffer[C, D, S]) markAll() {
	if fb.dirty != nil {
		fb.dirty.MarkAll()
	}
}

func (fb *Framebuffer[C, D, S]) markDirty(r image.Rectangle) {
	if fb.dirty != nil {
		fb.dirty.MarkRect(r)
	}
}

// Region returns views of the attachments restricted to r ∩ bounds.
// Each row view is capped with a full slice expression, so a region can only
// reach its own pixels. Regions with disjoint rectangles can be written
// concurrently.
func (fb *Framebuffer[C, D, S]) Region(r image.Rectangle) Region[C, D, S] {
	r = r.Intersect(fb.Bounds())
	reg := Region[C, D, S]{
		Rect:    r,
		color:   make([][]C, r.Dy()),
		depth:   make([][]D, r.Dy()),
		stencil: make([][]S, r.Dy()),
	}
	for row := range r.Dy() {
		lo := (r.Min.Y+row)*fb.width + r.Min.X
		hi := lo + r.Dx()
		reg.color[row] = fb.color[lo:hi:hi]
		reg.depth[row] = fb.depth[lo:hi:hi]
		reg.stencil[row] = fb.stencil[lo:hi:hi]
	}
	return reg
}

// tileRegions returns one region per tile of grid, in grid order. The views
// are cached per tile size.
func (fb *Framebuffer[C, D, S]) tileRegions(grid *parallel.TileGrid) []Region[C, D, S] {
	tw, th := grid.TileSize()
	key := image.Pt(tw, th)
	if regs, ok := fb.regions[key]; ok {
		return regs
	}

	regs := make([]Region[C, D, S], 0, grid.TileCount())
	grid.ForEach(func(tile parallel.Tile) {
		regs = append(regs, fb.Region(tile.Bounds()))
	})
	if fb.regions == nil {
		fb.regions = make(map[image.Point][]Region[C, D, S])
	}
	fb.regions[key] = regs
	return regs
}

// Region is a rectangular window onto a framebuffer's attachments.
// Coordinates passed to its methods are framebuffer coordinates.
type Region[C Color[C], D Depth[D], S Stencil[S]] struct {
	Rect    image.Rectangle
	color   [][]C
	depth   [][]D
	stencil [][]S
}

// Contains reports whether framebuffer pixel (x, y) is in the region.
func (r *Region[C, D, S]) Contains(x, y int) bool {
	return image.Pt(x, y).In(r.Rect)
}

// Pixel returns the color at framebuffer pixel (x, y), which must be inside
// the region.
func (r *Region[C, D, S]) Pixel(x, y int) C {
	return r.color[y-r.Rect.Min.Y][x-r.Rect.Min.X]
}

// SetPixel sets the color at framebuffer pixel (x, y).
func (r *Region[C, D, S]) SetPixel(x, y int, c C) {
	r.color[y-r.Rect.Min.Y][x-r.Rect.Min.X] = c
}

// Depth returns the depth at framebuffer pixel (x, y).
func (r *Region[C, D, S]) Depth(x, y int) D {
	return r.depth[y-r.Rect.Min.Y][x-r.Rect.Min.X]
}

// SetDepth sets the depth at framebuffer pixel (x, y).
func (r *Region[C, D, S]) SetDepth(x, y int, d D) {
	r.depth[y-r.Rect.Min.Y][x-r.Rect.Min.X] = d
}

// Stencil returns the stencil value at framebuffer pixel (x, y).
func (r *Region[C, D, S]) Stencil(x, y int) S {
	return r.stencil[y-r.Rect.Min.Y][x-r.Rect.Min.X]
}

// SetStencil sets the stencil value at framebuffer pixel (x, y).
func (r *Region[C, D, S]) SetStencil(x, y int, s S) {
	r.stencil[y-r.Rect.Min.Y][x-r.Rect.Min.X] = s
}
