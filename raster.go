package softrender

import (
	"image"

	"github.com/gogpu/softrender/internal/clip"
	"github.com/gogpu/softrender/internal/raster"
	"github.com/gogpu/softrender/interp"
)

// tileRaster draws primitives into one tile region. It is used by a single
// goroutine.
type tileRaster[U any, K interp.Interpolate[K], C Color[C], D Depth[D], S Stencil[S]] struct {
	fs       *FragmentStage[U, K, C, D, S]
	reg      *Region[C, D, S]
	shader   FragmentShader[U, K, C]
	uniforms *U
	stats    *Stats
	has      attachments

	// reach rejects lines that cannot plot a pixel of the tile. Walkers may
	// stray up to two pixels from the segment.
	reach *clip.EdgeClipper

	written bool
}

func newTileRaster[U any, K interp.Interpolate[K], C Color[C], D Depth[D], S Stencil[S]](
	fs *FragmentStage[U, K, C, D, S],
	reg *Region[C, D, S],
	shader FragmentShader[U, K, C],
	stats *Stats,
	has attachments,
) *tileRaster[U, K, C, D, S] {
	return &tileRaster[U, K, C, D, S]{
		fs:       fs,
		reg:      reg,
		shader:   shader,
		uniforms: &fs.p.uniforms,
		stats:    stats,
		has:      has,
		reach:    clip.NewEdgeClipper(regionRect(reg.Rect).Expand(2)),
	}
}

func (r *tileRaster[U, K, C, D, S]) draw(sp *screenPrim[K]) {
	switch sp.kind {
	case Point:
		r.point(sp)
	case Line:
		r.line(sp)
	case Triangle:
		r.triangle(sp)
	}
}

// test runs the stencil test and update, then the depth range and depth
// tests for the sample at (x, y) with depth z.
func (r *tileRaster[U, K, C, D, S]) test(x, y int, z float32) (D, bool) {
	var d D
	if r.has.stencil {
		fs := r.fs
		present := r.reg.Stencil(x, y)
		if !StencilPasses(fs.stencilTest, present, fs.stencilRef) {
			r.stats.StencilFailed++
			return d, false
		}
		if fs.stencilOp.Kind != StencilKeep {
			r.reg.SetStencil(x, y, fs.stencilOp.Apply(present))
			r.written = true
		}
	}

	if !(z >= 0 && z <= 1) {
		r.stats.DepthFailed++
		return d, false
	}
	d = d.FromScalar(z)
	if r.has.depth && !d.Nearer(r.reg.Depth(x, y)) {
		r.stats.DepthFailed++
		return d, false
	}
	return d, true
}

// shade runs the fragment shader and writes the blended color and depth.
func (r *tileRaster[U, K, C, D, S]) shade(x, y int, v *ScreenVertex[K], coverage float32, d D) {
	c, ok := r.shader(v, r.uniforms).Color()
	if !ok {
		r.stats.Discarded++
		return
	}
	r.stats.Fragments++
	r.written = true

	if coverage < 1 {
		c = c.MulAlpha(coverage)
	}
	if r.has.color {
		r.reg.SetPixel(x, y, r.fs.blend(c, r.reg.Pixel(x, y)))
	}
	if r.has.depth {
		r.reg.SetDepth(x, y, d)
	}
}

func (r *tileRaster[U, K, C, D, S]) point(sp *screenPrim[K]) {
	x, y := sp.bounds.Min.X, sp.bounds.Min.Y
	if !r.reg.Contains(x, y) {
		return
	}
	v := sp.v[0]
	if d, ok := r.test(x, y, v.Position.Z()); ok {
		r.shade(x, y, v, 1, d)
	}
}

func (r *tileRaster[U, K, C, D, S]) triangle(sp *screenPrim[K]) {
	a, b, c := sp.v[0], sp.v[1], sp.v[2]
	box := sp.bounds.Intersect(r.reg.Rect)
	persp := r.fs.perspective

	for y := box.Min.Y; y < box.Max.Y; y++ {
		py := float32(y) + 0.5
		for x := box.Min.X; x < box.Max.X; x++ {
			u, v, w := sp.edges.Weights(float32(x)+0.5, py)
			if !raster.Inside(u, v, w) {
				continue
			}

			z := u*a.Position.Z() + v*b.Position.Z() + w*c.Position.Z()
			d, ok := r.test(x, y, z)
			if !ok {
				continue
			}

			pu, pv, pw := u, v, w
			if persp {
				pu, pv, pw = perspectiveWeights(u, v, w, a.Position.W(), b.Position.W(), c.Position.W())
			}
			sv := ScreenVertex[K]{
				Position: interp.BarycentricVec4(u, a.Position, v, b.Position, w, c.Position),
				Uniforms: a.Uniforms.Barycentric(pu, pv, b.Uniforms, pw, c.Uniforms),
			}
			r.shade(x, y, &sv, 1, d)
		}
	}
}

func (r *tileRaster[U, K, C, D, S]) line(sp *screenPrim[K]) {
	seg := sp.seg
	if _, ok := r.reach.ClipLine(seg.P0, seg.P1); !ok {
		return
	}

	a, b := sp.v[0], sp.v[1]
	ax, ay := a.Position.X(), a.Position.Y()
	dx, dy := b.Position.X()-ax, b.Position.Y()-ay
	len2 := dx*dx + dy*dy
	persp := r.fs.perspective

	plot := func(x, y int, coverage float32) {
		if !r.reg.Contains(x, y) {
			return
		}
		var t float32
		if len2 > 0 {
			t = ((float32(x)+0.5-ax)*dx + (float32(y)+0.5-ay)*dy) / len2
			t = clampf(t, 0, 1)
		}

		z := a.Position.Z() + (b.Position.Z()-a.Position.Z())*t
		d, ok := r.test(x, y, z)
		if !ok {
			return
		}

		pt := t
		if persp {
			pt = perspectiveParam(t, a.Position.W(), b.Position.W())
		}
		sv := ScreenVertex[K]{
			Position: interp.LerpVec4(t, a.Position, b.Position),
			Uniforms: a.Uniforms.Lerp(pt, b.Uniforms),
		}
		r.shade(x, y, &sv, coverage, d)
	}

	// Every tile walks the whole segment and keeps its own pixels, so the
	// staircase does not depend on the tile grid.
	if r.fs.antialias {
		raster.Wu(seg.P0.X-0.5, seg.P0.Y-0.5, seg.P1.X-0.5, seg.P1.Y-0.5, plot)
		return
	}
	raster.Bresenham(sp.px[0], sp.px[1], sp.px[2], sp.px[3], plot)
}

// perspectiveWeights rescales screen-space weights by each vertex's 1/w.
func perspectiveWeights(u, v, w, wa, wb, wc float32) (float32, float32, float32) {
	u, v, w = u*wa, v*wb, w*wc
	sum := u + v + w
	if sum == 0 {
		return u, v, w
	}
	return u / sum, v / sum, w / sum
}

// perspectiveParam is perspectiveWeights for a segment.
func perspectiveParam(t, wa, wb float32) float32 {
	den := (1-t)*wa + t*wb
	if den == 0 {
		return t
	}
	return t * wb / den
}

// regionRect is the float rectangle covered by an integer one.
func regionRect(r image.Rectangle) clip.Rect {
	return clip.NewRect(float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()))
}
