package softrender

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/softrender/internal/clip"
	"github.com/gogpu/softrender/internal/parallel"
	"github.com/gogpu/softrender/internal/raster"
	"github.com/gogpu/softrender/interp"
)

// FragmentShader computes the color of one sample. v carries the
// interpolated screen position and uniforms.
type FragmentShader[U any, K interp.Interpolate[K], C any] func(v *ScreenVertex[K], u *U) Fragment[C]

// FragmentStage holds screen-space primitives and the raster state used to
// draw them. Setters modify the stage and return it for chaining.
type FragmentStage[U any, K interp.Interpolate[K], C Color[C], D Depth[D], S Stencil[S]] struct {
	p *Pipeline[U, C, D, S]

	prim      Primitive
	indices   []uint32
	indexed   []ScreenVertex[K]
	generated ScreenStorage[K]

	cull        FaceWinding
	blend       BlendFunc[C]
	antialias   bool
	perspective bool
	tileW       int
	tileH       int

	stencilTest StencilTest
	stencilOp   StencilOp[S]
	stencilRef  S
}

func newFragmentStage[U any, K interp.Interpolate[K], C Color[C], D Depth[D], S Stencil[S]](
	p *Pipeline[U, C, D, S],
	prim Primitive,
	indices []uint32,
	indexed []ScreenVertex[K],
	generated ScreenStorage[K],
) *FragmentStage[U, K, C, D, S] {
	return &FragmentStage[U, K, C, D, S]{
		p:         p,
		prim:      prim,
		indices:   indices,
		indexed:   indexed,
		generated: generated,
		blend:     Replace[C],
		tileW:     p.opts.tileW,
		tileH:     p.opts.tileH,
	}
}

// Indexed returns the screen-space mesh vertices addressed by Indices.
func (fs *FragmentStage[U, K, C, D, S]) Indexed() []ScreenVertex[K] { return fs.indexed }

// Indices returns the index list grouping Indexed into primitives.
func (fs *FragmentStage[U, K, C, D, S]) Indices() []uint32 { return fs.indices }

// Generated returns the screen-space primitives emitted by geometry passes.
func (fs *FragmentStage[U, K, C, D, S]) Generated() *ScreenStorage[K] { return &fs.generated }

// CullFaces removes triangles with the given winding. CullNone, the
// default, keeps all triangles.
func (fs *FragmentStage[U, K, C, D, S]) CullFaces(w FaceWinding) *FragmentStage[U, K, C, D, S] {
	fs.cull = w
	return fs
}

// Blend sets the function combining shaded colors with the framebuffer.
// A nil function restores Replace.
func (fs *FragmentStage[U, K, C, D, S]) Blend(fn BlendFunc[C]) *FragmentStage[U, K, C, D, S] {
	if fn == nil {
		fn = Replace[C]
	}
	fs.blend = fn
	return fs
}

// AntialiasedLines selects Xiaolin Wu lines with fractional coverage instead
// of Bresenham lines.
func (fs *FragmentStage[U, K, C, D, S]) AntialiasedLines(on bool) *FragmentStage[U, K, C, D, S] {
	fs.antialias = on
	return fs
}

// PerspectiveCorrect enables perspective-correct interpolation of uniforms.
// Positions are always interpolated linearly in screen space.
func (fs *FragmentStage[U, K, C, D, S]) PerspectiveCorrect(on bool) *FragmentStage[U, K, C, D, S] {
	fs.perspective = on
	return fs
}

// TileSize sets the raster tile size. Non-positive values keep the current
// size.
func (fs *FragmentStage[U, K, C, D, S]) TileSize(w, h int) *FragmentStage[U, K, C, D, S] {
	if w > 0 {
		fs.tileW = w
	}
	if h > 0 {
		fs.tileH = h
	}
	return fs
}

// Stencil configures the stencil test. A sample passes when test accepts
// reference against the value in the buffer; op then updates the buffer,
// whether or not the sample later fails the depth test.
//
// Without a stencil attachment the test is disabled.
func (fs *FragmentStage[U, K, C, D, S]) Stencil(test StencilTest, op StencilOp[S], reference S) *FragmentStage[U, K, C, D, S] {
	fs.stencilTest = test
	fs.stencilOp = op
	fs.stencilRef = reference
	return fs
}

// Clone returns a copy of the stage sharing its vertex data, so the same
// primitives can be drawn again with different state.
func (fs *FragmentStage[U, K, C, D, S]) Clone() *FragmentStage[U, K, C, D, S] {
	c := *fs
	return &c
}

// Run rasterizes all primitives, calling shader for every covered sample
// that passes the stencil and depth tests.
//
// The framebuffer is split into tiles drawn in parallel; each tile owns its
// pixels, and primitives are drawn in submission order within a tile.
func (fs *FragmentStage[U, K, C, D, S]) Run(shader FragmentShader[U, K, C]) Stats {
	p := fs.p
	fb := p.fb

	var st Stats
	prims := fs.prepare(&st)

	grid := parallel.NewTileGrid(fb.Width(), fb.Height(), fs.tileW, fs.tileH)
	bins, active := binPrimitives(grid, prims)
	st.Tiles = len(active)

	if len(active) > 0 {
		regions := fb.tileRegions(grid)
		perTile := make([]Stats, grid.TileCount())
		flags := resolveAttachments[C, D, S]()
		if fs.stencilTest == StencilAlways && fs.stencilOp.Kind == StencilKeep {
			flags.stencil = false
		}

		parallel.NewTileRasterizer(p.pool, grid).RunSelected(active, func(idx int, tile parallel.Tile) {
			r := newTileRaster(fs, &regions[idx], shader, &perTile[idx], flags)
			for _, pi := range bins[idx] {
				r.draw(&prims[pi])
			}
			if r.written {
				fb.markDirty(tile.Bounds())
			}
		})

		for _, idx := range active {
			st.add(perTile[idx])
		}
	}

	Logger().Debug("softrender: fragment stage",
		"tile", fmt.Sprintf("%dx%d", fs.tileW, fs.tileH),
		"stats", st)
	return st
}

// attachments records which attachments are present so the raster loop
// can skip absent ones with a single branch.
type attachments struct {
	color, depth, stencil bool
}

func resolveAttachments[C Color[C], D Depth[D], S Stencil[S]]() attachments {
	var c C
	var d D
	var s S
	_, noColor := any(c).(NoColor)
	_, noDepth := any(d).(NoDepth)
	_, noStencil := any(s).(NoStencil)
	return attachments{color: !noColor, depth: !noDepth, stencil: !noStencil}
}

// screenPrim is a primitive prepared for binning: resolved vertices, raster
// setup and the pixel rectangle it may touch.
type screenPrim[K interp.Interpolate[K]] struct {
	kind   Primitive
	v      [3]*ScreenVertex[K]
	edges  raster.Edges
	seg    clip.LineSeg
	px     [4]int // Bresenham endpoints of seg
	bounds image.Rectangle
}

// prepare resolves indices, culls and sets up every primitive in
// submission order: indexed primitives first, then generated points, lines
// and triangles.
func (fs *FragmentStage[U, K, C, D, S]) prepare(st *Stats) []screenPrim[K] {
	fb := fs.p.fb
	bounds := fb.Bounds()
	view := clip.NewEdgeClipper(clip.NewRect(0, 0, float32(fb.Width()), float32(fb.Height())))

	var nIdx int
	if fs.prim != 0 && len(fs.indexed) > 0 {
		nIdx = len(fs.indices) / fs.prim.Vertices()
	}
	prims := make([]screenPrim[K], 0, nIdx+fs.generated.Len())

	add := func(kind Primitive, v [3]*ScreenVertex[K]) {
		st.Primitives++
		sp := screenPrim[K]{kind: kind, v: v}
		for i := range kind.Vertices() {
			if !finite(v[i].Position) {
				st.Outside++
				return
			}
		}

		switch kind {
		case Point:
			x, y := pixel(v[0].Position.X(), bounds.Dx()), pixel(v[0].Position.Y(), bounds.Dy())
			sp.bounds = image.Rect(x, y, x+1, y+1)

		case Line:
			seg, ok := view.ClipLine(screenPoint(v[0]), screenPoint(v[1]))
			if !ok {
				st.Outside++
				return
			}
			sp.seg = seg
			sp.px = [4]int{
				pixel(seg.P0.X, bounds.Dx()), pixel(seg.P0.Y, bounds.Dy()),
				pixel(seg.P1.X, bounds.Dx()), pixel(seg.P1.Y, bounds.Dy()),
			}
			box := clip.Bounds(seg.P0, seg.P1)
			sp.bounds = image.Rect(
				pixel(box.X, bounds.Dx())-1, pixel(box.Y, bounds.Dy())-1,
				pixel(box.Right(), bounds.Dx())+2, pixel(box.Bottom(), bounds.Dy())+2)

		case Triangle:
			a, b, c := v[0].Position, v[1].Position, v[2].Position
			if fs.cull != CullNone && WindingOf(a, b, c) == fs.cull {
				st.Culled++
				return
			}
			edges, ok := raster.NewEdges(a.X(), a.Y(), b.X(), b.Y(), c.X(), c.Y())
			if !ok {
				st.Degenerate++
				return
			}
			sp.edges = edges
			minX := math32.Min(a.X(), math32.Min(b.X(), c.X()))
			minY := math32.Min(a.Y(), math32.Min(b.Y(), c.Y()))
			maxX := math32.Max(a.X(), math32.Max(b.X(), c.X()))
			maxY := math32.Max(a.Y(), math32.Max(b.Y(), c.Y()))
			sp.bounds = image.Rect(
				pixel(minX, bounds.Dx()), pixel(minY, bounds.Dy()),
				pixelCeil(maxX, bounds.Dx()), pixelCeil(maxY, bounds.Dy()))
		}

		sp.bounds = sp.bounds.Intersect(bounds)
		if sp.bounds.Empty() {
			st.Outside++
			return
		}
		prims = append(prims, sp)
	}

	if nIdx > 0 {
		n := fs.prim.Vertices()
		var invalid int
	indexed:
		for i := range nIdx {
			var v [3]*ScreenVertex[K]
			for j := range n {
				idx := fs.indices[i*n+j]
				if int(idx) >= len(fs.indexed) {
					invalid++
					continue indexed
				}
				v[j] = &fs.indexed[idx]
			}
			add(fs.prim, v)
		}
		if invalid > 0 {
			Logger().Warn("softrender: skipped primitives with out-of-range indices",
				"count", invalid, "vertices", len(fs.indexed))
		}
	}

	g := &fs.generated
	for i := range g.Points {
		add(Point, [3]*ScreenVertex[K]{&g.Points[i]})
	}
	for i := 0; i+1 < len(g.Lines); i += 2 {
		add(Line, [3]*ScreenVertex[K]{&g.Lines[i], &g.Lines[i+1]})
	}
	for i := 0; i+2 < len(g.Triangles); i += 3 {
		add(Triangle, [3]*ScreenVertex[K]{&g.Triangles[i], &g.Triangles[i+1], &g.Triangles[i+2]})
	}
	return prims
}

// binPrimitives lists, per tile, the primitives whose bounds overlap it.
// active holds the indices of tiles with a non-empty list.
func binPrimitives[K interp.Interpolate[K]](grid *parallel.TileGrid, prims []screenPrim[K]) (bins [][]int32, active []int) {
	bins = make([][]int32, grid.TileCount())
	for i := range prims {
		tx1, ty1, tx2, ty2, ok := grid.TileRange(prims[i].bounds)
		if !ok {
			continue
		}
		for ty := ty1; ty <= ty2; ty++ {
			for tx := tx1; tx <= tx2; tx++ {
				idx := grid.Index(tx, ty)
				if bins[idx] == nil {
					active = append(active, idx)
				}
				bins[idx] = append(bins[idx], int32(i))
			}
		}
	}
	return bins, active
}

func screenPoint[K interp.Interpolate[K]](v *ScreenVertex[K]) clip.Point {
	return clip.Pt(v.Position.X(), v.Position.Y())
}

func finite(p [4]float32) bool {
	for _, c := range p {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// pixel returns floor(x) clamped to [-1, limit+1], safe to convert to int.
func pixel(x float32, limit int) int {
	return int(math32.Floor(clampf(x, -1, float32(limit)+1)))
}

func pixelCeil(x float32, limit int) int {
	return int(math32.Ceil(clampf(x, -1, float32(limit)+1)))
}

func clampf(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, x))
}
