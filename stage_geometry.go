package softrender

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/softrender/interp"
)

// GeometryShader receives one primitive at a time and emits any number of
// primitives into out. The referenced vertices are read-only and only valid
// during the call.
type GeometryShader[U any, K interp.Interpolate[K]] func(out *PrimitiveStorage[K], prim PrimitiveRef[K], u *U)

// GeometryStage holds the clip-space output of the vertex stage: shaded
// mesh vertices addressed through the mesh indices, plus primitives
// generated by earlier geometry passes.
type GeometryStage[U any, K interp.Interpolate[K], C Color[C], D Depth[D], S Stencil[S]] struct {
	p *Pipeline[U, C, D, S]

	prim      Primitive
	indices   []uint32
	indexed   []ClipVertex[K]
	generated PrimitiveStorage[K]
}

// Indexed returns the shaded mesh vertices still addressed by index. It is
// empty after Run.
func (gs *GeometryStage[U, K, C, D, S]) Indexed() []ClipVertex[K] { return gs.indexed }

// Indices returns the index list grouping Indexed into primitives.
func (gs *GeometryStage[U, K, C, D, S]) Indices() []uint32 { return gs.indices }

// Generated returns the primitives emitted by geometry passes.
func (gs *GeometryStage[U, K, C, D, S]) Generated() *PrimitiveStorage[K] { return &gs.generated }

// Len returns the number of primitives the next pass will visit, counting
// incomplete index groups as absent.
func (gs *GeometryStage[U, K, C, D, S]) Len() int {
	return gs.indexedCount() + gs.generated.Len()
}

func (gs *GeometryStage[U, K, C, D, S]) indexedCount() int {
	if gs.prim == 0 || len(gs.indexed) == 0 {
		return 0
	}
	return len(gs.indices) / gs.prim.Vertices()
}

// Run applies shader to every primitive: the indexed primitives in index
// order, then generated points, lines and triangles. Afterwards the stage
// holds only what shader emitted.
//
// Primitives are split into chunks processed in parallel, each with its own
// storage; outputs are concatenated in chunk order so emission order is
// preserved. A primitive referencing a vertex index out of range is skipped.
func (gs *GeometryStage[U, K, C, D, S]) Run(shader GeometryShader[U, K]) *GeometryStage[U, K, C, D, S] {
	p := gs.p
	nIdx := gs.indexedCount()
	if gs.prim != 0 && len(gs.indexed) > 0 && len(gs.indices)%gs.prim.Vertices() != 0 {
		Logger().Warn("softrender: ignoring incomplete primitive",
			"indices", len(gs.indices), "primitive", gs.prim)
	}

	total := nIdx + gs.generated.Len()
	if total == 0 {
		return gs.with(PrimitiveStorage[K]{})
	}

	chunk := p.opts.geometryChunk
	results := make([]PrimitiveStorage[K], (total+chunk-1)/chunk)
	var invalid atomic.Int64

	p.pool.ForEachChunk(total, chunk, func(c, lo, hi int) {
		out := &results[c]
		for i := lo; i < hi; i++ {
			ref, ok := gs.ref(i, nIdx)
			if !ok {
				invalid.Add(1)
				continue
			}
			shader(out, ref, &p.uniforms)
		}
	})

	if n := invalid.Load(); n > 0 {
		Logger().Warn("softrender: skipped primitives with out-of-range indices",
			"count", n, "vertices", len(gs.indexed))
	}

	var merged PrimitiveStorage[K]
	var np, nl, nt int
	for i := range results {
		np += len(results[i].Points)
		nl += len(results[i].Lines)
		nt += len(results[i].Triangles)
	}
	merged.Points = make([]ClipVertex[K], 0, np)
	merged.Lines = make([]ClipVertex[K], 0, nl)
	merged.Triangles = make([]ClipVertex[K], 0, nt)
	for i := range results {
		merged.Append(&results[i])
	}

	Logger().Debug("softrender: geometry stage",
		"in", total, "out", merged.Len(), "chunks", len(results))

	return gs.with(merged)
}

// ClipPrimitives clips every primitive against the view volume. It is Run
// with ClipPrimitive as the shader.
func (gs *GeometryStage[U, K, C, D, S]) ClipPrimitives() *GeometryStage[U, K, C, D, S] {
	return gs.Run(func(out *PrimitiveStorage[K], prim PrimitiveRef[K], _ *U) {
		ClipPrimitive(out, prim)
	})
}

// Wireframe replaces every triangle by its three edges. Points and lines
// pass through.
func (gs *GeometryStage[U, K, C, D, S]) Wireframe() *GeometryStage[U, K, C, D, S] {
	return gs.Run(func(out *PrimitiveStorage[K], prim PrimitiveRef[K], _ *U) {
		if prim.Kind != Triangle {
			out.Emit(prim)
			return
		}
		a, b, c := prim.Triangle()
		out.EmitLine(*a, *b)
		out.EmitLine(*b, *c)
		out.EmitLine(*c, *a)
	})
}

// Finish maps every vertex to screen space for vp and returns the fragment
// stage.
//
// Vertices are assumed to lie inside the view volume; call ClipPrimitives
// first unless that is known to hold.
func (gs *GeometryStage[U, K, C, D, S]) Finish(vp Viewport) *FragmentStage[U, K, C, D, S] {
	p := gs.p
	chunk := p.opts.vertexChunk

	var (
		indexed []ScreenVertex[K]
		gen     ScreenStorage[K]
		wg      sync.WaitGroup
	)
	wg.Go(func() { indexed = normalizeAll(p.pool, chunk, gs.indexed, vp) })
	wg.Go(func() { gen.Points = normalizeAll(p.pool, chunk, gs.generated.Points, vp) })
	wg.Go(func() { gen.Lines = normalizeAll(p.pool, chunk, gs.generated.Lines, vp) })
	wg.Go(func() { gen.Triangles = normalizeAll(p.pool, chunk, gs.generated.Triangles, vp) })
	wg.Wait()

	return newFragmentStage(p, gs.prim, gs.indices, indexed, gen)
}

// ref returns primitive i of the enumeration used by Run.
func (gs *GeometryStage[U, K, C, D, S]) ref(i, nIdx int) (PrimitiveRef[K], bool) {
	if i < nIdx {
		r := PrimitiveRef[K]{Kind: gs.prim}
		n := gs.prim.Vertices()
		for j := range n {
			idx := gs.indices[i*n+j]
			if int(idx) >= len(gs.indexed) {
				return r, false
			}
			r.Vertices[j] = &gs.indexed[idx]
		}
		return r, true
	}

	g := &gs.generated
	i -= nIdx
	if i < len(g.Points) {
		return PrimitiveRef[K]{Kind: Point, Vertices: [3]*ClipVertex[K]{&g.Points[i]}}, true
	}
	i -= len(g.Points)
	nl := len(g.Lines) / 2
	if i < nl {
		return PrimitiveRef[K]{Kind: Line, Vertices: [3]*ClipVertex[K]{&g.Lines[2*i], &g.Lines[2*i+1]}}, true
	}
	i -= nl
	t := g.Triangles[3*i : 3*i+3]
	return PrimitiveRef[K]{Kind: Triangle, Vertices: [3]*ClipVertex[K]{&t[0], &t[1], &t[2]}}, true
}

func (gs *GeometryStage[U, K, C, D, S]) with(gen PrimitiveStorage[K]) *GeometryStage[U, K, C, D, S] {
	return &GeometryStage[U, K, C, D, S]{
		p:         gs.p,
		prim:      gs.prim,
		generated: gen,
	}
}
