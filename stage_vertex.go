package softrender

import (
	"github.com/gogpu/softrender/interp"
	"github.com/gogpu/softrender/internal/parallel"
)

// VertexShader transforms a mesh vertex into clip space. It must not retain
// or modify its arguments.
type VertexShader[V, U any, K interp.Interpolate[K]] func(v *Vertex[V], u *U) ClipVertex[K]

// VertexStage is a mesh bound to a pipeline, ready for vertex shading.
type VertexStage[V, U any, C Color[C], D Depth[D], S Stencil[S]] struct {
	p       *Pipeline[U, C, D, S]
	mesh    *Mesh[V]
	indices []uint32
	prim    Primitive
}

// Mesh returns the bound mesh.
func (vs *VertexStage[V, U, C, D, S]) Mesh() *Mesh[V] { return vs.mesh }

// RunVertexShader runs shader once per mesh vertex and returns the geometry
// stage. Output order matches vertex order.
//
// Vertices are processed in chunks claimed by the pipeline's workers. A
// panic in shader is re-raised on the calling goroutine as a *ShaderPanic.
func RunVertexShader[V, U any, K interp.Interpolate[K], C Color[C], D Depth[D], S Stencil[S]](
	vs *VertexStage[V, U, C, D, S],
	shader func(v *Vertex[V], u *U) ClipVertex[K],
) *GeometryStage[U, K, C, D, S] {
	out := shadeVertices(vs, shader)
	Logger().Debug("softrender: vertex stage", "vertices", len(out), "primitive", vs.prim)

	return &GeometryStage[U, K, C, D, S]{
		p:       vs.p,
		prim:    vs.prim,
		indices: vs.indices,
		indexed: out,
	}
}

// RunVertexShaderToFragment runs shader and maps the results straight to
// screen space for vp, skipping the geometry stage and clipping.
//
// Only use it when every vertex lies inside the view volume, for example in
// 2D overlays drawn with w = 1.
func RunVertexShaderToFragment[V, U any, K interp.Interpolate[K], C Color[C], D Depth[D], S Stencil[S]](
	vs *VertexStage[V, U, C, D, S],
	vp Viewport,
	shader func(v *Vertex[V], u *U) ClipVertex[K],
) *FragmentStage[U, K, C, D, S] {
	p := vs.p
	verts := vs.mesh.Vertices
	out := make([]ScreenVertex[K], len(verts))
	p.pool.ForEachChunk(len(verts), p.opts.vertexChunk, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = shader(&verts[i], &p.uniforms).Normalize(vp)
		}
	})
	Logger().Debug("softrender: vertex stage (direct)", "vertices", len(out), "primitive", vs.prim)

	return newFragmentStage(p, vs.prim, vs.indices, out, ScreenStorage[K]{})
}

func shadeVertices[V, U any, K interp.Interpolate[K], C Color[C], D Depth[D], S Stencil[S]](
	vs *VertexStage[V, U, C, D, S],
	shader func(v *Vertex[V], u *U) ClipVertex[K],
) []ClipVertex[K] {
	p := vs.p
	verts := vs.mesh.Vertices
	out := make([]ClipVertex[K], len(verts))
	p.pool.ForEachChunk(len(verts), p.opts.vertexChunk, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = shader(&verts[i], &p.uniforms)
		}
	})
	return out
}

// normalizeAll maps clip-space vertices to screen space in parallel.
func normalizeAll[K interp.Interpolate[K]](pool *parallel.WorkerPool, chunk int, src []ClipVertex[K], vp Viewport) []ScreenVertex[K] {
	if len(src) == 0 {
		return nil
	}
	out := make([]ScreenVertex[K], len(src))
	pool.ForEachChunk(len(src), chunk, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = src[i].Normalize(vp)
		}
	})
	return out
}
