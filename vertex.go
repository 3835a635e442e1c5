package softrender

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrender/interp"
)

// Vertex is a mesh vertex: an object-space position and user data.
type Vertex[V any] struct {
	Position mgl32.Vec3
	Data     V
}

// ClipVertex is the output of a vertex shader: a homogeneous clip-space
// position and the values to interpolate across the primitive.
type ClipVertex[K interp.Interpolate[K]] struct {
	Position mgl32.Vec4
	Uniforms K
}

// NewClipVertex creates a ClipVertex.
func NewClipVertex[K interp.Interpolate[K]](position mgl32.Vec4, uniforms K) ClipVertex[K] {
	return ClipVertex[K]{Position: position, Uniforms: uniforms}
}

// Lerp implements interp.Interpolate.
func (v ClipVertex[K]) Lerp(t float32, to ClipVertex[K]) ClipVertex[K] {
	return ClipVertex[K]{
		Position: interp.LerpVec4(t, v.Position, to.Position),
		Uniforms: v.Uniforms.Lerp(t, to.Uniforms),
	}
}

// Barycentric implements interp.Interpolate.
func (v ClipVertex[K]) Barycentric(u, w1 float32, b ClipVertex[K], w2 float32, c ClipVertex[K]) ClipVertex[K] {
	return ClipVertex[K]{
		Position: interp.BarycentricVec4(u, v.Position, w1, b.Position, w2, c.Position),
		Uniforms: v.Uniforms.Barycentric(u, w1, b.Uniforms, w2, c.Uniforms),
	}
}

// Viewport is the size in pixels of the area vertices are mapped onto.
type Viewport struct {
	Width, Height float32
}

// Normalize performs the perspective divide and the viewport transform.
//
// The resulting position is (x, y) in pixels with y pointing down, z the
// normalized depth and w the reciprocal of the clip-space w.
func (v ClipVertex[K]) Normalize(vp Viewport) ScreenVertex[K] {
	p := v.Position
	invW := 1 / p.W()
	return ScreenVertex[K]{
		Position: mgl32.Vec4{
			(1 + p.X()*invW) * vp.Width / 2,
			(1 - p.Y()*invW) * vp.Height / 2,
			p.Z() * invW,
			invW,
		},
		Uniforms: v.Uniforms,
	}
}

// ScreenVertex is a vertex after the viewport transform. Position holds
// (x pixels, y pixels, depth, 1/w).
type ScreenVertex[K interp.Interpolate[K]] struct {
	Position mgl32.Vec4
	Uniforms K
}

// Lerp implements interp.Interpolate.
func (v ScreenVertex[K]) Lerp(t float32, to ScreenVertex[K]) ScreenVertex[K] {
	return ScreenVertex[K]{
		Position: interp.LerpVec4(t, v.Position, to.Position),
		Uniforms: v.Uniforms.Lerp(t, to.Uniforms),
	}
}

// Barycentric implements interp.Interpolate.
func (v ScreenVertex[K]) Barycentric(u, w1 float32, b ScreenVertex[K], w2 float32, c ScreenVertex[K]) ScreenVertex[K] {
	return ScreenVertex[K]{
		Position: interp.BarycentricVec4(u, v.Position, w1, b.Position, w2, c.Position),
		Uniforms: v.Uniforms.Barycentric(u, w1, b.Uniforms, w2, c.Uniforms),
	}
}
