// Package interp defines how per-vertex data is blended between vertices.
//
// Every value carried from the vertex shader to the fragment shader must
// implement [Interpolate]. The pipeline uses Lerp when clipping cuts an edge
// and Barycentric when a triangle is sampled at a pixel center.
//
// Implementations are provided for the unit type, scalars, mgl32 vectors and
// matrices and small tuples. User structs implement the contract field by
// field with the helpers in this package:
//
//	type Varyings struct {
//		Normal interp.Vec3
//		UV     interp.Vec2
//	}
//
//	func (v Varyings) Lerp(t float32, to Varyings) Varyings {
//		return Varyings{v.Normal.Lerp(t, to.Normal), v.UV.Lerp(t, to.UV)}
//	}
package interp

// Interpolate is implemented by values that can be blended linearly.
//
// x.Lerp(t, y) computes x*(1-t) + y*t and a.Barycentric(u, v, b, w, c)
// computes a*u + b*v + c*w. Weights are used as given; implementations must
// not normalize them.
type Interpolate[T any] interface {
	Lerp(t float32, to T) T
	Barycentric(u float32, v float32, b T, w float32, c T) T
}

// Linear interpolates between x1 and x2.
func Linear[T Interpolate[T]](t float32, x1, x2 T) T {
	return x1.Lerp(t, x2)
}

// Barycentric combines three values with the weights u, v and w.
func Barycentric[T Interpolate[T]](u float32, x1 T, v float32, x2 T, w float32, x3 T) T {
	return x1.Barycentric(u, v, x2, w, x3)
}

// Empty carries no data. It is the uniform type of shaders that pass nothing
// to later stages.
type Empty struct{}

// Lerp implements Interpolate.
func (Empty) Lerp(float32, Empty) Empty { return Empty{} }

// Barycentric implements Interpolate.
func (Empty) Barycentric(float32, float32, Empty, float32, Empty) Empty { return Empty{} }
