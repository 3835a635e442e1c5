package interp

import "github.com/go-gl/mathgl/mgl32"

// Vec2 is an mgl32.Vec2 that implements Interpolate component-wise.
type Vec2 mgl32.Vec2

// Vec3 is an mgl32.Vec3 that implements Interpolate component-wise.
type Vec3 mgl32.Vec3

// Vec4 is an mgl32.Vec4 that implements Interpolate component-wise.
type Vec4 mgl32.Vec4

// Mat3 is an mgl32.Mat3 that implements Interpolate component-wise.
type Mat3 mgl32.Mat3

// Mat4 is an mgl32.Mat4 that implements Interpolate component-wise.
type Mat4 mgl32.Mat4

// LerpVec2 interpolates between two vectors.
func LerpVec2(t float32, a, b mgl32.Vec2) mgl32.Vec2 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// LerpVec3 interpolates between two vectors.
func LerpVec3(t float32, a, b mgl32.Vec3) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// LerpVec4 interpolates between two vectors.
func LerpVec4(t float32, a, b mgl32.Vec4) mgl32.Vec4 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// BarycentricVec2 combines three vectors with the given weights.
func BarycentricVec2(u float32, a mgl32.Vec2, v float32, b mgl32.Vec2, w float32, c mgl32.Vec2) mgl32.Vec2 {
	return a.Mul(u).Add(b.Mul(v)).Add(c.Mul(w))
}

// BarycentricVec3 combines three vectors with the given weights.
func BarycentricVec3(u float32, a mgl32.Vec3, v float32, b mgl32.Vec3, w float32, c mgl32.Vec3) mgl32.Vec3 {
	return a.Mul(u).Add(b.Mul(v)).Add(c.Mul(w))
}

// BarycentricVec4 combines three vectors with the given weights.
func BarycentricVec4(u float32, a mgl32.Vec4, v float32, b mgl32.Vec4, w float32, c mgl32.Vec4) mgl32.Vec4 {
	return a.Mul(u).Add(b.Mul(v)).Add(c.Mul(w))
}

// Lerp implements Interpolate.
func (a Vec2) Lerp(t float32, to Vec2) Vec2 {
	return Vec2(LerpVec2(t, mgl32.Vec2(a), mgl32.Vec2(to)))
}

// Barycentric implements Interpolate.
func (a Vec2) Barycentric(u, v float32, b Vec2, w float32, c Vec2) Vec2 {
	return Vec2(BarycentricVec2(u, mgl32.Vec2(a), v, mgl32.Vec2(b), w, mgl32.Vec2(c)))
}

// Lerp implements Interpolate.
func (a Vec3) Lerp(t float32, to Vec3) Vec3 {
	return Vec3(LerpVec3(t, mgl32.Vec3(a), mgl32.Vec3(to)))
}

// Barycentric implements Interpolate.
func (a Vec3) Barycentric(u, v float32, b Vec3, w float32, c Vec3) Vec3 {
	return Vec3(BarycentricVec3(u, mgl32.Vec3(a), v, mgl32.Vec3(b), w, mgl32.Vec3(c)))
}

// Lerp implements Interpolate.
func (a Vec4) Lerp(t float32, to Vec4) Vec4 {
	return Vec4(LerpVec4(t, mgl32.Vec4(a), mgl32.Vec4(to)))
}

// Barycentric implements Interpolate.
func (a Vec4) Barycentric(u, v float32, b Vec4, w float32, c Vec4) Vec4 {
	return Vec4(BarycentricVec4(u, mgl32.Vec4(a), v, mgl32.Vec4(b), w, mgl32.Vec4(c)))
}

// Lerp implements Interpolate.
func (a Mat3) Lerp(t float32, to Mat3) Mat3 {
	return Mat3(mgl32.Mat3(a).Mul(1 - t).Add(mgl32.Mat3(to).Mul(t)))
}

// Barycentric implements Interpolate.
func (a Mat3) Barycentric(u, v float32, b Mat3, w float32, c Mat3) Mat3 {
	return Mat3(mgl32.Mat3(a).Mul(u).Add(mgl32.Mat3(b).Mul(v)).Add(mgl32.Mat3(c).Mul(w)))
}

// Lerp implements Interpolate.
func (a Mat4) Lerp(t float32, to Mat4) Mat4 {
	return Mat4(mgl32.Mat4(a).Mul(1 - t).Add(mgl32.Mat4(to).Mul(t)))
}

// Barycentric implements Interpolate.
func (a Mat4) Barycentric(u, v float32, b Mat4, w float32, c Mat4) Mat4 {
	return Mat4(mgl32.Mat4(a).Mul(u).Add(mgl32.Mat4(b).Mul(v)).Add(mgl32.Mat4(c).Mul(w)))
}
