package interp

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is any built-in integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// LerpScalar interpolates between two numbers. The computation is carried out
// in float64 and integer results are rounded to the nearest value.
func LerpScalar[N Number](t float32, x1, x2 N) N {
	tt := float64(t)
	return fromFloat[N](float64(x1)*(1-tt) + float64(x2)*tt)
}

// BarycentricScalar combines three numbers with the given weights.
func BarycentricScalar[N Number](u float32, x1 N, v float32, x2 N, w float32, x3 N) N {
	return fromFloat[N](float64(x1)*float64(u) + float64(x2)*float64(v) + float64(x3)*float64(w))
}

func fromFloat[N Number](f float64) N {
	var one N = 1
	if one/2 == 0 {
		// Integer type.
		return N(math.Round(f))
	}
	return N(f)
}

// Float is a float32 that implements Interpolate.
type Float float32

// Lerp implements Interpolate.
func (x Float) Lerp(t float32, to Float) Float {
	return x*Float(1-t) + to*Float(t)
}

// Barycentric implements Interpolate.
func (x Float) Barycentric(u, v float32, b Float, w float32, c Float) Float {
	return x*Float(u) + b*Float(v) + c*Float(w)
}

// Scalar wraps any number type so it implements Interpolate.
type Scalar[N Number] struct {
	V N
}

// S wraps n in a Scalar.
func S[N Number](n N) Scalar[N] {
	return Scalar[N]{V: n}
}

// Lerp implements Interpolate.
func (s Scalar[N]) Lerp(t float32, to Scalar[N]) Scalar[N] {
	return Scalar[N]{V: LerpScalar(t, s.V, to.V)}
}

// Barycentric implements Interpolate.
func (s Scalar[N]) Barycentric(u, v float32, b Scalar[N], w float32, c Scalar[N]) Scalar[N] {
	return Scalar[N]{V: BarycentricScalar(u, s.V, v, b.V, w, c.V)}
}
