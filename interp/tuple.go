package interp

// Pair bundles two interpolable values.
type Pair[A Interpolate[A], B Interpolate[B]] struct {
	First  A
	Second B
}

// Lerp implements Interpolate.
func (p Pair[A, B]) Lerp(t float32, to Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{
		First:  p.First.Lerp(t, to.First),
		Second: p.Second.Lerp(t, to.Second),
	}
}

// Barycentric implements Interpolate.
func (p Pair[A, B]) Barycentric(u, v float32, b Pair[A, B], w float32, c Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{
		First:  p.First.Barycentric(u, v, b.First, w, c.First),
		Second: p.Second.Barycentric(u, v, b.Second, w, c.Second),
	}
}

// Triple bundles three interpolable values.
type Triple[A Interpolate[A], B Interpolate[B], C Interpolate[C]] struct {
	First  A
	Second B
	Third  C
}

// Lerp implements Interpolate.
func (p Triple[A, B, C]) Lerp(t float32, to Triple[A, B, C]) Triple[A, B, C] {
	return Triple[A, B, C]{
		First:  p.First.Lerp(t, to.First),
		Second: p.Second.Lerp(t, to.Second),
		Third:  p.Third.Lerp(t, to.Third),
	}
}

// Barycentric implements Interpolate.
func (p Triple[A, B, C]) Barycentric(u, v float32, b Triple[A, B, C], w float32, c Triple[A, B, C]) Triple[A, B, C] {
	return Triple[A, B, C]{
		First:  p.First.Barycentric(u, v, b.First, w, c.First),
		Second: p.Second.Barycentric(u, v, b.Second, w, c.Second),
		Third:  p.Third.Barycentric(u, v, b.Third, w, c.Third),
	}
}
