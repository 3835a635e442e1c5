package raster

// SignedArea returns twice the signed area of the triangle (x1,y1),
// (x2,y2), (x3,y3) using the shoelace formula. On a y-down screen the result
// is positive for clockwise vertex order.
func SignedArea(x1, y1, x2, y2, x3, y3 float32) float32 {
	return x1*y2 + x2*y3 + x3*y1 - x2*y1 - x3*y2 - x1*y3
}

// Edges holds the per-triangle setup for barycentric evaluation.
type Edges struct {
	x3, y3 float32
	a, b   float32 // (y2-y3), (x3-x2)
	c, d   float32 // (y3-y1), (x1-x3)
	det    float32
}

// NewEdges prepares barycentric evaluation for a triangle.
// ok is false for a degenerate triangle (zero determinant).
func NewEdges(x1, y1, x2, y2, x3, y3 float32) (e Edges, ok bool) {
	e = Edges{
		x3: x3, y3: y3,
		a: y2 - y3, b: x3 - x2,
		c: y3 - y1, d: x1 - x3,
	}
	e.det = e.a*(x1-x3) + e.b*(y1-y3)
	return e, e.det != 0
}

// Weights returns the barycentric weights of point (x, y) relative to the
// three vertices. The weights sum to one.
func (e Edges) Weights(x, y float32) (u, v, w float32) {
	px, py := x-e.x3, y-e.y3
	u = (e.a*px + e.b*py) / e.det
	v = (e.c*px + e.d*py) / e.det
	return u, v, 1 - u - v
}

// Inside reports whether all three weights are non-negative, which includes
// points on the edges.
func Inside(u, v, w float32) bool {
	return u >= 0 && v >= 0 && w >= 0
}
