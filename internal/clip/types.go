// Package clip provides screen-space clipping of line segments against
// rectangles.
package clip

import "github.com/chewxy/math32"

// Point represents a 2D point with float32 coordinates.
type Point struct {
	X, Y float32
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Lerp performs linear interpolation between p and q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Rect is an axis-aligned rectangle with float32 coordinates.
type Rect struct {
	X, Y float32 // Top-left corner
	W, H float32 // Width and height
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float32 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float32 {
	return r.Y + r.H
}

// Contains reports whether the point lies inside the rectangle, edges
// included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Expand returns the rectangle grown by d on every side (shrunk for negative d).
func (r Rect) Expand(d float32) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Bounds returns the bounding rectangle of two points.
func Bounds(p0, p1 Point) Rect {
	x0, x1 := math32.Min(p0.X, p1.X), math32.Max(p0.X, p1.X)
	y0, y1 := math32.Min(p0.Y, p1.Y), math32.Max(p0.Y, p1.Y)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// LineSeg is a line segment.
type LineSeg struct {
	P0, P1 Point
}
