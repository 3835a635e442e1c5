package softrender

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrender/internal/raster"
)

// FaceWinding is the rotational order of a triangle's vertices as seen on
// the y-down screen.
type FaceWinding uint8

const (
	// CullNone disables face culling. It is also the winding of a
	// degenerate triangle.
	CullNone FaceWinding = iota
	Clockwise
	CounterClockwise
)

// String implements fmt.Stringer.
func (w FaceWinding) String() string {
	switch w {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	}
	return "none"
}

// WindingOf returns the winding of a screen-space triangle from the sign of
// its shoelace area: positive is Clockwise, negative CounterClockwise.
func WindingOf(a, b, c mgl32.Vec4) FaceWinding {
	return windingFromArea(raster.SignedArea(a.X(), a.Y(), b.X(), b.Y(), c.X(), c.Y()))
}

func windingFromArea(area float32) FaceWinding {
	switch {
	case area > 0:
		return Clockwise
	case area < 0:
		return CounterClockwise
	}
	return CullNone
}
