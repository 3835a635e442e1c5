package softrender

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrender/interp"
)

// ClippingPlane is one of the six planes bounding the clip-space view volume
// -w <= x <= w, -w <= y <= w, 0 <= z <= w.
type ClippingPlane uint8

const (
	PlaneLeft   ClippingPlane = iota // x >= -w
	PlaneRight                       // x <= w
	PlaneTop                         // y <= w
	PlaneBottom                      // y >= -w
	PlaneNear                        // z >= 0
	PlaneFar                         // z <= w
)

// ClippingPlanes lists all planes in the order clipping visits them.
var ClippingPlanes = [...]ClippingPlane{PlaneLeft, PlaneRight, PlaneTop, PlaneBottom, PlaneNear, PlaneFar}

// String implements fmt.Stringer.
func (pl ClippingPlane) String() string {
	switch pl {
	case PlaneLeft:
		return "left"
	case PlaneRight:
		return "right"
	case PlaneTop:
		return "top"
	case PlaneBottom:
		return "bottom"
	case PlaneNear:
		return "near"
	case PlaneFar:
		return "far"
	}
	return "unknown"
}

// Distance returns a signed value that is non-negative on the inside of the
// plane and varies linearly along a clip-space segment.
func (pl ClippingPlane) Distance(p mgl32.Vec4) float32 {
	switch pl {
	case PlaneLeft:
		return p.W() + p.X()
	case PlaneRight:
		return p.W() - p.X()
	case PlaneTop:
		return p.W() - p.Y()
	case PlaneBottom:
		return p.W() + p.Y()
	case PlaneNear:
		return p.Z()
	case PlaneFar:
		return p.W() - p.Z()
	}
	return 0
}

// Inside reports whether p lies on the inside of the plane, boundary
// included.
func (pl ClippingPlane) Inside(p mgl32.Vec4) bool {
	return pl.Distance(p) >= 0
}

// Crossing returns the parameter t at which the segment a→b crosses the
// plane. It is only meaningful when a and b lie on different sides.
func (pl ClippingPlane) Crossing(a, b mgl32.Vec4) float32 {
	da, db := pl.Distance(a), pl.Distance(b)
	return da / (da - db)
}

// Intersect returns the vertex where the edge v1→v2 crosses the plane, with
// position and uniforms interpolated linearly.
func Intersect[K interp.Interpolate[K]](pl ClippingPlane, v1, v2 ClipVertex[K]) ClipVertex[K] {
	return v1.Lerp(pl.Crossing(v1.Position, v2.Position), v2)
}

// InsideAll reports whether p lies inside all six planes.
func InsideAll(p mgl32.Vec4) bool {
	for _, pl := range ClippingPlanes {
		if !pl.Inside(p) {
			return false
		}
	}
	return true
}

// ClipPrimitive clips one primitive against the view volume and emits the
// visible remainder into out.
//
// Points are kept only when inside all planes. Lines have their outside
// endpoint moved onto each plane they cross and are dropped when entirely
// outside a plane. Triangles are clipped as polygons (Sutherland-Hodgman);
// a remaining polygon with more than three vertices is fanned from its last
// vertex. Primitives fully inside are emitted unchanged.
func ClipPrimitive[K interp.Interpolate[K]](out *PrimitiveStorage[K], prim PrimitiveRef[K]) {
	switch prim.Kind {
	case Point:
		if p := prim.Point(); InsideAll(p.Position) {
			out.EmitPoint(*p)
		}
	case Line:
		a, b := prim.Line()
		if s, e, ok := clipLine(*a, *b); ok {
			out.EmitLine(s, e)
		}
	case Triangle:
		a, b, c := prim.Triangle()
		clipTriangle(out, *a, *b, *c)
	}
}

func clipLine[K interp.Interpolate[K]](start, end ClipVertex[K]) (ClipVertex[K], ClipVertex[K], bool) {
	for _, pl := range ClippingPlanes {
		sIn, eIn := pl.Inside(start.Position), pl.Inside(end.Position)
		switch {
		case sIn && eIn:
		case !sIn && !eIn:
			return start, end, false
		case sIn:
			end = Intersect(pl, start, end)
		default:
			start = Intersect(pl, end, start)
		}
	}
	return start, end, true
}

func clipTriangle[K interp.Interpolate[K]](out *PrimitiveStorage[K], a, b, c ClipVertex[K]) {
	var outside bool
	for _, pl := range ClippingPlanes {
		ia, ib, ic := pl.Inside(a.Position), pl.Inside(b.Position), pl.Inside(c.Position)
		if !ia && !ib && !ic {
			return
		}
		if !ia || !ib || !ic {
			outside = true
		}
	}
	if !outside {
		out.EmitTriangle(a, b, c)
		return
	}

	// Each plane adds at most one vertex.
	poly := make([]ClipVertex[K], 0, 9)
	next := make([]ClipVertex[K], 0, 9)
	poly = append(poly, a, b, c)

	for _, pl := range ClippingPlanes {
		next = next[:0]
		for i, cur := range poly {
			prev := poly[(i+len(poly)-1)%len(poly)]
			curIn, prevIn := pl.Inside(cur.Position), pl.Inside(prev.Position)
			switch {
			case curIn && !prevIn:
				next = append(next, Intersect(pl, cur, prev), cur)
			case curIn:
				next = append(next, cur)
			case prevIn:
				next = append(next, Intersect(pl, prev, cur))
			}
		}
		poly, next = next, poly
		if len(poly) < 3 {
			return
		}
	}

	last := poly[len(poly)-1]
	for i := 0; i+2 < len(poly); i++ {
		out.EmitTriangle(last, poly[i], poly[i+1])
	}
}
