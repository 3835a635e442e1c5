package softrender

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/softrender/interp"
)

func cv(x, y, z, w float32, u interp.Float) ClipVertex[interp.Float] {
	return NewClipVertex(mgl32.Vec4{x, y, z, w}, u)
}

func near(a, b float32) bool {
	d := a - b
	return d > -1e-5 && d < 1e-5
}

func triangleRef(a, b, c *ClipVertex[interp.Float]) PrimitiveRef[interp.Float] {
	return PrimitiveRef[interp.Float]{Kind: Triangle, Vertices: [3]*ClipVertex[interp.Float]{a, b, c}}
}

// =============================================================================
// Planes
// =============================================================================

func TestClippingPlane_Inside(t *testing.T) {
	tests := []struct {
		plane ClippingPlane
		in    mgl32.Vec4
		out   mgl32.Vec4
	}{
		{PlaneLeft, mgl32.Vec4{-1, 0, 0.5, 1}, mgl32.Vec4{-1.5, 0, 0.5, 1}},
		{PlaneRight, mgl32.Vec4{1, 0, 0.5, 1}, mgl32.Vec4{1.5, 0, 0.5, 1}},
		{PlaneTop, mgl32.Vec4{0, 2, 0.5, 2}, mgl32.Vec4{0, 2.5, 0.5, 2}},
		{PlaneBottom, mgl32.Vec4{0, -2, 0.5, 2}, mgl32.Vec4{0, -2.5, 0.5, 2}},
		{PlaneNear, mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec4{0, 0, -0.1, 1}},
		{PlaneFar, mgl32.Vec4{0, 0, 3, 3}, mgl32.Vec4{0, 0, 3.5, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.plane.String(), func(t *testing.T) {
			if !tt.plane.Inside(tt.in) {
				t.Errorf("Inside(%v) = false, want true", tt.in)
			}
			if tt.plane.Inside(tt.out) {
				t.Errorf("Inside(%v) = true, want false", tt.out)
			}
		})
	}
}

func TestInsideAll(t *testing.T) {
	tests := []struct {
		name string
		p    mgl32.Vec4
		want bool
	}{
		{"center", mgl32.Vec4{0, 0, 0.5, 1}, true},
		{"corner", mgl32.Vec4{1, -1, 1, 1}, true},
		{"behind", mgl32.Vec4{0, 0, -1, 1}, false},
		{"beyond far", mgl32.Vec4{0, 0, 2, 1}, false},
		{"left", mgl32.Vec4{-3, 0, 0.5, 1}, false},
	}
	for _, tt := range tests {
		if got := InsideAll(tt.p); got != tt.want {
			t.Errorf("InsideAll(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIntersect(t *testing.T) {
	a := cv(0, 0, 0.5, 1, 0)
	b := cv(3, 0, 0.5, 1, 3)

	got := Intersect(PlaneRight, a, b)
	if !near(got.Position.X(), 1) {
		t.Errorf("Intersect().Position.X() = %v, want 1", got.Position.X())
	}
	if !near(float32(got.Uniforms), 1) {
		t.Errorf("Intersect().Uniforms = %v, want 1", got.Uniforms)
	}
	if d := PlaneRight.Distance(got.Position); !near(d, 0) {
		t.Errorf("Distance(intersection) = %v, want 0", d)
	}
}

// =============================================================================
// ClipPrimitive
// =============================================================================

func TestClipPrimitive_InsideUnchanged(t *testing.T) {
	a, b, c := cv(-0.5, 0, 0.2, 1, 1), cv(0.5, 0, 0.2, 1, 2), cv(0, 0.5, 0.2, 1, 3)
	var out PrimitiveStorage[interp.Float]
	ClipPrimitive(&out, triangleRef(&a, &b, &c))

	if len(out.Triangles) != 3 {
		t.Fatalf("len(Triangles) = %d, want 3", len(out.Triangles))
	}
	for i, want := range []ClipVertex[interp.Float]{a, b, c} {
		if out.Triangles[i] != want {
			t.Errorf("Triangles[%d] = %v, want %v", i, out.Triangles[i], want)
		}
	}
}

func TestClipPrimitive_OutsideDropped(t *testing.T) {
	tests := []struct {
		name string
		ref  func() PrimitiveRef[interp.Float]
	}{
		{"triangle right of view", func() PrimitiveRef[interp.Float] {
			a, b, c := cv(2, 0, 0.5, 1, 0), cv(3, 0, 0.5, 1, 0), cv(2, 1, 0.5, 1, 0)
			return triangleRef(&a, &b, &c)
		}},
		{"triangle behind camera", func() PrimitiveRef[interp.Float] {
			a, b, c := cv(0, 0, -1, 1, 0), cv(1, 0, -1, 1, 0), cv(0, 1, -2, 1, 0)
			return triangleRef(&a, &b, &c)
		}},
		{"line above view", func() PrimitiveRef[interp.Float] {
			a, b := cv(-0.5, 2, 0.5, 1, 0), cv(0.5, 3, 0.5, 1, 0)
			return PrimitiveRef[interp.Float]{Kind: Line, Vertices: [3]*ClipVertex[interp.Float]{&a, &b}}
		}},
		{"point past far plane", func() PrimitiveRef[interp.Float] {
			a := cv(0, 0, 2, 1, 0)
			return PrimitiveRef[interp.Float]{Kind: Point, Vertices: [3]*ClipVertex[interp.Float]{&a}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out PrimitiveStorage[interp.Float]
			ClipPrimitive(&out, tt.ref())
			if out.Len() != 0 {
				t.Errorf("Len() = %d, want 0", out.Len())
			}
		})
	}
}

func TestClipPrimitive_Line(t *testing.T) {
	a, b := cv(0, 0, 0.5, 1, 0), cv(2, 0, 0.5, 1, 4)
	var out PrimitiveStorage[interp.Float]
	ClipPrimitive(&out, PrimitiveRef[interp.Float]{Kind: Line, Vertices: [3]*ClipVertex[interp.Float]{&a, &b}})

	if len(out.Lines) != 2 {
		t.Fatalf("len(Lines) = %d, want 2", len(out.Lines))
	}
	if out.Lines[0] != a {
		t.Errorf("start = %v, want unchanged %v", out.Lines[0], a)
	}
	end := out.Lines[1]
	if end.Position.X() != 1 || end.Uniforms != 2 {
		t.Errorf("end = %v, want x=1 uniforms=2", end)
	}
}

func TestClipPrimitive_TriangleCrossingPlane(t *testing.T) {
	a, b, c := cv(0, 0, 0.5, 1, 0), cv(2, 0, 0.5, 1, 0), cv(0, 0.5, 0.5, 1, 0)
	var out PrimitiveStorage[interp.Float]
	ClipPrimitive(&out, triangleRef(&a, &b, &c))

	// One corner is cut off, leaving a quad fanned into two triangles.
	if got := len(out.Triangles) / 3; got != 2 {
		t.Fatalf("triangles = %d, want 2", got)
	}
	for i, v := range out.Triangles {
		if !InsideAll(v.Position) {
			t.Errorf("Triangles[%d] = %v is outside the view volume", i, v.Position)
		}
	}
	// Fanned from the last polygon vertex, which is c.
	if out.Triangles[0] != c || out.Triangles[3] != c {
		t.Errorf("fan pivot = %v, %v, want %v", out.Triangles[0], out.Triangles[3], c)
	}
}

// =============================================================================
// Storage
// =============================================================================

func TestPrimitiveStorage_EachOrder(t *testing.T) {
	var s PrimitiveStorage[interp.Float]
	s.EmitTriangle(cv(0, 0, 0, 1, 0), cv(0, 0, 0, 1, 0), cv(0, 0, 0, 1, 0))
	s.EmitLine(cv(0, 0, 0, 1, 0), cv(0, 0, 0, 1, 0))
	s.EmitPoint(cv(0, 0, 0, 1, 0))

	var kinds []Primitive
	s.Each(func(r PrimitiveRef[interp.Float]) { kinds = append(kinds, r.Kind) })
	want := []Primitive{Point, Line, Triangle}
	if len(kinds) != len(want) {
		t.Fatalf("Each() visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Each() visited %v, want %v", kinds, want)
			break
		}
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset() = %d, want 0", s.Len())
	}
}
