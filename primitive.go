package softrender

import "github.com/gogpu/softrender/interp"

// PrimitiveRef is a read-only view of one primitive handed to a geometry
// shader. Only the first Kind.Vertices() entries of Vertices are set.
type PrimitiveRef[K interp.Interpolate[K]] struct {
	Kind     Primitive
	Vertices [3]*ClipVertex[K]
}

// Point returns the vertex of a point primitive.
func (r PrimitiveRef[K]) Point() *ClipVertex[K] {
	return r.Vertices[0]
}

// Line returns the endpoints of a line primitive.
func (r PrimitiveRef[K]) Line() (start, end *ClipVertex[K]) {
	return r.Vertices[0], r.Vertices[1]
}

// Triangle returns the corners of a triangle primitive.
func (r PrimitiveRef[K]) Triangle() (a, b, c *ClipVertex[K]) {
	return r.Vertices[0], r.Vertices[1], r.Vertices[2]
}

// PrimitiveStorage collects primitives emitted by a geometry shader.
// Each list stores vertices in runs of the primitive's arity.
type PrimitiveStorage[K interp.Interpolate[K]] struct {
	Points    []ClipVertex[K]
	Lines     []ClipVertex[K]
	Triangles []ClipVertex[K]
}

// EmitPoint appends a point.
func (s *PrimitiveStorage[K]) EmitPoint(p ClipVertex[K]) {
	s.Points = append(s.Points, p)
}

// EmitLine appends a line.
func (s *PrimitiveStorage[K]) EmitLine(start, end ClipVertex[K]) {
	s.Lines = append(s.Lines, start, end)
}

// EmitTriangle appends a triangle.
func (s *PrimitiveStorage[K]) EmitTriangle(a, b, c ClipVertex[K]) {
	s.Triangles = append(s.Triangles, a, b, c)
}

// Emit appends a copy of the referenced primitive.
func (s *PrimitiveStorage[K]) Emit(r PrimitiveRef[K]) {
	switch r.Kind {
	case Point:
		s.EmitPoint(*r.Vertices[0])
	case Line:
		s.EmitLine(*r.Vertices[0], *r.Vertices[1])
	case Triangle:
		s.EmitTriangle(*r.Vertices[0], *r.Vertices[1], *r.Vertices[2])
	}
}

// Append moves all primitives of other to the end of s.
func (s *PrimitiveStorage[K]) Append(other *PrimitiveStorage[K]) {
	s.Points = append(s.Points, other.Points...)
	s.Lines = append(s.Lines, other.Lines...)
	s.Triangles = append(s.Triangles, other.Triangles...)
}

// Len returns the number of primitives.
func (s *PrimitiveStorage[K]) Len() int {
	return len(s.Points) + len(s.Lines)/2 + len(s.Triangles)/3
}

// Reset empties the storage, keeping its capacity.
func (s *PrimitiveStorage[K]) Reset() {
	s.Points = s.Points[:0]
	s.Lines = s.Lines[:0]
	s.Triangles = s.Triangles[:0]
}

// Each calls fn for every primitive: points first, then lines, then
// triangles.
func (s *PrimitiveStorage[K]) Each(fn func(PrimitiveRef[K])) {
	for i := range s.Points {
		fn(PrimitiveRef[K]{Kind: Point, Vertices: [3]*ClipVertex[K]{&s.Points[i]}})
	}
	for i := 0; i+1 < len(s.Lines); i += 2 {
		fn(PrimitiveRef[K]{Kind: Line, Vertices: [3]*ClipVertex[K]{&s.Lines[i], &s.Lines[i+1]}})
	}
	for i := 0; i+2 < len(s.Triangles); i += 3 {
		fn(PrimitiveRef[K]{Kind: Triangle, Vertices: [3]*ClipVertex[K]{&s.Triangles[i], &s.Triangles[i+1], &s.Triangles[i+2]}})
	}
}

// ScreenStorage is the screen-space counterpart of PrimitiveStorage.
type ScreenStorage[K interp.Interpolate[K]] struct {
	Points    []ScreenVertex[K]
	Lines     []ScreenVertex[K]
	Triangles []ScreenVertex[K]
}

// Append moves all primitives of other to the end of s.
func (s *ScreenStorage[K]) Append(other *ScreenStorage[K]) {
	s.Points = append(s.Points, other.Points...)
	s.Lines = append(s.Lines, other.Lines...)
	s.Triangles = append(s.Triangles, other.Triangles...)
}

// Len returns the number of primitives.
func (s *ScreenStorage[K]) Len() int {
	return len(s.Points) + len(s.Lines)/2 + len(s.Triangles)/3
}
