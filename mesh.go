package softrender

import "fmt"

// Primitive identifies a primitive type. Its value is the number of vertices
// the primitive is made of.
type Primitive uint8

const (
	Point    Primitive = 1
	Line     Primitive = 2
	Triangle Primitive = 3
)

// Vertices returns the primitive's arity.
func (p Primitive) Vertices() int { return int(p) }

// String implements fmt.Stringer.
func (p Primitive) String() string {
	switch p {
	case Point:
		return "point"
	case Line:
		return "line"
	case Triangle:
		return "triangle"
	}
	return fmt.Sprintf("Primitive(%d)", uint8(p))
}

// Topology describes how a mesh's vertex sequence forms primitives.
type Topology uint8

const (
	// TopologyTriangles groups every three vertices into a triangle.
	TopologyTriangles Topology = iota
	// TopologyTriangleStrip forms a triangle from every vertex and its two
	// predecessors, alternating winding so all triangles face the same way.
	TopologyTriangleStrip
	// TopologyTriangleFan forms triangles sharing the first vertex.
	TopologyTriangleFan
	// TopologyLines groups every two vertices into a line.
	TopologyLines
	// TopologyLineStrip connects consecutive vertices.
	TopologyLineStrip
	// TopologyLineLoop is a line strip closed back to the first vertex.
	TopologyLineLoop
	// TopologyPoints treats every vertex as a point.
	TopologyPoints
)

// Primitive returns the primitive type the topology produces.
func (t Topology) Primitive() Primitive {
	switch t {
	case TopologyLines, TopologyLineStrip, TopologyLineLoop:
		return Line
	case TopologyPoints:
		return Point
	}
	return Triangle
}

// list returns the topology after conversion to an index list.
func (t Topology) list() Topology {
	switch t.Primitive() {
	case Line:
		return TopologyLines
	case Point:
		return TopologyPoints
	}
	return TopologyTriangles
}

// Mesh is a vertex list and the index list that groups it into primitives.
//
// Stages only read a mesh; share it by pointer between renders.
type Mesh[V any] struct {
	Vertices []Vertex[V]

	// Indices groups Vertices into primitives of the topology's arity.
	// A nil slice means the vertices are used in order.
	Indices []uint32

	Topology Topology
}

// NewMesh creates a mesh.
func NewMesh[V any](topology Topology, vertices []Vertex[V], indices []uint32) *Mesh[V] {
	return &Mesh[V]{Vertices: vertices, Indices: indices, Topology: topology}
}

// Primitive returns the primitive type of the mesh.
func (m *Mesh[V]) Primitive() Primitive { return m.Topology.Primitive() }

// Indexed reports whether the mesh has an index list.
func (m *Mesh[V]) Indexed() bool { return m.Indices != nil }

// Index builds the index list from the vertex order and the topology.
// Strip, fan and loop topologies are converted to their list form.
//
// It fails with ErrIndicesExist if the mesh already has indices and with
// ErrInvalidVertexCount if the vertex count does not fit the topology.
func (m *Mesh[V]) Index() error {
	if m.Indices != nil {
		return ErrIndicesExist
	}
	indices, err := buildIndices(m.Topology, len(m.Vertices))
	if err != nil {
		return err
	}
	m.Indices = indices
	m.Topology = m.Topology.list()
	return nil
}

// resolveIndices returns the index list to render with and the primitive
// type. The mesh is left unchanged.
func (m *Mesh[V]) resolveIndices() ([]uint32, Primitive, error) {
	prim := m.Topology.Primitive()
	if m.Indices != nil {
		switch m.Topology {
		case TopologyTriangles, TopologyLines, TopologyPoints:
			return m.Indices, prim, nil
		}
		return expandIndices(m.Topology, m.Indices)
	}
	indices, err := buildIndices(m.Topology, len(m.Vertices))
	return indices, prim, err
}

func buildIndices(t Topology, n int) ([]uint32, error) {
	seq := make([]uint32, n)
	for i := range seq {
		seq[i] = uint32(i)
	}
	switch t {
	case TopologyTriangles, TopologyLines, TopologyPoints:
		if arity := t.Primitive().Vertices(); n%arity != 0 {
			return nil, fmt.Errorf("%w: %d vertices is not a multiple of %d", ErrInvalidVertexCount, n, arity)
		}
		return seq, nil
	}
	indices, _, err := expandIndices(t, seq)
	return indices, err
}

// expandIndices converts a strip, fan or loop sequence into list form.
func expandIndices(t Topology, seq []uint32) ([]uint32, Primitive, error) {
	n := len(seq)
	switch t {
	case TopologyTriangleStrip:
		if n < 3 {
			return nil, 0, fmt.Errorf("%w: triangle strip needs at least 3 vertices, have %d", ErrInvalidVertexCount, n)
		}
		out := make([]uint32, 0, (n-2)*3)
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				out = append(out, seq[i], seq[i+1], seq[i+2])
			} else {
				out = append(out, seq[i+1], seq[i], seq[i+2])
			}
		}
		return out, Triangle, nil

	case TopologyTriangleFan:
		if n < 3 {
			return nil, 0, fmt.Errorf("%w: triangle fan needs at least 3 vertices, have %d", ErrInvalidVertexCount, n)
		}
		out := make([]uint32, 0, (n-2)*3)
		for i := 1; i+1 < n; i++ {
			out = append(out, seq[0], seq[i], seq[i+1])
		}
		return out, Triangle, nil

	case TopologyLineStrip, TopologyLineLoop:
		if n < 2 {
			return nil, 0, fmt.Errorf("%w: line strip needs at least 2 vertices, have %d", ErrInvalidVertexCount, n)
		}
		out := make([]uint32, 0, n*2)
		for i := 0; i+1 < n; i++ {
			out = append(out, seq[i], seq[i+1])
		}
		if t == TopologyLineLoop && n > 2 {
			out = append(out, seq[n-1], seq[0])
		}
		return out, Line, nil

	case TopologyTriangles, TopologyLines, TopologyPoints:
		return seq, t.Primitive(), nil
	}
	return nil, 0, fmt.Errorf("%w: %d", ErrUnsupportedTopology, t)
}
