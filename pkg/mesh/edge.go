package mesh

import "fmt"

// Edge is the unordered pair of vertices shared by one or two half-edges.
// Vertex1 always has the smaller number.
type Edge struct {
	mesh    *Mesh
	vertex1 *Vertex
	vertex2 *Vertex
}

// EdgeKey identifies an edge regardless of the direction it was built in.
type EdgeKey struct {
	Low, High *Vertex
}

// EdgeKeyOf returns the key of the edge between a and b.
func EdgeKeyOf(a, b *Vertex) EdgeKey {
	if b.number < a.number {
		a, b = b, a
	}
	return EdgeKey{Low: a, High: b}
}

func newEdge(m *Mesh, v1, v2 *Vertex) *Edge {
	e := &Edge{mesh: m}
	if v1.number < v2.number {
		e.vertex1, e.vertex2 = v1, v2
	} else {
		e.vertex1, e.vertex2 = v2, v1
	}
	m.edges.push(e)
	return e
}

func (e *Edge) destroy(removeFromMesh bool) {
	if e.mesh != nil && removeFromMesh {
		e.mesh.edges.remove(e)
	}
	e.mesh = nil
}

// Mesh returns the owning mesh, nil once the edge is deleted.
func (e *Edge) Mesh() *Mesh { return e.mesh }

// Vertex1 returns the endpoint with the smaller number.
func (e *Edge) Vertex1() *Vertex { return e.vertex1 }

// Vertex2 returns the endpoint with the larger number.
func (e *Edge) Vertex2() *Vertex { return e.vertex2 }

// Key returns the direction-independent identity of the edge.
func (e *Edge) Key() EdgeKey { return EdgeKey{Low: e.vertex1, High: e.vertex2} }

// Contains reports whether v is one of the endpoints.
func (e *Edge) Contains(v *Vertex) bool {
	return e.vertex1 == v || e.vertex2 == v
}

// replaceVertex swaps endpoint old for v, keeping the number order.
func (e *Edge) replaceVertex(old, v *Vertex) bool {
	switch old {
	case e.vertex1:
		e.vertex1 = v
	case e.vertex2:
		e.vertex2 = v
	default:
		return false
	}
	e.reorder()
	return true
}

func (e *Edge) reorder() {
	if e.vertex2.number < e.vertex1.number {
		e.vertex1, e.vertex2 = e.vertex2, e.vertex1
	}
}

func (e *Edge) String() string {
	return fmt.Sprintf("Edge(%s,%s)", e.vertex1.name, e.vertex2.name)
}
