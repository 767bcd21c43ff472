package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseTetrahedron(t *testing.T) {
	m, v := tetrahedron(t)
	a, b := v[0], v[1]

	h := a.HalfEdgeTo(b)
	require.NotNil(t, h)
	require.True(t, h.CanCollapse())

	Collapse(h)
	assert.True(t, b.IsIsolated())
	m.DelVertex(b)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, 3, m.EdgeCount())
	for _, tri := range m.Triangles() {
		assert.False(t, tri.ContainsVertex(b), "%s still uses B", tri)
	}
	assert.True(t, m.Check(false))
}

func TestCollapseOnBorder(t *testing.T) {
	m, v := square(t)
	a, b := v[0], v[1]

	h := a.HalfEdgeTo(b)
	require.True(t, h.IsBorder())
	require.True(t, h.CanCollapse())

	Collapse(h)
	m.DelVertex(b)

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())
	tri := m.Triangle(0)
	assert.True(t, tri.ContainsVertex(a))
	assert.True(t, m.Check(false))
	for _, e := range m.Edges() {
		assert.False(t, e.Contains(b), "%s", e)
	}
}

func TestCanCollapseLinkCondition(t *testing.T) {
	m, v := tetrahedron(t)
	a, b, c, d := v[0], v[1], v[2], v[3]
	m.DelTriangle(b.TriangleLeftTo(d))

	// A-B keeps its two apexes C and D
	assert.True(t, a.HalfEdgeTo(b).CanCollapse())
	// B->C is now a border with apex A, but B and C also share D
	h := b.HalfEdgeTo(c)
	require.True(t, h.IsBorder())
	assert.False(t, h.CanCollapse())
	assert.True(t, m.Check(false))
}

func TestFlip(t *testing.T) {
	m, v := square(t)
	a, b, c, d := v[0], v[1], v[2], v[3]

	h := b.HalfEdgeTo(d)
	require.NotNil(t, h)
	require.NoError(t, h.Flip())

	assert.Nil(t, b.HalfEdgeTo(d))
	assert.Nil(t, d.HalfEdgeTo(b))
	require.NotNil(t, a.HalfEdgeTo(c))
	require.NotNil(t, c.HalfEdgeTo(a))
	assert.Same(t, a.HalfEdgeTo(c).Edge(), c.HalfEdgeTo(a).Edge())
	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, 5, m.EdgeCount())

	for _, tri := range m.Triangles() {
		assert.Same(t, tri, tri.HalfEdge().Triangle())
		assert.Same(t, tri, tri.HalfEdge().Next().Triangle())
		assert.Same(t, tri, tri.HalfEdge().Next().Next().Triangle())
	}
	assert.True(t, m.Check(false))

	m.ComputeNormals()
	for _, tri := range m.Triangles() {
		assert.InDelta(t, 1, tri.Normal().Z, 1e-6, "%s keeps facing +Z", tri)
	}
}

func TestFlipBorderIsNoop(t *testing.T) {
	m, v := square(t)
	h := v[0].HalfEdgeTo(v[1])
	require.NoError(t, h.Flip())
	assert.Same(t, h, v[0].HalfEdgeTo(v[1]))
	assert.True(t, m.Check(false))
}

func TestFlipRejectsExistingDiagonal(t *testing.T) {
	m, v := tetrahedron(t)
	// flipping A-B would create C-D which already exists
	err := v[0].HalfEdgeTo(v[1]).Flip()
	assert.ErrorIs(t, err, ErrDuplicateHalfEdge)
	assert.True(t, m.Check(false))
}

func TestFlipRejectsTwoSidedPair(t *testing.T) {
	m := New("pair")
	a := m.AddVertex("a").SetCoord(vec(0, 0, 0))
	b := m.AddVertex("b").SetCoord(vec(1, 0, 0))
	c := m.AddVertex("c").SetCoord(vec(0, 1, 0))
	_, err := m.AddTriangle(a, b, c)
	require.NoError(t, err)
	_, err = m.AddTriangle(a, c, b)
	require.NoError(t, err)

	err = a.HalfEdgeTo(b).Flip()
	assert.ErrorIs(t, err, ErrDegenerateTriangle)
	assert.True(t, m.Check(false))
	for _, tri := range m.Triangles() {
		assert.True(t, tri.ContainsVertex(a), "%s", tri)
		assert.True(t, tri.ContainsVertex(b), "%s", tri)
		assert.True(t, tri.ContainsVertex(c), "%s", tri)
	}
}

func TestTrianglesOrderedAround(t *testing.T) {
	m, v := tetrahedron(t)
	for _, vertex := range v {
		ordered := vertex.TrianglesOrderedAround()
		assert.ElementsMatch(t, vertex.TrianglesAround(), ordered, "fan of %s", vertex)
		// consecutive triangles share an edge through the vertex
		for i := range ordered {
			next := ordered[(i+1)%len(ordered)]
			shared := 0
			for _, p := range ordered[i].Vertices() {
				if next.ContainsVertex(p) {
					shared++
				}
			}
			assert.Equal(t, 2, shared)
		}
	}
	assert.Equal(t, 4, m.TriangleCount())
}

func TestNeighborVerticesSorted(t *testing.T) {
	_, v := tetrahedron(t)
	got := v[2].NeighborVertices()
	require.Len(t, got, 3)
	assert.Equal(t, []*Vertex{v[0], v[1], v[3]}, got)
}

func TestReplaceVertex(t *testing.T) {
	m, v := square(t)
	e := m.AddVertex("e").SetCoord(vec(2, 2, 0))
	tri := v[3].TriangleLeftTo(v[1])
	require.NotNil(t, tri)

	require.NoError(t, tri.ReplaceVertex(v[2], e))
	assert.True(t, tri.ContainsVertex(e))
	assert.False(t, tri.ContainsVertex(v[2]))
	assert.True(t, v[2].IsIsolated())
	assert.NotNil(t, v[1].HalfEdgeTo(e))
	assert.True(t, m.Check(false))
}

func TestReplaceVertexKeepsTriangleOnError(t *testing.T) {
	m := New("fan")
	a := m.AddVertex("a").SetCoord(vec(0, 0, 0))
	b := m.AddVertex("b").SetCoord(vec(1, 0, 0))
	c := m.AddVertex("c").SetCoord(vec(0, 1, 0))
	d := m.AddVertex("d").SetCoord(vec(2, 0, 1))
	e := m.AddVertex("e").SetCoord(vec(2, 1, 0))
	tri, err := m.AddTriangle(a, b, c)
	require.NoError(t, err)
	_, err = m.AddTriangle(d, b, e)
	require.NoError(t, err)

	// d -> b is already used by the second triangle
	err = tri.ReplaceVertex(a, d)
	assert.ErrorIs(t, err, ErrDuplicateHalfEdge)
	assert.Equal(t, 2, m.TriangleCount())
	assert.True(t, tri.ContainsVertex(a))
	assert.False(t, tri.ContainsVertex(d))
	assert.NotNil(t, a.HalfEdgeTo(b))
	assert.NotNil(t, c.HalfEdgeTo(a))
	assert.True(t, m.Check(false))
	assert.NotPanics(t, m.ComputeNormals)

	assert.ErrorIs(t, tri.ReplaceVertex(a, b), ErrDegenerateTriangle)
	assert.True(t, m.Check(false))
}
