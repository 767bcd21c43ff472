package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
)

func vec(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

// tetrahedron builds A,B,C,D with faces (A,B,C),(A,C,D),(A,D,B),(B,D,C).
func tetrahedron(t *testing.T) (*Mesh, [4]*Vertex) {
	t.Helper()
	m := New("tetra")
	a := m.AddVertex("A").SetCoord(vec(0, 0, 0))
	b := m.AddVertex("B").SetCoord(vec(1, 0, 0))
	c := m.AddVertex("C").SetCoord(vec(0, 1, 0))
	d := m.AddVertex("D").SetCoord(vec(0, 0, 1))
	for _, f := range [][3]*Vertex{{a, b, c}, {a, c, d}, {a, d, b}, {b, d, c}} {
		_, err := m.AddTriangle(f[0], f[1], f[2])
		require.NoError(t, err)
	}
	m.ComputeNormals()
	return m, [4]*Vertex{a, b, c, d}
}

// square builds the unit quad a,b,c,d in the XY plane as (a,b,d),(d,b,c).
func square(t *testing.T) (*Mesh, [4]*Vertex) {
	t.Helper()
	m := New("square")
	a := m.AddVertex("a").SetCoord(vec(0, 0, 0))
	b := m.AddVertex("b").SetCoord(vec(1, 0, 0))
	c := m.AddVertex("c").SetCoord(vec(1, 1, 0))
	d := m.AddVertex("d").SetCoord(vec(0, 1, 0))
	require.NoError(t, m.AddQuad(a, b, c, d))
	m.ComputeNormals()
	return m, [4]*Vertex{a, b, c, d}
}

func TestAddTriangleBuildsHalfEdges(t *testing.T) {
	m, _ := tetrahedron(t)

	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 4, m.TriangleCount())
	assert.Equal(t, 12, m.HalfEdgeCount())
	assert.Equal(t, 6, m.EdgeCount())

	for _, tri := range m.Triangles() {
		h := tri.HalfEdge()
		assert.Same(t, h, h.Next().Next().Next(), "cycle of %s", tri)
	}
	for _, h := range m.HalfEdges() {
		require.NotNil(t, h.Opposite(), "closed surface has no border: %s", h)
		assert.Same(t, h, h.Opposite().Opposite())
		assert.Same(t, h.Edge(), h.Opposite().Edge())
	}
	assert.True(t, m.Check(false))
}

func TestAddTriangleErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *Mesh, v [4]*Vertex) error
		want  error
	}{
		{
			name: "repeated vertex",
			build: func(m *Mesh, v [4]*Vertex) error {
				_, err := m.AddTriangle(v[0], v[1], v[0])
				return err
			},
			want: ErrDegenerateTriangle,
		},
		{
			name: "nil vertex",
			build: func(m *Mesh, v [4]*Vertex) error {
				_, err := m.AddTriangle(v[0], nil, v[1])
				return err
			},
			want: ErrDegenerateTriangle,
		},
		{
			name: "duplicate half-edge",
			build: func(m *Mesh, v [4]*Vertex) error {
				// a->b already exists in (a,b,d)
				_, err := m.AddTriangle(v[0], v[1], v[2])
				return err
			},
			want: ErrDuplicateHalfEdge,
		},
		{
			name: "second side collides, first rolled back",
			build: func(m *Mesh, v [4]*Vertex) error {
				e := m.AddVertex("e").SetCoord(vec(2, 2, 0))
				// e->d is built then d->b collides with (d,b,c)
				_, err := m.AddTriangle(e, v[3], v[1])
				return err
			},
			want: ErrDuplicateHalfEdge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, v := square(t)
			halfEdges, edges, triangles := m.HalfEdgeCount(), m.EdgeCount(), m.TriangleCount()

			err := tt.build(m, v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			assert.Equal(t, triangles, m.TriangleCount())
			assert.Equal(t, halfEdges, m.HalfEdgeCount())
			assert.Equal(t, edges, m.EdgeCount())
			assert.True(t, m.Check(false))
		})
	}
}

func TestEdgeCanonicalOrder(t *testing.T) {
	m, v := square(t)
	for _, e := range m.Edges() {
		assert.Less(t, e.Vertex1().Number(), e.Vertex2().Number(), "%s", e)
	}
	assert.Equal(t, EdgeKeyOf(v[0], v[1]), EdgeKeyOf(v[1], v[0]))
	assert.Equal(t, EdgeKeyOf(v[1], v[3]), v[1].HalfEdgeTo(v[3]).Edge().Key())
}

func TestAddPolygonConcave(t *testing.T) {
	m := New("L")
	coords := []math.Vec3{vec(0, 0, 0), vec(2, 0, 0), vec(2, 1, 0), vec(1, 1, 0), vec(1, 2, 0), vec(0, 2, 0)}
	var vertices []*Vertex
	for i, c := range coords {
		vertices = append(vertices, m.AddVertex(string(rune('a'+i))).SetCoord(c))
	}
	input := append([]*Vertex(nil), vertices...)

	require.NoError(t, m.AddPolygon(vertices, vec(0, 0, 1)))
	m.ComputeNormals()

	assert.Equal(t, input, vertices, "input slice must not change")
	assert.Equal(t, 4, m.TriangleCount())
	var area float32
	for _, tri := range m.Triangles() {
		assert.InDelta(t, 1, tri.Normal().Z, 1e-6, "%s faces +Z", tri)
		area += tri.Surface()
	}
	assert.InDelta(t, 3, area, 1e-5)
	assert.True(t, m.Check(false))
}

func TestAddPolygonTooSmall(t *testing.T) {
	m := New("p")
	a, b := m.AddVertex("a"), m.AddVertex("b")
	err := m.AddPolygonConvex([]*Vertex{a, b})
	assert.ErrorIs(t, err, ErrPolygon)
}

func TestAddPolygonConvexFan(t *testing.T) {
	m := New("fan")
	var vertices []*Vertex
	for i, c := range []math.Vec3{vec(0, 0, 0), vec(1, 0, 0), vec(2, 1, 0), vec(1, 2, 0), vec(0, 1, 0)} {
		vertices = append(vertices, m.AddVertex(string(rune('p'+i))).SetCoord(c))
	}
	require.NoError(t, m.AddPolygonConvex(vertices))
	assert.Equal(t, 3, m.TriangleCount())
	for _, tri := range m.Triangles() {
		assert.True(t, tri.ContainsVertex(vertices[0]))
	}
}

func TestDelVertexCascades(t *testing.T) {
	m, v := tetrahedron(t)
	m.DelVertex(v[0])

	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, 3, m.HalfEdgeCount())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Nil(t, v[0].Mesh())
	assert.Nil(t, m.VertexByName("A"))
	assert.True(t, m.Check(false))
}

func TestDelTriangleOpensBorder(t *testing.T) {
	m, v := square(t)
	m.DelTriangle(v[0].TriangleLeftTo(v[1]))

	assert.Equal(t, 1, m.TriangleCount())
	assert.Equal(t, 3, m.EdgeCount())
	h := v[3].HalfEdgeTo(v[1])
	require.NotNil(t, h)
	assert.True(t, h.IsBorder())
	assert.Nil(t, v[1].HalfEdgeTo(v[3]))
	assert.True(t, m.Check(false))
	assert.True(t, v[0].IsIsolated())
}

func TestDestroy(t *testing.T) {
	m, v := tetrahedron(t)
	m.Destroy()

	assert.Zero(t, m.VertexCount())
	assert.Zero(t, m.TriangleCount())
	assert.Zero(t, m.EdgeCount())
	assert.Zero(t, m.HalfEdgeCount())
	assert.Nil(t, v[0].Mesh())
	assert.Nil(t, m.VertexByName("B"))
}

func TestVertexByNameKeepsOldest(t *testing.T) {
	m := New("names")
	first := m.AddVertex("p")
	second := m.AddVertex("p")

	assert.Same(t, first, m.VertexByName("p"))
	m.DelVertex(first)
	assert.Same(t, second, m.VertexByName("p"))
	assert.Nil(t, m.VertexByName("q"))
}

func TestComputeNormalsIdempotent(t *testing.T) {
	m, _ := tetrahedron(t)
	before := make([]math.Vec3, 0, m.VertexCount())
	for _, v := range m.Vertices() {
		before = append(before, v.Normal())
	}
	m.ComputeNormals()
	for i, v := range m.Vertices() {
		assert.InDelta(t, before[i].X, v.Normal().X, 1e-6)
		assert.InDelta(t, before[i].Y, v.Normal().Y, 1e-6)
		assert.InDelta(t, before[i].Z, v.Normal().Z, 1e-6)
	}
}

func TestRenumberIsDense(t *testing.T) {
	m, v := tetrahedron(t)
	m.DelVertex(v[1])
	m.Renumber()
	for i, vertex := range m.Vertices() {
		assert.Equal(t, i, vertex.Number())
	}
	extra := m.AddVertex("E")
	assert.Equal(t, 3, extra.Number())
	for _, e := range m.Edges() {
		assert.Less(t, e.Vertex1().Number(), e.Vertex2().Number())
	}
}

func TestComputeTangents(t *testing.T) {
	m, v := square(t)
	v[0].SetTexCoord(math.Vec2{X: 0, Y: 0})
	v[1].SetTexCoord(math.Vec2{X: 1, Y: 0})
	v[2].SetTexCoord(math.Vec2{X: 1, Y: 1})
	v[3].SetTexCoord(math.Vec2{X: 0, Y: 1})
	m.ComputeTangents()

	for _, tri := range m.Triangles() {
		assert.False(t, tri.Tangent().IsZero(), "%s", tri)
	}
	for _, vertex := range m.Vertices() {
		assert.InDelta(t, 1, vertex.Tangent().Length(), 1e-5)
	}
}
