// Package mesh implements a half-edge triangle mesh.
//
// A Mesh owns its vertices, triangles, edges and half-edges. Elements are
// only created through the mesh factories (AddVertex, AddTriangle, AddQuad,
// AddPolygon) and deleted through DelTriangle and DelVertex. After any
// change of topology or coordinates, ComputeNormals must be called before
// the cached normals are read again.
package mesh

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
)

// Mesh is a set of triangles sharing vertices through half-edges.
type Mesh struct {
	name string

	vertices  elementList[*Vertex]
	triangles elementList[*Triangle]
	edges     elementList[*Edge]
	halfEdges elementList[*HalfEdge]

	byName     map[string][]*Vertex
	nextNumber int
}

// New creates an empty mesh.
func New(name string) *Mesh {
	return &Mesh{
		name:      name,
		vertices:  newElementList[*Vertex](),
		triangles: newElementList[*Triangle](),
		edges:     newElementList[*Edge](),
		halfEdges: newElementList[*HalfEdge](),
		byName:    make(map[string][]*Vertex),
	}
}

// Name returns the mesh name.
func (m *Mesh) Name() string {
	if m == nil {
		return "<nil>"
	}
	return m.name
}

// Vertices returns the vertices in insertion order. The slice is a copy.
func (m *Mesh) Vertices() []*Vertex { return m.vertices.snapshot() }

// Triangles returns the triangles in insertion order. The slice is a copy.
func (m *Mesh) Triangles() []*Triangle { return m.triangles.snapshot() }

// Edges returns the edges in insertion order. The slice is a copy.
func (m *Mesh) Edges() []*Edge { return m.edges.snapshot() }

// HalfEdges returns the half-edges in insertion order. The slice is a copy.
func (m *Mesh) HalfEdges() []*HalfEdge { return m.halfEdges.snapshot() }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return m.vertices.len() }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return m.triangles.len() }

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int { return m.edges.len() }

// HalfEdgeCount returns the number of half-edges.
func (m *Mesh) HalfEdgeCount() int { return m.halfEdges.len() }

// Vertex returns vertex i in insertion order, or nil.
func (m *Mesh) Vertex(i int) *Vertex {
	v, _ := m.vertices.at(i)
	return v
}

// Triangle returns triangle i in insertion order, or nil.
func (m *Mesh) Triangle(i int) *Triangle {
	t, _ := m.triangles.at(i)
	return t
}

// VertexByName returns the oldest vertex with that name, or nil.
func (m *Mesh) VertexByName(name string) *Vertex {
	if vs := m.byName[name]; len(vs) > 0 {
		return vs[0]
	}
	return nil
}

// Info logs the size of the mesh.
func (m *Mesh) Info() {
	log.Info("mesh",
		zap.String("name", m.name),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("edges", m.EdgeCount()))
}

// AddVertex creates an isolated vertex.
func (m *Mesh) AddVertex(name string) *Vertex {
	v := &Vertex{mesh: m, name: name, number: m.nextNumber}
	m.nextNumber++
	m.vertices.push(v)
	m.byName[name] = append(m.byName[name], v)
	return v
}

// AddTriangle creates the triangle (v1,v2,v3), counter-clockwise seen from
// the front. It fails on a repeated vertex, on an already existing
// half-edge and on an edge that already has two triangles; the mesh is left
// unchanged in that case.
func (m *Mesh) AddTriangle(v1, v2, v3 *Vertex) (*Triangle, error) {
	return newTriangle(m, v1, v2, v3)
}

// AddQuad creates the triangles (v1,v2,v4) and (v4,v2,v3).
func (m *Mesh) AddQuad(v1, v2, v3, v4 *Vertex) error {
	if _, err := m.AddTriangle(v1, v2, v4); err != nil {
		return err
	}
	if _, err := m.AddTriangle(v4, v2, v3); err != nil {
		return err
	}
	return nil
}

// AddPolygonConvex fans a convex polygon around its first vertex.
func (m *Mesh) AddPolygonConvex(vertices []*Vertex) error {
	if len(vertices) < 3 {
		return fmt.Errorf("%s: %d vertices: %w", m.name, len(vertices), ErrPolygon)
	}
	pivot := vertices[0]
	for i := 0; i < len(vertices)-2; i++ {
		if _, err := m.AddTriangle(pivot, vertices[i+1], vertices[i+2]); err != nil {
			return err
		}
	}
	return nil
}

// AddPolygon triangulates a possibly concave polygon by ear clipping.
// normal gives the front side; vertices must turn counter-clockwise around it.
// The slice is not modified.
func (m *Mesh) AddPolygon(vertices []*Vertex, normal math.Vec3) error {
	vertices = slices.Clone(vertices)
	count := len(vertices)
	for count >= 3 {
		found := false
		for i := 0; i < count-2; i++ {
			a := vertices[i%count]
			b := vertices[(i+1)%count]
			c := vertices[(i+2)%count]
			if !isEar(vertices[:count], i, normal) {
				continue
			}
			if _, err := m.AddTriangle(a, b, c); err != nil {
				return err
			}
			vertices = slices.Delete(vertices, (i+1)%count, (i+1)%count+1)
			count--
			found = true
		}
		if !found {
			return fmt.Errorf("%s: %d vertices left: %w", m.name, count, ErrPolygon)
		}
	}
	return nil
}

// isEar reports whether corner i+1 is convex and its triangle holds no
// other vertex of the polygon.
func isEar(vertices []*Vertex, i int, normal math.Vec3) bool {
	count := len(vertices)
	ca := vertices[i%count].Coord()
	cb := vertices[(i+1)%count].Coord()
	cc := vertices[(i+2)%count].Coord()

	ab := cb.Sub(ca)
	bc := cc.Sub(cb)
	cA := ca.Sub(cc)
	n := ab.Cross(bc)
	if n.Dot(normal) < 0 {
		return false
	}
	for j := 0; j < count; j++ {
		if i <= j && j <= i+2 {
			continue
		}
		// n x edge points inside the candidate triangle
		p := vertices[j].Coord()
		leftAB := p.Sub(ca).Dot(n.Cross(ab)) > 0
		leftBC := p.Sub(cb).Dot(n.Cross(bc)) > 0
		leftCA := p.Sub(cc).Dot(n.Cross(cA)) > 0
		if leftAB && leftBC && leftCA {
			return false
		}
	}
	return true
}

// DelTriangle deletes a triangle and its half-edges.
func (m *Mesh) DelTriangle(t *Triangle) {
	t.destroy(true)
}

// DelVertex deletes a vertex together with every triangle around it.
func (m *Mesh) DelVertex(v *Vertex) {
	if v.mesh != m {
		return
	}
	m.vertices.remove(v)
	m.forgetName(v)
	v.mesh = nil
	v.Quadric = nil
	for h := v.halfEdge; h != nil; {
		next := h.sibling
		h.triangle.destroy(true)
		h = next
	}
}

func (m *Mesh) forgetName(v *Vertex) {
	vs := m.byName[v.name]
	if i := slices.Index(vs, v); i >= 0 {
		vs = slices.Delete(vs, i, i+1)
	}
	if len(vs) == 0 {
		delete(m.byName, v.name)
	} else {
		m.byName[v.name] = vs
	}
}

// Destroy releases every element; the mesh is empty afterwards.
func (m *Mesh) Destroy() {
	for _, t := range m.triangles.snapshot() {
		t.destroy(false)
	}
	for _, v := range m.vertices.snapshot() {
		v.mesh = nil
		v.halfEdge = nil
	}
	for _, e := range m.edges.snapshot() {
		e.destroy(false)
	}
	for _, h := range m.halfEdges.snapshot() {
		h.mesh = nil
	}
	m.triangles.clear()
	m.vertices.clear()
	m.edges.clear()
	m.halfEdges.clear()
	m.byName = make(map[string][]*Vertex)
	m.nextNumber = 0
}

// Renumber assigns dense numbers 0..N-1 in list order and keeps every edge
// ordered by the new numbers.
func (m *Mesh) Renumber() {
	vertices := m.vertices.snapshot()
	for i, v := range vertices {
		v.number = i
	}
	m.nextNumber = len(vertices)
	for _, e := range m.edges.snapshot() {
		e.reorder()
	}
}

// ComputeNormals renumbers the vertices then refreshes triangle and vertex normals.
func (m *Mesh) ComputeNormals() {
	for _, t := range m.triangles.snapshot() {
		t.ComputeNormal()
	}
	m.Renumber()
	for _, v := range m.vertices.snapshot() {
		v.ComputeNormal()
	}
}

// ComputeTangents refreshes triangle and vertex tangents.
func (m *Mesh) ComputeTangents() {
	for _, t := range m.triangles.snapshot() {
		t.ComputeTangent()
	}
	for _, v := range m.vertices.snapshot() {
		v.ComputeTangent()
	}
}
