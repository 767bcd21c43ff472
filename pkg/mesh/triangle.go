package mesh

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
)

// Triangle is a cycle of three half-edges. Normal, tangent, center, area and
// plane offset are caches refreshed by ComputeNormal and ComputeTangent.
type Triangle struct {
	mesh     *Mesh
	halfEdge *HalfEdge

	normal  math.Vec3
	tangent math.Vec3
	center  math.Vec3
	surface float32
	w       float32
}

func newTriangle(m *Mesh, v1, v2, v3 *Vertex) (*Triangle, error) {
	if v1 == nil || v2 == nil || v3 == nil || v1 == v2 || v2 == v3 || v3 == v1 {
		return nil, fmt.Errorf("%s: triangle(%s,%s,%s): %w", m.name, nameOf(v1), nameOf(v2), nameOf(v3), ErrDegenerateTriangle)
	}
	t := &Triangle{mesh: m}
	he12, err := newHalfEdge(m, v1, v2, t)
	if err != nil {
		return nil, err
	}
	he23, err := newHalfEdge(m, v2, v3, t)
	if err != nil {
		he12.destroy(true)
		return nil, err
	}
	he31, err := newHalfEdge(m, v3, v1, t)
	if err != nil {
		he23.destroy(true)
		he12.destroy(true)
		return nil, err
	}
	he12.next = he23
	he23.next = he31
	he31.next = he12
	t.halfEdge = he12
	m.triangles.push(t)
	return t, nil
}

func (t *Triangle) destroy(removeFromMesh bool) {
	if t.mesh != nil && removeFromMesh {
		t.mesh.triangles.remove(t)
	}
	t.mesh = nil
	if h := t.halfEdge; h != nil {
		hn, hnn := h.next, h.next.next
		hnn.destroy(true)
		hn.destroy(true)
		h.destroy(true)
	}
	t.halfEdge = nil
}

// Mesh returns the owning mesh, nil once the triangle is deleted.
func (t *Triangle) Mesh() *Mesh { return t.mesh }

// HalfEdge returns the first half-edge of the cycle.
func (t *Triangle) HalfEdge() *HalfEdge { return t.halfEdge }

// Vertex returns vertex n (0, 1 or 2) counted from the first half-edge.
func (t *Triangle) Vertex(n int) *Vertex {
	if n < 0 || n > 2 {
		return nil
	}
	h := t.halfEdge
	for i := 0; i < n && h != nil; i++ {
		h = h.next
	}
	if h == nil {
		return nil
	}
	return h.origin
}

// Vertex0 returns the origin of the first half-edge.
func (t *Triangle) Vertex0() *Vertex { return t.Vertex(0) }

// Vertex1 returns the second vertex.
func (t *Triangle) Vertex1() *Vertex { return t.Vertex(1) }

// Vertex2 returns the third vertex.
func (t *Triangle) Vertex2() *Vertex { return t.Vertex(2) }

// Vertices returns the three vertices in cycle order.
func (t *Triangle) Vertices() [3]*Vertex {
	h := t.halfEdge
	return [3]*Vertex{h.origin, h.next.origin, h.next.next.origin}
}

// Normal returns the cached unit normal.
func (t *Triangle) Normal() math.Vec3 { return t.normal }

// Tangent returns the cached unit tangent.
func (t *Triangle) Tangent() math.Vec3 { return t.tangent }

// Center returns the cached centroid.
func (t *Triangle) Center() math.Vec3 { return t.center }

// Surface returns the cached area.
func (t *Triangle) Surface() float32 { return t.surface }

// W returns the cached plane offset, -N.A.
func (t *Triangle) W() float32 { return t.w }

// SetW overrides the plane offset.
func (t *Triangle) SetW(w float32) { t.w = w }

// ComputeNormal refreshes centroid, normal, area and plane offset.
func (t *Triangle) ComputeNormal() {
	vs := t.Vertices()
	a, b, c := vs[0].Coord(), vs[1].Coord(), vs[2].Coord()
	ab := b.Sub(a)
	ac := c.Sub(a)

	t.center = a.Add(b).Add(c).Scale(1.0 / 3.0)
	n := ab.Cross(ac)
	t.surface = 0.5 * n.Length()
	t.normal = n.Normalize()
	t.w = -t.normal.Dot(a)
}

// ComputeTangent refreshes the tangent from the t texture coordinate.
func (t *Triangle) ComputeTangent() {
	vs := t.Vertices()
	a, b, c := vs[0].Coord(), vs[1].Coord(), vs[2].Coord()
	ab := b.Sub(a)
	ac := c.Sub(a)

	ta := vs[0].TexCoord().Y
	tAB := vs[1].TexCoord().Y - ta
	tAC := vs[2].TexCoord().Y - ta

	t.tangent = ab.Scale(tAC).Sub(ac.Scale(tAB)).Normalize()
}

// CycleVertexFirst rotates the cycle so that v comes first.
func (t *Triangle) CycleVertexFirst(v *Vertex) bool {
	for i := 0; i < 3; i++ {
		if t.halfEdge.origin == v {
			return true
		}
		t.halfEdge = t.halfEdge.next
	}
	return false
}

// ContainsVertex reports whether v is a corner of t.
func (t *Triangle) ContainsVertex(v *Vertex) bool {
	vs := t.Vertices()
	return vs[0] == v || vs[1] == v || vs[2] == v
}

// ContainsEdge reports whether t has the half-edge v1->v2. On success v1 is
// moved first.
func (t *Triangle) ContainsEdge(v1, v2 *Vertex) bool {
	if !t.CycleVertexFirst(v1) {
		return false
	}
	return t.halfEdge.next.origin == v2
}

// ReplaceVertex rebuilds the two half-edges touching old so that they use v.
// The triangle is left untouched when the new half-edges cannot be built.
func (t *Triangle) ReplaceVertex(old, v *Vertex) error {
	if old == v || !t.CycleVertexFirst(old) {
		return nil
	}
	b := t.Vertex1()
	c := t.Vertex2()
	if v == b || v == c {
		return fmt.Errorf("replace %s by %s in %s: %w", old.name, v.name, t, ErrDegenerateTriangle)
	}
	if err := canAddHalfEdge(v, b); err != nil {
		return fmt.Errorf("replace %s by %s: %w", old.name, v.name, err)
	}
	if err := canAddHalfEdge(c, v); err != nil {
		return fmt.Errorf("replace %s by %s: %w", old.name, v.name, err)
	}

	ab := t.halfEdge
	bc := ab.next
	ca := bc.next

	ab.destroy(true)
	ca.destroy(true)
	bc.next = nil

	ab, err := newHalfEdge(t.mesh, v, b, t)
	if err != nil {
		return fmt.Errorf("replace %s by %s: %w", old.name, v.name, err)
	}
	ca, err = newHalfEdge(t.mesh, c, v, t)
	if err != nil {
		return fmt.Errorf("replace %s by %s: %w", old.name, v.name, err)
	}
	ab.next = bc
	bc.next = ca
	ca.next = ab
	t.halfEdge = ab
	return nil
}

func (t *Triangle) String() string {
	return fmt.Sprintf("Triangle(%s,%s,%s)", nameOf(t.Vertex0()), nameOf(t.Vertex1()), nameOf(t.Vertex2()))
}

// FullString adds the first half-edge.
func (t *Triangle) FullString() string {
	if t.halfEdge == nil {
		return t.String()
	}
	return t.String() + " -> " + t.halfEdge.String()
}
