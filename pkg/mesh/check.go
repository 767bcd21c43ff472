package mesh

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Check validates the links of the mesh and logs every problem found. It
// returns false on the first structural error. Vertices outside of any
// triangle are only reported, or deleted when repair is set.
//
// Not every possible corruption is detected, only the most harmful ones.
func (m *Mesh) Check(repair bool) bool {
	l := log.With(zap.String("mesh", m.name))

	triangles := m.triangles.snapshot()
	for it, t := range triangles {
		switch {
		case t.mesh != m:
			l.Error("triangle does not belong to the mesh", zap.Int("triangle", it))
			return false
		case t.halfEdge == nil || !m.halfEdges.contains(t.halfEdge):
			l.Error("half-edge of triangle does not belong to the mesh", zap.Int("triangle", it))
			return false
		case t.halfEdge.triangle != t:
			l.Error("half-edge of triangle does not point to it", zap.Int("triangle", it))
			return false
		}
		vs := t.Vertices()
		if vs[0] == vs[1] || vs[0] == vs[2] || vs[1] == vs[2] {
			l.Error("triangle vertices are not distinct", zap.Int("triangle", it), zap.Stringer("t", t))
			return false
		}
		for i, v := range vs {
			if !m.vertices.contains(v) {
				l.Error("triangle vertex does not belong to the mesh",
					zap.Int("triangle", it), zap.Int("corner", i), zap.String("vertex", v.name))
				return false
			}
		}
	}

	var orphans []*Vertex
	for iv, v := range m.vertices.snapshot() {
		if v.mesh != m {
			l.Error("vertex does not belong to the mesh", zap.Int("vertex", iv), zap.String("name", v.name))
			return false
		}
		if v.halfEdge == nil {
			if repair {
				orphans = append(orphans, v)
			} else {
				l.Error("vertex belongs to no triangle", zap.String("name", v.name))
			}
			continue
		}
		if !m.halfEdges.contains(v.halfEdge) {
			l.Error("half-edge of vertex does not belong to the mesh", zap.String("name", v.name))
			return false
		}
		if !m.checkRing(l, v) {
			return false
		}
	}
	for _, v := range orphans {
		l.Warn("deleting orphan vertex", zap.String("name", v.name))
		m.DelVertex(v)
	}

	pairs := make(map[[2]*Vertex]*HalfEdge)
	for id, h := range m.halfEdges.snapshot() {
		if !m.checkHalfEdge(l, id, h) {
			return false
		}
		key := [2]*Vertex{h.origin, h.Target()}
		if other, ok := pairs[key]; ok {
			l.Error("duplicate half-edge", zap.Stringer("h", h), zap.Stringer("other", other))
			return false
		}
		pairs[key] = h
	}

	for ia, e := range m.edges.snapshot() {
		if e.mesh != m {
			l.Error("edge does not belong to the mesh", zap.Int("edge", ia))
			return false
		}
		if e.vertex2.number < e.vertex1.number {
			l.Error("edge endpoints are not ordered", zap.Stringer("edge", e))
			return false
		}
	}

	l.Info("mesh checked OK")
	return true
}

// checkRing walks the sibling ring of v.
func (m *Mesh) checkRing(l *zap.Logger, v *Vertex) bool {
	limit := m.halfEdges.len()
	n := 0
	for h := v.halfEdge; h != nil; h = h.sibling {
		if h.origin != v {
			l.Error("half-edge chained to a vertex it does not start from",
				zap.Stringer("h", h), zap.String("vertex", v.name))
			return false
		}
		n++
		if n > limit {
			l.Error("sibling ring of vertex is a cycle", zap.String("vertex", v.name))
			return false
		}
	}
	return true
}

func (m *Mesh) checkHalfEdge(l *zap.Logger, id int, h *HalfEdge) bool {
	fail := func(msg string) bool {
		l.Error(msg, zap.Int("halfedge", id), zap.Stringer("h", h))
		return false
	}
	if h.mesh != m {
		return fail("half-edge does not belong to the mesh")
	}
	if !m.vertices.contains(h.origin) {
		return fail("origin of half-edge does not belong to the mesh")
	}
	if h.triangle == nil || !m.triangles.contains(h.triangle) {
		return fail("triangle of half-edge does not belong to the mesh")
	}
	if h.edge == nil || !m.edges.contains(h.edge) {
		return fail("edge of half-edge does not belong to the mesh")
	}
	if o := h.opposite; o != nil {
		switch {
		case !m.halfEdges.contains(o):
			return fail("opposite half-edge does not belong to the mesh")
		case o.opposite != h:
			return fail("opposite of opposite half-edge is not itself")
		case o.edge != h.edge:
			return fail("opposite half-edges do not share their edge")
		}
	}
	n := h.next
	switch {
	case n == nil:
		return fail("next half-edge is nil")
	case !m.halfEdges.contains(n):
		return fail("next half-edge does not belong to the mesh")
	case n.next == nil:
		return fail("second next half-edge is nil")
	case !m.halfEdges.contains(n.next):
		return fail("second next half-edge does not belong to the mesh")
	case n.next.next != h:
		return fail("third next half-edge is not itself")
	}
	if !h.edge.Contains(h.origin) || !h.edge.Contains(n.origin) {
		return fail("edge of half-edge has other endpoints")
	}
	return true
}

// Dump writes every vertex, triangle and half-edge of the mesh.
func (m *Mesh) Dump(w io.Writer) error {
	for _, v := range m.vertices.snapshot() {
		if _, err := fmt.Fprintln(w, v.FullString()); err != nil {
			return err
		}
	}
	for _, t := range m.triangles.snapshot() {
		if _, err := fmt.Fprintln(w, t.FullString()); err != nil {
			return err
		}
	}
	for _, h := range m.halfEdges.snapshot() {
		if _, err := fmt.Fprintln(w, h.FullString()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
