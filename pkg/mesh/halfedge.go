package mesh

import (
	"fmt"
	"strings"
)

// HalfEdge is one directed side of a triangle. Its target is the origin of
// the next half-edge of the same triangle.
type HalfEdge struct {
	mesh     *Mesh
	origin   *Vertex
	triangle *Triangle
	edge     *Edge

	next     *HalfEdge // same triangle, starts at the target
	opposite *HalfEdge // reverse direction in the neighbour triangle, nil on a border
	sibling  *HalfEdge // next outgoing half-edge of the same origin
}

// newHalfEdge builds origin->target for triangle t and binds it to the
// reverse half-edge when there is a free one.
// canAddHalfEdge reports why origin->target cannot be added, if it cannot.
func canAddHalfEdge(origin, target *Vertex) error {
	if origin.HalfEdgeTo(target) != nil {
		return fmt.Errorf("%s -> %s: %w", origin.name, target.name, ErrDuplicateHalfEdge)
	}
	if other := target.HalfEdgeTo(origin); other != nil && other.opposite != nil {
		return fmt.Errorf("%s -> %s: %w", origin.name, target.name, ErrNonManifoldEdge)
	}
	return nil
}

func newHalfEdge(m *Mesh, origin, target *Vertex, t *Triangle) (*HalfEdge, error) {
	if err := canAddHalfEdge(origin, target); err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}
	other := target.HalfEdgeTo(origin)

	h := &HalfEdge{mesh: m, origin: origin, triangle: t}
	m.halfEdges.push(h)
	if other != nil {
		h.opposite = other
		other.opposite = h
		h.edge = other.edge
	} else {
		h.edge = newEdge(m, origin, target)
	}
	origin.linkSibling(h)
	return h, nil
}

func (h *HalfEdge) destroy(removeFromMesh bool) {
	if h.opposite != nil {
		h.opposite.opposite = nil
		h.opposite = nil
	} else if h.edge != nil {
		h.edge.destroy(true)
	}
	h.edge = nil
	h.next = nil
	h.origin.unlinkSibling(h)
	if h.mesh != nil && removeFromMesh {
		h.mesh.halfEdges.remove(h)
	}
	h.mesh = nil
	h.triangle = nil
}

// Mesh returns the owning mesh, nil once the half-edge is deleted.
func (h *HalfEdge) Mesh() *Mesh { return h.mesh }

// Origin returns the start vertex.
func (h *HalfEdge) Origin() *Vertex { return h.origin }

// Target returns the end vertex, nil while the triangle is being built.
func (h *HalfEdge) Target() *Vertex {
	if h.next == nil {
		return nil
	}
	return h.next.origin
}

// Next returns the following half-edge in the triangle.
func (h *HalfEdge) Next() *HalfEdge { return h.next }

// Opposite returns the reverse half-edge, nil on a border.
func (h *HalfEdge) Opposite() *HalfEdge { return h.opposite }

// Sibling returns the next half-edge leaving the same origin.
func (h *HalfEdge) Sibling() *HalfEdge { return h.sibling }

// Triangle returns the triangle on the left.
func (h *HalfEdge) Triangle() *Triangle { return h.triangle }

// Edge returns the shared edge.
func (h *HalfEdge) Edge() *Edge { return h.edge }

// IsBorder reports whether the half-edge has no opposite.
func (h *HalfEdge) IsBorder() bool { return h.opposite == nil }

func (h *HalfEdge) String() string {
	if h.origin == nil {
		return "HalfEdge(?,?)"
	}
	if t := h.Target(); t != nil {
		return fmt.Sprintf("HalfEdge(%s,%s)", h.origin.name, t.name)
	}
	return fmt.Sprintf("HalfEdge(%s,?)", h.origin.name)
}

// FullString describes every link of the half-edge.
func (h *HalfEdge) FullString() string {
	var b strings.Builder
	b.WriteString(h.String())
	fmt.Fprintf(&b, ", orig=%s", nameOf(h.origin))
	fmt.Fprintf(&b, ", tri=%s", nameOf(h.triangle))
	fmt.Fprintf(&b, ", edge=%s", nameOf(h.edge))
	fmt.Fprintf(&b, ", sib=%s", nameOf(h.sibling))
	fmt.Fprintf(&b, ", next=%s", nameOf(h.next))
	fmt.Fprintf(&b, ", oppo=%s", nameOf(h.opposite))
	return b.String()
}

func nameOf[T interface {
	comparable
	fmt.Stringer
}](x T) string {
	var zero T
	if x == zero {
		return "nil"
	}
	return x.String()
}

// CanCollapse reports whether merging the target of h into its origin keeps
// the surface manifold: the two endpoints may share no neighbour other than
// the apexes of the triangles around h.
func (h *HalfEdge) CanCollapse() bool {
	origin, target := h.origin, h.Target()
	if target == nil {
		return false
	}
	apexes := 1
	if h.opposite != nil {
		apexes = 2
	}
	shared := 0
	targetNeighbors := target.NeighborVertices()
	for _, n := range origin.NeighborVertices() {
		for _, m := range targetNeighbors {
			if n == m {
				shared++
				break
			}
		}
	}
	return shared == apexes
}

// collapseTriangle deletes the triangle of h and stitches together the
// opposites of its two other sides.
func collapseTriangle(h *HalfEdge) {
	m := h.mesh
	origin := h.origin
	apex := h.next.next.origin
	oppN := h.next.opposite
	oppNN := h.next.next.opposite

	if oppN != nil {
		oppN.edge.destroy(true)
	}
	if oppNN != nil {
		oppNN.edge.destroy(true)
	}
	h.triangle.destroy(true)

	if oppN == nil && oppNN == nil {
		return
	}
	edge := newEdge(m, origin, apex)
	if oppN != nil {
		oppN.opposite = oppNN
		oppN.edge = edge
	}
	if oppNN != nil {
		oppNN.opposite = oppN
		oppNN.edge = edge
	}
}

// Collapse merges the target of h into its origin. The one or two triangles
// along h disappear and every half-edge of the target is moved to the
// origin. The target is left isolated; the caller deletes it.
func Collapse(h *HalfEdge) {
	origin := h.origin
	target := h.Target()

	if h.opposite != nil {
		collapseTriangle(h.opposite)
	}
	collapseTriangle(h)

	for other := target.halfEdge; other != nil; {
		nextOther := other.sibling
		target.unlinkSibling(other)
		origin.linkSibling(other)
		other.origin = origin
		other.edge.replaceVertex(target, origin)
		// the incoming border half-edge has its own edge
		other.next.next.edge.replaceVertex(target, origin)
		other = nextOther
	}
}

// Flip swaps the diagonal of the quad made by the two triangles sharing h.
// Triangles (P,Q,R) and (Q,P,S) around h=P->Q become (S,R,P) and (R,S,Q).
// A border half-edge is left as is.
func (h *HalfEdge) Flip() error {
	opposite := h.opposite
	if opposite == nil {
		return nil
	}
	hn := h.next
	hnn := hn.next
	on := opposite.next
	onn := on.next

	r := hnn.origin
	s := onn.origin
	if r == s {
		return fmt.Errorf("flip %s between two faces of %s: %w", h, h.triangle, ErrDegenerateTriangle)
	}
	if s.HalfEdgeTo(r) != nil || r.HalfEdgeTo(s) != nil {
		return fmt.Errorf("flip %s to %s-%s: %w", h, s.name, r.name, ErrDuplicateHalfEdge)
	}

	t1, t2 := h.triangle, opposite.triangle

	h.next = hnn
	hnn.next = on
	on.next = h

	opposite.next = onn
	onn.next = hn
	hn.next = opposite

	on.triangle = t1
	hn.triangle = t2
	t1.halfEdge = h
	t2.halfEdge = opposite

	h.origin.unlinkSibling(h)
	opposite.origin.unlinkSibling(opposite)
	h.origin = s
	opposite.origin = r
	h.origin.linkSibling(h)
	opposite.origin.linkSibling(opposite)

	h.edge.destroy(true)
	h.edge = newEdge(h.mesh, h.origin, opposite.origin)
	opposite.edge = h.edge
	return nil
}
