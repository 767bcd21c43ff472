package mesh

import (
	"slices"
	"strings"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
)

// Attribute identifies one of the per-vertex 4-component slots.
type Attribute int

// Vertex attribute slots. Unused slots stay zero.
const (
	AttrPosition Attribute = iota
	AttrColor
	AttrNormal
	AttrTangent
	AttrTexCoord
	AttrMorphPosition
	AttrMorphNormal
	AttrBoneIDs
	AttrBoneWeights

	AttributeCount
)

var attributeNames = [AttributeCount]string{
	"position", "color", "normal", "tangent", "texcoord",
	"morph_position", "morph_normal", "bone_ids", "bone_weights",
}

func (a Attribute) String() string {
	if a < 0 || a >= AttributeCount {
		return "unknown"
	}
	return attributeNames[a]
}

// Vertex is a mesh point with its attributes and the head of its ring of
// outgoing half-edges.
type Vertex struct {
	mesh       *Mesh
	name       string
	number     int
	attributes [AttributeCount]math.Vec4
	halfEdge   *HalfEdge

	// Simplification scratch state, valid only while a reduction runs.
	Quadric        *Quadric
	CollapseTarget *Vertex
	CollapseCost   float32
}

// Mesh returns the owning mesh, nil once the vertex is deleted.
func (v *Vertex) Mesh() *Mesh { return v.mesh }

// Name returns the vertex name.
func (v *Vertex) Name() string { return v.name }

// Number returns the vertex index in drawing buffers. See Mesh.Renumber.
func (v *Vertex) Number() int { return v.number }

// SetNumber overrides the vertex index.
func (v *Vertex) SetNumber(n int) { v.number = n }

// HalfEdge returns the first outgoing half-edge, nil for an isolated vertex.
func (v *Vertex) HalfEdge() *HalfEdge { return v.halfEdge }

// IsIsolated reports whether the vertex belongs to no triangle.
func (v *Vertex) IsIsolated() bool { return v.halfEdge == nil }

// Coord returns the position.
func (v *Vertex) Coord() math.Vec3 { return v.attributes[AttrPosition].XYZ() }

// SetCoord sets the position, w is forced to 1.
func (v *Vertex) SetCoord(c math.Vec3) *Vertex {
	v.attributes[AttrPosition] = math.Vec4From3(c, 1)
	return v
}

// Color returns the RGBA color.
func (v *Vertex) Color() math.Vec4 { return v.attributes[AttrColor] }

// SetColor sets the RGBA color.
func (v *Vertex) SetColor(rgba math.Vec4) *Vertex {
	v.attributes[AttrColor] = rgba
	return v
}

// SetColorRGB sets an opaque color.
func (v *Vertex) SetColorRGB(rgb math.Vec3) *Vertex {
	v.attributes[AttrColor] = math.Vec4From3(rgb, 1)
	return v
}

// Normal returns the vertex normal.
func (v *Vertex) Normal() math.Vec3 { return v.attributes[AttrNormal].XYZ() }

// SetNormal sets the vertex normal.
func (v *Vertex) SetNormal(n math.Vec3) *Vertex {
	v.attributes[AttrNormal] = v.attributes[AttrNormal].WithXYZ(n)
	return v
}

// Tangent returns the vertex tangent.
func (v *Vertex) Tangent() math.Vec3 { return v.attributes[AttrTangent].XYZ() }

// TexCoord returns the texture coordinates.
func (v *Vertex) TexCoord() math.Vec2 { return v.attributes[AttrTexCoord].XY() }

// SetTexCoord sets the texture coordinates.
func (v *Vertex) SetTexCoord(uv math.Vec2) *Vertex {
	a := v.attributes[AttrTexCoord]
	a[0], a[1] = uv.X, uv.Y
	v.attributes[AttrTexCoord] = a
	return v
}

// Attribute returns a raw attribute slot.
func (v *Vertex) Attribute(id Attribute) math.Vec4 { return v.attributes[id] }

// SetAttribute overwrites a raw attribute slot.
func (v *Vertex) SetAttribute(id Attribute, value math.Vec4) *Vertex {
	v.attributes[id] = value
	return v
}

func (v *Vertex) linkSibling(h *HalfEdge) {
	h.sibling = v.halfEdge
	v.halfEdge = h
}

func (v *Vertex) unlinkSibling(h *HalfEdge) {
	if v.halfEdge == h {
		v.halfEdge = h.sibling
	} else {
		for other := v.halfEdge; other != nil; other = other.sibling {
			if other.sibling == h {
				other.sibling = h.sibling
				break
			}
		}
	}
	h.sibling = nil
}

// HalfEdgeTo returns the half-edge going from v to other, or nil.
func (v *Vertex) HalfEdgeTo(other *Vertex) *HalfEdge {
	for h := v.halfEdge; h != nil; h = h.sibling {
		if h.Target() == other {
			return h
		}
	}
	return nil
}

// TriangleLeftTo returns the triangle on the left of v->other.
func (v *Vertex) TriangleLeftTo(other *Vertex) *Triangle {
	h := v.HalfEdgeTo(other)
	if h == nil {
		return nil
	}
	return h.triangle
}

// TriangleRightTo returns the triangle on the right of v->other.
func (v *Vertex) TriangleRightTo(other *Vertex) *Triangle {
	h := v.HalfEdgeTo(other)
	if h == nil || h.opposite == nil {
		return nil
	}
	return h.opposite.triangle
}

// TrianglesAround returns every triangle using v, in sibling ring order.
func (v *Vertex) TrianglesAround() []*Triangle {
	var triangles []*Triangle
	for h := v.halfEdge; h != nil; h = h.sibling {
		triangles = append(triangles, h.triangle)
	}
	return triangles
}

// TrianglesOrderedAround walks the fan of v, each step going to the
// triangle across the incoming edge of the current one. On a border the walk
// stops at the first open edge, so the result can be partial.
func (v *Vertex) TrianglesOrderedAround() []*Triangle {
	first := v.halfEdge
	if first == nil {
		return nil
	}
	var triangles []*Triangle
	h := first
	for {
		triangles = append(triangles, h.triangle)
		incoming := h.next.next
		if incoming.opposite == nil {
			break
		}
		h = incoming.opposite
		if h == first {
			break
		}
		if len(triangles) > v.ringLength() {
			break
		}
	}
	return triangles
}

func (v *Vertex) ringLength() int {
	n := 0
	for h := v.halfEdge; h != nil; h = h.sibling {
		n++
	}
	return n
}

// NeighborVertices returns the vertices sharing a triangle with v, sorted by number.
func (v *Vertex) NeighborVertices() []*Vertex {
	var neighbors []*Vertex
	for h := v.halfEdge; h != nil; h = h.sibling {
		for _, other := range h.triangle.Vertices() {
			if other != v && !slices.Contains(neighbors, other) {
				neighbors = append(neighbors, other)
			}
		}
	}
	slices.SortStableFunc(neighbors, func(a, b *Vertex) int { return a.number - b.number })
	return neighbors
}

// ComputeNormal sets the normal to the area weighted average of the
// incident triangle normals. Triangle normals must be up to date.
func (v *Vertex) ComputeNormal() {
	var sum math.Vec3
	for h := v.halfEdge; h != nil; h = h.sibling {
		sum = sum.ScaleAdd(h.triangle.normal, h.triangle.surface)
	}
	v.SetNormal(sum.Normalize())
}

// ComputeTangent does the same as ComputeNormal for tangents.
func (v *Vertex) ComputeTangent() {
	var sum math.Vec3
	for h := v.halfEdge; h != nil; h = h.sibling {
		sum = sum.ScaleAdd(h.triangle.tangent, h.triangle.surface)
	}
	v.attributes[AttrTangent] = v.attributes[AttrTangent].WithXYZ(sum.Normalize())
}

// Clone adds a copy of v to its mesh, named after v plus suffix.
func (v *Vertex) Clone(suffix string) *Vertex {
	c := v.mesh.AddVertex(v.name + suffix)
	c.attributes = v.attributes
	return c
}

// Lerp sets every attribute of v to the linear blend of v0 and v1.
func (v *Vertex) Lerp(v0, v1 *Vertex, k float32) {
	for i := range v.attributes {
		v.attributes[i] = v0.attributes[i].Lerp(v1.attributes[i], k)
	}
	v.normalizeDirections()
}

// Hermite places v on the Hermite curve between v0 and v1 with tangents t0
// and t1. Other attributes are blended linearly.
func (v *Vertex) Hermite(v0 *Vertex, t0 math.Vec3, v1 *Vertex, t1 math.Vec3, k float32) {
	for i := range v.attributes {
		v.attributes[i] = v0.attributes[i].Lerp(v1.attributes[i], k)
	}
	v.SetCoord(math.Hermite(v0.Coord(), t0, v1.Coord(), t1, k))
	v.normalizeDirections()
}

func (v *Vertex) normalizeDirections() {
	for _, id := range []Attribute{AttrNormal, AttrTangent, AttrMorphNormal} {
		v.attributes[id] = v.attributes[id].WithXYZ(v.attributes[id].XYZ().Normalize())
	}
}

func (v *Vertex) String() string {
	return v.name
}

// FullString lists the outgoing half-edges too.
func (v *Vertex) FullString() string {
	var b strings.Builder
	b.WriteString(v.name)
	for h := v.halfEdge; h != nil; h = h.sibling {
		b.WriteString(" -> ")
		b.WriteString(h.String())
	}
	return b.String()
}
