package mesh

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
)

// MidName returns the name of the midpoint of p1 and p2. It is the same for
// (p1,p2) and (p2,p1).
func MidName(p1, p2 *Vertex) string {
	if p1.name < p2.name {
		return "m" + p1.name + p2.name
	}
	return "m" + p2.name + p1.name
}

// AverageNormals returns the area weighted mean of the triangle normals.
func AverageNormals(triangles []*Triangle) math.Vec3 {
	var sum math.Vec3
	for _, t := range triangles {
		sum = sum.ScaleAdd(t.normal, t.surface)
	}
	return sum.Normalize()
}

// AverageTangents returns the area weighted mean of the triangle tangents.
func AverageTangents(triangles []*Triangle) math.Vec3 {
	var sum math.Vec3
	for _, t := range triangles {
		sum = sum.ScaleAdd(t.tangent, t.surface)
	}
	return sum.Normalize()
}

// VerticesFromTriangles returns the distinct corners of the triangles in
// first-seen order.
func VerticesFromTriangles(triangles []*Triangle) []*Vertex {
	seen := make(map[*Vertex]struct{})
	var vertices []*Vertex
	for _, t := range triangles {
		for _, v := range t.Vertices() {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vertices = append(vertices, v)
		}
	}
	return vertices
}

// HalfEdgesAlongBorder returns the half-edges joining each vertex of a closed
// loop to the following one, the last one going back to the first.
func HalfEdgesAlongBorder(border []*Vertex) ([]*HalfEdge, error) {
	if len(border) == 0 {
		return nil, nil
	}
	halfEdges := make([]*HalfEdge, 0, len(border))
	for i, v := range border {
		next := border[(i+1)%len(border)]
		h := v.HalfEdgeTo(next)
		if h == nil {
			return nil, fmt.Errorf("border %s -> %s: %w", v.name, next.name, ErrNoHalfEdge)
		}
		halfEdges = append(halfEdges, h)
	}
	return halfEdges, nil
}

// TrianglesInsideBorder flood fills the triangles on the left of the border
// half-edges without crossing them. The border must be closed or go from a
// mesh boundary to another, otherwise the whole connected surface is returned.
func TrianglesInsideBorder(border []*HalfEdge) []*Triangle {
	if len(border) < 3 {
		return nil
	}
	fence := make(map[*HalfEdge]struct{}, len(border))
	for _, h := range border {
		fence[h] = struct{}{}
	}

	var triangles []*Triangle
	seen := make(map[*Triangle]struct{})
	stack := []*HalfEdge{border[0]}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t := h.triangle
		if t == nil {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		triangles = append(triangles, t)

		// push in reverse so that next is explored before next.next
		for _, side := range []*HalfEdge{h.next.next, h.next} {
			if _, stop := fence[side]; stop || side.opposite == nil {
				continue
			}
			stack = append(stack, side.opposite)
		}
	}
	return triangles
}

// Bounds is an axis aligned box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 { return b.Max.Sub(b.Min) }

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 { return b.Min.Lerp(b.Max, 0.5) }

// Bounds returns the box enclosing every vertex.
func (m *Mesh) Bounds() (Bounds, error) {
	vertices := m.vertices.snapshot()
	if len(vertices) == 0 {
		return Bounds{}, fmt.Errorf("%s: %w", m.name, ErrEmptyMesh)
	}
	b := Bounds{Min: vertices[0].Coord(), Max: vertices[0].Coord()}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v.Coord())
		b.Max = b.Max.Max(v.Coord())
	}
	return b, nil
}

// ComputeMinAABB returns the smallest coordinates of the vertices.
func (m *Mesh) ComputeMinAABB() (math.Vec3, error) {
	b, err := m.Bounds()
	return b.Min, err
}

// ComputeMaxAABB returns the largest coordinates of the vertices.
func (m *Mesh) ComputeMaxAABB() (math.Vec3, error) {
	b, err := m.Bounds()
	return b.Max, err
}

// CreateAABB builds a new closed box mesh around m, faces turned outward.
func (m *Mesh) CreateAABB() (*Mesh, error) {
	b, err := m.Bounds()
	if err != nil {
		return nil, err
	}
	return NewBox(m.name+"-aabb", b)
}

// NewBox builds the closed 8 vertex 12 triangle mesh of a box.
// Corner names use a capital letter for the max side of an axis.
func NewBox(name string, b Bounds) (*Mesh, error) {
	box := New(name)
	corner := func(name string, x, y, z float32) *Vertex {
		return box.AddVertex(name).SetCoord(math.Vec3{X: x, Y: y, Z: z})
	}
	lo, hi := b.Min, b.Max
	xyz := corner("xyz", lo.X, lo.Y, lo.Z)
	Xyz := corner("Xyz", hi.X, lo.Y, lo.Z)
	xYz := corner("xYz", lo.X, hi.Y, lo.Z)
	XYz := corner("XYz", hi.X, hi.Y, lo.Z)
	xyZ := corner("xyZ", lo.X, lo.Y, hi.Z)
	XyZ := corner("XyZ", hi.X, lo.Y, hi.Z)
	xYZ := corner("xYZ", lo.X, hi.Y, hi.Z)
	XYZ := corner("XYZ", hi.X, hi.Y, hi.Z)

	faces := [][4]*Vertex{
		{XyZ, Xyz, XYz, XYZ},
		{Xyz, xyz, xYz, XYz},
		{xyz, xyZ, xYZ, xYz},
		{xyZ, XyZ, XYZ, xYZ},
		{XYZ, XYz, xYz, xYZ},
		{Xyz, XyZ, xyZ, xyz},
	}
	for _, f := range faces {
		if err := box.AddQuad(f[0], f[1], f[2], f[3]); err != nil {
			return nil, err
		}
	}
	box.ComputeNormals()
	return box, nil
}
