package processing

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// BevelVertex cuts vertex off: each incident edge gets a point placed
// distance away from vertex measured along direction, every triangle of the
// fan becomes a quad, and the hole left by vertex is closed with one polygon
// facing direction. It returns the loop of new points in fan order.
func (p *Processing) BevelVertex(vertex *mesh.Vertex, distance float32, direction math.Vec3) ([]*mesh.Vertex, error) {
	direction = direction.Normalize()

	var border []*mesh.Vertex
	mids := make(map[mesh.EdgeKey]*mesh.Vertex)
	midpoint := func(other *mesh.Vertex) *mesh.Vertex {
		key := mesh.EdgeKeyOf(vertex, other)
		if mid, ok := mids[key]; ok {
			return mid
		}
		mid := p.mesh.AddVertex(mesh.MidName(vertex, other))
		k := distance / direction.Dot(vertex.Coord().Sub(other.Coord()))
		mid.Lerp(vertex, other, k)
		mids[key] = mid
		border = append(border, mid)
		return mid
	}

	for _, t := range vertex.TrianglesOrderedAround() {
		if !t.CycleVertexFirst(vertex) {
			return border, fmt.Errorf("bevel %s: %s: %w", vertex.Name(), t, ErrBrokenFan)
		}
		v1, v2 := t.Vertex1(), t.Vertex2()
		m1, m2 := midpoint(v1), midpoint(v2)

		p.mesh.DelTriangle(t)
		if err := p.mesh.AddQuad(v1, v2, m2, m1); err != nil {
			return border, fmt.Errorf("bevel %s: %w", vertex.Name(), err)
		}
		if _, err := p.mesh.AddTriangle(vertex, m1, m2); err != nil {
			return border, fmt.Errorf("bevel %s: %w", vertex.Name(), err)
		}
	}

	p.mesh.DelVertex(vertex)
	if err := p.mesh.AddPolygon(border, direction); err != nil {
		return border, fmt.Errorf("bevel %s: %w", vertex.Name(), err)
	}
	p.mesh.ComputeNormals()
	return border, nil
}
