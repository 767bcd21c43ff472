package processing

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// cloneSuffix is appended to the name of a vertex copied along a seam.
const cloneSuffix = "clone"

// regionInside returns the triangles on the left of the closed loop border.
func regionInside(border []*mesh.Vertex) ([]*mesh.Triangle, error) {
	halfEdges, err := mesh.HalfEdgesAlongBorder(border)
	if err != nil {
		return nil, err
	}
	return mesh.TrianglesInsideBorder(halfEdges), nil
}

// SplitBorder cuts the surface along border: the triangles on its left get
// their own copies of the border vertices, leaving a hard seam.
func (p *Processing) SplitBorder(border []*mesh.Vertex) error {
	if len(border) < 2 {
		return nil
	}
	triangles, err := regionInside(border)
	if err != nil {
		return fmt.Errorf("split border: %w", err)
	}

	clones := make([]*mesh.Vertex, len(border))
	for _, t := range triangles {
		for i, v := range border {
			if !t.ContainsVertex(v) {
				continue
			}
			if clones[i] == nil {
				clones[i] = v.Clone(cloneSuffix)
			}
			if err := t.ReplaceVertex(v, clones[i]); err != nil {
				return fmt.Errorf("split border: %w", err)
			}
		}
	}
	return nil
}

// ExtrudePolygon pushes the region enclosed by border along its mean normal
// by distance and joins the old and new loops with quads. It returns the
// new loop, or nil when the border encloses nothing.
func (p *Processing) ExtrudePolygon(border []*mesh.Vertex, distance float32) ([]*mesh.Vertex, error) {
	triangles, err := regionInside(border)
	if err != nil {
		return nil, fmt.Errorf("extrude polygon: %w", err)
	}
	if len(triangles) == 0 {
		return nil, nil
	}

	for _, t := range triangles {
		t.ComputeNormal()
	}
	offset := mesh.AverageNormals(triangles).Scale(distance)

	clones := make([]*mesh.Vertex, len(border))
	for i, v := range border {
		clones[i] = v.Clone(cloneSuffix)
	}
	for _, t := range triangles {
		for i, v := range border {
			if err := t.ReplaceVertex(v, clones[i]); err != nil {
				return nil, fmt.Errorf("extrude polygon: %w", err)
			}
		}
	}
	for _, v := range mesh.VerticesFromTriangles(triangles) {
		v.SetCoord(v.Coord().Add(offset))
	}

	n := len(border)
	for i := range border {
		a, a1 := border[i], clones[i]
		b, b1 := border[(i+1)%n], clones[(i+1)%n]
		if err := p.mesh.AddQuad(a, b, b1, a1); err != nil {
			return clones, fmt.Errorf("extrude polygon: %w", err)
		}
	}
	return clones, nil
}

// ExtrudeTriangle moves t along its normal by distance and builds the three
// side walls. t keeps its identity with new corners.
func (p *Processing) ExtrudeTriangle(t *mesh.Triangle, distance float32) (*mesh.Triangle, error) {
	t.ComputeNormal()
	offset := t.Normal().Scale(distance)

	vs := t.Vertices()
	var moved [3]*mesh.Vertex
	for i, v := range vs {
		moved[i] = v.Clone(cloneSuffix)
		moved[i].SetCoord(v.Coord().Add(offset))
	}
	for i, v := range vs {
		if err := t.ReplaceVertex(v, moved[i]); err != nil {
			return t, fmt.Errorf("extrude triangle: %w", err)
		}
	}
	for i := range vs {
		j := (i + 1) % 3
		if err := p.mesh.AddQuad(vs[i], vs[j], moved[j], moved[i]); err != nil {
			return t, fmt.Errorf("extrude triangle: %w", err)
		}
	}
	return t, nil
}
