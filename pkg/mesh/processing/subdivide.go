package processing

import (
	"fmt"
	"slices"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// subdivider splits triangles recursively. Midpoints are shared between
// the triangles of one SubdivideAll call.
type subdivider struct {
	mesh   *mesh.Mesh
	smooth float32
	mids   map[mesh.EdgeKey]*mesh.Vertex
}

// SubdivideAll splits each triangle into 4, steps times, so every input
// triangle yields 4^steps triangles. With smooth > 0 the midpoints follow a
// Hermite curve built from the end normals, smooth scaling the tangents;
// otherwise they lie on the edges. It returns the resulting triangles.
func (p *Processing) SubdivideAll(triangles []*mesh.Triangle, steps int, smooth float32) ([]*mesh.Triangle, error) {
	if len(triangles) == 0 {
		return nil, nil
	}
	if steps <= 0 {
		return triangles, nil
	}
	s := &subdivider{
		mesh:   p.mesh,
		smooth: smooth,
		mids:   make(map[mesh.EdgeKey]*mesh.Vertex),
	}
	var result []*mesh.Triangle
	for _, t := range slices.Clone(triangles) {
		sub, err := s.subdivide(t, steps)
		result = append(result, sub...)
		if err != nil {
			return result, fmt.Errorf("subdivide: %w", err)
		}
	}
	return result, nil
}

func (s *subdivider) subdivide(t *mesh.Triangle, steps int) ([]*mesh.Triangle, error) {
	if steps <= 0 {
		return []*mesh.Triangle{t}, nil
	}
	steps--

	corners := t.Vertices()
	var mids [3]*mesh.Vertex
	for i := range corners {
		mids[i] = s.midpoint(corners[i], corners[(i+1)%3])
	}

	s.mesh.DelTriangle(t)

	children := [4][3]*mesh.Vertex{
		{corners[0], mids[0], mids[2]},
		{corners[1], mids[1], mids[0]},
		{corners[2], mids[2], mids[1]},
		{mids[0], mids[1], mids[2]},
	}
	var result []*mesh.Triangle
	for _, c := range children {
		child, err := s.mesh.AddTriangle(c[0], c[1], c[2])
		if err != nil {
			return result, err
		}
		sub, err := s.subdivide(child, steps)
		result = append(result, sub...)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *subdivider) midpoint(s0, s1 *mesh.Vertex) *mesh.Vertex {
	key := mesh.EdgeKeyOf(s0, s1)
	if m, ok := s.mids[key]; ok {
		return m
	}
	m := s.mesh.AddVertex(mesh.MidName(s0, s1))
	if s.smooth > 0 {
		chord := s1.Coord().Sub(s0.Coord()).Scale(s.smooth)
		n0 := s0.Normal()
		t0 := n0.Cross(chord.Cross(n0))
		n1 := s1.Normal()
		t1 := n1.Cross(chord.Cross(n1))
		m.Hermite(s0, t0, s1, t1, 0.5)
	} else {
		m.Lerp(s0, s1, 0.5)
	}
	s.mids[key] = m
	return m
}
