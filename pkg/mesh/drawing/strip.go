package drawing

import (
	"slices"

	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// strip is a triangle strip: triangle i is made of vertices i, i+1, i+2,
// every odd triangle being drawn in reverse to keep the winding.
type strip []*mesh.Vertex

// third returns the corner of tri following the directed edge a->b.
func third(tri []*mesh.Vertex, a, b *mesh.Vertex) (*mesh.Vertex, bool) {
	for i := range 3 {
		if tri[i] == a && tri[(i+1)%3] == b {
			return tri[(i+2)%3], true
		}
	}
	return nil, false
}

// appendTriangle glues tri to the end of s when it shares the right edge
// with the last triangle of s, reversing or rotating s when that helps.
func (s *strip) appendTriangle(tri []*mesh.Vertex) bool {
	l := *s
	n := len(l)

	// a single triangle may be rotated; the checks favour grids built row by row
	if n == 3 {
		v0, v1, v2 := l[0], l[1], l[2]
		for _, order := range [3][3]*mesh.Vertex{{v0, v1, v2}, {v2, v0, v1}, {v1, v2, v0}} {
			if w, ok := third(tri, order[2], order[1]); ok {
				*s = strip{order[0], order[1], order[2], w}
				return true
			}
		}
		return false
	}

	if n%2 == 0 {
		if w, ok := third(tri, l[n-2], l[n-1]); ok {
			*s = append(l, w)
			return true
		}
		// an even strip keeps its winding when reversed
		if w, ok := third(tri, l[1], l[0]); ok {
			slices.Reverse(l)
			*s = append(l, w)
			return true
		}
		return false
	}
	if w, ok := third(tri, l[n-1], l[n-2]); ok {
		*s = append(l, w)
		return true
	}
	return false
}

// concat appends other to s when their ends match. other must not be used
// afterwards.
func (s *strip) concat(other strip) bool {
	l := *s
	n, m := len(l), len(other)
	if m == 3 {
		return s.appendTriangle(other)
	}

	if n%2 == 0 {
		if l[n-2] == other[0] && l[n-1] == other[1] {
			*s = append(l, other[2:]...)
			return true
		}
		if m%2 == 0 {
			if l[n-2] == other[m-1] && l[n-1] == other[m-2] {
				slices.Reverse(other)
				*s = append(l, other[2:]...)
				return true
			}
			if l[0] == other[m-2] && l[1] == other[m-1] {
				*s = append(slices.Clone(other), l[2:]...)
				return true
			}
		}
	}

	if m%2 == 0 {
		if l[0] == other[m-2] && l[1] == other[m-1] {
			*s = append(slices.Clone(other), l[2:]...)
			return true
		}
		if l[0] == other[1] && l[1] == other[0] {
			slices.Reverse(other)
			*s = append(slices.Clone(other), l[2:]...)
			return true
		}
	}
	return false
}

// TriangleStrips greedily chains the triangles into strips and joins the
// strips with degenerate triangles, so the result draws in one
// triangle-strip call. Each strip starts at an even index.
func TriangleStrips(m *mesh.Mesh) []uint32 {
	m.Renumber()

	var strips []strip
	for _, t := range m.Triangles() {
		vs := t.Vertices()
		tri := vs[:]
		added := false
		count := len(strips)
		for i := 0; i < count; i++ {
			if !strips[i].appendTriangle(tri) {
				continue
			}
			for j := i + 1; j < count; j++ {
				if strips[i].concat(strips[j]) {
					strips = slices.Delete(strips, j, j+1)
					break
				}
			}
			added = true
			break
		}
		if !added {
			strips = slices.Insert(strips, 0, strip{vs[0], vs[1], vs[2]})
		}
	}

	var indices []uint32
	for i, s := range strips {
		if i > 0 {
			prev := uint32(strips[i-1][len(strips[i-1])-1].Number())
			if len(indices)%2 == 1 {
				indices = append(indices, prev)
			}
			indices = append(indices, prev, uint32(s[0].Number()))
		}
		for _, v := range s {
			indices = append(indices, uint32(v.Number()))
		}
	}

	mesh.Logger().Debug("triangle strips", zap.String("mesh", m.Name()),
		zap.Int("strips", len(strips)), zap.Int("indices", len(indices)),
		zap.Int("list_indices", 3*m.TriangleCount()))
	return indices
}
