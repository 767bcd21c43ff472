// Package drawing flattens a mesh into the arrays a renderer uploads:
// interleaved vertex attributes, index lists for triangles, edges and
// strips, and line vertices for normal visualization.
//
// Indices are vertex numbers, so every function here renumbers the mesh
// first.
package drawing

import (
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// Components returns how many floats attribute a takes in a vertex buffer.
func Components(a mesh.Attribute) int {
	switch a {
	case mesh.AttrTexCoord:
		return 2
	case mesh.AttrColor, mesh.AttrBoneIDs, mesh.AttrBoneWeights:
		return 4
	default:
		return 3
	}
}

// Interleave packs the requested attributes of every vertex, in vertex
// number order. stride is the number of floats per vertex. Without attrs
// only positions are packed.
func Interleave(m *mesh.Mesh, attrs ...mesh.Attribute) (data []float32, stride int) {
	if len(attrs) == 0 {
		attrs = []mesh.Attribute{mesh.AttrPosition}
	}
	for _, a := range attrs {
		stride += Components(a)
	}
	m.Renumber()

	vertices := m.Vertices()
	data = make([]float32, 0, stride*len(vertices))
	for _, v := range vertices {
		for _, a := range attrs {
			value := v.Attribute(a)
			data = append(data, value[:Components(a)]...)
		}
	}
	return data, stride
}

// TriangleIndices returns three vertex numbers per triangle.
func TriangleIndices(m *mesh.Mesh) []uint32 {
	m.Renumber()
	triangles := m.Triangles()
	indices := make([]uint32, 0, 3*len(triangles))
	for _, t := range triangles {
		for _, v := range t.Vertices() {
			indices = append(indices, uint32(v.Number()))
		}
	}
	return indices
}

// EdgeIndices returns two vertex numbers per edge, for line drawing.
func EdgeIndices(m *mesh.Mesh) []uint32 {
	m.Renumber()
	edges := m.Edges()
	indices := make([]uint32, 0, 2*len(edges))
	for _, e := range edges {
		indices = append(indices, uint32(e.Vertex1().Number()), uint32(e.Vertex2().Number()))
	}
	return indices
}

// FaceNormalLines returns one segment per triangle, from its centroid along
// its normal scaled by length. Format: [x, y, z] per endpoint. Triangle
// normals must be current.
func FaceNormalLines(m *mesh.Mesh, length float32) []float32 {
	triangles := m.Triangles()
	lines := make([]float32, 0, 6*len(triangles))
	for _, t := range triangles {
		vs := t.Vertices()
		center := vs[0].Coord().Add(vs[1].Coord()).Add(vs[2].Coord()).Scale(1.0 / 3.0)
		end := center.ScaleAdd(t.Normal(), length)
		lines = append(lines, center.X, center.Y, center.Z, end.X, end.Y, end.Z)
	}
	return lines
}

// VertexNormalLines returns one segment per vertex along its normal scaled
// by length. Format: [x, y, z] per endpoint.
func VertexNormalLines(m *mesh.Mesh, length float32) []float32 {
	vertices := m.Vertices()
	lines := make([]float32, 0, 6*len(vertices))
	for _, v := range vertices {
		start := v.Coord()
		end := start.ScaleAdd(v.Normal(), length)
		lines = append(lines, start.X, start.Y, start.Z, end.X, end.Y, end.Z)
	}
	return lines
}
