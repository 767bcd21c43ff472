// Package processing edits the topology of a mesh in place: bevel,
// border split, extrusion, subdivision and affine transforms.
//
// None of these operations roll back on failure. After any of them the
// caller recomputes normals with mesh.ComputeNormals before drawing.
package processing

import (
	"errors"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// ErrBrokenFan is returned when a triangle of a vertex fan does not contain
// that vertex, which means the mesh links are corrupt.
var ErrBrokenFan = errors.New("triangle fan does not contain its vertex")

// Processing applies topological edits to one mesh.
type Processing struct {
	mesh *mesh.Mesh
}

// New returns the editor of m.
func New(m *mesh.Mesh) *Processing {
	return &Processing{mesh: m}
}

// Mesh returns the edited mesh.
func (p *Processing) Mesh() *mesh.Mesh { return p.mesh }

// Transform applies matrix to every vertex position. Normals are left as is.
func (p *Processing) Transform(matrix math.Mat4) {
	for _, v := range p.mesh.Vertices() {
		v.SetCoord(matrix.TransformVec3(v.Coord()))
	}
}

// Homothety scales the three vertices of t around its centroid. Neighbour
// triangles sharing those vertices move too.
func Homothety(t *mesh.Triangle, scale float32) *mesh.Triangle {
	vs := t.Vertices()
	center := vs[0].Coord().Add(vs[1].Coord()).Add(vs[2].Coord()).Scale(1.0 / 3.0)
	for _, v := range vs {
		v.SetCoord(v.Coord().Sub(center).Scale(scale).Add(center))
	}
	return t
}
