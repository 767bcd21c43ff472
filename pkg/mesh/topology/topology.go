// Package topology generates regular surfaces: rectangular and hexagonal
// grids in the XZ plane, optionally folded into tubes or tori, and discs
// made of concentric rings.
//
// Triangles are emitted row by row so a strip builder can batch them.
package topology

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// ErrInvalidSize is returned for grid or disc dimensions that cannot form a surface.
var ErrInvalidSize = errors.New("invalid surface size")

// Topology adds generated surfaces to one mesh.
type Topology struct {
	mesh *mesh.Mesh
}

// New returns a generator appending to m.
func New(m *mesh.Mesh) *Topology {
	return &Topology{mesh: m}
}

// grid is a block of vertices addressed by (ix, iz).
type grid struct {
	nbX      int
	vertices []*mesh.Vertex
}

func (g grid) at(ix, iz int) *mesh.Vertex { return g.vertices[ix+iz*g.nbX] }

// addGrid creates nbX*nbZ vertices named after names with ix and iz and
// placed by coord.
func (t *Topology) addGrid(nbX, nbZ int, names string, coord func(ix, iz int) math.Vec3) grid {
	g := grid{nbX: nbX, vertices: make([]*mesh.Vertex, 0, nbX*nbZ)}
	for iz := 0; iz < nbZ; iz++ {
		for ix := 0; ix < nbX; ix++ {
			v := t.mesh.AddVertex(fmt.Sprintf(names, ix, iz)).SetCoord(coord(ix, iz))
			g.vertices = append(g.vertices, v)
		}
	}
	return g
}

// AddRectangularSurface adds a grid of nbX by nbZ vertices, vertex (ix, iz)
// at (ix, 0, iz), facing +Y. names must hold two %d verbs replaced by ix and
// iz. foldX joins the last column to the first, foldZ the last row to the
// first. It returns num0, the index of the first added vertex: vertex
// (ix, iz) is mesh.Vertex(num0 + ix + iz*nbX).
func (t *Topology) AddRectangularSurface(nbX, nbZ int, names string, foldX, foldZ bool) (int, error) {
	if nbX < 1 || nbZ < 1 {
		return 0, fmt.Errorf("rectangular surface %dx%d: %w", nbX, nbZ, ErrInvalidSize)
	}
	num0 := t.mesh.VertexCount()
	g := t.addGrid(nbX, nbZ, names, func(ix, iz int) math.Vec3 {
		return math.Vec3{X: float32(ix), Z: float32(iz)}
	})

	var quads [][4]*mesh.Vertex
	for iz := 0; iz < nbZ-1; iz++ {
		for ix := 0; ix < nbX-1; ix++ {
			quads = append(quads, [4]*mesh.Vertex{g.at(ix, iz), g.at(ix, iz+1), g.at(ix+1, iz+1), g.at(ix+1, iz)})
		}
	}
	if foldX {
		for iz := 0; iz < nbZ-1; iz++ {
			quads = append(quads, [4]*mesh.Vertex{g.at(nbX-1, iz), g.at(nbX-1, iz+1), g.at(0, iz+1), g.at(0, iz)})
		}
	}
	if foldZ {
		for ix := 0; ix < nbX-1; ix++ {
			quads = append(quads, [4]*mesh.Vertex{g.at(ix, 0), g.at(ix+1, 0), g.at(ix+1, nbZ-1), g.at(ix, nbZ-1)})
		}
	}
	if foldX && foldZ {
		quads = append(quads, [4]*mesh.Vertex{g.at(0, 0), g.at(0, nbZ-1), g.at(nbX-1, nbZ-1), g.at(nbX-1, 0)})
	}

	for _, q := range quads {
		if err := t.mesh.AddQuad(q[0], q[1], q[2], q[3]); err != nil {
			return num0, fmt.Errorf("rectangular surface: %w", err)
		}
	}
	return num0, nil
}

// AddHexagonalSurface adds a grid of nbX by nbZ vertices forming
// equilateral triangles: odd rows are shifted by half a unit along -X and
// rows are sqrt(3)/2 apart. Names, folds and the returned index follow
// AddRectangularSurface. Folding along Z needs an even nbZ to keep the
// triangles regular; an odd one is accepted with a warning.
func (t *Topology) AddHexagonalSurface(nbX, nbZ int, names string, foldX, foldZ bool) (int, error) {
	if nbX < 1 || nbZ < 1 {
		return 0, fmt.Errorf("hexagonal surface %dx%d: %w", nbX, nbZ, ErrInvalidSize)
	}
	num0 := t.mesh.VertexCount()
	rowStep := math32.Sqrt(3) / 2
	g := t.addGrid(nbX, nbZ, names, func(ix, iz int) math.Vec3 {
		return math.Vec3{X: float32(ix) - 0.5*float32(iz%2), Z: float32(iz) * rowStep}
	})

	var triangles [][3]*mesh.Vertex
	for iz := 0; iz < nbZ-1; iz++ {
		for ix := 0; ix < nbX-1; ix++ {
			v00, v01 := g.at(ix, iz), g.at(ix, iz+1)
			v10, v11 := g.at(ix+1, iz), g.at(ix+1, iz+1)
			if iz%2 == 0 {
				triangles = append(triangles, [3]*mesh.Vertex{v00, v01, v11}, [3]*mesh.Vertex{v00, v11, v10})
			} else {
				triangles = append(triangles, [3]*mesh.Vertex{v00, v01, v10}, [3]*mesh.Vertex{v10, v01, v11})
			}
		}
	}
	if foldX {
		for iz := 0; iz < nbZ-1; iz++ {
			v00, v01 := g.at(0, iz), g.at(0, iz+1)
			v10, v11 := g.at(nbX-1, iz), g.at(nbX-1, iz+1)
			if iz%2 == 0 {
				triangles = append(triangles, [3]*mesh.Vertex{v10, v11, v01}, [3]*mesh.Vertex{v10, v01, v00})
			} else {
				triangles = append(triangles, [3]*mesh.Vertex{v10, v11, v00}, [3]*mesh.Vertex{v00, v11, v01})
			}
		}
	}
	if foldZ {
		if nbZ%2 != 0 {
			mesh.Logger().Warn("hexagonal surface folded along Z with an odd row count",
				zap.String("mesh", t.mesh.Name()), zap.Int("nbZ", nbZ))
		}
		for ix := 0; ix < nbX-1; ix++ {
			v00, v01 := g.at(ix, 0), g.at(ix, nbZ-1)
			v10, v11 := g.at(ix+1, 0), g.at(ix+1, nbZ-1)
			triangles = append(triangles, [3]*mesh.Vertex{v01, v00, v11}, [3]*mesh.Vertex{v11, v00, v10})
		}
	}
	if foldX && foldZ {
		v00, v01 := g.at(0, 0), g.at(0, nbZ-1)
		v10, v11 := g.at(nbX-1, 0), g.at(nbX-1, nbZ-1)
		triangles = append(triangles, [3]*mesh.Vertex{v00, v01, v10}, [3]*mesh.Vertex{v10, v01, v11})
	}

	for _, tri := range triangles {
		if _, err := t.mesh.AddTriangle(tri[0], tri[1], tri[2]); err != nil {
			return num0, fmt.Errorf("hexagonal surface: %w", err)
		}
	}
	return num0, nil
}

// AddRevolutionSurface adds a disc in the XZ plane: a center vertex and
// segments rings of spokes vertices, ring is at radius is+1. Vertex
// (ir, is) lies on spoke ir at angle 2*pi*ir/spokes. names must hold two %d
// verbs replaced by ir and is; the center gets "C" for both. The disc faces
// -Y. It returns num0, the index of the center: vertex (ir, is) is
// mesh.Vertex(num0 + 1 + ir*segments + is).
func (t *Topology) AddRevolutionSurface(spokes, segments int, names string) (int, error) {
	if spokes < 3 || segments < 0 {
		return 0, fmt.Errorf("revolution surface %dx%d: %w", spokes, segments, ErrInvalidSize)
	}
	num0 := t.mesh.VertexCount()
	center := t.mesh.AddVertex(fmt.Sprintf(strings.ReplaceAll(names, "%d", "%s"), "C", "C")).
		SetCoord(math.Vec3{})

	g := grid{nbX: segments, vertices: make([]*mesh.Vertex, 0, spokes*segments)}
	for ir := 0; ir < spokes; ir++ {
		angle := float32(ir) / float32(spokes) * 2 * math32.Pi
		sin, cos := math32.Sin(angle), math32.Cos(angle)
		for is := 0; is < segments; is++ {
			radius := float32(is + 1)
			v := t.mesh.AddVertex(fmt.Sprintf(names, ir, is)).
				SetCoord(math.Vec3{X: radius * cos, Z: radius * sin})
			g.vertices = append(g.vertices, v)
		}
	}
	// spoke-major storage, spokes wrap around
	at := func(ir, is int) *mesh.Vertex { return g.at(is, ir%spokes) }

	for ir := 0; ir < spokes; ir++ {
		if segments > 0 {
			if _, err := t.mesh.AddTriangle(center, at(ir, 0), at(ir+1, 0)); err != nil {
				return num0, fmt.Errorf("revolution surface: %w", err)
			}
		}
		for is := 0; is < segments-1; is++ {
			if err := t.mesh.AddQuad(at(ir, is), at(ir, is+1), at(ir+1, is+1), at(ir+1, is)); err != nil {
				return num0, fmt.Errorf("revolution surface: %w", err)
			}
		}
	}
	return num0, nil
}
