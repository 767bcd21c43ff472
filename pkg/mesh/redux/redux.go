// Package redux simplifies a mesh by greedy edge collapses ranked with
// quadric error metrics (Garland and Heckbert, 1997).
package redux

import (
	"math"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// Redux removes vertices from a mesh by merging them into a neighbour.
// Call mesh.ComputeNormals after a reduction before drawing.
type Redux struct {
	mesh *mesh.Mesh
}

// New returns a simplifier working on m.
func New(m *mesh.Mesh) *Redux {
	return &Redux{mesh: m}
}

// ReduxCount removes up to count vertices and returns how many were removed.
func (r *Redux) ReduxCount(count int) int {
	r.computeAllCosts()
	done := 0
	for done < count {
		ok, collapsed := r.collapseMinimumCost(math.MaxFloat32)
		if !ok {
			break
		}
		if collapsed {
			done++
		}
	}
	r.release()
	mesh.Logger().Debug("redux by count", zap.String("mesh", r.mesh.Name()),
		zap.Int("asked", count), zap.Int("removed", done))
	return done
}

// ReduxCost removes vertices while the cheapest collapse costs at most
// maxCost, 0 keeping only coplanar merges. It returns how many were removed.
func (r *Redux) ReduxCost(maxCost float32) int {
	r.computeAllCosts()
	done := 0
	for {
		ok, collapsed := r.collapseMinimumCost(maxCost)
		if !ok {
			break
		}
		if collapsed {
			done++
		}
	}
	r.release()
	mesh.Logger().Debug("redux by cost", zap.String("mesh", r.mesh.Name()),
		zap.Float32("max_cost", maxCost), zap.Int("removed", done))
	return done
}

func (r *Redux) computeAllCosts() {
	r.mesh.ComputeNormals()
	vertices := r.mesh.Vertices()
	for _, v := range vertices {
		computeQuadric(v)
	}
	for _, v := range vertices {
		computeCollapseCost(v)
	}
}

// release drops the scratch state of the surviving vertices.
func (r *Redux) release() {
	for _, v := range r.mesh.Vertices() {
		v.Quadric = nil
		v.CollapseTarget = nil
		v.CollapseCost = 0
	}
}

// computeCollapseCost picks the neighbour that v would be cheapest to merge
// into. The first strictly cheaper candidate wins and a free merge stops the
// scan.
func computeCollapseCost(v *mesh.Vertex) {
	minCost := float32(math.MaxFloat32)
	var minTarget *mesh.Vertex
	for _, candidate := range v.NeighborVertices() {
		if !canCollapse(v, candidate) {
			continue
		}
		cost := collapseCost(v, candidate)
		if cost < minCost {
			minTarget = candidate
			minCost = cost
			if minCost <= 0 {
				break
			}
		}
	}
	v.CollapseTarget = minTarget
	v.CollapseCost = minCost
	if minTarget == nil {
		v.CollapseCost = math32.Inf(1)
	}
}

// canCollapse reports whether u can be merged into v.
func canCollapse(u, v *mesh.Vertex) bool {
	h := v.HalfEdgeTo(u)
	return h != nil && h.CanCollapse()
}

// collapseCost evaluates the summed quadrics of u and v at v.
func collapseCost(u, v *mesh.Vertex) float32 {
	var q mesh.Quadric
	q.AddQuadric(u.Quadric)
	q.AddQuadric(v.Quadric)
	return q.Cost(v.Coord())
}

// collapseMinimumCost merges the cheapest vertex into its target. ok is false
// when no vertex is under maxCost. collapsed is false when the pick turned
// out to be illegal; the vertex is then left out of the pass.
func (r *Redux) collapseMinimumCost(maxCost float32) (ok, collapsed bool) {
	u := r.findMinimumCost(maxCost)
	if u == nil {
		return false, false
	}
	v := u.CollapseTarget
	if !canCollapse(u, v) {
		mesh.Logger().Debug("collapse not allowed", zap.Stringer("vertex", u), zap.Stringer("target", v))
		u.CollapseTarget = nil
		u.CollapseCost = math32.Inf(1)
		return true, false
	}
	r.collapseVertex(u, v)
	return true, true
}

// findMinimumCost returns the last vertex whose cost is the lowest one not
// above maxCost.
func (r *Redux) findMinimumCost(maxCost float32) *mesh.Vertex {
	var minVertex *mesh.Vertex
	minCost := maxCost
	for _, v := range r.mesh.Vertices() {
		if v.CollapseTarget == nil {
			continue
		}
		if v.CollapseCost <= minCost {
			minVertex = v
			minCost = v.CollapseCost
		}
	}
	return minVertex
}

// collapseVertex merges u into v and refreshes the neighbourhood of v.
func (r *Redux) collapseVertex(u, v *mesh.Vertex) {
	mesh.Collapse(v.HalfEdgeTo(u))
	r.mesh.DelVertex(u)

	for _, t := range v.TrianglesAround() {
		t.ComputeNormal()
	}
	neighbors := v.NeighborVertices()
	v.ComputeNormal()
	for _, n := range neighbors {
		n.ComputeNormal()
	}
	computeQuadric(v)
	for _, n := range neighbors {
		computeQuadric(n)
	}
	computeCollapseCost(v)
	for _, n := range neighbors {
		computeCollapseCost(n)
	}
}

func computeQuadric(v *mesh.Vertex) {
	v.Quadric = VertexQuadric(v)
}

// VertexQuadric sums the planes of the triangles around v through v, each
// weighted by the inverse square root of its area. Flat triangles are
// ignored. Triangle normals must be up to date.
func VertexQuadric(v *mesh.Vertex) *mesh.Quadric {
	q := mesh.NewQuadric()
	for _, t := range v.TrianglesAround() {
		if t.Surface() <= 0 {
			continue
		}
		weight := 1 / math32.Sqrt(t.Surface())
		q.AddPlane(t.Normal().Scale(weight), v.Coord())
	}
	return q
}

// Cost returns the error of merging u into v outside of a reduction pass.
func Cost(u, v *mesh.Vertex) float32 {
	var q mesh.Quadric
	q.AddQuadric(VertexQuadric(u))
	q.AddQuadric(VertexQuadric(v))
	return q.Cost(v.Coord())
}
