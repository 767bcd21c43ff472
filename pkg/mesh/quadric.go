package mesh

import (
	"fmt"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
)

// Quadric is the symmetric error form Q(P) = P'AP + 2B'P + C accumulated from
// weighted planes. A holds the upper triangle xx, xy, xz, yy, yz, zz.
type Quadric struct {
	A [6]float32
	B [3]float32
	C float32
}

// NewQuadric returns the zero form.
func NewQuadric() *Quadric { return &Quadric{} }

// Zero clears the form.
func (q *Quadric) Zero() { *q = Quadric{} }

// AddPlane accumulates the plane of normal n going through p. The length of
// n acts as the weight.
func (q *Quadric) AddPlane(n, p math.Vec3) {
	d := -p.Dot(n)
	q.A[0] += n.X * n.X
	q.A[1] += n.X * n.Y
	q.A[2] += n.X * n.Z
	q.A[3] += n.Y * n.Y
	q.A[4] += n.Y * n.Z
	q.A[5] += n.Z * n.Z
	q.B[0] += n.X * d
	q.B[1] += n.Y * d
	q.B[2] += n.Z * d
	q.C += d * d
}

// AddQuadric accumulates another form.
func (q *Quadric) AddQuadric(o *Quadric) {
	for i := range q.A {
		q.A[i] += o.A[i]
	}
	for i := range q.B {
		q.B[i] += o.B[i]
	}
	q.C += o.C
}

// Cost evaluates the form at p.
func (q *Quadric) Cost(p math.Vec3) float32 {
	x, y, z := p.X, p.Y, p.Z
	quad := q.A[0]*x*x + 2*q.A[1]*x*y + 2*q.A[2]*x*z +
		q.A[3]*y*y + 2*q.A[4]*y*z +
		q.A[5]*z*z
	lin := 2 * (q.B[0]*x + q.B[1]*y + q.B[2]*z)
	return quad + lin + q.C
}

func (q *Quadric) String() string {
	return fmt.Sprintf("Quadric(A=%v, B=%v, C=%g)", q.A, q.B, q.C)
}
