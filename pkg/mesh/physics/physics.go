// Package physics computes the mass properties of a closed mesh with the
// projection method of B. Mirtich, "Fast and Accurate Computation of
// Polyhedral Mass Properties" (1996).
//
// The mesh must be closed and its triangles oriented outward; an open or
// inverted surface yields meaningless or negative results.
package physics

import (
	"errors"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// ErrNoVolume is returned when the integrated volume is zero, in which case
// the center of gravity is undefined.
var ErrNoVolume = errors.New("mesh encloses no volume")

// Physics holds the results of the last integration.
type Physics struct {
	mesh    *mesh.Mesh
	density float32

	volume float32
	mass   float32
	cog    math.Vec3
	t2     math.Vec3
	tp     math.Vec3
}

// New returns an integrator for m with a density of 1.
func New(m *mesh.Mesh) *Physics {
	return &Physics{mesh: m, density: 1}
}

// SetDensity sets the density used to derive the mass.
func (p *Physics) SetDensity(density float32) { p.density = density }

// Density returns the current density.
func (p *Physics) Density() float32 { return p.density }

// Volume returns the volume found by the last CompVolumeIntegrals.
func (p *Physics) Volume() float32 { return p.volume }

// Mass returns density times volume.
func (p *Physics) Mass() float32 { return p.mass }

// CoG returns the center of gravity.
func (p *Physics) CoG() math.Vec3 { return p.cog }

// SecondMoments returns the integrals of x², y² and z² over the volume.
func (p *Physics) SecondMoments() math.Vec3 { return p.t2 }

// ProductMoments returns the integrals of xy, yz and zx over the volume.
func (p *Physics) ProductMoments() math.Vec3 { return p.tp }

// projection holds the integrals of monomials over the triangle projected on
// the (a, b) plane.
type projection struct {
	p1, pa, pb, paa, pab, pbb, paaa, paab, pabb, pbbb float32
}

func project(vs [3]*mesh.Vertex, a, b int) projection {
	var pr projection
	for i := range vs {
		c0, c1 := vs[i].Coord(), vs[(i+1)%3].Coord()
		a0, b0 := c0.Get(a), c0.Get(b)
		a1, b1 := c1.Get(a), c1.Get(b)
		da, db := a1-a0, b1-b0
		a0_2 := a0 * a0
		a0_3 := a0_2 * a0
		a0_4 := a0_3 * a0
		b0_2 := b0 * b0
		b0_3 := b0_2 * b0
		b0_4 := b0_3 * b0
		a1_2 := a1 * a1
		a1_3 := a1_2 * a1
		b1_2 := b1 * b1
		b1_3 := b1_2 * b1

		c1a := a1 + a0
		ca := a1*c1a + a0_2
		caa := a1*ca + a0_3
		caaa := a1*caa + a0_4
		cb := b1*(b1+b0) + b0_2
		cbb := b1*cb + b0_3
		cbbb := b1*cbb + b0_4
		cab := 3*a1_2 + 2*a1*a0 + a0_2
		kab := a1_2 + 2*a1*a0 + 3*a0_2
		caab := a0*cab + 4*a1_3
		kaab := a1*kab + 4*a0_3
		cabb := 4*b1_3 + 3*b1_2*b0 + 2*b1*b0_2 + b0_3
		kabb := b1_3 + 2*b1_2*b0 + 3*b1*b0_2 + 4*b0_3

		pr.p1 += db * c1a
		pr.pa += db * ca
		pr.paa += db * caa
		pr.paaa += db * caaa
		pr.pb += da * cb
		pr.pbb += da * cbb
		pr.pbbb += da * cbbb
		pr.pab += db * (b1*cab + b0*kab)
		pr.paab += db * (b1*caab + b0*kaab)
		pr.pabb += da * (a1*cabb + a0*kabb)
	}
	pr.p1 /= 2
	pr.pa /= 6
	pr.paa /= 12
	pr.paaa /= 20
	pr.pb /= -6
	pr.pbb /= -12
	pr.pbbb /= -20
	pr.pab /= 24
	pr.paab /= 60
	pr.pabb /= -60
	return pr
}

// axes returns the permutation (a, b, c) where c is the axis the triangle
// faces the most. Ties go to the later axis.
func axes(n math.Vec3) (a, b, c int) {
	x, y, z := math32.Abs(n.X), math32.Abs(n.Y), math32.Abs(n.Z)
	switch {
	case x > y && x > z:
		c = 0
	case y > z:
		c = 1
	default:
		c = 2
	}
	a = (c + 1) % 3
	b = (a + 1) % 3
	return a, b, c
}

// CompVolumeIntegrals integrates the mesh and stores volume, mass, center of
// gravity and second order moments. Triangle normals are recomputed first.
// It returns ErrNoVolume when the volume is zero; volume and mass are still
// set in that case and the center of gravity is left at the origin.
func (p *Physics) CompVolumeIntegrals() error {
	var t0 float32
	var t1, t2, tp math.Vec3

	for _, t := range p.mesh.Triangles() {
		t.ComputeNormal()
		if t.Surface() <= 0 {
			continue
		}
		n := t.Normal()
		w := t.W()
		a, b, c := axes(n)
		na, nb, nc := n.Get(a), n.Get(b), n.Get(c)
		pr := project(t.Vertices(), a, b)

		k1 := 1 / nc
		k2 := k1 * k1
		k3 := k2 * k1
		k4 := k3 * k1

		fa := k1 * pr.pa
		fb := k1 * pr.pb
		fc := -k2 * (na*pr.pa + nb*pr.pb + w*pr.p1)

		faa := k1 * pr.paa
		fbb := k1 * pr.pbb
		fcc := k3 * (na*na*pr.paa + 2*na*nb*pr.pab + nb*nb*pr.pbb +
			w*(2*(na*pr.pa+nb*pr.pb)+w*pr.p1))

		faaa := k1 * pr.paaa
		fbbb := k1 * pr.pbbb
		fccc := -k4 * (na*na*na*pr.paaa + 3*na*na*nb*pr.paab +
			3*na*nb*nb*pr.pabb + nb*nb*nb*pr.pbbb +
			3*w*(na*na*pr.paa+2*na*nb*pr.pab+nb*nb*pr.pbb) +
			w*w*(3*(na*pr.pa+nb*pr.pb)+w*pr.p1))

		faab := k1 * pr.paab
		fbbc := -k2 * (na*pr.pabb + nb*pr.pbbb + w*pr.pbb)
		fcca := k3 * (na*na*pr.paaa + 2*na*nb*pr.paab + nb*nb*pr.pabb +
			w*(2*(na*pr.paa+nb*pr.pab)+w*pr.pa))

		switch {
		case a == 0:
			t0 += n.X * fa
		case b == 0:
			t0 += n.X * fb
		default:
			t0 += n.X * fc
		}

		t1 = t1.With(a, t1.Get(a)+na*faa).With(b, t1.Get(b)+nb*fbb).With(c, t1.Get(c)+nc*fcc)
		t2 = t2.With(a, t2.Get(a)+na*faaa).With(b, t2.Get(b)+nb*fbbb).With(c, t2.Get(c)+nc*fccc)
		tp = tp.With(a, tp.Get(a)+na*faab).With(b, tp.Get(b)+nb*fbbc).With(c, tp.Get(c)+nc*fcca)
	}

	p.volume = t0
	p.mass = p.density * t0
	p.t2 = t2.Scale(1.0 / 3.0)
	p.tp = tp.Scale(0.5)
	p.cog = math.Vec3{}

	log := mesh.Logger().With(zap.String("mesh", p.mesh.Name()))
	if t0 == 0 {
		log.Warn("mesh encloses no volume")
		return ErrNoVolume
	}
	p.cog = t1.Scale(0.5 / t0)
	log.Info("mass properties",
		zap.Float32("volume", p.volume),
		zap.Float32("mass", p.mass),
		zap.Stringer("cog", p.cog))
	return nil
}
