// Package animation links a mesh to a morph target and drives the blend
// coefficient between them.
package animation

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// ErrMorphMismatch is returned when the morph target does not have the same
// vertex count as the base mesh.
var ErrMorphMismatch = errors.New("morph target does not match base mesh")

// BuildMorph stores the positions and normals of morph into the morph slots
// of base, pairing vertices by their order in each mesh. Both meshes must
// come from the same topology, typically two exports of one model.
func BuildMorph(base, morph *mesh.Mesh) error {
	vs, ms := base.Vertices(), morph.Vertices()
	if len(vs) != len(ms) {
		return fmt.Errorf("morph %s onto %s: %d vertices for %d: %w",
			morph.Name(), base.Name(), len(ms), len(vs), ErrMorphMismatch)
	}
	for i, v := range vs {
		v.SetAttribute(mesh.AttrMorphPosition, math.Vec4From3(ms[i].Coord(), 1))
		v.SetAttribute(mesh.AttrMorphNormal, math.Vec4From3(ms[i].Normal(), 0))
	}
	mesh.Logger().Debug("morph built", zap.String("mesh", base.Name()),
		zap.String("morph", morph.Name()), zap.Int("vertices", len(vs)))
	return nil
}

// Blend returns the position and normal of v interpolated toward its morph
// target, coef 0 being the base shape and 1 the target.
func Blend(v *mesh.Vertex, coef float32) (position, normal math.Vec3) {
	position = v.Coord().Lerp(v.Attribute(mesh.AttrMorphPosition).XYZ(), coef)
	normal = v.Normal().Lerp(v.Attribute(mesh.AttrMorphNormal).XYZ(), coef).Normalize()
	return position, normal
}

// MorphDriver moves a blend coefficient toward a target with a damped
// spring, one step per frame.
type MorphDriver struct {
	spring   harmonica.Spring
	coef     float64
	velocity float64
	target   float64
}

// NewMorphDriver returns a driver stepping at fps frames per second. A
// damping of 1 reaches the target without overshoot.
func NewMorphDriver(fps int, frequency, damping float64) *MorphDriver {
	return &MorphDriver{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// SetTarget sets the coefficient to reach, clamped to [0, 1].
func (d *MorphDriver) SetTarget(target float32) {
	d.target = float64(min(max(target, 0), 1))
}

// Target returns the coefficient being reached.
func (d *MorphDriver) Target() float32 { return float32(d.target) }

// Coef returns the current coefficient.
func (d *MorphDriver) Coef() float32 { return float32(d.coef) }

// Update advances one frame and returns the new coefficient.
func (d *MorphDriver) Update() float32 {
	d.coef, d.velocity = d.spring.Update(d.coef, d.velocity, d.target)
	return float32(d.coef)
}

// Settled reports whether the coefficient is within eps of the target and
// has almost stopped.
func (d *MorphDriver) Settled(eps float32) bool {
	e := float64(eps)
	return abs(d.coef-d.target) <= e && abs(d.velocity) <= e
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
