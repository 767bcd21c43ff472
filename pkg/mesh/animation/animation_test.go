package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/math"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub000/pkg/mesh"
)

// triangle builds a one-triangle mesh lifted to height z.
func triangle(t *testing.T, name string, z float32) *mesh.Mesh {
	t.Helper()
	m := mesh.New(name)
	a := m.AddVertex("a").SetCoord(math.Vec3{Z: z})
	b := m.AddVertex("b").SetCoord(math.Vec3{X: 1, Z: z})
	c := m.AddVertex("c").SetCoord(math.Vec3{Y: 1, Z: 2 * z})
	_, err := m.AddTriangle(a, b, c)
	require.NoError(t, err)
	m.ComputeNormals()
	return m
}

func TestBuildMorph(t *testing.T) {
	base := triangle(t, "base", 0)
	morph := triangle(t, "morph", 1)
	require.NoError(t, BuildMorph(base, morph))

	c := base.VertexByName("c")
	assert.Equal(t, math.Vec3{Y: 1, Z: 2}, c.Attribute(mesh.AttrMorphPosition).XYZ())
	assert.Equal(t, morph.VertexByName("c").Normal(), c.Attribute(mesh.AttrMorphNormal).XYZ())

	tests := []struct {
		coef float32
		want math.Vec3
	}{
		{0, math.Vec3{Y: 1}},
		{0.5, math.Vec3{Y: 1, Z: 1}},
		{1, math.Vec3{Y: 1, Z: 2}},
	}
	for _, tt := range tests {
		pos, normal := Blend(c, tt.coef)
		assert.Equal(t, tt.want, pos, "coef %v", tt.coef)
		assert.InDelta(t, 1, normal.Length(), 1e-6)
	}
}

func TestBuildMorphMismatch(t *testing.T) {
	base := triangle(t, "base", 0)
	morph := triangle(t, "morph", 1)
	morph.AddVertex("extra")

	err := BuildMorph(base, morph)
	assert.ErrorIs(t, err, ErrMorphMismatch)
	assert.Equal(t, math.Vec4{}, base.VertexByName("a").Attribute(mesh.AttrMorphPosition))
}

func TestMorphDriverConverges(t *testing.T) {
	d := NewMorphDriver(60, 6, 1)
	d.SetTarget(1)

	prev := d.Coef()
	for range 300 {
		coef := d.Update()
		assert.GreaterOrEqual(t, coef, prev, "critically damped spring must not go back")
		assert.LessOrEqual(t, coef, float32(1.0001))
		prev = coef
	}
	assert.True(t, d.Settled(1e-3))
	assert.InDelta(t, 1, d.Coef(), 1e-3)
}

func TestMorphDriverClampsTarget(t *testing.T) {
	d := NewMorphDriver(60, 6, 1)
	d.SetTarget(3)
	assert.Equal(t, float32(1), d.Target())
	d.SetTarget(-1)
	assert.Equal(t, float32(0), d.Target())
	assert.True(t, d.Settled(1e-6))
}
