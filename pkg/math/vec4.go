package math

// Vec4 is a 4-component vector. Mesh vertices store every attribute in one.
type Vec4 [4]float32

// Vec4From3 builds a Vec4 from a Vec3 and a w component.
func Vec4From3(v Vec3, w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec4From2 builds a Vec4 holding v in its first two components.
func Vec4From2(v Vec2) Vec4 {
	return Vec4{v.X, v.Y, 0, 0}
}

// XYZ returns the first three components.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// XY returns the first two components.
func (v Vec4) XY() Vec2 {
	return Vec2{v[0], v[1]}
}

// WithXYZ returns a copy of v whose first three components are replaced, w is kept.
func (v Vec4) WithXYZ(xyz Vec3) Vec4 {
	return Vec4{xyz.X, xyz.Y, xyz.Z, v[3]}
}

// Lerp interpolates linearly from v (k=0) to other (k=1).
func (v Vec4) Lerp(other Vec4, k float32) Vec4 {
	return Vec4{
		v[0] + k*(other[0]-v[0]),
		v[1] + k*(other[1]-v[1]),
		v[2] + k*(other[2]-v[2]),
		v[3] + k*(other[3]-v[3]),
	}
}
