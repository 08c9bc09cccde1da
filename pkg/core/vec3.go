package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a single precision 3D vector or point
type Vec3 = mgl32.Vec3

// Mat4 is a column-major 4x4 affine or projective transform
type Mat4 = mgl32.Mat4

// Epsilon is the tolerance used by approximate comparisons
const Epsilon float32 = 1e-6

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// DistanceTo returns the Euclidean distance between two points
func DistanceTo(a, b Vec3) float32 {
	return math32.Sqrt(DistanceSqTo(a, b))
}

// DistanceSqTo returns the squared distance between two points
func DistanceSqTo(a, b Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Normalize returns a unit vector in the same direction. The zero vector
// normalizes to the zero vector.
func Normalize(v Vec3) Vec3 {
	length := v.Len()
	if length == 0 {
		return Vec3{}
	}
	return v.Mul(1 / length)
}

// ApproxEqual reports whether every component of a and b differs by at most tolerance
func ApproxEqual(a, b Vec3, tolerance float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

// TransformPoint applies m to v as a point (w = 1), including the perspective divide
func TransformPoint(v Vec3, m Mat4) Vec3 {
	return mgl32.TransformCoordinate(v, m)
}

// TransformDirection applies the upper 3x3 of m to v. Translation is ignored
// and the result is not renormalized.
func TransformDirection(v Vec3, m Mat4) Vec3 {
	return mgl32.TransformNormal(v, m)
}

// Min returns the component-wise minimum of two vectors
func Min(a, b Vec3) Vec3 {
	return Vec3{math32.Min(a[0], b[0]), math32.Min(a[1], b[1]), math32.Min(a[2], b[2])}
}

// Max returns the component-wise maximum of two vectors
func Max(a, b Vec3) Vec3 {
	return Vec3{math32.Max(a[0], b[0]), math32.Max(a[1], b[1]), math32.Max(a[2], b[2])}
}
