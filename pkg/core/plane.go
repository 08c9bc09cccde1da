package core

import "github.com/chewxy/math32"

// Plane is the set of points p with Normal·p + Constant = 0
type Plane struct {
	Normal   Vec3    // Normal vector (expected to be unit length)
	Constant float32 // Signed distance from the origin along -Normal
}

// NewPlane creates a new plane
func NewPlane(normal Vec3, constant float32) Plane {
	return Plane{Normal: normal, Constant: constant}
}

// NewPlaneFromNormalAndCoplanarPoint creates the plane through point with the given normal
func NewPlaneFromNormalAndCoplanarPoint(normal, point Vec3) Plane {
	return Plane{Normal: normal, Constant: -point.Dot(normal)}
}

// NewPlaneFromCoplanarPoints creates the plane through a, b and c.
// Counter-clockwise winding gives the normal its orientation.
func NewPlaneFromCoplanarPoints(a, b, c Vec3) Plane {
	normal := Normalize(c.Sub(b).Cross(a.Sub(b)))
	return NewPlaneFromNormalAndCoplanarPoint(normal, a)
}

// Normalize rescales the plane so its normal has unit length
func (p Plane) Normalize() Plane {
	inverseLength := 1 / p.Normal.Len()
	return Plane{Normal: p.Normal.Mul(inverseLength), Constant: p.Constant * inverseLength}
}

// DistanceToPoint returns the signed distance from the plane to point.
// Points on the side the normal faces give positive values.
func (p Plane) DistanceToPoint(point Vec3) float32 {
	return p.Normal.Dot(point) + p.Constant
}

// BoundingBox returns a bounding box for this plane. Axis-aligned planes get
// a thin slab; any other orientation gets a large cube.
func (p Plane) BoundingBox() Box3 {
	const largeValue = 1e6
	const thickness = 0.001

	for axis := 0; axis < 3; axis++ {
		if math32.Abs(math32.Abs(p.Normal[axis])-1) > Epsilon {
			continue
		}
		min := NewVec3(-largeValue, -largeValue, -largeValue)
		max := NewVec3(largeValue, largeValue, largeValue)
		offset := -p.Constant * p.Normal[axis]
		min[axis] = offset - thickness
		max[axis] = offset + thickness
		return NewBox3(min, max)
	}

	return NewBox3(
		NewVec3(-largeValue, -largeValue, -largeValue),
		NewVec3(largeValue, largeValue, largeValue),
	)
}
