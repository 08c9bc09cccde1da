package core

import "github.com/chewxy/math32"

// Sphere is a ball given by its center and radius
type Sphere struct {
	Center Vec3
	Radius float32
}

// NewSphere creates a new sphere
func NewSphere(center Vec3, radius float32) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// ContainsPoint reports whether p lies inside or on the sphere
func (s Sphere) ContainsPoint(p Vec3) bool {
	return DistanceSqTo(p, s.Center) <= s.Radius*s.Radius
}

// DistanceToPoint returns the signed distance from the surface to p.
// Points inside the sphere give negative values.
func (s Sphere) DistanceToPoint(p Vec3) float32 {
	return math32.Sqrt(DistanceSqTo(p, s.Center)) - s.Radius
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s Sphere) BoundingBox() Box3 {
	radius := NewVec3(s.Radius, s.Radius, s.Radius)
	return NewBox3(s.Center.Sub(radius), s.Center.Add(radius))
}
