package core

// Box3 represents an axis-aligned bounding box
type Box3 struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewBox3 creates a new Box3 from min and max points
func NewBox3(min, max Vec3) Box3 {
	return Box3{Min: min, Max: max}
}

// NewBox3FromPoints creates a Box3 that bounds all given points
func NewBox3FromPoints(points ...Vec3) Box3 {
	if len(points) == 0 {
		return Box3{}
	}

	box := Box3{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = Min(box.Min, point)
		box.Max = Max(box.Max, point)
	}

	return box
}

// Union returns a Box3 that bounds both this box and another
func (b Box3) Union(other Box3) Box3 {
	return Box3{Min: Min(b.Min, other.Min), Max: Max(b.Max, other.Max)}
}

// Center returns the center point of the box
func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// IsValid returns true if min <= max on every axis
func (b Box3) IsValid() bool {
	return b.Min[0] <= b.Max[0] &&
		b.Min[1] <= b.Max[1] &&
		b.Min[2] <= b.Max[2]
}

// ContainsPoint reports whether p lies inside or on the boundary of the box
func (b Box3) ContainsPoint(p Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] || p[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}
