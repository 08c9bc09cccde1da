package core

import (
	"fmt"

	"github.com/chewxy/math32"
)

// NoIntersection is returned by DistanceToPlane when the ray never reaches the plane.
// Valid distances are never negative.
const NoIntersection float32 = -1

// Ray represents a half-line Origin + t*Direction, t >= 0.
//
// Direction is conventionally unit length but is never normalized by any
// method. Sphere, plane and point queries only yield Euclidean distances
// along the ray when it is.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// DefaultRay returns a ray at the origin pointing down the negative Z axis
func DefaultRay() Ray {
	return Ray{Direction: NewVec3(0, 0, -1)}
}

// Set overwrites origin and direction
func (r *Ray) Set(origin, direction Vec3) *Ray {
	r.Origin = origin
	r.Direction = direction
	return r
}

// Copy copies origin and direction from other
func (r *Ray) Copy(other Ray) *Ray {
	r.Origin = other.Origin
	r.Direction = other.Direction
	return r
}

// Clone returns a copy of the ray
func (r Ray) Clone() Ray {
	return r
}

// At returns the point at parameter t along the ray. t may be negative.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// LookAt points the ray at point. If point equals the origin the direction
// becomes the zero vector.
func (r *Ray) LookAt(point Vec3) *Ray {
	r.Direction = Normalize(point.Sub(r.Origin))
	return r
}

// Recast moves the origin to the point at parameter t
func (r *Ray) Recast(t float32) *Ray {
	r.Origin = r.At(t)
	return r
}

// ApplyMatrix4 transforms the origin as a point and the direction as a
// direction. The direction is not renormalized.
func (r *Ray) ApplyMatrix4(m Mat4) *Ray {
	r.Origin = TransformPoint(r.Origin, m)
	r.Direction = TransformDirection(r.Direction, m)
	return r
}

// Equals reports whether both origin and direction match within Epsilon
func (r Ray) Equals(other Ray) bool {
	return ApproxEqual(r.Origin, other.Origin, Epsilon) &&
		ApproxEqual(r.Direction, other.Direction, Epsilon)
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray{origin: (%g, %g, %g), direction: (%g, %g, %g)}",
		r.Origin[0], r.Origin[1], r.Origin[2],
		r.Direction[0], r.Direction[1], r.Direction[2])
}

// ClosestPointToPoint returns the point on the ray closest to point.
// Points behind the origin map to the origin.
func (r Ray) ClosestPointToPoint(point Vec3) Vec3 {
	directionDistance := point.Sub(r.Origin).Dot(r.Direction)
	if directionDistance < 0 {
		return r.Origin
	}
	return r.At(directionDistance)
}

// DistanceToPoint returns the distance from point to the ray
func (r Ray) DistanceToPoint(point Vec3) float32 {
	return math32.Sqrt(r.DistanceSqToPoint(point))
}

// DistanceSqToPoint returns the squared distance from point to the ray
func (r Ray) DistanceSqToPoint(point Vec3) float32 {
	return DistanceSqTo(r.ClosestPointToPoint(point), point)
}

// segmentRegion identifies which part of the (s0, s1) half-strip holds the
// constrained minimum of the ray/segment distance, where s0 >= 0 is the ray
// parameter and |s1| <= extent the offset from the segment center.
type segmentRegion int

const (
	regionParallel           segmentRegion = iota // ray and segment are parallel
	regionInterior                                // interior of ray and segment
	regionSegmentEnd                              // s1 clamped to +extent
	regionSegmentStart                            // s1 clamped to -extent
	regionOriginSegmentEnd                        // s0 < 0, s1 beyond +extent
	regionOrigin                                  // s0 clamped to 0
	regionOriginSegmentStart                      // s0 < 0, s1 beyond -extent
)

func classifySegmentRegion(det, s0, s1, extDet float32) segmentRegion {
	if !(det > 0) {
		return regionParallel
	}
	if s0 >= 0 {
		switch {
		case !(s1 >= -extDet):
			return regionSegmentStart
		case s1 <= extDet:
			return regionInterior
		default:
			return regionSegmentEnd
		}
	}
	switch {
	case s1 <= -extDet:
		return regionOriginSegmentStart
	case s1 <= extDet:
		return regionOrigin
	default:
		return regionOriginSegmentEnd
	}
}

// DistanceSqToSegment returns the squared distance between the ray and the
// segment [v0, v1]. When pointOnRay or pointOnSegment are non-nil they receive
// the closest points on the ray and on the segment.
func (r Ray) DistanceSqToSegment(v0, v1 Vec3, pointOnRay, pointOnSegment *Vec3) float32 {
	segCenter := v0.Add(v1).Mul(0.5)
	segDir := Normalize(v1.Sub(v0))
	diff := r.Origin.Sub(segCenter)

	segExtent := DistanceTo(v0, v1) * 0.5
	a01 := -r.Direction.Dot(segDir)
	b0 := diff.Dot(r.Direction)
	b1 := -diff.Dot(segDir)
	c := diff.Dot(diff)
	det := math32.Abs(1 - a01*a01)

	// Unconstrained minimum, scaled by det
	s0 := a01*b1 - b0
	s1 := a01*b0 - b1
	extDet := segExtent * det

	clampToSegment := func(v float32) float32 {
		return math32.Min(math32.Max(-segExtent, v), segExtent)
	}

	var sqrDist float32
	switch classifySegmentRegion(det, s0, s1, extDet) {
	case regionInterior:
		invDet := 1 / det
		s0 *= invDet
		s1 *= invDet
		sqrDist = s0*(s0+a01*s1+2*b0) + s1*(a01*s0+s1+2*b1) + c
	case regionSegmentEnd:
		s1 = segExtent
		s0 = math32.Max(0, -(a01*s1 + b0))
		sqrDist = -s0*s0 + s1*(s1+2*b1) + c
	case regionSegmentStart:
		s1 = -segExtent
		s0 = math32.Max(0, -(a01*s1 + b0))
		sqrDist = -s0*s0 + s1*(s1+2*b1) + c
	case regionOriginSegmentStart:
		s0 = math32.Max(0, -(-a01*segExtent + b0))
		if s0 > 0 {
			s1 = -segExtent
		} else {
			s1 = clampToSegment(-b1)
		}
		sqrDist = -s0*s0 + s1*(s1+2*b1) + c
	case regionOrigin:
		s0 = 0
		s1 = clampToSegment(-b1)
		sqrDist = s1*(s1+2*b1) + c
	case regionOriginSegmentEnd:
		s0 = math32.Max(0, -(a01*segExtent + b0))
		if s0 > 0 {
			s1 = segExtent
		} else {
			s1 = clampToSegment(-b1)
		}
		sqrDist = -s0*s0 + s1*(s1+2*b1) + c
	case regionParallel:
		// Minimum sits at the segment endpoint nearer the ray
		if a01 > 0 {
			s1 = -segExtent
		} else {
			s1 = segExtent
		}
		s0 = math32.Max(0, -(a01*s1 + b0))
		sqrDist = -s0*s0 + s1*(s1+2*b1) + c
	}

	if pointOnRay != nil {
		*pointOnRay = r.At(s0)
	}
	if pointOnSegment != nil {
		*pointOnSegment = segCenter.Add(segDir.Mul(s1))
	}

	return sqrDist
}

// SegmentDistanceSq is DistanceSqToSegment for a Segment value
func (r Ray) SegmentDistanceSq(seg Segment, pointOnRay, pointOnSegment *Vec3) float32 {
	return r.DistanceSqToSegment(seg.Start, seg.End, pointOnRay, pointOnSegment)
}

// IntersectSphere returns the first point where the ray enters the sphere,
// or the exit point when the origin is inside it
func (r Ray) IntersectSphere(sphere Sphere) (Vec3, bool) {
	toCenter := sphere.Center.Sub(r.Origin)
	tca := toCenter.Dot(r.Direction)
	d2 := toCenter.Dot(toCenter) - tca*tca
	radius2 := sphere.Radius * sphere.Radius

	if d2 > radius2 {
		return Vec3{}, false
	}

	thc := math32.Sqrt(radius2 - d2)
	t0 := tca - thc // entry
	t1 := tca + thc // exit

	if t0 < 0 && t1 < 0 {
		return Vec3{}, false
	}
	if t0 < 0 {
		return r.At(t1), true
	}
	return r.At(t0), true
}

// IntersectsSphere reports whether the ray passes within the sphere's radius
func (r Ray) IntersectsSphere(sphere Sphere) bool {
	return r.DistanceSqToPoint(sphere.Center) <= sphere.Radius*sphere.Radius
}

// DistanceToPlane returns the ray parameter where the ray crosses plane.
// A ray lying in the plane gives 0. NoIntersection is returned when the ray
// is parallel to the plane or the plane is behind it.
func (r Ray) DistanceToPlane(plane Plane) float32 {
	denominator := plane.Normal.Dot(r.Direction)
	if denominator == 0 {
		if plane.DistanceToPoint(r.Origin) == 0 {
			return 0
		}
		return NoIntersection
	}

	t := -(r.Origin.Dot(plane.Normal) + plane.Constant) / denominator
	if t >= 0 {
		return t
	}
	return NoIntersection
}

// IntersectPlane returns the point where the ray crosses plane
func (r Ray) IntersectPlane(plane Plane) (Vec3, bool) {
	t := r.DistanceToPlane(plane)
	if t == NoIntersection {
		return Vec3{}, false
	}
	return r.At(t), true
}

// IntersectsPlane reports whether the ray starts on plane or heads toward it
func (r Ray) IntersectsPlane(plane Plane) bool {
	distance := plane.DistanceToPoint(r.Origin)
	if distance == 0 {
		return true
	}
	if plane.Normal.Dot(r.Direction)*distance < 0 {
		return true
	}
	return false
}

// IntersectBox returns the point where the ray enters box using the slab
// method, or the exit point when the origin is inside the box.
//
// Zero direction components give infinite reciprocals. When the origin lies
// exactly on a slab plane this produces 0*Inf = NaN bounds, which are replaced
// by the other axis' bound.
func (r Ray) IntersectBox(box Box3) (Vec3, bool) {
	var tmin, tmax float32

	for axis := 0; axis < 3; axis++ {
		near, far := slab(box.Min[axis], box.Max[axis], r.Origin[axis], 1/r.Direction[axis])
		if axis == 0 {
			tmin, tmax = near, far
			continue
		}

		if tmin > far || near > tmax {
			return Vec3{}, false
		}
		if near > tmin || math32.IsNaN(tmin) {
			tmin = near
		}
		if far < tmax || math32.IsNaN(tmax) {
			tmax = far
		}
	}

	// Box is behind the ray
	if tmax < 0 {
		return Vec3{}, false
	}
	if tmin >= 0 {
		return r.At(tmin), true
	}
	return r.At(tmax), true
}

// slab returns the entry and exit parameters for one axis
func slab(min, max, origin, invDirection float32) (near, far float32) {
	if invDirection >= 0 {
		return (min - origin) * invDirection, (max - origin) * invDirection
	}
	return (max - origin) * invDirection, (min - origin) * invDirection
}

// IntersectsBox reports whether the ray hits box
func (r Ray) IntersectsBox(box Box3) bool {
	_, ok := r.IntersectBox(box)
	return ok
}

// IntersectTriangle returns the point where the ray hits triangle (a, b, c).
// With backfaceCulling set, hits on the side facing away from the
// counter-clockwise normal are rejected.
func (r Ray) IntersectTriangle(a, b, c Vec3, backfaceCulling bool) (Vec3, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	normal := edge1.Cross(edge2)

	// Solve Q + t*D = b1*E1 + b2*E2 with Q = origin - a, N = E1 x E2:
	//   |D·N|*b1 = sign(D·N) * D·(Q x E2)
	//   |D·N|*b2 = sign(D·N) * D·(E1 x Q)
	//   |D·N|*t  = -sign(D·N) * Q·N
	DdN := r.Direction.Dot(normal)
	var sign float32
	switch {
	case DdN > 0:
		if backfaceCulling {
			return Vec3{}, false
		}
		sign = 1
	case DdN < 0:
		sign = -1
		DdN = -DdN
	default:
		return Vec3{}, false
	}

	diff := r.Origin.Sub(a)
	DdQxE2 := sign * r.Direction.Dot(diff.Cross(edge2))
	if DdQxE2 < 0 {
		return Vec3{}, false
	}

	DdE1xQ := sign * r.Direction.Dot(edge1.Cross(diff))
	if DdE1xQ < 0 {
		return Vec3{}, false
	}

	// b1 + b2 > 1
	if DdQxE2+DdE1xQ > DdN {
		return Vec3{}, false
	}

	// Line hits the triangle; reject when it is behind the ray
	QdN := -sign * diff.Dot(normal)
	if QdN < 0 {
		return Vec3{}, false
	}

	return r.At(QdN / DdN), true
}

// IntersectTriangleFace is IntersectTriangle for a Triangle value
func (r Ray) IntersectTriangleFace(tri Triangle, backfaceCulling bool) (Vec3, bool) {
	return r.IntersectTriangle(tri.A, tri.B, tri.C, backfaceCulling)
}
