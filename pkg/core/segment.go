package core

// Segment is a bounded line between two endpoints
type Segment struct {
	Start Vec3
	End   Vec3
}

// NewSegment creates a new segment
func NewSegment(start, end Vec3) Segment {
	return Segment{Start: start, End: end}
}

// Center returns the midpoint of the segment
func (s Segment) Center() Vec3 {
	return s.Start.Add(s.End).Mul(0.5)
}

// Delta returns the vector from Start to End
func (s Segment) Delta() Vec3 {
	return s.End.Sub(s.Start)
}

// Length returns the distance between the endpoints
func (s Segment) Length() float32 {
	return DistanceTo(s.Start, s.End)
}

// LengthSq returns the squared distance between the endpoints
func (s Segment) LengthSq() float32 {
	return DistanceSqTo(s.Start, s.End)
}

// At returns Start + Delta*t; t in [0, 1] stays on the segment
func (s Segment) At(t float32) Vec3 {
	return s.Start.Add(s.Delta().Mul(t))
}
