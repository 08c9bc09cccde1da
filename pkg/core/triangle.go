package core

// Triangle is defined by three vertices in counter-clockwise order
type Triangle struct {
	A, B, C Vec3
}

// NewTriangle creates a new triangle
func NewTriangle(a, b, c Vec3) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Normal returns the unit face normal. Degenerate triangles give the zero vector.
func (t Triangle) Normal() Vec3 {
	return Normalize(t.B.Sub(t.A).Cross(t.C.Sub(t.A)))
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t Triangle) BoundingBox() Box3 {
	return NewBox3FromPoints(t.A, t.B, t.C)
}

// Barycentric returns the barycentric weights (wA, wB, wC) of p projected onto
// the triangle's plane. It returns false for a degenerate triangle.
func (t Triangle) Barycentric(p Vec3) (Vec3, bool) {
	v0 := t.C.Sub(t.A)
	v1 := t.B.Sub(t.A)
	v2 := p.Sub(t.A)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return Vec3{}, false
	}

	inverse := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * inverse
	v := (dot00*dot12 - dot01*dot02) * inverse

	return NewVec3(1-u-v, v, u), true
}

// ContainsPoint reports whether p, projected onto the triangle's plane,
// falls inside the triangle
func (t Triangle) ContainsPoint(p Vec3) bool {
	w, ok := t.Barycentric(p)
	if !ok {
		return false
	}
	return w[0] >= 0 && w[1] >= 0 && w[2] >= 0
}
