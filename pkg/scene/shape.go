package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// Shape is anything a ray can be cast against
type Shape interface {
	Kind() string
	Intersect(ray core.Ray) (core.Vec3, bool)
	BoundingBox() core.Box3
}

// SphereShape wraps a core.Sphere
type SphereShape struct {
	core.Sphere
}

// NewSphereShape creates a sphere shape
func NewSphereShape(center core.Vec3, radius float32) *SphereShape {
	return &SphereShape{Sphere: core.NewSphere(center, radius)}
}

func (s *SphereShape) Kind() string { return "sphere" }

// Intersect returns the entry point, or the exit point when the ray starts inside
func (s *SphereShape) Intersect(ray core.Ray) (core.Vec3, bool) {
	return ray.IntersectSphere(s.Sphere)
}

// PlaneShape wraps an infinite core.Plane
type PlaneShape struct {
	core.Plane
}

// NewPlaneShape creates a plane shape through point with the given normal
func NewPlaneShape(point, normal core.Vec3) *PlaneShape {
	return &PlaneShape{Plane: core.NewPlaneFromNormalAndCoplanarPoint(core.Normalize(normal), point)}
}

func (p *PlaneShape) Kind() string { return "plane" }

func (p *PlaneShape) Intersect(ray core.Ray) (core.Vec3, bool) {
	return ray.IntersectPlane(p.Plane)
}

// BoxShape wraps an axis-aligned core.Box3
type BoxShape struct {
	Box core.Box3
}

// NewBoxShape creates an axis-aligned box shape
func NewBoxShape(min, max core.Vec3) *BoxShape {
	return &BoxShape{Box: core.NewBox3(min, max)}
}

func (b *BoxShape) Kind() string { return "box" }

func (b *BoxShape) Intersect(ray core.Ray) (core.Vec3, bool) {
	return ray.IntersectBox(b.Box)
}

func (b *BoxShape) BoundingBox() core.Box3 {
	return b.Box
}

// TriangleShape wraps a single core.Triangle
type TriangleShape struct {
	core.Triangle
	BackfaceCulling bool // Reject hits on the clockwise side
}

// NewTriangleShape creates a triangle shape
func NewTriangleShape(a, b, c core.Vec3, backfaceCulling bool) *TriangleShape {
	return &TriangleShape{Triangle: core.NewTriangle(a, b, c), BackfaceCulling: backfaceCulling}
}

func (t *TriangleShape) Kind() string { return "triangle" }

func (t *TriangleShape) Intersect(ray core.Ray) (core.Vec3, bool) {
	return ray.IntersectTriangleFace(t.Triangle, t.BackfaceCulling)
}

// MeshShape is a triangle soup; the hit nearest the ray origin wins
type MeshShape struct {
	Triangles       []core.Triangle
	BackfaceCulling bool
	bbox            core.Box3 // Cached bounding box
}

// NewMeshShape creates a mesh from indexed vertices. Each face holds three
// indices into vertices.
func NewMeshShape(vertices []core.Vec3, faces [][3]int, backfaceCulling bool) *MeshShape {
	triangles := make([]core.Triangle, 0, len(faces))
	for _, face := range faces {
		triangles = append(triangles, core.NewTriangle(vertices[face[0]], vertices[face[1]], vertices[face[2]]))
	}
	return NewMeshShapeFromTriangles(triangles, backfaceCulling)
}

// NewMeshShapeFromTriangles creates a mesh from explicit triangles
func NewMeshShapeFromTriangles(triangles []core.Triangle, backfaceCulling bool) *MeshShape {
	m := &MeshShape{Triangles: triangles, BackfaceCulling: backfaceCulling}
	if len(triangles) > 0 {
		m.bbox = triangles[0].BoundingBox()
		for _, tri := range triangles[1:] {
			m.bbox = m.bbox.Union(tri.BoundingBox())
		}
	}
	return m
}

// NewQuadMesh creates a parallelogram spanned by u and v from corner,
// wound counter-clockwise around u × v
func NewQuadMesh(corner, u, v core.Vec3, backfaceCulling bool) *MeshShape {
	b := corner.Add(u)
	c := corner.Add(u).Add(v)
	d := corner.Add(v)
	return NewMeshShapeFromTriangles([]core.Triangle{
		core.NewTriangle(corner, b, c),
		core.NewTriangle(corner, c, d),
	}, backfaceCulling)
}

func (m *MeshShape) Kind() string { return "mesh" }

func (m *MeshShape) Intersect(ray core.Ray) (core.Vec3, bool) {
	var closest core.Vec3
	closestDistance := float32(-1)

	for _, tri := range m.Triangles {
		point, ok := ray.IntersectTriangleFace(tri, m.BackfaceCulling)
		if !ok {
			continue
		}
		distance := core.DistanceSqTo(ray.Origin, point)
		if closestDistance < 0 || distance < closestDistance {
			closest = point
			closestDistance = distance
		}
	}

	return closest, closestDistance >= 0
}

func (m *MeshShape) BoundingBox() core.Box3 {
	return m.bbox
}

// GetTriangleCount returns the number of triangles in the mesh
func (m *MeshShape) GetTriangleCount() int {
	return len(m.Triangles)
}
