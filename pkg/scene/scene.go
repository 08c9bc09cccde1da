package scene

import (
	"sort"

	opt "github.com/repeale/fp-go/option"

	"github.com/df07/go-raycaster/pkg/core"
)

// Object is a named shape in a scene
type Object struct {
	Name  string
	Shape Shape
}

// CameraConfig describes the pinhole camera used to render a scene
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float32   // Vertical field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
}

// Scene is a flat collection of named shapes
type Scene struct {
	Name    string
	Objects []Object
	Camera  CameraConfig
}

// Hit is a ray/object intersection
type Hit struct {
	Object   string    // Name of the object that was hit
	Kind     string    // Shape kind of the object
	Point    core.Vec3 // Intersection point
	Distance float32   // Euclidean distance from the ray origin
}

// NewScene creates an empty scene
func NewScene(name string, camera CameraConfig) *Scene {
	return &Scene{Name: name, Camera: camera}
}

// Add appends a named shape to the scene
func (s *Scene) Add(name string, shape Shape) {
	s.Objects = append(s.Objects, Object{Name: name, Shape: shape})
}

// Nearest returns the hit closest to the ray origin, if any
func (s *Scene) Nearest(ray core.Ray) opt.Option[Hit] {
	var nearest Hit
	found := false

	for _, object := range s.Objects {
		hit, ok := intersect(object, ray)
		if !ok {
			continue
		}
		if !found || hit.Distance < nearest.Distance {
			nearest = hit
			found = true
		}
	}

	if !found {
		return opt.None[Hit]()
	}
	return opt.Some[Hit](nearest)
}

// All returns every hit along the ray, nearest first
func (s *Scene) All(ray core.Ray) []Hit {
	hits := make([]Hit, 0)
	for _, object := range s.Objects {
		if hit, ok := intersect(object, ray); ok {
			hits = append(hits, hit)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func intersect(object Object, ray core.Ray) (Hit, bool) {
	point, ok := object.Shape.Intersect(ray)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Object:   object.Name,
		Kind:     object.Shape.Kind(),
		Point:    point,
		Distance: core.DistanceTo(ray.Origin, point),
	}, true
}

// Bounds returns the union of all object bounding boxes
func (s *Scene) Bounds() core.Box3 {
	if len(s.Objects) == 0 {
		return core.Box3{}
	}

	bounds := s.Objects[0].Shape.BoundingBox()
	for _, object := range s.Objects[1:] {
		bounds = bounds.Union(object.Shape.BoundingBox())
	}
	return bounds
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		switch shape := object.Shape.(type) {
		case *MeshShape:
			count += shape.GetTriangleCount()
		default:
			count++
		}
	}
	return count
}
