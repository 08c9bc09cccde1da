package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-raycaster/pkg/core"
)

var builtins = map[string]func() *Scene{
	"default":    NewDefaultScene,
	"cornell":    NewCornellScene,
	"spheregrid": NewSphereGridScene,
}

// Builtin returns one of the built-in scenes by name
func Builtin(name string) (*Scene, error) {
	constructor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown built-in scene %q (available: %v)", name, BuiltinNames())
	}
	return constructor(), nil
}

// BuiltinNames lists the built-in scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefaultScene creates a ground plane with a row of spheres and a box
func NewDefaultScene() *Scene {
	s := NewScene("default", CameraConfig{
		Center: core.NewVec3(0, 0.75, 2),
		LookAt: core.NewVec3(0, 0.5, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
		Width:  400,
		Height: 225,
	})

	s.Add("ground", NewPlaneShape(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	s.Add("center", NewSphereShape(core.NewVec3(0, 0.5, -1), 0.5))
	s.Add("left", NewSphereShape(core.NewVec3(-1, 0.5, -1), 0.5))
	s.Add("right", NewSphereShape(core.NewVec3(1, 0.5, -1), 0.5))
	s.Add("small", NewSphereShape(core.NewVec3(0.5, 0.25, -0.5), 0.25))
	s.Add("crate", NewBoxShape(core.NewVec3(-0.75, 0, -0.75), core.NewVec3(-0.35, 0.4, -0.35)))

	return s
}

// NewCornellScene creates the classic 555-unit Cornell box with two blocks
func NewCornellScene() *Scene {
	const boxSize = 555

	s := NewScene("cornell", CameraConfig{
		Center: core.NewVec3(278, 278, -800),
		LookAt: core.NewVec3(278, 278, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
		Width:  400,
		Height: 400,
	})

	// Walls face into the box
	s.Add("floor", NewQuadMesh(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		false,
	))
	s.Add("ceiling", NewQuadMesh(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		false,
	))
	s.Add("back", NewQuadMesh(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		false,
	))
	s.Add("left", NewQuadMesh(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		false,
	))
	s.Add("right", NewQuadMesh(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		false,
	))

	s.Add("short-block", NewBoxShape(core.NewVec3(130, 0, 65), core.NewVec3(295, 165, 230)))
	s.Add("tall-block", NewBoxShape(core.NewVec3(265, 0, 295), core.NewVec3(430, 330, 460)))

	return s
}

// NewSphereGridScene creates a ground plane with a 10x10 grid of spheres
func NewSphereGridScene() *Scene {
	const gridSize = 10
	const spacing = 1.0
	const radius = 0.4

	s := NewScene("spheregrid", CameraConfig{
		Center: core.NewVec3(4.5, 6, 18),
		LookAt: core.NewVec3(4.5, 0.8, 4.5),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
		Width:  800,
		Height: 450,
	})

	s.Add("ground", NewPlaneShape(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			center := core.NewVec3(float32(i)*spacing, radius, float32(j)*spacing)
			s.Add(fmt.Sprintf("sphere-%d-%d", i, j), NewSphereShape(center, radius))
		}
	}

	return s
}
