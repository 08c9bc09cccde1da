package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-raycaster/pkg/core"
)

// vec3 decodes a three element YAML sequence
type vec3 core.Vec3

func (v *vec3) UnmarshalYAML(node *yaml.Node) error {
	var components []float32
	if err := node.Decode(&components); err != nil {
		return err
	}
	if len(components) != 3 {
		return fmt.Errorf("line %d: expected 3 components, got %d", node.Line, len(components))
	}
	*v = vec3{components[0], components[1], components[2]}
	return nil
}

type cameraFile struct {
	Center *vec3   `yaml:"center"`
	LookAt *vec3   `yaml:"lookAt"`
	Up     *vec3   `yaml:"up"`
	VFov   float32 `yaml:"vfov"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

type objectFile struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	// sphere
	Center *vec3    `yaml:"center"`
	Radius *float32 `yaml:"radius"`

	// plane: normal with either a point or a constant, or three vertices
	Normal   *vec3    `yaml:"normal"`
	Point    *vec3    `yaml:"point"`
	Constant *float32 `yaml:"constant"`

	// box
	Min *vec3 `yaml:"min"`
	Max *vec3 `yaml:"max"`

	// triangle and mesh; a mesh may instead come from a PLY file
	Vertices        []vec3  `yaml:"vertices"`
	Faces           [][]int `yaml:"faces"`
	File            string  `yaml:"file"`
	BackfaceCulling bool    `yaml:"backfaceCulling"`
}

type sceneFile struct {
	Name    string       `yaml:"name"`
	Camera  cameraFile   `yaml:"camera"`
	Objects []objectFile `yaml:"objects"`
}

// DefaultCameraConfig is used for any camera field a scene file leaves out
var DefaultCameraConfig = CameraConfig{
	Center: core.NewVec3(0, 0, 5),
	LookAt: core.NewVec3(0, 0, 0),
	Up:     core.NewVec3(0, 1, 0),
	VFov:   40,
	Width:  400,
	Height: 300,
}

// Load reads a scene from a YAML (or JSON) file. Mesh files are resolved
// relative to the scene file.
func Load(path string, logger zerolog.Logger) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}

	s, err := parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	logger.Debug().
		Str("path", path).
		Str("scene", s.Name).
		Int("objects", len(s.Objects)).
		Int("primitives", s.GetPrimitiveCount()).
		Msg("loaded scene")
	return s, nil
}

// Parse decodes a scene document. Mesh files are resolved relative to the
// working directory.
func Parse(data []byte) (*Scene, error) {
	return parse(data, "")
}

func parse(data []byte, baseDir string) (*Scene, error) {
	var file sceneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	s := NewScene(file.Name, file.Camera.resolve())
	for i, object := range file.Objects {
		name := object.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", object.Kind, i)
		}

		shape, err := object.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("object %d (%q): %w", i, name, err)
		}
		s.Add(name, shape)
	}

	return s, nil
}

func (c cameraFile) resolve() CameraConfig {
	config := DefaultCameraConfig
	if c.Center != nil {
		config.Center = core.Vec3(*c.Center)
	}
	if c.LookAt != nil {
		config.LookAt = core.Vec3(*c.LookAt)
	}
	if c.Up != nil {
		config.Up = core.Vec3(*c.Up)
	}
	if c.VFov > 0 {
		config.VFov = c.VFov
	}
	if c.Width > 0 {
		config.Width = c.Width
	}
	if c.Height > 0 {
		config.Height = c.Height
	}
	return config
}

func (o objectFile) build(baseDir string) (Shape, error) {
	switch o.Kind {
	case "sphere":
		if o.Center == nil || o.Radius == nil {
			return nil, fmt.Errorf("sphere needs center and radius")
		}
		return NewSphereShape(core.Vec3(*o.Center), *o.Radius), nil

	case "plane":
		if o.Normal == nil && len(o.Vertices) == 3 {
			plane := core.NewPlaneFromCoplanarPoints(
				core.Vec3(o.Vertices[0]),
				core.Vec3(o.Vertices[1]),
				core.Vec3(o.Vertices[2]),
			)
			if plane.Normal == (core.Vec3{}) {
				return nil, fmt.Errorf("plane vertices are collinear")
			}
			return &PlaneShape{Plane: plane}, nil
		}
		if o.Normal == nil {
			return nil, fmt.Errorf("plane needs a normal or three vertices")
		}
		normal := core.Vec3(*o.Normal)
		switch {
		case o.Point != nil:
			return NewPlaneShape(core.Vec3(*o.Point), normal), nil
		case o.Constant != nil:
			return &PlaneShape{Plane: core.NewPlane(normal, *o.Constant).Normalize()}, nil
		default:
			return nil, fmt.Errorf("plane needs a point or a constant")
		}

	case "box":
		if o.Min == nil || o.Max == nil {
			return nil, fmt.Errorf("box needs min and max")
		}
		box := NewBoxShape(core.Vec3(*o.Min), core.Vec3(*o.Max))
		if !box.Box.IsValid() {
			return nil, fmt.Errorf("box min exceeds max")
		}
		return box, nil

	case "triangle":
		if len(o.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(o.Vertices))
		}
		return NewTriangleShape(
			core.Vec3(o.Vertices[0]),
			core.Vec3(o.Vertices[1]),
			core.Vec3(o.Vertices[2]),
			o.BackfaceCulling,
		), nil

	case "mesh":
		if o.File != "" {
			if len(o.Vertices) > 0 || len(o.Faces) > 0 {
				return nil, fmt.Errorf("mesh takes either a file or vertices and faces")
			}
			path := o.File
			if !filepath.IsAbs(path) && baseDir != "" {
				path = filepath.Join(baseDir, path)
			}
			data, err := LoadPLY(path)
			if err != nil {
				return nil, err
			}
			if len(data.Faces) == 0 {
				return nil, fmt.Errorf("mesh needs at least one face")
			}
			return NewMeshShape(data.Vertices, data.Faces, o.BackfaceCulling), nil
		}

		vertices := make([]core.Vec3, len(o.Vertices))
		for i, v := range o.Vertices {
			vertices[i] = core.Vec3(v)
		}
		faces := make([][3]int, len(o.Faces))
		for i, face := range o.Faces {
			if len(face) != 3 {
				return nil, fmt.Errorf("face %d: expected 3 indices, got %d", i, len(face))
			}
			for _, index := range face {
				if index < 0 || index >= len(vertices) {
					return nil, fmt.Errorf("face %d: vertex index %d out of range", i, index)
				}
			}
			faces[i] = [3]int{face[0], face[1], face[2]}
		}
		if len(faces) == 0 {
			return nil, fmt.Errorf("mesh needs at least one face")
		}
		return NewMeshShape(vertices, faces, o.BackfaceCulling), nil

	case "":
		return nil, fmt.Errorf("missing kind")
	default:
		return nil, fmt.Errorf("unknown kind %q", o.Kind)
	}
}
