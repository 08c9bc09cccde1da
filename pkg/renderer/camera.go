package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Camera generates primary rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a pinhole camera from a scene camera configuration
func NewCamera(config scene.CameraConfig) *Camera {
	aspectRatio := float32(1)
	if config.Width > 0 && config.Height > 0 {
		aspectRatio = float32(config.Width) / float32(config.Height)
	}
	theta := mgl32.DegToRad(config.VFov)
	viewportHeight := 2 * math32.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	// Orthonormal basis; w points backwards from the view direction
	w := core.Normalize(config.Center.Sub(config.LookAt))
	u := core.Normalize(config.Up.Cross(w))
	v := w.Cross(u)

	horizontal := u.Mul(viewportWidth)
	vertical := v.Mul(viewportHeight)
	lowerLeftCorner := config.Center.
		Sub(horizontal.Mul(0.5)).
		Sub(vertical.Mul(0.5)).
		Sub(w)

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
// and (0, 0) is the lower-left corner of the image
func (c *Camera) GetRay(s, t float32) core.Ray {
	target := c.lowerLeftCorner.
		Add(c.horizontal.Mul(s)).
		Add(c.vertical.Mul(t))

	ray := core.NewRay(c.origin, core.Vec3{})
	ray.LookAt(target)
	return ray
}
