package main

import (
	"context"
	"fmt"
	"io"

	"github.com/chewxy/math32"
	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"

	"github.com/df07/go-raycaster/pkg/config"
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// loadScene resolves a built-in scene name or a scene file path
func loadScene(ref string) (*scene.Scene, error) {
	for _, name := range scene.BuiltinNames() {
		if ref == name {
			return scene.Builtin(name)
		}
	}
	return scene.Load(ref, log.Logger)
}

func toVec3(flag string, values []float32) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("--%s: expected x,y,z, got %d values", flag, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%.4g, %.4g, %.4g)", v[0], v[1], v[2])
}

func castCommand(w io.Writer, sceneRef string, originValues, directionValues []float32, all, normalize bool) error {
	origin, err := toVec3("origin", originValues)
	if err != nil {
		return err
	}
	direction, err := toVec3("direction", directionValues)
	if err != nil {
		return err
	}
	if normalize {
		direction = core.Normalize(direction)
	}

	s, err := loadScene(sceneRef)
	if err != nil {
		return err
	}

	ray := core.NewRay(origin, direction)
	log.Debug().Str("scene", s.Name).Stringer("ray", ray).Msg("casting")

	var hits []scene.Hit
	if all {
		hits = s.All(ray)
	} else if nearest := s.Nearest(ray); opt.IsSome(nearest) {
		hits = append(hits, nearest.Value)
	}

	if len(hits) == 0 {
		fmt.Fprintln(w, "no hit")
		return nil
	}
	for _, hit := range hits {
		fmt.Fprintf(w, "hit %s (%s) at %s distance %.4g\n", hit.Object, hit.Kind, formatVec(hit.Point), hit.Distance)
	}
	return nil
}

func distanceCommand(w io.Writer, originValues, directionValues, pointValues, segmentValues []float32) error {
	origin, err := toVec3("origin", originValues)
	if err != nil {
		return err
	}
	direction, err := toVec3("direction", directionValues)
	if err != nil {
		return err
	}
	ray := core.NewRay(origin, direction)

	if pointValues != nil {
		point, err := toVec3("point", pointValues)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "distance %.6g\n", ray.DistanceToPoint(point))
		fmt.Fprintf(w, "closest point %s\n", formatVec(ray.ClosestPointToPoint(point)))
		return nil
	}

	if segmentValues == nil {
		return fmt.Errorf("one of --point or --segment is required")
	}
	if len(segmentValues) != 6 {
		return fmt.Errorf("--segment: expected x0,y0,z0,x1,y1,z1, got %d values", len(segmentValues))
	}
	segment := core.NewSegment(
		core.NewVec3(segmentValues[0], segmentValues[1], segmentValues[2]),
		core.NewVec3(segmentValues[3], segmentValues[4], segmentValues[5]),
	)

	var onRay, onSegment core.Vec3
	distanceSq := ray.SegmentDistanceSq(segment, &onRay, &onSegment)
	fmt.Fprintf(w, "distance %.6g\n", math32.Sqrt(distanceSq))
	fmt.Fprintf(w, "point on ray %s\n", formatVec(onRay))
	fmt.Fprintf(w, "point on segment %s\n", formatVec(onSegment))
	return nil
}

func renderCommand(ctx context.Context, configPath string, flags config.Flags) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := loadScene(cfg.Scene)
	if err != nil {
		return err
	}

	img, _, err := renderer.RenderDepth(ctx, s, cfg.RenderOptions(), log.Logger)
	if err != nil {
		return err
	}
	if err := renderer.SaveImage(cfg.Output, img, cfg.Format); err != nil {
		return err
	}

	log.Info().Str("output", cfg.Output).Str("format", cfg.Format).Msg("wrote depth map")
	return nil
}
