package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Brightness of the farthest hit; misses stay black
const minBrightness = 0x1000

// Options controls a depth render
type Options struct {
	Width       int // Output width in pixels, 0 uses the scene camera
	Height      int // Output height in pixels, 0 uses the scene camera
	Supersample int // Render at this multiple of the output size, then downscale
	Workers     int // Number of workers, <= 0 uses one per CPU
}

// Raytracer renders depth maps of a scene
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	width      int
	height     int
	numWorkers int
	logger     zerolog.Logger
}

// NewRaytracer creates a raytracer for the scene's camera at the given resolution
func NewRaytracer(s *scene.Scene, width, height int) *Raytracer {
	config := s.Camera
	config.Width = width
	config.Height = height

	return &Raytracer{
		scene:  s,
		camera: NewCamera(config),
		width:  width,
		height: height,
		logger: zerolog.Nop(),
	}
}

// SetWorkers sets the number of parallel workers
func (rt *Raytracer) SetWorkers(numWorkers int) {
	rt.numWorkers = numWorkers
}

// SetLogger sets the logger used for render progress
func (rt *Raytracer) SetLogger(logger zerolog.Logger) {
	rt.logger = logger
}

// Render casts one primary ray per pixel and returns the depth map.
// Nearer hits are brighter.
func (rt *Raytracer) Render(ctx context.Context) (*image.Gray16, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("renderer: invalid image size %dx%d", rt.width, rt.height)
	}

	start := time.Now()
	distances := make([]float32, rt.width*rt.height)

	pool := NewWorkerPool(rt, rt.height, rt.numWorkers)
	pool.Start(ctx)
	for y := 0; y < rt.height; y++ {
		pool.SubmitTask(RowTask{Y: y, Distances: distances[y*rt.width : (y+1)*rt.width]})
	}

	stats := RenderStats{Width: rt.width, Height: rt.height, Workers: pool.GetNumWorkers()}
	var renderErr error
	for i := 0; i < rt.height; i++ {
		result, _ := pool.GetResult()
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)
	}
	pool.Stop()
	stats.Elapsed = time.Since(start)

	if renderErr != nil {
		return nil, stats, fmt.Errorf("renderer: %w", renderErr)
	}

	rt.logger.Debug().
		Int("width", rt.width).
		Int("height", rt.height).
		Int("workers", stats.Workers).
		Int("hits", stats.Hits).
		Dur("elapsed", stats.Elapsed).
		Msg("rendered rows")

	return shade(distances, rt.width, rt.height, stats.RowStats), stats, nil
}

// renderRow fills distances with the nearest hit distance of every pixel in
// row y, or core.NoIntersection for a miss
func (rt *Raytracer) renderRow(y int, distances []float32) RowStats {
	var stats RowStats
	t := 1 - (float32(y)+0.5)/float32(rt.height)

	for x := 0; x < rt.width; x++ {
		s := (float32(x) + 0.5) / float32(rt.width)
		hit := rt.scene.Nearest(rt.camera.GetRay(s, t))
		if opt.IsNone(hit) {
			distances[x] = core.NoIntersection
			stats.AddRay(0, false)
			continue
		}
		distances[x] = hit.Value.Distance
		stats.AddRay(hit.Value.Distance, true)
	}

	return stats
}

// shade maps hit distances onto gray levels between white (nearest) and
// minBrightness (farthest)
func shade(distances []float32, width, height int, stats RowStats) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, width, height))
	depthRange := stats.MaxDistance - stats.MinDistance

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			distance := distances[y*width+x]
			if distance == core.NoIntersection {
				continue
			}

			var normalized float32
			if depthRange > 0 {
				normalized = (distance - stats.MinDistance) / depthRange
			}
			value := float32(0xffff) - normalized*float32(0xffff-minBrightness)
			img.SetGray16(x, y, color.Gray16{Y: uint16(value)})
		}
	}

	return img
}

// RenderDepth renders a depth map of s, supersampling when requested
func RenderDepth(ctx context.Context, s *scene.Scene, options Options, logger zerolog.Logger) (*image.Gray16, RenderStats, error) {
	width, height := options.Width, options.Height
	if width <= 0 {
		width = s.Camera.Width
	}
	if height <= 0 {
		height = s.Camera.Height
	}
	supersample := options.Supersample
	if supersample < 1 {
		supersample = 1
	}

	rt := NewRaytracer(s, width*supersample, height*supersample)
	rt.SetWorkers(options.Workers)
	rt.SetLogger(logger)

	img, stats, err := rt.Render(ctx)
	if err != nil {
		return nil, stats, err
	}
	if supersample > 1 {
		img = Downsample(img, width, height)
	}

	logger.Info().
		Str("scene", s.Name).
		Int("width", width).
		Int("height", height).
		Int("supersample", supersample).
		Int("rays", stats.Rays).
		Int("hits", stats.Hits).
		Float64("hitRatio", stats.HitRatio()).
		Dur("elapsed", stats.Elapsed).
		Msg("rendered depth map")

	return img, stats, nil
}
