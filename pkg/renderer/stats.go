package renderer

import "time"

// RowStats contains statistics about a single rendered row
type RowStats struct {
	Rays        int     // Primary rays cast
	Hits        int     // Rays that hit an object
	MinDistance float32 // Nearest hit distance (valid when Hits > 0)
	MaxDistance float32 // Farthest hit distance (valid when Hits > 0)
}

// AddRay records a cast ray and, when it hit something, its hit distance
func (rs *RowStats) AddRay(distance float32, hit bool) {
	rs.Rays++
	if !hit {
		return
	}
	if rs.Hits == 0 || distance < rs.MinDistance {
		rs.MinDistance = distance
	}
	if rs.Hits == 0 || distance > rs.MaxDistance {
		rs.MaxDistance = distance
	}
	rs.Hits++
}

// Merge folds other into rs
func (rs *RowStats) Merge(other RowStats) {
	if other.Hits > 0 {
		if rs.Hits == 0 || other.MinDistance < rs.MinDistance {
			rs.MinDistance = other.MinDistance
		}
		if rs.Hits == 0 || other.MaxDistance > rs.MaxDistance {
			rs.MaxDistance = other.MaxDistance
		}
	}
	rs.Rays += other.Rays
	rs.Hits += other.Hits
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RowStats
	Width   int           // Rendered width in pixels, before downsampling
	Height  int           // Rendered height in pixels, before downsampling
	Workers int           // Number of workers used
	Elapsed time.Duration // Wall time of the render
}

// HitRatio returns the fraction of rays that hit something
func (rs RenderStats) HitRatio() float64 {
	if rs.Rays == 0 {
		return 0
	}
	return float64(rs.Hits) / float64(rs.Rays)
}
