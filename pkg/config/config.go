package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-raycaster/pkg/renderer"
)

// MaxSupersample bounds the supersampling factor
const MaxSupersample = 8

// Config holds the render settings.
type Config struct {
	Scene       string `yaml:"scene"`       // Built-in scene name or path to a scene file
	Output      string `yaml:"output"`      // Output image path
	Format      string `yaml:"format"`      // png, webp or tga
	Width       int    `yaml:"width"`       // 0 uses the scene camera width
	Height      int    `yaml:"height"`      // 0 uses the scene camera height
	Supersample int    `yaml:"supersample"` // Render at this multiple and downscale
	Workers     int    `yaml:"workers"`     // Parallel workers
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene       string
	Output      string
	Width       int
	Height      int
	Supersample int
	Workers     int
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Scene:       "default",
		Output:      "depth.png",
		Format:      "png",
		Supersample: 1,
		Workers:     runtime.NumCPU(),
	}
}

// Load reads a YAML config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Output != "" {
		c.Output = flags.Output
		// A new output path implies its own format
		c.Format = ""
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	defaults := Default()
	if c.Scene == "" {
		c.Scene = defaults.Scene
	}
	if c.Output == "" {
		c.Output = defaults.Output
	}
	if c.Format == "" {
		if format, ok := renderer.FormatFromPath(c.Output); ok {
			c.Format = format
		} else {
			c.Format = defaults.Format
		}
	}
	if c.Supersample <= 0 {
		c.Supersample = defaults.Supersample
	}
	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	supported := false
	for _, format := range renderer.Formats {
		if c.Format == format {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("config: unsupported format %q (supported: %v)", c.Format, renderer.Formats)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.Supersample < 1 || c.Supersample > MaxSupersample {
		return fmt.Errorf("config: supersample must be between 1 and %d, got %d", MaxSupersample, c.Supersample)
	}
	if c.Output == "" {
		return fmt.Errorf("config: output path is empty")
	}
	return nil
}

// RenderOptions converts the settings to renderer options
func (c Config) RenderOptions() renderer.Options {
	return renderer.Options{
		Width:       c.Width,
		Height:      c.Height,
		Supersample: c.Supersample,
		Workers:     c.Workers,
	}
}
