package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-raycaster/pkg/renderer"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scene: cornell\noutput: cornell.webp\nwidth: 200\nsupersample: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Scene: "cornell", Output: "cornell.webp", Width: 200, Supersample: 2}, cfg)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "config: read")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("width: [1, 2"), 0644))
	_, err = Load(broken)
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		flags    Flags
		expected Config
	}{
		{
			name:   "empty config gets defaults",
			config: Config{},
			expected: Config{
				Scene: "default", Output: "depth.png", Format: "png",
				Supersample: 1, Workers: runtime.NumCPU(),
			},
		},
		{
			name:   "format follows output extension",
			config: Config{Output: "out.tga"},
			expected: Config{
				Scene: "default", Output: "out.tga", Format: "tga",
				Supersample: 1, Workers: runtime.NumCPU(),
			},
		},
		{
			name:   "unknown extension falls back to png",
			config: Config{Output: "out.img"},
			expected: Config{
				Scene: "default", Output: "out.img", Format: "png",
				Supersample: 1, Workers: runtime.NumCPU(),
			},
		},
		{
			name:   "explicit format is kept",
			config: Config{Output: "out.img", Format: "webp"},
			expected: Config{
				Scene: "default", Output: "out.img", Format: "webp",
				Supersample: 1, Workers: runtime.NumCPU(),
			},
		},
		{
			name:   "flags override file",
			config: Config{Scene: "cornell", Output: "a.png", Format: "png", Width: 100, Height: 100, Supersample: 2, Workers: 2},
			flags:  Flags{Scene: "spheregrid", Output: "b.webp", Width: 64, Height: 32, Supersample: 4, Workers: 8},
			expected: Config{
				Scene: "spheregrid", Output: "b.webp", Format: "webp",
				Width: 64, Height: 32, Supersample: 4, Workers: 8,
			},
		},
		{
			name:   "zero flags keep file values",
			config: Config{Scene: "cornell", Output: "a.webp", Format: "webp", Width: 100, Height: 50, Supersample: 2, Workers: 2},
			expected: Config{
				Scene: "cornell", Output: "a.webp", Format: "webp",
				Width: 100, Height: 50, Supersample: 2, Workers: 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config
			cfg.Resolve(tt.flags)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name     string
		modify   func(*Config)
		contains string
	}{
		{"format", func(c *Config) { c.Format = "jpeg" }, "unsupported format"},
		{"negative width", func(c *Config) { c.Width = -1 }, "invalid size"},
		{"zero supersample", func(c *Config) { c.Supersample = 0 }, "supersample"},
		{"large supersample", func(c *Config) { c.Supersample = MaxSupersample + 1 }, "supersample"},
		{"empty output", func(c *Config) { c.Output = "" }, "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.contains)
		})
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := Config{Width: 10, Height: 20, Supersample: 3, Workers: 4}
	assert.Equal(t, renderer.Options{Width: 10, Height: 20, Supersample: 3, Workers: 4}, cfg.RenderOptions())
}
