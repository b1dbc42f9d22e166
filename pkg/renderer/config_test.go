package renderer

import (
	"errors"
	"math"
	"runtime"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -3 }},
		{"zero tile", func(c *Config) { c.TileSize = 0 }},
		{"negative threads", func(c *Config) { c.NumThreads = -1 }},
		{"zero spp", func(c *Config) { c.SamplesPerPixel = 0 }},
		{"zero grid", func(c *Config) { c.GridDim = 0 }},
		{"flat fov", func(c *Config) { c.FOV = 180 }},
		{"negative depth", func(c *Config) { c.Integrator.MaxDepth = -1 }},
		{"infinite epsilon", func(c *Config) { c.Integrator.ShadowEpsilon = math.Inf(1) }},
		{"unknown mode", func(c *Config) { c.Mode = "gpu" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"threads", "SINGLE", "Gradient"} {
		if _, err := ParseMode(name); err != nil {
			t.Errorf("Expected %q to parse, got %v", name, err)
		}
	}
	if _, err := ParseMode("tiles"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigWorkersAndFOV(t *testing.T) {
	c := DefaultConfig()
	c.NumThreads = 0
	if c.workers() != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), c.workers())
	}
	c.FOV = 90
	if math.Abs(c.fovScale()-1) > 1e-12 {
		t.Errorf("Expected tan(45deg)=1, got %v", c.fovScale())
	}
}
