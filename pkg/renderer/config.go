package renderer

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

var (
	// ErrNoScene is returned when a renderer is created without a scene
	ErrNoScene = errors.New("renderer: no scene")
	// ErrNoCamera is returned when the scene has no camera
	ErrNoCamera = errors.New("renderer: scene has no camera")
	// ErrInvalidConfig is returned by Config.Validate
	ErrInvalidConfig = errors.New("renderer: invalid config")
)

// Mode selects how the image is produced
type Mode string

const (
	// ModeThreads renders tiles on a pool of workers
	ModeThreads Mode = "threads"
	// ModeSingle renders scanlines on the calling goroutine
	ModeSingle Mode = "single"
	// ModeGradient writes a grey test pattern without tracing rays
	ModeGradient Mode = "gradient"
)

// ParseMode parses a mode name
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(name)); m {
	case ModeThreads, ModeSingle, ModeGradient:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, name)
	}
}

// Config holds the render settings. It is built once before rendering and
// never modified afterwards.
type Config struct {
	Width           int
	Height          int
	TileSize        int     // edge length of square tiles in pixels
	NumThreads      int     // worker count; 0 means one per logical CPU
	SamplesPerPixel int     // number of stratified grids per pixel
	GridDim         int     // strata per axis in each grid
	FOV             float64 // vertical field of view in degrees
	Seed            int64   // seed of the sample pattern
	Mode            Mode

	Integrator integrator.Config
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           640,
		Height:          480,
		TileSize:        16,
		NumThreads:      4,
		SamplesPerPixel: 1,
		GridDim:         3,
		FOV:             30,
		Seed:            1,
		Mode:            ModeThreads,
		Integrator:      integrator.DefaultConfig(),
	}
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
		}
	}

	check(c.Width > 0 && c.Height > 0, "image size %dx%d", c.Width, c.Height)
	check(c.TileSize > 0, "tile size %d", c.TileSize)
	check(c.NumThreads >= 0, "thread count %d", c.NumThreads)
	check(c.SamplesPerPixel > 0, "samples per pixel %d", c.SamplesPerPixel)
	check(c.GridDim > 0, "grid dimension %d", c.GridDim)
	check(c.FOV > 0 && c.FOV < 180, "field of view %v", c.FOV)
	check(c.Integrator.MaxDepth >= 0, "max depth %d", c.Integrator.MaxDepth)
	check(c.Integrator.ShadowEpsilon >= 0 && !math.IsInf(c.Integrator.ShadowEpsilon, 0), "shadow epsilon %v", c.Integrator.ShadowEpsilon)
	_, err := ParseMode(string(c.Mode))
	if err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// workers returns the number of workers to start
func (c Config) workers() int {
	if c.NumThreads <= 0 {
		return runtime.NumCPU()
	}
	return c.NumThreads
}

// fovScale returns tan(fov/2), the image-plane half height at distance 1
func (c Config) fovScale() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}
