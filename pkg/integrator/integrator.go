package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li returns the radiance arriving along ray. depth counts the
	// reflections and refractions already followed; the primary ray has
	// depth 0.
	Li(ray core.Ray, s *scene.Scene, depth int) core.Vec3
}

// Config holds integrator settings. It is passed by value and never
// changed during a render.
type Config struct {
	MaxDepth      int     // recursion depth at which radiance is zero
	ShadowEpsilon float64 // offset of secondary and shadow ray origins
	AmbientFactor float64 // weight of the ambient term
}

// DefaultConfig returns the default integrator configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth:      4,
		ShadowEpsilon: 1e-3,
		AmbientFactor: 0.01,
	}
}
