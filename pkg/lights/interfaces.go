package lights

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidLight is returned by Validate for lights with unusable data
var ErrInvalidLight = errors.New("lights: invalid light")

// Occluder answers nearest-hit queries for shadow rays. Scenes implement it.
type Occluder interface {
	Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64
}

// Sample describes a light as seen from a surface point
type Sample struct {
	ToLight  core.Vec3 // unit direction from the point towards the light
	Distance float64   // +Inf for lights at infinity
	Falloff  float64   // factor applied to diffuse and specular terms
}

// Light is a source of direct illumination in world space
type Light interface {
	// Emission returns the emitted color in direction dir
	Emission(dir core.Vec3) core.Vec3
	// Sample returns the direction, distance and falloff of the light from p
	Sample(p core.Vec3) Sample
	// Visible reports whether p can see the light. The shadow ray starts
	// epsilon along the light direction to avoid hitting its own surface.
	Visible(p core.Vec3, occ Occluder, epsilon float64) bool
	// Validate reports non-finite or degenerate light data
	Validate() error
}

// unoccluded casts a shadow ray from p and reports whether nothing lies
// closer than maxDist
func unoccluded(p, toLight core.Vec3, maxDist float64, occ Occluder, epsilon float64) bool {
	ray := core.Offset(p, toLight, epsilon)
	t := occ.Intersect(&ray, nil)
	return math.IsInf(t, 1) || t < 0 || t > maxDist
}

func validateColor(name string, c core.Vec3) error {
	if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
		return fmt.Errorf("%w: %s emission %v must be finite and non-negative", ErrInvalidLight, name, c)
	}
	return nil
}
