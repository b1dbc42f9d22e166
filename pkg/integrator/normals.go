package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Normals visualizes shading normals as colors, mapping each component
// from [-1, 1] to [0, 1]
type Normals struct{}

// Li implements Integrator
func (Normals) Li(ray core.Ray, s *scene.Scene, _ int) core.Vec3 {
	var si material.SurfaceInteraction
	if t := s.Intersect(&ray, &si); math.IsInf(t, 1) || t < 0 {
		return core.Vec3{}
	}
	return si.Normal.Add(core.Splat(1)).Multiply(0.5)
}
