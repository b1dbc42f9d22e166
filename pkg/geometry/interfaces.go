package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is anything a ray can hit.
//
// Intersect returns the smallest non-negative distance along the ray at
// which the shape is hit, or +Inf on a miss. When that distance is also
// smaller than ray.TNearest the shape shrinks ray.TNearest and fills si, so
// testing a list of shapes against one ray leaves si describing the nearest
// hit. si may be nil when only the distance is needed.
type Shape interface {
	Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64
	Normal(p core.Vec3) core.Vec3
	Bounds() core.Bounds3
}

// record accepts a hit at distance t if it is the nearest so far. The
// surface is only evaluated when the hit is accepted.
func record(ray *core.Ray, si *material.SurfaceInteraction, t float64, mat *material.Material, surface func(p core.Vec3) (core.Vec3, core.Vec2)) {
	if !(t >= 0 && t < ray.TNearest) {
		return
	}
	ray.TNearest = t
	if si == nil {
		return
	}
	p := ray.At(t)
	n, uv := surface(p)
	si.Point = p
	si.Normal = n
	si.UV = uv
	si.Material = mat
}

// IntersectAll tests every shape against the ray and returns the nearest
// hit distance.
func IntersectAll(shapes []Shape, ray *core.Ray, si *material.SurfaceInteraction) float64 {
	nearest := inf
	for _, s := range shapes {
		if t := s.Intersect(ray, si); t < nearest {
			nearest = t
		}
	}
	return nearest
}
