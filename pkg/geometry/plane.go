package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var inf = math.Inf(1)

// parallelEpsilon is the smallest |dot(N, D)| treated as non-parallel
const parallelEpsilon = 1e-6

// Plane is an infinite plane through Point with unit normal N
type Plane struct {
	Point    core.Vec3
	N        core.Vec3
	Material *material.Material

	k float64 // dot(N, Point)
}

// NewPlane creates a plane; the normal is normalized
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	n := normal.Normalize()
	return &Plane{Point: point, N: n, Material: mat, k: n.Dot(point)}
}

// distance returns the ray parameter of the plane crossing, or +Inf
func (p *Plane) distance(ray *core.Ray) float64 {
	denom := p.N.Dot(ray.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return inf
	}
	t := (p.k - p.N.Dot(ray.Origin)) / denom
	if t < 0 {
		return inf
	}
	return t
}

// Intersect implements Shape
func (p *Plane) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	t := p.distance(ray)
	record(ray, si, t, p.Material, func(core.Vec3) (core.Vec3, core.Vec2) {
		return p.N, core.Vec2{}
	})
	return t
}

// Normal implements Shape
func (p *Plane) Normal(core.Vec3) core.Vec3 {
	return p.N
}

// Bounds implements Shape. Planes are unbounded.
func (p *Plane) Bounds() core.Bounds3 {
	return core.Bounds3{Min: core.Splat(-inf), Max: core.Splat(inf)}
}

// TangentVector returns a vector perpendicular to normal
func TangentVector(normal core.Vec3) core.Vec3 {
	switch {
	case normal.X != 0:
		return core.NewVec3(-normal.Y/normal.X, 1, 0)
	case normal.Y != 0:
		return core.NewVec3(1, -normal.X/normal.Y, 0)
	case normal.Z != 0:
		return core.NewVec3(0, 1, -normal.Y/normal.Z)
	}
	return core.Vec3{}
}
