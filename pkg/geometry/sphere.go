package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: mat}
}

// Intersect implements Shape
func (s *Sphere) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	t, ok := solveQuadratic(a, b, c)
	if !ok {
		return inf
	}

	record(ray, si, t, s.Material, func(p core.Vec3) (core.Vec3, core.Vec2) {
		n := s.Normal(p)
		u := (1 + math.Atan2(n.Z, n.X)/math.Pi) * 0.5
		v := math.Acos(max(-1, min(1, n.Y))) / math.Pi
		return n, core.Vec2{X: u, Y: v}
	})
	return t
}

// Normal implements Shape
func (s *Sphere) Normal(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Normalize()
}

// Bounds implements Shape
func (s *Sphere) Bounds() core.Bounds3 {
	r := core.Splat(s.Radius)
	return core.NewBounds3(s.Center.Subtract(r), s.Center.Add(r))
}

// solveQuadratic returns the smallest non-negative root of at^2 + bt + c.
// The roots are computed as q/a and c/q with q = -(b + sign(b)*sqrt(disc))/2,
// which avoids cancellation when b^2 >> 4ac.
func solveQuadratic(a, b, c float64) (float64, bool) {
	if a == 0 {
		return inf, false
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return inf, false
	}
	root := math.Sqrt(disc)

	var q float64
	if b < 0 {
		q = -0.5 * (b - root)
	} else {
		q = -0.5 * (b + root)
	}

	t0 := q / a
	t1 := t0
	if q != 0 {
		t1 = c / q
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	switch {
	case t1 < 0:
		return inf, false
	case t0 < 0:
		return t1, true
	default:
		return t0, true
	}
}
