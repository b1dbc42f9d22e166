package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cylinder is an open cylinder (no caps). In object space its axis is +Y
// from 0 to Height.
type Cylinder struct {
	Position  core.Vec3
	Direction core.Vec3
	Radius    float64
	Height    float64
	Material  *material.Material

	toWorld core.Transform
}

// NewCylinder creates a cylinder whose base circle is centered at pos and
// whose axis points along dir
func NewCylinder(pos, dir core.Vec3, radius, height float64, mat *material.Material) *Cylinder {
	axis := dir.Normalize()
	tangent := TangentVector(axis).Normalize()
	return &Cylinder{
		Position:  pos,
		Direction: axis,
		Radius:    radius,
		Height:    height,
		Material:  mat,
		toWorld:   core.FromBasis(axis.Cross(tangent), axis, tangent, pos),
	}
}

// Intersect implements Shape
func (c *Cylinder) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	local := c.toWorld.InverseRay(*ray)
	o, d := local.Origin, local.Direction

	a := d.X*d.X + d.Z*d.Z
	b := 2 * (o.X*d.X + o.Z*d.Z)
	cc := o.X*o.X + o.Z*o.Z - c.Radius*c.Radius
	if a == 0 {
		return inf
	}
	disc := b*b - 4*a*cc
	if disc < 0 {
		return inf
	}
	root := math.Sqrt(disc)
	near := (-b - root) / (2 * a)
	far := (-b + root) / (2 * a)

	t, inside := inf, false
	if near >= 0 && c.withinHeight(local.At(near)) {
		t = near
	} else if far >= 0 && c.withinHeight(local.At(far)) {
		// The far wall seen from inside or through the open end
		t, inside = far, true
	}
	if math.IsInf(t, 1) {
		return inf
	}

	record(ray, si, t, c.Material, func(core.Vec3) (core.Vec3, core.Vec2) {
		p := local.At(t)
		n := c.toWorld.Normal(core.NewVec3(p.X, 0, p.Z))
		if inside {
			n = n.Negate()
		}
		u := (1 + math.Atan2(p.Z, p.X)/math.Pi) * 0.5
		return n, core.Vec2{X: u, Y: p.Y / c.Height}
	})
	return t
}

func (c *Cylinder) withinHeight(p core.Vec3) bool {
	return p.Y >= 0 && p.Y <= c.Height
}

// Normal implements Shape. The returned normal points away from the axis.
func (c *Cylinder) Normal(p core.Vec3) core.Vec3 {
	local := c.toWorld.InversePoint(p)
	return c.toWorld.Normal(core.NewVec3(local.X, 0, local.Z))
}

// Bounds implements Shape
func (c *Cylinder) Bounds() core.Bounds3 {
	local := core.NewBounds3(
		core.NewVec3(-c.Radius, 0, -c.Radius),
		core.NewVec3(c.Radius, c.Height, c.Radius),
	)
	return c.toWorld.Bounds(local)
}
