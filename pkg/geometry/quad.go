package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Rectangle is a parallelogram spanned by U and V around a center point
type Rectangle struct {
	Corner   core.Vec3 // center - (U+V)/2
	U, V     core.Vec3
	N        core.Vec3
	Material *material.Material

	uu, vv float64
}

// NewRectangle creates a rectangle centered at center. The normal is
// normalize(u x v).
func NewRectangle(center, u, v core.Vec3, mat *material.Material) *Rectangle {
	return &Rectangle{
		Corner:   center.Subtract(u.Add(v).Multiply(0.5)),
		U:        u,
		V:        v,
		N:        u.Cross(v).Normalize(),
		Material: mat,
		uu:       u.Dot(u),
		vv:       v.Dot(v),
	}
}

// Intersect implements Shape
func (r *Rectangle) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	denom := ray.Direction.Dot(r.N)
	if math.Abs(denom) < parallelEpsilon {
		return inf
	}
	t := r.N.Dot(r.Corner.Subtract(ray.Origin)) / denom
	if t < 0 {
		return inf
	}

	d := ray.At(t).Subtract(r.Corner)
	a := d.Dot(r.U) / r.uu
	b := d.Dot(r.V) / r.vv
	if a < 0 || a > 1 || b < 0 || b > 1 {
		return inf
	}

	record(ray, si, t, r.Material, func(core.Vec3) (core.Vec3, core.Vec2) {
		return r.N, core.Vec2{X: a, Y: b}
	})
	return t
}

// Normal implements Shape
func (r *Rectangle) Normal(core.Vec3) core.Vec3 {
	return r.N
}

// Bounds implements Shape
func (r *Rectangle) Bounds() core.Bounds3 {
	return core.NewBounds3FromPoints(
		r.Corner,
		r.Corner.Add(r.U),
		r.Corner.Add(r.V),
		r.Corner.Add(r.U).Add(r.V),
	)
}

// NewRectangleCube builds the six faces of an axis-free cube centered at
// center with edge length side. All faces share mat and face outwards.
func NewRectangleCube(center, up, front core.Vec3, side float64, mat *material.Material) []Shape {
	half := side / 2
	nUp := up.Normalize()
	nFront := front.Normalize()
	nSide := nUp.Cross(nFront).Normalize()

	tu, tf, ts := nUp.Multiply(half), nFront.Multiply(half), nSide.Multiply(half)
	u, f, s := nUp.Multiply(side), nFront.Multiply(side), nSide.Multiply(side)

	return []Shape{
		NewRectangle(center.Add(tu), s.Negate(), f, mat),      // top
		NewRectangle(center.Subtract(tu), f, s.Negate(), mat), // bottom
		NewRectangle(center.Add(tf), u, s.Negate(), mat),      // front
		NewRectangle(center.Subtract(tf), s.Negate(), u, mat), // back
		NewRectangle(center.Add(ts), u, f, mat),               // side
		NewRectangle(center.Subtract(ts), f, u, mat),          // opposite side
	}
}
