package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cube is a box with the given edge lengths, centered at the object-space
// origin and placed in the world by a transform.
type Cube struct {
	Size     core.Vec3
	Material *material.Material

	half    core.Vec3
	toWorld core.Transform
}

// NewCube creates a box with edge lengths size
func NewCube(size core.Vec3, toWorld core.Transform, mat *material.Material) *Cube {
	return &Cube{
		Size:     size,
		Material: mat,
		half:     size.Multiply(0.5),
		toWorld:  toWorld,
	}
}

// Intersect implements Shape. Each of the six face planes is tested in
// object space and a crossing is kept when the hit point falls inside the
// face, measured as fractions along the face's two spanning edges.
func (c *Cube) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	local := c.toWorld.InverseRay(*ray)

	t := inf
	for axis := 0; axis < 3; axis++ {
		dir := local.Direction.Axis(axis)
		if dir == 0 {
			continue
		}
		u, v := (axis+1)%3, (axis+2)%3
		for _, sign := range [2]float64{-1, 1} {
			tf := (sign*c.half.Axis(axis) - local.Origin.Axis(axis)) / dir
			if tf < 0 || tf >= t {
				continue
			}
			p := local.At(tf)
			if insideFace(p.Axis(u), c.half.Axis(u)) && insideFace(p.Axis(v), c.half.Axis(v)) {
				t = tf
			}
		}
	}
	if math.IsInf(t, 1) {
		return inf
	}

	record(ray, si, t, c.Material, func(p core.Vec3) (core.Vec3, core.Vec2) {
		return boxNormal(c.toWorld, c.toWorld.InversePoint(p), c.half), core.Vec2{}
	})
	return t
}

// insideFace reports whether x lies within [-half, half], expressed as a
// fraction in [0,1] along the face edge
func insideFace(x, half float64) bool {
	f := (x + half) / (2 * half)
	return f >= 0 && f <= 1
}

// Normal implements Shape
func (c *Cube) Normal(p core.Vec3) core.Vec3 {
	return boxNormal(c.toWorld, c.toWorld.InversePoint(p), c.half)
}

// Bounds implements Shape
func (c *Cube) Bounds() core.Bounds3 {
	return c.toWorld.Bounds(core.NewBounds3(c.half.Negate(), c.half))
}

// UnitCube is the box [-0.5, 0.5]^3 placed in the world by a transform
type UnitCube struct {
	Material *material.Material

	toWorld core.Transform
}

var unitHalf = core.Splat(0.5)

// NewUnitCube creates a unit cube
func NewUnitCube(toWorld core.Transform, mat *material.Material) *UnitCube {
	return &UnitCube{Material: mat, toWorld: toWorld}
}

// Intersect implements Shape using the slab method in object space. A ray
// starting inside the cube hits its exit face.
func (c *UnitCube) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	local := c.toWorld.InverseRay(*ray)

	t0, t1 := math.Inf(-1), inf
	for axis := 0; axis < 3; axis++ {
		invDir := 1 / local.Direction.Axis(axis)
		o := local.Origin.Axis(axis)
		tNear := (-0.5 - o) * invDir
		tFar := (0.5 - o) * invDir
		if math.IsNaN(tNear) || math.IsNaN(tFar) {
			continue
		}
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		t0 = math.Max(t0, tNear)
		t1 = math.Min(t1, tFar)
		if t0 > t1 {
			return inf
		}
	}

	t := t0
	if t < 0 {
		t = t1
	}
	if t < 0 || math.IsInf(t, 0) {
		return inf
	}

	record(ray, si, t, c.Material, func(p core.Vec3) (core.Vec3, core.Vec2) {
		return boxNormal(c.toWorld, c.toWorld.InversePoint(p), unitHalf), core.Vec2{}
	})
	return t
}

// Normal implements Shape
func (c *UnitCube) Normal(p core.Vec3) core.Vec3 {
	return boxNormal(c.toWorld, c.toWorld.InversePoint(p), unitHalf)
}

// Bounds implements Shape
func (c *UnitCube) Bounds() core.Bounds3 {
	return c.toWorld.Bounds(core.NewBounds3(unitHalf.Negate(), unitHalf))
}

// boxNormal picks the face whose axis dominates the object-space point
// (scaled by the half extents) and maps its normal to world space.
func boxNormal(toWorld core.Transform, local, half core.Vec3) core.Vec3 {
	scaled := core.NewVec3(local.X/half.X, local.Y/half.Y, local.Z/half.Z)
	a := scaled.Abs()

	var n core.Vec3
	switch {
	case a.X > a.Y && a.X > a.Z:
		n = core.NewVec3(sign(scaled.X), 0, 0)
	case a.Y > a.Z:
		n = core.NewVec3(0, sign(scaled.Y), 0)
	default:
		n = core.NewVec3(0, 0, sign(scaled.Z))
	}
	return toWorld.Normal(n)
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
