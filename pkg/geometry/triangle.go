package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Triangle is a world-space triangle with optional per-vertex normals
type Triangle struct {
	P0, P1, P2 core.Vec3
	Material   *material.Material

	normal        core.Vec3    // geometric normal
	vertexNormals *[3]core.Vec3 // nil for flat shading
}

// NewTriangle creates a flat-shaded triangle. The normal follows the
// counter-clockwise winding p0, p1, p2.
func NewTriangle(p0, p1, p2 core.Vec3, mat *material.Material) *Triangle {
	return &Triangle{
		P0:       p0,
		P1:       p1,
		P2:       p2,
		Material: mat,
		normal:   p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize(),
	}
}

// NewSmoothTriangle creates a triangle whose shading normal interpolates
// the given vertex normals
func NewSmoothTriangle(p0, p1, p2, n0, n1, n2 core.Vec3, mat *material.Material) *Triangle {
	t := NewTriangle(p0, p1, p2, mat)
	t.vertexNormals = &[3]core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
	return t
}

// Transformed returns a copy of the triangle with vertices and normals
// mapped by tr
func (tri *Triangle) Transformed(tr core.Transform) *Triangle {
	out := NewTriangle(tr.Point(tri.P0), tr.Point(tri.P1), tr.Point(tri.P2), tri.Material)
	if tri.vertexNormals != nil {
		vn := *tri.vertexNormals
		out.vertexNormals = &[3]core.Vec3{tr.Normal(vn[0]), tr.Normal(vn[1]), tr.Normal(vn[2])}
	}
	return out
}

// Intersect implements Shape with a watertight test in a sheared frame:
// the vertices are translated to the ray origin, the axes are permuted so
// the dominant direction component is z, and a shear aligns the ray with
// +z. The 2D edge functions then give the barycentric coordinates.
func (tri *Triangle) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	kz := ray.Direction.Abs().MaxDimension()
	kx := (kz + 1) % 3
	ky := (kx + 1) % 3

	d := ray.Direction.Permute(kx, ky, kz)
	if d.Z == 0 {
		return inf
	}
	p0 := tri.P0.Subtract(ray.Origin).Permute(kx, ky, kz)
	p1 := tri.P1.Subtract(ray.Origin).Permute(kx, ky, kz)
	p2 := tri.P2.Subtract(ray.Origin).Permute(kx, ky, kz)

	sx := -d.X / d.Z
	sy := -d.Y / d.Z
	sz := 1 / d.Z
	p0.X += sx * p0.Z
	p0.Y += sy * p0.Z
	p1.X += sx * p1.Z
	p1.Y += sy * p1.Z
	p2.X += sx * p2.Z
	p2.Y += sy * p2.Z

	e0 := p1.X*p2.Y - p1.Y*p2.X
	e1 := p2.X*p0.Y - p2.Y*p0.X
	e2 := p0.X*p1.Y - p0.Y*p1.X

	if (e0 < 0 || e1 < 0 || e2 < 0) && (e0 > 0 || e1 > 0 || e2 > 0) {
		return inf
	}
	det := e0 + e1 + e2
	if det == 0 {
		return inf
	}

	p0.Z *= sz
	p1.Z *= sz
	p2.Z *= sz
	tScaled := e0*p0.Z + e1*p1.Z + e2*p2.Z
	if (det < 0 && tScaled > 0) || (det > 0 && tScaled < 0) {
		return inf
	}

	invDet := 1 / det
	t := tScaled * invDet
	if math.IsNaN(t) {
		return inf
	}
	b0, b1, b2 := e0*invDet, e1*invDet, e2*invDet

	record(ray, si, t, tri.Material, func(core.Vec3) (core.Vec3, core.Vec2) {
		return tri.shadingNormal(b0, b1, b2), core.Vec2{X: b1, Y: b2}
	})
	return t
}

func (tri *Triangle) shadingNormal(b0, b1, b2 float64) core.Vec3 {
	if tri.vertexNormals == nil {
		return tri.normal
	}
	vn := tri.vertexNormals
	return vn[0].Multiply(b0).Add(vn[1].Multiply(b1)).Add(vn[2].Multiply(b2)).Normalize()
}

// Normal implements Shape and returns the geometric normal
func (tri *Triangle) Normal(core.Vec3) core.Vec3 {
	return tri.normal
}

// planeDistance returns the distance from p to the triangle's plane
func (tri *Triangle) planeDistance(p core.Vec3) float64 {
	return math.Abs(p.Subtract(tri.P0).Dot(tri.normal))
}

// Bounds implements Shape
func (tri *Triangle) Bounds() core.Bounds3 {
	return core.NewBounds3FromPoints(tri.P0, tri.P1, tri.P2)
}
