package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const tolerance = 1e-9

var testMaterial = material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func vecApprox(a, b core.Vec3, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps) && approxEqual(a.Z, b.Z, eps)
}

// MockShape is a shape with fixed bounds that is never hit
type MockShape struct {
	box core.Bounds3
}

func (m MockShape) Intersect(*core.Ray, *material.SurfaceInteraction) float64 { return math.Inf(1) }
func (m MockShape) Normal(core.Vec3) core.Vec3                                 { return core.Vec3{} }
func (m MockShape) Bounds() core.Bounds3                                       { return m.box }

func mockAt(center core.Vec3, half float64) MockShape {
	h := core.Splat(half)
	return MockShape{box: core.NewBounds3(center.Subtract(h), center.Add(h))}
}
