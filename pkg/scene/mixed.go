package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMixedScene exercises every analytic shape: transformed boxes and unit
// cubes, axis cylinders, a textured triangle and textured spheres
func NewMixedScene(Options) (*Scene, error) {
	camera := geometry.NewLookAtCamera(core.NewVec3(0, 5, 30), core.NewVec3(0, 0, -10), core.NewVec3(0, 1, 0))
	s := New("mixed", camera)

	floor := newFloor()
	s.Add(floor)
	up := floor.N

	orange := material.New(core.NewVec3(0.02, 0.02, 0), core.NewVec3(0.9, 0.2, 0), core.NewVec3(0.6, 0, 0.6)).WithShininess(10)
	s.Add(geometry.NewRectangleCube(
		pointOnRectangle(floor, 1.5, -27).Add(up.Multiply(3)),
		up,
		perpendicular(core.NewVec3(1, 1, 0), up),
		6,
		orange,
	)...)

	// Triangle colored by its object-space position
	triToWorld := core.Translate(core.NewVec3(0, 0, -3)).Then(core.Scale(core.Splat(2)))
	triMat := material.New(core.Vec3{}, core.Vec3{}, core.Vec3{})
	tri := geometry.NewTriangle(core.NewVec3(0, 0, -4), core.NewVec3(4, 0, -4), core.NewVec3(4, 4, -4), triMat).Transformed(triToWorld)
	triMat.WithTexture(&material.ObjectSpaceTexture{ToWorld: triToWorld, Offset: core.NewVec3(0, 0, 4), Scale: 0.25})
	s.Add(tri)

	// Checkered sphere
	checkerCenter := core.NewVec3(-35, 6, -3)
	checkered := material.New(core.Splat(0.02), core.Splat(0.3), core.Splat(0.4)).
		WithShininess(10).
		WithTexture(material.NewCheckerBoard(material.SphericalMapping{Center: checkerCenter}, core.Splat(1), material.WrapRepeat))
	s.Add(geometry.NewSphere(checkerCenter, 2, checkered))

	purple := material.New(core.NewVec3(0.02, 0, 0.02), core.NewVec3(0.3, 0, 0.4), core.Splat(0.4)).WithShininess(20)
	s.Add(geometry.NewSphere(core.NewVec3(8, 2, -3), 1, purple))

	mirror := material.New(core.Vec3{}, core.Vec3{}, core.Vec3{}).WithReflective(core.Splat(1))
	s.Add(geometry.NewSphere(core.NewVec3(-9, 1, -10), 3, mirror))

	glass := material.New(core.Vec3{}, core.Vec3{}, core.Vec3{}).WithTransparent(core.Splat(1), 1.5)
	s.Add(geometry.NewSphere(core.NewVec3(10, -10, 0), 3, glass))

	// Coordinate axes
	axes := []struct {
		dir   core.Vec3
		color core.Vec3
	}{
		{core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0)},
		{core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)},
		{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
	}
	for _, axis := range axes {
		m := material.New(axis.color, axis.color, core.Vec3{})
		s.Add(geometry.NewCylinder(core.Vec3{}, axis.dir, 0.1, 8, m))
	}

	// Box aligned with the floor, colored by object-space position
	tangent := geometry.TangentVector(up).Normalize()
	alignToFloor := core.FromBasis(up.Cross(tangent), up, tangent, core.Vec3{})
	boxPos := pointOnRectangle(floor, 8, 3).Add(up.Multiply(1.5)).Add(core.NewVec3(0, 3, 0))
	boxToWorld := alignToFloor.Then(core.Translate(boxPos))
	boxMat := material.New(core.Vec3{}, core.NewVec3(0.2, 0.6, 0.1), core.Vec3{}).WithShininess(40)
	boxMat.WithTexture(&material.ObjectSpaceTexture{ToWorld: boxToWorld, Offset: core.Splat(1.5), Scale: 10.0 / 3})
	s.Add(geometry.NewCube(core.Splat(3), boxToWorld, boxMat))

	// Ring of unit cubes rotated about the floor normal
	ringPos := pointOnRectangle(floor, -3, -10).Add(up)
	for i := 0; i < 6; i++ {
		toWorld := core.Rotate(float64(i)*math.Pi*0.5, core.NewVec3(0, 1, 0)).
			Then(alignToFloor).
			Then(core.Translate(ringPos)).
			Then(core.Rotate(float64(i)*math.Pi*0.2, up))
		m := material.New(core.Vec3{}, core.Vec3{}, core.Vec3{})
		m.WithTexture(&material.ObjectSpaceTexture{ToWorld: toWorld, Offset: core.Splat(0.5), Scale: 1})
		s.Add(geometry.NewUnitCube(toWorld, m))
	}

	s.AddLight(
		lights.NewPointLight(core.NewVec3(-2, 20, -5), core.Splat(110)),
		lights.NewDistantLight(core.NewVec3(-2, -4, -2), core.Splat(0.15)),
	)
	return s, nil
}

// NewTriangleScene creates a single position-textured triangle facing the
// camera
func NewTriangleScene(Options) (*Scene, error) {
	camera := geometry.NewLookAtCamera(core.NewVec3(0, 5, 30), core.NewVec3(0, 0, -10), core.NewVec3(0, 1, 0))
	s := New("triangle", camera)

	toWorld := core.Translate(core.NewVec3(-2, -1, 5)).Then(core.Scale(core.Splat(2)))
	m := material.New(core.Vec3{}, core.Vec3{}, core.Vec3{})
	m.WithTexture(&material.ObjectSpaceTexture{ToWorld: toWorld, Offset: core.NewVec3(0, 0, 4), Scale: 0.25})
	tri := geometry.NewTriangle(core.NewVec3(0, 0, -4), core.NewVec3(4, 0, -4), core.NewVec3(4, 4, -4), m)
	s.Add(tri.Transformed(toWorld))

	s.AddLight(lights.NewPointLight(core.NewVec3(0, 0, 30), core.Splat(110)))
	return s, nil
}
