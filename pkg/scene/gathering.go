package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// newFloor creates the large tilted reflective floor shared by several scenes
func newFloor() *geometry.Rectangle {
	floor := material.New(core.Splat(0.02), core.Splat(0.4), core.Vec3{}).WithReflective(core.Splat(0.2))
	return geometry.NewRectangle(
		core.NewVec3(-4, 2, -18),
		core.NewVec3(150, 0, 0),
		core.NewVec3(0, 150, -150),
		floor,
	)
}

// NewGatheringScene creates spheres of assorted materials, two cubes made of
// rectangles and a transformed box over a tilted mirror-like floor
func NewGatheringScene(Options) (*Scene, error) {
	camera := geometry.NewLookAtCamera(core.NewVec3(0, 3, 20), core.Vec3{}, core.NewVec3(0, 1, 0))
	s := New("gathering", camera)

	mats := []*material.Material{
		material.New(core.NewVec3(0.02, 0, 0), core.NewVec3(0.7, 0, 0), core.NewVec3(1, 0, 0)),
		material.New(core.NewVec3(0, 0.02, 0), core.NewVec3(0, 0.7, 0), core.NewVec3(0, 1, 0)),
		material.New(core.NewVec3(0.02, 0, 0.02), core.NewVec3(0.7, 0, 0.7), core.NewVec3(0.7, 0, 0.7)).WithShininess(10),
		material.New(core.NewVec3(0.013, 0.013, 0.035), core.NewVec3(0.3, 0.3, 0.8), core.Splat(0.7)).WithShininess(5),
		material.New(core.Vec3{}, core.Vec3{}, core.Vec3{}).WithReflective(core.Splat(0.8)),
		material.New(core.Vec3{}, core.Vec3{}, core.Vec3{}).WithReflective(core.Splat(1)),
		material.New(core.NewVec3(0.02, 0.02, 0), core.NewVec3(0.8, 0.8, 0), core.NewVec3(0.5, 0.5, 0)),
		material.New(core.Vec3{}, core.Vec3{}, core.Vec3{}).WithTransparent(core.Splat(1), 1.5),
	}
	spheres := []struct {
		center core.Vec3
		radius float64
	}{
		{core.NewVec3(-10, -2, -5), 1},
		{core.NewVec3(-9, 21, -22), 1.5},
		{core.NewVec3(9, 3, -15), 3},
		{core.NewVec3(-11, 7, -15), 2},
		{core.NewVec3(0, 12, -25), 4},
		{core.NewVec3(5, -2, -11), 4},
		{core.NewVec3(-6, -3, -4), 2},
		{core.NewVec3(-8, 4, -2), 3},
	}
	for i, sp := range spheres {
		s.Add(geometry.NewSphere(sp.center, sp.radius, mats[i]))
	}

	floor := newFloor()
	s.Add(floor)

	violet := material.New(core.NewVec3(0.02, 0, 0.02), core.NewVec3(0.1, 0, 0.7), core.NewVec3(0.6, 0, 0.6)).WithShininess(10)
	orange := material.New(core.NewVec3(0.02, 0.02, 0), core.NewVec3(0.9, 0.2, 0), core.NewVec3(0.6, 0, 0.6)).WithShininess(10)

	up := floor.N
	base := pointOnRectangle(floor, 13, -25).Add(up.Multiply(2))
	s.Add(geometry.NewRectangleCube(base, up, core.NewVec3(1, 0, 0), 4, violet)...)
	s.Add(geometry.NewRectangleCube(core.NewVec3(14, 8, -3), up, perpendicular(core.NewVec3(1, 1, 0), up), 6, orange)...)

	green := material.New(core.NewVec3(0.01, 0.02, 0.005), core.NewVec3(0.2, 0.6, 0.1), core.NewVec3(0.2, 0.6, 0.1))
	boxToWorld := core.Rotate(math.Pi/3, core.NewVec3(1, 0, 0)).
		Then(core.Scale(core.NewVec3(1.25, 0.5, 1))).
		Then(core.Translate(core.NewVec3(0, -1, 10)))
	s.Add(geometry.NewCube(core.Splat(3), boxToWorld, green))

	s.AddLight(lights.NewPointLight(core.NewVec3(-2, 4, -17), core.Splat(100)))
	return s, nil
}
