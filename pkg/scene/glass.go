package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewGlassScene shows refraction: glass and water spheres, a glass box and
// a glass cylinder in front of a checkered floor and back wall
func NewGlassScene(opts Options) (*Scene, error) {
	camera := geometry.NewLookAtCamera(core.NewVec3(0, 4, 18), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))
	s := New("glass", camera)

	floorPoint := core.Vec3{}
	floorTex := material.NewCheckerBoard(
		material.NewPlanarMapping(floorPoint, core.NewVec3(10, 0, 0), core.NewVec3(0, 0, 10)),
		core.Splat(0.9),
		material.WrapRepeat,
	)
	floor := material.New(core.Splat(0.02), core.Splat(0.8), core.Vec3{}).WithTexture(floorTex)
	s.Add(geometry.NewPlane(floorPoint, core.NewVec3(0, 1, 0), floor))

	wallPoint := core.NewVec3(0, 0, -12)
	wallTex, err := wallTexture(opts.TexturePath, wallPoint)
	if err != nil {
		return nil, err
	}
	wall := material.New(core.Splat(0.02), core.Splat(0.8), core.Vec3{}).WithTexture(wallTex)
	s.Add(geometry.NewRectangle(core.NewVec3(0, 10, -12), core.NewVec3(60, 0, 0), core.NewVec3(0, 20, 0), wall))

	glass := material.New(core.Vec3{}, core.Vec3{}, core.Splat(0.5)).
		WithShininess(80).
		WithTransparent(core.Splat(1), 1.5)
	water := material.New(core.Vec3{}, core.Vec3{}, core.Splat(0.5)).
		WithShininess(80).
		WithTransparent(core.NewVec3(0.8, 0.9, 1), 1.33)
	tinted := material.New(core.Vec3{}, core.NewVec3(0.05, 0.1, 0.05), core.Splat(0.3)).
		WithShininess(40).
		WithTransparent(core.NewVec3(0.6, 0.9, 0.6), 1.5)
	mirror := material.New(core.Vec3{}, core.Vec3{}, core.Vec3{}).WithReflective(core.Splat(0.9))
	// Checks follow the cylinder's own coordinates: 16 around, 10 along the axis
	banded := material.New(core.Vec3{}, core.NewVec3(0.05, 0.1, 0.05), core.Splat(0.3)).
		WithShininess(40).
		WithTransparent(core.NewVec3(0.6, 0.9, 0.6), 1.5).
		WithTexture(material.NewCheckerBoard(
			material.SurfaceMapping{Scale: core.Vec2{X: 1.6, Y: 1}},
			core.NewVec3(0.1, 0.3, 0.1),
			material.WrapRepeat,
		))

	s.Add(
		geometry.NewSphere(core.NewVec3(-4, 2, 0), 2, glass),
		geometry.NewSphere(core.NewVec3(0.5, 1.5, 2), 1.5, water),
		geometry.NewSphere(core.NewVec3(5, 2.5, -4), 2.5, mirror),
		geometry.NewCylinder(core.NewVec3(4, 0, 3), core.NewVec3(0, 1, 0), 1, 3, banded),
	)

	boxToWorld := core.Rotate(math.Pi/5, core.NewVec3(0, 1, 0)).Then(core.Translate(core.NewVec3(-1, 1, -5)))
	s.Add(geometry.NewCube(core.Splat(2), boxToWorld, tinted))

	s.AddLight(
		lights.NewPointLight(core.NewVec3(-6, 12, 10), core.Splat(150)),
		lights.NewDistantLight(core.NewVec3(1, -2, -1), core.Splat(0.3)),
	)
	return s, nil
}

// wallTexture tiles the image at path across the back wall, or a
// checkerboard when no path is given
func wallTexture(path string, origin core.Vec3) (material.Texture, error) {
	if path == "" {
		return material.NewCheckerBoard(
			material.NewPlanarMapping(origin, core.NewVec3(10, 0, 0), core.NewVec3(0, 10, 0)),
			core.NewVec3(0.9, 0.6, 0.2),
			material.WrapRepeat,
		), nil
	}

	width, height, pixels, err := loaders.LoadImage(path)
	if err != nil {
		return nil, err
	}
	// One image tile is 20 units wide, keeping its aspect ratio
	tileW := 20.0
	tileH := tileW * float64(height) / float64(width)
	mapping := material.NewPlanarMapping(origin, core.NewVec3(tileW, 0, 0), core.NewVec3(0, tileH, 0))
	return material.NewImageTexture(width, height, pixels, mapping, material.WrapRepeat)
}
