package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	// ErrInvalidScene is returned by Validate for scenes that cannot be rendered
	ErrInvalidScene = errors.New("scene: invalid scene")
	// ErrUnknownScene is returned by Build for names missing from the registry
	ErrUnknownScene = errors.New("scene: unknown scene")
)

// Scene contains all the elements needed for rendering. It is read-only
// once rendering starts.
type Scene struct {
	Name   string
	Camera geometry.Camera
	Shapes []geometry.Shape // top-level shapes, tested linearly
	Lights []lights.Light
}

// New creates an empty scene viewed through camera
func New(name string, camera geometry.Camera) *Scene {
	return &Scene{Name: name, Camera: camera}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(ls ...lights.Light) {
	s.Lights = append(s.Lights, ls...)
}

// Intersect shoots the ray against every top-level shape and returns the
// nearest hit distance, or +Inf when nothing is hit. si describes the
// nearest hit afterwards.
func (s *Scene) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	return geometry.IntersectAll(s.Shapes, ray, si)
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: %q has no camera", ErrInvalidScene, s.Name)
	}
	for i, shape := range s.Shapes {
		if shape == nil {
			return fmt.Errorf("%w: %q shape %d is nil", ErrInvalidScene, s.Name, i)
		}
		if v, ok := shape.(geometry.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: %q shape %d: %w", ErrInvalidScene, s.Name, i, err)
			}
		}
	}
	for i, l := range s.Lights {
		if l == nil {
			return fmt.Errorf("%w: %q light %d is nil", ErrInvalidScene, s.Name, i)
		}
		if err := l.Validate(); err != nil {
			return fmt.Errorf("%w: %q light %d: %w", ErrInvalidScene, s.Name, i, err)
		}
	}
	return nil
}

// PrimitiveCount returns the number of primitives, counting each mesh
// triangle separately
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		if mesh, ok := shape.(*geometry.TriangleMesh); ok {
			count += len(mesh.Triangles)
			continue
		}
		count++
	}
	return count
}

// pointOnRectangle returns the point of r's plane above or below (x, z)
func pointOnRectangle(r *geometry.Rectangle, x, z float64) core.Vec3 {
	k := r.N.Dot(r.Corner)
	y := (k - r.N.X*x - r.N.Z*z) / r.N.Y
	return core.NewVec3(x, y, z)
}

// perpendicular returns the component of v orthogonal to the unit vector n
func perpendicular(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(v.Dot(n)))
}
