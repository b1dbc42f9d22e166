package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidShape is returned when a shape cannot be rendered
var ErrInvalidShape = errors.New("geometry: invalid shape")

// Validator is implemented by shapes that can check their own parameters.
// Scenes call it once before rendering starts.
type Validator interface {
	Validate() error
}

func requireMaterial(name string, m *material.Material) error {
	if m == nil {
		return fmt.Errorf("%w: %s has no material", ErrInvalidShape, name)
	}
	return nil
}

func requirePositive(name, field string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%w: %s %s must be positive, got %v", ErrInvalidShape, name, field, v)
	}
	return nil
}

func requireFinite(name string, vs ...core.Vec3) error {
	for _, v := range vs {
		if !v.IsFinite() {
			return fmt.Errorf("%w: %s has non-finite coordinates %v", ErrInvalidShape, name, v)
		}
	}
	return nil
}

// Validate implements Validator
func (p *Plane) Validate() error {
	if p.N.IsZero() {
		return fmt.Errorf("%w: plane normal is zero", ErrInvalidShape)
	}
	return errors.Join(requireFinite("plane", p.Point, p.N), requireMaterial("plane", p.Material))
}

// Validate implements Validator
func (r *Rectangle) Validate() error {
	if r.N.IsZero() {
		return fmt.Errorf("%w: rectangle edges are parallel", ErrInvalidShape)
	}
	return errors.Join(requireFinite("rectangle", r.Corner, r.U, r.V), requireMaterial("rectangle", r.Material))
}

// Validate implements Validator
func (s *Sphere) Validate() error {
	return errors.Join(
		requireFinite("sphere", s.Center),
		requirePositive("sphere", "radius", s.Radius),
		requireMaterial("sphere", s.Material),
	)
}

// Validate implements Validator
func (c *Cylinder) Validate() error {
	return errors.Join(
		requireFinite("cylinder", c.Position, c.Direction),
		requirePositive("cylinder", "radius", c.Radius),
		requirePositive("cylinder", "height", c.Height),
		requireMaterial("cylinder", c.Material),
	)
}

// Validate implements Validator
func (c *Cube) Validate() error {
	return errors.Join(
		requirePositive("cube", "width", c.Size.X),
		requirePositive("cube", "height", c.Size.Y),
		requirePositive("cube", "depth", c.Size.Z),
		requireMaterial("cube", c.Material),
	)
}

// Validate implements Validator
func (c *UnitCube) Validate() error {
	return requireMaterial("unit cube", c.Material)
}

// Validate implements Validator
func (tri *Triangle) Validate() error {
	return errors.Join(requireFinite("triangle", tri.P0, tri.P1, tri.P2), requireMaterial("triangle", tri.Material))
}

// Validate implements Validator
func (m *TriangleMesh) Validate() error {
	if len(m.Triangles) == 0 {
		return fmt.Errorf("%w: mesh has no triangles", ErrInvalidShape)
	}
	for i, tri := range m.Triangles {
		if err := tri.Validate(); err != nil {
			return fmt.Errorf("triangle %d: %w", i, err)
		}
	}
	return nil
}
