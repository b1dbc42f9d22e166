package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight emits equally in all directions from Position. Its
// contribution falls off with the squared distance.
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a point light
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

// Emission implements Light
func (l *PointLight) Emission(core.Vec3) core.Vec3 {
	return l.Color
}

// Sample implements Light
func (l *PointLight) Sample(p core.Vec3) Sample {
	d := l.Position.Subtract(p)
	distSq := d.LengthSquared()
	return Sample{
		ToLight:  d.Normalize(),
		Distance: math.Sqrt(distSq),
		Falloff:  1 / distSq,
	}
}

// Visible implements Light
func (l *PointLight) Visible(p core.Vec3, occ Occluder, epsilon float64) bool {
	s := l.Sample(p)
	return unoccluded(p, s.ToLight, s.Distance, occ, epsilon)
}

// Validate implements Light
func (l *PointLight) Validate() error {
	if !l.Position.IsFinite() {
		return fmt.Errorf("%w: point light position %v", ErrInvalidLight, l.Position)
	}
	return validateColor("point light", l.Color)
}
