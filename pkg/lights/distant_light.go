package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DistantLight illuminates the whole scene from one direction without
// attenuation, like sunlight
type DistantLight struct {
	Direction core.Vec3 // direction the light travels, normalized
	Color     core.Vec3
}

// NewDistantLight creates a light travelling along direction
func NewDistantLight(direction, color core.Vec3) *DistantLight {
	return &DistantLight{Direction: direction.Normalize(), Color: color}
}

// Emission implements Light
func (l *DistantLight) Emission(core.Vec3) core.Vec3 {
	return l.Color
}

// Sample implements Light
func (l *DistantLight) Sample(core.Vec3) Sample {
	return Sample{ToLight: l.Direction.Negate(), Distance: math.Inf(1), Falloff: 1}
}

// Visible implements Light
func (l *DistantLight) Visible(p core.Vec3, occ Occluder, epsilon float64) bool {
	return unoccluded(p, l.Direction.Negate(), math.Inf(1), occ, epsilon)
}

// Validate implements Light
func (l *DistantLight) Validate() error {
	if !l.Direction.IsFinite() || l.Direction.IsZero() {
		return fmt.Errorf("%w: distant light direction %v", ErrInvalidLight, l.Direction)
	}
	return validateColor("distant light", l.Color)
}
