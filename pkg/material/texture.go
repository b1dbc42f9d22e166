package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture provides a color that varies over a surface
type Texture interface {
	Texel(si *SurfaceInteraction) core.Vec3
}

// TextureMapping assigns texture coordinates to a hit
type TextureMapping interface {
	UV(si *SurfaceInteraction) core.Vec2
}

// Wrap selects how texture coordinates outside [0,1] are handled
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
	WrapBlack
)

// ParseWrap converts a wrap mode name to a Wrap
func ParseWrap(name string) (Wrap, bool) {
	switch name {
	case "repeat":
		return WrapRepeat, true
	case "clamp":
		return WrapClamp, true
	case "black":
		return WrapBlack, true
	}
	return WrapBlack, false
}

func (w Wrap) apply(uv core.Vec2) core.Vec2 {
	switch w {
	case WrapRepeat:
		u, v := math.Abs(uv.X), math.Abs(uv.Y)
		return core.Vec2{X: u - math.Floor(u), Y: v - math.Floor(v)}
	case WrapClamp:
		return core.Vec2{X: clamp01(uv.X), Y: clamp01(uv.Y)}
	default:
		if uv.X < 0 || uv.Y < 0 || uv.X > 1 || uv.Y > 1 {
			return core.Vec2{}
		}
		return uv
	}
}

func clamp01(x float64) float64 {
	return max(0, min(1, x))
}

// Checker cell size in texture space; each cell is half a period.
const (
	checkerPeriod = 0.2
	checkerHalf   = checkerPeriod / 2
)

// CheckerBoard alternates between Color and black in a 5x5 grid over the
// unit texture square.
type CheckerBoard struct {
	Mapping TextureMapping
	Color   core.Vec3
	Wrap    Wrap
}

// NewCheckerBoard creates a checkerboard texture
func NewCheckerBoard(mapping TextureMapping, color core.Vec3, wrap Wrap) *CheckerBoard {
	return &CheckerBoard{Mapping: mapping, Color: color, Wrap: wrap}
}

// Texel implements Texture
func (c *CheckerBoard) Texel(si *SurfaceInteraction) core.Vec3 {
	uv := c.Wrap.apply(c.Mapping.UV(si))
	a := math.Mod(uv.X, checkerPeriod) < checkerHalf
	b := math.Mod(uv.Y, checkerPeriod) < checkerHalf
	if a != b {
		return c.Color
	}
	return core.Vec3{}
}

// SurfaceMapping uses the parameterization reported by the hit shape,
// scaled per axis. A zero Scale leaves the coordinates unchanged.
type SurfaceMapping struct {
	Scale core.Vec2
}

// UV implements TextureMapping
func (s SurfaceMapping) UV(si *SurfaceInteraction) core.Vec2 {
	if s.Scale == (core.Vec2{}) {
		return si.UV
	}
	return core.Vec2{X: si.UV.X * s.Scale.X, Y: si.UV.Y * s.Scale.Y}
}

// SphericalMapping maps positions to longitude/latitude around a center
type SphericalMapping struct {
	Center core.Vec3
}

// UV implements TextureMapping
func (s SphericalMapping) UV(si *SurfaceInteraction) core.Vec2 {
	d := si.Point.Subtract(s.Center).Normalize()
	u := (1 + math.Atan2(d.Z, d.X)/math.Pi) * 0.5
	v := math.Acos(max(-1, min(1, d.Y))) / math.Pi
	return core.Vec2{X: u, Y: v}
}

// PlanarMapping projects positions onto two spanning vectors of a plane
type PlanarMapping struct {
	Origin core.Vec3
	s, t   core.Vec3
	sl, tl float64
}

// NewPlanarMapping creates a planar mapping. One texture period spans the
// length of each spanning vector.
func NewPlanarMapping(origin, s, t core.Vec3) PlanarMapping {
	return PlanarMapping{
		Origin: origin,
		s:      s.Normalize(),
		t:      t.Normalize(),
		sl:     s.Length(),
		tl:     t.Length(),
	}
}

// UV implements TextureMapping
func (m PlanarMapping) UV(si *SurfaceInteraction) core.Vec2 {
	d := si.Point.Subtract(m.Origin)
	return core.Vec2{X: d.Dot(m.s) / m.sl, Y: d.Dot(m.t) / m.tl}
}

// ObjectSpaceTexture colors a point by its position inside an object's
// local frame, which makes the object's orientation visible.
type ObjectSpaceTexture struct {
	ToWorld core.Transform
	Offset  core.Vec3
	Scale   float64
}

// Texel implements Texture
func (o *ObjectSpaceTexture) Texel(si *SurfaceInteraction) core.Vec3 {
	return o.ToWorld.InversePoint(si.Point).Add(o.Offset).Multiply(o.Scale)
}
