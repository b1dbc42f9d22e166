package core

import "math"

// Ray represents a ray with an origin, a direction and the nearest hit
// distance found so far. Intersection routines only accept hits strictly
// closer than TNearest and shrink it when they do.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TNearest  float64
}

// NewRay creates a new ray with no hit recorded yet
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TNearest: math.Inf(1)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Offset returns a ray starting slightly along dir from p, used for
// shadow and secondary rays so they do not hit the surface they leave.
func Offset(p, dir Vec3, epsilon float64) Ray {
	return NewRay(p.Add(dir.Multiply(epsilon)), dir)
}
