package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera maps image-plane coordinates to primary rays. u grows to the
// right and v grows upwards; d is the focal distance.
type Camera interface {
	PrimaryRay(u, v, d float64) core.Ray
}

// PinholeCamera is a perspective camera looking along -Front
type PinholeCamera struct {
	Origin core.Vec3
	Right  core.Vec3
	Up     core.Vec3
	Front  core.Vec3 // points away from the view direction
}

// NewCamera creates a camera at the origin looking down -Z with +Y up
func NewCamera() *PinholeCamera {
	return &PinholeCamera{
		Right: core.NewVec3(1, 0, 0),
		Up:    core.NewVec3(0, 1, 0),
		Front: core.NewVec3(0, 0, 1),
	}
}

// NewLookAtCamera creates a camera at eye looking towards gaze. up only
// needs to be roughly upwards; it is orthogonalized against the view
// direction.
func NewLookAtCamera(eye, gaze, up core.Vec3) *PinholeCamera {
	c := NewCamera()
	c.LookAt(eye, gaze, up)
	return c
}

// LookAt moves the camera to eye and turns it towards gaze
func (c *PinholeCamera) LookAt(eye, gaze, up core.Vec3) {
	viewDir := eye.Subtract(gaze).Normalize()
	right := up.Normalize().Cross(viewDir).Normalize()
	newUp := viewDir.Cross(right)

	camToWorld := core.FromBasis(right, newUp, viewDir, eye)
	c.Origin = camToWorld.Point(core.Vec3{})
	c.Right = camToWorld.Vector(core.NewVec3(1, 0, 0))
	c.Up = camToWorld.Vector(core.NewVec3(0, 1, 0))
	c.Front = camToWorld.Vector(core.NewVec3(0, 0, 1))
}

// PrimaryRay implements Camera
func (c *PinholeCamera) PrimaryRay(u, v, d float64) core.Ray {
	dir := c.Right.Multiply(u).Add(c.Up.Multiply(v)).Subtract(c.Front.Multiply(d)).Normalize()
	return core.NewRay(c.Origin, dir)
}

// OrthographicCamera shoots parallel rays along -Front from a plane
// through Origin. Scale is the half-height of the visible region in world
// units at v = 1.
type OrthographicCamera struct {
	PinholeCamera
	Scale float64
}

// NewOrthographicCamera creates an orthographic camera looking down -Z
func NewOrthographicCamera(scale float64) *OrthographicCamera {
	return &OrthographicCamera{PinholeCamera: *NewCamera(), Scale: scale}
}

// PrimaryRay implements Camera. d is ignored.
func (c *OrthographicCamera) PrimaryRay(u, v, _ float64) core.Ray {
	origin := c.Origin.Add(c.Right.Multiply(c.Scale * u)).Add(c.Up.Multiply(c.Scale * v))
	return core.NewRay(origin, c.Front.Negate())
}
