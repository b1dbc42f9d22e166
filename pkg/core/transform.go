package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform holds an object-to-world matrix together with its inverse and
// the inverse transpose used for normals.
type Transform struct {
	ObjToWorld mgl64.Mat4
	WorldToObj mgl64.Mat4
	normalMat  mgl64.Mat4
}

// Identity returns the identity transform
func Identity() Transform {
	return NewTransform(mgl64.Ident4())
}

// NewTransform builds a transform from an object-to-world matrix
func NewTransform(objToWorld mgl64.Mat4) Transform {
	inv := objToWorld.Inv()
	return Transform{
		ObjToWorld: objToWorld,
		WorldToObj: inv,
		normalMat:  inv.Transpose(),
	}
}

// Translate returns a transform moving objects by offset
func Translate(offset Vec3) Transform {
	return NewTransform(mgl64.Translate3D(offset.X, offset.Y, offset.Z))
}

// Scale returns a non-uniform scale transform
func Scale(s Vec3) Transform {
	return NewTransform(mgl64.Scale3D(s.X, s.Y, s.Z))
}

// Rotate returns a rotation of angle radians about axis
func Rotate(angle float64, axis Vec3) Transform {
	a := axis.Normalize()
	return NewTransform(mgl64.HomogRotate3D(angle, mgl64.Vec3{a.X, a.Y, a.Z}))
}

// FromBasis builds a transform whose columns are the given axes and origin
func FromBasis(x, y, z, origin Vec3) Transform {
	m := mgl64.Mat4FromCols(
		mgl64.Vec4{x.X, x.Y, x.Z, 0},
		mgl64.Vec4{y.X, y.Y, y.Z, 0},
		mgl64.Vec4{z.X, z.Y, z.Z, 0},
		mgl64.Vec4{origin.X, origin.Y, origin.Z, 1},
	)
	return NewTransform(m)
}

// Then composes two transforms so that t is applied first and next second
func (t Transform) Then(next Transform) Transform {
	return NewTransform(next.ObjToWorld.Mul4(t.ObjToWorld))
}

// Point maps an object-space point to world space
func (t Transform) Point(p Vec3) Vec3 {
	return fromVec4(t.ObjToWorld.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// Vector maps an object-space direction to world space
func (t Transform) Vector(v Vec3) Vec3 {
	return fromVec4(t.ObjToWorld.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0}))
}

// Normal maps an object-space normal to world space and normalizes it
func (t Transform) Normal(n Vec3) Vec3 {
	return fromVec4(t.normalMat.Mul4x1(mgl64.Vec4{n.X, n.Y, n.Z, 0})).Normalize()
}

// InversePoint maps a world-space point to object space
func (t Transform) InversePoint(p Vec3) Vec3 {
	return fromVec4(t.WorldToObj.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// InverseVector maps a world-space direction to object space
func (t Transform) InverseVector(v Vec3) Vec3 {
	return fromVec4(t.WorldToObj.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0}))
}

// InverseRay maps a world-space ray to object space. The direction is not
// renormalized, so distances along it match world-space distances.
func (t Transform) InverseRay(r Ray) Ray {
	return Ray{
		Origin:    t.InversePoint(r.Origin),
		Direction: t.InverseVector(r.Direction),
		TNearest:  r.TNearest,
	}
}

// Bounds maps an object-space box to a world-space box enclosing its corners
func (t Transform) Bounds(b Bounds3) Bounds3 {
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := Vec3{b.Min.X, b.Min.Y, b.Min.Z}
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out = out.UnionPoint(t.Point(corner))
	}
	return out
}

func fromVec4(v mgl64.Vec4) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
