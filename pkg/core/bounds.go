package core

import "math"

// Bounds3 represents an axis-aligned bounding box
type Bounds3 struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewBounds3 creates a new box from two corners, ordering them componentwise
func NewBounds3(a, b Vec3) Bounds3 {
	return Bounds3{Min: a.Min(b), Max: a.Max(b)}
}

// EmptyBounds returns a box that contains nothing; its union with any box
// is that box.
func EmptyBounds() Bounds3 {
	inf := math.Inf(1)
	return Bounds3{Min: Splat(inf), Max: Splat(-inf)}
}

// NewBounds3FromPoints creates a box that bounds all given points
func NewBounds3FromPoints(points ...Vec3) Bounds3 {
	b := EmptyBounds()
	for _, p := range points {
		b = b.UnionPoint(p)
	}
	return b
}

// Intersect tests the ray against the box with the slab method. It returns
// the entry distance (0 if the origin is inside) or +Inf when the ray misses.
// Zero direction components produce infinite slab bounds, which the
// comparisons below handle without special cases.
func (b Bounds3) Intersect(ray Ray) float64 {
	if b.IsEmpty() {
		return math.Inf(1)
	}

	t0, t1 := 0.0, math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		invDir := 1.0 / ray.Direction.Axis(axis)

		tNear := (b.Min.Axis(axis) - origin) * invDir
		tFar := (b.Max.Axis(axis) - origin) * invDir

		// 0 * Inf yields NaN when the origin lies on a slab plane of a parallel ray
		if math.IsNaN(tNear) || math.IsNaN(tFar) {
			continue
		}
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}

		t0 = math.Max(t0, tNear)
		t1 = math.Min(t1, tFar)
		if t0 > t1 {
			return math.Inf(1)
		}
	}

	return t0
}

// Union returns a box that bounds both boxes
func (b Bounds3) Union(other Bounds3) Bounds3 {
	return Bounds3{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// UnionPoint returns a box that bounds this box and p
func (b Bounds3) UnionPoint(p Vec3) Bounds3 {
	return Bounds3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Contains reports whether other lies entirely inside this box
func (b Bounds3) Contains(other Bounds3) bool {
	return b.Min.X <= other.Min.X && b.Min.Y <= other.Min.Y && b.Min.Z <= other.Min.Z &&
		b.Max.X >= other.Max.X && b.Max.Y >= other.Max.Y && b.Max.Z >= other.Max.Z
}

// ContainsPoint reports whether p lies inside the box grown by eps on
// every side
func (b Bounds3) ContainsPoint(p Vec3, eps float64) bool {
	return p.X >= b.Min.X-eps && p.Y >= b.Min.Y-eps && p.Z >= b.Min.Z-eps &&
		p.X <= b.Max.X+eps && p.Y <= b.Max.Y+eps && p.Z <= b.Max.Z+eps
}

// Centroid returns the center point of the box
func (b Bounds3) Centroid() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the box along each axis
func (b Bounds3) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// IsEmpty returns true if min > max on any axis
func (b Bounds3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}
