package geometry

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var logger = log.New("bvh")

// BVHConfig controls how deep the hierarchy grows
type BVHConfig struct {
	MaxLeafSize int // nodes with more shapes than this are split
	MaxDepth    int // nodes deeper than this are never split
}

// DefaultBVHConfig returns the default BVH configuration
func DefaultBVHConfig() BVHConfig {
	return BVHConfig{MaxLeafSize: 10, MaxDepth: 20}
}

// bvhNode is either a leaf owning shapes[start:start+count] or an internal
// node with two children. Children are indices into BVH.nodes.
type bvhNode struct {
	bounds      core.Bounds3
	left, right int
	start       int
	count       int
	depth       int
}

func (n *bvhNode) isLeaf() bool {
	return n.left < 0
}

// BVH is a binary bounding volume hierarchy stored as a flat node arena.
// It is immutable after construction and safe for concurrent traversal.
type BVH struct {
	nodes  []bvhNode
	shapes []Shape
	config BVHConfig
}

// NewBVH builds a hierarchy over shapes. The input slice is not modified.
//
// Each node splits along axis depth%3 at the midpoint of its box. Shapes
// whose box centroid is below the midpoint go left; ties go right. When
// every shape lands on one side the split is retried on the next axis one
// level deeper, so no child is ever empty.
func NewBVH(shapes []Shape, config BVHConfig) *BVH {
	start := time.Now()

	b := &BVH{
		shapes: make([]Shape, len(shapes)),
		config: config,
	}
	copy(b.shapes, shapes)

	if len(b.shapes) > 0 {
		scratch := make([]Shape, len(b.shapes))
		b.build(0, len(b.shapes), 0, scratch)
	}

	stats := b.Stats()
	logger.Debugf("built BVH over %d shapes in %v: %d nodes, %d leaves, max depth %d, max leaf size %d",
		stats.Shapes, time.Since(start), stats.Nodes, stats.Leaves, stats.MaxDepth, stats.MaxLeafShapes)
	return b
}

// build creates the node for shapes[start:end] and returns its index
func (b *BVH) build(start, end, depth int, scratch []Shape) int {
	bounds := core.EmptyBounds()
	for _, s := range b.shapes[start:end] {
		bounds = bounds.Union(s.Bounds())
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{
		bounds: bounds,
		left:   -1,
		right:  -1,
		start:  start,
		count:  end - start,
		depth:  depth,
	})

	for d := depth; end-start > b.config.MaxLeafSize && d <= b.config.MaxDepth; d++ {
		axis := d % 3
		m := 0.5 * (bounds.Min.Axis(axis) + bounds.Max.Axis(axis))

		mid := b.partition(start, end, axis, m, scratch)
		if mid == start || mid == end {
			continue
		}

		left := b.build(start, mid, d+1, scratch)
		right := b.build(mid, end, d+1, scratch)

		n := &b.nodes[idx]
		n.left, n.right = left, right
		n.count = 0
		break
	}

	return idx
}

// partition reorders shapes[start:end] so that shapes with centroid below m
// on axis come first, keeping relative order. It returns the split index.
func (b *BVH) partition(start, end, axis int, m float64, scratch []Shape) int {
	left := scratch[start:start]
	var right []Shape
	for _, s := range b.shapes[start:end] {
		if s.Bounds().Centroid().Axis(axis) < m {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	mid := start + len(left)
	copy(b.shapes[start:mid], left)
	copy(b.shapes[mid:end], right)
	return mid
}

// Intersect returns the nearest hit distance over all shapes, updating ray
// and si as described on Shape
func (b *BVH) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	if len(b.nodes) == 0 || b.nodes[0].bounds.Intersect(*ray) == inf {
		return inf
	}
	return b.intersectNode(0, ray, si)
}

// intersectNode visits every child whose box the ray enters
func (b *BVH) intersectNode(idx int, ray *core.Ray, si *material.SurfaceInteraction) float64 {
	n := &b.nodes[idx]
	if n.isLeaf() {
		return IntersectAll(b.shapes[n.start:n.start+n.count], ray, si)
	}

	t := inf
	if b.nodes[n.left].bounds.Intersect(*ray) < inf {
		t = min(t, b.intersectNode(n.left, ray, si))
	}
	if b.nodes[n.right].bounds.Intersect(*ray) < inf {
		t = min(t, b.intersectNode(n.right, ray, si))
	}
	return t
}

// VisitNear calls visit for every shape whose box, grown by eps, contains p
func (b *BVH) VisitNear(p core.Vec3, eps float64, visit func(Shape)) {
	if len(b.nodes) == 0 {
		return
	}
	stack := []int{0}
	for len(stack) > 0 {
		n := &b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !n.bounds.ContainsPoint(p, eps) {
			continue
		}
		if !n.isLeaf() {
			stack = append(stack, n.left, n.right)
			continue
		}
		for _, s := range b.shapes[n.start : n.start+n.count] {
			if s.Bounds().ContainsPoint(p, eps) {
				visit(s)
			}
		}
	}
}

// Bounds returns the box of the root node
func (b *BVH) Bounds() core.Bounds3 {
	if len(b.nodes) == 0 {
		return core.EmptyBounds()
	}
	return b.nodes[0].bounds
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Shapes        int
	Nodes         int
	Leaves        int
	MaxDepth      int
	AvgLeafDepth  float64
	MaxLeafShapes int
}

// Stats returns statistics about the BVH structure
func (b *BVH) Stats() BVHStats {
	stats := BVHStats{Shapes: len(b.shapes), Nodes: len(b.nodes)}
	depthSum := 0
	for i := range b.nodes {
		n := &b.nodes[i]
		stats.MaxDepth = max(stats.MaxDepth, n.depth)
		if !n.isLeaf() {
			continue
		}
		stats.Leaves++
		depthSum += n.depth
		stats.MaxLeafShapes = max(stats.MaxLeafShapes, n.count)
	}
	if stats.Leaves > 0 {
		stats.AvgLeafDepth = float64(depthSum) / float64(stats.Leaves)
	}
	return stats
}
