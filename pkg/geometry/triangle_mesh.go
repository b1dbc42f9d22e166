package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleMesh is a collection of triangles answered through a BVH
type TriangleMesh struct {
	Triangles []*Triangle
	bvh       *BVH
}

// TriangleMeshOptions holds optional mesh data
type TriangleMeshOptions struct {
	Normals   []core.Vec3     // per-vertex normals, indexed like the vertices
	Transform *core.Transform // object-to-world; identity when nil
	BVH       BVHConfig
}

// NewTriangleMesh builds triangles from vertex positions and index triples
// and constructs the BVH over them. Face indices must be valid; loaders
// check them before calling.
func NewTriangleMesh(vertices []core.Vec3, faces [][3]int, mat *material.Material, opts *TriangleMeshOptions) *TriangleMesh {
	if opts == nil {
		opts = &TriangleMeshOptions{BVH: DefaultBVHConfig()}
	}

	tris := make([]*Triangle, 0, len(faces))
	for _, f := range faces {
		var tri *Triangle
		if len(opts.Normals) == len(vertices) {
			tri = NewSmoothTriangle(
				vertices[f[0]], vertices[f[1]], vertices[f[2]],
				opts.Normals[f[0]], opts.Normals[f[1]], opts.Normals[f[2]],
				mat,
			)
		} else {
			tri = NewTriangle(vertices[f[0]], vertices[f[1]], vertices[f[2]], mat)
		}
		if opts.Transform != nil {
			tri = tri.Transformed(*opts.Transform)
		}
		tris = append(tris, tri)
	}

	shapes := make([]Shape, len(tris))
	for i, tri := range tris {
		shapes[i] = tri
	}

	return &TriangleMesh{
		Triangles: tris,
		bvh:       NewBVH(shapes, opts.BVH),
	}
}

// Intersect implements Shape by delegating to the mesh BVH
func (m *TriangleMesh) Intersect(ray *core.Ray, si *material.SurfaceInteraction) float64 {
	return m.bvh.Intersect(ray, si)
}

// meshNormalEpsilon is how far off a triangle's box a point may lie and
// still be matched to it
const meshNormalEpsilon = 1e-6

// Normal implements Shape and returns the geometric normal of the triangle
// whose plane lies closest to p. Points off the mesh fall back to a scan
// over every triangle.
func (m *TriangleMesh) Normal(p core.Vec3) core.Vec3 {
	var best *Triangle
	bestDist := inf
	consider := func(s Shape) {
		tri := s.(*Triangle)
		if d := tri.planeDistance(p); d < bestDist {
			best, bestDist = tri, d
		}
	}

	m.bvh.VisitNear(p, meshNormalEpsilon, consider)
	if best == nil {
		for _, tri := range m.Triangles {
			consider(tri)
		}
	}
	if best == nil {
		return core.Vec3{}
	}
	return best.Normal(p)
}

// Bounds implements Shape
func (m *TriangleMesh) Bounds() core.Bounds3 {
	return m.bvh.Bounds()
}

// BVH returns the acceleration structure of the mesh
func (m *TriangleMesh) BVH() *BVH {
	return m.bvh
}
