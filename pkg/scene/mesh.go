package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// icosphereSubdivisions controls the size of the built-in mesh (1280 faces)
const icosphereSubdivisions = 3

// NewMeshScene places a mirror-finished triangle mesh in a room with one
// mirrored wall. The mesh is loaded from opts.MeshPath when set, otherwise
// a built-in icosphere is used.
func NewMeshScene(opts Options) (*Scene, error) {
	camera := geometry.NewLookAtCamera(core.NewVec3(0, 2.5, 25), core.NewVec3(-1, 0, -10), core.NewVec3(0, 1, 0))
	s := New("mesh", camera)

	wall := material.New(core.Splat(0.02), core.Splat(0.4), core.Vec3{}).WithReflective(core.Splat(0.2))
	mirror := material.New(core.Vec3{}, core.Vec3{}, core.Vec3{}).WithReflective(core.Splat(1))
	blue := material.New(core.NewVec3(0, 0, 0.02), core.NewVec3(0.1, 0.1, 0.5), core.Vec3{})

	s.Add(
		// floor
		geometry.NewRectangle(core.NewVec3(-4, 0, -18), core.NewVec3(150, 0, 0), core.NewVec3(0, 0, -150), wall),
		// back and front walls
		geometry.NewRectangle(core.NewVec3(0, 20, -40), core.NewVec3(80, 0, 0), core.NewVec3(0, 40, 0), blue),
		geometry.NewRectangle(core.NewVec3(0, 20, 60), core.NewVec3(-80, 0, 0), core.NewVec3(0, 40, 0), wall),
		// left wall is a mirror
		geometry.NewRectangle(core.NewVec3(-20, 20, 0), core.NewVec3(0, 0, -120), core.NewVec3(0, 40, 0), mirror),
		geometry.NewRectangle(core.NewVec3(20, 20, 0), core.NewVec3(0, 0, 120), core.NewVec3(0, 40, 0), wall),
	)

	meshMat := material.New(core.Splat(0.01), core.Splat(0.1), core.Splat(0.2)).WithReflective(core.Splat(1))
	var data *loaders.Mesh
	if opts.MeshPath != "" {
		var err error
		data, err = loaders.LoadMesh(opts.MeshPath)
		if err != nil {
			return nil, fmt.Errorf("loading mesh: %w", err)
		}
	} else {
		data = Icosphere(icosphereSubdivisions)
	}

	// Fit the mesh into a 6 unit box resting on the floor
	toWorld := fitOnFloor(data, 6)
	mesh := geometry.NewTriangleMesh(data.Vertices, data.Faces, meshMat, &geometry.TriangleMeshOptions{
		Normals:   data.Normals,
		Transform: &toWorld,
		BVH:       opts.BVH,
	})
	s.Add(mesh)

	s.AddLight(
		lights.NewPointLight(core.NewVec3(5, 5, 25), core.Splat(120)),
		lights.NewPointLight(core.NewVec3(-5, 5, 25), core.Splat(80)),
	)
	return s, nil
}

// fitOnFloor returns a transform scaling the mesh so its largest extent is
// size, centered on the y axis with its lowest point at y=0
func fitOnFloor(m *loaders.Mesh, size float64) core.Transform {
	b := core.NewBounds3FromPoints(m.Vertices...)
	extent := b.Size()
	largest := max(extent.X, extent.Y, extent.Z)
	if largest == 0 {
		return core.Identity()
	}
	k := size / largest
	c := b.Centroid()
	return core.Translate(core.NewVec3(-c.X, -b.Min.Y, -c.Z)).
		Then(core.Scale(core.Splat(k)))
}

// Icosphere returns a unit sphere mesh made by subdividing an icosahedron.
// Vertex normals equal the vertex positions.
func Icosphere(subdivisions int) *loaders.Mesh {
	phi := (1 + 2.23606797749979) / 2
	vertices := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	for i := range vertices {
		vertices[i] = vertices[i].Normalize()
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for i := 0; i < subdivisions; i++ {
		midpoints := map[[2]int]int{}
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			vertices = append(vertices, vertices[a].Add(vertices[b]).Normalize())
			midpoints[key] = len(vertices) - 1
			return len(vertices) - 1
		}

		next := make([][3]int, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]int{f[0], ab, ca},
				[3]int{f[1], bc, ab},
				[3]int{f[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		faces = next
	}

	normals := make([]core.Vec3, len(vertices))
	copy(normals, vertices)
	return &loaders.Mesh{Vertices: vertices, Normals: normals, Faces: faces}
}
