package scene

import (
	"errors"
	"math"
	"path/filepath"
	"sort"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestBuiltinScenesBuildAndValidate(t *testing.T) {
	infos := List()
	if len(infos) != 5 {
		t.Fatalf("Expected 5 registered scenes, got %d", len(infos))
	}
	if !sort.SliceIsSorted(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name }) {
		t.Errorf("Expected scenes sorted by name")
	}

	for _, info := range infos {
		t.Run(info.Name, func(t *testing.T) {
			s, err := Build(info.Name, DefaultOptions())
			if err != nil {
				t.Fatalf("Expected scene to build, got %v", err)
			}
			if s.Name != info.Name {
				t.Errorf("Expected name %q, got %q", info.Name, s.Name)
			}
			if len(s.Shapes) == 0 {
				t.Errorf("Expected shapes")
			}
			if len(s.Lights) == 0 {
				t.Errorf("Expected lights")
			}

			// The camera's central ray should hit something in every demo
			ray := s.Camera.PrimaryRay(0, 0, 1)
			var si material.SurfaceInteraction
			if d := s.Intersect(&ray, &si); math.IsInf(d, 1) {
				t.Errorf("Expected central ray to hit the scene")
			}
		})
	}
}

func TestBuildUnknownScene(t *testing.T) {
	_, err := Build("nope", DefaultOptions())
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestMeshSceneMissingFile(t *testing.T) {
	opts := DefaultOptions()
	opts.MeshPath = "does-not-exist.obj"
	if _, err := Build("mesh", opts); err == nil {
		t.Errorf("Expected error for missing mesh file")
	}
}

func TestGlassSceneImageTexture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	pixels := []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1)}
	if err := loaders.SaveImage(path, 2, 1, pixels); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	opts := DefaultOptions()
	opts.TexturePath = path
	s, err := Build("glass", opts)
	if err != nil {
		t.Fatalf("Expected glass scene to build, got %v", err)
	}

	found := false
	for _, shape := range s.Shapes {
		if r, ok := shape.(*geometry.Rectangle); ok {
			if _, ok := r.Material.Texture.(*material.ImageTexture); ok {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("Expected back wall to use the image texture")
	}

	banded := false
	for _, shape := range s.Shapes {
		if c, ok := shape.(*geometry.Cylinder); ok && c.Material.Texture != nil {
			if tex, ok := c.Material.Texture.(*material.CheckerBoard); ok {
				_, banded = tex.Mapping.(material.SurfaceMapping)
			}
		}
	}
	if !banded {
		t.Errorf("Expected cylinder checkerboard to follow surface coordinates")
	}

	opts.TexturePath = filepath.Join(t.TempDir(), "missing.png")
	if _, err := Build("glass", opts); err == nil {
		t.Errorf("Expected error for missing texture")
	}
}

func TestValidate(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(0.5))
	sphere := geometry.NewSphere(core.Vec3{}, 1, mat)
	light := lights.NewPointLight(core.NewVec3(0, 5, 0), core.Splat(1))

	tests := []struct {
		name  string
		scene *Scene
		valid bool
	}{
		{"valid", &Scene{Camera: geometry.NewCamera(), Shapes: []geometry.Shape{sphere}, Lights: []lights.Light{light}}, true},
		{"empty", New("empty", geometry.NewCamera()), true},
		{"no camera", &Scene{Shapes: []geometry.Shape{sphere}}, false},
		{"nil shape", &Scene{Camera: geometry.NewCamera(), Shapes: []geometry.Shape{nil}}, false},
		{"no material", &Scene{Camera: geometry.NewCamera(), Shapes: []geometry.Shape{geometry.NewSphere(core.Vec3{}, 1, nil)}}, false},
		{"bad radius", &Scene{Camera: geometry.NewCamera(), Shapes: []geometry.Shape{geometry.NewSphere(core.Vec3{}, -1, mat)}}, false},
		{"nil light", &Scene{Camera: geometry.NewCamera(), Lights: []lights.Light{nil}}, false},
		{"bad light", &Scene{Camera: geometry.NewCamera(), Lights: []lights.Light{lights.NewPointLight(core.Vec3{}, core.Splat(math.NaN()))}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid scene, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestIntersectNearest(t *testing.T) {
	s := New("test", geometry.NewCamera())
	near := material.NewDiffuse(core.NewVec3(1, 0, 0))
	far := material.NewDiffuse(core.NewVec3(0, 1, 0))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -10), 1, far),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, near),
	)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	var si material.SurfaceInteraction
	d := s.Intersect(&ray, &si)
	if math.Abs(d-4) > 1e-9 {
		t.Errorf("Expected distance 4, got %v", d)
	}
	if si.Material != near {
		t.Errorf("Expected nearest sphere's material")
	}

	miss := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))
	if d := s.Intersect(&miss, nil); !math.IsInf(d, 1) {
		t.Errorf("Expected +Inf on miss, got %v", d)
	}
}

func TestPrimitiveCount(t *testing.T) {
	s := New("count", geometry.NewCamera())
	mat := material.NewDiffuse(core.Splat(0.5))
	ico := Icosphere(1)
	s.Add(geometry.NewSphere(core.Vec3{}, 1, mat))
	s.Add(geometry.NewTriangleMesh(ico.Vertices, ico.Faces, mat, nil))

	if got := s.PrimitiveCount(); got != 81 {
		t.Errorf("Expected 81 primitives, got %d", got)
	}
}

func TestIcosphere(t *testing.T) {
	for n := 0; n <= 3; n++ {
		m := Icosphere(n)
		wantFaces := 20 << (2 * n)
		if len(m.Faces) != wantFaces {
			t.Errorf("Subdivision %d: expected %d faces, got %d", n, wantFaces, len(m.Faces))
		}
		// Euler characteristic of a sphere: V - E + F = 2 with E = 3F/2
		if want := 2 + wantFaces/2; len(m.Vertices) != want {
			t.Errorf("Subdivision %d: expected %d vertices, got %d", n, want, len(m.Vertices))
		}
		for i, v := range m.Vertices {
			if math.Abs(v.Length()-1) > 1e-9 {
				t.Fatalf("Subdivision %d: vertex %d not on unit sphere: %v", n, i, v)
			}
		}
	}
}
