package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Options are passed to every scene builder
type Options struct {
	MeshPath    string             // OBJ or PLY file for scenes that load one; empty for a built-in mesh
	TexturePath string             // PNG or JPEG image for scenes with a textured wall; empty for a checkerboard
	BVH         geometry.BVHConfig // configuration of mesh hierarchies
}

// DefaultOptions returns the default scene options
func DefaultOptions() Options {
	return Options{BVH: geometry.DefaultBVHConfig()}
}

// Builder constructs a scene
type Builder func(opts Options) (*Scene, error)

// Info describes a registered scene
type Info struct {
	Name        string
	Description string
	Build       Builder
}

var registry = map[string]Info{}

func register(name, description string, build Builder) {
	registry[name] = Info{Name: name, Description: description, Build: build}
}

func init() {
	register("gathering", "spheres, mirror and glass over a tilted reflective floor with cubes", NewGatheringScene)
	register("mixed", "transformed cubes, cylinders, textured spheres and a triangle", NewMixedScene)
	register("mesh", "a triangle mesh (OBJ file or built-in icosphere) in a mirrored room", NewMeshScene)
	register("glass", "refractive spheres and cubes over a checkerboard floor", NewGlassScene)
	register("triangle", "a single textured triangle", NewTriangleScene)
}

// List returns all registered scenes sorted by name
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for _, info := range registry {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Build constructs the named scene and validates it
func Build(name string, opts Options) (*Scene, error) {
	info, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := info.Build(opts)
	if err != nil {
		return nil, fmt.Errorf("building scene %q: %w", name, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
