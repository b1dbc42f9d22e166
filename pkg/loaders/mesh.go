package loaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/log"
)

var logger = log.New("loaders")

var (
	// ErrNoFaces is returned when a mesh file contains no faces
	ErrNoFaces = errors.New("loaders: mesh has no faces")
	// ErrBadIndex is returned when a face references a missing vertex
	ErrBadIndex = errors.New("loaders: face index out of range")
	// ErrUnsupportedFormat is returned for files the loaders cannot read
	ErrUnsupportedFormat = errors.New("loaders: unsupported format")
	// ErrMalformed is returned for counts or lengths a file cannot satisfy
	ErrMalformed = errors.New("loaders: malformed mesh file")
)

// Mesh is an indexed triangle mesh as read from a file
type Mesh struct {
	Vertices []core.Vec3
	Normals  []core.Vec3 // per-vertex normals; nil when the file has none
	Faces    [][3]int    // zero-based vertex indices
}

// LoadMesh loads an OBJ or PLY file, chosen by extension
func LoadMesh(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".ply":
		return LoadPLY(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// validate checks that the mesh has faces and that every index is in range
func (m *Mesh) validate() error {
	if len(m.Faces) == 0 {
		return ErrNoFaces
	}
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("%w: face %d references vertex %d of %d", ErrBadIndex, i, idx, len(m.Vertices))
			}
		}
	}
	if m.Normals != nil && len(m.Normals) != len(m.Vertices) {
		m.Normals = nil
	}
	return nil
}
