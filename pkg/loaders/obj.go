package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// LoadOBJ loads a Wavefront OBJ file
func LoadOBJ(path string) (*Mesh, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v", path, len(m.Vertices), len(m.Faces), time.Since(start))
	return m, nil
}

// ReadOBJ parses v, vn and f records. Other records are ignored. Faces
// with more than three vertices are triangulated as a fan, and negative
// indices count back from the latest vertex. A vertex's normal is the vn
// referenced by the last face corner that uses it.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	var (
		vertices []core.Vec3
		normals  []core.Vec3
		faces    [][3]int
		// normal index assigned to each vertex, -1 when none
		vertexNormal []int
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)
			vertexNormal = append(vertexNormal, -1)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, n.Normalize())
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, field := range fields[1:] {
				vi, ni, err := parseCorner(field, len(vertices), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if ni >= 0 {
					vertexNormal[vi] = ni
				}
				corners = append(corners, vi)
			}
			for i := 1; i+1 < len(corners); i++ {
				faces = append(faces, [3]int{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	m := &Mesh{Vertices: vertices, Faces: faces}
	if len(normals) > 0 {
		m.Normals = make([]core.Vec3, len(vertices))
		for i, ni := range vertexNormal {
			if ni < 0 {
				// a vertex without a normal disables smooth shading
				m.Normals = nil
				break
			}
			m.Normals[i] = normals[ni]
		}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		c[i] = v
	}
	return core.NewVec3(c[0], c[1], c[2]), nil
}

// parseCorner parses a face corner "v", "v/vt", "v//vn" or "v/vt/vn" and
// returns zero-based vertex and normal indices; the normal index is -1
// when absent
func parseCorner(field string, numVertices, numNormals int) (int, int, error) {
	parts := strings.Split(field, "/")
	vi, err := resolveIndex(parts[0], numVertices)
	if err != nil {
		return 0, 0, err
	}
	ni := -1
	if len(parts) == 3 && parts[2] != "" {
		ni, err = resolveIndex(parts[2], numNormals)
		if err != nil {
			return 0, 0, err
		}
	}
	return vi, ni, nil
}

// resolveIndex converts a 1-based or negative OBJ index to a zero-based one
func resolveIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q: %w", s, err)
	}
	switch {
	case idx > 0:
		idx--
	case idx < 0:
		idx += count
	default:
		return 0, fmt.Errorf("%w: index 0", ErrBadIndex)
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: %s of %d", ErrBadIndex, s, count)
	}
	return idx, nil
}
