package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// plyProperty is a property definition from the PLY header
type plyProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // type of the list length
}

const (
	// maxPLYPrealloc caps slice capacity taken from header counts, which
	// are not trusted until the data has actually been read
	maxPLYPrealloc = 1 << 16
	// maxPLYListLength bounds the length of one list property
	maxPLYListLength = 1 << 16
)

type plyElement struct {
	Name  string
	Count int
	Props []plyProperty
}

// plyHeader is the parsed header of a PLY file
type plyHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Elements []plyElement
}

// LoadPLY loads a PLY file in ASCII or binary encoding. Vertex positions,
// optional nx/ny/nz normals and vertex_indices face lists are read; every
// other property is skipped.
func LoadPLY(path string) (*Mesh, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PLY file: %w", err)
	}
	defer f.Close()

	m, err := ReadPLY(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %v", path, len(m.Vertices), len(m.Faces), time.Since(start))
	return m, nil
}

// ReadPLY parses PLY data from r
func ReadPLY(r io.Reader) (*Mesh, error) {
	br := bufio.NewReaderSize(r, 1<<20)
	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, fmt.Errorf("parsing PLY header: %w", err)
	}

	var read plyReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(br)
		scanner.Split(bufio.ScanWords)
		read = &plyASCIIReader{scanner: scanner}
	case "binary_little_endian":
		read = &plyBinaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		read = &plyBinaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: PLY encoding %q", ErrUnsupportedFormat, header.Format)
	}

	m := &Mesh{}
	for _, el := range header.Elements {
		switch el.Name {
		case "vertex":
			if err := readPLYVertices(read, el, m); err != nil {
				return nil, err
			}
		case "face":
			if err := readPLYFaces(read, el, m); err != nil {
				return nil, err
			}
		default:
			for i := 0; i < el.Count; i++ {
				for _, p := range el.Props {
					if _, err := readPLYProperty(read, p); err != nil {
						return nil, fmt.Errorf("skipping %s %d: %w", el.Name, i, err)
					}
				}
			}
		}
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func parsePLYHeader(r *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	first := true
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if first {
			if len(fields) != 1 || fields[0] != "ply" {
				return nil, fmt.Errorf("%w: missing ply magic", ErrUnsupportedFormat)
			}
			first = false
			continue
		}
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("invalid format line %q", strings.TrimSpace(line))
			}
			header.Format = fields[1]
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("invalid element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: element count %q", ErrMalformed, fields[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: fields[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(fields[1:])
			if err != nil {
				return nil, err
			}
			el := &header.Elements[len(header.Elements)-1]
			el.Props = append(el.Props, prop)
		case "end_header":
			return header, nil
		}
	}
}

func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		return plyProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	if len(parts) >= 2 && parts[0] != "list" {
		return plyProperty{Type: parts[0], Name: parts[1]}, nil
	}
	return plyProperty{}, fmt.Errorf("invalid property definition %q", strings.Join(parts, " "))
}

func readPLYVertices(read plyReader, el plyElement, m *Mesh) error {
	hasNormals := false
	for _, p := range el.Props {
		if p.Name == "nx" {
			hasNormals = true
		}
	}

	m.Vertices = make([]core.Vec3, 0, min(el.Count, maxPLYPrealloc))
	if hasNormals {
		m.Normals = make([]core.Vec3, 0, min(el.Count, maxPLYPrealloc))
	}
	for i := 0; i < el.Count; i++ {
		var pos, n core.Vec3
		for _, p := range el.Props {
			values, err := readPLYProperty(read, p)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			if p.IsList {
				continue
			}
			v := values[0]
			switch p.Name {
			case "x":
				pos.X = v
			case "y":
				pos.Y = v
			case "z":
				pos.Z = v
			case "nx":
				n.X = v
			case "ny":
				n.Y = v
			case "nz":
				n.Z = v
			}
		}
		m.Vertices = append(m.Vertices, pos)
		if hasNormals {
			m.Normals = append(m.Normals, n.Normalize())
		}
	}
	return nil
}

func readPLYFaces(read plyReader, el plyElement, m *Mesh) error {
	m.Faces = make([][3]int, 0, min(el.Count, maxPLYPrealloc))
	for i := 0; i < el.Count; i++ {
		for _, p := range el.Props {
			values, err := readPLYProperty(read, p)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			if !p.IsList || (p.Name != "vertex_indices" && p.Name != "vertex_index") {
				continue
			}
			if len(values) < 3 {
				return fmt.Errorf("face %d has %d vertices", i, len(values))
			}
			for k := 1; k+1 < len(values); k++ {
				m.Faces = append(m.Faces, [3]int{int(values[0]), int(values[k]), int(values[k+1])})
			}
		}
	}
	return nil
}

// readPLYProperty reads one scalar property or one list
func readPLYProperty(read plyReader, p plyProperty) ([]float64, error) {
	if !p.IsList {
		v, err := read.scalar(p.Type)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil
	}
	n, err := read.scalar(p.ListType)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > maxPLYListLength || n != math.Trunc(n) {
		return nil, fmt.Errorf("%w: list length %v", ErrMalformed, n)
	}
	values := make([]float64, int(n))
	for i := range values {
		if values[i], err = read.scalar(p.Type); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// plyReader decodes scalar values of a named PLY type
type plyReader interface {
	scalar(typ string) (float64, error)
}

type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func (a *plyASCIIReader) scalar(string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

type plyBinaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *plyBinaryReader) scalar(typ string) (float64, error) {
	size := plyTypeSize(typ)
	if size == 0 {
		return 0, fmt.Errorf("%w: PLY type %q", ErrUnsupportedFormat, typ)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}
	switch typ {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

func plyTypeSize(typ string) int {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}
