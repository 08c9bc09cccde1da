package scene

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
)

// PLYData is the triangle geometry of a PLY file
type PLYData struct {
	Vertices []core.Vec3
	Faces    [][3]int
}

// plyProperty is a property definition from a PLY header
type plyProperty struct {
	Name      string
	Type      string // Scalar type, or the item type of a list
	IsList    bool
	CountType string // Type of the list length
}

type plyElement struct {
	Name  string
	Count int
	Props []plyProperty
}

type plyHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Elements []plyElement
}

// maxPLYListLength bounds the length of any list property, such as the
// vertex count of a single face
const maxPLYListLength = 1 << 16

// plyValues reads one scalar of a PLY data type from the body
type plyValues interface {
	read(dataType string) (float64, error)
}

// LoadPLY reads the vertex positions and faces of a PLY file
func LoadPLY(path string) (*PLYData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer file.Close()

	data, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	return data, nil
}

// ReadPLY decodes ASCII and binary PLY data. Only vertex positions and face
// indices are kept; polygons are fan triangulated.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	var values plyValues
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValues{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValues{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValues{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format %q", header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			switch element.Name {
			case "vertex":
				vertex, err := readPLYVertex(values, element.Props)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				data.Vertices = append(data.Vertices, vertex)
			case "face":
				faces, err := readPLYFace(values, element.Props)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				data.Faces = append(data.Faces, faces...)
			default:
				if _, err := readPLYProps(values, element.Props); err != nil {
					return nil, fmt.Errorf("%s %d: %w", element.Name, i, err)
				}
			}
		}
	}

	for i, face := range data.Faces {
		for _, index := range face {
			if index < 0 || index >= len(data.Vertices) {
				return nil, fmt.Errorf("triangle %d: vertex index %d out of range", i, index)
			}
		}
	}

	return data, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("missing end_header: %w", err)
		}

		parts := strings.Fields(line)
		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("not a PLY file")
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 2 {
				return nil, fmt.Errorf("invalid format line")
			}
			header.Format = parts[1]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Props = append(element.Props, prop)
		default:
			return nil, fmt.Errorf("unexpected header line %q", strings.TrimSpace(line))
		}
	}
}

// parsePLYProperty parses the fields of a property line after the keyword
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("invalid list property definition")
		}
		return plyProperty{Name: parts[3], Type: parts[2], IsList: true, CountType: parts[1]}, nil
	}
	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("invalid property definition")
	}
	return plyProperty{Name: parts[1], Type: parts[0]}, nil
}

// readPLYProps reads one element's properties. List properties are returned
// by name; scalars are read and dropped.
func readPLYProps(values plyValues, props []plyProperty) (map[string][]float64, error) {
	lists := make(map[string][]float64)
	for _, prop := range props {
		if !prop.IsList {
			if _, err := values.read(prop.Type); err != nil {
				return nil, err
			}
			continue
		}

		count, err := values.read(prop.CountType)
		if err != nil {
			return nil, err
		}
		if !isPLYIndex(count) || count > maxPLYListLength {
			return nil, fmt.Errorf("invalid list length %v for %s", count, prop.Name)
		}
		items := make([]float64, int(count))
		for i := range items {
			if items[i], err = values.read(prop.Type); err != nil {
				return nil, err
			}
		}
		lists[prop.Name] = items
	}
	return lists, nil
}

func readPLYVertex(values plyValues, props []plyProperty) (core.Vec3, error) {
	var vertex core.Vec3
	for _, prop := range props {
		if prop.IsList {
			if _, err := readPLYProps(values, []plyProperty{prop}); err != nil {
				return vertex, err
			}
			continue
		}

		value, err := values.read(prop.Type)
		if err != nil {
			return vertex, err
		}
		switch prop.Name {
		case "x":
			vertex[0] = float32(value)
		case "y":
			vertex[1] = float32(value)
		case "z":
			vertex[2] = float32(value)
		}
	}
	return vertex, nil
}

func readPLYFace(values plyValues, props []plyProperty) ([][3]int, error) {
	lists, err := readPLYProps(values, props)
	if err != nil {
		return nil, err
	}

	indices, ok := lists["vertex_indices"]
	if !ok {
		indices, ok = lists["vertex_index"]
	}
	if !ok {
		return nil, fmt.Errorf("no vertex_indices property")
	}
	if len(indices) < 3 {
		return nil, fmt.Errorf("expected at least 3 indices, got %d", len(indices))
	}

	for _, index := range indices {
		if !isPLYIndex(index) {
			return nil, fmt.Errorf("invalid vertex index %v", index)
		}
	}

	triangles := make([][3]int, 0, len(indices)-2)
	for k := 1; k+1 < len(indices); k++ {
		triangles = append(triangles, [3]int{int(indices[0]), int(indices[k]), int(indices[k+1])})
	}
	return triangles, nil
}

// isPLYIndex reports whether v is a finite, non-negative whole number
// that fits in an int
func isPLYIndex(v float64) bool {
	return v >= 0 && v <= math.MaxInt32 && v == math.Trunc(v)
}

type asciiValues struct {
	scanner *bufio.Scanner
}

func (a *asciiValues) read(string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

type binaryValues struct {
	r     io.Reader
	order binary.ByteOrder
}

func (b *binaryValues) read(dataType string) (float64, error) {
	switch dataType {
	case "char", "int8":
		return readBinary[int8](b.r, b.order)
	case "uchar", "uint8":
		return readBinary[uint8](b.r, b.order)
	case "short", "int16":
		return readBinary[int16](b.r, b.order)
	case "ushort", "uint16":
		return readBinary[uint16](b.r, b.order)
	case "int", "int32":
		return readBinary[int32](b.r, b.order)
	case "uint", "uint32":
		return readBinary[uint32](b.r, b.order)
	case "float", "float32":
		return readBinary[float32](b.r, b.order)
	case "double", "float64":
		return readBinary[float64](b.r, b.order)
	default:
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
}

func readBinary[T int8 | uint8 | int16 | uint16 | int32 | uint32 | float32 | float64](r io.Reader, order binary.ByteOrder) (float64, error) {
	var value T
	if err := binary.Read(r, order, &value); err != nil {
		return 0, err
	}
	return float64(value), nil
}
