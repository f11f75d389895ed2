package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/goroom/pkg/geometry"
	"github.com/philipparndt/goroom/pkg/scene"
)

// stlFacet is one binary STL record
type stlFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attributes uint16
}

// LoadSTL reads an ASCII or binary STL file as a single object. The object
// node is named after the file, so "Chair.stl" can be picked as Chair.
func LoadSTL(path string) (*scene.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return DecodeSTL(file, name)
}

// DecodeSTL detects the STL flavor from the first bytes of r
func DecodeSTL(r io.Reader, name string) (*scene.Node, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(5)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	var triangles []geometry.Triangle
	if string(header) == "solid" {
		triangles, err = decodeASCII(br)
	} else {
		triangles, err = decodeBinary(br)
	}
	if err != nil {
		return nil, err
	}

	object := scene.NewNode(name)
	object.Add(scene.NewMeshNode(name+"_mesh", scene.NewMesh(triangles, scene.White)))

	root := scene.NewNode("Scene")
	root.Add(object)
	return root, nil
}

func decodeASCII(r io.Reader) ([]geometry.Triangle, error) {
	scanner := bufio.NewScanner(r)

	var triangles []geometry.Triangle
	var normal geometry.Vector3
	var vertices []geometry.Vector3

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				normal = parseVector(fields[2:5])
			}
		case "vertex":
			if len(fields) >= 4 {
				vertices = append(vertices, parseVector(fields[1:4]))
			}
		case "endfacet":
			if len(vertices) == 3 {
				triangles = append(triangles, geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return triangles, nil
}

func parseVector(fields []string) geometry.Vector3 {
	x, _ := strconv.ParseFloat(fields[0], 64)
	y, _ := strconv.ParseFloat(fields[1], 64)
	z, _ := strconv.ParseFloat(fields[2], 64)
	return geometry.NewVector3(x, y, z)
}

func decodeBinary(r io.Reader) ([]geometry.Triangle, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	triangles := make([]geometry.Triangle, 0, min(int(count), 1<<20))
	for i := uint32(0); i < count; i++ {
		var f stlFacet
		if err := binary.Read(r, binary.LittleEndian, &f); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		triangles = append(triangles, geometry.NewTriangle(vec(f.Normal), vec(f.V1), vec(f.V2), vec(f.V3)))
	}
	return triangles, nil
}

func vec(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
