// Package loader turns glTF/GLB assets into scene graph nodes.
package loader

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/goroom/pkg/geometry"
	"github.com/philipparndt/goroom/pkg/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var (
	// ErrUnsupportedFormat is returned for files that are not glTF assets
	ErrUnsupportedFormat = errors.New("unsupported asset format")
	// ErrNoScene is returned when the document has nothing to show
	ErrNoScene = errors.New("asset contains no scene")
)

// maxDepth guards against malformed documents with cyclic node references
const maxDepth = 64

// Load reads a .glb, .gltf or .stl file and returns its default scene as a
// node tree
func Load(path string) (*scene.Node, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".glb", ".gltf":
	case ".stl":
		return LoadSTL(path)
	default:
		return nil, fmt.Errorf("%w: %s (expected .glb, .gltf or .stl)", ErrUnsupportedFormat, ext)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset: %w", err)
	}

	return Build(doc)
}

// Build converts a decoded document. Each glTF node becomes a group node;
// its mesh primitives become child mesh nodes, so a picked mesh's parent is
// always the named glTF node.
func Build(doc *gltf.Document) (*scene.Node, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}

	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: scene index %d out of range", ErrNoScene, sceneIdx)
	}

	src := doc.Scenes[sceneIdx]
	name := src.Name
	if name == "" {
		name = "Scene"
	}
	root := scene.NewNode(name)

	b := &builder{doc: doc}
	for _, idx := range src.Nodes {
		node, err := b.node(int(idx), 0)
		if err != nil {
			return nil, err
		}
		root.Add(node)
	}
	return root, nil
}

type builder struct {
	doc *gltf.Document
}

func (b *builder) node(idx, depth int) (*scene.Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("node hierarchy deeper than %d levels", maxDepth)
	}
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}

	src := b.doc.Nodes[idx]
	node := scene.NewNode(src.Name)
	applyTransform(node, src)

	if src.Mesh != nil {
		meshes, err := b.meshNodes(int(*src.Mesh), src.Name)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
		node.Add(meshes...)
	}

	for _, child := range src.Children {
		c, err := b.node(int(child), depth+1)
		if err != nil {
			return nil, err
		}
		node.Add(c)
	}
	return node, nil
}

func applyTransform(node *scene.Node, src *gltf.Node) {
	m := mgl64.Mat4(src.MatrixOrDefault())
	if m != mgl64.Ident4() {
		decompose(node, m)
		return
	}

	t := src.TranslationOrDefault()
	r := src.RotationOrDefault()
	s := src.ScaleOrDefault()

	node.Position = geometry.NewVector3(t[0], t[1], t[2])
	node.Rotation = scene.EulerFromQuat(mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}})
	node.Scale = geometry.NewVector3(s[0], s[1], s[2])
}

// decompose splits an affine matrix without shear into TRS
func decompose(node *scene.Node, m mgl64.Mat4) {
	col0, col1, col2, col3 := m.Cols()
	sx := col0.Vec3().Len()
	sy := col1.Vec3().Len()
	sz := col2.Vec3().Len()

	node.Position = geometry.NewVector3(col3[0], col3[1], col3[2])
	node.Scale = geometry.NewVector3(sx, sy, sz)

	if sx == 0 || sy == 0 || sz == 0 {
		return
	}
	rot := mgl64.Ident4()
	rot.SetCol(0, col0.Mul(1/sx))
	rot.SetCol(1, col1.Mul(1/sy))
	rot.SetCol(2, col2.Mul(1/sz))
	rot.SetCol(3, mgl64.Vec4{0, 0, 0, 1})
	node.Rotation = scene.EulerFromMatrix(rot)
}

func (b *builder) meshNodes(meshIdx int, nodeName string) ([]*scene.Node, error) {
	if meshIdx < 0 || meshIdx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	src := b.doc.Meshes[meshIdx]

	base := src.Name
	if base == "" {
		base = nodeName
	}

	var nodes []*scene.Node
	for i, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		triangles, err := b.triangles(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, i, err)
		}

		name := base
		if len(src.Primitives) > 1 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		nodes = append(nodes, scene.NewMeshNode(name, scene.NewMesh(triangles, b.baseColor(prim))))
	}
	return nodes, nil
}

func (b *builder) triangles(prim *gltf.Primitive) ([]geometry.Triangle, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, errors.New("primitive has no POSITION attribute")
	}
	if int(posIdx) >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", posIdx)
	}

	positions, err := modeler.ReadPosition(b.doc, b.doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		if int(*prim.Indices) >= len(b.doc.Accessors) {
			return nil, fmt.Errorf("accessor index %d out of range", *prim.Indices)
		}
		indices, err = modeler.ReadIndices(b.doc, b.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	vertex := func(i uint32) (geometry.Vector3, error) {
		if int(i) >= len(positions) {
			return geometry.Vector3{}, fmt.Errorf("vertex index %d out of range", i)
		}
		p := positions[i]
		return geometry.NewVector3(float64(p[0]), float64(p[1]), float64(p[2])), nil
	}

	triangles := make([]geometry.Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		v1, err := vertex(indices[i])
		if err != nil {
			return nil, err
		}
		v2, err := vertex(indices[i+1])
		if err != nil {
			return nil, err
		}
		v3, err := vertex(indices[i+2])
		if err != nil {
			return nil, err
		}
		triangles = append(triangles, geometry.Triangle{V1: v1, V2: v2, V3: v3})
	}
	return triangles, nil
}

func (b *builder) baseColor(prim *gltf.Primitive) scene.Color {
	if prim.Material == nil || int(*prim.Material) >= len(b.doc.Materials) {
		return scene.White
	}
	pbr := b.doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil {
		return scene.White
	}
	f := pbr.BaseColorFactorOrDefault()
	return scene.Color{R: clamp01(f[0]), G: clamp01(f[1]), B: clamp01(f[2])}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
