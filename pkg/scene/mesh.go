package scene

import (
	"github.com/philipparndt/goroom/pkg/geometry"
)

// Color is a linear RGB triple in [0,1]
type Color struct {
	R, G, B float64
}

// Hex builds a color from a 0xRRGGBB literal
func Hex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
}

// White is the default material and background color
var White = Color{R: 1, G: 1, B: 1}

// Scale multiplies every channel
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Add sums two colors channel-wise
func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// Modulate multiplies two colors channel-wise
func (c Color) Modulate(other Color) Color {
	return Color{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B}
}

// RGBA8 clamps the color to bytes
func (c Color) RGBA8() (r, g, b uint8) {
	return toByte(c.R), toByte(c.G), toByte(c.B)
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Mesh holds triangle geometry in the owning node's local space
type Mesh struct {
	Triangles []geometry.Triangle
	Color     Color

	bounds *geometry.BoundingBox
}

// NewMesh creates a mesh, filling in missing face normals from the winding
func NewMesh(triangles []geometry.Triangle, color Color) *Mesh {
	for i := range triangles {
		if triangles[i].Normal == (geometry.Vector3{}) {
			triangles[i].Normal = triangles[i].CalculateNormal()
		}
	}
	return &Mesh{Triangles: triangles, Color: color}
}

// Bounds returns the local-space bounding box, computed once
func (m *Mesh) Bounds() geometry.BoundingBox {
	if m.bounds == nil {
		bbox := geometry.NewBoundingBox()
		for _, t := range m.Triangles {
			bbox.Extend(t.V1)
			bbox.Extend(t.V2)
			bbox.Extend(t.V3)
		}
		m.bounds = &bbox
	}
	return *m.bounds
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// NewBox builds an axis aligned box mesh centered at the origin
func NewBox(width, height, depth float64, color Color) *Mesh {
	x, y, z := width/2, height/2, depth/2
	v := [8]geometry.Vector3{
		geometry.NewVector3(-x, -y, -z), geometry.NewVector3(x, -y, -z),
		geometry.NewVector3(x, y, -z), geometry.NewVector3(-x, y, -z),
		geometry.NewVector3(-x, -y, z), geometry.NewVector3(x, -y, z),
		geometry.NewVector3(x, y, z), geometry.NewVector3(-x, y, z),
	}
	faces := [][4]int{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	triangles := make([]geometry.Triangle, 0, 12)
	for _, f := range faces {
		triangles = append(triangles,
			geometry.Triangle{V1: v[f[0]], V2: v[f[1]], V3: v[f[2]]},
			geometry.Triangle{V1: v[f[0]], V2: v[f[2]], V3: v[f[3]]},
		)
	}
	return NewMesh(triangles, color)
}
