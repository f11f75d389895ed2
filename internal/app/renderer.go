package app

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/goroom/internal/lighting"
	"github.com/philipparndt/goroom/pkg/scene"
)

// uploadMeshes converts every mesh node in the scene to a GPU mesh with the
// scene lights baked into its vertex colors
func (app *App) uploadMeshes() {
	lights := app.Scene.scene.Lights()
	for _, node := range app.Scene.scene.MeshNodes() {
		if node.Mesh.TriangleCount() == 0 {
			continue
		}
		app.Scene.meshes = append(app.Scene.meshes, gpuMesh{
			node: node,
			mesh: toRaylibMesh(node, lights),
		})
	}
}

func (app *App) unloadMeshes() {
	for i := range app.Scene.meshes {
		rl.UnloadMesh(&app.Scene.meshes[i].mesh)
	}
	app.Scene.meshes = nil
}

// drawScene draws each mesh at its node's current world transform, so
// animated nodes move without re-uploading geometry
func (app *App) drawScene() {
	for _, m := range app.Scene.meshes {
		if !visible(m.node) {
			continue
		}
		rl.DrawMesh(m.mesh, app.Scene.material, toMatrix(m.node.WorldMatrix()))
	}
}

// visible reports whether n and all its ancestors are shown
func visible(n *scene.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if !cur.Visible {
			return false
		}
	}
	return true
}

// toRaylibMesh converts a mesh node to a Raylib mesh with baked lighting.
// Normals are shaded in world space using the pose at load time.
func toRaylibMesh(node *scene.Node, lights []scene.Light) rl.Mesh {
	triangles := node.Mesh.Triangles
	triangleCount := len(triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	normalMatrix := node.WorldMatrix().Inv().Transpose()

	idx := 0
	for _, triangle := range triangles {
		normal := triangle.Normal
		worldNormal := normal.TransformDirection(normalMatrix)

		lit := lighting.Shade(lights, worldNormal, node.Mesh.Color)
		r, g, b := lighting.ToneMap(lit, lighting.Exposure).RGBA8()

		for _, v := range [3]struct{ x, y, z float64 }{
			{triangle.V1.X, triangle.V1.Y, triangle.V1.Z},
			{triangle.V2.X, triangle.V2.Y, triangle.V2.Z},
			{triangle.V3.X, triangle.V3.Y, triangle.V3.Z},
		} {
			vertices[idx*3+0] = float32(v.x)
			vertices[idx*3+1] = float32(v.y)
			vertices[idx*3+2] = float32(v.z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			colors[idx*4+0] = r
			colors[idx*4+1] = g
			colors[idx*4+2] = b
			colors[idx*4+3] = 255
			idx++
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}

// toMatrix converts a column-major mgl64 matrix to Raylib's layout, whose
// fields are also numbered column-major
func toMatrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}

func toColor(c scene.Color) color.RGBA {
	r, g, b := c.RGBA8()
	return rl.NewColor(r, g, b, 255)
}
