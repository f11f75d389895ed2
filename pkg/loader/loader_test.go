package loader

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/goroom/pkg/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// roomDocument builds a tiny room: a Desk with a nested Mug, and a Chair
// whose mesh has two primitives.
func roomDocument() *gltf.Document {
	doc := gltf.NewDocument()

	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 1, 3, 2})

	doc.Meshes = []*gltf.Mesh{
		{
			Name: "Quad",
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(idx),
				Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
			}},
		},
		{
			Name: "ChairMesh",
			Primitives: []*gltf.Primitive{
				{Indices: gltf.Index(idx), Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos}},
				{Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos}},
			},
		},
	}

	doc.Nodes = []*gltf.Node{
		{Name: "Desk", Mesh: gltf.Index(0), Children: []int{1}, Translation: [3]float64{1, 2, 3}},
		{Name: "Mug", Mesh: gltf.Index(0), Rotation: [4]float64{0, math.Sin(math.Pi / 6), 0, math.Cos(math.Pi / 6)}},
		{Name: "Chair", Mesh: gltf.Index(1), Scale: [3]float64{2, 2, 2}},
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0, 2)
	return doc
}

func TestBuildHierarchy(t *testing.T) {
	root, err := Build(roomDocument())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	desk := root.Find("Desk")
	if desk == nil {
		t.Fatal("expected a Desk node")
	}
	if desk.Parent() != root {
		t.Errorf("Desk should hang off the scene root")
	}
	if desk.Position.X != 1 || desk.Position.Y != 2 || desk.Position.Z != 3 {
		t.Errorf("Desk translation not applied: %v", desk.Position)
	}

	mug := root.Find("Mug")
	if mug == nil || mug.Parent() != desk {
		t.Fatal("expected Mug to be a child of Desk")
	}
	if math.Abs(mug.Rotation.Y-math.Pi/3) > 1e-9 {
		t.Errorf("expected Mug rotation y = pi/3, got %v", mug.Rotation.Y)
	}
}

func TestBuildMeshNodesHangOffNamedNode(t *testing.T) {
	root, err := Build(roomDocument())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	desk := root.Find("Desk")
	var meshes []*scene.Node
	for _, c := range desk.Children() {
		if c.IsMesh() {
			meshes = append(meshes, c)
		}
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh child on Desk, got %d", len(meshes))
	}
	if meshes[0].Name != "Quad" {
		t.Errorf("expected mesh named Quad, got %q", meshes[0].Name)
	}
	if meshes[0].Mesh.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", meshes[0].Mesh.TriangleCount())
	}

	chair := root.Find("Chair")
	if chair == nil {
		t.Fatal("expected a Chair node")
	}
	if chair.Scale.X != 2 {
		t.Errorf("Chair scale not applied: %v", chair.Scale)
	}
	names := map[string]int{}
	for _, c := range chair.Children() {
		names[c.Name] = c.Mesh.TriangleCount()
	}
	if names["ChairMesh_0"] != 2 {
		t.Errorf("expected indexed primitive ChairMesh_0 with 2 triangles, got %v", names)
	}
	// The unindexed primitive reads its 4 vertices sequentially: one full triangle
	if names["ChairMesh_1"] != 1 {
		t.Errorf("expected unindexed primitive ChairMesh_1 with 1 triangle, got %v", names)
	}
}

func TestBuildNoScene(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Scenes = nil

	if _, err := Build(doc); !errors.Is(err, ErrNoScene) {
		t.Errorf("expected ErrNoScene, got %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("room.obj"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.glb")); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.glb")
	if err := gltf.SaveBinary(roomDocument(), path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	root, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if root.Find("Mug") == nil || root.Find("Chair") == nil {
		t.Error("expected Mug and Chair after loading from disk")
	}
}

func TestLoadAsyncDeliversOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.glb")
	if err := gltf.SaveBinary(roomDocument(), path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	var loaded *scene.Node
	calls := 0
	p := LoadAsync(context.Background(), path,
		func(root *scene.Node, _ time.Duration) {
			loaded = root
			calls++
		},
		func(err error) {
			t.Errorf("unexpected error: %v", err)
		})

	if !p.Wait() {
		t.Fatal("expected a delivered result")
	}
	if p.Poll() || p.Wait() {
		t.Error("result must be delivered only once")
	}
	if calls != 1 || loaded == nil {
		t.Errorf("expected exactly one onLoad call, got %d", calls)
	}
	if !p.Done() {
		t.Error("expected Done after delivery")
	}
}

func TestLoadAsyncReportsError(t *testing.T) {
	var got error
	p := LoadAsync(context.Background(), filepath.Join(t.TempDir(), "missing.glb"),
		func(*scene.Node, time.Duration) {
			t.Error("onLoad must not run for a failed load")
		},
		func(err error) {
			got = err
		})

	p.Wait()
	if got == nil {
		t.Error("expected onError to receive the failure")
	}
}

func TestLoadAsyncCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := LoadAsync(ctx, filepath.Join(t.TempDir(), "missing.glb"),
		func(*scene.Node, time.Duration) { t.Error("no callback expected") },
		func(error) { t.Error("no callback expected") })

	if p.Wait() {
		t.Error("cancelled load must not deliver")
	}
}
