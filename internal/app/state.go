package app

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goroom/internal/camera"
	"github.com/philipparndt/goroom/internal/interact"
	"github.com/philipparndt/goroom/internal/lighting"
	"github.com/philipparndt/goroom/internal/registry"
	"github.com/philipparndt/goroom/internal/ui"
	"github.com/philipparndt/goroom/pkg/loader"
	"github.com/philipparndt/goroom/pkg/scene"
	"github.com/philipparndt/goroom/pkg/tween"
)

// SceneState holds the scene graph and everything derived from it
type SceneState struct {
	scene    *scene.Scene
	rig      *lighting.Rig
	registry *registry.Registry
	player   *tween.Player
	meshes   []gpuMesh // uploaded geometry, one per mesh node
	material rl.Material
}

// gpuMesh pairs an uploaded raylib mesh with the node that positions it
type gpuMesh struct {
	node *scene.Node
	mesh rl.Mesh
}

// InteractionState holds mouse and touch state
type InteractionState struct {
	dragging    bool // left button held after a press on the scene
	touchActive bool // a touch was down last frame
	lastTouch   rl.Vector2
}

// LoadState tracks the single background asset load
type LoadState struct {
	pending   *loader.Pending
	cancel    context.CancelFunc
	startTime time.Time
	err       error // set when the load failed; the loading panel stays up
}

// UIState holds overlay state
type UIState struct {
	font    rl.Font
	overlay *ui.Overlay
}

// App is the viewer context: created once at startup, torn down when the
// window closes
type App struct {
	Camera      *camera.Rig
	Scene       SceneState
	Interaction InteractionState
	Load        LoadState
	UI          UIState

	dispatcher *interact.Dispatcher
}
