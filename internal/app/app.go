// Package app runs the interactive room viewer window.
package app

import (
	"context"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goroom/internal/camera"
	"github.com/philipparndt/goroom/internal/config"
	"github.com/philipparndt/goroom/internal/interact"
	"github.com/philipparndt/goroom/internal/lighting"
	"github.com/philipparndt/goroom/internal/registry"
	"github.com/philipparndt/goroom/internal/ui"
	"github.com/philipparndt/goroom/pkg/scene"
	"github.com/philipparndt/goroom/pkg/tween"
)

const windowTitle = "Portfolio Room"

// Run opens the window and blocks until it is closed
func Run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var flags uint32 = rl.FlagWindowResizable
	if cfg.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), windowTitle)
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetClipPlanes(camera.Near, camera.Far)

	log.Printf("window %dx%d @ %d fps, asset %s", cfg.Width, cfg.Height, cfg.FPS, cfg.Asset)

	app := &App{
		Camera: camera.NewRig(rl.GetScreenWidth(), rl.GetScreenHeight()),
		Scene: SceneState{
			scene:    scene.New(),
			rig:      lighting.NewRig(),
			registry: registry.New(),
			player:   tween.NewPlayer(),
			material: rl.LoadMaterialDefault(), // Vertex colors carry the baked lighting
		},
		UI: UIState{
			font:    rl.GetFontDefault(),
			overlay: ui.NewOverlay(cfg.FPS),
		},
	}
	app.dispatcher = interact.NewDispatcher(
		app.Scene.registry,
		app.Camera.Camera,
		app.UI.overlay,
		browser{},
		app.Scene.player,
	)
	app.dispatcher.Surface = app.surface()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.startLoad(ctx, cfg.Asset)

	// Main loop, runs from the first frame whether or not the asset is in
	for !rl.WindowShouldClose() {
		// Apply loaded scene if ready (must be on main thread)
		app.applyLoadedScene()

		app.handleResize()
		app.handleInput()

		dt := rl.GetFrameTime()
		app.Scene.player.Update(dt)
		app.UI.overlay.Update()
		app.Camera.Update()

		rl.BeginDrawing()
		rl.ClearBackground(toColor(app.Scene.scene.Background))

		rl.BeginMode3D(app.raylibCamera())
		app.drawScene()
		rl.EndMode3D()

		app.drawUI()

		rl.EndDrawing()
	}

	// Cleanup
	app.unloadMeshes()
	rl.UnloadMaterial(app.Scene.material)
	rl.CloseWindow()
	return nil
}

// browser opens links in the system browser
type browser struct{}

func (browser) OpenURL(url string) {
	log.Printf("opening %s", url)
	rl.OpenURL(url)
}
