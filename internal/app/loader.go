package app

import (
	"context"
	"log"
	"time"

	"github.com/philipparndt/goroom/internal/registry"
	"github.com/philipparndt/goroom/pkg/loader"
	"github.com/philipparndt/goroom/pkg/scene"
)

// startLoad kicks off the one background load of the room asset
func (app *App) startLoad(ctx context.Context, path string) {
	log.Printf("loading %s", path)

	ctx, cancel := context.WithCancel(ctx)
	app.Load.cancel = cancel
	app.Load.startTime = time.Now()
	app.Load.pending = loader.LoadAsync(ctx, path, app.onSceneLoaded, app.onLoadError)
}

// applyLoadedScene delivers a finished load (must be called on main thread)
func (app *App) applyLoadedScene() {
	if app.Load.pending == nil || app.Load.pending.Done() {
		return
	}
	if app.Load.pending.Poll() {
		app.Load.cancel()
	}
}

func (app *App) onSceneLoaded(root *scene.Node, elapsed time.Duration) {
	if err := app.Scene.registry.Populate(root); err != nil {
		log.Printf("registry: %v", err)
		return
	}
	meshes := registry.PrepareShadows(root)

	app.Scene.scene.Add(root)
	app.Scene.rig.Setup(app.Scene.scene)
	app.uploadMeshes()
	app.UI.overlay.Loaded()

	log.Printf("scene loaded in %.2fs: %d meshes, %d interactive objects",
		elapsed.Seconds(), meshes, app.Scene.registry.Len())
}

// onLoadError leaves the loading panel up; there is no retry
func (app *App) onLoadError(err error) {
	app.Load.err = err
	log.Printf("failed to load scene: %v", err)
}
