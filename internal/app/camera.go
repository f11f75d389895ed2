package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goroom/internal/interact"
	"github.com/philipparndt/goroom/pkg/geometry"
)

// raylibCamera mirrors the scene camera for BeginMode3D
func (app *App) raylibCamera() rl.Camera3D {
	cam := app.Camera.Camera
	return rl.Camera3D{
		Position:   toVector3(cam.Position),
		Target:     toVector3(cam.Target()),
		Up:         toVector3(cam.Up),
		Fovy:       float32(cam.FOV),
		Projection: rl.CameraPerspective,
	}
}

// handleResize keeps the camera aspect and pick surface in step with the
// window. The camera pose is only chosen at startup.
func (app *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	if app.Camera.Resize(rl.GetScreenWidth(), rl.GetScreenHeight()) {
		app.dispatcher.Surface = app.surface()
	}
}

// surface is the pick area in the same units as mouse positions
func (app *App) surface() interact.Rect {
	return interact.Rect{
		Width:  float64(app.Camera.Width),
		Height: float64(app.Camera.Height),
	}
}

func toVector3(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
