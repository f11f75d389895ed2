package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/goroom/internal/interact"
)

// handleInput processes user input
func (app *App) handleInput() {
	height := float64(app.Camera.Height)

	// Touch: the first touch is the pick point and drives rotation. Some
	// platforms report the mouse as a touch too, so a press is only handled
	// once per frame.
	touches := rl.GetTouchPointCount()
	pressHandled := false
	if touches > 0 {
		pos := rl.GetTouchPosition(0)
		if !app.Interaction.touchActive {
			app.Interaction.touchActive = true
			pressHandled = true
			if !app.handlePanelClick(pos) {
				app.pointerDown(interact.PointerEvent{
					X:       float64(pos.X),
					Y:       float64(pos.Y),
					Touches: touchPoints(touches),
				})
			}
		} else {
			dx := pos.X - app.Interaction.lastTouch.X
			dy := pos.Y - app.Interaction.lastTouch.Y
			app.Camera.Controls.Rotate(float64(dx), float64(dy), height)
		}
		app.Interaction.lastTouch = pos
	} else {
		app.Interaction.touchActive = false
	}

	if !pressHandled && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		if !app.handlePanelClick(mouse) {
			app.Interaction.dragging = true
			app.pointerDown(interact.PointerEvent{X: float64(mouse.X), Y: float64(mouse.Y)})
		}
	}
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		app.Interaction.dragging = false
	}

	// Drag to orbit; touch drags were applied above
	if app.Interaction.dragging && !app.Interaction.touchActive {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Camera.Controls.Rotate(float64(delta.X), float64(delta.Y), height)
		}
	}

	// Wheel zoom, one notch per step
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.Camera.Controls.Dolly(float64(wheel))
	}
}

// pointerDown picks against the registry once it is populated
func (app *App) pointerDown(ev interact.PointerEvent) {
	if !app.Scene.registry.Populated() {
		return
	}
	app.dispatcher.PointerDown(ev)
}

func touchPoints(count int32) []interact.Point {
	points := make([]interact.Point, 0, count)
	for i := int32(0); i < count; i++ {
		p := rl.GetTouchPosition(i)
		points = append(points, interact.Point{X: float64(p.X), Y: float64(p.Y)})
	}
	return points
}
