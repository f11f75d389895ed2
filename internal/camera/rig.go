// Package camera sets up the room's perspective camera and orbit limits.
package camera

import (
	"math"

	"github.com/philipparndt/goroom/pkg/geometry"
	"github.com/philipparndt/goroom/pkg/orbit"
	"github.com/philipparndt/goroom/pkg/scene"
)

const (
	FOV  = 45.0
	Near = 0.1
	Far  = 1000.0

	// NarrowWidth is the viewport width below which the camera starts
	// further out
	NarrowWidth = 800

	DampingFactor = 0.05
	MinDistance   = 10.0
	MaxDistance   = 30.0
)

var (
	DefaultPosition = geometry.NewVector3(14.7, 8.2, 6.1)
	NarrowPosition  = geometry.NewVector3(25, 8, 15)
	Target          = geometry.NewVector3(-1, 3, -1.5)
)

// Rig couples the camera, its orbit controls and the viewport size
type Rig struct {
	Camera   *scene.PerspectiveCamera
	Controls *orbit.Controls

	Width  int
	Height int
}

// NewRig builds the camera for a viewport of the given size. The starting
// pose depends on the width only here; later resizes keep the pose.
func NewRig(width, height int) *Rig {
	cam := scene.NewPerspectiveCamera(FOV, aspect(width, height), Near, Far)
	cam.Position = DefaultPosition
	if width < NarrowWidth {
		cam.Position = NarrowPosition
	}

	controls := orbit.New(cam)
	controls.Target = Target
	controls.EnablePan = false
	controls.EnableDamping = true
	controls.DampingFactor = DampingFactor
	controls.MinPolarAngle = math.Pi / 4
	controls.MaxPolarAngle = math.Pi / 2
	controls.MinAzimuthAngle = 0
	controls.MaxAzimuthAngle = math.Pi / 2
	controls.MinDistance = MinDistance
	controls.MaxDistance = MaxDistance
	cam.LookAt(Target)

	return &Rig{Camera: cam, Controls: controls, Width: width, Height: height}
}

// Resize records a new viewport size and updates the projection. It
// reports whether anything changed.
func (r *Rig) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if width == r.Width && height == r.Height {
		return false
	}
	r.Width, r.Height = width, height
	r.Camera.SetAspect(aspect(width, height))
	return true
}

// Update advances the orbit controls by one frame
func (r *Rig) Update() bool {
	return r.Controls.Update()
}

func aspect(width, height int) float64 {
	if height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}
