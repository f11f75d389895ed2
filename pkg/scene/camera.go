package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/goroom/pkg/geometry"
)

// PerspectiveCamera is a pinhole camera looking at a target point
type PerspectiveCamera struct {
	FOV    float64 // vertical field of view in degrees
	Aspect float64
	Near   float64
	Far    float64

	Position geometry.Vector3
	Up       geometry.Vector3

	target     geometry.Vector3
	projection mgl64.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     geometry.NewVector3(0, 1, 0),
		target: geometry.NewVector3(0, 0, -1),
	}
	c.UpdateProjectionMatrix()
	return c
}

// LookAt orients the camera towards a world point
func (c *PerspectiveCamera) LookAt(target geometry.Vector3) {
	c.target = target
}

// Target returns the point the camera looks at
func (c *PerspectiveCamera) Target() geometry.Vector3 {
	return c.target
}

// SetAspect changes the aspect ratio and refreshes the projection
func (c *PerspectiveCamera) SetAspect(aspect float64) {
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

// UpdateProjectionMatrix must be called after changing FOV, Aspect, Near or Far
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl64.Perspective(c.FOV*math.Pi/180, c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the cached projection
func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

// ViewMatrix returns the world-to-camera transform
func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Vec(), c.target.Vec(), c.Up.Vec())
}

// Project maps a world point to normalized device coordinates
func (c *PerspectiveCamera) Project(p geometry.Vector3) geometry.Vector3 {
	return p.TransformPoint(c.projection.Mul4(c.ViewMatrix()))
}

// Unproject maps normalized device coordinates back to a world point
func (c *PerspectiveCamera) Unproject(ndc geometry.Vector3) geometry.Vector3 {
	inv := c.projection.Mul4(c.ViewMatrix()).Inv()
	return ndc.TransformPoint(inv)
}
