// Package orbit implements a damped orbit camera controller with clamped
// polar angle, azimuth angle and distance.
package orbit

import (
	"math"

	"github.com/philipparndt/goroom/pkg/geometry"
	"github.com/philipparndt/goroom/pkg/scene"
)

const epsilon = 1e-6

// Spherical coordinates around the target. Phi is the polar angle from +Y,
// Theta the azimuth around +Y measured from +Z.
type Spherical struct {
	Radius float64
	Phi    float64
	Theta  float64
}

// SphericalFromOffset converts a target-relative offset
func SphericalFromOffset(v geometry.Vector3) Spherical {
	r := v.Length()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math.Atan2(v.X, v.Z),
		Phi:    math.Acos(math.Max(-1, math.Min(1, v.Y/r))),
	}
}

// Offset converts back to a target-relative vector
func (s Spherical) Offset() geometry.Vector3 {
	sinPhi := math.Sin(s.Phi) * s.Radius
	return geometry.NewVector3(
		sinPhi*math.Sin(s.Theta),
		math.Cos(s.Phi)*s.Radius,
		sinPhi*math.Cos(s.Theta),
	)
}

// Controls orbits a camera around Target
type Controls struct {
	Camera *scene.PerspectiveCamera
	Target geometry.Vector3

	EnablePan     bool
	EnableZoom    bool
	EnableRotate  bool
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64

	MinPolarAngle   float64
	MaxPolarAngle   float64
	MinAzimuthAngle float64
	MaxAzimuthAngle float64
	MinDistance     float64
	MaxDistance     float64

	delta     Spherical // pending rotation (Radius unused)
	scale     float64
	panOffset geometry.Vector3
}

// New returns controls with unbounded limits and damping off
func New(camera *scene.PerspectiveCamera) *Controls {
	return &Controls{
		Camera:          camera,
		EnablePan:       true,
		EnableZoom:      true,
		EnableRotate:    true,
		DampingFactor:   0.05,
		RotateSpeed:     1,
		ZoomSpeed:       1,
		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi,
		MinAzimuthAngle: math.Inf(-1),
		MaxAzimuthAngle: math.Inf(1),
		MinDistance:     0,
		MaxDistance:     math.Inf(1),
		scale:           1,
	}
}

// Rotate feeds a pointer drag of (dx, dy) pixels on a viewport of the given
// height. A full-height drag turns the camera by a full circle.
func (c *Controls) Rotate(dx, dy, viewportHeight float64) {
	if !c.EnableRotate || viewportHeight <= 0 {
		return
	}
	c.delta.Theta -= 2 * math.Pi * dx / viewportHeight * c.RotateSpeed
	c.delta.Phi -= 2 * math.Pi * dy / viewportHeight * c.RotateSpeed
}

// Dolly feeds wheel steps; positive steps move the camera closer
func (c *Controls) Dolly(steps float64) {
	if !c.EnableZoom || steps == 0 {
		return
	}
	c.scale *= math.Pow(c.zoomScale(), steps)
}

func (c *Controls) zoomScale() float64 {
	return math.Pow(0.95, c.ZoomSpeed)
}

// Pan moves the target within the view plane; ignored when panning is off
func (c *Controls) Pan(dx, dy, viewportHeight float64) {
	if !c.EnablePan || viewportHeight <= 0 {
		return
	}
	offset := c.Camera.Position.Sub(c.Target)
	targetDistance := offset.Length() * math.Tan(c.Camera.FOV/2*math.Pi/180)

	forward := c.Target.Sub(c.Camera.Position).Normalize()
	right := forward.Cross(c.Camera.Up).Normalize()
	up := right.Cross(forward).Normalize()

	c.panOffset = c.panOffset.
		Add(right.Mul(-2 * dx * targetDistance / viewportHeight)).
		Add(up.Mul(2 * dy * targetDistance / viewportHeight))
}

// Update applies pending input, damping and limits, then moves the camera.
// It must run once per frame when damping is enabled. It reports whether the
// camera moved.
func (c *Controls) Update() bool {
	previous := c.Camera.Position

	s := SphericalFromOffset(c.Camera.Position.Sub(c.Target))

	if c.EnableDamping {
		s.Theta += c.delta.Theta * c.DampingFactor
		s.Phi += c.delta.Phi * c.DampingFactor
	} else {
		s.Theta += c.delta.Theta
		s.Phi += c.delta.Phi
	}

	s.Theta = c.clampAzimuth(s.Theta)
	s.Phi = math.Max(c.MinPolarAngle, math.Min(c.MaxPolarAngle, s.Phi))
	s.Phi = math.Max(epsilon, math.Min(math.Pi-epsilon, s.Phi))
	s.Radius = math.Max(c.MinDistance, math.Min(c.MaxDistance, s.Radius*c.scale))

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	c.Camera.Position = c.Target.Add(s.Offset())
	c.Camera.LookAt(c.Target)

	if c.EnableDamping {
		c.delta.Theta *= 1 - c.DampingFactor
		c.delta.Phi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.delta = Spherical{}
		c.panOffset = geometry.Vector3{}
	}
	c.scale = 1

	return previous.Distance(c.Camera.Position) > epsilon
}

// clampAzimuth restricts theta to [MinAzimuthAngle, MaxAzimuthAngle],
// treating limits that wrap past ±π the way a full turn would
func (c *Controls) clampAzimuth(theta float64) float64 {
	lo, hi := c.MinAzimuthAngle, c.MaxAzimuthAngle
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return theta
	}

	const twoPi = 2 * math.Pi
	if lo < -math.Pi {
		lo += twoPi
	} else if lo > math.Pi {
		lo -= twoPi
	}
	if hi < -math.Pi {
		hi += twoPi
	} else if hi > math.Pi {
		hi -= twoPi
	}

	if lo <= hi {
		return math.Max(lo, math.Min(hi, theta))
	}
	if theta > (lo+hi)/2 {
		return math.Max(lo, theta)
	}
	return math.Min(hi, theta)
}

// Spherical returns the camera's current position relative to the target
func (c *Controls) Spherical() Spherical {
	return SphericalFromOffset(c.Camera.Position.Sub(c.Target))
}
