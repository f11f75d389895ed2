// Package lighting configures the room's fixed light sources and evaluates
// them for baked vertex colors.
package lighting

import (
	"math"

	"github.com/philipparndt/goroom/pkg/geometry"
	"github.com/philipparndt/goroom/pkg/scene"
)

// Rig holds the three lights of the room
type Rig struct {
	Ambient *scene.AmbientLight
	Sun     *scene.DirectionalLight
	Fill    *scene.DirectionalLight

	installed bool
}

// NewRig returns the room lighting, not yet attached to a scene
func NewRig() *Rig {
	return &Rig{
		Ambient: &scene.AmbientLight{
			Color:     scene.Hex(0xd0d0ff),
			Intensity: 0.3,
		},
		Sun: &scene.DirectionalLight{
			Color:      scene.Hex(0xffffeb),
			Intensity:  1.5,
			Position:   geometry.NewVector3(15, 25, 10),
			CastShadow: true,
			Shadow: scene.ShadowParams{
				Camera: scene.OrthographicFrustum{
					Near: 0.1, Far: 50,
					Left: -10, Right: 10, Top: 10, Bottom: -10,
				},
				MapWidth:  2048,
				MapHeight: 2048,
				Bias:      -0.001,
			},
		},
		Fill: &scene.DirectionalLight{
			Color:     scene.Hex(0xddefff),
			Intensity: 0.5,
			Position:  geometry.NewVector3(-8, 12, 0),
		},
	}
}

// Setup adds the lights to s. Only the first call has an effect.
func (r *Rig) Setup(s *scene.Scene) bool {
	if r.installed {
		return false
	}
	r.installed = true
	s.AddLight(r.Ambient)
	s.AddLight(r.Sun)
	s.AddLight(r.Fill)
	return true
}

// Shade returns base lit by lights at a surface with the given world normal.
// Directional lights contribute Lambert diffuse; surfaces facing away only
// get ambient.
func Shade(lights []scene.Light, normal geometry.Vector3, base scene.Color) scene.Color {
	n := normal.Normalize()
	var total scene.Color

	for _, l := range lights {
		switch l := l.(type) {
		case *scene.AmbientLight:
			total = total.Add(l.Color.Scale(l.Intensity))
		case *scene.DirectionalLight:
			diffuse := math.Max(0, n.Dot(l.Direction()))
			total = total.Add(l.Color.Scale(l.Intensity * diffuse))
		}
	}
	return base.Modulate(total)
}

// Exposure brightens lit colors before tone mapping
const Exposure = 1.2

// ToneMap compresses a linear color into [0, 1] with the ACES filmic curve
// fit by Krzysztof Narkowicz
func ToneMap(c scene.Color, exposure float64) scene.Color {
	return scene.Color{
		R: aces(c.R * exposure),
		G: aces(c.G * exposure),
		B: aces(c.B * exposure),
	}
}

func aces(x float64) float64 {
	if x <= 0 {
		return 0
	}
	v := x * (2.51*x + 0.03) / (x*(2.43*x+0.59) + 0.14)
	return math.Min(1, v)
}
