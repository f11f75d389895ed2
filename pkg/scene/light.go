package scene

import "github.com/philipparndt/goroom/pkg/geometry"

// Light is implemented by the light kinds a Scene can hold
type Light interface {
	isLight()
}

// AmbientLight lights every surface uniformly
type AmbientLight struct {
	Color     Color
	Intensity float64
}

func (*AmbientLight) isLight() {}

// OrthographicFrustum bounds the volume a directional shadow map covers
type OrthographicFrustum struct {
	Near, Far                float64
	Left, Right, Top, Bottom float64
}

// ShadowParams configures the shadow map of a directional light. The
// renderer bakes lighting into vertex colors and never reads these; they are
// kept for scene inspection.
type ShadowParams struct {
	Camera    OrthographicFrustum
	MapWidth  int
	MapHeight int
	Bias      float64
}

// DirectionalLight shines parallel rays from Position towards Target
type DirectionalLight struct {
	Color      Color
	Intensity  float64
	Position   geometry.Vector3
	Target     geometry.Vector3
	CastShadow bool
	Shadow     ShadowParams
}

func (*DirectionalLight) isLight() {}

// Direction returns the unit vector pointing from the surface towards the
// light
func (l *DirectionalLight) Direction() geometry.Vector3 {
	return l.Position.Sub(l.Target).Normalize()
}
