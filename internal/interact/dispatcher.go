// Package interact turns pointer presses on the room into behaviors of the
// picked object.
package interact

import (
	"log"

	"github.com/philipparndt/goroom/internal/registry"
	"github.com/philipparndt/goroom/pkg/scene"
)

// Rect is the drawing surface in window coordinates
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NDC maps a window coordinate inside rect to normalized device coordinates:
// x to the right, y up, both in [-1, 1]
func NDC(clientX, clientY float64, rect Rect) (x, y float64) {
	x = (clientX-rect.X)/rect.Width*2 - 1
	y = -(clientY-rect.Y)/rect.Height*2 + 1
	return x, y
}

// Point is a window coordinate
type Point struct {
	X, Y float64
}

// PointerEvent is a mouse press or a touch start. When touches are present
// the first one wins over the mouse position.
type PointerEvent struct {
	X, Y    float64
	Touches []Point
}

// Position returns the coordinate the event should be picked at
func (e PointerEvent) Position() (float64, float64) {
	if len(e.Touches) > 0 {
		return e.Touches[0].X, e.Touches[0].Y
	}
	return e.X, e.Y
}

// Panels toggles the portfolio popup
type Panels interface {
	TogglePopup()
}

// Links opens external URLs
type Links interface {
	OpenURL(url string)
}

// Animator starts canned animations on a node
type Animator interface {
	Jump(n *scene.Node)
	Spin(n *scene.Node)
}

// Result describes what a pointer press did
type Result struct {
	Hit      bool
	Node     *scene.Node
	Behavior registry.Behavior
	Distance float64
}

// Dispatcher picks registered nodes under the pointer and runs their behavior
type Dispatcher struct {
	Registry *registry.Registry
	Camera   *scene.PerspectiveCamera
	Surface  Rect

	Panels   Panels
	Links    Links
	Animator Animator

	raycaster *scene.Raycaster
}

// NewDispatcher wires a dispatcher to its collaborators
func NewDispatcher(reg *registry.Registry, cam *scene.PerspectiveCamera, panels Panels, links Links, animator Animator) *Dispatcher {
	return &Dispatcher{
		Registry:  reg,
		Camera:    cam,
		Panels:    panels,
		Links:     links,
		Animator:  animator,
		raycaster: scene.NewRaycaster(),
	}
}

// Pick casts a ray through the event position and returns the nearest hit
// resolved to its interactive parent, without running any behavior
func (d *Dispatcher) Pick(ev PointerEvent) Result {
	if d.Surface.Width <= 0 || d.Surface.Height <= 0 {
		return Result{}
	}

	px, py := ev.Position()
	x, y := NDC(px, py, d.Surface)
	d.raycaster.SetFromCamera(x, y, d.Camera)

	hits := d.raycaster.IntersectObjects(d.Registry.Nodes(), true)
	if len(hits) == 0 {
		return Result{}
	}

	// Hits land on mesh leaves; the object they belong to is the parent
	nearest := hits[0]
	node, behavior, ok := d.Registry.Resolve(nearest.Object.Parent())
	if !ok {
		return Result{}
	}
	return Result{Hit: true, Node: node, Behavior: behavior, Distance: nearest.Distance}
}

// PointerDown picks and dispatches in one go
func (d *Dispatcher) PointerDown(ev PointerEvent) Result {
	res := d.Pick(ev)
	if !res.Hit {
		return res
	}

	log.Printf("picked %q (%s)", res.Node.Name, res.Behavior.Kind())

	switch b := res.Behavior.(type) {
	case registry.ShowPanel:
		if d.Panels != nil {
			d.Panels.TogglePopup()
		}
	case registry.OpenLink:
		if d.Links != nil {
			d.Links.OpenURL(b.URL)
		}
	case registry.Spin:
		if d.Animator != nil {
			d.Animator.Spin(res.Node)
		}
	case registry.Jump:
		if d.Animator != nil {
			d.Animator.Jump(res.Node)
		}
	}
	return res
}
