package interact

import (
	"math"
	"testing"

	"github.com/philipparndt/goroom/internal/registry"
	"github.com/philipparndt/goroom/pkg/geometry"
	"github.com/philipparndt/goroom/pkg/scene"
)

type recorder struct {
	popup bool
	urls  []string
	jumps []string
	spins []string
}

func (r *recorder) TogglePopup()       { r.popup = !r.popup }
func (r *recorder) OpenURL(url string) { r.urls = append(r.urls, url) }
func (r *recorder) Jump(n *scene.Node) { r.jumps = append(r.jumps, n.Name) }
func (r *recorder) Spin(n *scene.Node) { r.spins = append(r.spins, n.Name) }
func (r *recorder) effects() int       { return len(r.urls) + len(r.jumps) + len(r.spins) }

// object builds a named group holding a unit box, like a loaded glTF node
func object(name string, x float64) *scene.Node {
	n := scene.NewNode(name)
	n.Position = geometry.NewVector3(x, 0, 0)
	n.Add(scene.NewMeshNode(name+"_mesh", scene.NewBox(1, 1, 1, scene.White)))
	return n
}

// setup places a single object at the origin in front of the camera
func setup(t *testing.T, names ...string) (*Dispatcher, *recorder, *scene.Node) {
	t.Helper()
	root := scene.NewNode("Scene")
	for i, name := range names {
		root.Add(object(name, float64(i)*3))
	}

	reg := registry.New()
	if err := reg.Populate(root); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	cam := scene.NewPerspectiveCamera(45, 1, 0.1, 1000)
	cam.Position = geometry.NewVector3(0, 0, 10)
	cam.LookAt(geometry.NewVector3(0, 0, 0))

	rec := &recorder{}
	d := NewDispatcher(reg, cam, rec, rec, rec)
	d.Surface = Rect{Width: 800, Height: 800}
	return d, rec, root
}

func center() PointerEvent {
	return PointerEvent{X: 400, Y: 400}
}

func TestNDC(t *testing.T) {
	rect := Rect{X: 100, Y: 50, Width: 800, Height: 600}
	tests := []struct {
		name   string
		cx, cy float64
		x, y   float64
	}{
		{"top left", 100, 50, -1, 1},
		{"bottom right", 900, 650, 1, -1},
		{"center", 500, 350, 0, 0},
		{"quarter", 300, 200, -0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := NDC(tt.cx, tt.cy, rect)
			if math.Abs(x-tt.x) > 1e-12 || math.Abs(y-tt.y) > 1e-12 {
				t.Errorf("NDC failed: expected (%v, %v), got (%v, %v)", tt.x, tt.y, x, y)
			}
		})
	}
}

func TestFirstTouchWins(t *testing.T) {
	ev := PointerEvent{X: 1, Y: 2, Touches: []Point{{X: 30, Y: 40}, {X: 50, Y: 60}}}
	if x, y := ev.Position(); x != 30 || y != 40 {
		t.Errorf("expected first touch (30, 40), got (%v, %v)", x, y)
	}
	if x, y := (PointerEvent{X: 1, Y: 2}).Position(); x != 1 || y != 2 {
		t.Errorf("expected mouse position (1, 2), got (%v, %v)", x, y)
	}
}

func TestMissHasNoEffect(t *testing.T) {
	d, rec, _ := setup(t, "Portfolio")

	res := d.PointerDown(PointerEvent{X: 5, Y: 5})
	if res.Hit {
		t.Errorf("expected a miss, got %q", res.Node.Name)
	}
	if rec.popup || rec.effects() != 0 {
		t.Errorf("miss must not change anything: %+v", rec)
	}
}

func TestUnregisteredObjectIsIgnored(t *testing.T) {
	d, rec, _ := setup(t, "Lamp")

	if d.Registry.Len() != 0 {
		t.Fatalf("Lamp must not be registered, got %d entries", d.Registry.Len())
	}
	if res := d.PointerDown(center()); res.Hit || rec.effects() != 0 || rec.popup {
		t.Errorf("unregistered object must not react: %+v", rec)
	}
}

func TestPortfolioTogglesPopup(t *testing.T) {
	d, rec, _ := setup(t, "Portfolio")

	d.PointerDown(center())
	if !rec.popup {
		t.Error("first press should open the popup")
	}
	d.PointerDown(center())
	if rec.popup {
		t.Error("second press should restore the original visibility")
	}
	if rec.effects() != 0 {
		t.Errorf("Portfolio must only toggle the popup: %+v", rec)
	}
}

func TestLinksOpenURLs(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"Github", "https://github.com/Rowobin"},
		{"TwitterX", "https://x.com/RobinsSecret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec, _ := setup(t, tt.name)
			d.PointerDown(center())

			if len(rec.urls) != 1 || rec.urls[0] != tt.url {
				t.Errorf("expected %s to open, got %v", tt.url, rec.urls)
			}
		})
	}
}

func TestChairSpins(t *testing.T) {
	d, rec, _ := setup(t, "Chair")
	res := d.PointerDown(center())

	if len(rec.spins) != 1 || rec.spins[0] != "Chair" {
		t.Errorf("expected a spin on Chair, got %v", rec.spins)
	}
	if len(rec.jumps) != 0 {
		t.Errorf("Chair must not jump, got %v", rec.jumps)
	}
	if math.Abs(res.Distance-9.5) > 1e-9 {
		t.Errorf("expected hit distance 9.5, got %v", res.Distance)
	}
}

func TestOtherObjectsJump(t *testing.T) {
	for _, name := range registry.Names {
		switch name {
		case "Portfolio", "Github", "TwitterX", "Chair":
			continue
		}
		t.Run(name, func(t *testing.T) {
			d, rec, _ := setup(t, name)
			d.PointerDown(center())

			if len(rec.jumps) != 1 || rec.jumps[0] != name {
				t.Errorf("expected a jump on %s, got %v", name, rec.jumps)
			}
		})
	}
}

func TestNearestObjectWins(t *testing.T) {
	d, rec, root := setup(t, "Mug", "Book")

	// Put the Book between the camera and the Mug
	root.Find("Book").Position = geometry.NewVector3(0, 0, 3)

	d.PointerDown(center())
	if len(rec.jumps) != 1 || rec.jumps[0] != "Book" {
		t.Errorf("expected the nearer Book to jump, got %v", rec.jumps)
	}
}

func TestPickDoesNotDispatch(t *testing.T) {
	d, rec, _ := setup(t, "Github")

	res := d.Pick(center())
	if !res.Hit || res.Node.Name != "Github" {
		t.Fatalf("expected Github under the pointer, got %+v", res)
	}
	if _, ok := res.Behavior.(registry.OpenLink); !ok {
		t.Errorf("expected OpenLink, got %T", res.Behavior)
	}
	if rec.effects() != 0 {
		t.Errorf("Pick must not run behaviors: %+v", rec)
	}
}
