package scene

// Scene is the root of everything that gets drawn
type Scene struct {
	Root       *Node
	Background Color

	lights []Light
}

// New returns an empty scene with a white background
func New() *Scene {
	return &Scene{
		Root:       NewNode("Scene"),
		Background: White,
	}
}

// Add attaches nodes under the scene root
func (s *Scene) Add(nodes ...*Node) {
	s.Root.Add(nodes...)
}

// AddLight appends a light to the scene's light list
func (s *Scene) AddLight(l Light) {
	s.lights = append(s.lights, l)
}

// Lights returns the lights in the order they were added
func (s *Scene) Lights() []Light {
	return s.lights
}

// MeshNodes returns every node carrying geometry
func (s *Scene) MeshNodes() []*Node {
	var nodes []*Node
	s.Root.Traverse(func(n *Node) {
		if n.IsMesh() {
			nodes = append(nodes, n)
		}
	})
	return nodes
}
