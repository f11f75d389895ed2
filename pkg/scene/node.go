package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/goroom/pkg/geometry"
)

// Node is an element of the scene graph. Transforms are local to the parent;
// Rotation holds Euler angles in radians applied in XYZ order.
type Node struct {
	Name     string
	Position geometry.Vector3
	Rotation geometry.Vector3
	Scale    geometry.Vector3
	Visible  bool

	// Shadow flags are informational; lighting is baked without shadow maps.
	CastShadow    bool
	ReceiveShadow bool

	// Mesh is nil for group nodes
	Mesh *Mesh

	parent   *Node
	children []*Node
}

// NewNode creates an empty group node with identity transform
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   geometry.NewVector3(1, 1, 1),
		Visible: true,
	}
}

// NewMeshNode creates a node carrying renderable geometry
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

// Parent returns the node this one is attached to, or nil for a root
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the attached child nodes in insertion order
func (n *Node) Children() []*Node {
	return n.children
}

// IsMesh reports whether the node carries geometry
func (n *Node) IsMesh() bool {
	return n.Mesh != nil
}

// Add attaches children, detaching them from any previous parent first
func (n *Node) Add(children ...*Node) {
	for _, child := range children {
		if child == nil || child == n {
			continue
		}
		if child.parent != nil {
			child.parent.Remove(child)
		}
		child.parent = n
		n.children = append(n.children, child)
	}
}

// Remove detaches a direct child
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Traverse visits the node and all descendants depth-first, parents before
// children
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.Traverse(fn)
	}
}

// Find returns the first node in traversal order with the given name
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(node *Node) {
		if found == nil && node.Name == name {
			found = node
		}
	})
	return found
}

// IsDescendantOf reports whether ancestor appears on the parent chain
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// LocalMatrix composes translation, rotation and scale
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X, n.Position.Y, n.Position.Z)
	r := EulerMatrix(n.Rotation)
	s := mgl64.Scale3D(n.Scale.X, n.Scale.Y, n.Scale.Z)
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the transform from node space to world space
func (n *Node) WorldMatrix() mgl64.Mat4 {
	local := n.LocalMatrix()
	if n.parent == nil {
		return local
	}
	return n.parent.WorldMatrix().Mul4(local)
}

// WorldPosition returns the node origin in world space
func (n *Node) WorldPosition() geometry.Vector3 {
	return geometry.Vector3{}.TransformPoint(n.WorldMatrix())
}

// EulerMatrix builds the rotation matrix for XYZ-ordered Euler angles
func EulerMatrix(e geometry.Vector3) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(e.X).
		Mul4(mgl64.HomogRotate3DY(e.Y)).
		Mul4(mgl64.HomogRotate3DZ(e.Z))
}

// EulerFromMatrix extracts XYZ-ordered Euler angles from the rotation part
// of an unscaled matrix
func EulerFromMatrix(m mgl64.Mat4) geometry.Vector3 {
	m13 := m.At(0, 2)
	y := math.Asin(math.Max(-1, math.Min(1, m13)))

	var x, z float64
	if math.Abs(m13) < 0.9999999 {
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		x = math.Atan2(m.At(2, 1), m.At(1, 1))
		z = 0
	}
	return geometry.NewVector3(x, y, z)
}

// EulerFromQuat converts a rotation quaternion to XYZ-ordered Euler angles
func EulerFromQuat(q mgl64.Quat) geometry.Vector3 {
	return EulerFromMatrix(q.Normalize().Mat4())
}
