// Package registry keeps the set of scene nodes that react to pointer input
// and what each of them does when picked.
package registry

import (
	"errors"

	"github.com/philipparndt/goroom/pkg/scene"
)

const (
	GithubURL   = "https://github.com/Rowobin"
	TwitterXURL = "https://x.com/RobinsSecret"
)

// Names is the ordered allow-list of interactive node names
var Names = []string{
	"Portfolio",
	"Github",
	"TwitterX",
	"Backpack",
	"Book",
	"Cactus",
	"Can1",
	"Can2",
	"Can3",
	"Mat",
	"Mug",
	"Name",
	"Pokeball",
	"Rubix Cube",
	"Skateboard",
	"Chair",
}

// ErrAlreadyPopulated is returned by a second Populate call
var ErrAlreadyPopulated = errors.New("registry already populated")

// Behavior is what happens when an interactive node is picked
type Behavior interface {
	Kind() string
}

// ShowPanel toggles the portfolio popup
type ShowPanel struct{}

// OpenLink opens URL in the system browser
type OpenLink struct {
	URL string
}

// Spin turns the node a full revolution
type Spin struct{}

// Jump bounces the node
type Jump struct{}

func (ShowPanel) Kind() string { return "show-panel" }
func (OpenLink) Kind() string  { return "open-link" }
func (Spin) Kind() string      { return "spin" }
func (Jump) Kind() string      { return "jump" }

// IsAllowed reports whether name is on the allow-list
func IsAllowed(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// BehaviorFor maps an allowed name to its behavior. Unknown names get nil.
func BehaviorFor(name string) Behavior {
	switch name {
	case "Portfolio":
		return ShowPanel{}
	case "Github":
		return OpenLink{URL: GithubURL}
	case "TwitterX":
		return OpenLink{URL: TwitterXURL}
	case "Chair":
		return Spin{}
	}
	if IsAllowed(name) {
		return Jump{}
	}
	return nil
}

// Entry is a registered node with its resolved behavior
type Entry struct {
	Node     *scene.Node
	Behavior Behavior
}

// Registry is filled once after the scene loads and never changes afterwards
type Registry struct {
	entries   []Entry
	byNode    map[*scene.Node]Behavior
	populated bool
}

// New creates an empty registry
func New() *Registry {
	return &Registry{byNode: make(map[*scene.Node]Behavior)}
}

// Populate walks root and registers every node whose name is allowed. Mesh
// leaves are skipped: picking resolves from a hit mesh to its parent.
func (r *Registry) Populate(root *scene.Node) error {
	if r.populated {
		return ErrAlreadyPopulated
	}
	r.populated = true

	root.Traverse(func(n *scene.Node) {
		if n.IsMesh() {
			return
		}
		b := BehaviorFor(n.Name)
		if b == nil {
			return
		}
		r.entries = append(r.entries, Entry{Node: n, Behavior: b})
		r.byNode[n] = b
	})
	return nil
}

// Populated reports whether Populate has run
func (r *Registry) Populated() bool {
	return r.populated
}

// Entries returns registered nodes in traversal order
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Nodes returns the registered nodes in traversal order
func (r *Registry) Nodes() []*scene.Node {
	out := make([]*scene.Node, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Node
	}
	return out
}

// Len returns the number of registered nodes
func (r *Registry) Len() int {
	return len(r.entries)
}

// Lookup returns the behavior of a registered node
func (r *Registry) Lookup(n *scene.Node) (Behavior, bool) {
	b, ok := r.byNode[n]
	return b, ok
}

// Resolve finds the nearest registered node at or above n. A registered
// ancestor wins over an unregistered direct parent, so a mesh nested under
// an unlisted group still triggers its named object instead of a jump.
func (r *Registry) Resolve(n *scene.Node) (*scene.Node, Behavior, bool) {
	for cur := n; cur != nil; cur = cur.Parent() {
		if b, ok := r.byNode[cur]; ok {
			return cur, b, true
		}
	}
	return nil, nil, false
}

// PrepareShadows enables shadow casting and receiving on every mesh under root
func PrepareShadows(root *scene.Node) int {
	count := 0
	root.Traverse(func(n *scene.Node) {
		if n.IsMesh() {
			n.CastShadow = true
			n.ReceiveShadow = true
			count++
		}
	})
	return count
}
