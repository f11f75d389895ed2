package scene

import (
	"math"
	"sort"

	"github.com/philipparndt/goroom/pkg/geometry"
)

// Intersection describes a ray hit on a mesh node
type Intersection struct {
	Distance float64
	Point    geometry.Vector3
	Object   *Node
}

// Raycaster casts a ray into the scene graph
type Raycaster struct {
	Ray  geometry.Ray
	Near float64
	Far  float64
}

// NewRaycaster returns a raycaster accepting hits at any distance
func NewRaycaster() *Raycaster {
	return &Raycaster{Near: 0, Far: math.Inf(1)}
}

// SetFromCamera aims the ray from the camera through a point given in
// normalized device coordinates
func (r *Raycaster) SetFromCamera(ndcX, ndcY float64, camera *PerspectiveCamera) {
	origin := camera.Position
	through := camera.Unproject(geometry.NewVector3(ndcX, ndcY, 0.5))
	r.Ray = geometry.NewRay(origin, through.Sub(origin))
}

// IntersectObject tests a single node and, when recursive, its descendants
func (r *Raycaster) IntersectObject(node *Node, recursive bool) []Intersection {
	var hits []Intersection
	r.collect(node, recursive, &hits)
	sortIntersections(hits)
	return hits
}

// IntersectObjects tests each node in turn; hits are sorted nearest first
func (r *Raycaster) IntersectObjects(nodes []*Node, recursive bool) []Intersection {
	var hits []Intersection
	for _, node := range nodes {
		r.collect(node, recursive, &hits)
	}
	sortIntersections(hits)
	return hits
}

func (r *Raycaster) collect(node *Node, recursive bool, hits *[]Intersection) {
	if hit, ok := r.intersectMesh(node); ok {
		*hits = append(*hits, hit)
	}
	if !recursive {
		return
	}
	for _, child := range node.Children() {
		r.collect(child, true, hits)
	}
}

// intersectMesh works in the node's local space and reports the nearest
// triangle hit with world-space distance
func (r *Raycaster) intersectMesh(node *Node) (Intersection, bool) {
	if !node.IsMesh() || !node.Visible {
		return Intersection{}, false
	}

	world := node.WorldMatrix()
	inv := world.Inv()
	local := geometry.NewRay(
		r.Ray.Origin.TransformPoint(inv),
		r.Ray.Direction.TransformDirection(inv),
	)

	if _, ok := node.Mesh.Bounds().IntersectRay(local); !ok {
		return Intersection{}, false
	}

	best := Intersection{Distance: math.Inf(1)}
	found := false
	for _, tri := range node.Mesh.Triangles {
		t, ok := tri.Intersect(local)
		if !ok {
			continue
		}
		point := local.At(t).TransformPoint(world)
		dist := point.Distance(r.Ray.Origin)
		if dist < r.Near || dist > r.Far {
			continue
		}
		if dist < best.Distance {
			best = Intersection{Distance: dist, Point: point, Object: node}
			found = true
		}
	}
	return best, found
}

func sortIntersections(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
}
