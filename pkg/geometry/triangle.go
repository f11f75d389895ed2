package geometry

import "math"

// Triangle represents a single facet with its face normal
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the face normal from the winding order
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Length() / 2
}

// Intersect tests the ray against the triangle from both sides
// (Möller–Trumbore). It returns the ray parameter of the hit.
func (t Triangle) Intersect(ray Ray) (float64, bool) {
	const epsilon = 1e-12

	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	p := ray.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	invDet := 1.0 / det

	s := ray.Origin.Sub(t.V1)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(q) * invDet
	if dist < 0 {
		return 0, false
	}
	return dist, true
}
