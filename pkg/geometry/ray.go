package geometry

import "math"

// Ray is a half-line starting at Origin. Direction is expected to be unit
// length so that ray parameters are world distances.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray and normalizes its direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// BoundingBox is an axis aligned box
type BoundingBox struct {
	Min, Max Vector3
}

// NewBoundingBox returns an empty box that any Extend call will replace
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: NewVector3(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: NewVector3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// Extend grows the box to contain p
func (b *BoundingBox) Extend(p Vector3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// IsEmpty reports whether no point was ever added
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Center returns the middle of the box
func (b BoundingBox) Center() Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// IntersectRay runs the slab test and reports the entry distance
func (b BoundingBox) IntersectRay(ray Ray) (float64, bool) {
	if b.IsEmpty() {
		return 0, false
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / dir[axis]
		t1 := (lo[axis] - origin[axis]) * inv
		t2 := (hi[axis] - origin[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}
	return math.Max(tMin, 0), true
}
