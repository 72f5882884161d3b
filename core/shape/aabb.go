// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package shape

import (
	"math"

	"github.com/scottlawson/pathtracer/r3"
)

// AABB is an axis-aligned bounding box. It is not itself a Shape, but
// describes the bounds of one, as used by the BVH builder.
type AABB struct {
	Min r3.Point
	Max r3.Point
}

func (b AABB) SurfaceArea() float64 {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z
	return 2 * (dx*dy + dy*dz + dz*dx)
}

func (b AABB) LongestAxis() int {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z
	switch {
	case dx > dy && dx > dz:
		return 0
	case dy > dz:
		return 1
	default:
		return 2
	}
}

func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: r3.Point{
			X: math.Min(b.Min.X, other.Min.X),
			Y: math.Min(b.Min.Y, other.Min.Y),
			Z: math.Min(b.Min.Z, other.Min.Z),
		},
		Max: r3.Point{
			X: math.Max(b.Max.X, other.Max.X),
			Y: math.Max(b.Max.Y, other.Max.Y),
			Z: math.Max(b.Max.Z, other.Max.Z),
		},
	}
}

func (b AABB) Center() r3.Point {
	return r3.Point{
		X: (b.Min.X + b.Max.X) * 0.5,
		Y: (b.Min.Y + b.Max.Y) * 0.5,
		Z: (b.Min.Z + b.Max.Z) * 0.5,
	}
}

// Hit reports whether ray r intersects the box within [tMin, tMax] using
// the standard per-axis slab test.
func (b AABB) Hit(r Ray, tMin, tMax float64) bool {
	get := func(p r3.Point, axis int) float64 {
		switch axis {
		case 0:
			return p.X
		case 1:
			return p.Y
		default:
			return p.Z
		}
	}
	getv := func(v r3.Vec, axis int) float64 {
		switch axis {
		case 0:
			return v.X
		case 1:
			return v.Y
		default:
			return v.Z
		}
	}
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / getv(r.Direction, axis)
		t0 := (get(b.Min, axis) - get(r.Origin, axis)) * invD
		t1 := (get(b.Max, axis) - get(r.Origin, axis)) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(t0, tMin)
		tMax = math.Min(t1, tMax)
		if tMax < tMin {
			return false
		}
	}
	return true
}
