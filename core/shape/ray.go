// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package shape implements the Shape capability used by the integrator:
// ray intersection, uniform point sampling (for area lights), the
// solid-angle pdf of a sampled direction, surface area, and bounding
// boxes. Triangle, sphere, plane, and rectangle share one interface so
// the integrator and accelerator are agnostic to which primitive a ray
// hits.
package shape

import "github.com/scottlawson/pathtracer/r3"

// Ray is a half-line with a unit direction. Tracing code treats tMin as
// an implicit epsilon and tMax as +Inf unless an accelerator query
// bounds it explicitly.
type Ray struct {
	Origin    r3.Point
	Direction r3.Vec
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) r3.Point {
	return r.Origin.Add(r.Direction.Muls(t))
}

// Epsilon is the default minimum hit distance used to avoid
// self-intersection ("shadow acne") at a ray's origin.
const Epsilon = 1e-6
