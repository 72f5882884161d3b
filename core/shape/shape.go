// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package shape

import "github.com/scottlawson/pathtracer/r3"

// Shape is the capability every geometric primitive implements. The
// integrator is agnostic to which concrete Shape it is dealing with.
type Shape interface {
	// Intersect finds the nearest hit along r with t in (tMin, tMax],
	// returning the populated Interaction and true on a hit.
	Intersect(r Ray, tMin, tMax float64) (Interaction, bool)
	// SamplePoint draws a point uniformly over the surface (area-measure
	// pdf = 1/Area) given a uniform 2D sample, and returns the surface
	// normal at that point.
	SamplePoint(u [2]float64) (point r3.Point, normal r3.Vec)
	// Pdf returns the solid-angle-measure pdf of sampling direction wi
	// from interactionPoint, found by tracing a ray toward the shape and
	// converting the area-measure sample to solid angle: d^2 /
	// (|n.(-wi)| * Area), or 0 if the ray misses the shape.
	Pdf(interactionPoint r3.Point, wi r3.Vec) float64
	// Area returns the surface area of the shape.
	Area() float64
	// AABB returns the shape's axis-aligned bounding box.
	AABB() AABB
	Validate() error
}
