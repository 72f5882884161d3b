// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package shape

import "github.com/scottlawson/pathtracer/r3"

// SolidAnglePdf implements the shared Shape.Pdf contract: it traces a ray
// from interactionPoint toward wi, and if it hits s, converts the area
// measure pdf (1/Area) to the solid-angle measure at interactionPoint:
// d^2 / (|n.(-wi)| * Area). It returns 0 if the ray misses, or if the hit
// is nearly edge-on to the shape's normal (|n.(-wi)| too small), which
// would otherwise blow the pdf up toward infinity.
func SolidAnglePdf(s Shape, interactionPoint r3.Point, wi r3.Vec) float64 {
	r := Ray{Origin: interactionPoint.Add(wi.Muls(Epsilon)), Direction: wi}
	hit, ok := s.Intersect(r, Epsilon, 1e30)
	if !ok {
		return 0
	}
	cosAtLight := hit.GeometryNormal.Dot(wi.Muls(-1))
	if cosAtLight <= 1e-7 {
		return 0
	}
	distSquared := hit.T * hit.T
	area := s.Area()
	if area <= 0 {
		return 0
	}
	return distSquared / (cosAtLight * area)
}
