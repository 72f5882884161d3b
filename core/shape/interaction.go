// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package shape

import (
	"github.com/scottlawson/pathtracer/r3"
)

// Interaction is the result of a ray intersecting a Shape. It carries a
// right-handed orthonormal shading frame (Ss, Ts, ShadingNormal) in
// addition to the geometric normal, so BSDF construction never needs to
// rebuild a tangent frame from scratch.
//
// Invariant: ShadingNormal = Ss cross Ts (normalized); GeometryNormal is
// flipped, if necessary, to lie in the same hemisphere as ShadingNormal.
type Interaction struct {
	T              float64
	Point          r3.Point
	GeometryNormal r3.Vec
	ShadingNormal  r3.Vec
	Ss, Ts         r3.Vec
	Wo             r3.Vec
	UV             r3.Point2
}
