// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package shape

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/r3"
)

func init() { sceneio.Register(Plane{}) }

// Plane is an infinite planar surface passing through Point with unit
// normal Normal. It has no finite area, so it cannot be light-sampled by
// SamplePoint/Pdf in the usual area-measure sense; those methods exist
// only to satisfy Shape and are not meaningful light sources. Plane is
// intended as background/backdrop geometry struck by camera and
// indirect rays, not as an emitter.
type Plane struct {
	Point  r3.Point
	Normal r3.Vec
}

var _ Shape = Plane{}

func (p Plane) Validate() error {
	if p.Normal.IsZero() {
		return fmt.Errorf("invalid Plane Normal: %v (has it been set?)", p.Normal)
	}
	if math.Abs(p.Normal.Length()-1) > 1e-9 {
		return fmt.Errorf("invalid Plane Normal should be a unit vector, got: %v", p.Normal)
	}
	return nil
}

// AABB returns a bounding box that is unbounded in the two axes
// perpendicular to the plane's dominant normal component and tight along
// the normal direction, so it still composes into a finite accelerator
// bound when combined (via Union) with other scene geometry.
func (p Plane) AABB() AABB {
	const inf = 1e30
	n := p.Normal.Unit()
	min := r3.Point{X: -inf, Y: -inf, Z: -inf}
	max := r3.Point{X: inf, Y: inf, Z: inf}
	d := p.Point.Sub(r3.Point{}).Dot(n)
	switch {
	case math.Abs(n.X) > math.Abs(n.Y) && math.Abs(n.X) > math.Abs(n.Z):
		min.X, max.X = d-Epsilon, d+Epsilon
	case math.Abs(n.Y) > math.Abs(n.Z):
		min.Y, max.Y = d-Epsilon, d+Epsilon
	default:
		min.Z, max.Z = d-Epsilon, d+Epsilon
	}
	return AABB{Min: min, Max: max}
}

// Area returns +Inf: a plane has unbounded surface area.
func (p Plane) Area() float64 {
	return math.Inf(1)
}

// Intersect solves t = (p.Point - r.Origin).Normal / r.Direction.Normal.
func (p Plane) Intersect(r Ray, tMin, tMax float64) (Interaction, bool) {
	normal := p.Normal.Unit()
	denom := normal.Dot(r.Direction)
	if math.Abs(denom) < epsTriangle {
		return Interaction{}, false
	}
	t := p.Point.Sub(r.Origin).Dot(normal) / denom
	if t < tMin || t > tMax {
		return Interaction{}, false
	}

	at := r.At(t)
	ss, ts := geometry.CoordinateSystem(normal)

	return Interaction{
		T:              t,
		Point:          at,
		GeometryNormal: normal,
		ShadingNormal:  normal,
		Ss:             ss,
		Ts:             ts,
		Wo:             r.Direction.Muls(-1),
		UV:             r3.Point2{X: 0, Y: 0},
	}, true
}

// SamplePoint is not physically meaningful for an infinite plane; it
// returns the plane's reference point and normal unconditionally. Planes
// should not be registered as light sources.
func (p Plane) SamplePoint(u [2]float64) (r3.Point, r3.Vec) {
	return p.Point, p.Normal.Unit()
}

// Pdf always returns 0: an infinite plane has no finite-area sampling
// distribution, so it can never be selected as a direct-lighting source.
func (p Plane) Pdf(interactionPoint r3.Point, wi r3.Vec) float64 {
	return 0
}
