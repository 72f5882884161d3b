// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package shape

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/r3"
)

func init() { sceneio.Register(Sphere{}) }

// Sphere is a sphere with a center and radius.
//
// Zero value: not usable, since Radius is 0; callers must set a positive
// Radius.
//
// Concurrency: Sphere is immutable after construction. Concurrent calls
// to Intersect and AABB are safe.
type Sphere struct {
	Center r3.Point
	Radius float64
}

var _ Shape = Sphere{}

func (s Sphere) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("invalid Sphere radius: %v (has it been set?)", s.Radius)
	}
	return nil
}

func (s Sphere) AABB() AABB {
	r := s.Radius
	return AABB{
		Min: r3.Point{X: s.Center.X - r, Y: s.Center.Y - r, Z: s.Center.Z - r},
		Max: r3.Point{X: s.Center.X + r, Y: s.Center.Y + r, Z: s.Center.Z + r},
	}
}

func (s Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Intersect finds the nearest root of the quadratic |o + t*d - c|^2 = R^2,
// preferring the near root and falling back to the far root when the
// ray origin is inside the sphere.
func (s Sphere) Intersect(r Ray, tMin, tMax float64) (Interaction, bool) {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	discriminant := b*b - a*c
	if discriminant < 0 {
		return Interaction{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	t := (-b - sqrtD) / a
	if t < tMin || t > tMax {
		t = (-b + sqrtD) / a
		if t < tMin || t > tMax {
			return Interaction{}, false
		}
	}

	at := r.At(t)
	normal := at.Sub(s.Center).Unit()
	uv := equirectUV(normal)
	ss, ts := geometry.CoordinateSystem(normal)

	return Interaction{
		T:              t,
		Point:          at,
		GeometryNormal: normal,
		ShadingNormal:  normal,
		Ss:             ss,
		Ts:             ts,
		Wo:             r.Direction.Muls(-1),
		UV:             uv,
	}, true
}

// SamplePoint draws a point uniformly over the sphere's surface area by
// uniform-sphere sampling of the normal direction.
func (s Sphere) SamplePoint(u [2]float64) (r3.Point, r3.Vec) {
	z := 1 - 2*u[0]
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u[1]
	n := r3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
	return s.Center.Add(n.Muls(s.Radius)), n
}

func (s Sphere) Pdf(interactionPoint r3.Point, wi r3.Vec) float64 {
	return SolidAnglePdf(s, interactionPoint, wi)
}

// equirectUV returns a longitude/latitude UV for a unit direction n, with
// +Y as the north pole.
func equirectUV(n r3.Vec) r3.Point2 {
	phi := math.Atan2(n.Z, n.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	u := phi / (2 * math.Pi)
	theta := math.Acos(clamp(n.Y, -1, 1))
	v := 1 - theta/math.Pi
	return r3.Point2{X: u, Y: v}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
