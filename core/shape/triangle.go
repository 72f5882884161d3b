// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package shape

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/r3"
)

func init() { sceneio.Register(Triangle{}) }

// epsTriangle guards the Moeller-Trumbore parallel-ray and barycentric
// tests against floating-point noise.
const epsTriangle = 1e-9

// Triangle is a triangle defined by three vertices given in
// counter-clockwise order when viewed from the front face, so that
// (P1-P0) cross (P2-P0) points along the outward normal.
type Triangle struct {
	P0, P1, P2 r3.Point
}

var _ Shape = Triangle{}

func (tri Triangle) Validate() error {
	if tri.P0 == tri.P1 || tri.P0 == tri.P2 || tri.P1 == tri.P2 {
		return fmt.Errorf("invalid Triangle: two or more vertices are identical")
	}
	edge1 := tri.P1.Sub(tri.P0)
	edge2 := tri.P2.Sub(tri.P0)
	cross := edge1.Cross(edge2)
	if 0.5*cross.Length() < 1e-12 {
		return fmt.Errorf("invalid Triangle: degenerate (zero or near-zero area)")
	}
	return nil
}

func (tri Triangle) AABB() AABB {
	min := r3.Point{
		X: math.Min(tri.P0.X, math.Min(tri.P1.X, tri.P2.X)),
		Y: math.Min(tri.P0.Y, math.Min(tri.P1.Y, tri.P2.Y)),
		Z: math.Min(tri.P0.Z, math.Min(tri.P1.Z, tri.P2.Z)),
	}
	max := r3.Point{
		X: math.Max(tri.P0.X, math.Max(tri.P1.X, tri.P2.X)),
		Y: math.Max(tri.P0.Y, math.Max(tri.P1.Y, tri.P2.Y)),
		Z: math.Max(tri.P0.Z, math.Max(tri.P1.Z, tri.P2.Z)),
	}
	return AABB{Min: min, Max: max}
}

func (tri Triangle) Area() float64 {
	edge1 := tri.P1.Sub(tri.P0)
	edge2 := tri.P2.Sub(tri.P0)
	return 0.5 * edge1.Cross(edge2).Length()
}

// Intersect implements the Moeller-Trumbore ray-triangle intersection
// test.
func (tri Triangle) Intersect(r Ray, tMin, tMax float64) (Interaction, bool) {
	edge1 := tri.P1.Sub(tri.P0)
	edge2 := tri.P2.Sub(tri.P0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsTriangle && a < epsTriangle {
		return Interaction{}, false
	}
	f := 1 / a
	s := r.Origin.Sub(tri.P0)
	u := f * s.Dot(h)
	if u < -epsTriangle || u > 1.0+epsTriangle {
		return Interaction{}, false
	}
	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < -epsTriangle || u+v > 1.0+epsTriangle {
		return Interaction{}, false
	}
	t := f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return Interaction{}, false
	}

	at := r.At(t)
	normal := edge1.Cross(edge2).Unit()
	ss, ts := geometry.CoordinateSystem(normal)

	return Interaction{
		T:              t,
		Point:          at,
		GeometryNormal: normal,
		ShadingNormal:  normal,
		Ss:             ss,
		Ts:             ts,
		Wo:             r.Direction.Muls(-1),
		UV:             r3.Point2{X: u, Y: v},
	}, true
}

// SamplePoint draws a point uniformly over the triangle's area using the
// standard square-root barycentric parameterization.
func (tri Triangle) SamplePoint(u [2]float64) (r3.Point, r3.Vec) {
	su0 := math.Sqrt(u[0])
	b0 := 1 - su0
	b1 := u[1] * su0
	p := r3.Point{
		X: b0*tri.P0.X + b1*tri.P1.X + (1-b0-b1)*tri.P2.X,
		Y: b0*tri.P0.Y + b1*tri.P1.Y + (1-b0-b1)*tri.P2.Y,
		Z: b0*tri.P0.Z + b1*tri.P1.Z + (1-b0-b1)*tri.P2.Z,
	}
	normal := tri.P1.Sub(tri.P0).Cross(tri.P2.Sub(tri.P0)).Unit()
	return p, normal
}

func (tri Triangle) Pdf(interactionPoint r3.Point, wi r3.Vec) float64 {
	return SolidAnglePdf(tri, interactionPoint, wi)
}
