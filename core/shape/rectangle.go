// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package shape

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/r3"
)

func init() { sceneio.Register(Rectangle{}) }

// Rectangle is a finite planar rectangle defined by a center point, a unit
// normal, and a width/height. Internally it decomposes into two
// triangles for intersection, area, and sampling — the same approach as
// the rest of the primitive set, so it reuses Triangle's Moeller-Trumbore
// test rather than a dedicated plane-clip test.
type Rectangle struct {
	Center        r3.Point
	Normal        r3.Vec
	Width, Height float64
}

var _ Shape = Rectangle{}

func (q Rectangle) Validate() error {
	if q.Width <= 0 {
		return fmt.Errorf("invalid Rectangle width: %v (has it been set?)", q.Width)
	}
	if q.Height <= 0 {
		return fmt.Errorf("invalid Rectangle height: %v (has it been set?)", q.Height)
	}
	if q.Normal.IsZero() {
		return fmt.Errorf("invalid Rectangle Normal: %v (has it been set?)", q.Normal)
	}
	if math.Abs(q.Normal.Length()-1) > 1e-9 {
		return fmt.Errorf("invalid Rectangle Normal should be a unit vector, got: %v", q.Normal)
	}
	return nil
}

// corners returns the four rectangle corners in consistent winding order
// and the two in-plane basis vectors (already scaled by half width/height).
func (q Rectangle) corners() (p0, p1, p2, p3 r3.Point) {
	normal := q.Normal.Unit()
	arbitrary := r3.Vec{X: 0, Y: 1, Z: 0}
	if math.Abs(normal.X) < 0.9 {
		arbitrary = r3.Vec{X: 1, Y: 0, Z: 0}
	}
	u := normal.Cross(arbitrary).Unit().Muls(q.Width / 2)
	v := normal.Cross(u.Unit()).Unit().Muls(q.Height / 2)

	p0 = q.Center.Subv(u).Subv(v)
	p1 = q.Center.Add(u).Subv(v)
	p2 = q.Center.Add(u).Add(v)
	p3 = q.Center.Subv(u).Add(v)
	return
}

func (q Rectangle) triangles() (Triangle, Triangle) {
	p0, p1, p2, p3 := q.corners()
	return Triangle{P0: p0, P1: p1, P2: p2}, Triangle{P0: p0, P1: p2, P2: p3}
}

func (q Rectangle) AABB() AABB {
	p0, p1, p2, p3 := q.corners()
	min := r3.Point{
		X: math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X)),
		Y: math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y)),
		Z: math.Min(math.Min(p0.Z, p1.Z), math.Min(p2.Z, p3.Z)),
	}
	max := r3.Point{
		X: math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X)),
		Y: math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y)),
		Z: math.Max(math.Max(p0.Z, p1.Z), math.Max(p2.Z, p3.Z)),
	}
	return AABB{Min: min, Max: max}
}

func (q Rectangle) Area() float64 {
	return q.Width * q.Height
}

func (q Rectangle) Intersect(r Ray, tMin, tMax float64) (Interaction, bool) {
	tri1, tri2 := q.triangles()
	i1, hit1 := tri1.Intersect(r, tMin, tMax)
	i2, hit2 := tri2.Intersect(r, tMin, tMax)

	switch {
	case hit1 && (!hit2 || i1.T < i2.T):
		return q.withRectangleUV(i1), true
	case hit2:
		return q.withRectangleUV(i2), true
	default:
		return Interaction{}, false
	}
}

// withRectangleUV remaps the triangle-local barycentric UV returned by the
// two-triangle decomposition into rectangle-local [0,1]^2 coordinates
// measured from corner p1, so the parameterization is continuous across
// the diagonal seam.
func (q Rectangle) withRectangleUV(hit Interaction) Interaction {
	p0, p1, _, p3 := q.corners()
	localU := p1.Sub(p0)
	localV := p3.Sub(p0)
	hitVec := hit.Point.Sub(p0)
	uCoord := clamp(hitVec.Dot(localU)/localU.Dot(localU), 0, 1)
	vCoord := clamp(hitVec.Dot(localV)/localV.Dot(localV), 0, 1)
	hit.UV = r3.Point2{X: uCoord, Y: vCoord}
	return hit
}

func (q Rectangle) SamplePoint(u [2]float64) (r3.Point, r3.Vec) {
	normal := q.Normal.Unit()
	arbitrary := r3.Vec{X: 0, Y: 1, Z: 0}
	if math.Abs(normal.X) < 0.9 {
		arbitrary = r3.Vec{X: 1, Y: 0, Z: 0}
	}
	uAxis := normal.Cross(arbitrary).Unit()
	vAxis := normal.Cross(uAxis).Unit()
	p := q.Center.
		Add(uAxis.Muls((u[0] - 0.5) * q.Width)).
		Add(vAxis.Muls((u[1] - 0.5) * q.Height))
	return p, normal
}

func (q Rectangle) Pdf(interactionPoint r3.Point, wi r3.Vec) float64 {
	return SolidAnglePdf(q, interactionPoint, wi)
}
