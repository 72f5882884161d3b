// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package camera

import (
	"fmt"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/r3"
)

// PinholeCamera is a basic perspective camera model, extended from the
// teacher's zero-aperture-only version with optional thin-lens depth of
// field: when Aperture > 0, GenerateRay samples a point on a disk of
// that radius and refocuses the ray through the point on the focal
// plane the pinhole ray would have hit, following the standard
// thin-lens approximation.
type PinholeCamera struct {
	LowerLeftCorner r3.Point
	Origin          r3.Point
	Horizontal      r3.Vec
	Vertical        r3.Vec

	Aperture      float64
	FocalDistance float64
}

var _ Camera = PinholeCamera{}

func (c PinholeCamera) Validate() error {
	if c.LowerLeftCorner.IsNaN() || c.Origin.IsNaN() {
		return fmt.Errorf("PinholeCamera has NaN values: %+v", c)
	}
	if c.LowerLeftCorner.IsInf() || c.Origin.IsInf() {
		return fmt.Errorf("PinholeCamera has Inf values: %+v", c)
	}
	if c.Horizontal.IsZero() {
		return fmt.Errorf("PinholeCamera Horizontal vector is zero: %+v", c)
	}
	if c.Vertical.IsZero() {
		return fmt.Errorf("PinholeCamera Vertical vector is zero: %+v", c)
	}
	if c.Horizontal.Cross(c.Vertical).IsZero() {
		return fmt.Errorf("PinholeCamera Horizontal and Vertical vectors are colinear: Horizontal=%v, Vertical=%v", c.Horizontal, c.Vertical)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("PinholeCamera Aperture must be non-negative, got %v", c.Aperture)
	}
	if c.Aperture > 0 && c.FocalDistance <= 0 {
		return fmt.Errorf("PinholeCamera FocalDistance must be positive when Aperture > 0, got %v", c.FocalDistance)
	}
	return nil
}

// GenerateRay casts a ray from the camera origin through the image
// plane at s.PFilm. When Aperture is zero this is a plain pinhole
// projection; otherwise the ray origin is perturbed onto the lens disk
// and retargeted at the point on the focal plane the pinhole ray would
// have struck, producing depth-of-field blur away from that plane.
func (c PinholeCamera) GenerateRay(s Sample) shape.Ray {
	h := c.Horizontal.Muls(s.PFilm[0])
	v := c.Vertical.Muls(s.PFilm[1])
	imagePoint := c.LowerLeftCorner.Add(h).Add(v)
	direction := imagePoint.Sub(c.Origin).Unit()

	if c.Aperture <= 0 {
		return shape.Ray{Origin: c.Origin, Direction: direction}
	}

	lensSample := geometry.ConcentricSampleDisk(r3.Point2{X: s.PLens[0], Y: s.PLens[1]})
	lensU := c.Horizontal.Unit()
	lensV := c.Vertical.Unit()
	lensOffset := lensU.Muls(lensSample.X * c.Aperture).Add(lensV.Muls(lensSample.Y * c.Aperture))

	ft := c.FocalDistance / direction.Z
	if direction.Z == 0 {
		ft = c.FocalDistance
	}
	focusPoint := c.Origin.Add(direction.Muls(ft))

	newOrigin := c.Origin.Add(lensOffset)
	newDirection := focusPoint.Sub(newOrigin).Unit()
	return shape.Ray{Origin: newOrigin, Direction: newDirection}
}
