// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package bxdf

import (
	"math"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/r3"
)

// Lambertian is a perfectly diffuse reflection lobe: f = albedo/pi,
// independent of direction.
type Lambertian struct {
	Albedo r3.Vec
}

func (l Lambertian) Flags() Type { return Reflection | Diffuse }

func (l Lambertian) F(wo, wi r3.Vec) r3.Vec {
	return l.Albedo.Muls(1 / math.Pi)
}

func (l Lambertian) Pdf(wo, wi r3.Vec) float64 {
	if !geometry.SameHemisphere(wo, wi) {
		return 0
	}
	return geometry.CosineHemispherePdf(geometry.CosTheta(wi))
}

func (l Lambertian) SampleF(wo r3.Vec, u r3.Point2) (r3.Vec, float64, r3.Vec) {
	wi := geometry.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return wi, l.Pdf(wo, wi), l.F(wo, wi)
}
