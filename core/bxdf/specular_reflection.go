// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package bxdf

import (
	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/r3"
)

// Fresnel evaluates a reflectance coefficient as a function of the cosine
// of the angle of incidence in the local shading frame. Dielectric
// surfaces use core/fresnel.Dielectric; mirrors use a constant-1
// implementation (NoOpFresnel).
type Fresnel interface {
	Evaluate(cosThetaI float64) float64
}

// NoOpFresnel always reports full reflectance, used by mirror materials
// that want an achromatic specular response independent of angle.
type NoOpFresnel struct{}

func (NoOpFresnel) Evaluate(float64) float64 { return 1 }

// SpecularReflection is a perfect-mirror reflection lobe: non-zero only
// at the single direction (-wo.x, -wo.y, wo.z).
type SpecularReflection struct {
	Reflectance r3.Vec
	Fresnel     Fresnel
}

func (s SpecularReflection) Flags() Type { return Reflection | Specular }

func (s SpecularReflection) F(wo, wi r3.Vec) r3.Vec { return r3.Vec{} }

// Pdf is 1 unconditionally: the delta lobe's probability mass is
// carried entirely by SampleF, and the container's mixture averaging
// counts that mass against co-located non-specular lobes.
func (s SpecularReflection) Pdf(wo, wi r3.Vec) float64 { return 1 }

func (s SpecularReflection) SampleF(wo r3.Vec, u r3.Point2) (r3.Vec, float64, r3.Vec) {
	wi := r3.Vec{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	pdf := 1.0
	cosWi := geometry.CosTheta(wi)
	f := s.Reflectance.Muls(s.Fresnel.Evaluate(cosWi))
	if cosWi != 0 {
		f = f.Divs(geometry.AbsCosTheta(wi))
	}
	return wi, pdf, f
}
