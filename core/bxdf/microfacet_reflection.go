// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package bxdf

import (
	"math"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/core/microfacet"
	"github.com/scottlawson/pathtracer/r3"
)

// MicrofacetReflection is a glossy reflection lobe built from a
// Trowbridge-Reitz distribution and a Fresnel term.
//
// Its pdf and SampleF draw the half-vector wh from the distribution and
// reflect wo about it, which is the statistically correct importance
// sampling strategy for this lobe. An earlier, uncorrected version of
// this component fell back to plain cosine-hemisphere sampling for both
// pdf and SampleF; that shortcut under-samples the glossy peak for rough
// surfaces and has been replaced with the distribution-driven form below.
type MicrofacetReflection struct {
	Reflectance  r3.Vec
	Distribution microfacet.TrowbridgeReitz
	Fresnel      Fresnel
}

func (m MicrofacetReflection) Flags() Type { return Reflection | Glossy }

func (m MicrofacetReflection) F(wo, wi r3.Vec) r3.Vec {
	cosThetaO := geometry.AbsCosTheta(wo)
	cosThetaI := geometry.AbsCosTheta(wi)
	if cosThetaO == 0 || cosThetaI == 0 {
		return r3.Vec{}
	}
	wh := wi.Add(wo)
	if wh.IsZero() {
		return r3.Vec{}
	}
	wh = wh.Unit()

	fr := m.Fresnel.Evaluate(wi.Dot(wh))
	scale := m.Distribution.D(wh) * m.Distribution.G(wo, wi) * fr / (4 * cosThetaI * cosThetaO)
	return m.Reflectance.Muls(scale)
}

func (m MicrofacetReflection) Pdf(wo, wi r3.Vec) float64 {
	if !geometry.SameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi)
	if wh.IsZero() {
		return 0
	}
	wh = wh.Unit()
	if wh.Z < 0 {
		wh = wh.Muls(-1)
	}
	denom := 4 * math.Abs(wo.Dot(wh))
	if denom == 0 {
		return 0
	}
	return m.Distribution.Pdf(wo, wh) / denom
}

func (m MicrofacetReflection) SampleF(wo r3.Vec, u r3.Point2) (r3.Vec, float64, r3.Vec) {
	if wo.Z == 0 {
		return r3.Vec{}, 0, r3.Vec{}
	}
	wh := m.Distribution.SampleWh(wo, u)
	// wo points away from the surface, so the mirrored direction is
	// 2(wo.wh)wh - wo rather than Reflect's incident-ray form.
	wi := wh.Muls(2 * wo.Dot(wh)).Sub(wo)
	if !geometry.SameHemisphere(wo, wi) {
		return r3.Vec{}, 0, r3.Vec{}
	}
	pdf := m.Pdf(wo, wi)
	if pdf == 0 {
		return r3.Vec{}, 0, r3.Vec{}
	}
	return wi, pdf, m.F(wo, wi)
}
