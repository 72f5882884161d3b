// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package bxdf

import (
	"math"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/r3"
)

// OrenNayar is a diffuse reflection lobe modelling a rough Lambertian
// surface, parameterized by a roughness sigma (radians).
type OrenNayar struct {
	Albedo r3.Vec
	A, B   float64
}

// NewOrenNayar derives the A and B coefficients of the Oren-Nayar model
// from a roughness (in radians).
func NewOrenNayar(albedo r3.Vec, roughness float64) OrenNayar {
	sigma2 := roughness * roughness
	a := 1 - sigma2/(2*(sigma2+0.33))
	b := 0.45 * sigma2 / (sigma2 + 0.09)
	return OrenNayar{Albedo: albedo, A: a, B: b}
}

func (o OrenNayar) Flags() Type { return Reflection | Diffuse }

func (o OrenNayar) F(wo, wi r3.Vec) r3.Vec {
	sinThetaI := geometry.SinTheta(wi)
	sinThetaO := geometry.SinTheta(wo)

	maxCos := 0.0
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		sinPhiI, cosPhiI := geometry.SinPhi(wi), geometry.CosPhi(wi)
		sinPhiO, cosPhiO := geometry.SinPhi(wo), geometry.CosPhi(wo)
		dCos := cosPhiI*cosPhiO + sinPhiI*sinPhiO
		maxCos = math.Max(0, dCos)
	}

	var sinAlpha, tanBeta float64
	if geometry.AbsCosTheta(wi) > geometry.AbsCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / geometry.AbsCosTheta(wi)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / geometry.AbsCosTheta(wo)
	}

	scale := (1 / math.Pi) * (o.A + o.B*maxCos*sinAlpha*tanBeta)
	return o.Albedo.Muls(scale)
}

func (o OrenNayar) Pdf(wo, wi r3.Vec) float64 {
	if !geometry.SameHemisphere(wo, wi) {
		return 0
	}
	return geometry.CosineHemispherePdf(geometry.CosTheta(wi))
}

func (o OrenNayar) SampleF(wo r3.Vec, u r3.Point2) (r3.Vec, float64, r3.Vec) {
	wi := geometry.CosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	return wi, o.Pdf(wo, wi), o.F(wo, wi)
}
