// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package microfacet implements the Trowbridge-Reitz (GGX) microfacet
// distribution used by glossy reflection: the normal distribution
// function D, the Smith shadowing-masking term G, and both visible-normal
// (VNDF) and classic importance sampling of the half-vector.
//
// All directions are in the local shading frame, where z is the shading
// normal; see package geometry for the cos/sin/tan helpers this package
// builds on.
package microfacet

import (
	"math"

	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/r3"
)

// TrowbridgeReitz is a (possibly anisotropic) GGX microfacet distribution.
type TrowbridgeReitz struct {
	AlphaX            float64
	AlphaY            float64
	SampleVisibleArea bool
}

// RoughnessToAlpha maps an artist-facing roughness in [0,1] to the alpha
// parameter of the distribution using the industry-standard
// roughness-squared remap (not the PBRT-v3 polynomial fit), clamped away
// from zero so that D and pdf never divide by zero.
func RoughnessToAlpha(roughness float64) float64 {
	a := math.Max(roughness, 1e-3)
	return a * a
}

// New builds an isotropic Trowbridge-Reitz distribution from a roughness
// value via RoughnessToAlpha.
func New(roughness float64, sampleVisibleArea bool) TrowbridgeReitz {
	a := RoughnessToAlpha(roughness)
	return TrowbridgeReitz{AlphaX: a, AlphaY: a, SampleVisibleArea: sampleVisibleArea}
}

// D evaluates the normal distribution function at the local-frame
// half-vector wh. It returns 0 when tan^2(theta) is infinite (wh lying in
// the tangent plane).
func (d TrowbridgeReitz) D(wh r3.Vec) float64 {
	tan2Theta := geometry.Tan2Theta(wh)
	if math.IsInf(tan2Theta, 1) {
		return 0
	}
	cos4Theta := geometry.Cos2Theta(wh) * geometry.Cos2Theta(wh)
	e := tan2Theta * (geometry.Cos2Phi(wh)/(d.AlphaX*d.AlphaX) + geometry.Sin2Phi(wh)/(d.AlphaY*d.AlphaY))
	denom := math.Pi * d.AlphaX * d.AlphaY * cos4Theta * (1 + e) * (1 + e)
	if denom == 0 {
		return 0
	}
	return 1 / denom
}

// Lambda is the Smith masking-shadowing auxiliary function.
func (d TrowbridgeReitz) Lambda(w r3.Vec) float64 {
	absTanTheta := math.Abs(geometry.TanTheta(w))
	if math.IsInf(absTanTheta, 1) {
		return 0
	}
	alpha := math.Sqrt(geometry.Cos2Phi(w)*d.AlphaX*d.AlphaX + geometry.Sin2Phi(w)*d.AlphaY*d.AlphaY)
	a2Tan2Theta := (alpha * absTanTheta) * (alpha * absTanTheta)
	return (-1 + math.Sqrt(1+a2Tan2Theta)) / 2
}

// G1 is the separable Smith masking term for a single direction.
func (d TrowbridgeReitz) G1(w r3.Vec) float64 {
	return 1 / (1 + d.Lambda(w))
}

// G is the Smith joint masking-shadowing term for the view and light
// directions.
func (d TrowbridgeReitz) G(wo, wi r3.Vec) float64 {
	return 1 / (1 + d.Lambda(wo) + d.Lambda(wi))
}

// Pdf returns the pdf of sampling the half-vector wh given the outgoing
// direction wo. When SampleVisibleArea is set this is the visible-normal
// pdf D(wh)*G1(wo)*|wh.wo|/|cos(theta(wo))|; otherwise it is the classic
// full-distribution pdf D(wh)*|cos(theta(wh))|.
func (d TrowbridgeReitz) Pdf(wo, wh r3.Vec) float64 {
	if d.SampleVisibleArea {
		denom := geometry.AbsCosTheta(wo)
		if denom == 0 {
			return 0
		}
		return d.D(wh) * d.G1(wo) * math.Abs(wo.Dot(wh)) / denom
	}
	return d.D(wh) * geometry.AbsCosTheta(wh)
}

// SampleWh draws a half-vector in the local shading frame given the
// outgoing direction wo and a uniform 2D sample u.
func (d TrowbridgeReitz) SampleWh(wo r3.Vec, u r3.Point2) r3.Vec {
	if !d.SampleVisibleArea {
		return d.sampleWhClassic(u)
	}

	flip := wo.Z < 0
	woStretch := wo
	if flip {
		woStretch = wo.Muls(-1)
	}
	wh := trowbridgeReitzSample(woStretch, d.AlphaX, d.AlphaY, u.X, u.Y)
	if flip {
		wh = wh.Muls(-1)
	}
	return wh
}

// sampleWhClassic implements classic (non-visible-normal) Trowbridge-Reitz
// importance sampling of the full normal distribution.
func (d TrowbridgeReitz) sampleWhClassic(u r3.Point2) r3.Vec {
	var cosTheta, phi float64
	cosTheta = 0

	if d.AlphaX == d.AlphaY {
		// Isotropic fast path.
		tanTheta2 := d.AlphaX * d.AlphaX * u.X / (1 - u.X)
		cosTheta = 1 / math.Sqrt(1+tanTheta2)
		phi = 2 * math.Pi * u.Y
	} else {
		phi = math.Atan(d.AlphaY/d.AlphaX*math.Tan(2*math.Pi*u.Y+math.Pi/2))
		if u.Y > 0.5 {
			phi += math.Pi
		}
		sinPhi := math.Sin(phi)
		cosPhi := math.Cos(phi)
		alphax2 := d.AlphaX * d.AlphaX
		alphay2 := d.AlphaY * d.AlphaY
		alpha2 := 1 / (cosPhi*cosPhi/alphax2 + sinPhi*sinPhi/alphay2)
		tanTheta2 := alpha2 * u.X / (1 - u.X)
		cosTheta = 1 / math.Sqrt(1+tanTheta2)
	}

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	wh := r3.Vec{X: sinTheta * math.Cos(phi), Y: sinTheta * math.Sin(phi), Z: cosTheta}
	return wh
}

// trowbridgeReitzSample11 draws a slope in the canonical (alpha=1)
// configuration given the cosine of the polar angle and a uniform sample,
// following Heitz's visible-normal sampling derivation.
func trowbridgeReitzSample11(cosTheta, u1, u2 float64) (slopeX, slopeY float64) {
	if cosTheta > 0.9999 {
		r := math.Sqrt(u1 / (1 - u1))
		phi := 2 * math.Pi * u2
		return r * math.Cos(phi), r * math.Sin(phi)
	}

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	tanTheta := sinTheta / cosTheta
	a := 1 / tanTheta
	g1 := 2 / (1 + math.Sqrt(1+1/(a*a)))

	a1 := 2*u1/g1 - 1
	tmp := 1 / (a1*a1 - 1)
	if tmp > 1e10 {
		tmp = 1e10
	}
	b := tanTheta
	d := math.Sqrt(math.Max(b*b*tmp*tmp-(a1*a1-b*b)*tmp, 0))
	slopeX1 := b*tmp - d
	slopeX2 := b*tmp + d
	if a1 < 0 || slopeX2 > 1/tanTheta {
		slopeX = slopeX1
	} else {
		slopeX = slopeX2
	}

	var s float64
	if u2 > 0.5 {
		s = 1
		u2 = 2 * (u2 - 0.5)
	} else {
		s = -1
		u2 = 2 * (0.5 - u2)
	}
	z := (u2 * (u2*(u2*0.27385-0.73369) + 0.46341)) /
		(u2*(u2*(u2*0.093073+0.309420)-1.000000) + 0.597999)
	slopeY = s * z * math.Sqrt(1+slopeX*slopeX)
	return slopeX, slopeY
}

// trowbridgeReitzSample draws a visible normal for direction wi (assumed
// to have wi.Z >= 0) via Heitz's stretch-and-unstretch construction.
func trowbridgeReitzSample(wi r3.Vec, alphaX, alphaY, u1, u2 float64) r3.Vec {
	wiStretched := r3.Vec{X: alphaX * wi.X, Y: alphaY * wi.Y, Z: wi.Z}.Unit()

	cosTheta := wiStretched.Z
	slopeX, slopeY := trowbridgeReitzSample11(cosTheta, u1, u2)

	sinTheta := math.Sqrt(math.Max(0, 1-wiStretched.Z*wiStretched.Z))
	norm := math.Sqrt(wiStretched.X*wiStretched.X + wiStretched.Y*wiStretched.Y)
	var cosPhi, sinPhi float64
	if sinTheta == 0 || norm == 0 {
		cosPhi, sinPhi = 1, 0
	} else {
		cosPhi, sinPhi = wiStretched.X/norm, wiStretched.Y/norm
	}
	slopeXRot := cosPhi*slopeX - sinPhi*slopeY
	slopeYRot := sinPhi*slopeX + cosPhi*slopeY
	slopeX, slopeY = slopeXRot, slopeYRot

	slopeX = alphaX * slopeX
	slopeY = alphaY * slopeY

	return r3.Vec{X: -slopeX, Y: -slopeY, Z: 1}.Unit()
}
